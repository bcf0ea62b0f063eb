package component

import "github.com/milk9111/lurker/common"

// Transform is a world pose. Yaw is in radians, 0 facing +Z.
type Transform struct {
	Position common.Vec3
	Yaw      float64
}

// Forward is the horizontal facing direction.
func (t Transform) Forward() common.Vec3 {
	return common.YawForward(t.Yaw)
}

var TransformComponent = NewComponentKind[Transform]()
