package system

import (
	"github.com/milk9111/lurker/common"
	"github.com/milk9111/lurker/ecs"
	"github.com/milk9111/lurker/ecs/component"
)

// facingSpeed is the speed above which a body turns to face its velocity.
const facingSpeed = 0.05

// PhysicsSystem steps the space and copies body poses back onto transforms.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	pw.Step(w.TimeStep())

	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil {
			return
		}
		p := pb.Body.Position()
		t.Position = common.Vec3{X: p.X, Y: pb.Height, Z: p.Y}

		v := pb.Body.Velocity()
		vel := common.Vec3{X: v.X, Z: v.Y}
		if vel.Len() > facingSpeed {
			t.Yaw = common.YawOf(vel)
		}
	})
}
