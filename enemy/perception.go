package enemy

import "github.com/milk9111/lurker/common"

// AllLayers is an occlusion mask that lets every collider block sight.
const AllLayers = ^uint(0)

// Perception holds the view cone parameters of an agent.
type Perception struct {
	ViewDistance float64
	// ViewAngle is the full cone width in degrees.
	ViewAngle float64
	// HeightOffset lifts the aim point from the target's feet to roughly eye height.
	HeightOffset  float64
	OcclusionMask uint
}

// DefaultPerception matches the stock enemy prefab.
func DefaultPerception() Perception {
	return Perception{
		ViewDistance:  12,
		ViewAngle:     160,
		HeightOffset:  1,
		OcclusionMask: AllLayers,
	}
}

// AimPoint is the point on the target the observer looks at.
func (p Perception) AimPoint(target common.Vec3) common.Vec3 {
	return target.Add(common.Up.Scale(p.HeightOffset))
}

// CanSee runs the distance, cone and occlusion tests in that order. The ray
// must strike the target first; isTarget decides whether a collider counts
// as the target.
func (p Perception) CanSee(origin, forward, target common.Vec3, occ Occluder, isTarget func(collider uint64) bool) bool {
	aim := p.AimPoint(target)
	d := aim.Sub(origin)
	dist := d.Len()
	if dist == 0 {
		return true
	}
	if dist > p.ViewDistance {
		return false
	}

	if p.AngleTo(forward, d) > p.ViewAngle*0.5 {
		return false
	}

	if occ == nil || isTarget == nil {
		return false
	}
	hit, ok := occ.Raycast(origin, d.Scale(1/dist), dist, p.OcclusionMask)
	if !ok {
		return false
	}
	return isTarget(hit.Collider)
}

// AngleTo is the ground-plane angle in degrees between forward and d.
func (p Perception) AngleTo(forward, d common.Vec3) float64 {
	return common.AngleDeg(forward.Flat(), d.Flat())
}
