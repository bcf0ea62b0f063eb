package enemy

import "github.com/milk9111/lurker/common"

// Navigator is the path-following collaborator that moves the agent's body.
// Commands are fire-and-forget; the agent only polls PathPending and
// RemainingDistance.
type Navigator interface {
	SetDestination(p common.Vec3)
	SetStopped(stopped bool)
	Stopped() bool
	PathPending() bool
	RemainingDistance() float64
	StoppingDistance() float64
	Velocity() common.Vec3
	Position() common.Vec3
}

// Target is what the agent hunts. Owns reports whether a collider returned by
// an occlusion query belongs to the target or one of its descendants.
type Target interface {
	Position() common.Vec3
	Owns(collider uint64) bool
	SetControlEnabled(enabled bool)
}

// Eyes is the observer transform used for perception.
type Eyes interface {
	Position() common.Vec3
	Forward() common.Vec3
}

// Hit is the first collider struck by an occlusion ray.
type Hit struct {
	Point    common.Vec3
	Distance float64
	Collider uint64
}

// Occluder answers line-of-sight queries. dir must be normalized.
type Occluder interface {
	Raycast(origin, dir common.Vec3, maxDistance float64, mask uint) (Hit, bool)
}

// Animator receives named animation cues.
type Animator interface {
	SetBool(cue Cue, value bool)
	SetTrigger(cue Cue)
	ResetTrigger(cue Cue)
}

// Outcomes is notified of catches (once per agent) and attacks (every
// qualifying tick).
type Outcomes interface {
	OnCatch(a *Agent)
	OnAttack(a *Agent)
}

// Rand is the random source for patrol decisions. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}
