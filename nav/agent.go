// Package nav moves kinematic bodies toward a destination on the floor plane.
// There is no path planning: agents steer in a straight line and rely on the
// level layout to keep routes clear.
package nav

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/lurker/common"
)

const (
	DefaultSpeed            = 3.5
	DefaultStoppingDistance = 0.5
	// repathEpsilon is how far a new destination must move to count as a new path.
	repathEpsilon = 1e-3
)

// Agent drives a kinematic body. World X/Z map to the body's X/Y.
type Agent struct {
	body   *cp.Body
	height float64

	Speed            float64
	stoppingDistance float64

	dest    common.Vec3
	hasDest bool
	stopped bool
	pending bool
}

// New wraps body. height is the Y reported by Position.
func New(body *cp.Body, speed, stoppingDistance, height float64) *Agent {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	if stoppingDistance < 0 {
		stoppingDistance = DefaultStoppingDistance
	}
	return &Agent{
		body:             body,
		height:           height,
		Speed:            speed,
		stoppingDistance: stoppingDistance,
	}
}

// SetDestination retargets the agent. A destination that moved counts as a
// new path until the next Update.
func (a *Agent) SetDestination(p common.Vec3) {
	if !a.hasDest || common.Distance(a.dest.Flat(), p.Flat()) > repathEpsilon {
		a.pending = true
	}
	a.dest = p
	a.hasDest = true
}

func (a *Agent) Destination() (common.Vec3, bool) {
	return a.dest, a.hasDest
}

func (a *Agent) SetStopped(stopped bool) {
	a.stopped = stopped
	if stopped && a.body != nil {
		a.body.SetVelocityVector(cp.Vector{})
	}
}

func (a *Agent) Stopped() bool {
	return a.stopped
}

func (a *Agent) PathPending() bool {
	return a.pending
}

// RemainingDistance is the floor distance to the destination, 0 without one.
func (a *Agent) RemainingDistance() float64 {
	if !a.hasDest {
		return 0
	}
	return common.Distance(a.Position().Flat(), a.dest.Flat())
}

func (a *Agent) StoppingDistance() float64 {
	return a.stoppingDistance
}

func (a *Agent) Velocity() common.Vec3 {
	if a.body == nil {
		return common.Vec3{}
	}
	v := a.body.Velocity()
	return common.Vec3{X: v.X, Z: v.Y}
}

func (a *Agent) Position() common.Vec3 {
	if a.body == nil {
		return common.Vec3{Y: a.height}
	}
	p := a.body.Position()
	return common.Vec3{X: p.X, Y: a.height, Z: p.Y}
}

// Update sets the body velocity for the coming physics step. It never
// overshoots: the last step lands on the stopping radius.
func (a *Agent) Update(dt float64) {
	if a.body == nil {
		return
	}
	a.pending = false

	if a.stopped || !a.hasDest || dt <= 0 {
		a.body.SetVelocityVector(cp.Vector{})
		return
	}

	to := a.dest.Sub(a.Position()).Flat()
	dist := to.Len()
	if dist <= a.stoppingDistance {
		a.body.SetVelocityVector(cp.Vector{})
		return
	}

	speed := math.Min(a.Speed, (dist-a.stoppingDistance)/dt)
	v := to.Scale(speed / dist)
	a.body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Z})
}
