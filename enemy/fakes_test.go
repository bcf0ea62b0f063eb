package enemy

import (
	"math"

	"github.com/milk9111/lurker/common"
)

const (
	targetCollider uint64 = 1
	childCollider  uint64 = 2
	wallCollider   uint64 = 10
)

type fakeNav struct {
	pos      common.Vec3
	dest     common.Vec3
	stopped  bool
	pending  bool
	stopping float64
	velocity common.Vec3
	// teleport moves the body onto every new destination immediately.
	teleport bool

	destinations []common.Vec3
	stopCalls    []bool
}

func (n *fakeNav) SetDestination(p common.Vec3) {
	n.dest = p
	n.destinations = append(n.destinations, p)
	if n.teleport {
		n.pos = p
	}
}

func (n *fakeNav) SetStopped(stopped bool) {
	n.stopped = stopped
	n.stopCalls = append(n.stopCalls, stopped)
}

func (n *fakeNav) Stopped() bool              { return n.stopped }
func (n *fakeNav) PathPending() bool          { return n.pending }
func (n *fakeNav) RemainingDistance() float64 { return common.Distance(n.pos.Flat(), n.dest.Flat()) }
func (n *fakeNav) StoppingDistance() float64  { return n.stopping }
func (n *fakeNav) Velocity() common.Vec3      { return n.velocity }
func (n *fakeNav) Position() common.Vec3      { return n.pos }

type fakeTarget struct {
	pos      common.Vec3
	enabled  bool
	disables int
}

func newFakeTarget(pos common.Vec3) *fakeTarget {
	return &fakeTarget{pos: pos, enabled: true}
}

func (t *fakeTarget) Position() common.Vec3 { return t.pos }

func (t *fakeTarget) Owns(collider uint64) bool {
	return collider == targetCollider || collider == childCollider
}

func (t *fakeTarget) SetControlEnabled(enabled bool) {
	if !enabled {
		t.disables++
	}
	t.enabled = enabled
}

// fakeEyes follow the navigator body so the observer moves with the agent.
type fakeEyes struct {
	nav     *fakeNav
	height  float64
	forward common.Vec3
}

func (e *fakeEyes) Position() common.Vec3 {
	return e.nav.pos.Add(common.Up.Scale(e.height))
}

func (e *fakeEyes) Forward() common.Vec3 { return e.forward }

type sphere struct {
	center   common.Vec3
	radius   float64
	collider uint64
	layer    uint
}

// fakeOccluder intersects rays with spheres. The target is a sphere that
// follows fakeTarget when target is set.
type fakeOccluder struct {
	target       *fakeTarget
	targetRadius float64
	spheres      []sphere
	lastMask     uint
	calls        int
}

func (o *fakeOccluder) Raycast(origin, dir common.Vec3, maxDistance float64, mask uint) (Hit, bool) {
	o.calls++
	o.lastMask = mask

	all := append([]sphere(nil), o.spheres...)
	if o.target != nil {
		all = append(all, sphere{
			center:   o.target.pos.Add(common.Up),
			radius:   o.targetRadius,
			collider: targetCollider,
			layer:    1,
		})
	}

	best := math.Inf(1)
	var hit Hit
	for _, s := range all {
		if s.layer != 0 && s.layer&mask == 0 {
			continue
		}
		t, ok := raySphere(origin, dir, s.center, s.radius)
		if !ok || t > maxDistance || t >= best {
			continue
		}
		best = t
		hit = Hit{Point: origin.Add(dir.Scale(t)), Distance: t, Collider: s.collider}
	}
	return hit, !math.IsInf(best, 1)
}

func raySphere(origin, dir, center common.Vec3, r float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - r*r
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

type fakeAnimator struct {
	bools    map[Cue]bool
	triggers map[Cue]int
	resets   map[Cue]int
}

func newFakeAnimator() *fakeAnimator {
	return &fakeAnimator{
		bools:    map[Cue]bool{},
		triggers: map[Cue]int{},
		resets:   map[Cue]int{},
	}
}

func (f *fakeAnimator) SetBool(cue Cue, v bool) { f.bools[cue] = v }
func (f *fakeAnimator) SetTrigger(cue Cue)      { f.triggers[cue]++ }
func (f *fakeAnimator) ResetTrigger(cue Cue)    { f.resets[cue]++ }

type fakeOutcomes struct {
	catches int
	attacks int
}

func (f *fakeOutcomes) OnCatch(*Agent)  { f.catches++ }
func (f *fakeOutcomes) OnAttack(*Agent) { f.attacks++ }

// fixedRand replays values in order and then repeats the last one.
type fixedRand struct {
	values []float64
	i      int
}

func (r *fixedRand) Float64() float64 {
	if len(r.values) == 0 {
		return 0.5
	}
	v := r.values[r.i]
	if r.i < len(r.values)-1 {
		r.i++
	}
	return v
}

type harness struct {
	nav      *fakeNav
	target   *fakeTarget
	eyes     *fakeEyes
	occ      *fakeOccluder
	anim     *fakeAnimator
	outcomes *fakeOutcomes
}

// newHarness places the agent at the origin facing +Z with the target far
// behind it, out of sight and out of reach.
func newHarness() *harness {
	nav := &fakeNav{stopping: 0.5}
	target := newFakeTarget(common.Vec3{Z: -40})
	return &harness{
		nav:      nav,
		target:   target,
		eyes:     &fakeEyes{nav: nav, height: 1, forward: common.Vec3{Z: 1}},
		occ:      &fakeOccluder{target: target, targetRadius: 0.4},
		anim:     newFakeAnimator(),
		outcomes: &fakeOutcomes{},
	}
}

func (h *harness) deps() Deps {
	return Deps{
		Eyes:      h.eyes,
		Navigator: h.nav,
		Target:    h.target,
		Animator:  h.anim,
		Occluder:  h.occ,
		Outcomes:  h.outcomes,
	}
}

// show puts the target in plain view, 6 units ahead of the agent.
func (h *harness) show() {
	h.target.pos = h.nav.pos.Add(common.Vec3{Z: 6})
}

// hide puts the target behind the agent, out of the view cone and reach.
func (h *harness) hide() {
	h.target.pos = h.nav.pos.Add(common.Vec3{Z: -10})
}

type stubStrategy struct {
	agent *Agent
	inits int
	ticks int
}

func (s *stubStrategy) Init(a *Agent) {
	s.agent = a
	s.inits++
}

func (s *stubStrategy) Tick(float64) { s.ticks++ }
func (s *stubStrategy) State() State { return StateIdle }
