package enemy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lurker/common"
)

var route = []common.Vec3{{X: 5}, {X: 5, Z: 5}, {Z: 5}}

func newPatrol(h *harness, cfg PatrolConfig) (*Agent, *PatrolStrategy) {
	p := NewPatrolStrategy(cfg)
	return New(DefaultConfig(), h.deps(), p), p
}

func TestPatrolCyclesRouteWithoutIdling(t *testing.T) {
	h := newHarness()
	h.nav.teleport = true
	cfg := DefaultPatrolConfig()
	cfg.Waypoints = route
	cfg.IdleChance = 0
	a, p := newPatrol(h, cfg)

	tickN(a, 4)

	assert.Equal(t, []common.Vec3{route[0], route[1], route[2], route[0]}, h.nav.destinations)
	assert.Equal(t, StatePatrolling, p.State())
	assert.Equal(t, 1, p.WaypointIndex())
	assert.False(t, h.anim.bools[CueWalking], "walk cue drops on arrival")
}

func TestPatrolIdlesThenResumes(t *testing.T) {
	h := newHarness()
	h.nav.teleport = true
	cfg := PatrolConfig{
		Waypoints:      route,
		IdleChance:     0.3,
		IdleMin:        1.05,
		IdleMax:        1.05,
		LostSightDelay: 1,
		Rand:           &fixedRand{values: []float64{0.1, 0.5, 0.9}},
	}
	a, p := newPatrol(h, cfg)

	a.Tick(dt)
	require.Equal(t, StateIdle, p.State())
	assert.Equal(t, 0, p.WaypointIndex())

	tickN(a, 5)
	assert.Equal(t, StateIdle, p.State())

	tickN(a, 6)
	assert.Equal(t, StatePatrolling, p.State())

	a.Tick(dt)
	assert.Equal(t, StatePatrolling, p.State())
	assert.Equal(t, 1, p.WaypointIndex())
}

func TestPatrolEmptyRouteOscillatesIdle(t *testing.T) {
	h := newHarness()
	cfg := DefaultPatrolConfig()
	cfg.Rand = &fixedRand{values: []float64{0}}
	cfg.IdleMin, cfg.IdleMax = 0.5, 0.5
	a, p := newPatrol(h, cfg)

	seen := map[State]int{}
	for i := 0; i < 40; i++ {
		a.Tick(dt)
		seen[p.State()]++
	}

	assert.Positive(t, seen[StateIdle])
	assert.Positive(t, seen[StatePatrolling])
	assert.Zero(t, seen[StateChasing])
	assert.Empty(t, h.nav.destinations)
	assert.Zero(t, h.anim.triggers[CueStartChase])
}

func TestPatrolStartsChaseOnce(t *testing.T) {
	h := newHarness()
	cfg := DefaultPatrolConfig()
	cfg.Waypoints = route
	a, p := newPatrol(h, cfg)
	h.show()

	tickN(a, 30)

	assert.Equal(t, StateChasing, p.State())
	assert.True(t, a.IsChasing())
	assert.Equal(t, 1, h.anim.triggers[CueStartChase])
	assert.Equal(t, h.target.pos, h.nav.dest)
	assert.Equal(t, h.target.pos, p.LastKnownPosition())
}

func TestPatrolLosesSightAndReturnsToRoute(t *testing.T) {
	h := newHarness()
	cfg := DefaultPatrolConfig()
	cfg.Waypoints = []common.Vec3{{X: 20}}
	a, p := newPatrol(h, cfg)
	h.show()
	seenAt := h.target.pos

	tickN(a, 15)
	require.True(t, a.IsChasing())

	h.hide()
	tickN(a, 5)
	assert.Equal(t, StateChasing, p.State(), "keeps heading to last known position")
	assert.Equal(t, seenAt, h.nav.dest)
	assert.True(t, h.anim.bools[CueWalking])

	tickN(a, 7)
	assert.Equal(t, StatePatrolling, p.State())
	assert.False(t, a.IsChasing())
	assert.False(t, h.nav.stopped)
	assert.False(t, h.anim.bools[CueChasing])
	assert.Equal(t, 2, h.anim.resets[CueStartChase])
	assert.Equal(t, cfg.Waypoints[0], h.nav.dest)
}

func TestPatrolArrivingAtLastKnownEndsChase(t *testing.T) {
	h := newHarness()
	cfg := DefaultPatrolConfig()
	cfg.Waypoints = []common.Vec3{{X: 20}}
	a, p := newPatrol(h, cfg)
	h.show()
	tickN(a, 15)
	require.True(t, a.IsChasing())

	h.nav.pos = p.LastKnownPosition()
	h.hide()
	a.Tick(dt)

	assert.Equal(t, StatePatrolling, p.State())
	assert.False(t, a.IsChasing())
}
