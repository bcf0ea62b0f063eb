package enemy

import (
	"math/rand"

	"github.com/milk9111/lurker/common"
)

// PatrolConfig configures a PatrolStrategy.
type PatrolConfig struct {
	Waypoints []common.Vec3
	// IdleChance is the probability of pausing at a reached waypoint.
	IdleChance     float64
	IdleMin        float64
	IdleMax        float64
	LostSightDelay float64
	Rand           Rand
}

// DefaultPatrolConfig returns the stock patrol timings with no route.
func DefaultPatrolConfig() PatrolConfig {
	return PatrolConfig{
		IdleChance:     0.3,
		IdleMin:        1,
		IdleMax:        3,
		LostSightDelay: 1,
	}
}

// PatrolStrategy walks a cyclic waypoint route, idles at random, and chases
// the target on sight until it loses it for LostSightDelay seconds or reaches
// the last known position.
type PatrolStrategy struct {
	cfg   PatrolConfig
	agent *Agent

	state          State
	index          int
	idleTimer      float64
	lostSightTimer float64
	lastKnown      common.Vec3
}

func NewPatrolStrategy(cfg PatrolConfig) *PatrolStrategy {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	if cfg.IdleMax < cfg.IdleMin {
		cfg.IdleMax = cfg.IdleMin
	}
	cfg.Waypoints = append([]common.Vec3(nil), cfg.Waypoints...)
	return &PatrolStrategy{cfg: cfg}
}

func (p *PatrolStrategy) Init(a *Agent) {
	p.agent = a
	p.state = StatePatrolling
	p.index = 0
	p.idleTimer = 0
	p.lostSightTimer = 0
	p.lastKnown = common.Vec3{}
	a.ResumeNavigation()
}

func (p *PatrolStrategy) State() State {
	return p.state
}

// WaypointIndex is the index of the waypoint currently walked to.
func (p *PatrolStrategy) WaypointIndex() int {
	return p.index
}

// LastKnownPosition is the target position recorded while chasing.
func (p *PatrolStrategy) LastKnownPosition() common.Vec3 {
	return p.lastKnown
}

func (p *PatrolStrategy) Tick(dt float64) {
	a := p.agent
	if a == nil {
		return
	}
	targetPos, ok := a.TargetPosition()
	if !ok {
		return
	}

	canSee := a.CanSeePlayer()

	if canSee && p.state != StateChasing {
		p.state = StateChasing
		a.StartChase()
		p.lostSightTimer = 0
		p.lastKnown = targetPos
	}

	switch p.state {
	case StatePatrolling:
		p.patrol()
	case StateIdle:
		p.idleTimer -= dt
		if p.idleTimer <= 0 {
			p.state = StatePatrolling
		}
	case StateChasing:
		p.chase(dt, canSee, targetPos)
	}
}

func (p *PatrolStrategy) patrol() {
	a := p.agent
	a.ResumeNavigation()

	if len(p.cfg.Waypoints) == 0 {
		p.enterIdle()
		return
	}

	a.MoveTo(p.cfg.Waypoints[p.index])
	a.PlayWalk(true)

	if !a.Arrived() {
		return
	}
	a.PlayWalk(false)
	if p.cfg.IdleChance > 0 && p.cfg.Rand.Float64() <= p.cfg.IdleChance {
		p.enterIdle()
		return
	}
	p.index = (p.index + 1) % len(p.cfg.Waypoints)
}

func (p *PatrolStrategy) enterIdle() {
	p.state = StateIdle
	p.idleTimer = p.cfg.IdleMin + p.cfg.Rand.Float64()*(p.cfg.IdleMax-p.cfg.IdleMin)
	p.agent.PlayIdle()
}

func (p *PatrolStrategy) chase(dt float64, canSee bool, targetPos common.Vec3) {
	a := p.agent
	if canSee {
		p.lastKnown = targetPos
		p.lostSightTimer = 0
		a.ChasePlayer()
		return
	}

	p.lostSightTimer += dt
	a.ResumeNavigation()
	a.MoveTo(p.lastKnown)
	a.PlayWalk(true)

	if p.lostSightTimer >= p.cfg.LostSightDelay || a.Arrived() {
		p.state = StatePatrolling
		a.StopChase(false)
		p.lostSightTimer = 0
	}
}
