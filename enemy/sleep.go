package enemy

import "github.com/milk9111/lurker/common"

// SleepConfig configures a SleepStrategy.
type SleepConfig struct {
	WakeDelay      float64
	LostSightDelay float64
}

func DefaultSleepConfig() SleepConfig {
	return SleepConfig{WakeDelay: 1, LostSightDelay: 1}
}

// SleepStrategy sleeps in place, wakes when it sees the target, and goes back
// to sleep once it loses the target.
//
// StateIdle is accepted as a resting state but nothing in this policy enters it.
type SleepStrategy struct {
	cfg   SleepConfig
	agent *Agent

	state          State
	lostSightTimer float64
	lastKnown      common.Vec3
	hasLastKnown   bool
}

func NewSleepStrategy(cfg SleepConfig) *SleepStrategy {
	return &SleepStrategy{cfg: cfg}
}

func (s *SleepStrategy) Init(a *Agent) {
	s.agent = a
	s.state = StateSleeping
	s.lostSightTimer = 0
	s.clearLastKnown()
	a.PlaySleep()
}

func (s *SleepStrategy) State() State {
	return s.state
}

// LastKnownPosition returns the recorded target position, if any.
func (s *SleepStrategy) LastKnownPosition() (common.Vec3, bool) {
	return s.lastKnown, s.hasLastKnown
}

func (s *SleepStrategy) Tick(dt float64) {
	a := s.agent
	if a == nil {
		return
	}
	targetPos, ok := a.TargetPosition()
	if !ok {
		return
	}

	canSee := a.CanSeePlayer()

	switch s.state {
	case StateSleeping, StateIdle:
		if canSee {
			s.wake(targetPos)
		}
	case StateChasing:
		s.chase(dt, canSee, targetPos)
	}
}

func (s *SleepStrategy) wake(targetPos common.Vec3) {
	s.state = StateChasing
	s.lastKnown = targetPos
	s.hasLastKnown = true
	s.lostSightTimer = 0
	s.agent.StartWakeUp(s.cfg.WakeDelay)
}

func (s *SleepStrategy) chase(dt float64, canSee bool, targetPos common.Vec3) {
	a := s.agent
	if canSee {
		s.lastKnown = targetPos
		s.hasLastKnown = true
		s.lostSightTimer = 0
		a.PlayRun(true)
		a.ChasePlayer()
		return
	}

	s.lostSightTimer += dt
	a.ResumeNavigation()
	a.MoveTo(s.lastKnown)
	a.PlayRun(true)

	if s.lostSightTimer >= s.cfg.LostSightDelay || a.Arrived() {
		s.state = StateSleeping
		s.lostSightTimer = 0
		s.clearLastKnown()
		a.PlaySleep()
		a.StopChase(true)
	}
}

func (s *SleepStrategy) clearLastKnown() {
	s.lastKnown = common.Vec3{}
	s.hasLastKnown = false
}
