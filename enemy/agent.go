package enemy

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/lurker/common"
	"github.com/milk9111/lurker/logger"
)

const (
	// DefaultChaseDelay is the reaction beat between spotting the target and pursuing it.
	DefaultChaseDelay = 1.2
	// arrivalTolerance pads the navigator's stopping distance for arrival checks.
	arrivalTolerance = 0.1
	// movingSpeed is the speed above which the agent counts as moving.
	movingSpeed = 0.1
)

// Strategy is a behavior policy driven by an Agent.
type Strategy interface {
	// Init binds the strategy to its agent and resets it to its initial state.
	Init(a *Agent)
	Tick(dt float64)
	State() State
}

// Config is the fixed per-instance configuration of an agent.
type Config struct {
	Name        string
	Perception  Perception
	CatchRange  float64
	AttackRange float64
	ChaseDelay  float64
}

// DefaultConfig returns the stock enemy configuration.
func DefaultConfig() Config {
	return Config{
		Name:        "enemy",
		Perception:  DefaultPerception(),
		CatchRange:  1.2,
		AttackRange: 1.6,
		ChaseDelay:  DefaultChaseDelay,
	}
}

// Deps are the collaborators an agent talks to. Any of them may be nil.
type Deps struct {
	Eyes      Eyes
	Navigator Navigator
	Target    Target
	Animator  Animator
	Occluder  Occluder
	Outcomes  Outcomes
	Log       *logrus.Entry
}

// Agent is one enemy instance: perception parameters, catch and attack
// thresholds, the deferred chase/wake slot and the behavior strategy.
// It is not safe for concurrent use; a single scheduler owns it.
type Agent struct {
	cfg  Config
	deps Deps
	log  *logrus.Entry

	strategy Strategy

	chasing  bool
	caught   bool
	attacked bool
	pending  *transition
}

// New creates an agent and initialises its strategy. A non-positive
// ChaseDelay falls back to DefaultChaseDelay.
func New(cfg Config, deps Deps, strategy Strategy) *Agent {
	if cfg.ChaseDelay <= 0 {
		cfg.ChaseDelay = DefaultChaseDelay
	}
	log := deps.Log
	if log == nil {
		log = logger.For("enemy")
	}
	a := &Agent{
		cfg:      cfg,
		deps:     deps,
		log:      log.WithField("enemy", cfg.Name),
		strategy: strategy,
	}
	if strategy != nil {
		strategy.Init(a)
	}
	return a
}

// Name is the instance name from the config.
func (a *Agent) Name() string {
	return a.cfg.Name
}

// Config returns the configuration the agent was built with.
func (a *Agent) Config() Config {
	return a.cfg
}

// IsChasing reports whether a chase or wake transition has fired.
func (a *Agent) IsChasing() bool {
	return a.chasing
}

// Caught reports whether the agent has caught its target.
func (a *Agent) Caught() bool {
	return a.caught
}

// TransitionPending reports whether a chase or wake effect is scheduled.
func (a *Agent) TransitionPending() bool {
	return a.pending != nil
}

// State returns the strategy state, or Idle when there is no strategy.
func (a *Agent) State() State {
	if a.strategy == nil {
		return StateIdle
	}
	return a.strategy.State()
}

// Position is the agent's body position as reported by its navigator.
func (a *Agent) Position() (common.Vec3, bool) {
	if a.deps.Navigator == nil {
		return common.Vec3{}, false
	}
	return a.deps.Navigator.Position(), true
}

// Moving reports whether the body is actively moving under navigation.
func (a *Agent) Moving() bool {
	nav := a.deps.Navigator
	if nav == nil || nav.Stopped() {
		return false
	}
	return nav.Velocity().Len() > movingSpeed
}

// Tick runs one simulation step: the pending deferred transition, the
// strategy, then catch/attack checks. A transition scheduled by the strategy
// starts counting down on the next tick, so it never fires on the tick that
// scheduled it. A caught agent keeps sensing and attacking but never moves.
func (a *Agent) Tick(dt float64) {
	if a.deps.Target == nil {
		return
	}

	if a.pending != nil && a.pending.advance(dt) {
		t := a.pending
		a.pending = nil
		a.log.WithField("transition", t.kind.String()).Debug("deferred transition fired")
		t.effect()
	}

	if a.attacked {
		a.attacked = false
		if a.chasing && a.pending == nil && !a.caught {
			a.ResumeNavigation()
		}
	}

	if a.strategy != nil {
		a.strategy.Tick(dt)
	}
	if a.caught {
		a.haltNavigation()
	}

	a.checkContact()
}

func (a *Agent) checkContact() {
	pos, ok := a.Position()
	if !ok {
		return
	}
	dist := common.Distance(pos, a.deps.Target.Position())

	if dist <= a.cfg.CatchRange && !a.caught {
		a.caught = true
		a.pending = nil
		a.haltNavigation()
		a.log.WithField("distance", dist).Info("caught target")
		if a.deps.Outcomes != nil {
			a.deps.Outcomes.OnCatch(a)
		}
		a.deps.Target.SetControlEnabled(false)
		return
	}

	if dist <= a.cfg.AttackRange {
		a.trigger(CueAttack)
		a.haltNavigation()
		a.attacked = true
		if a.deps.Outcomes != nil {
			a.deps.Outcomes.OnAttack(a)
		}
	}
}

// CanSeePlayer runs a fresh perception test against the target.
func (a *Agent) CanSeePlayer() bool {
	if a.deps.Eyes == nil || a.deps.Target == nil {
		return false
	}
	return a.cfg.Perception.CanSee(
		a.deps.Eyes.Position(),
		a.deps.Eyes.Forward(),
		a.deps.Target.Position(),
		a.deps.Occluder,
		a.deps.Target.Owns,
	)
}

// TargetPosition returns the live target position.
func (a *Agent) TargetPosition() (common.Vec3, bool) {
	if a.deps.Target == nil {
		return common.Vec3{}, false
	}
	return a.deps.Target.Position(), true
}

// StartChase plays the chase cue, halts, and schedules pursuit after the
// chase delay. Ignored while chasing, while a transition is pending, or once
// the target is caught.
func (a *Agent) StartChase() {
	if a.chasing || a.pending != nil || a.caught {
		return
	}

	a.resetTrigger(CueStartChase)
	a.trigger(CueStartChase)
	a.haltNavigation()

	a.pending = &transition{
		kind:      transitionChase,
		remaining: a.cfg.ChaseDelay,
		effect: func() {
			a.chasing = true
			a.setBool(CueChasing, true)
			a.ResumeNavigation()
			a.ChasePlayer()
		},
	}
	a.log.Debug("start chase")
}

// StartWakeUp plays the wake cue, halts, and schedules pursuit after delay.
// Ignored while chasing, while a transition is pending, or once caught.
func (a *Agent) StartWakeUp(delay float64) {
	if a.chasing || a.pending != nil || a.caught {
		return
	}

	a.resetTrigger(CueWakeUp)
	a.trigger(CueWakeUp)
	a.setBool(CueSleeping, true)
	a.haltNavigation()

	a.pending = &transition{
		kind:      transitionWake,
		remaining: delay,
		effect: func() {
			a.chasing = true
			a.setBool(CueSleeping, false)
			a.setBool(CueIdle, false)
			a.setBool(CueRunning, true)
			a.ResumeNavigation()
			a.ChasePlayer()
		},
	}
	a.log.WithField("delay", delay).Debug("start wake up")
}

// StopChase cancels any pending transition and leaves pursuit.
func (a *Agent) StopChase(pauseNavigation bool) {
	a.pending = nil
	a.chasing = false

	a.setBool(CueChasing, false)
	a.resetTrigger(CueStartChase)

	if a.deps.Navigator != nil {
		a.deps.Navigator.SetStopped(pauseNavigation)
	}
	a.log.WithField("paused", pauseNavigation).Debug("stop chase")
}

// Reset cancels any pending transition, drops pursuit and restarts the
// strategy from its initial state. The caught latch survives.
func (a *Agent) Reset() {
	a.pending = nil
	a.chasing = false
	a.attacked = false
	if a.strategy != nil {
		a.strategy.Init(a)
	}
}

// ChasePlayer sets the navigation destination to the live target position.
func (a *Agent) ChasePlayer() {
	if p, ok := a.TargetPosition(); ok {
		a.MoveTo(p)
	}
}

// MoveTo sets the navigation destination.
func (a *Agent) MoveTo(p common.Vec3) {
	if a.deps.Navigator != nil {
		a.deps.Navigator.SetDestination(p)
	}
}

// ResumeNavigation lets the navigator move the body again.
func (a *Agent) ResumeNavigation() {
	if a.deps.Navigator != nil && a.deps.Navigator.Stopped() {
		a.deps.Navigator.SetStopped(false)
	}
}

func (a *Agent) haltNavigation() {
	if a.deps.Navigator != nil {
		a.deps.Navigator.SetStopped(true)
	}
}

// Arrived reports whether the navigator has reached its destination.
func (a *Agent) Arrived() bool {
	nav := a.deps.Navigator
	if nav == nil {
		return false
	}
	return !nav.PathPending() && nav.RemainingDistance() <= nav.StoppingDistance()+arrivalTolerance
}

// PlayWalk sets the walking cue.
func (a *Agent) PlayWalk(walking bool) {
	a.setBool(CueWalking, walking)
}

// PlayIdle clears the movement cues.
func (a *Agent) PlayIdle() {
	a.setBool(CueWalking, false)
	a.setBool(CueChasing, false)
	a.setBool(CueRunning, false)
	a.setBool(CueSleeping, false)
}

// PlayRun sets the running cue; running clears the other pose cues.
func (a *Agent) PlayRun(running bool) {
	a.setBool(CueRunning, running)
	if running {
		a.setBool(CueIdle, false)
		a.setBool(CueWalking, false)
		a.setBool(CueChasing, false)
		a.setBool(CueSleeping, false)
	}
}

// PlaySleep switches every cue to the sleeping pose and halts navigation.
func (a *Agent) PlaySleep() {
	a.resetTrigger(CueWakeUp)
	a.setBool(CueSleeping, true)
	a.setBool(CueRunning, false)
	a.setBool(CueIdle, false)
	a.setBool(CueWalking, false)
	a.setBool(CueChasing, false)
	a.haltNavigation()
}

func (a *Agent) setBool(cue Cue, v bool) {
	if a.deps.Animator != nil {
		a.deps.Animator.SetBool(cue, v)
	}
}

func (a *Agent) trigger(cue Cue) {
	if a.deps.Animator != nil {
		a.deps.Animator.SetTrigger(cue)
	}
}

func (a *Agent) resetTrigger(cue Cue) {
	if a.deps.Animator != nil {
		a.deps.Animator.ResetTrigger(cue)
	}
}
