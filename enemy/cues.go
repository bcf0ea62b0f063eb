package enemy

// Cue names an animation parameter on the cue sink.
type Cue string

const (
	CueWalking    Cue = "IsWalking"
	CueIdle       Cue = "IsIdle"
	CueRunning    Cue = "IsRunning"
	CueSleeping   Cue = "IsSleeping"
	CueChasing    Cue = "IsChasing"
	CueAttack     Cue = "Attack"
	CueStartChase Cue = "StartChase"
	CueWakeUp     Cue = "WakeUp"
)

// State is the active behavior state of an agent's strategy.
type State int

const (
	StatePatrolling State = iota
	StateIdle
	StateChasing
	StateSleeping
)

func (s State) String() string {
	switch s {
	case StatePatrolling:
		return "patrolling"
	case StateIdle:
		return "idle"
	case StateChasing:
		return "chasing"
	case StateSleeping:
		return "sleeping"
	default:
		return "unknown"
	}
}
