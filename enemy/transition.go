package enemy

type transitionKind int

const (
	transitionChase transitionKind = iota + 1
	transitionWake
)

func (k transitionKind) String() string {
	switch k {
	case transitionChase:
		return "chase"
	case transitionWake:
		return "wake"
	default:
		return "none"
	}
}

// transition is a deferred state change. It fires once remaining reaches
// zero; dropping the pointer cancels it.
type transition struct {
	kind      transitionKind
	remaining float64
	effect    func()
}

// advance consumes dt and reports whether the transition is due.
func (t *transition) advance(dt float64) bool {
	t.remaining -= dt
	return t.remaining <= 0
}
