package component

import "github.com/milk9111/lurker/enemy"

// Animator records the presentation cues an enemy emits. Nothing renders
// them; the sandbox shows them as text and tests read them back.
type Animator struct {
	Bools    map[enemy.Cue]bool
	Triggers map[enemy.Cue]bool
	// Last is the most recent trigger fired.
	Last enemy.Cue
}

func NewAnimator() *Animator {
	return &Animator{
		Bools:    make(map[enemy.Cue]bool),
		Triggers: make(map[enemy.Cue]bool),
	}
}

func (a *Animator) SetBool(cue enemy.Cue, v bool) {
	if a.Bools == nil {
		a.Bools = make(map[enemy.Cue]bool)
	}
	a.Bools[cue] = v
}

func (a *Animator) SetTrigger(cue enemy.Cue) {
	if a.Triggers == nil {
		a.Triggers = make(map[enemy.Cue]bool)
	}
	a.Triggers[cue] = true
	a.Last = cue
}

func (a *Animator) ResetTrigger(cue enemy.Cue) {
	delete(a.Triggers, cue)
}

// Consume reports whether cue is set and clears it.
func (a *Animator) Consume(cue enemy.Cue) bool {
	if !a.Triggers[cue] {
		return false
	}
	delete(a.Triggers, cue)
	return true
}

var AnimatorComponent = NewComponentKind[Animator]()
