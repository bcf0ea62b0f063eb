package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lurker/ecs"
)

type recordingDeath struct {
	events []ecs.OutcomeEvent
}

func (d *recordingDeath) TriggerDeath(evt ecs.OutcomeEvent) {
	d.events = append(d.events, evt)
}

func TestOutcomeSystemRoutesEvents(t *testing.T) {
	w := ecs.NewWorld()
	death := &recordingDeath{}
	s := NewOutcomeSystem(death)

	q := w.Events()
	q.Push(ecs.Event{Type: ecs.EventOutcome, Data: ecs.OutcomeEvent{Kind: ecs.OutcomeAttack, Name: "a"}})
	q.Push(ecs.Event{Type: ecs.EventOutcome, Data: ecs.OutcomeEvent{Kind: ecs.OutcomeAttack, Name: "a"}})
	q.Push(ecs.Event{Type: "other", Data: 3})
	q.Push(ecs.Event{Type: ecs.EventOutcome, Data: "not an outcome"})
	q.Push(ecs.Event{Type: ecs.EventOutcome, Data: ecs.OutcomeEvent{Kind: ecs.OutcomeCatch, Name: "b"}})

	s.Update(w)

	assert.Equal(t, 2, s.Attacks)
	assert.Equal(t, 1, s.Catches)
	require.Len(t, death.events, 1)
	assert.Equal(t, "b", death.events[0].Name)
	assert.Zero(t, q.Len())
}

func TestOutcomeSystemWithoutHandler(t *testing.T) {
	w := ecs.NewWorld()
	s := NewOutcomeSystem(nil)
	w.Events().Push(ecs.Event{Type: ecs.EventOutcome, Data: ecs.OutcomeEvent{Kind: ecs.OutcomeCatch}})

	assert.NotPanics(t, func() { s.Update(w) })
	assert.Equal(t, 1, s.Catches)
}
