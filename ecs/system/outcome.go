package system

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/lurker/ecs"
	"github.com/milk9111/lurker/logger"
)

// DeathHandler reacts to the player being caught.
type DeathHandler interface {
	TriggerDeath(evt ecs.OutcomeEvent)
}

// OutcomeSystem drains the event queue at the end of a step, counting
// outcomes and forwarding catches to the death handler.
type OutcomeSystem struct {
	Death DeathHandler

	Catches int
	Attacks int

	log *logrus.Entry
}

func NewOutcomeSystem(death DeathHandler) *OutcomeSystem {
	return &OutcomeSystem{Death: death, log: logger.For("outcome")}
}

func (s *OutcomeSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		if evt.Type != ecs.EventOutcome {
			continue
		}
		outcome, ok := evt.Data.(ecs.OutcomeEvent)
		if !ok {
			continue
		}

		fields := logrus.Fields{"enemy": outcome.Name, "tick": w.Tick()}
		switch outcome.Kind {
		case ecs.OutcomeCatch:
			s.Catches++
			s.log.WithFields(fields).Info("player caught")
			if s.Death != nil {
				s.Death.TriggerDeath(outcome)
			}
		case ecs.OutcomeAttack:
			s.Attacks++
			s.log.WithFields(fields).Debug("attack")
		}
	}
}
