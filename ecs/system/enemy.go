package system

import (
	"github.com/milk9111/lurker/ecs"
	"github.com/milk9111/lurker/ecs/component"
)

// EnemySystem ticks every enemy agent once per world step.
type EnemySystem struct{}

func NewEnemySystem() *EnemySystem {
	return &EnemySystem{}
}

func (s *EnemySystem) Update(w *ecs.World) {
	dt := w.TimeStep()
	ecs.ForEach(w, component.EnemyComponent, func(_ ecs.Entity, en *component.Enemy) {
		if en.Agent != nil {
			en.Agent.Tick(dt)
		}
	})
}

// NavigationSystem turns navigator destinations into body velocities for the
// coming physics step.
type NavigationSystem struct{}

func NewNavigationSystem() *NavigationSystem {
	return &NavigationSystem{}
}

func (s *NavigationSystem) Update(w *ecs.World) {
	dt := w.TimeStep()
	ecs.ForEach(w, component.EnemyComponent, func(_ ecs.Entity, en *component.Enemy) {
		if en.Nav != nil {
			en.Nav.Update(dt)
		}
	})
}
