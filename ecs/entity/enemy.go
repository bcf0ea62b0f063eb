package entity

import (
	"fmt"

	"github.com/milk9111/lurker/common"
	"github.com/milk9111/lurker/ecs"
	"github.com/milk9111/lurker/ecs/component"
	"github.com/milk9111/lurker/enemy"
	"github.com/milk9111/lurker/logger"
	"github.com/milk9111/lurker/nav"
	"github.com/milk9111/lurker/prefabs"
)

// EnemyPlacement positions an enemy prefab in a level.
type EnemyPlacement struct {
	Name      string
	Prefab    string
	Position  common.Vec3
	Yaw       float64
	Waypoints []common.Vec3
}

// BuildEnemy creates an enemy and wires its agent to the world: eyes on its
// transform, a navigator on its physics body, the player as target and
// outcomes pushed to the event queue. player may be 0 for a level without one.
func BuildEnemy(w *ecs.World, spec *prefabs.EnemySpec, at EnemyPlacement, player ecs.Entity, rng enemy.Rand) (ecs.Entity, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, ErrNoPhysics
	}

	cfg, err := spec.AgentConfig(at.Name)
	if err != nil {
		return 0, fmt.Errorf("enemy %s: %w", at.Name, err)
	}
	strategy, err := spec.NewStrategy(at.Waypoints, rng)
	if err != nil {
		return 0, fmt.Errorf("enemy %s: %w", at.Name, err)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.EnemyTagComponent, &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: at.Position, Yaw: at.Yaw}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.EyesComponent, &component.Eyes{Height: spec.Move.EyeHeight}); err != nil {
		return 0, fmt.Errorf("enemy: add eyes: %w", err)
	}
	anim := component.NewAnimator()
	if err := ecs.Add(w, e, component.AnimatorComponent, anim); err != nil {
		return 0, fmt.Errorf("enemy: add animator: %w", err)
	}

	body := pw.AddActor(e, at.Position, spec.Move.Radius, ecs.LayerEnemy)
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Body:   body,
		Radius: spec.Move.Radius,
		Layer:  ecs.LayerEnemy,
		Height: at.Position.Y,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add physics body: %w", err)
	}
	navAgent := nav.New(body, spec.Move.Speed, spec.Move.StoppingDistance, at.Position.Y)

	deps := enemy.Deps{
		Eyes:      eyes{w: w, e: e},
		Navigator: navAgent,
		Animator:  anim,
		Occluder:  pw.Occluder(e),
		Outcomes:  outcomeSink{w: w, enemy: e, target: player},
		Log:       logger.For("enemy").WithField("entity", e.String()),
	}
	if ecs.IsAlive(w, player) {
		deps.Target = NewTarget(w, player)
	}

	agent := enemy.New(cfg, deps, strategy)
	if err := ecs.Add(w, e, component.EnemyComponent, &component.Enemy{
		Prefab: at.Prefab,
		Agent:  agent,
		Nav:    navAgent,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy: %w", err)
	}
	return e, nil
}
