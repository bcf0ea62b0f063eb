package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/lurker/common"
	"github.com/milk9111/lurker/ecs"
	"github.com/milk9111/lurker/ecs/component"
)

var ErrNoPhysics = errors.New("entity: world has no physics")

// BuildObstacle adds a static wall box centred on center.
func BuildObstacle(w *ecs.World, center, size common.Vec3) (ecs.Entity, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, ErrNoPhysics
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ObstacleTagComponent, &component.ObstacleTag{}); err != nil {
		return 0, fmt.Errorf("obstacle: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: center}); err != nil {
		return 0, fmt.Errorf("obstacle: add transform: %w", err)
	}

	shape := pw.AddObstacle(e, center, size.X, size.Z, ecs.LayerWall)
	if err := ecs.Add(w, e, component.ObstacleComponent, &component.Obstacle{
		Shape: shape,
		SizeX: size.X,
		SizeY: size.Y,
		SizeZ: size.Z,
		Layer: ecs.LayerWall,
	}); err != nil {
		return 0, fmt.Errorf("obstacle: add obstacle: %w", err)
	}
	return e, nil
}
