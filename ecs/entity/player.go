package entity

import (
	"fmt"

	"github.com/milk9111/lurker/common"
	"github.com/milk9111/lurker/ecs"
	"github.com/milk9111/lurker/ecs/component"
	"github.com/milk9111/lurker/prefabs"
)

// PlayerPlacement positions a player prefab in a level.
type PlayerPlacement struct {
	Position common.Vec3
	Yaw      float64
	// Script overrides the prefab controller when set.
	Script string
	Goal   common.Vec3
}

// BuildPlayer creates the player body plus one child entity per extra collider.
func BuildPlayer(w *ecs.World, spec *prefabs.PlayerSpec, at PlayerPlacement) (ecs.Entity, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, ErrNoPhysics
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: at.Position, Yaw: at.Yaw}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	body := pw.AddActor(e, at.Position, spec.Radius, ecs.LayerPlayer)
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Body:   body,
		Radius: spec.Radius,
		Layer:  ecs.LayerPlayer,
		Height: at.Position.Y,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}

	script := spec.Script
	if at.Script != "" {
		script = at.Script
	}
	if err := ecs.Add(w, e, component.PlayerControlComponent, &component.PlayerControl{
		Enabled: true,
		Speed:   spec.Speed,
		Script:  script,
		Goal:    at.Goal,
	}); err != nil {
		return 0, fmt.Errorf("player: add control: %w", err)
	}

	for _, c := range spec.Colliders {
		child := ecs.CreateEntity(w)
		if err := ecs.Add(w, child, component.ParentComponent, &component.Parent{Entity: uint64(e)}); err != nil {
			return 0, fmt.Errorf("player: add %s parent: %w", c.Name, err)
		}
		if _, err := pw.AttachCollider(child, e, c.Offset.Vec3(), c.Radius, ecs.LayerPlayer); err != nil {
			return 0, fmt.Errorf("player: attach %s: %w", c.Name, err)
		}
	}
	return e, nil
}
