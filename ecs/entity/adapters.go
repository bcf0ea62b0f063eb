package entity

import (
	"github.com/milk9111/lurker/common"
	"github.com/milk9111/lurker/ecs"
	"github.com/milk9111/lurker/ecs/component"
	"github.com/milk9111/lurker/enemy"
)

// maxParentDepth bounds Parent chain walks so a bad cycle cannot hang a tick.
const maxParentDepth = 8

// eyes reads the sight origin from an entity's transform.
type eyes struct {
	w *ecs.World
	e ecs.Entity
}

func (s eyes) Position() common.Vec3 {
	t, ok := ecs.Get(s.w, s.e, component.TransformComponent)
	if !ok {
		return common.Vec3{}
	}
	height := 0.0
	if ey, ok := ecs.Get(s.w, s.e, component.EyesComponent); ok {
		height = ey.Height
	}
	return t.Position.Add(common.Up.Scale(height))
}

func (s eyes) Forward() common.Vec3 {
	t, ok := ecs.Get(s.w, s.e, component.TransformComponent)
	if !ok {
		return common.Vec3{Z: 1}
	}
	return t.Forward()
}

// Target exposes the player entity to enemy agents.
type Target struct {
	w      *ecs.World
	player ecs.Entity
}

func NewTarget(w *ecs.World, player ecs.Entity) *Target {
	return &Target{w: w, player: player}
}

func (t *Target) Entity() ecs.Entity {
	return t.player
}

func (t *Target) Position() common.Vec3 {
	tr, ok := ecs.Get(t.w, t.player, component.TransformComponent)
	if !ok {
		return common.Vec3{}
	}
	return tr.Position
}

// Owns reports whether collider is the player or one of its descendants.
func (t *Target) Owns(collider uint64) bool {
	e := ecs.Entity(collider)
	for i := 0; i < maxParentDepth; i++ {
		if e == t.player {
			return true
		}
		p, ok := ecs.Get(t.w, e, component.ParentComponent)
		if !ok {
			return false
		}
		e = ecs.Entity(p.Entity)
	}
	return false
}

func (t *Target) SetControlEnabled(enabled bool) {
	if ctl, ok := ecs.Get(t.w, t.player, component.PlayerControlComponent); ok {
		ctl.Enabled = enabled
	}
}

// outcomeSink turns agent outcomes into world events.
type outcomeSink struct {
	w      *ecs.World
	enemy  ecs.Entity
	target ecs.Entity
}

func (s outcomeSink) OnCatch(a *enemy.Agent) {
	s.push(a, ecs.OutcomeCatch)
}

func (s outcomeSink) OnAttack(a *enemy.Agent) {
	s.push(a, ecs.OutcomeAttack)
}

func (s outcomeSink) push(a *enemy.Agent, kind ecs.OutcomeKind) {
	s.w.Events().Push(ecs.Event{
		Type: ecs.EventOutcome,
		Data: ecs.OutcomeEvent{Enemy: s.enemy, Target: s.target, Kind: kind, Name: a.Name()},
	})
}
