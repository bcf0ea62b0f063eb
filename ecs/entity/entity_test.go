package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lurker/common"
	"github.com/milk9111/lurker/ecs"
	"github.com/milk9111/lurker/ecs/component"
	"github.com/milk9111/lurker/prefabs"
)

func newWorld() *ecs.World {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	return w
}

func playerSpec() *prefabs.PlayerSpec {
	return &prefabs.PlayerSpec{
		Name:   "player",
		Speed:  2,
		Radius: 0.35,
		Colliders: []prefabs.ColliderSpec{
			{Name: "satchel", Offset: prefabs.Vec3Spec{Z: -0.4}, Radius: 0.2},
		},
	}
}

func enemySpec() *prefabs.EnemySpec {
	spec := prefabs.DefaultEnemySpec()
	return &spec
}

func TestBuildersNeedPhysics(t *testing.T) {
	w := ecs.NewWorld()

	_, err := BuildObstacle(w, common.Vec3{}, common.Vec3{X: 1, Y: 1, Z: 1})
	assert.ErrorIs(t, err, ErrNoPhysics)
	_, err = BuildPlayer(w, playerSpec(), PlayerPlacement{})
	assert.ErrorIs(t, err, ErrNoPhysics)
	_, err = BuildEnemy(w, enemySpec(), EnemyPlacement{Name: "e"}, 0, nil)
	assert.ErrorIs(t, err, ErrNoPhysics)
	assert.Empty(t, ecs.Entities(w))
}

func TestBuildPlayer(t *testing.T) {
	w := newWorld()
	player, err := BuildPlayer(w, playerSpec(), PlayerPlacement{Position: common.Vec3{Z: 2}, Goal: common.Vec3{X: 3}})
	require.NoError(t, err)

	ctl, ok := ecs.Get(w, player, component.PlayerControlComponent)
	require.True(t, ok)
	assert.True(t, ctl.Enabled)
	assert.Equal(t, 2.0, ctl.Speed)
	assert.Equal(t, common.Vec3{X: 3}, ctl.Goal)

	spec := playerSpec()
	spec.Script = "pace"
	other, err := BuildPlayer(w, spec, PlayerPlacement{Script: "seek"})
	require.NoError(t, err)
	ctl, _ = ecs.Get(w, other, component.PlayerControlComponent)
	assert.Equal(t, "seek", ctl.Script, "the placement script wins")

	var children []ecs.Entity
	ecs.ForEach(w, component.ParentComponent, func(e ecs.Entity, p *component.Parent) {
		if ecs.Entity(p.Entity) == player {
			children = append(children, e)
		}
	})
	assert.Len(t, children, 1)
}

func TestTargetOwnsChildColliders(t *testing.T) {
	w := newWorld()
	player, err := BuildPlayer(w, playerSpec(), PlayerPlacement{})
	require.NoError(t, err)
	stranger := ecs.CreateEntity(w)

	child, satchel, ok := ecs.First(w, component.ParentComponent)
	require.True(t, ok)
	require.Equal(t, uint64(player), satchel.Entity)

	target := NewTarget(w, player)
	assert.True(t, target.Owns(uint64(player)))
	assert.True(t, target.Owns(uint64(child)))
	assert.False(t, target.Owns(uint64(stranger)))

	target.SetControlEnabled(false)
	ctl, _ := ecs.Get(w, player, component.PlayerControlComponent)
	assert.False(t, ctl.Enabled)
}

func TestTargetOwnsStopsOnCycles(t *testing.T) {
	w := newWorld()
	player := ecs.CreateEntity(w)
	a := ecs.CreateEntity(w)
	b := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, a, component.ParentComponent, &component.Parent{Entity: uint64(b)}))
	require.NoError(t, ecs.Add(w, b, component.ParentComponent, &component.Parent{Entity: uint64(a)}))

	assert.False(t, NewTarget(w, player).Owns(uint64(a)))
}

func TestBuildEnemySees(t *testing.T) {
	tests := []struct {
		name string
		wall bool
		want bool
	}{
		{name: "clear", want: true},
		{name: "walled", wall: true, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld()
			player, err := BuildPlayer(w, playerSpec(), PlayerPlacement{Position: common.Vec3{Z: 4}})
			require.NoError(t, err)
			if tc.wall {
				_, err := BuildObstacle(w, common.Vec3{Z: 2}, common.Vec3{X: 4, Y: 3, Z: 0.5})
				require.NoError(t, err)
			}

			e, err := BuildEnemy(w, enemySpec(), EnemyPlacement{Name: "watcher", Prefab: "stalker.yaml"}, player, nil)
			require.NoError(t, err)

			en, ok := ecs.Get(w, e, component.EnemyComponent)
			require.True(t, ok)
			require.NotNil(t, en.Agent)
			require.NotNil(t, en.Nav)
			assert.Equal(t, "watcher", en.Agent.Name())
			assert.Equal(t, "stalker.yaml", en.Prefab)
			assert.True(t, ecs.Has(w, e, component.AnimatorComponent))
			assert.Equal(t, tc.want, en.Agent.CanSeePlayer())
		})
	}
}

func TestBuildEnemyCatchPushesOutcome(t *testing.T) {
	w := newWorld()
	player, err := BuildPlayer(w, playerSpec(), PlayerPlacement{Position: common.Vec3{Z: 1}})
	require.NoError(t, err)
	e, err := BuildEnemy(w, enemySpec(), EnemyPlacement{Name: "biter"}, player, nil)
	require.NoError(t, err)

	en, _ := ecs.Get(w, e, component.EnemyComponent)
	en.Agent.Tick(0.1)
	en.Agent.Tick(0.1)

	evts := w.Events().Drain()
	require.Len(t, evts, 2)
	out, ok := evts[0].Data.(ecs.OutcomeEvent)
	require.True(t, ok)
	assert.Equal(t, ecs.OutcomeCatch, out.Kind)
	assert.Equal(t, e, out.Enemy)
	assert.Equal(t, player, out.Target)
	assert.Equal(t, "biter", out.Name)

	next, ok := evts[1].Data.(ecs.OutcomeEvent)
	require.True(t, ok)
	assert.Equal(t, ecs.OutcomeAttack, next.Kind, "the caught player is still in attack range")

	ctl, _ := ecs.Get(w, player, component.PlayerControlComponent)
	assert.False(t, ctl.Enabled)
}

func TestBuildEnemyWithoutPlayer(t *testing.T) {
	w := newWorld()
	e, err := BuildEnemy(w, enemySpec(), EnemyPlacement{Name: "alone"}, 0, nil)
	require.NoError(t, err)

	en, _ := ecs.Get(w, e, component.EnemyComponent)
	assert.NotPanics(t, func() { en.Agent.Tick(0.1) })
	assert.False(t, en.Agent.CanSeePlayer())
	assert.Zero(t, w.Events().Len())
}
