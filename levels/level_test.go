package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lurker/common"
)

func TestLoadEmbeddedLevels(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := Load(name)
			require.NoError(t, err)
			assert.NotEmpty(t, lvl.Name)
			assert.NotEmpty(t, lvl.Enemies)
		})
	}
}

func TestLoadCourtyard(t *testing.T) {
	lvl, err := Load("courtyard")
	require.NoError(t, err)

	assert.Equal(t, int64(42), lvl.Seed)
	assert.InDelta(t, 1.0/60.0, lvl.TimeStep(), 1e-12)
	assert.Equal(t, "player.yaml", lvl.Player.Prefab)
	require.Len(t, lvl.Enemies, 2)
	assert.Equal(t, "stalker.yaml", lvl.Enemies[0].Prefab)
	require.Len(t, lvl.Enemies[0].Waypoints, 4)
	assert.Equal(t, common.Vec3{X: 5, Z: 6}, lvl.Enemies[0].Waypoints[1].Vec3())
	assert.Len(t, lvl.Obstacles, 4)
}

func TestParseDefaults(t *testing.T) {
	lvl, err := Parse([]byte("name: tiny\nenemies:\n  - prefab: stalker.yaml\n"))
	require.NoError(t, err)
	assert.Equal(t, 60, lvl.TPS)
	assert.Equal(t, "player.yaml", lvl.Player.Prefab)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{name: "no_enemies", src: "name: empty\n", want: ErrNoEnemies},
		{name: "bad_tps", src: "tps: -1\nenemies: [{prefab: a.yaml}]\n", want: ErrInvalidLevel},
		{name: "enemy_without_prefab", src: "enemies: [{name: x}]\n", want: ErrInvalidLevel},
		{name: "flat_obstacle", src: "obstacles: [{size: {x: 1}}]\nenemies: [{prefab: a.yaml}]\n", want: ErrInvalidLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := Parse([]byte("enemies: [oops"))
	assert.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("does-not-exist")
	assert.Error(t, err)
	_, err = LoadFile("does-not-exist.yaml")
	assert.Error(t, err)
}
