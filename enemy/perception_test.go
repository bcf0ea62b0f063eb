package enemy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/lurker/common"
)

func lookFrom(p Perception, eye, forward common.Vec3, occ *fakeOccluder) bool {
	return p.CanSee(eye, forward, occ.target.pos, occ, occ.target.Owns)
}

func TestPerceptionScenarios(t *testing.T) {
	p := Perception{ViewDistance: 12, ViewAngle: 160, HeightOffset: 1, OcclusionMask: AllLayers}
	eye := common.Vec3{Y: 1}
	forward := common.Vec3{Z: 1}

	tests := []struct {
		name   string
		target common.Vec3
		walls  []sphere
		want   bool
	}{
		{name: "ahead_unobstructed", target: common.Vec3{Z: 5}, want: true},
		{name: "ninety_degrees_off_axis", target: common.Vec3{X: 5}, want: false},
		{name: "beyond_view_distance", target: common.Vec3{Z: 15}, want: false},
		{
			name:   "beyond_view_distance_obstructed",
			target: common.Vec3{Z: 15},
			walls:  []sphere{{center: common.Vec3{Y: 1, Z: 7}, radius: 1, collider: wallCollider}},
			want:   false,
		},
		{
			name:   "wall_between",
			target: common.Vec3{Z: 5},
			walls:  []sphere{{center: common.Vec3{Y: 1, Z: 2.5}, radius: 0.5, collider: wallCollider}},
			want:   false,
		},
		{
			name:   "wall_behind_target",
			target: common.Vec3{Z: 5},
			walls:  []sphere{{center: common.Vec3{Y: 1, Z: 8}, radius: 0.5, collider: wallCollider}},
			want:   true,
		},
		{
			name:   "descendant_collider_counts_as_target",
			target: common.Vec3{Z: 5},
			walls:  []sphere{{center: common.Vec3{Y: 1, Z: 4}, radius: 0.3, collider: childCollider}},
			want:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target := newFakeTarget(tc.target)
			occ := &fakeOccluder{target: target, targetRadius: 0.4, spheres: tc.walls}
			assert.Equal(t, tc.want, lookFrom(p, eye, forward, occ))
		})
	}
}

func TestPerceptionRejectsBeyondViewDistance(t *testing.T) {
	p := Perception{ViewDistance: 12, ViewAngle: 360, HeightOffset: 1, OcclusionMask: AllLayers}
	eye := common.Vec3{Y: 1}

	for deg := 0; deg < 360; deg += 15 {
		yaw := float64(deg) * math.Pi / 180
		for _, dist := range []float64{12.01, 13, 30} {
			target := newFakeTarget(common.YawForward(yaw).Scale(dist))
			occ := &fakeOccluder{target: target, targetRadius: 0.4}
			assert.False(t, lookFrom(p, eye, common.Vec3{Z: 1}, occ), "deg=%d dist=%v", deg, dist)
			assert.Zero(t, occ.calls, "distance test must reject before any raycast")
		}
	}
}

func TestPerceptionRejectsOutsideCone(t *testing.T) {
	p := Perception{ViewDistance: 12, ViewAngle: 160, HeightOffset: 1, OcclusionMask: AllLayers}
	eye := common.Vec3{Y: 1}

	for deg := 81; deg <= 279; deg += 6 {
		yaw := float64(deg) * math.Pi / 180
		target := newFakeTarget(common.YawForward(yaw).Scale(5))
		occ := &fakeOccluder{target: target, targetRadius: 0.4}
		assert.False(t, lookFrom(p, eye, common.Vec3{Z: 1}, occ), "deg=%d", deg)
	}

	for _, deg := range []int{-79, -40, 0, 40, 79} {
		yaw := float64(deg) * math.Pi / 180
		target := newFakeTarget(common.YawForward(yaw).Scale(5))
		occ := &fakeOccluder{target: target, targetRadius: 0.4}
		assert.True(t, lookFrom(p, eye, common.Vec3{Z: 1}, occ), "deg=%d", deg)
	}
}

func TestPerceptionConeIgnoresPitch(t *testing.T) {
	p := Perception{ViewDistance: 12, ViewAngle: 60, HeightOffset: 1, OcclusionMask: AllLayers}
	// Looking slightly down; the cone test works on the ground plane only.
	forward := common.Vec3{Y: -0.8, Z: 0.2}
	target := newFakeTarget(common.Vec3{Y: -3, Z: 5})
	occ := &fakeOccluder{target: target, targetRadius: 0.4}

	assert.True(t, lookFrom(p, common.Vec3{Y: 1}, forward, occ))
}

func TestPerceptionEdgeCases(t *testing.T) {
	p := DefaultPerception()

	t.Run("zero_displacement_is_visible", func(t *testing.T) {
		target := newFakeTarget(common.Vec3{})
		assert.True(t, p.CanSee(common.Vec3{Y: 1}, common.Vec3{Z: 1}, target.pos, nil, nil))
	})

	t.Run("nil_occluder_is_not_visible", func(t *testing.T) {
		target := newFakeTarget(common.Vec3{Z: 5})
		assert.False(t, p.CanSee(common.Vec3{Y: 1}, common.Vec3{Z: 1}, target.pos, nil, target.Owns))
	})

	t.Run("no_hit_is_not_visible", func(t *testing.T) {
		occ := &fakeOccluder{}
		target := newFakeTarget(common.Vec3{Z: 5})
		assert.False(t, p.CanSee(common.Vec3{Y: 1}, common.Vec3{Z: 1}, target.pos, occ, target.Owns))
	})

	t.Run("mask_is_forwarded", func(t *testing.T) {
		masked := p
		masked.OcclusionMask = 1 << 3
		target := newFakeTarget(common.Vec3{Z: 5})
		occ := &fakeOccluder{
			target:       target,
			targetRadius: 0.4,
			spheres:      []sphere{{center: common.Vec3{Y: 1, Z: 2}, radius: 0.5, collider: wallCollider, layer: 1 << 1}},
		}
		// The wall's layer is outside the mask and the target's layer too.
		assert.False(t, masked.CanSee(common.Vec3{Y: 1}, common.Vec3{Z: 1}, target.pos, occ, target.Owns))
		assert.Equal(t, uint(1<<3), occ.lastMask)
	})
}

func TestAgentCanSeePlayerWithoutEyes(t *testing.T) {
	h := newHarness()
	h.show()
	deps := h.deps()
	deps.Eyes = nil
	a := New(DefaultConfig(), deps, &stubStrategy{})

	assert.False(t, a.CanSeePlayer())

	withEyes := New(DefaultConfig(), h.deps(), &stubStrategy{})
	assert.True(t, withEyes.CanSeePlayer())
}
