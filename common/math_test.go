package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngleDeg(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"same_direction", Vec3{Z: 1}, Vec3{Z: 5}, 0},
		{"right_angle", Vec3{Z: 1}, Vec3{X: 1}, 90},
		{"opposite", Vec3{Z: 1}, Vec3{Z: -1}, 180},
		{"zero_vector", Vec3{}, Vec3{X: 1}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, AngleDeg(tc.a, tc.b), 1e-9)
		})
	}
}

func TestYawRoundTrip(t *testing.T) {
	for _, yaw := range []float64{0, math.Pi / 4, -math.Pi / 2, 3} {
		assert.InDelta(t, yaw, YawOf(YawForward(yaw)), 1e-9)
	}
	assert.InDelta(t, 1.0, YawForward(0).Z, 1e-9)
}

func TestFlatAndNormalize(t *testing.T) {
	v := Vec3{X: 3, Y: 7, Z: 4}
	assert.Equal(t, Vec3{X: 3, Z: 4}, v.Flat())
	assert.InDelta(t, 1.0, v.Flat().Normalize().Len(), 1e-9)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 5.0, Distance(Vec3{}, Vec3{X: 3, Z: 4}), 1e-9)
}
