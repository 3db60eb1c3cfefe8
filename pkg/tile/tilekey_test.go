package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyForCoord(t *testing.T) {
	testCases := []struct {
		name  string
		lat   float64
		lon   float64
		z     uint8
		wantX uint32
		wantY uint32
	}{
		{name: "origin", lat: 0, lon: 0, z: 1, wantX: 1, wantY: 1},
		{name: "top-left corner clamps", lat: 89.9, lon: -180, z: 2, wantX: 0, wantY: 0},
		{name: "bottom-right corner clamps", lat: -85, lon: 180, z: 2, wantX: 3, wantY: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			k := KeyForCoord(tc.lat, tc.lon, tc.z)
			assert.Equal(t, tc.wantX, k.X)
			assert.Equal(t, tc.wantY, k.Y)
			assert.True(t, k.Valid())
		})
	}
}

func TestRectKeysRowMajor(t *testing.T) {
	r := Rect{Z: 5, MinX: 1, MinY: 1, MaxX: 2, MaxY: 2}
	keys := r.Keys()
	want := []Key{
		{Z: 5, X: 1, Y: 1}, {Z: 5, X: 2, Y: 1},
		{Z: 5, X: 1, Y: 2}, {Z: 5, X: 2, Y: 2},
	}
	assert.Equal(t, want, keys)
}

func TestInflatedRectClampsToGrid(t *testing.T) {
	a := Key{Z: 3, X: 0, Y: 0}
	b := Key{Z: 3, X: 1, Y: 1}
	r := InflatedRect(a, b, 5)
	assert.Equal(t, uint32(0), r.MinX)
	assert.Equal(t, uint32(0), r.MinY)
	n := uint32(1) << 3
	assert.LessOrEqual(t, r.MaxX, n-1)
	assert.LessOrEqual(t, r.MaxY, n-1)
}

func TestInflatedRectSpansBothEndpoints(t *testing.T) {
	a := Key{Z: 10, X: 100, Y: 200}
	b := Key{Z: 10, X: 150, Y: 180}
	r := InflatedRect(a, b, 2)
	assert.LessOrEqual(t, r.MinX, a.X-2)
	assert.GreaterOrEqual(t, r.MaxX, b.X+2)
	assert.LessOrEqual(t, r.MinY, b.Y-2)
	assert.GreaterOrEqual(t, r.MaxY, a.Y+2)
}
