package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistanceMZeroForSamePoint(t *testing.T) {
	p := NewCoordinate(-6.9, 107.6)
	assert.Equal(t, 0.0, HaversineDistanceM(p, p))
}

func TestHaversineDistanceMKnownSpan(t *testing.T) {
	// one degree of latitude is close to 111.2 km everywhere.
	a := NewCoordinate(0, 0)
	b := NewCoordinate(1, 0)
	d := HaversineDistanceM(a, b)
	assert.InDelta(t, 111195.0, d, 500.0)
}

func TestPathLengthMSumsConsecutivePairs(t *testing.T) {
	pts := []Coordinate{
		NewCoordinate(0, 0),
		NewCoordinate(0, 1),
		NewCoordinate(0, 2),
	}
	want := HaversineDistanceM(pts[0], pts[1]) + HaversineDistanceM(pts[1], pts[2])
	assert.Equal(t, want, PathLengthM(pts))
}

func TestPathLengthMEmptyOrSinglePoint(t *testing.T) {
	assert.Equal(t, 0.0, PathLengthM(nil))
	assert.Equal(t, 0.0, PathLengthM([]Coordinate{NewCoordinate(1, 1)}))
}

func TestGetDestinationPointRoundTripsDistance(t *testing.T) {
	lat, lon := -6.9, 107.6
	for _, bearing := range []float64{0, 45, 90, 180, 270} {
		destLat, destLon := GetDestinationPoint(lat, lon, bearing, 1000)
		got := HaversineDistanceM(NewCoordinate(lat, lon), NewCoordinate(destLat, destLon))
		assert.InDelta(t, 1000.0, got, 1.0)
	}
}

func TestNormalizeLongitudeWraps(t *testing.T) {
	_, lon := GetDestinationPoint(0, 179.999, 90, 5000)
	assert.True(t, lon >= -180 && lon <= 180)
	assert.Less(t, lon, 0.0)
}

func TestCoordinateEqual(t *testing.T) {
	a := NewCoordinate(1, 2)
	b := NewCoordinate(1, 2)
	c := NewCoordinate(1, 2.0000001)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestDegRadRoundTrip(t *testing.T) {
	for _, d := range []float64{0, 45, 90, -90, 180} {
		assert.InDelta(t, d, radToDeg(degToRad(d)), 1e-9)
	}
	assert.InDelta(t, math.Pi, degToRad(180), 1e-12)
}
