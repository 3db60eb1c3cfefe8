package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolyline5RoundTrip(t *testing.T) {
	pts := []Coordinate{
		NewCoordinate(-6.914744, 107.609810),
		NewCoordinate(-6.914800, 107.609900),
		NewCoordinate(-6.915000, 107.610200),
	}

	encoded := EncodePolyline5(pts)
	decoded := DecodePolyline5(encoded)

	assert.Len(t, decoded, len(pts))
	for i := range pts {
		assert.InDelta(t, pts[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, pts[i].Lon, decoded[i].Lon, 1e-5)
	}
}

func TestDecodePolyline5EmptyString(t *testing.T) {
	assert.Nil(t, DecodePolyline5(""))
}

func TestEncodePolyline5EmptyInput(t *testing.T) {
	assert.Equal(t, "", EncodePolyline5(nil))
}
