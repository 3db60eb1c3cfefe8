package geo

import (
	"github.com/twpayne/go-polyline"
)

// DecodePolyline5 decodes an edge's encoded_polyline string (spec §6:
// signed varint deltas in 5-bit groups with a continuation bit, scale
// 1e-5) into an ordered coordinate sequence, via the teacher's own
// twpayne/go-polyline dependency.
func DecodePolyline5(encoded string) []Coordinate {
	if encoded == "" {
		return nil
	}
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil
	}
	out := make([]Coordinate, len(coords))
	for i, c := range coords {
		out[i] = NewCoordinate(c[0], c[1])
	}
	return out
}

// EncodePolyline5 is the inverse of DecodePolyline5, used by tests to build
// fixture edges carrying encoded geometry.
func EncodePolyline5(pts []Coordinate) string {
	coords := make([][]float64, len(pts))
	for i, p := range pts {
		coords[i] = []float64{p.Lat, p.Lon}
	}
	return string(polyline.EncodeCoords(coords))
}
