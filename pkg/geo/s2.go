package geo

import (
	"github.com/golang/geo/s2"
)

// ProjectPointToSegment projects p onto the segment (a, b) via s2's
// geodesic projection (github.com/golang/geo/s2), following
// pkg/geo/s2.go's ProjectPointToLineCoord in the teacher repo. It returns
// the projected coordinate and t in [0,1], the fraction of the segment's
// arc length from a to the projection (spec §4.3: "clamped to [0,1]").
//
// This is a geodesic projection, not a planar (longitude, latitude)
// Euclidean projection. The two agree on segments along the equator or a
// meridian; elsewhere the planar form, which does not scale longitude by
// cos(latitude), can place the foot point metres away from the geodesic
// one on a diagonal road segment. Reusing the teacher's s2 projection here
// keeps one less geometry primitive in the module.
//
// A zero-length segment (a == b within 1e-12 in squared degree distance,
// per spec §4.3's edge case) projects to its start: t = 0.
func ProjectPointToSegment(a, b, p Coordinate) (projected Coordinate, t float64) {
	dLat := b.Lat - a.Lat
	dLon := b.Lon - a.Lon
	c2 := dLat*dLat + dLon*dLon
	if c2 <= 1e-12 {
		return a, 0
	}

	aS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	bS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))
	pS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))

	proj := s2.Project(pS2, aS2, bS2)
	projLatLng := s2.LatLngFromPoint(proj)
	projected = NewCoordinate(projLatLng.Lat.Degrees(), projLatLng.Lng.Degrees())

	total := aS2.Distance(bS2)
	if total <= 0 {
		return a, 0
	}
	t = float64(aS2.Distance(proj)) / float64(total)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return projected, t
}

// InterpolateOnSegment returns the point t of the way from a to b by linear
// interpolation in (longitude, latitude) space. It only approximately
// inverts the arc-length t computed above; snapped virtual-vertex
// positions come from ProjectPointToSegment's projected point, not from
// this function.
func InterpolateOnSegment(a, b Coordinate, t float64) Coordinate {
	return NewCoordinate(
		a.Lat+(b.Lat-a.Lat)*t,
		a.Lon+(b.Lon-a.Lon)*t,
	)
}
