// Package snap projects a query coordinate onto the nearest traversable
// edge within a set of already-loaded tile views, respecting profile
// access (spec §4.3), grounded on other_examples/azybler-map_router
// snap.go's "narrow candidates with a spatial index, project onto every
// candidate segment, score by real distance, keep the global minimum"
// shape, with the teacher's pkg/tile R-tree standing in for that grid.
package snap

import (
	"math"

	"github.com/tileroute/tileroute/pkg/geo"
	"github.com/tileroute/tileroute/pkg/profile"
	"github.com/tileroute/tileroute/pkg/tile"
)

// Result is the outcome of a successful snap (spec §4.3).
type Result struct {
	Key          tile.Key
	EdgeIndex    int
	FromNode     int
	ToNode       int
	SegmentIndex int
	T            float64
	Point        geo.Coordinate
	DistanceM    float64
}

// searchRadiusDeg bounds the R-tree query window around the point before
// falling back to a full scan; ~0.1 degree is generous at any road-network
// latitude and keeps the bounding-box query cheap.
const searchRadiusDeg = 0.1

// OnView finds the best snap onto v's edges for the given profile,
// returning ok == false if no traversable edge exists in the view.
func OnView(v *tile.View, p profile.Profile, q geo.Coordinate) (Result, bool) {
	si := v.SpatialIndex(p.Bit, p.SpeedMps)
	candidates := si.CandidatesNear(q, searchRadiusDeg)
	if len(candidates) == 0 {
		for ei := 0; ei < v.EdgeCount(); ei++ {
			if p.Traversable(v.EdgeAt(ei)) {
				candidates = append(candidates, uint32(ei))
			}
		}
	}
	if len(candidates) == 0 {
		return Result{}, false
	}

	best := Result{DistanceM: math.Inf(1)}
	found := false

	for _, ei := range candidates {
		e := v.EdgeAt(int(ei))
		pts := v.AppendEdgeShape(int(ei), nil, false)
		if len(pts) < 2 {
			continue
		}
		for si := 0; si < len(pts)-1; si++ {
			proj, t := geo.ProjectPointToSegment(pts[si], pts[si+1], q)
			d := geo.HaversineDistanceM(q, proj)

			better := d < best.DistanceM
			tie := d == best.DistanceM && (int(ei) < best.EdgeIndex || (int(ei) == best.EdgeIndex && si < best.SegmentIndex))
			if !better && !tie {
				continue
			}

			best = Result{
				Key:          v.Key(),
				EdgeIndex:    int(ei),
				FromNode:     e.FromNode(),
				ToNode:       e.ToNode(),
				SegmentIndex: si,
				T:            segmentFraction(pts, si, t),
				Point:        proj,
				DistanceM:    d,
			}
			found = true
		}
	}

	return best, found
}

// segmentFraction converts a local (segment index, in-segment t) pair into
// the edge-level fraction used by virtual half-edge weighting (spec §4.4).
func segmentFraction(pts []geo.Coordinate, segmentIndex int, localT float64) float64 {
	total := geo.PathLengthM(pts)
	if total <= 0 {
		return 0
	}
	travelled := geo.PathLengthM(pts[:segmentIndex+1])
	travelled += localT * geo.HaversineDistanceM(pts[segmentIndex], pts[segmentIndex+1])
	t := travelled / total
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t
}

// Best finds the best snap across every loaded view, tie-breaking by
// (tile key, edge index, segment index) when distances are exactly equal
// so that which of two equidistant tiles wins never depends on Go's
// unordered map iteration.
func Best(views map[tile.Key]*tile.View, p profile.Profile, q geo.Coordinate) (Result, bool) {
	best := Result{DistanceM: math.Inf(1)}
	found := false
	for _, v := range views {
		r, ok := OnView(v, p, q)
		if !ok {
			continue
		}
		if r.DistanceM < best.DistanceM || (r.DistanceM == best.DistanceM && found && tileKeyLess(r.Key, best.Key)) {
			best = r
			found = true
		}
	}
	return best, found
}

func tileKeyLess(a, b tile.Key) bool {
	if a.Z != b.Z {
		return a.Z < b.Z
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}
