package tile

import (
	"math"

	"github.com/tileroute/tileroute/pkg/geo"
	"github.com/tidwall/rtree"
)

// InEdgesOf returns the incoming edge indices for node i, building the
// array-of-arrays index on first call by scanning every edge once and
// bucketing it by ToNode (spec §4.2). The result is memoized for the
// lifetime of the view; callers must not call this concurrently on the
// same view before the first call completes (spec §9).
func (v *View) InEdgesOf(i int) []uint32 {
	if v.inEdges == nil {
		v.buildInEdges()
	}
	return v.inEdges[i]
}

func (v *View) buildInEdges() {
	buckets := make([][]uint32, v.NodeCount())
	for ei := 0; ei < v.EdgeCount(); ei++ {
		to := v.EdgeAt(ei).ToNode()
		buckets[to] = append(buckets[to], uint32(ei))
	}
	v.inEdges = buckets
}

// edgeExtent is the bounding box stored in the lazily-built per-tile
// spatial index used by Snap to prune candidate edges before projecting
// onto them, grounded on pkg/spatialindex/rtree.go's Build-on-first-use
// R-tree of arc endpoints in the teacher repo.
type edgeExtent struct {
	edgeIndex uint32
}

// SpatialIndex is the once-initialized rtree.RTreeG wrapping every
// traversable edge's bounding box, built the first time Snap needs it for
// this view.
type SpatialIndex struct {
	tr *rtree.RTreeG[edgeExtent]
}

// SpatialIndex returns the spatial index for profileBit, building and
// memoizing it on first use. A view may serve both profiles over its
// lifetime, so the index is cached per profile bit rather than once
// globally (spec §4.2's lazy/memoized mutable-state pattern, extended
// from the single incoming-edge index to a small per-profile cache).
func (v *View) SpatialIndex(profileBit uint16, speedOf func(Edge) float64) *SpatialIndex {
	if v.spatialIdx == nil {
		v.spatialIdx = make(map[uint16]*SpatialIndex)
	}
	if si, ok := v.spatialIdx[profileBit]; ok {
		return si
	}
	si := v.buildSpatialIndex(profileBit, speedOf)
	v.spatialIdx[profileBit] = si
	return si
}

// buildSpatialIndex constructs the R-tree over every edge whose geometry
// has been materialized, keyed by profile so the access/speed gate is
// applied once at build time rather than per query.
func (v *View) buildSpatialIndex(profileBit uint16, speedOf func(Edge) float64) *SpatialIndex {
	var tr rtree.RTreeG[edgeExtent]
	for ei := 0; ei < v.EdgeCount(); ei++ {
		e := v.EdgeAt(ei)
		if e.AccessMask()&profileBit == 0 || speedOf(e) <= 0 {
			continue
		}
		pts := v.materializedGeometry(ei)
		if len(pts) == 0 {
			continue
		}
		minLat, minLon := math.Inf(1), math.Inf(1)
		maxLat, maxLon := math.Inf(-1), math.Inf(-1)
		for _, p := range pts {
			minLat = math.Min(minLat, p.Lat)
			maxLat = math.Max(maxLat, p.Lat)
			minLon = math.Min(minLon, p.Lon)
			maxLon = math.Max(maxLon, p.Lon)
		}
		tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, edgeExtent{edgeIndex: uint32(ei)})
	}
	return &SpatialIndex{tr: &tr}
}

// CandidatesNear returns every indexed edge whose bounding box (inflated
// by radiusDeg in every direction) contains the query point.
func (si *SpatialIndex) CandidatesNear(q geo.Coordinate, radiusDeg float64) []uint32 {
	var out []uint32
	si.tr.Search(
		[2]float64{q.Lon - radiusDeg, q.Lat - radiusDeg},
		[2]float64{q.Lon + radiusDeg, q.Lat + radiusDeg},
		func(min, max [2]float64, data edgeExtent) bool {
			out = append(out, data.edgeIndex)
			return true
		},
	)
	return out
}
