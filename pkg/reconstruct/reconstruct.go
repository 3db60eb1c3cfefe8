// Package reconstruct walks a finished bidirectional search's predecessor
// chains into an ordered polyline, edge-id list, and duration (spec §4.6).
package reconstruct

import (
	"github.com/tileroute/tileroute/pkg/apperr"
	"github.com/tileroute/tileroute/pkg/astar"
	"github.com/tileroute/tileroute/pkg/geo"
	"github.com/tileroute/tileroute/pkg/graph"
	"github.com/tileroute/tileroute/pkg/tile"
)

// Path is the reconstructed route for one waypoint pair (spec §3
// RouteResult, minus the request metadata the router façade fills in).
type Path struct {
	DistanceM float64
	DurationS float64
	Polyline  []geo.Coordinate
	EdgeIds   []tile.EdgeId
}

type step struct {
	from, to int
	arc      graph.Arc
}

// Walk reconstructs the path from vStart to vEnd through res.Meeting
// (spec §4.6): forward predecessor chain to v_start, reversed, followed
// by the reverse predecessor chain to v_end.
func Walk(g *graph.Graph, views map[tile.Key]*tile.View, res astar.Result, vStart, vEnd int) (Path, error) {
	var forwardSteps []step
	cur := res.Meeting
	for cur != vStart {
		parent, arc, hasArc, ok := res.ForwardStep(cur)
		if !ok {
			return Path{}, apperr.New(apperr.InternalError, "reconstruct: forward chain broken at vertex %d", cur)
		}
		if !hasArc {
			return Path{}, apperr.New(apperr.InternalError, "reconstruct: forward chain missing arc at vertex %d", cur)
		}
		forwardSteps = append(forwardSteps, step{from: parent, to: cur, arc: arc})
		cur = parent
	}
	for i, j := 0, len(forwardSteps)-1; i < j; i, j = i+1, j-1 {
		forwardSteps[i], forwardSteps[j] = forwardSteps[j], forwardSteps[i]
	}

	var backwardSteps []step
	cur = res.Meeting
	for cur != vEnd {
		next, arc, hasArc, ok := res.BackwardStep(cur)
		if !ok {
			return Path{}, apperr.New(apperr.InternalError, "reconstruct: backward chain broken at vertex %d", cur)
		}
		if !hasArc {
			return Path{}, apperr.New(apperr.InternalError, "reconstruct: backward chain missing arc at vertex %d", cur)
		}
		backwardSteps = append(backwardSteps, step{from: cur, to: next, arc: arc})
		cur = next
	}

	steps := append(forwardSteps, backwardSteps...)

	var polyline []geo.Coordinate
	var edgeIds []tile.EdgeId
	var durationS float64

	for _, s := range steps {
		durationS += s.arc.Weight

		if s.arc.IsVirtual {
			a := g.Vertices[s.from].Coord
			b := g.Vertices[s.to].Coord
			polyline = appendDedup(polyline, a)
			polyline = appendDedup(polyline, b)
		} else {
			v, ok := views[s.arc.TileKey]
			if !ok {
				return Path{}, apperr.New(apperr.InternalError, "reconstruct: tile %+v not loaded", s.arc.TileKey)
			}
			pts := v.AppendEdgeShape(s.arc.EdgeIndex, nil, false)
			if !forwardOriented(g, v, s) {
				pts = reverseCoords(pts)
			}
			skipFirst := len(polyline) > 0
			if skipFirst && len(pts) > 0 {
				pts = pts[1:]
			}
			polyline = append(polyline, pts...)
		}

		id := tile.EncodeEdgeId(s.arc.TileKey.Z, s.arc.TileKey.X, s.arc.TileKey.Y, uint32(s.arc.EdgeIndex))
		if len(edgeIds) == 0 || edgeIds[len(edgeIds)-1] != id {
			edgeIds = append(edgeIds, id)
		}
	}

	return Path{
		DistanceM: geo.PathLengthM(polyline),
		DurationS: durationS,
		Polyline:  polyline,
		EdgeIds:   edgeIds,
	}, nil
}

func forwardOriented(g *graph.Graph, v *tile.View, s step) bool {
	e := v.EdgeAt(s.arc.EdgeIndex)
	fromGID, ok := g.GlobalVertexOf(s.arc.TileKey, e.FromNode())
	return ok && fromGID == s.from
}

func reverseCoords(pts []geo.Coordinate) []geo.Coordinate {
	out := make([]geo.Coordinate, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func appendDedup(polyline []geo.Coordinate, p geo.Coordinate) []geo.Coordinate {
	if len(polyline) > 0 && polyline[len(polyline)-1].Equal(p) {
		return polyline
	}
	return append(polyline, p)
}
