// Package router exposes the Router façade (spec §4.7): the single entry
// point host applications call to turn a profile and a list of waypoints
// into a RouteResult, grounded on the teacher's
// pkg/engine/routing/engine.go constructor shape (a routing engine
// wrapping its graph, metrics and logger behind one struct with a single
// public entry point).
package router

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/tileroute/tileroute/pkg/apperr"
	"github.com/tileroute/tileroute/pkg/astar"
	"github.com/tileroute/tileroute/pkg/geo"
	"github.com/tileroute/tileroute/pkg/graph"
	"github.com/tileroute/tileroute/pkg/profile"
	"github.com/tileroute/tileroute/pkg/reconstruct"
	"github.com/tileroute/tileroute/pkg/snap"
	"github.com/tileroute/tileroute/pkg/tile"
	"github.com/tileroute/tileroute/pkg/tilestore"
)

// Router is the host-facing façade over one opened container (spec §4.7,
// §5: "a Router instance serves one route call at a time ... multiple
// independent Router instances may run in parallel").
type Router struct {
	store              *tilestore.Store
	zoom               uint8
	frameMin, frameMax int
	carVRef, footVRef  float64
	log                *zap.Logger
}

// Option configures Router at construction time.
type Option func(*Router)

func WithLogger(log *zap.Logger) Option {
	return func(r *Router) { r.log = log }
}

// New wraps an already-opened tile store behind the routing façade.
func New(store *tilestore.Store, zoom uint8, frameMin, frameMax int, carVRefMps, footVRefMps float64, opts ...Option) *Router {
	r := &Router{
		store:    store,
		zoom:     zoom,
		frameMin: frameMin,
		frameMax: frameMax,
		carVRef:  carVRefMps,
		footVRef: footVRefMps,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RouteResult is the full response of a Route call (spec §3, §7).
type RouteResult struct {
	Status    apperr.Status
	DistanceM float64
	DurationS float64
	Polyline  []geo.Coordinate
	EdgeIds   []tile.EdgeId
	Message   string
}

// continuityToleranceDeg bounds how far an intermediate waypoint's
// sub-route endpoints may drift before two consecutive legs are treated
// as discontinuous (spec §4.7 "dropped if it equals the previous
// sub-route's last point" — equality here is exact-degree tolerant to
// absorb float round-trip through snap/projection, resolved per this
// module's Open Questions as DATA_ERROR on mismatch beyond tolerance).
const continuityToleranceDeg = 1e-6

// Route computes the shortest-time path visiting waypoints in order
// (spec §4.7). len(waypoints) must be >= 2.
func (r *Router) Route(profileName string, waypoints []geo.Coordinate) RouteResult {
	if len(waypoints) < 2 {
		return fail(apperr.InternalError, "need at least 2 waypoints")
	}

	p, ok := profile.ByName(profileName, r.carVRef, r.footVRef)
	if !ok {
		return fail(apperr.InternalError, "unknown profile %q", profileName)
	}

	var (
		distance, duration float64
		polyline           []geo.Coordinate
		edgeIds            []tile.EdgeId
	)

	for i := 0; i+1 < len(waypoints); i++ {
		leg, err := r.routeLeg(p, waypoints[i], waypoints[i+1])
		if err != nil {
			return fail(apperr.StatusOf(err), "%s", err)
		}

		if len(polyline) > 0 && len(leg.Polyline) > 0 {
			if !withinTolerance(polyline[len(polyline)-1], leg.Polyline[0], continuityToleranceDeg) {
				return fail(apperr.DataError, "leg %d does not continue from the previous leg's endpoint", i)
			}
			leg.Polyline = leg.Polyline[1:]
		}

		polyline = append(polyline, leg.Polyline...)
		distance += leg.DistanceM
		duration += leg.DurationS
		edgeIds = appendEdgeIds(edgeIds, leg.EdgeIds)
	}

	return RouteResult{
		Status:    apperr.OK,
		DistanceM: distance,
		DurationS: duration,
		Polyline:  polyline,
		EdgeIds:   edgeIds,
	}
}

func (r *Router) routeLeg(p profile.Profile, from, to geo.Coordinate) (reconstruct.Path, error) {
	a := tile.KeyForCoord(from.Lat, from.Lon, r.zoom)
	b := tile.KeyForCoord(to.Lat, to.Lon, r.zoom)

	straightKm := geo.HaversineDistanceM(from, to) / 1000.0
	frame := int(math.Ceil(straightKm/4.0)) + 1
	if frame < r.frameMin {
		frame = r.frameMin
	}
	if frame > r.frameMax {
		frame = r.frameMax
	}

	rect := tile.InflatedRect(a, b, frame)

	views := map[tile.Key]*tile.View{}
	for _, key := range rect.Keys() {
		blob, ok, err := r.store.Load(key)
		if err != nil {
			return reconstruct.Path{}, err
		}
		if !ok || len(blob.Bytes()) == 0 {
			continue
		}
		v, err := tile.NewView(blob)
		if err != nil {
			return reconstruct.Path{}, apperr.Wrapf(apperr.DataError, err, "decode tile %+v", key)
		}
		views[key] = v
	}
	if len(views) == 0 {
		return reconstruct.Path{}, apperr.New(apperr.NoTile, "no tile loaded for rectangle %+v", rect)
	}

	g := graph.Build(views, p)

	startSnap, ok := snap.Best(views, p, from)
	if !ok {
		return reconstruct.Path{}, apperr.New(apperr.NoRoute, "failed to snap")
	}
	endSnap, ok := snap.Best(views, p, to)
	if !ok {
		return reconstruct.Path{}, apperr.New(apperr.NoRoute, "failed to snap")
	}

	startEdge := views[startSnap.Key].EdgeAt(startSnap.EdgeIndex)
	endEdge := views[endSnap.Key].EdgeAt(endSnap.EdgeIndex)

	startFromGID, _ := g.GlobalVertexOf(startSnap.Key, startSnap.FromNode)
	startToGID, _ := g.GlobalVertexOf(startSnap.Key, startSnap.ToNode)
	endFromGID, _ := g.GlobalVertexOf(endSnap.Key, endSnap.FromNode)
	endToGID, _ := g.GlobalVertexOf(endSnap.Key, endSnap.ToNode)

	vStart := g.AttachVirtual(startSnap.Point, startSnap.Key, startEdge, p, startFromGID, startToGID, startSnap.T)
	vEnd := g.AttachVirtual(endSnap.Point, endSnap.Key, endEdge, p, endFromGID, endToGID, endSnap.T)

	if startSnap.Key == endSnap.Key && startSnap.EdgeIndex == endSnap.EdgeIndex {
		g.ConnectVirtual(vStart, vEnd, startSnap.Key, startEdge, p, startSnap.T, endSnap.T)
	}

	vRef := p.VRefMps
	res, ok := astar.Search(g, vStart, vEnd, vRef)
	if !ok {
		return reconstruct.Path{}, apperr.New(apperr.NoRoute, "no path found")
	}

	return reconstruct.Walk(g, views, res, vStart, vEnd)
}

func withinTolerance(a, b geo.Coordinate, tol float64) bool {
	return math.Abs(a.Lat-b.Lat) <= tol && math.Abs(a.Lon-b.Lon) <= tol
}

func appendEdgeIds(dst, src []tile.EdgeId) []tile.EdgeId {
	for i, id := range src {
		if i == 0 && len(dst) > 0 && dst[len(dst)-1] == id {
			continue
		}
		dst = append(dst, id)
	}
	return dst
}

func fail(status apperr.Status, format string, a ...interface{}) RouteResult {
	return RouteResult{Status: status, Message: fmt.Sprintf(format, a...)}
}
