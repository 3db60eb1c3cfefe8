// Package graph assembles a global routing graph out of a set of loaded
// tile views for one profile (spec §4.4), grounded on the teacher's
// pkg/datastructure/graph.go Vertex/OutEdge split — adapted from that
// file's turn-table-bearing CRP vertex down to the plain weighted
// adjacency list this engine's Non-goals call for (no turn restrictions,
// no overlay levels).
package graph

import (
	"math"

	"github.com/tileroute/tileroute/pkg/geo"
	"github.com/tileroute/tileroute/pkg/profile"
	"github.com/tileroute/tileroute/pkg/tile"
)

// Vertex is a routable point: a stitched tile node or a virtual
// start/end attachment (spec §4.4).
type Vertex struct {
	Coord geo.Coordinate
}

// Arc is a single directed edge in the global adjacency list: either a
// real tile edge traversal or a virtual half-edge (spec §4.4's
// "(to, weight, tile_x, tile_y, edge_index, is_virtual)").
type Arc struct {
	To        int
	Weight    float64
	TileKey   tile.Key
	EdgeIndex int
	IsVirtual bool
}

// RevEntry is one element of the reverse adjacency list: the origin
// vertex and the arc's position within that vertex's outgoing list
// (spec §4.4).
type RevEntry struct {
	From  int
	Index int
}

// Graph is the assembled multi-tile routing graph for one profile.
type Graph struct {
	Vertices []Vertex
	Out      [][]Arc
	Rev      [][]RevEntry

	nodeGID     map[[2]int32]int
	localVertex map[tile.Key][]int // per tile, local node index -> global vertex id
}

func newGraph() *Graph {
	return &Graph{
		nodeGID:     make(map[[2]int32]int),
		localVertex: make(map[tile.Key][]int),
	}
}

func (g *Graph) addVertex(c geo.Coordinate) int {
	id := len(g.Vertices)
	g.Vertices = append(g.Vertices, Vertex{Coord: c})
	g.Out = append(g.Out, nil)
	g.Rev = append(g.Rev, nil)
	return id
}

func (g *Graph) addArc(from, to int, weight float64, key tile.Key, edgeIndex int, virtual bool) {
	idx := len(g.Out[from])
	g.Out[from] = append(g.Out[from], Arc{To: to, Weight: weight, TileKey: key, EdgeIndex: edgeIndex, IsVirtual: virtual})
	g.Rev[to] = append(g.Rev[to], RevEntry{From: from, Index: idx})
}

// Build assembles the global graph from every loaded tile view for p,
// stitching nodes across tiles by exact quantized-coordinate identity
// (spec §4.4: "no geometric tolerance, exact integer equality").
func Build(views map[tile.Key]*tile.View, p profile.Profile) *Graph {
	g := newGraph()

	for key, v := range views {
		localToGlobal := make([]int, v.NodeCount())
		for i := 0; i < v.NodeCount(); i++ {
			qk := [2]int32{v.NodeLatQ(i), v.NodeLonQ(i)}
			gid, ok := g.nodeGID[qk]
			if !ok {
				gid = g.addVertex(geo.NewCoordinate(v.NodeLat(i), v.NodeLon(i)))
				g.nodeGID[qk] = gid
			}
			localToGlobal[i] = gid
		}
		g.localVertex[key] = localToGlobal
	}

	for key, v := range views {
		localToGlobal := g.localVertex[key]
		for ei := 0; ei < v.EdgeCount(); ei++ {
			e := v.EdgeAt(ei)
			from, to := localToGlobal[e.FromNode()], localToGlobal[e.ToNode()]

			if p.Traversable(e) {
				g.addArc(from, to, e.LengthM()/p.SpeedMps(e), key, ei, false)
			}
			if p.ReverseTraversable(e) {
				g.addArc(to, from, e.LengthM()/p.SpeedMps(e), key, ei, false)
			}
		}
	}

	return g
}

// GlobalVertexOf resolves a (tile, local node index) pair into the global
// vertex id assigned during Build, used by virtual-vertex attachment.
func (g *Graph) GlobalVertexOf(key tile.Key, localNode int) (int, bool) {
	locals, ok := g.localVertex[key]
	if !ok || localNode < 0 || localNode >= len(locals) {
		return 0, false
	}
	return locals[localNode], true
}

// AttachVirtual allocates a new virtual vertex at snapped point coord and
// wires its half-edges to the endpoints of edge e, following spec §4.4's
// weighting: the forward half-edges are always legal in the edge's
// traversal direction; the reverse pair is added only when the profile
// may also traverse the edge against its stored direction.
func (g *Graph) AttachVirtual(coord geo.Coordinate, key tile.Key, e tile.Edge, p profile.Profile, fromGID, toGID int, t float64) int {
	vid := g.addVertex(coord)
	length := e.LengthM()
	speed := p.SpeedMps(e)

	if p.Traversable(e) {
		g.addArc(fromGID, vid, t*length/speed, key, e.Index(), true)
		g.addArc(vid, toGID, (1-t)*length/speed, key, e.Index(), true)
	}
	if p.ReverseTraversable(e) {
		g.addArc(vid, fromGID, t*length/speed, key, e.Index(), true)
		g.addArc(toGID, vid, (1-t)*length/speed, key, e.Index(), true)
	}
	return vid
}

// ConnectVirtual wires a direct arc between two virtual vertices that were
// both attached to the same edge e (spec §4.4 / §8 scenario S5: start and
// end snap onto the same edge), so the search can cross the gap between
// the two snap fractions without detouring through either of the edge's
// endpoint nodes. The arc is oriented by the sign of tB-tA, gated by the
// edge's direction in that sense; the reverse arc is added only when the
// profile may also traverse the edge against its stored direction.
func (g *Graph) ConnectVirtual(vA, vB int, key tile.Key, e tile.Edge, p profile.Profile, tA, tB float64) {
	weight := math.Abs(tB-tA) * e.LengthM() / p.SpeedMps(e)

	forward, backward := vA, vB
	if tB < tA {
		forward, backward = vB, vA
	}
	if p.Traversable(e) {
		g.addArc(forward, backward, weight, key, e.Index(), true)
	}
	if p.ReverseTraversable(e) {
		g.addArc(backward, forward, weight, key, e.Index(), true)
	}
}
