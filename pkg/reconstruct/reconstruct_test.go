package reconstruct_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tileroute/tileroute/pkg/astar"
	"github.com/tileroute/tileroute/pkg/geo"
	"github.com/tileroute/tileroute/pkg/graph"
	"github.com/tileroute/tileroute/pkg/profile"
	"github.com/tileroute/tileroute/pkg/reconstruct"
	"github.com/tileroute/tileroute/pkg/tile"
	"github.com/tileroute/tileroute/pkg/tile/tiletest"
)

func twoEdgeChain(t *testing.T) (*graph.Graph, *tile.View) {
	t.Helper()
	tb := &tiletest.Builder{
		Z: 14, X: 1, Y: 1,
		Nodes: []tiletest.Node{
			{LatDeg: 0, LonDeg: 0},
			{LatDeg: 0, LonDeg: 0.01},
			{LatDeg: 0, LonDeg: 0.02},
		},
		Edges: []tiletest.Edge{
			{FromNode: 0, ToNode: 1, LengthM: 100, SpeedMps: 10, FootSpeedMps: 1.4, AccessMask: 3},
			{FromNode: 1, ToNode: 2, LengthM: 100, SpeedMps: 10, FootSpeedMps: 1.4, AccessMask: 3},
		},
	}
	v, err := tile.NewView(tb.Build())
	require.NoError(t, err)
	car := profile.Car(13.9)
	g := graph.Build(map[tile.Key]*tile.View{v.Key(): v}, car)
	return g, v
}

func TestWalkConcatenatesRealEdgeGeometryWithoutDuplicates(t *testing.T) {
	g, v := twoEdgeChain(t)
	views := map[tile.Key]*tile.View{v.Key(): v}

	n0, _ := g.GlobalVertexOf(v.Key(), 0)
	n2, _ := g.GlobalVertexOf(v.Key(), 2)

	res, ok := astar.Search(g, n0, n2, 13.9)
	require.True(t, ok)

	path, err := reconstruct.Walk(g, views, res, n0, n2)
	require.NoError(t, err)

	require.Len(t, path.Polyline, 3)
	for i := 1; i < len(path.Polyline); i++ {
		assert.False(t, path.Polyline[i-1].Equal(path.Polyline[i]))
	}
	require.Len(t, path.EdgeIds, 2)
	assert.InDelta(t, 20.0, path.DurationS, 1e-6)
}

func TestWalkDistanceMatchesPolylineLength(t *testing.T) {
	g, v := twoEdgeChain(t)
	views := map[tile.Key]*tile.View{v.Key(): v}
	n0, _ := g.GlobalVertexOf(v.Key(), 0)
	n2, _ := g.GlobalVertexOf(v.Key(), 2)

	res, ok := astar.Search(g, n0, n2, 13.9)
	require.True(t, ok)

	path, err := reconstruct.Walk(g, views, res, n0, n2)
	require.NoError(t, err)

	assert.Equal(t, geo.PathLengthM(path.Polyline), path.DistanceM)
}

func TestWalkVirtualHalfEdgesUseVertexCoordinates(t *testing.T) {
	g, v := twoEdgeChain(t)
	views := map[tile.Key]*tile.View{v.Key(): v}
	car := profile.Car(13.9)

	n0, _ := g.GlobalVertexOf(v.Key(), 0)
	n1, _ := g.GlobalVertexOf(v.Key(), 1)
	e := v.EdgeAt(0)

	mid := geo.NewCoordinate(0, 0.005)
	vStart := g.AttachVirtual(mid, v.Key(), e, car, n0, n1, 0.5)

	res, ok := astar.Search(g, vStart, n1, 13.9)
	require.True(t, ok)

	path, err := reconstruct.Walk(g, views, res, vStart, n1)
	require.NoError(t, err)
	require.NotEmpty(t, path.Polyline)
	assert.InDelta(t, mid.Lon, path.Polyline[0].Lon, 1e-9)
}
