package tile_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tileroute/tileroute/pkg/tile"
	"github.com/tileroute/tileroute/pkg/tile/tiletest"
)

func twoNodeTile() *tiletest.Builder {
	return &tiletest.Builder{
		Z: 14, X: 100, Y: 200, Version: 1, ProfileMask: 3, Checksum: "abc",
		Nodes: []tiletest.Node{
			{LatDeg: -6.9147, LonDeg: 107.6098},
			{LatDeg: -6.9150, LonDeg: 107.6100},
		},
		Edges: []tiletest.Edge{
			{FromNode: 0, ToNode: 1, LengthM: 50, SpeedMps: 10, FootSpeedMps: 1.4, AccessMask: 3},
		},
	}
}

func TestViewDecodesHeaderAndNodes(t *testing.T) {
	blob := twoNodeTile().Build()
	v, err := tile.NewView(blob)
	require.NoError(t, err)

	assert.Equal(t, uint8(14), v.Z())
	assert.Equal(t, uint32(100), v.X())
	assert.Equal(t, uint32(200), v.Y())
	assert.Equal(t, uint32(1), v.Version())
	assert.Equal(t, uint32(3), v.ProfileMask())
	assert.Equal(t, "abc", v.Checksum())
	assert.Equal(t, 2, v.NodeCount())
	assert.Equal(t, 1, v.EdgeCount())

	assert.InDelta(t, -6.9147, v.NodeLat(0), 1e-6)
	assert.InDelta(t, 107.6098, v.NodeLon(0), 1e-6)
}

func TestViewRejectsTruncatedBlob(t *testing.T) {
	blob := twoNodeTile().Build()
	truncated := tile.NewBlob(blob.Bytes()[:len(blob.Bytes())-5])
	_, err := tile.NewView(truncated)
	assert.Error(t, err)
}

func TestEdgeScalarFields(t *testing.T) {
	blob := twoNodeTile().Build()
	v, err := tile.NewView(blob)
	require.NoError(t, err)

	e := v.EdgeAt(0)
	assert.Equal(t, 0, e.FromNode())
	assert.Equal(t, 1, e.ToNode())
	assert.InDelta(t, 50.0, e.LengthM(), 1e-5)
	assert.InDelta(t, 10.0, e.SpeedMps(), 1e-5)
	assert.InDelta(t, 1.4, e.FootSpeedMps(), 1e-5)
	assert.False(t, e.Oneway())
	assert.Equal(t, uint16(3), e.AccessMask())
}

func TestViewRejectsEdgeCountOverflowingEdgeIndexBudget(t *testing.T) {
	blob := twoNodeTile().Build()
	b := append([]byte{}, blob.Bytes()...)
	// z, x, y, version, profile_mask, checksum_len, checksum("abc"), node_count
	const edgeCountOffset = 2 + 4 + 4 + 4 + 4 + 2 + 3 + 4
	binary.LittleEndian.PutUint32(b[edgeCountOffset:], uint32(tile.MaxEdgesPerTile)+1)

	_, err := tile.NewView(tile.NewBlob(b))
	assert.Error(t, err)
}

func TestAppendEdgeShapeStraightLineDefault(t *testing.T) {
	blob := twoNodeTile().Build()
	v, err := tile.NewView(blob)
	require.NoError(t, err)

	pts := v.AppendEdgeShape(0, nil, false)
	require.Len(t, pts, 2)
	assert.InDelta(t, v.NodeLat(0), pts[0].Lat, 1e-6)
	assert.InDelta(t, v.NodeLat(1), pts[1].Lat, 1e-6)
}

func TestAppendEdgeShapeExplicitShapePoints(t *testing.T) {
	b := twoNodeTile()
	b.Edges[0].ShapePoints = []tiletest.Node{
		{LatDeg: -6.9147, LonDeg: 107.6098},
		{LatDeg: -6.9148, LonDeg: 107.6099},
		{LatDeg: -6.9150, LonDeg: 107.6100},
	}
	v, err := tile.NewView(b.Build())
	require.NoError(t, err)

	pts := v.AppendEdgeShape(0, nil, false)
	require.Len(t, pts, 3)
	assert.InDelta(t, -6.9148, pts[1].Lat, 1e-6)
}

func TestAppendEdgeShapeEncodedPolyline(t *testing.T) {
	b := twoNodeTile()
	b.Edges[0].EncodedPolyline = "_p~iF~ps|U"
	v, err := tile.NewView(b.Build())
	require.NoError(t, err)

	e := v.EdgeAt(0)
	assert.False(t, e.HasShape())
	assert.NotEmpty(t, e.EncodedPolyline())

	pts := v.AppendEdgeShape(0, nil, false)
	assert.NotEmpty(t, pts)
}

func TestAppendEdgeShapeSkipFirstDedup(t *testing.T) {
	b := twoNodeTile()
	b.Nodes = append(b.Nodes, tiletest.Node{LatDeg: -6.9160, LonDeg: 107.6110})
	b.Edges = append(b.Edges, tiletest.Edge{FromNode: 1, ToNode: 2, LengthM: 40, SpeedMps: 10, FootSpeedMps: 1.4, AccessMask: 3})
	v, err := tile.NewView(b.Build())
	require.NoError(t, err)

	pts := v.AppendEdgeShape(0, nil, false)
	pts = v.AppendEdgeShape(1, pts, true)
	require.Len(t, pts, 3)
}
