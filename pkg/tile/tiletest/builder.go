// Package tiletest builds binary tile blobs in memory so other packages'
// tests can exercise real tile.View fixtures without a container on
// disk, mirroring the small in-test graph builders the teacher's own
// tests/shortestpath fixtures construct by hand.
package tiletest

import (
	"encoding/binary"
	"math"

	"github.com/tileroute/tileroute/pkg/tile"
)

// Node is a fixture node: lat/lon in degrees, quantized to micro-degrees
// on encode (spec §6).
type Node struct {
	LatDeg, LonDeg float64
}

// Edge is a fixture edge. ShapePoints and EncodedPolyline are mutually
// exclusive; leave both empty for a straight from/to line.
type Edge struct {
	FromNode, ToNode       int
	LengthM                float32
	SpeedMps, FootSpeedMps float32
	Oneway                 bool
	RoadClass              uint8
	AccessMask             uint16
	ShapePoints            []Node
	EncodedPolyline        string
}

// Builder accumulates nodes/edges/shapes for a single tile and encodes
// them into a *tile.Blob in the format pkg/tile.NewView decodes.
type Builder struct {
	Z           uint8
	X, Y        uint32
	Version     uint32
	ProfileMask uint32
	Checksum    string
	Nodes []Node
	// Edges must be grouped by FromNode — the tile format stores a
	// node's outgoing edges contiguously (spec §6) and Build does not
	// reorder them.
	Edges []Edge
}

func quantize(deg float64) int32 {
	return int32(math.Round(deg * 1e6))
}

// Build encodes the accumulated fixture into a blob ready for
// tile.NewView.
func (b *Builder) Build() *tile.Blob {
	var shapes []Node
	edgeShapeStart := make([]int, len(b.Edges))
	for i, e := range b.Edges {
		edgeShapeStart[i] = len(shapes)
		shapes = append(shapes, e.ShapePoints...)
	}

	var buf []byte
	buf = appendU16(buf, uint16(b.Z))
	buf = appendU32(buf, b.X)
	buf = appendU32(buf, b.Y)
	buf = appendU32(buf, b.Version)
	buf = appendU32(buf, b.ProfileMask)
	buf = appendU16(buf, uint16(len(b.Checksum)))
	buf = append(buf, []byte(b.Checksum)...)
	buf = appendU32(buf, uint32(len(b.Nodes)))
	buf = appendU32(buf, uint32(len(b.Edges)))
	buf = appendU32(buf, uint32(len(shapes)))

	firstEdge, edgeCount := computeAdjacency(b.Nodes, b.Edges)
	for i, n := range b.Nodes {
		buf = appendU32(buf, uint32(i))
		buf = appendI32(buf, quantize(n.LatDeg))
		buf = appendI32(buf, quantize(n.LonDeg))
		buf = appendU32(buf, uint32(firstEdge[i]))
		buf = appendU16(buf, uint16(edgeCount[i]))
	}

	for i, e := range b.Edges {
		buf = appendU32(buf, uint32(e.FromNode))
		buf = appendU32(buf, uint32(e.ToNode))
		buf = appendF32(buf, e.LengthM)
		buf = appendF32(buf, e.SpeedMps)
		buf = appendF32(buf, e.FootSpeedMps)
		if e.Oneway {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		buf = append(buf, e.RoadClass)
		buf = appendU16(buf, e.AccessMask)
		buf = appendU32(buf, uint32(edgeShapeStart[i]))
		buf = appendU16(buf, uint16(len(e.ShapePoints)))
		buf = appendU16(buf, uint16(len(e.EncodedPolyline)))
		buf = append(buf, []byte(e.EncodedPolyline)...)
	}

	for _, s := range shapes {
		buf = appendI32(buf, quantize(s.LatDeg))
		buf = appendI32(buf, quantize(s.LonDeg))
	}

	return tile.NewBlob(buf)
}

// computeAdjacency groups edge indices by FromNode, the ordering
// TileView.FirstEdge/EdgeCountFrom expect (spec §6: "edges from a node
// are stored contiguously").
func computeAdjacency(nodes []Node, edges []Edge) (firstEdge, edgeCount []int) {
	firstEdge = make([]int, len(nodes))
	edgeCount = make([]int, len(nodes))
	for i := range nodes {
		firstEdge[i] = -1
	}
	for ei, e := range edges {
		if firstEdge[e.FromNode] == -1 {
			firstEdge[e.FromNode] = ei
		}
		edgeCount[e.FromNode]++
	}
	for i, v := range firstEdge {
		if v == -1 {
			firstEdge[i] = 0
		}
	}
	return firstEdge, edgeCount
}

func appendU16(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendU32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendI32(b []byte, v int32) []byte {
	return appendU32(b, uint32(v))
}

func appendF32(b []byte, v float32) []byte {
	return appendU32(b, math.Float32bits(v))
}
