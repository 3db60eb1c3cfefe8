package tile

import (
	"encoding/binary"

	"github.com/tileroute/tileroute/pkg/geo"
)

func (v *View) shapeOffset(i int) int {
	return v.shapesOff + i*shapeStride
}

// ShapeLatQ / ShapeLonQ read a tile-stored shape point's quantized
// coordinate (§3 ShapePoint).
func (v *View) ShapeLatQ(i int) int32 {
	b := v.blob.Bytes()
	return int32(binary.LittleEndian.Uint32(b[v.shapeOffset(i):]))
}

func (v *View) ShapeLonQ(i int) int32 {
	b := v.blob.Bytes()
	return int32(binary.LittleEndian.Uint32(b[v.shapeOffset(i)+4:]))
}

func (v *View) ShapeLat(i int) float64 { return float64(v.ShapeLatQ(i)) / 1e6 }
func (v *View) ShapeLon(i int) float64 { return float64(v.ShapeLonQ(i)) / 1e6 }

// AppendEdgeShape appends the ordered geometry of edge ei to out, following
// the three-variant dispatch in spec §4.2: explicit shape slice, else
// decoded polyline5 string, else the straight from/to pair. When
// skipFirst is true and out is already non-empty, the first produced
// point is omitted so consecutive edges don't duplicate their shared
// endpoint.
func (v *View) AppendEdgeShape(ei int, out []geo.Coordinate, skipFirst bool) []geo.Coordinate {
	e := v.EdgeAt(ei)

	var pts []geo.Coordinate
	switch {
	case e.HasShape():
		start, n := e.ShapeStart(), e.ShapeCount()
		pts = make([]geo.Coordinate, n)
		for i := 0; i < n; i++ {
			pts[i] = geo.NewCoordinate(v.ShapeLat(start+i), v.ShapeLon(start+i))
		}
	case e.EncodedPolyline() != "":
		pts = geo.DecodePolyline5(e.EncodedPolyline())
	default:
		pts = []geo.Coordinate{
			geo.NewCoordinate(v.NodeLat(e.FromNode()), v.NodeLon(e.FromNode())),
			geo.NewCoordinate(v.NodeLat(e.ToNode()), v.NodeLon(e.ToNode())),
		}
	}

	if skipFirst && len(out) > 0 && len(pts) > 0 {
		pts = pts[1:]
	}
	return append(out, pts...)
}

// materializedGeometry returns the full point sequence of edge ei without
// the skip-first dedup logic, used internally by Snap to walk every
// segment of the edge.
func (v *View) materializedGeometry(ei int) []geo.Coordinate {
	return v.AppendEdgeShape(ei, nil, false)
}
