package tile

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Blob is the raw byte buffer TileStore hands out, shared by reference
// between the cache slot and any live View (spec §3 TileBlob, §9 "shared,
// reference-counted blobs"). It carries only the bytes; sharing is by
// pointer, and the garbage collector frees the buffer once neither the
// cache nor any View still references it.
type Blob struct {
	bytes []byte
}

// NewBlob wraps raw bytes read from the container as a Blob. It does not
// copy b.
func NewBlob(b []byte) *Blob {
	return &Blob{bytes: b}
}

func (b *Blob) Bytes() []byte {
	return b.bytes
}

const (
	nodeStride  = 18 // id u32, lat_q i32, lon_q i32, first_edge u32, edge_count u16
	shapeStride = 8  // lat_q i32, lon_q i32

	// fixed portion of an edge record, before the length-prefixed
	// encoded_polyline string (§6 Edge): from, to, length, speed,
	// foot_speed, oneway, road_class, access_mask, shape_start,
	// shape_count, then the polyline byte length (distinct from
	// shape_count — an edge uses one geometry source or the other, per
	// the dispatch in AppendEdgeShape, but the two counts live in
	// separate fields so a zero shape_count never gets misread as a
	// zero-length polyline string or vice versa).
	edgeFixedSize = 4 + 4 + 4 + 4 + 4 + 1 + 1 + 2 + 4 + 2 + 2
)

// header mirrors the scalar fields reachable from the root LandTile object
// (§6): z, x, y, version, profile_mask, checksum.
type header struct {
	z           uint16
	x           uint32
	y           uint32
	version     uint32
	profileMask uint32
	checksum    string

	nodeCount  uint32
	edgeCount  uint32
	shapeCount uint32
}

const headerFixedSize = 2 + 4 + 4 + 4 + 4 + 2 // z,x,y,version,profile_mask,checksum_len

func readHeader(b []byte) (header, int, error) {
	if len(b) < headerFixedSize {
		return header{}, 0, fmt.Errorf("tile: blob shorter than header (%d bytes)", len(b))
	}
	var h header
	off := 0
	h.z = binary.LittleEndian.Uint16(b[off:])
	off += 2
	h.x = binary.LittleEndian.Uint32(b[off:])
	off += 4
	h.y = binary.LittleEndian.Uint32(b[off:])
	off += 4
	h.version = binary.LittleEndian.Uint32(b[off:])
	off += 4
	h.profileMask = binary.LittleEndian.Uint32(b[off:])
	off += 4
	checksumLen := int(binary.LittleEndian.Uint16(b[off:]))
	off += 2
	if len(b) < off+checksumLen+4+4+4 {
		return header{}, 0, fmt.Errorf("tile: blob truncated in header tail")
	}
	h.checksum = string(b[off : off+checksumLen])
	off += checksumLen

	h.nodeCount = binary.LittleEndian.Uint32(b[off:])
	off += 4
	h.edgeCount = binary.LittleEndian.Uint32(b[off:])
	off += 4
	h.shapeCount = binary.LittleEndian.Uint32(b[off:])
	off += 4

	return h, off, nil
}

// View decodes a Blob as a graph fragment without copying its bytes (spec
// §4.2). Node and shape arrays are fixed-stride and indexed directly; the
// edge array has a variable-length trailing string per record, so View
// scans it once at construction to build a byte-offset table — still no
// copy of edge payloads, just an O(edge_count) index of where each one
// starts, the same cost class as the lazily-built incoming-edge index.
type View struct {
	blob *Blob
	hdr  header

	nodesOff  int
	edgesOff  int
	shapesOff int

	edgeOffsets []int // edgeOffsets[i] = start of edge i's record; len == edgeCount+1

	inEdges [][]uint32 // lazily built, memoized (§4.2 "lazy incoming index")

	spatialIdx map[uint16]*SpatialIndex // lazily built per profile bit, memoized
}

// NewView parses blob's header and indexes the edge array. Structural
// validation happens here: a malformed blob yields an error at
// construction, never corrupted geometry (spec §4.2 Errors). The error is
// a plain error; the router wraps it as apperr.DataError.
func NewView(blob *Blob) (*View, error) {
	b := blob.Bytes()
	h, off, err := readHeader(b)
	if err != nil {
		return nil, err
	}

	if uint64(h.edgeCount) > MaxEdgesPerTile {
		return nil, fmt.Errorf("tile: edge count %d exceeds %d-bit edge_index budget", h.edgeCount, eiBits)
	}

	v := &View{blob: blob, hdr: h}
	v.nodesOff = off
	nodesSize := int(h.nodeCount) * nodeStride
	if len(b) < v.nodesOff+nodesSize {
		return nil, fmt.Errorf("tile: blob truncated in node array")
	}
	v.edgesOff = v.nodesOff + nodesSize

	edgeOffsets := make([]int, h.edgeCount+1)
	cur := v.edgesOff
	for i := uint32(0); i < h.edgeCount; i++ {
		edgeOffsets[i] = cur
		if len(b) < cur+edgeFixedSize {
			return nil, fmt.Errorf("tile: blob truncated in edge %d fixed fields", i)
		}
		polyLen := int(binary.LittleEndian.Uint16(b[cur+edgeFixedSize-2:]))
		recSize := edgeFixedSize + polyLen
		if len(b) < cur+recSize {
			return nil, fmt.Errorf("tile: blob truncated in edge %d polyline", i)
		}
		cur += recSize
	}
	edgeOffsets[h.edgeCount] = cur
	v.edgeOffsets = edgeOffsets

	v.shapesOff = cur
	shapesSize := int(h.shapeCount) * shapeStride
	if len(b) < v.shapesOff+shapesSize {
		return nil, fmt.Errorf("tile: blob truncated in shape array")
	}

	return v, nil
}

func (v *View) Z() uint8            { return uint8(v.hdr.z) }
func (v *View) X() uint32           { return v.hdr.x }
func (v *View) Y() uint32           { return v.hdr.y }
func (v *View) Version() uint32     { return v.hdr.version }
func (v *View) ProfileMask() uint32 { return v.hdr.profileMask }
func (v *View) Checksum() string    { return v.hdr.checksum }
func (v *View) Key() Key            { return Key{Z: v.Z(), X: v.X(), Y: v.Y()} }

func (v *View) NodeCount() int  { return int(v.hdr.nodeCount) }
func (v *View) EdgeCount() int  { return int(v.hdr.edgeCount) }
func (v *View) ShapeCount() int { return int(v.hdr.shapeCount) }

func (v *View) nodeOffset(i int) int {
	return v.nodesOff + i*nodeStride
}

// NodeLatQ / NodeLonQ return the raw quantized coordinate, used as the
// cross-tile stitching key (spec §3, §4.4).
func (v *View) NodeLatQ(i int) int32 {
	b := v.blob.Bytes()
	off := v.nodeOffset(i) + 4
	return int32(binary.LittleEndian.Uint32(b[off:]))
}

func (v *View) NodeLonQ(i int) int32 {
	b := v.blob.Bytes()
	off := v.nodeOffset(i) + 8
	return int32(binary.LittleEndian.Uint32(b[off:]))
}

// NodeLat / NodeLon decode the quantized form to degrees (§4.2).
func (v *View) NodeLat(i int) float64 { return float64(v.NodeLatQ(i)) / 1e6 }
func (v *View) NodeLon(i int) float64 { return float64(v.NodeLonQ(i)) / 1e6 }

func (v *View) FirstEdge(i int) int {
	b := v.blob.Bytes()
	off := v.nodeOffset(i) + 12
	return int(binary.LittleEndian.Uint32(b[off:]))
}

func (v *View) EdgeCountFrom(i int) int {
	b := v.blob.Bytes()
	off := v.nodeOffset(i) + 16
	return int(binary.LittleEndian.Uint16(b[off:]))
}

// Edge is a handle over a single edge record within its tile blob.
type Edge struct {
	v      *View
	index  int
	off    int
}

// EdgeAt returns a handle for tile-local edge index ei.
func (v *View) EdgeAt(ei int) Edge {
	return Edge{v: v, index: ei, off: v.edgeOffsets[ei]}
}

func (e Edge) Index() int { return e.index }

func (e Edge) FromNode() int {
	b := e.v.blob.Bytes()
	return int(binary.LittleEndian.Uint32(b[e.off:]))
}

func (e Edge) ToNode() int {
	b := e.v.blob.Bytes()
	return int(binary.LittleEndian.Uint32(b[e.off+4:]))
}

func (e Edge) LengthM() float64 {
	return float64(decodeFloat32(e.v.blob.Bytes(), e.off+8))
}

func (e Edge) SpeedMps() float64 {
	return float64(decodeFloat32(e.v.blob.Bytes(), e.off+12))
}

func (e Edge) FootSpeedMps() float64 {
	return float64(decodeFloat32(e.v.blob.Bytes(), e.off+16))
}

func (e Edge) Oneway() bool {
	b := e.v.blob.Bytes()
	return b[e.off+20] != 0
}

func (e Edge) RoadClass() uint8 {
	b := e.v.blob.Bytes()
	return b[e.off+21]
}

func (e Edge) AccessMask() uint16 {
	b := e.v.blob.Bytes()
	return binary.LittleEndian.Uint16(b[e.off+22:])
}

func (e Edge) ShapeStart() int {
	b := e.v.blob.Bytes()
	return int(binary.LittleEndian.Uint32(b[e.off+24:]))
}

func (e Edge) ShapeCount() int {
	b := e.v.blob.Bytes()
	return int(binary.LittleEndian.Uint16(b[e.off+28:]))
}

// EncodedPolyline returns the polyline5 string attached to the edge, or ""
// if the edge carries an explicit shape slice or no geometry at all.
func (e Edge) EncodedPolyline() string {
	b := e.v.blob.Bytes()
	n := int(binary.LittleEndian.Uint16(b[e.off+edgeFixedSize-2:]))
	if n == 0 {
		return ""
	}
	start := e.off + edgeFixedSize
	return string(b[start : start+n])
}

// HasShape reports whether the edge carries an explicit shape-point slice.
func (e Edge) HasShape() bool {
	return e.ShapeCount() > 0
}

func decodeFloat32(b []byte, off int) float32 {
	bits := binary.LittleEndian.Uint32(b[off:])
	return math.Float32frombits(bits)
}
