package tile

import "fmt"

// EdgeId packs (z, x, y, edge_index) into a single 64-bit global edge
// identifier using the 8/20/20/16 bit layout fixed by spec §3: the source
// material toggles between that layout and a 12/20/20/12 one, and this
// module commits to 8/20/20/16, rejecting rather than truncating any tile
// whose edge_index would overflow 16 bits (spec §8 Open Questions).
type EdgeId uint64

const (
	zBits  = 8
	xBits  = 20
	yBits  = 20
	eiBits = 16

	eiMask = (uint64(1) << eiBits) - 1
	yMask  = (uint64(1) << yBits) - 1
	xMask  = (uint64(1) << xBits) - 1
	zMask  = (uint64(1) << zBits) - 1

	// MaxEdgesPerTile is the most edges a tile may hold under the fixed
	// bit layout; valid edge indices run from 0 to MaxEdgesPerTile-1.
	MaxEdgesPerTile = uint64(1) << eiBits
)

// EncodeEdgeId packs the tuple into a global EdgeId. Callers must have
// already validated edgeIndex < MaxEdgesPerTile (EncodeEdgeId panics
// otherwise, since that invariant is enforced once at tile-decode time,
// not per encode call).
func EncodeEdgeId(z uint8, x, y uint32, edgeIndex uint32) EdgeId {
	if uint64(edgeIndex) >= MaxEdgesPerTile {
		panic(fmt.Sprintf("tile: edge_index %d overflows %d-bit budget", edgeIndex, eiBits))
	}
	v := uint64(z) & zMask
	v = v<<xBits | (uint64(x) & xMask)
	v = v<<yBits | (uint64(y) & yMask)
	v = v<<eiBits | (uint64(edgeIndex) & eiMask)
	return EdgeId(v)
}

// DecodeEdgeId is the exact inverse of EncodeEdgeId (spec §8 property 1).
func DecodeEdgeId(id EdgeId) (z uint8, x, y uint32, edgeIndex uint32) {
	v := uint64(id)
	edgeIndex = uint32(v & eiMask)
	v >>= eiBits
	y = uint32(v & yMask)
	v >>= yBits
	x = uint32(v & xMask)
	v >>= xBits
	z = uint8(v & zMask)
	return z, x, y, edgeIndex
}

// Key reconstructs the tile Key the edge belongs to.
func (id EdgeId) Key() Key {
	z, x, y, _ := DecodeEdgeId(id)
	return Key{Z: z, X: x, Y: y}
}

// EdgeIndex returns just the tile-local edge index component.
func (id EdgeId) EdgeIndex() uint32 {
	_, _, _, ei := DecodeEdgeId(id)
	return ei
}
