// Package tile decodes the binary tile container format (spec §6) into the
// zero-copy TileView graph-fragment accessors (spec §4.2), and provides the
// pure TileKey/EdgeId codecs (spec §3, §8).
package tile

import "math"

// Key identifies a tile under a standard web-Mercator tiling at a fixed
// zoom. Invariant: 0 <= X,Y < 2^Z.
type Key struct {
	Z uint8
	X uint32
	Y uint32
}

// Valid reports whether the key's coordinates fit within the 2^Z grid and
// the 8/20/20/16 EdgeId bit budget (§8, Open Questions).
func (k Key) Valid() bool {
	n := uint32(1) << k.Z
	return k.X < n && k.Y < n && k.X < (1<<20) && k.Y < (1<<20)
}

// KeyForCoord maps a (lat, lon) in degrees to its tile key at zoom z, per
// the web-Mercator formula in spec §6:
//
//	x = floor((lon + 180) / 360 * n)
//	y = floor((1 - ln(tan(lat_rad) + 1/cos(lat_rad)) / pi) / 2 * n)
//
// clamped to [0, n-1].
func KeyForCoord(lat, lon float64, z uint8) Key {
	n := float64(uint32(1) << z)

	x := int64(math.Floor((lon + 180.0) / 360.0 * n))
	x = clampInt64(x, 0, int64(n)-1)

	latRad := lat * math.Pi / 180.0
	y := int64(math.Floor((1.0 - math.Log(math.Tan(latRad)+1.0/math.Cos(latRad))/math.Pi) / 2.0 * n))
	y = clampInt64(y, 0, int64(n)-1)

	return Key{Z: z, X: uint32(x), Y: uint32(y)}
}

func clampInt64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rect is an inclusive rectangle of tile keys at a fixed zoom, the output
// of Router's tile-rectangle sizing (spec §4.7).
type Rect struct {
	Z          uint8
	MinX, MinY uint32
	MaxX, MaxY uint32
}

// Keys enumerates every key in the rectangle in row-major order.
func (r Rect) Keys() []Key {
	keys := make([]Key, 0, (int(r.MaxX)-int(r.MinX)+1)*(int(r.MaxY)-int(r.MinY)+1))
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			keys = append(keys, Key{Z: r.Z, X: x, Y: y})
		}
	}
	return keys
}

// InflatedRect builds the tile rectangle spanning a and b, inflated by
// frame tiles in every direction and clamped to the valid 2^Z grid (spec
// §4.7).
func InflatedRect(a, b Key, frame int) Rect {
	n := int64(uint32(1) << a.Z)
	minX, maxX := minMaxU32(a.X, b.X)
	minY, maxY := minMaxU32(a.Y, b.Y)

	lo := func(v uint32) uint32 {
		c := int64(v) - int64(frame)
		if c < 0 {
			c = 0
		}
		return uint32(c)
	}
	hi := func(v uint32) uint32 {
		c := int64(v) + int64(frame)
		if c > n-1 {
			c = n - 1
		}
		return uint32(c)
	}

	return Rect{
		Z:    a.Z,
		MinX: lo(minX), MinY: lo(minY),
		MaxX: hi(maxX), MaxY: hi(maxY),
	}
}

func minMaxU32(a, b uint32) (uint32, uint32) {
	if a < b {
		return a, b
	}
	return b, a
}
