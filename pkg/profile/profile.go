// Package profile defines the travel disciplines routing runs against,
// following the teacher's pkg/costfunction.CostFunction split between
// "which edges are usable" and "what do they cost" — here the two halves
// are Bit/SpeedMps and VRefMps.
package profile

import "github.com/tileroute/tileroute/pkg/tile"

// Profile selects a travel discipline: which access bit gates an edge,
// which of its two speed fields applies, and the heuristic reference
// speed used by the search (spec §4.5).
type Profile struct {
	Name    string
	Bit     uint16
	VRefMps float64
}

const (
	carAccessBit  uint16 = 1 << 0
	footAccessBit uint16 = 1 << 1
)

// Car and Foot are constructed with the config-tunable v_ref in
// pkg/rconfig, never with a compiled-in constant (spec §4.5: "the
// implementer must document v_ref exposed as tunable").
func Car(vRefMps float64) Profile  { return Profile{Name: "car", Bit: carAccessBit, VRefMps: vRefMps} }
func Foot(vRefMps float64) Profile { return Profile{Name: "foot", Bit: footAccessBit, VRefMps: vRefMps} }

// ByName resolves a profile name from a route request against the
// configured reference speeds.
func ByName(name string, carVRef, footVRef float64) (Profile, bool) {
	switch name {
	case "car":
		return Car(carVRef), true
	case "foot":
		return Foot(footVRef), true
	default:
		return Profile{}, false
	}
}

// SpeedMps returns the profile-specific speed field of e (foot speed for
// Foot, motor-vehicle speed otherwise; spec §4.4's "profile speed"), where
// 0 marks the edge as forbidden for the profile. It does not check the
// access mask, so it can be nonzero for an edge whose access bit is unset;
// callers combine Traversable and
// SpeedMps, mirroring the access-bit + speed>0 double gate of spec §4.4.
func (p Profile) SpeedMps(e tile.Edge) float64 {
	switch p.Bit {
	case footAccessBit:
		return e.FootSpeedMps()
	default:
		return e.SpeedMps()
	}
}

// Traversable reports whether e may be used by this profile in the
// forward direction: the access bit is set and the profile speed is
// nonzero (spec §4.4).
func (p Profile) Traversable(e tile.Edge) bool {
	return e.AccessMask()&p.Bit != 0 && p.SpeedMps(e) > 0
}

// ReverseTraversable reports whether e may be used against its stored
// direction: traversable at all, and not marked oneway (spec §4.4: "add a
// second directed edge in the reverse direction... only if the reverse
// direction is also allowed under the profile").
func (p Profile) ReverseTraversable(e tile.Edge) bool {
	return p.Traversable(e) && !e.Oneway()
}
