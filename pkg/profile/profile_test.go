package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tileroute/tileroute/pkg/profile"
	"github.com/tileroute/tileroute/pkg/tile"
	"github.com/tileroute/tileroute/pkg/tile/tiletest"
)

func oneEdgeView(t *testing.T, oneway bool, accessMask uint16, speed, footSpeed float32) tile.Edge {
	t.Helper()
	b := &tiletest.Builder{
		Z: 14, X: 1, Y: 1,
		Nodes: []tiletest.Node{{LatDeg: 0, LonDeg: 0}, {LatDeg: 0, LonDeg: 0.01}},
		Edges: []tiletest.Edge{
			{FromNode: 0, ToNode: 1, LengthM: 100, SpeedMps: speed, FootSpeedMps: footSpeed,
				Oneway: oneway, AccessMask: accessMask},
		},
	}
	v, err := tile.NewView(b.Build())
	require.NoError(t, err)
	return v.EdgeAt(0)
}

func TestByName(t *testing.T) {
	car, ok := profile.ByName("car", 13.9, 1.4)
	assert.True(t, ok)
	assert.Equal(t, "car", car.Name)

	foot, ok := profile.ByName("foot", 13.9, 1.4)
	assert.True(t, ok)
	assert.Equal(t, "foot", foot.Name)

	_, ok = profile.ByName("bike", 13.9, 1.4)
	assert.False(t, ok)
}

func TestSpeedMpsPicksProfileField(t *testing.T) {
	e := oneEdgeView(t, false, 3, 10, 1.4)
	car := profile.Car(13.9)
	foot := profile.Foot(1.4)
	assert.InDelta(t, 10.0, car.SpeedMps(e), 1e-6)
	assert.InDelta(t, 1.4, foot.SpeedMps(e), 1e-6)
}

func TestTraversableRequiresAccessBitAndSpeed(t *testing.T) {
	carOnly := oneEdgeView(t, false, 1, 10, 1.4)
	car := profile.Car(13.9)
	foot := profile.Foot(1.4)
	assert.True(t, car.Traversable(carOnly))
	assert.False(t, foot.Traversable(carOnly))

	zeroSpeed := oneEdgeView(t, false, 3, 0, 1.4)
	assert.False(t, car.Traversable(zeroSpeed))
}

func TestReverseTraversableRespectsOneway(t *testing.T) {
	car := profile.Car(13.9)

	twoWay := oneEdgeView(t, false, 3, 10, 1.4)
	assert.True(t, car.ReverseTraversable(twoWay))

	oneWay := oneEdgeView(t, true, 3, 10, 1.4)
	assert.False(t, car.ReverseTraversable(oneWay))
}
