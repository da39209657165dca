package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/choragraph/chora/graph"
)

// walkThroughGate builds a street -> gate -> park day: a brief dwell at
// the gate between longer dwells either side.
func walkThroughGate(t *testing.T, day time.Time) []*graph.Encounter {
	t.Helper()
	return []*graph.Encounter{
		spanEncounter(t, "alice", "street", day, 0.5),
		spanEncounter(t, "alice", "gate", day.Add(40*time.Minute), 2.0/60), // 2 minutes
		spanEncounter(t, "alice", "park", day.Add(50*time.Minute), 1),
	}
}

func gateExtents() map[string]*graph.SpatialExtent {
	street := graph.PointExtent("Street", 0, 0)
	street.SetHint("type", "street")
	gate := graph.PointExtent("Gate", 0.001, 0)
	gate.SetHint("type", "threshold")
	park := graph.PointExtent("Park", 0.002, 0)
	park.SetHint("type", "park")
	return map[string]*graph.SpatialExtent{
		"street": street,
		"gate":   gate,
		"park":   park,
	}
}

func TestDetectBoundaryCrossings(t *testing.T) {
	day := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	encounters := walkThroughGate(t, day)

	crossings := DetectBoundaryCrossings(encounters, gateExtents())
	require.Len(t, crossings, 1)
	assert.Equal(t, "gate", crossings[0].ExtentID)
	assert.Equal(t, "street", crossings[0].FromType)
	assert.Equal(t, "threshold", crossings[0].ToType)
}

func TestDetectBoundaryCrossingsIgnoresLongDwells(t *testing.T) {
	day := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	encounters := []*graph.Encounter{
		spanEncounter(t, "alice", "street", day, 0.5),
		spanEncounter(t, "alice", "park", day.Add(time.Hour), 1), // an hour is a visit, not a crossing
	}

	crossings := DetectBoundaryCrossings(encounters, gateExtents())
	assert.Empty(t, crossings)
}

func TestDetectBoundaryCrossingsUnknownExtent(t *testing.T) {
	day := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	encounters := []*graph.Encounter{
		spanEncounter(t, "alice", "somewhere", day, 0.5),
		spanEncounter(t, "alice", "elsewhere", day.Add(time.Hour), 2.0/60),
	}

	crossings := DetectBoundaryCrossings(encounters, map[string]*graph.SpatialExtent{})
	require.Len(t, crossings, 1)
	assert.Equal(t, "unknown", crossings[0].FromType)
	assert.Equal(t, "unknown", crossings[0].ToType)
}

func TestInferLiminality(t *testing.T) {
	cfg := DefaultLiminalityConfig()
	var encounters []*graph.Encounter
	for day := 0; day < 3; day++ {
		start := time.Date(2024, 6, 3+day, 9, 0, 0, 0, time.UTC)
		encounters = append(encounters, walkThroughGate(t, start)...)
	}

	zones, err := InferLiminality(encounters, gateExtents(), cfg)
	require.NoError(t, err)
	require.Len(t, zones, 1)

	zone := zones[0]
	assert.Equal(t, graph.LiminalSpatial, zone.LiminalityType)
	assert.Equal(t, []string{"gate"}, zone.ExtentIDs)
	assert.Equal(t, "street", zone.TransitionalFrom)
	assert.Equal(t, "threshold", zone.TransitionalTo)
	// 3 crossings over a 6-crossing saturation point
	assert.InDelta(t, 0.5, zone.Intensity, 1e-9)
	assert.Equal(t, graph.Derived, zone.Level())
}

func TestInferLiminalityBelowThreshold(t *testing.T) {
	cfg := DefaultLiminalityConfig()
	day := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	encounters := walkThroughGate(t, day) // a single crossing

	zones, err := InferLiminality(encounters, gateExtents(), cfg)
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestMostFrequentTieGoesToFirstSeen(t *testing.T) {
	assert.Equal(t, "a", mostFrequent([]string{"a", "b", "a", "b"}))
	assert.Equal(t, "b", mostFrequent([]string{"b", "a", "a", "b"}))
	assert.Equal(t, "", mostFrequent(nil))
}
