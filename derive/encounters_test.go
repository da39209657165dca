package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/choragraph/chora/graph"
)

func TestExtractEncounters(t *testing.T) {
	cfg := DefaultExtractionConfig()
	park := graph.ExtentFromBounds("Park", -0.13, 51.50, -0.12, 51.51)
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	trace := []TracePoint{
		{Timestamp: start, Longitude: -0.127, Latitude: 51.507},
		{Timestamp: start.Add(30 * time.Minute), Longitude: -0.127, Latitude: 51.507},
		{Timestamp: start.Add(60 * time.Minute), Longitude: -0.128, Latitude: 51.508},
		// outside the park
		{Timestamp: start.Add(90 * time.Minute), Longitude: -0.2, Latitude: 51.6},
	}

	encounters, err := ExtractEncounters(trace, "alice", []*graph.SpatialExtent{park}, cfg)
	require.NoError(t, err)
	require.Len(t, encounters, 1)

	enc := encounters[0]
	assert.Equal(t, "alice", enc.AgentID)
	assert.Equal(t, park.ID(), enc.ExtentID)
	assert.Equal(t, start, enc.StartTime)
	require.NotNil(t, enc.EndTime)
	assert.Equal(t, start.Add(60*time.Minute), *enc.EndTime)
	assert.Equal(t, graph.Derived, enc.Level())
}

func TestExtractEncountersSplitsOnGap(t *testing.T) {
	cfg := DefaultExtractionConfig()
	park := graph.ExtentFromBounds("Park", -0.13, 51.50, -0.12, 51.51)
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	trace := []TracePoint{
		{Timestamp: start, Longitude: -0.127, Latitude: 51.507},
		{Timestamp: start.Add(10 * time.Minute), Longitude: -0.127, Latitude: 51.507},
		// two-hour gap, beyond MaxGap
		{Timestamp: start.Add(2*time.Hour + 10*time.Minute), Longitude: -0.127, Latitude: 51.507},
		{Timestamp: start.Add(2*time.Hour + 25*time.Minute), Longitude: -0.127, Latitude: 51.507},
	}

	encounters, err := ExtractEncounters(trace, "alice", []*graph.SpatialExtent{park}, cfg)
	require.NoError(t, err)
	assert.Len(t, encounters, 2)
}

func TestExtractEncountersSkipsShortDwells(t *testing.T) {
	cfg := DefaultExtractionConfig()
	cfg.MinDuration = 20 * time.Minute
	park := graph.ExtentFromBounds("Park", -0.13, 51.50, -0.12, 51.51)
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	trace := []TracePoint{
		{Timestamp: start, Longitude: -0.127, Latitude: 51.507},
		{Timestamp: start.Add(5 * time.Minute), Longitude: -0.127, Latitude: 51.507},
	}

	encounters, err := ExtractEncounters(trace, "alice", []*graph.SpatialExtent{park}, cfg)
	require.NoError(t, err)
	assert.Empty(t, encounters)
}

func TestExtractEncountersFromTrace(t *testing.T) {
	cfg := DefaultExtractionConfig()
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	// a tight dwell cluster and a far-away single point
	trace := []TracePoint{
		{Timestamp: start, Longitude: -0.1270, Latitude: 51.5070},
		{Timestamp: start.Add(15 * time.Minute), Longitude: -0.12701, Latitude: 51.50701},
		{Timestamp: start.Add(30 * time.Minute), Longitude: -0.12702, Latitude: 51.50699},
		{Timestamp: start.Add(45 * time.Minute), Longitude: -0.5, Latitude: 51.9},
	}

	encounters, err := ExtractEncountersFromTrace(trace, "alice", cfg)
	require.NoError(t, err)
	require.Len(t, encounters, 1)

	enc := encounters[0]
	derived, ok := enc.Metadata["derived_extent"].(*graph.SpatialExtent)
	require.True(t, ok)
	assert.True(t, derived.HasGeometry())
	assert.Equal(t, derived.ID(), enc.ExtentID)
}

func TestMergeNearbyEncounters(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	encounters := []*graph.Encounter{
		spanEncounter(t, "alice", "park", start, 0.5),
		spanEncounter(t, "alice", "park", start.Add(33*time.Minute), 0.5), // 3 min gap
		spanEncounter(t, "alice", "park", start.Add(3*time.Hour), 0.5),    // far later
		spanEncounter(t, "alice", "cafe", start.Add(32*time.Minute), 0.5), // other extent
	}

	merged, err := MergeNearbyEncounters(encounters, 5*time.Minute)
	require.NoError(t, err)
	require.Len(t, merged, 3)

	var parkSpans []*graph.Encounter
	for _, enc := range merged {
		if enc.ExtentID == "park" {
			parkSpans = append(parkSpans, enc)
		}
	}
	require.Len(t, parkSpans, 2)
	assert.Equal(t, start, parkSpans[0].StartTime)
	require.NotNil(t, parkSpans[0].EndTime)
	assert.Equal(t, start.Add(63*time.Minute), *parkSpans[0].EndTime)
}

func TestMergeNearbyEncountersEmpty(t *testing.T) {
	merged, err := MergeNearbyEncounters(nil, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, merged)
}
