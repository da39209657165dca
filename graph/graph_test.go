package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/choragraph/chora/errors"
)

func mustEncounter(t *testing.T, agentID, extentID string, start time.Time, hours float64) *Encounter {
	t.Helper()
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	enc, err := NewEncounter(agentID, extentID, start, &end)
	require.NoError(t, err)
	return enc
}

func TestAddNodeRejectsDuplicate(t *testing.T) {
	g := New("test")
	alice := NewAgent("Alice")

	require.NoError(t, g.AddNode(alice))
	err := g.AddNode(alice)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDuplicateNode))
	assert.Equal(t, 1, g.NodeCount())
}

func TestNodeNotFound(t *testing.T) {
	g := New("test")
	_, err := g.Node("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNodeNotFound))
}

func TestAddEdgeRequiresEndpoints(t *testing.T) {
	g := New("test")
	alice := NewAgent("Alice")
	require.NoError(t, g.AddNode(alice))

	enc := InstantEncounter(alice.ID(), "nowhere", time.Now())
	err := g.AddEdge(ParticipatesIn(alice.ID(), enc.ID()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNodeNotFound))
	assert.Equal(t, 0, g.EdgeCount())
}

func TestRemoveNodeCascadesEdges(t *testing.T) {
	g := New("test")
	alice := NewAgent("Alice")
	park := PointExtent("Park", -0.15, 51.5)
	enc := mustEncounter(t, alice.ID(), park.ID(), time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), 1)

	for _, n := range []Node{alice, park, enc} {
		require.NoError(t, g.AddNode(n))
	}
	require.NoError(t, g.AddEdge(ParticipatesIn(alice.ID(), enc.ID())))
	require.NoError(t, g.AddEdge(OccursAt(enc.ID(), park.ID())))
	require.Equal(t, 2, g.EdgeCount())

	_, err := g.RemoveNode(enc.ID())
	require.NoError(t, err)

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
	assert.Empty(t, g.OutgoingEdges(alice.ID()))
	assert.Empty(t, g.IncomingEdges(park.ID()))
}

func TestTypeIndices(t *testing.T) {
	g := New("test")
	alice := NewAgent("Alice")
	bob := NewAgent("Bob")
	park := PointExtent("Park", -0.15, 51.5)

	for _, n := range []Node{alice, bob, park} {
		require.NoError(t, g.AddNode(n))
	}

	assert.Equal(t, 2, g.NodeCountByType(NodeTypeAgent))
	assert.Equal(t, 1, g.NodeCountByType(NodeTypeSpatialExtent))
	assert.Len(t, g.NodesByType(NodeTypeAgent), 2)
	assert.Empty(t, g.NodesByType(NodeTypeEncounter))

	_, err := g.RemoveNode(bob.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, g.NodeCountByType(NodeTypeAgent))
}

func TestNeighborsAndPredecessors(t *testing.T) {
	g := New("test")
	alice := NewAgent("Alice")
	park := PointExtent("Park", -0.15, 51.5)
	enc := mustEncounter(t, alice.ID(), park.ID(), time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), 1)

	for _, n := range []Node{alice, park, enc} {
		require.NoError(t, g.AddNode(n))
	}
	require.NoError(t, g.AddEdge(ParticipatesIn(alice.ID(), enc.ID())))
	require.NoError(t, g.AddEdge(OccursAt(enc.ID(), park.ID())))

	neighbors := g.Neighbors(enc.ID())
	require.Len(t, neighbors, 1)
	assert.Equal(t, park.ID(), neighbors[0].ID())

	preds := g.Predecessors(enc.ID())
	require.Len(t, preds, 1)
	assert.Equal(t, alice.ID(), preds[0].ID())

	byType := g.Neighbors(enc.ID(), EdgeOccursAt)
	require.Len(t, byType, 1)
	assert.Equal(t, park.ID(), byType[0].ID())
	assert.Empty(t, g.Neighbors(enc.ID(), EdgeExpresses))
}

func TestSubgraph(t *testing.T) {
	g := New("test")
	alice := NewAgent("Alice")
	park := PointExtent("Park", -0.15, 51.5)
	cafe := PointExtent("Cafe", -0.14, 51.51)
	enc := mustEncounter(t, alice.ID(), park.ID(), time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), 1)

	for _, n := range []Node{alice, park, cafe, enc} {
		require.NoError(t, g.AddNode(n))
	}
	require.NoError(t, g.AddEdge(ParticipatesIn(alice.ID(), enc.ID())))
	require.NoError(t, g.AddEdge(OccursAt(enc.ID(), park.ID())))

	sub := g.Subgraph([]string{alice.ID(), enc.ID(), "unknown"})
	assert.Equal(t, 2, sub.NodeCount())
	// only the participates_in edge has both endpoints in the subgraph
	assert.Equal(t, 1, sub.EdgeCount())
}

func TestSnapshot(t *testing.T) {
	g := New("test")
	alice := NewAgent("Alice")
	park := PointExtent("Park", -0.15, 51.5)
	enc := mustEncounter(t, alice.ID(), park.ID(), time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), 1)

	for _, n := range []Node{alice, park, enc} {
		require.NoError(t, g.AddNode(n))
	}
	edge := OccursAt(enc.ID(), park.ID())
	require.NoError(t, g.AddEdge(edge))

	cutoff := time.Now()
	park.Invalidate(cutoff)

	snap := g.Snapshot(cutoff.Add(time.Hour))
	assert.Equal(t, 2, snap.NodeCount())
	assert.False(t, snap.HasNode(park.ID()))
	// the occurs_at edge loses its target and drops out
	assert.Equal(t, 0, snap.EdgeCount())

	before := g.Snapshot(cutoff.Add(-time.Minute))
	assert.Equal(t, 3, before.NodeCount())
	assert.Equal(t, 1, before.EdgeCount())
}

func TestSnapshotIdempotent(t *testing.T) {
	g := New("test")
	alice := NewAgent("Alice")
	park := PointExtent("Park", -0.15, 51.5)
	cafe := PointExtent("Cafe", -0.14, 51.51)
	enc := mustEncounter(t, alice.ID(), park.ID(), time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), 1)

	for _, n := range []Node{alice, park, cafe, enc} {
		require.NoError(t, g.AddNode(n))
	}
	require.NoError(t, g.AddEdge(ParticipatesIn(alice.ID(), enc.ID())))
	require.NoError(t, g.AddEdge(OccursAt(enc.ID(), park.ID())))

	cutoff := time.Now()
	cafe.Invalidate(cutoff)
	at := cutoff.Add(time.Hour)

	snap := g.Snapshot(at)
	again := snap.Snapshot(at)

	// snapshotting a snapshot at the same time changes nothing
	assert.Equal(t, snap.NodeCount(), again.NodeCount())
	assert.Equal(t, snap.EdgeCount(), again.EdgeCount())
	for _, id := range []string{alice.ID(), park.ID(), cafe.ID(), enc.ID()} {
		assert.Equal(t, snap.HasNode(id), again.HasNode(id))
	}
}

func TestEpistemicOrdering(t *testing.T) {
	assert.True(t, Observed.MoreCertainThan(Derived))
	assert.True(t, Derived.MoreCertainThan(Interpreted))
	assert.False(t, Interpreted.MoreCertainThan(Observed))
	assert.False(t, Observed.MoreCertainThan(Observed))
}

func TestEncounterDuration(t *testing.T) {
	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	enc, err := NewEncounter("a", "x", start, &end)
	require.NoError(t, err)

	hours, ok := enc.DurationHours()
	require.True(t, ok)
	assert.InDelta(t, 1.5, hours, 1e-9)
	assert.Equal(t, end, enc.EffectiveTime())
	assert.Equal(t, start.Add(45*time.Minute), enc.Midpoint())

	ongoing := OngoingEncounter("a", "x", start)
	_, ok = ongoing.Duration()
	assert.False(t, ok)
	assert.True(t, ongoing.IsOngoing())
	assert.Equal(t, start, ongoing.EffectiveTime())
}

func TestEncounterRejectsReversedInterval(t *testing.T) {
	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	_, err := NewEncounter("a", "x", start, &end)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidTimeInterval))
}

func TestFamiliarityReinforce(t *testing.T) {
	fam := NewFamiliarity("alice", "park")
	t0 := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	v1, err := fam.Reinforce(1.0, t0)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, v1, 1e-9)
	assert.Equal(t, 1, fam.EncounterCount)
	require.NotNil(t, fam.FirstEncounter)
	assert.Equal(t, t0, *fam.FirstEncounter)

	// a long encounter caps the increment at 0.1
	v2, err := fam.Reinforce(10.0, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Greater(t, v2, v1)
	assert.LessOrEqual(t, v2, v1+0.1)
	assert.InDelta(t, 11.0, fam.TotalDurationHours, 1e-9)
}

func TestFamiliarityReinforceRejectsRetro(t *testing.T) {
	fam := NewFamiliarity("alice", "park")
	t0 := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	_, err := fam.Reinforce(1.0, t0)
	require.NoError(t, err)

	before := fam.Value
	_, err = fam.Reinforce(1.0, t0.Add(-24*time.Hour))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTemporalOrdering))
	assert.Equal(t, before, fam.Value)
	assert.Equal(t, 1, fam.EncounterCount)
}

func TestFamiliarityReinforceRejectsNegativeDuration(t *testing.T) {
	fam := NewFamiliarity("alice", "park")
	_, err := fam.Reinforce(-1.0, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidTimeInterval))
}

func TestFamiliarityDecayHalfLife(t *testing.T) {
	fam := NewFamiliarity("alice", "park")
	t0 := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	_, err := fam.Reinforce(2.0, t0) // value 0.1
	require.NoError(t, err)

	v, err := fam.ValueAt(t0.Add(14 * 24 * time.Hour))
	require.NoError(t, err)
	assert.InDelta(t, fam.Value/2, v, 1e-9)

	// ValueAt does not mutate
	assert.InDelta(t, 0.1, fam.Value, 1e-9)

	applied, err := fam.ApplyDecay(t0.Add(14 * 24 * time.Hour))
	require.NoError(t, err)
	assert.InDelta(t, v, applied, 1e-12)
	assert.InDelta(t, v, fam.Value, 1e-12)
}

func TestGeometry(t *testing.T) {
	rect := Rect{MinLon: 0, MinLat: 0, MaxLon: 2, MaxLat: 2}
	assert.True(t, rect.Contains(1, 1))
	assert.False(t, rect.Contains(3, 1))

	lon, lat := rect.Centroid()
	assert.Equal(t, 1.0, lon)
	assert.Equal(t, 1.0, lat)

	other := Rect{MinLon: 1.5, MinLat: 1.5, MaxLon: 3, MaxLat: 3}
	assert.True(t, rect.Intersects(other))
	assert.False(t, rect.Intersects(Rect{MinLon: 5, MinLat: 5, MaxLon: 6, MaxLat: 6}))

	ext := ExtentFromBounds("zone", 0, 0, 2, 2)
	assert.True(t, ext.ContainsPoint(1, 1))
	assert.Equal(t, "unknown", ext.Hint("type", "unknown"))
	ext.SetHint("type", "park")
	assert.Equal(t, "park", ext.Hint("type", "unknown"))
}

func TestSerializeNode(t *testing.T) {
	alice := NewAgent("Alice")
	alice.SetProperty("age_group", "adult")

	out := Serialize(alice)
	assert.Equal(t, alice.ID(), out["id"])
	assert.Equal(t, "agent", out["node_type"])
	assert.Equal(t, "observed", out["epistemic_level"])
	assert.Nil(t, out["valid_to"])
	props, ok := out["properties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "adult", props["age_group"])
}
