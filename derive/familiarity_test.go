package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/choragraph/chora/graph"
)

func spanEncounter(t *testing.T, agentID, extentID string, start time.Time, hours float64) *graph.Encounter {
	t.Helper()
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	enc, err := graph.NewEncounter(agentID, extentID, start, &end)
	require.NoError(t, err)
	return enc
}

func TestUpdateFamiliarityCreatesNode(t *testing.T) {
	g := graph.New("test")
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	enc := spanEncounter(t, "alice", "park", start, 2)
	require.NoError(t, g.AddNode(enc))

	fam, err := UpdateFamiliarity(g, enc)
	require.NoError(t, err)

	assert.Equal(t, "alice", fam.AgentID)
	assert.Equal(t, "park", fam.ExtentID)
	assert.InDelta(t, 0.1, fam.Value, 1e-9) // min(0.1, 0.05*2)
	assert.Equal(t, 1, fam.EncounterCount)
	assert.True(t, g.HasNode(fam.ID()))

	latest, ok := fam.Lineage.Latest()
	require.True(t, ok)
	assert.Equal(t, "update_familiarity", latest.Operator)
	assert.Equal(t, []string{enc.ID()}, latest.SourceIDs)
}

func TestUpdateFamiliarityReusesNode(t *testing.T) {
	g := graph.New("test")
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	first := spanEncounter(t, "alice", "park", start, 1)
	second := spanEncounter(t, "alice", "park", start.Add(24*time.Hour), 1)
	require.NoError(t, g.AddNode(first))
	require.NoError(t, g.AddNode(second))

	fam1, err := UpdateFamiliarity(g, first)
	require.NoError(t, err)
	fam2, err := UpdateFamiliarity(g, second)
	require.NoError(t, err)

	assert.Equal(t, fam1.ID(), fam2.ID())
	assert.Equal(t, 2, fam2.EncounterCount)
	assert.Equal(t, 1, g.NodeCountByType(graph.NodeTypeFamiliarity))
}

func TestUpdateFamiliarityOngoingCountsOneHour(t *testing.T) {
	g := graph.New("test")
	enc := graph.OngoingEncounter("alice", "park", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, g.AddNode(enc))

	fam, err := UpdateFamiliarity(g, enc)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, fam.Value, 1e-9)
	assert.InDelta(t, 1.0, fam.TotalDurationHours, 1e-9)
}

func TestFamiliarityTrajectory(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	encounters := []*graph.Encounter{
		spanEncounter(t, "alice", "park", start, 1),
		spanEncounter(t, "alice", "park", start.Add(48*time.Hour), 1),
		spanEncounter(t, "bob", "park", start.Add(24*time.Hour), 1), // other agent, ignored
		spanEncounter(t, "alice", "cafe", start, 1),                 // other extent, ignored
	}

	trajectory, err := FamiliarityTrajectory(encounters, "alice", "park", 14.0)
	require.NoError(t, err)
	require.Len(t, trajectory, 2)
	assert.True(t, trajectory[0].At.Before(trajectory[1].At))
	assert.Greater(t, trajectory[1].Value, trajectory[0].Value)
}

func TestFamiliarityTrajectoryDailyEncountersMonotoneBounded(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	encounters := make([]*graph.Encounter, 0, 14)
	for day := 0; day < 14; day++ {
		encounters = append(encounters,
			spanEncounter(t, "alice", "park", start.Add(time.Duration(day)*24*time.Hour), 1))
	}

	trajectory, err := FamiliarityTrajectory(encounters, "alice", "park", 14.0)
	require.NoError(t, err)
	require.Len(t, trajectory, 14)

	// daily reinforcement outpaces decay, so the value never dips and
	// stays inside (0, 1]
	for i, point := range trajectory {
		assert.Greater(t, point.Value, 0.0)
		assert.LessOrEqual(t, point.Value, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, point.Value, trajectory[i-1].Value,
				"day %d should not fall below day %d", i, i-1)
		}
	}
}

func TestFamiliarityTrajectoryEmpty(t *testing.T) {
	trajectory, err := FamiliarityTrajectory(nil, "alice", "park", 14.0)
	require.NoError(t, err)
	assert.Empty(t, trajectory)
}

func TestDecayAllFamiliarities(t *testing.T) {
	g := graph.New("test")
	t0 := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	for _, pair := range [][2]string{{"alice", "park"}, {"alice", "cafe"}} {
		fam := graph.NewFamiliarity(pair[0], pair[1])
		_, err := fam.Reinforce(2.0, t0)
		require.NoError(t, err)
		require.NoError(t, g.AddNode(fam))
	}

	count, err := DecayAllFamiliarities(g, t0.Add(14*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, n := range g.NodesByType(graph.NodeTypeFamiliarity) {
		fam := n.(*graph.Familiarity)
		assert.InDelta(t, 0.05, fam.Value, 1e-9) // one half-life from 0.1
	}
}
