package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/choragraph/chora/graph"
)

func TestDetectRoutines(t *testing.T) {
	cfg := DefaultPracticeConfig()
	base := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	// same extent, 9:00 on three mornings
	var encounters []*graph.Encounter
	for day := 0; day < 3; day++ {
		encounters = append(encounters,
			spanEncounter(t, "alice", "park", base.AddDate(0, 0, day), 1))
	}

	routines, err := DetectRoutines(encounters, cfg)
	require.NoError(t, err)
	require.Len(t, routines, 1)

	routine := routines[0]
	assert.Equal(t, graph.PracticeRoutine, routine.PracticeType)
	assert.Equal(t, "morning (8-12) visit to park", routine.Name)
	assert.Equal(t, "morning (8-12)", routine.TypicalTime)
	assert.InDelta(t, 1.0, routine.Regularity, 1e-9) // identical start times
	assert.InDelta(t, 3.0/30.0, routine.Frequency, 1e-9)
	assert.Len(t, routine.EncounterIDs, 3)
	assert.Equal(t, graph.Derived, routine.Level())
}

func TestDetectRoutinesRespectsMinOccurrences(t *testing.T) {
	cfg := DefaultPracticeConfig()
	base := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	encounters := []*graph.Encounter{
		spanEncounter(t, "alice", "park", base, 1),
		spanEncounter(t, "alice", "park", base.AddDate(0, 0, 1), 1),
	}

	routines, err := DetectRoutines(encounters, cfg)
	require.NoError(t, err)
	assert.Empty(t, routines)
}

func TestDetectRoutinesRejectsIrregularTiming(t *testing.T) {
	cfg := DefaultPracticeConfig()
	// same 8-12 bucket but spread across it: 8:00, 10:00, 11:59
	days := []time.Time{
		time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 5, 11, 59, 0, 0, time.UTC),
	}
	var encounters []*graph.Encounter
	for _, d := range days {
		encounters = append(encounters, spanEncounter(t, "alice", "park", d, 1))
	}

	// spread of ~1.6h std still passes the default 0.5 threshold
	routines, err := DetectRoutines(encounters, cfg)
	require.NoError(t, err)
	require.Len(t, routines, 1)
	assert.Less(t, routines[0].Regularity, 1.0)
	assert.GreaterOrEqual(t, routines[0].Regularity, cfg.MinRegularity)

	// demand near-perfect regularity and the routine disappears
	cfg.MinRegularity = 0.95
	routines, err = DetectRoutines(encounters, cfg)
	require.NoError(t, err)
	assert.Empty(t, routines)
}

func TestFindSequencePatterns(t *testing.T) {
	cfg := DefaultPracticeConfig()
	var encounters []*graph.Encounter

	// home -> cafe on three separate days
	for day := 0; day < 3; day++ {
		morning := time.Date(2024, 6, 3+day, 8, 0, 0, 0, time.UTC)
		encounters = append(encounters,
			spanEncounter(t, "alice", "home", morning, 1),
			spanEncounter(t, "alice", "cafe", morning.Add(2*time.Hour), 1))
	}

	patterns := FindSequencePatterns(encounters, cfg)
	require.Len(t, patterns, 1)
	assert.Equal(t, "home", patterns[0].From)
	assert.Equal(t, "cafe", patterns[0].To)
	assert.Len(t, patterns[0].EncounterIDs, 6)
	assert.InDelta(t, 3.0/6.0, patterns[0].Regularity, 1e-9)
}

func TestFindSequencePatternsSameExtentPairs(t *testing.T) {
	cfg := DefaultPracticeConfig()
	var encounters []*graph.Encounter

	// two park visits per day count as a park -> park bigram
	for day := 0; day < 3; day++ {
		morning := time.Date(2024, 6, 3+day, 8, 0, 0, 0, time.UTC)
		encounters = append(encounters,
			spanEncounter(t, "alice", "park", morning, 1),
			spanEncounter(t, "alice", "park", morning.Add(6*time.Hour), 1))
	}

	patterns := FindSequencePatterns(encounters, cfg)
	require.Len(t, patterns, 1)
	assert.Equal(t, "park", patterns[0].From)
	assert.Equal(t, "park", patterns[0].To)
	assert.Len(t, patterns[0].EncounterIDs, 6)
}

func TestFindSequencePatternsIgnoresCrossDayPairs(t *testing.T) {
	cfg := DefaultPracticeConfig()
	var encounters []*graph.Encounter
	// evening at home, next-morning cafe: never the same calendar date
	for day := 0; day < 4; day++ {
		evening := time.Date(2024, 6, 3+day, 23, 0, 0, 0, time.UTC)
		encounters = append(encounters,
			spanEncounter(t, "alice", "home", evening, 0.5),
			spanEncounter(t, "alice", "cafe", evening.Add(9*time.Hour), 1))
	}

	patterns := FindSequencePatterns(encounters, cfg)
	// the only same-day adjacency is cafe -> home, 3 occurrences
	require.Len(t, patterns, 1)
	assert.Equal(t, "cafe", patterns[0].From)
	assert.Equal(t, "home", patterns[0].To)
}

func TestDetectPracticesFiltersAgent(t *testing.T) {
	cfg := DefaultPracticeConfig()
	base := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	var encounters []*graph.Encounter
	for day := 0; day < 3; day++ {
		encounters = append(encounters,
			spanEncounter(t, "alice", "park", base.AddDate(0, 0, day), 1),
			spanEncounter(t, "bob", "gym", base.AddDate(0, 0, day), 1))
	}

	practices, err := DetectPractices(encounters, "alice", cfg)
	require.NoError(t, err)
	require.Len(t, practices, 1)
	assert.Contains(t, practices[0].Name, "park")

	none, err := DetectPractices(encounters, "carol", cfg)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestHourBucketLabels(t *testing.T) {
	labels := map[int]string{
		0: "night (0-4)",
		1: "early morning (4-8)",
		2: "morning (8-12)",
		3: "afternoon (12-16)",
		4: "evening (16-20)",
		5: "night (20-24)",
	}
	for bucket, want := range labels {
		assert.Equal(t, want, hourBucketLabel(bucket))
	}
}
