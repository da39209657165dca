package derive

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/choragraph/chora/graph"
	"github.com/choragraph/chora/provenance"
)

// PracticeConfig tunes practice detection.
type PracticeConfig struct {
	MinOccurrences int           // minimum repetitions for a routine
	TimeWindowDays int           // window the frequency is computed over
	TimeTolerance  time.Duration // timing slack when matching patterns
	MinRegularity  float64       // minimum regularity score to qualify
}

// DefaultPracticeConfig returns the standard detection thresholds.
func DefaultPracticeConfig() PracticeConfig {
	return PracticeConfig{
		MinOccurrences: 3,
		TimeWindowDays: 30,
		TimeTolerance:  time.Hour,
		MinRegularity:  0.5,
	}
}

// DetectPractices finds routines and sequence patterns in an agent's
// encounters. Results are deterministic for a given input.
func DetectPractices(encounters []*graph.Encounter, agentID string, cfg PracticeConfig) ([]*graph.Practice, error) {
	var agentEncounters []*graph.Encounter
	for _, enc := range encounters {
		if enc.AgentID == agentID {
			agentEncounters = append(agentEncounters, enc)
		}
	}
	if len(agentEncounters) < cfg.MinOccurrences {
		return nil, nil
	}

	practices, err := DetectRoutines(agentEncounters, cfg)
	if err != nil {
		return nil, err
	}

	for _, pattern := range FindSequencePatterns(agentEncounters, cfg) {
		practice, err := graph.NewPractice(graph.PracticeRoutine, pattern.Name, pattern.Regularity, 0)
		if err != nil {
			return nil, err
		}
		practice.EncounterIDs = pattern.EncounterIDs
		practice.AddLineage(provenance.Derived(pattern.EncounterIDs, "find_sequence_patterns", nil))
		practices = append(practices, practice)
	}
	return practices, nil
}

// DetectRoutines finds location-time routines: repeated visits to the same
// extent within the same four-hour slot of the day. Routines come back
// sorted by extent id, then hour bucket.
func DetectRoutines(encounters []*graph.Encounter, cfg PracticeConfig) ([]*graph.Practice, error) {
	type bucketKey struct {
		extentID   string
		hourBucket int
	}
	buckets := make(map[bucketKey][]*graph.Encounter)
	for _, enc := range encounters {
		if enc.ExtentID == "" {
			continue
		}
		key := bucketKey{enc.ExtentID, enc.StartTime.Hour() / 4}
		buckets[key] = append(buckets[key], enc)
	}

	keys := make([]bucketKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].extentID != keys[j].extentID {
			return keys[i].extentID < keys[j].extentID
		}
		return keys[i].hourBucket < keys[j].hourBucket
	})

	var routines []*graph.Practice
	for _, key := range keys {
		group := buckets[key]
		if len(group) < cfg.MinOccurrences {
			continue
		}
		regularity := timingRegularity(group)
		if regularity < cfg.MinRegularity {
			continue
		}

		label := hourBucketLabel(key.hourBucket)
		practice, err := graph.NewPractice(graph.PracticeRoutine,
			fmt.Sprintf("%s visit to %s", label, key.extentID), regularity, 0)
		if err != nil {
			return nil, err
		}
		practice.Frequency = float64(len(group)) / float64(cfg.TimeWindowDays)
		practice.TypicalTime = label
		ids := make([]string, len(group))
		for i, enc := range group {
			ids[i] = enc.ID()
		}
		practice.EncounterIDs = ids
		practice.AddLineage(provenance.Derived(ids, "detect_routines", nil))
		routines = append(routines, practice)
	}
	return routines, nil
}

// SequencePattern is a repeated same-day movement between two extents.
type SequencePattern struct {
	Name         string
	From, To     string
	EncounterIDs []string
	Regularity   float64 // share of all encounters participating
}

// FindSequencePatterns finds bigram movement patterns: pairs of
// consecutive same-day encounters, repeated at least MinOccurrences
// times. Both encounters may be at the same extent. Patterns come
// back sorted by (from, to).
func FindSequencePatterns(encounters []*graph.Encounter, cfg PracticeConfig) []SequencePattern {
	sorted := make([]*graph.Encounter, len(encounters))
	copy(sorted, encounters)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	type bigram struct{ from, to string }
	instances := make(map[bigram][]string)
	for i := 0; i+1 < len(sorted); i++ {
		first, second := sorted[i], sorted[i+1]
		if first.ExtentID == "" || second.ExtentID == "" {
			continue
		}
		y1, m1, d1 := first.StartTime.Date()
		y2, m2, d2 := second.StartTime.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			continue
		}
		key := bigram{first.ExtentID, second.ExtentID}
		instances[key] = append(instances[key], first.ID(), second.ID())
	}

	keys := make([]bigram, 0, len(instances))
	for key := range instances {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		return keys[i].to < keys[j].to
	})

	var patterns []SequencePattern
	for _, key := range keys {
		ids := instances[key]
		occurrences := len(ids) / 2
		if occurrences < cfg.MinOccurrences {
			continue
		}
		patterns = append(patterns, SequencePattern{
			Name:         fmt.Sprintf("%s -> %s", key.from, key.to),
			From:         key.from,
			To:           key.to,
			EncounterIDs: ids,
			Regularity:   float64(occurrences) / float64(len(sorted)),
		})
	}
	return patterns
}

// timingRegularity scores timing consistency from the standard deviation
// of start times across the day: zero spread scores 1, six hours of
// spread scores 0.
func timingRegularity(encounters []*graph.Encounter) float64 {
	if len(encounters) < 2 {
		return 0
	}
	times := make([]float64, len(encounters))
	var sum float64
	for i, enc := range encounters {
		times[i] = float64(enc.StartTime.Hour()) + float64(enc.StartTime.Minute())/60
		sum += times[i]
	}
	mean := sum / float64(len(times))
	var variance float64
	for _, t := range times {
		variance += (t - mean) * (t - mean)
	}
	variance /= float64(len(times))
	return math.Max(0, 1-math.Sqrt(variance)/6)
}

func hourBucketLabel(bucket int) string {
	switch bucket {
	case 0:
		return "night (0-4)"
	case 1:
		return "early morning (4-8)"
	case 2:
		return "morning (8-12)"
	case 3:
		return "afternoon (12-16)"
	case 4:
		return "evening (16-20)"
	case 5:
		return "night (20-24)"
	}
	return fmt.Sprintf("time bucket %d", bucket)
}
