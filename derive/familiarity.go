// Package derive implements the derivation operators that turn observed
// encounters into derived platial structure: familiarity, practices,
// liminality, affect, meaning, and emergent place. Every operator records
// lineage on what it produces.
package derive

import (
	"sort"
	"time"

	"github.com/choragraph/chora/graph"
	"github.com/choragraph/chora/logger"
	"github.com/choragraph/chora/provenance"
)

// UpdateFamiliarity folds an encounter into the familiarity state for its
// agent-extent pair, creating the familiarity node in the graph when the
// pair has none yet. Encounters without an end time count as one hour.
func UpdateFamiliarity(g *graph.Graph, enc *graph.Encounter) (*graph.Familiarity, error) {
	fam := findFamiliarity(g, enc.AgentID, enc.ExtentID)
	created := false
	if fam == nil {
		fam = graph.NewFamiliarity(enc.AgentID, enc.ExtentID)
		if err := g.AddNode(fam); err != nil {
			return nil, err
		}
		created = true
	}

	durationHours, ok := enc.DurationHours()
	if !ok {
		durationHours = 1.0
	}
	if _, err := fam.Reinforce(durationHours, enc.EffectiveTime()); err != nil {
		if created {
			_, _ = g.RemoveNode(fam.ID())
		}
		return nil, err
	}

	fam.AddLineage(provenance.Derived(
		[]string{enc.ID()},
		"update_familiarity",
		map[string]any{"duration_hours": durationHours},
	))

	logger.Logger.Debugw("familiarity updated",
		"agent", enc.AgentID,
		"extent", enc.ExtentID,
		"value", fam.Value,
		"encounters", fam.EncounterCount)
	return fam, nil
}

// TrajectoryPoint is one step in a familiarity time series.
type TrajectoryPoint struct {
	At    time.Time
	Value float64
}

// FamiliarityTrajectory replays the encounters for an agent-extent pair in
// temporal order and reports the familiarity value after each one.
func FamiliarityTrajectory(encounters []*graph.Encounter, agentID, extentID string, decayHalfLifeDays float64) ([]TrajectoryPoint, error) {
	var relevant []*graph.Encounter
	for _, enc := range encounters {
		if enc.AgentID == agentID && enc.ExtentID == extentID {
			relevant = append(relevant, enc)
		}
	}
	if len(relevant) == 0 {
		return nil, nil
	}
	sort.Slice(relevant, func(i, j int) bool {
		return relevant[i].StartTime.Before(relevant[j].StartTime)
	})

	fam := graph.NewFamiliarity(agentID, extentID)
	fam.DecayHalfLifeDays = decayHalfLifeDays

	trajectory := make([]TrajectoryPoint, 0, len(relevant))
	for _, enc := range relevant {
		durationHours, ok := enc.DurationHours()
		if !ok {
			durationHours = 1.0
		}
		value, err := fam.Reinforce(durationHours, enc.EffectiveTime())
		if err != nil {
			return nil, err
		}
		trajectory = append(trajectory, TrajectoryPoint{At: enc.EffectiveTime(), Value: value})
	}
	return trajectory, nil
}

// DecayAllFamiliarities advances every familiarity node in the graph to
// its decayed value at to, returning how many were updated.
func DecayAllFamiliarities(g *graph.Graph, to time.Time) (int, error) {
	count := 0
	for _, n := range g.NodesByType(graph.NodeTypeFamiliarity) {
		fam, ok := n.(*graph.Familiarity)
		if !ok {
			continue
		}
		if _, err := fam.ApplyDecay(to); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func findFamiliarity(g *graph.Graph, agentID, extentID string) *graph.Familiarity {
	for _, n := range g.NodesByType(graph.NodeTypeFamiliarity) {
		fam, ok := n.(*graph.Familiarity)
		if !ok {
			continue
		}
		if fam.AgentID == agentID && fam.ExtentID == extentID {
			return fam
		}
	}
	return nil
}
