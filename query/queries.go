package query

import (
	"sort"
	"time"

	"github.com/choragraph/chora/derive"
	"github.com/choragraph/chora/graph"
)

// PlaceFilter is a predicate over extracted emergent places.
type PlaceFilter func(*derive.EmergentPlace) bool

// PlatialQuery is a fluent query over emergent places. Build it up with
// the With/For methods, then call Execute:
//
//	places, err := query.New(g).
//		ForAgent(alice.ID()).
//		WithFamiliarity(0.5, 1.0).
//		WithPositiveAffect().
//		Execute()
type PlatialQuery struct {
	graph     *graph.Graph
	agentID   string
	extentIDs []string
	validAt   *time.Time
	filters   []PlaceFilter
}

// New starts a query over g.
func New(g *graph.Graph) *PlatialQuery {
	return &PlatialQuery{graph: g}
}

// ForAgent restricts extraction to one agent's encounters, familiarity,
// and meanings.
func (q *PlatialQuery) ForAgent(agentID string) *PlatialQuery {
	q.agentID = agentID
	return q
}

// AtExtents restricts the query to the given spatial extents.
func (q *PlatialQuery) AtExtents(extentIDs ...string) *PlatialQuery {
	q.extentIDs = append(q.extentIDs, extentIDs...)
	return q
}

// ValidAt keeps only places whose extent is valid at t.
func (q *PlatialQuery) ValidAt(t time.Time) *PlatialQuery {
	at := t
	q.validAt = &at
	return q
}

// WithFamiliarity keeps places whose familiarity score lies in [min, max].
func (q *PlatialQuery) WithFamiliarity(min, max float64) *PlatialQuery {
	return q.AddFilter(func(p *derive.EmergentPlace) bool {
		return p.FamiliarityScore >= min && p.FamiliarityScore <= max
	})
}

// WithPositiveAffect keeps places with mean valence above zero.
func (q *PlatialQuery) WithPositiveAffect() *PlatialQuery {
	return q.AddFilter(func(p *derive.EmergentPlace) bool {
		return p.AffectValenceMean > 0
	})
}

// WithNegativeAffect keeps places with mean valence below zero.
func (q *PlatialQuery) WithNegativeAffect() *PlatialQuery {
	return q.AddFilter(func(p *derive.EmergentPlace) bool {
		return p.AffectValenceMean < 0
	})
}

// WithMinEncounters keeps places with at least n encounters.
func (q *PlatialQuery) WithMinEncounters(n int) *PlatialQuery {
	return q.AddFilter(func(p *derive.EmergentPlace) bool {
		return p.EncounterCount >= n
	})
}

// AddFilter appends an arbitrary predicate.
func (q *PlatialQuery) AddFilter(f PlaceFilter) *PlatialQuery {
	q.filters = append(q.filters, f)
	return q
}

// Execute extracts a place per candidate extent, applies every filter, and
// returns the survivors sorted by familiarity descending, extent id
// ascending on ties.
func (q *PlatialQuery) Execute() ([]*derive.EmergentPlace, error) {
	extentIDs := q.extentIDs
	if len(extentIDs) == 0 {
		for _, node := range q.graph.NodesByType(graph.NodeTypeSpatialExtent) {
			extentIDs = append(extentIDs, node.ID())
		}
	}

	var places []*derive.EmergentPlace
	for _, extentID := range extentIDs {
		node, err := q.graph.Node(extentID)
		if err != nil {
			continue
		}
		if q.validAt != nil && !node.ValidAt(*q.validAt) {
			continue
		}

		place, err := derive.ExtractPlace(q.graph, extentID, q.agentID)
		if err != nil {
			return nil, err
		}
		if place.EncounterCount == 0 && place.MeaningCount == 0 {
			continue
		}
		if q.accepts(place) {
			places = append(places, place)
		}
	}

	sort.Slice(places, func(i, j int) bool {
		if places[i].FamiliarityScore != places[j].FamiliarityScore {
			return places[i].FamiliarityScore > places[j].FamiliarityScore
		}
		return places[i].ExtentID < places[j].ExtentID
	})
	return places, nil
}

func (q *PlatialQuery) accepts(p *derive.EmergentPlace) bool {
	for _, f := range q.filters {
		if !f(p) {
			return false
		}
	}
	return true
}

// FindFamiliarPlaces returns the agent's places with familiarity at or
// above minFamiliarity.
func FindFamiliarPlaces(g *graph.Graph, agentID string, minFamiliarity float64) ([]*derive.EmergentPlace, error) {
	return New(g).ForAgent(agentID).WithFamiliarity(minFamiliarity, 1.0).Execute()
}

// FindPositivePlaces returns the agent's places with positive mean valence.
func FindPositivePlaces(g *graph.Graph, agentID string) ([]*derive.EmergentPlace, error) {
	return New(g).ForAgent(agentID).WithPositiveAffect().Execute()
}

// FindRoutinePlaces returns places the agent visits often enough to carry
// a routine, at least minEncounters encounters.
func FindRoutinePlaces(g *graph.Graph, agentID string, minEncounters int) ([]*derive.EmergentPlace, error) {
	return New(g).ForAgent(agentID).WithMinEncounters(minEncounters).Execute()
}

// EncounterFilter narrows QueryEncounters. Zero values leave the
// corresponding dimension unconstrained.
type EncounterFilter struct {
	AgentID  string
	ExtentID string
	Start    *time.Time // keep encounters starting at or after
	End      *time.Time // keep encounters starting at or before
}

// QueryEncounters returns encounters matching the filter, sorted by start
// time then id.
func QueryEncounters(g *graph.Graph, filter EncounterFilter) []*graph.Encounter {
	var encounters []*graph.Encounter
	for _, node := range g.NodesByType(graph.NodeTypeEncounter) {
		enc, ok := node.(*graph.Encounter)
		if !ok {
			continue
		}
		if filter.AgentID != "" && enc.AgentID != filter.AgentID {
			continue
		}
		if filter.ExtentID != "" && enc.ExtentID != filter.ExtentID {
			continue
		}
		if filter.Start != nil && enc.StartTime.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && enc.StartTime.After(*filter.End) {
			continue
		}
		encounters = append(encounters, enc)
	}

	sort.Slice(encounters, func(i, j int) bool {
		if !encounters[i].StartTime.Equal(encounters[j].StartTime) {
			return encounters[i].StartTime.Before(encounters[j].StartTime)
		}
		return encounters[i].ID() < encounters[j].ID()
	})
	return encounters
}
