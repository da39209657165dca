package derive

import (
	"fmt"
	"sort"

	"github.com/choragraph/chora/graph"
)

// EmergentPlace is a place computed as a view over the platial graph.
// Place is never stored as a node: it is assembled on demand from the
// encounters, familiarities, affects, and meanings around one extent.
type EmergentPlace struct {
	ExtentID          string
	Extent            *graph.SpatialExtent // nil when the extent node is absent
	Subgraph          *graph.Graph
	FamiliarityScore  float64
	MeaningCount      int
	AffectValenceMean float64
	EncounterCount    int
}

// IsSignificant reports whether the place has accumulated enough
// experience to matter.
func (p *EmergentPlace) IsSignificant() bool {
	return p.FamiliarityScore >= 0.5 || p.MeaningCount > 0 || p.EncounterCount >= 5
}

// Character summarises the felt quality of the place from its mean
// valence and familiarity.
func (p *EmergentPlace) Character() string {
	affect := "neutral"
	if p.AffectValenceMean > 0.3 {
		affect = "positive"
	} else if p.AffectValenceMean < -0.3 {
		affect = "negative"
	}

	familiarity := "novel"
	if p.FamiliarityScore > 0.7 {
		familiarity = "very familiar"
	} else if p.FamiliarityScore > 0.3 {
		familiarity = "familiar"
	}
	return fmt.Sprintf("%s, %s", affect, familiarity)
}

// ExtractPlace assembles the emergent place centred on extentID,
// optionally restricted to one agent's experience. Familiarity scores
// are the decayed values as of now.
func ExtractPlace(g *graph.Graph, extentID, agentID string) (*EmergentPlace, error) {
	sub := graph.New("place: " + extentID)

	var extent *graph.SpatialExtent
	if node, err := g.Node(extentID); err == nil {
		if ext, ok := node.(*graph.SpatialExtent); ok {
			extent = ext
			if err := sub.AddNode(ext); err != nil {
				return nil, err
			}
		}
	}

	// encounters that occurred at this extent
	encounterIDs := make(map[string]struct{})
	for _, edge := range g.EdgesByType(graph.EdgeOccursAt) {
		if edge.TargetID != extentID {
			continue
		}
		node, err := g.Node(edge.SourceID)
		if err != nil {
			continue
		}
		if enc, ok := node.(*graph.Encounter); ok && agentID != "" && enc.AgentID != agentID {
			continue
		}
		if err := sub.AddNode(node); err != nil {
			return nil, err
		}
		encounterIDs[edge.SourceID] = struct{}{}
	}

	// familiarity for this extent, agent-filtered when asked
	var familiarities []float64
	now := timeNow()
	for _, node := range g.NodesByType(graph.NodeTypeFamiliarity) {
		fam, ok := node.(*graph.Familiarity)
		if !ok || fam.ExtentID != extentID {
			continue
		}
		if agentID != "" && fam.AgentID != agentID {
			continue
		}
		current, err := fam.ValueAt(now)
		if err != nil {
			return nil, err
		}
		familiarities = append(familiarities, current)
		if err := sub.AddNode(fam); err != nil {
			return nil, err
		}
	}

	// affects expressed by the gathered encounters
	var valences []float64
	for _, edge := range g.EdgesByType(graph.EdgeExpresses) {
		if _, ok := encounterIDs[edge.SourceID]; !ok {
			continue
		}
		node, err := g.Node(edge.TargetID)
		if err != nil {
			continue
		}
		affect, ok := node.(*graph.Affect)
		if !ok {
			continue
		}
		valences = append(valences, affect.Valence())
		if err := sub.AddNode(affect); err != nil {
			return nil, err
		}
	}

	// meanings attached to the extent; shared meanings always count
	meaningCount := 0
	for _, node := range g.NodesByType(graph.NodeTypeMeaning) {
		meaning, ok := node.(*graph.Meaning)
		if !ok || meaning.ExtentID != extentID {
			continue
		}
		if agentID != "" && meaning.AgentID != agentID && !meaning.IsShared() {
			continue
		}
		meaningCount++
		if err := sub.AddNode(meaning); err != nil {
			return nil, err
		}
	}

	return &EmergentPlace{
		ExtentID:          extentID,
		Extent:            extent,
		Subgraph:          sub,
		FamiliarityScore:  mean(familiarities),
		MeaningCount:      meaningCount,
		AffectValenceMean: mean(valences),
		EncounterCount:    len(encounterIDs),
	}, nil
}

// FindEmergentPlaces extracts every place with at least minEncounters
// encounters, most significant first. Ties break on extent id so that
// output order is stable.
func FindEmergentPlaces(g *graph.Graph, agentID string, minEncounters int) ([]*EmergentPlace, error) {
	var places []*EmergentPlace
	for _, node := range g.NodesByType(graph.NodeTypeSpatialExtent) {
		place, err := ExtractPlace(g, node.ID(), agentID)
		if err != nil {
			return nil, err
		}
		if place.EncounterCount >= minEncounters {
			places = append(places, place)
		}
	}
	sort.Slice(places, func(i, j int) bool {
		si := places[i].FamiliarityScore + float64(places[i].EncounterCount)/10
		sj := places[j].FamiliarityScore + float64(places[j].EncounterCount)/10
		if si != sj {
			return si > sj
		}
		return places[i].ExtentID < places[j].ExtentID
	})
	return places, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
