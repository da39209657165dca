package derive

import (
	"sort"

	"github.com/choragraph/chora/graph"
	"github.com/choragraph/chora/provenance"
)

// LiminalityConfig tunes liminality inference.
type LiminalityConfig struct {
	MinTransitions  int     // crossings needed before an extent reads as liminal
	StrongThreshold float64 // intensity above which liminality is strong
}

// DefaultLiminalityConfig returns the standard inference thresholds.
func DefaultLiminalityConfig() LiminalityConfig {
	return LiminalityConfig{MinTransitions: 3, StrongThreshold: 0.7}
}

// Crossing is a boundary crossing observed between adjacent encounters:
// the extent the agent passed through briefly, and the kinds of space
// either side of it.
type Crossing struct {
	ExtentID string
	FromType string
	ToType   string
}

// transitDwellSeconds is the dwell time under which an encounter at a new
// extent reads as passing through rather than visiting.
const transitDwellSeconds = 300.0

// DetectBoundaryCrossings finds crossings between temporally adjacent
// encounters at different extents. Only brief dwells at the new extent
// count; kinds of space come from the extents' "type" semantic hint.
func DetectBoundaryCrossings(encounters []*graph.Encounter, extents map[string]*graph.SpatialExtent) []Crossing {
	if len(encounters) < 2 {
		return nil
	}
	sorted := make([]*graph.Encounter, len(encounters))
	copy(sorted, encounters)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	var crossings []Crossing
	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if prev.ExtentID == "" || curr.ExtentID == "" || prev.ExtentID == curr.ExtentID {
			continue
		}
		duration, ok := curr.Duration()
		if !ok || duration.Seconds() >= transitDwellSeconds {
			continue
		}
		crossings = append(crossings, Crossing{
			ExtentID: curr.ExtentID,
			FromType: extentKind(prev.ExtentID, extents),
			ToType:   extentKind(curr.ExtentID, extents),
		})
	}
	return crossings
}

// InferLiminality finds extents that repeatedly serve as transition points
// and derives spatial liminality nodes for them. Intensity grows with
// crossing count and saturates at twice the minimum. Zones come back
// sorted by extent id.
func InferLiminality(encounters []*graph.Encounter, extents map[string]*graph.SpatialExtent, cfg LiminalityConfig) ([]*graph.Liminality, error) {
	crossings := DetectBoundaryCrossings(encounters, extents)

	byExtent := make(map[string][]Crossing)
	for _, c := range crossings {
		byExtent[c.ExtentID] = append(byExtent[c.ExtentID], c)
	}

	extentIDs := make([]string, 0, len(byExtent))
	for id := range byExtent {
		extentIDs = append(extentIDs, id)
	}
	sort.Strings(extentIDs)

	var zones []*graph.Liminality
	for _, extentID := range extentIDs {
		transitions := byExtent[extentID]
		if len(transitions) < cfg.MinTransitions {
			continue
		}

		intensity := float64(len(transitions)) / float64(cfg.MinTransitions*2)
		if intensity > 1 {
			intensity = 1
		}

		fromTypes := make([]string, len(transitions))
		toTypes := make([]string, len(transitions))
		for i, t := range transitions {
			fromTypes[i] = t.FromType
			toTypes[i] = t.ToType
		}

		zone, err := graph.NewLiminality(graph.LiminalSpatial, intensity)
		if err != nil {
			return nil, err
		}
		zone.ExtentIDs = []string{extentID}
		zone.TransitionalFrom = mostFrequent(fromTypes)
		zone.TransitionalTo = mostFrequent(toTypes)
		zone.AddLineage(provenance.Derived(nil, "infer_liminality",
			map[string]any{"transition_count": len(transitions)}))
		zones = append(zones, zone)
	}
	return zones, nil
}

// mostFrequent returns the most common value; ties go to the value seen
// first.
func mostFrequent(values []string) string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := "", 0
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

func extentKind(extentID string, extents map[string]*graph.SpatialExtent) string {
	if ext, ok := extents[extentID]; ok {
		return ext.Hint("type", ext.ExtentType)
	}
	return "unknown"
}
