package derive

import (
	"math"
	"sort"
	"time"

	"github.com/choragraph/chora/graph"
	"github.com/choragraph/chora/logger"
	"github.com/choragraph/chora/provenance"
)

// TracePoint is a single observation in a location trace.
type TracePoint struct {
	Timestamp time.Time
	Longitude float64
	Latitude  float64
	AccuracyM float64
	Metadata  map[string]any
}

// ExtractionConfig tunes encounter extraction from traces.
type ExtractionConfig struct {
	MinDuration    time.Duration // shortest dwell that counts as an encounter
	MaxGap         time.Duration // largest gap still treated as continuous
	ClusterRadiusM float64       // spatial clustering radius
	MinPoints      int           // fewest points a dwell needs
}

// DefaultExtractionConfig returns the standard extraction thresholds.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		MinDuration:    time.Minute,
		MaxGap:         30 * time.Minute,
		ClusterRadiusM: 50,
		MinPoints:      2,
	}
}

// ExtractEncounters derives encounters from a location trace against
// known extents: a dwell inside an extent longer than the minimum
// duration becomes one derived encounter.
func ExtractEncounters(trace []TracePoint, agentID string, extents []*graph.SpatialExtent, cfg ExtractionConfig) ([]*graph.Encounter, error) {
	var encounters []*graph.Encounter
	for _, extent := range extents {
		if !extent.HasGeometry() {
			continue
		}
		var inside []TracePoint
		for _, point := range trace {
			if extent.ContainsPoint(point.Longitude, point.Latitude) {
				inside = append(inside, point)
			}
		}
		if len(inside) < cfg.MinPoints {
			continue
		}
		for _, segment := range segmentByGap(inside, cfg.MaxGap) {
			start := segment[0].Timestamp
			end := segment[len(segment)-1].Timestamp
			if end.Sub(start) < cfg.MinDuration {
				continue
			}
			enc, err := graph.NewEncounter(agentID, extent.ID(), start, &end)
			if err != nil {
				return nil, err
			}
			enc.Epistemic = graph.Derived
			enc.AddLineage(provenance.Derived(nil, "extract_encounters",
				map[string]any{"point_count": len(segment)}))
			encounters = append(encounters, enc)
		}
	}
	logger.Logger.Debugw("encounters extracted",
		"points", len(trace), "extents", len(extents), "encounters", len(encounters))
	return encounters, nil
}

// ExtractEncountersFromTrace derives encounters with no predefined
// extents by clustering the trace into dwell locations; each qualifying
// dwell gets a point extent at the cluster centroid, stored in the
// encounter's metadata under "derived_extent".
func ExtractEncountersFromTrace(trace []TracePoint, agentID string, cfg ExtractionConfig) ([]*graph.Encounter, error) {
	if len(trace) < cfg.MinPoints {
		return nil, nil
	}
	var encounters []*graph.Encounter
	for _, cluster := range clusterPoints(trace, cfg.ClusterRadiusM) {
		if len(cluster) < cfg.MinPoints {
			continue
		}
		sort.Slice(cluster, func(i, j int) bool {
			return cluster[i].Timestamp.Before(cluster[j].Timestamp)
		})
		for _, segment := range segmentByGap(cluster, cfg.MaxGap) {
			start := segment[0].Timestamp
			end := segment[len(segment)-1].Timestamp
			if end.Sub(start) < cfg.MinDuration {
				continue
			}
			var sumLon, sumLat float64
			for _, p := range segment {
				sumLon += p.Longitude
				sumLat += p.Latitude
			}
			n := float64(len(segment))
			extent := graph.PointExtent("derived_location", sumLon/n, sumLat/n)
			extent.Epistemic = graph.Derived

			enc, err := graph.NewEncounter(agentID, extent.ID(), start, &end)
			if err != nil {
				return nil, err
			}
			enc.Epistemic = graph.Derived
			enc.SetMetadata("derived_extent", extent)
			encounters = append(encounters, enc)
		}
	}
	return encounters, nil
}

// MergeNearbyEncounters merges temporally adjacent encounters at the same
// extent when the gap between them is at most maxGap.
func MergeNearbyEncounters(encounters []*graph.Encounter, maxGap time.Duration) ([]*graph.Encounter, error) {
	if len(encounters) == 0 {
		return nil, nil
	}
	sorted := make([]*graph.Encounter, len(encounters))
	copy(sorted, encounters)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ExtentID != sorted[j].ExtentID {
			return sorted[i].ExtentID < sorted[j].ExtentID
		}
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	merged := make([]*graph.Encounter, 0, len(sorted))
	current := sorted[0]
	for _, enc := range sorted[1:] {
		if enc.ExtentID == current.ExtentID &&
			current.EndTime != nil &&
			enc.StartTime.Sub(*current.EndTime) <= maxGap {
			combined, err := graph.NewEncounter(current.AgentID, current.ExtentID, current.StartTime, enc.EndTime)
			if err != nil {
				return nil, err
			}
			combined.Epistemic = current.Epistemic
			current = combined
			continue
		}
		merged = append(merged, current)
		current = enc
	}
	merged = append(merged, current)
	return merged, nil
}

func segmentByGap(points []TracePoint, maxGap time.Duration) [][]TracePoint {
	if len(points) == 0 {
		return nil
	}
	var segments [][]TracePoint
	current := []TracePoint{points[0]}
	for i := 1; i < len(points); i++ {
		if points[i].Timestamp.Sub(points[i-1].Timestamp) <= maxGap {
			current = append(current, points[i])
			continue
		}
		segments = append(segments, current)
		current = []TracePoint{points[i]}
	}
	return append(segments, current)
}

// clusterPoints groups points greedily by distance, with the radius
// converted to degrees by the rough 111km-per-degree rule.
func clusterPoints(points []TracePoint, radiusM float64) [][]TracePoint {
	if len(points) == 0 {
		return nil
	}
	radiusDeg := radiusM / 111000.0

	var clusters [][]TracePoint
	used := make([]bool, len(points))
	for i, point := range points {
		if used[i] {
			continue
		}
		cluster := []TracePoint{point}
		used[i] = true
		for j := i + 1; j < len(points); j++ {
			if used[j] {
				continue
			}
			dLon := point.Longitude - points[j].Longitude
			dLat := point.Latitude - points[j].Latitude
			if math.Sqrt(dLon*dLon+dLat*dLat) <= radiusDeg {
				cluster = append(cluster, points[j])
				used[j] = true
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}
