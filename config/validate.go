package config

import (
	"github.com/choragraph/chora/errors"
)

// Validate checks configuration values for consistency. Zero means zero:
// values that could plausibly be intentional zeros are allowed, negative
// values never are.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Newf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}

	if c.Decay.HalfLifeDays <= 0 {
		return errors.Newf("decay.half_life_days must be > 0, got %f", c.Decay.HalfLifeDays)
	}

	if c.Practices.MinOccurrences < 1 {
		return errors.Newf("practices.min_occurrences must be >= 1, got %d", c.Practices.MinOccurrences)
	}
	if c.Practices.TimeWindowDays < 1 {
		return errors.Newf("practices.time_window_days must be >= 1, got %d", c.Practices.TimeWindowDays)
	}
	if c.Practices.MinRegularity < 0 || c.Practices.MinRegularity > 1 {
		return errors.Newf("practices.min_regularity must be in [0, 1], got %f", c.Practices.MinRegularity)
	}

	if c.Liminality.MinTransitions < 1 {
		return errors.Newf("liminality.min_transitions must be >= 1, got %d", c.Liminality.MinTransitions)
	}
	if c.Liminality.StrongThreshold < 0 || c.Liminality.StrongThreshold > 1 {
		return errors.Newf("liminality.strong_threshold must be in [0, 1], got %f", c.Liminality.StrongThreshold)
	}

	if c.Extraction.MinDurationSeconds < 0 {
		return errors.Newf("extraction.min_duration_seconds must be >= 0, got %d", c.Extraction.MinDurationSeconds)
	}
	if c.Extraction.MaxGapMinutes < 1 {
		return errors.Newf("extraction.max_gap_minutes must be >= 1, got %d", c.Extraction.MaxGapMinutes)
	}
	if c.Extraction.ClusterRadiusM <= 0 {
		return errors.Newf("extraction.cluster_radius_m must be > 0, got %f", c.Extraction.ClusterRadiusM)
	}
	if c.Extraction.MinPoints < 1 {
		return errors.Newf("extraction.min_points must be >= 1, got %d", c.Extraction.MinPoints)
	}

	// Rate limit: 0 = unlimited (valid), negative = invalid
	if c.Ingest.RequestsPerSecond < 0 {
		return errors.Newf("ingest.requests_per_second must be >= 0, got %f", c.Ingest.RequestsPerSecond)
	}
	if c.Ingest.Burst < 0 {
		return errors.Newf("ingest.burst must be >= 0, got %d", c.Ingest.Burst)
	}

	return nil
}
