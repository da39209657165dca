// Package config loads and persists chora configuration. Configuration
// is TOML, merged from system, user, and project files with environment
// variables taking highest precedence.
package config

// Config represents the core chora configuration
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database" toml:"database"`
	Server     ServerConfig     `mapstructure:"server" toml:"server"`
	Decay      DecayConfig      `mapstructure:"decay" toml:"decay"`
	Practices  PracticesConfig  `mapstructure:"practices" toml:"practices"`
	Liminality LiminalityConfig `mapstructure:"liminality" toml:"liminality"`
	Extraction ExtractionConfig `mapstructure:"extraction" toml:"extraction"`
	Ingest     IngestConfig     `mapstructure:"ingest" toml:"ingest"`
	Validation ValidationConfig `mapstructure:"validation" toml:"validation"`
}

// DatabaseConfig configures the SQLite graph store
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

// ServerConfig configures the chora web server
type ServerConfig struct {
	Port           int      `mapstructure:"port" toml:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins" toml:"allowed_origins"`
	GraphName      string   `mapstructure:"graph_name" toml:"graph_name"` // graph served by default
}

// Server port constants
const (
	DefaultServerPort = 8750
)

// DecayConfig configures familiarity decay
type DecayConfig struct {
	HalfLifeDays float64 `mapstructure:"half_life_days" toml:"half_life_days"` // familiarity half-life (default: 14)
}

// PracticesConfig configures routine detection
type PracticesConfig struct {
	MinOccurrences int     `mapstructure:"min_occurrences" toml:"min_occurrences"`   // encounters before a routine qualifies (default: 3)
	TimeWindowDays int     `mapstructure:"time_window_days" toml:"time_window_days"` // window for frequency normalisation (default: 30)
	MinRegularity  float64 `mapstructure:"min_regularity" toml:"min_regularity"`     // timing regularity threshold (default: 0.5)
}

// LiminalityConfig configures boundary inference
type LiminalityConfig struct {
	MinTransitions  int     `mapstructure:"min_transitions" toml:"min_transitions"`   // crossings before a zone qualifies (default: 3)
	StrongThreshold float64 `mapstructure:"strong_threshold" toml:"strong_threshold"` // intensity marking a strong threshold (default: 0.7)
}

// ExtractionConfig configures encounter extraction from traces
type ExtractionConfig struct {
	MinDurationSeconds int     `mapstructure:"min_duration_seconds" toml:"min_duration_seconds"` // shortest dwell kept (default: 60)
	MaxGapMinutes      int     `mapstructure:"max_gap_minutes" toml:"max_gap_minutes"`           // gap splitting an encounter (default: 30)
	ClusterRadiusM     float64 `mapstructure:"cluster_radius_m" toml:"cluster_radius_m"`         // trace clustering radius (default: 50)
	MinPoints          int     `mapstructure:"min_points" toml:"min_points"`                     // points per encounter (default: 2)
}

// IngestConfig rate-limits the encounter ingestion endpoint
type IngestConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" toml:"requests_per_second"` // 0 = unlimited
	Burst             int     `mapstructure:"burst" toml:"burst"`
}

// ValidationConfig configures edge schema checking
type ValidationConfig struct {
	Strict bool `mapstructure:"strict" toml:"strict"` // escalate schema warnings to errors
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
