package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "chora.db")

	// Server defaults
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.graph_name", "default")
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost",
		"https://localhost",
		"http://127.0.0.1",
		"https://127.0.0.1",
	})

	// Familiarity decay defaults
	v.SetDefault("decay.half_life_days", 14.0)

	// Practice detection defaults
	v.SetDefault("practices.min_occurrences", 3)
	v.SetDefault("practices.time_window_days", 30)
	v.SetDefault("practices.min_regularity", 0.5)

	// Liminality inference defaults
	v.SetDefault("liminality.min_transitions", 3)
	v.SetDefault("liminality.strong_threshold", 0.7)

	// Encounter extraction defaults
	v.SetDefault("extraction.min_duration_seconds", 60)
	v.SetDefault("extraction.max_gap_minutes", 30)
	v.SetDefault("extraction.cluster_radius_m", 50.0)
	v.SetDefault("extraction.min_points", 2)

	// Ingestion rate limiting defaults
	v.SetDefault("ingest.requests_per_second", 20.0)
	v.SetDefault("ingest.burst", 40)

	// Validation defaults
	v.SetDefault("validation.strict", false)
}

// BindSensitiveEnvVars explicitly binds configuration that commonly varies
// per deployment to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("database.path", "CHORA_DATABASE_PATH")
	v.BindEnv("server.port", "CHORA_SERVER_PORT")
}
