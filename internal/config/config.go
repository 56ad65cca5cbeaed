// Package config defines service configuration and its loading.
//
// Values are layered: defaults from New, then an optional YAML file, then
// COURTSIDE_* environment variables.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects "text" or "json" log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MaxActiveMatches bounds matches held in memory; 0 means unbounded.
	MaxActiveMatches int `koanf:"max_active_matches"`

	// DedupeSize bounds remembered scoring event ids; 0 means unbounded.
	DedupeSize int `koanf:"dedupe_size"`

	// RosterFile points to a YAML roster; empty uses the built-in roster.
	RosterFile string `koanf:"roster_file"`

	// ScoreRateLimit is the sustained scoring requests per second across the
	// service; 0 disables limiting.
	ScoreRateLimit float64 `koanf:"score_rate_limit"`

	// ScoreRateBurst is the limiter's bucket size.
	ScoreRateBurst int `koanf:"score_rate_burst"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		MaxActiveMatches: 1_000,
		DedupeSize:       50_000,
		RosterFile:       "",
		ScoreRateLimit:   50,
		ScoreRateBurst:   20,
	}
}
