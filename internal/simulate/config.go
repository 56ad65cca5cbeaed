// Package simulate plays random matches against a running scorekeeper and
// checks every reported total and leaderboard against a local tally.
package simulate

import "time"

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL        string        // Base URL of the service
	Matches        int           // Number of matches to play
	EventsPerMatch int           // Scoring events posted to each match
	Workers        int           // Matches played concurrently
	Timeout        time.Duration // HTTP request timeout
	Redeliver      float64       // Fraction of events posted twice with the same event_id
	Seed           uint64        // Seed for team, contributor and point choices
	MaxRetries     int           // Attempts per request answered with 429
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "http://localhost:9080",
		Matches:        20,
		EventsPerMatch: 100,
		Workers:        4,
		Timeout:        10 * time.Second,
		Redeliver:      0.1,
		Seed:           1,
		MaxRetries:     20,
	}
}

// Stats holds run statistics.
type Stats struct {
	MatchesPlayed   int
	EventsAccepted  int
	EventsDuplicate int
	RateLimited     int
	Ties            int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
