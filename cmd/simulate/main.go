package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/okian/courtside/internal/simulate"
	"github.com/okian/courtside/pkg/logger"
)

// defaultRunTimeout bounds a whole simulation run.
const defaultRunTimeout = 10 * time.Minute

func main() {
	_ = godotenv.Load()

	defaults := simulate.DefaultConfig()
	baseURL := defaults.BaseURL
	if v := os.Getenv("COURTSIDE_SIMULATE_URL"); v != "" {
		baseURL = v
	}

	var (
		url        = flag.String("url", baseURL, "Base URL of the service")
		matches    = flag.Int("matches", defaults.Matches, "Number of matches to play")
		events     = flag.Int("events", defaults.EventsPerMatch, "Scoring events per match")
		workers    = flag.Int("workers", defaults.Workers, "Matches played concurrently")
		redeliver  = flag.Float64("redeliver", defaults.Redeliver, "Fraction of events sent twice with the same event_id")
		seed       = flag.Uint64("seed", defaults.Seed, "Seed for random choices")
		timeout    = flag.Duration("timeout", defaults.Timeout, "HTTP request timeout")
		maxRetries = flag.Int("retries", defaults.MaxRetries, "Retries per rate-limited request")
		format     = flag.String("log-format", logger.FormatText, "Log output: text or json")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	if err := logger.Init(logger.WithFormat(*format)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(2)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	cfg := &simulate.Config{
		BaseURL:        *url,
		Matches:        *matches,
		EventsPerMatch: *events,
		Workers:        *workers,
		Timeout:        *timeout,
		Redeliver:      *redeliver,
		Seed:           *seed,
		MaxRetries:     *maxRetries,
	}
	if _, err := simulate.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
