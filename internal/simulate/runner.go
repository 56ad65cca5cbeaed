package simulate

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/courtside/internal/domain/match"
	"github.com/okian/courtside/internal/domain/types"
	"github.com/okian/courtside/pkg/logger"
)

// Validate checks a run configuration.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: base url is empty", ErrInvalidConfig)
	case c.Matches < 1:
		return fmt.Errorf("%w: matches must be at least 1", ErrInvalidConfig)
	case c.EventsPerMatch < 0:
		return fmt.Errorf("%w: events per match must not be negative", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	case c.Redeliver < 0 || c.Redeliver > 1:
		return fmt.Errorf("%w: redeliver must be within [0, 1]", ErrInvalidConfig)
	}
	return nil
}

// Run plays cfg.Matches matches and verifies each against its local tally.
// The first mismatch or transport failure stops the run.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.Named("simulate")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting match simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("matches", cfg.Matches),
		logger.Int("eventsPerMatch", cfg.EventsPerMatch),
		logger.Int("workers", cfg.Workers),
		logger.Any("redeliver", cfg.Redeliver),
	)

	client := NewClient(cfg.BaseURL, cfg.Timeout, cfg.MaxRetries)
	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	teams, err := client.Teams(ctx)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: empty roster", ErrUnexpected)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Matches; i++ {
		g.Go(func() error {
			res, err := playMatch(gctx, client, cfg, teams, i)
			if err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}
			mu.Lock()
			stats.MatchesPlayed++
			stats.EventsAccepted += res.accepted
			stats.EventsDuplicate += res.duplicate
			if res.tie {
				stats.Ties++
			}
			mu.Unlock()
			return nil
		})
	}
	err = g.Wait()

	stats.RateLimited = client.RateLimited()
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	if err != nil {
		log.Error(ctx, "simulation failed", logger.Error(err), logger.Int("matchesPlayed", stats.MatchesPlayed))
		return stats, err
	}

	log.Info(ctx, "simulation completed",
		logger.Int("matchesPlayed", stats.MatchesPlayed),
		logger.Int("eventsAccepted", stats.EventsAccepted),
		logger.Int("eventsDuplicate", stats.EventsDuplicate),
		logger.Int("rateLimited", stats.RateLimited),
		logger.Int("ties", stats.Ties),
		logger.String("duration", stats.Duration.String()),
	)
	return stats, nil
}

type matchResult struct {
	accepted  int
	duplicate int
	tie       bool
}

// playMatch runs one match end to end. Each match draws from its own
// generator so runs with the same seed make the same choices.
func playMatch(ctx context.Context, c *Client, cfg *Config, teams []types.Team, n int) (matchResult, error) {
	var res matchResult
	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(n)))

	a, b := rng.IntN(len(teams)), rng.IntN(len(teams))
	m, err := c.StartMatch(ctx, a, b)
	if err != nil {
		return res, err
	}
	tally := NewTally(teams[a], teams[b])
	if err := tally.Check(m); err != nil {
		return res, err
	}

	for i := 0; i < cfg.EventsPerMatch; i++ {
		side := match.Side(rng.IntN(2))
		team := teams[a]
		if side == match.SideB {
			team = teams[b]
		}
		if len(team.Contributors) == 0 {
			continue
		}
		body := scoreBody{
			EventID:     uuid.NewString(),
			Side:        side.String(),
			Contributor: rng.IntN(len(team.Contributors)),
			Points:      match.TwoPointer + rng.IntN(2),
		}

		deliveries := 1
		if rng.Float64() < cfg.Redeliver {
			deliveries = 2
		}
		for d := 0; d < deliveries; d++ {
			sr, err := c.Score(ctx, m.ID, body)
			if err != nil {
				return res, err
			}
			if sr.Duplicate != (d > 0) {
				return res, fmt.Errorf("%w: event %s delivery %d duplicate=%t", ErrMismatch, body.EventID, d+1, sr.Duplicate)
			}
			if sr.Duplicate {
				res.duplicate++
				continue
			}
			res.accepted++
			tally.Add(side, body.Contributor, body.Points)
		}
	}

	cur, err := c.Match(ctx, m.ID)
	if err != nil {
		return res, err
	}
	if err := tally.Check(cur); err != nil {
		return res, err
	}

	o, err := c.Finalize(ctx, m.ID)
	if err != nil {
		return res, err
	}
	if err := tally.CheckOutcome(o); err != nil {
		return res, err
	}
	res.tie = o.Result == "tie"
	return res, nil
}
