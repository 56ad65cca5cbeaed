// Package service composes the roster, the active match store and the
// outcome resolver behind the operations the HTTP API needs.
package service

import (
	"context"
	"errors"
	"sync"

	repository "github.com/okian/courtside/internal/adapters/repository"
	"github.com/okian/courtside/internal/domain/dedupe"
	"github.com/okian/courtside/internal/domain/match"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/outcome"
	"github.com/okian/courtside/internal/domain/roster"
	"github.com/okian/courtside/internal/domain/types"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// Service implements the API dependencies for the scorekeeper.
type Service struct {
	mu sync.RWMutex

	// Core components
	roster  *roster.Roster
	matches repository.Store
	deduper dedupe.Deduper

	// Configuration
	rosterFile       string
	maxActiveMatches int
	dedupeSize       int

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRoster uses r instead of loading one on Start.
func WithRoster(r *roster.Roster) Option {
	return func(s *Service) {
		s.roster = r
	}
}

// WithRosterFile loads the roster from a YAML file on Start.
func WithRosterFile(path string) Option {
	return func(s *Service) {
		s.rosterFile = path
	}
}

// WithMaxActiveMatches bounds the matches held in memory. 0 means unbounded.
func WithMaxActiveMatches(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxActiveMatches = n
		}
	}
}

// WithDedupeSize bounds the remembered scoring event ids. 0 means unbounded.
func WithDedupeSize(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.dedupeSize = n
		}
	}
}

// WithStore replaces the in-memory match store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.matches = store
	}
}

// New constructs a Service. Call Start before use.
func New(opts ...Option) *Service {
	s := &Service{
		maxActiveMatches: 1_000,
		dedupeSize:       50_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the roster and creates the stores.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}

	if s.roster == nil {
		r, err := roster.Load(s.rosterFile)
		if err != nil {
			s.logger.Error(ctx, "failed to load roster", logger.String("roster_file", s.rosterFile), logger.Error(err))
			return err
		}
		s.roster = r
	}
	if s.matches == nil {
		s.matches = repository.NewMemoryStore(repository.WithMaxMatches(s.maxActiveMatches))
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))

	s.started = true
	s.logger.Info(ctx, "scorekeeper started",
		logger.Int("teams", s.roster.TeamCount()),
		logger.Int("maxActiveMatches", s.maxActiveMatches),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop marks the service stopped. Active matches are discarded with the process.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "scorekeeper stopped")
}

// components returns the live components or ErrNotStarted.
func (s *Service) components() (*roster.Roster, repository.Store, dedupe.Deduper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, nil, ErrNotStarted
	}
	return s.roster, s.matches, s.deduper, nil
}

// Teams lists the roster in selection order.
func (s *Service) Teams(_ context.Context) ([]types.Team, error) {
	r, _, _, err := s.components()
	if err != nil {
		return nil, err
	}
	teams := r.Teams()
	out := make([]types.Team, len(teams))
	for i, t := range teams {
		out[i] = types.FromTeam(i, t)
	}
	return out, nil
}

// Team returns the team at index.
func (s *Service) Team(_ context.Context, index int) (types.Team, error) {
	r, _, _, err := s.components()
	if err != nil {
		return types.Team{}, err
	}
	t, err := r.TeamAt(index)
	if err != nil {
		return types.Team{}, err
	}
	return types.FromTeam(index, t), nil
}

// NextTeam returns the team a selection at index cycles to.
func (s *Service) NextTeam(ctx context.Context, index int) (types.Team, error) {
	r, _, _, err := s.components()
	if err != nil {
		return types.Team{}, err
	}
	sel, err := r.Select(index)
	if err != nil {
		return types.Team{}, err
	}
	return s.Team(ctx, sel.Next().Index())
}

// SearchTeams returns teams whose name fuzzily matches query, closest first.
func (s *Service) SearchTeams(_ context.Context, query string) ([]types.Team, error) {
	r, _, _, err := s.components()
	if err != nil {
		return nil, err
	}
	found := r.Find(query)
	out := make([]types.Team, len(found))
	for i, f := range found {
		out[i] = types.FromTeam(f.Index, f.Team)
	}
	return out, nil
}

// StartMatch creates a match between the selected teams. A nil index takes
// the default selection for that side.
func (s *Service) StartMatch(ctx context.Context, teamA, teamB *int) (types.Match, error) {
	r, store, _, err := s.components()
	if err != nil {
		return types.Match{}, err
	}
	defA, defB := r.DefaultSelections()
	a, b := defA.Index(), defB.Index()
	if teamA != nil {
		a = *teamA
	}
	if teamB != nil {
		b = *teamB
	}

	m, err := match.New(r, a, b)
	if err != nil {
		s.logger.Warn(ctx, "rejected match selection", logger.Int("teamA", a), logger.Int("teamB", b), logger.Error(err))
		return types.Match{}, err
	}
	id, err := store.Create(ctx, m)
	if err != nil {
		s.logger.Warn(ctx, "failed to register match", logger.Error(err))
		return types.Match{}, err
	}

	metrics.RecordMatchStarted()
	s.logger.Info(ctx, "match started",
		logger.String("matchID", id),
		logger.Int("teamA", a),
		logger.Int("teamB", b),
		logger.Bool("selfPlay", a == b),
	)
	sa, sb := m.Snapshot()
	return types.FromMatch(id, sa, sb), nil
}

// Match returns the current state of an active match.
func (s *Service) Match(ctx context.Context, id string) (types.Match, error) {
	_, store, _, err := s.components()
	if err != nil {
		return types.Match{}, err
	}
	m, err := store.Get(ctx, id)
	if err != nil {
		return types.Match{}, err
	}
	a, b := m.Snapshot()
	return types.FromMatch(id, a, b), nil
}

// RecordScore applies e to its match. An event whose id was already applied
// to the same match is acknowledged as a duplicate without changing scores.
func (s *Service) RecordScore(ctx context.Context, e model.ScoringEvent) (types.ScoreResult, error) { //nolint:gocritic // hugeParam: value semantics
	_, store, deduper, err := s.components()
	if err != nil {
		return types.ScoreResult{}, err
	}
	m, err := store.Get(ctx, e.MatchID)
	if err != nil {
		metrics.RecordScoringRejected(rejectionReason(err))
		return types.ScoreResult{}, err
	}

	key := e.DedupeKey()
	if key != "" && deduper.SeenAndRecord(ctx, key) {
		metrics.RecordEventDuplicate()
		s.logger.Debug(ctx, "duplicate scoring event", logger.String("matchID", e.MatchID), logger.String("eventID", e.EventID))
		a, b := m.Snapshot()
		return types.ScoreResult{Status: "duplicate", Duplicate: true, Match: types.FromMatch(e.MatchID, a, b)}, nil
	}

	if err := m.RecordScore(e.Side, e.Contributor, e.Points); err != nil {
		if key != "" {
			deduper.Unrecord(ctx, key)
		}
		metrics.RecordScoringRejected(rejectionReason(err))
		s.logger.Warn(ctx, "rejected scoring event",
			logger.String("matchID", e.MatchID),
			logger.String("side", e.Side.String()),
			logger.Int("contributor", e.Contributor),
			logger.Int("points", e.Points),
			logger.Error(err),
		)
		return types.ScoreResult{}, err
	}

	team, _ := m.Team(e.Side)
	metrics.RecordScoringEvent(e.Side.String(), team.Name, e.Points)
	s.logger.Debug(ctx, "scoring event applied",
		logger.String("matchID", e.MatchID),
		logger.String("side", e.Side.String()),
		logger.Int("contributor", e.Contributor),
		logger.Int("points", e.Points),
	)
	a, b := m.Snapshot()
	return types.ScoreResult{Status: "accepted", Match: types.FromMatch(e.MatchID, a, b)}, nil
}

// Finalize resolves the match and discards it.
func (s *Service) Finalize(ctx context.Context, id string) (types.Outcome, error) {
	_, store, _, err := s.components()
	if err != nil {
		return types.Outcome{}, err
	}
	m, err := store.Remove(ctx, id)
	if err != nil {
		return types.Outcome{}, err
	}
	a, b := m.Snapshot()
	o := outcome.Resolve(a, b)

	metrics.RecordMatchFinalized(o.Result.String())
	s.logger.Info(ctx, "match finalized",
		logger.String("matchID", id),
		logger.String("result", o.Result.String()),
		logger.Int("scoreA", a.TotalScore),
		logger.Int("scoreB", b.TotalScore),
	)
	return types.FromOutcome(id, o, [2]string{a.Team.Name, b.Team.Name}), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":          s.started,
		"maxActiveMatches": s.maxActiveMatches,
		"dedupeSize":       s.dedupeSize,
	}
	if s.started {
		ctx := context.Background()
		active := s.matches.Count(ctx)
		stats["activeMatches"] = active
		stats["teams"] = s.roster.TeamCount()
		stats["rememberedEvents"] = s.deduper.Size()
		metrics.UpdateActiveMatches(active)
	}
	return stats
}

// rejectionReason labels a scoring error for metrics.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, match.ErrInvalidScoreValue):
		return "invalid_score_value"
	case errors.Is(err, match.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, match.ErrInvalidSide):
		return "invalid_side"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	default:
		return "other"
	}
}
