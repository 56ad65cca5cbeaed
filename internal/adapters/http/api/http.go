// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/courtside/internal/adapters/repository"
	"github.com/okian/courtside/internal/domain/match"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/roster"
	"github.com/okian/courtside/pkg/logger"
	"golang.org/x/time/rate"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	TeamDependencies
	MatchDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	teamsHandler   *TeamsHandler
	matchesHandler *MatchesHandler

	scoreLimiter *rate.Limiter
	logger       logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	s.teamsHandler = NewTeamsHandler(deps, s.logger)
	s.matchesHandler = NewMatchesHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /teams", MetricsMiddleware(s.teamsHandler.HandleListTeams, "teams"))
	mux.HandleFunc("GET /teams/{index}", MetricsMiddleware(s.teamsHandler.HandleGetTeam, "team"))
	mux.HandleFunc("GET /teams/{index}/next", MetricsMiddleware(s.teamsHandler.HandleNextTeam, "team_next"))

	mux.HandleFunc("POST /matches", MetricsMiddleware(s.matchesHandler.HandleStartMatch, "matches"))
	mux.HandleFunc("GET /matches/{id}", MetricsMiddleware(s.matchesHandler.HandleGetMatch, "match"))
	mux.HandleFunc("POST /matches/{id}/scores", MetricsMiddleware(
		RateLimitMiddleware(s.matchesHandler.HandleRecordScore, "scores", s.scoreLimiter), "scores"))
	mux.HandleFunc("POST /matches/{id}/finalize", MetricsMiddleware(s.matchesHandler.HandleFinalize, "finalize"))
}

// startMatchRequest mirrors the OpenAPI schema for POST /matches.
// A missing index takes the default selection for that side.
type startMatchRequest struct {
	TeamA *int `json:"team_a"`
	TeamB *int `json:"team_b"`
}

// scoreRequest mirrors the OpenAPI schema for POST /matches/{id}/scores.
type scoreRequest struct {
	EventID     string `json:"event_id"`
	Side        string `json:"side"`
	Contributor *int   `json:"contributor"`
	Points      int    `json:"points"`
}

func (s scoreRequest) validate() error {
	if s.Contributor == nil {
		return errors.New("missing contributor")
	}
	if _, err := match.ParseSide(s.Side); err != nil {
		return err
	}
	return nil
}

// toEvent converts a validated request. Point values are checked by the match.
func (s scoreRequest) toEvent(matchID string) model.ScoringEvent {
	side, _ := match.ParseSide(s.Side)
	return model.ScoringEvent{
		EventID:     s.EventID,
		MatchID:     matchID,
		Side:        side,
		Contributor: *s.Contributor,
		Points:      s.Points,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// errorStatus maps err to a status and error code. outOfRange is the status
// used for roster.ErrOutOfRange, which differs between path and body input.
func errorStatus(err error, outOfRange int) (int, string) {
	switch {
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, match.ErrInvalidSide):
		return http.StatusBadRequest, "invalid_side"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, match.ErrInvalidScoreValue):
		return http.StatusBadRequest, "invalid_score_value"
	case errors.Is(err, roster.ErrOutOfRange):
		return outOfRange, "out_of_range"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrCapacity):
		return http.StatusServiceUnavailable, "capacity"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeDomainError answers with the status errorStatus picks and logs server errors.
func writeDomainError(ctx context.Context, w http.ResponseWriter, l logger.Logger, err error, outOfRange int) {
	status, code := errorStatus(err, outOfRange)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		l.Error(ctx, "request failed", logger.Error(err))
	}
	writeError(w, status, code, err)
}
