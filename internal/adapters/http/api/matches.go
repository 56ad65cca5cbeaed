package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/types"
	"github.com/okian/courtside/pkg/logger"
)

// maxBodyBytes bounds request bodies; every request schema is a few fields.
const maxBodyBytes = 1 << 16

// MatchDependencies defines the match operations used by MatchesHandler.
type MatchDependencies interface {
	StartMatch(ctx context.Context, teamA, teamB *int) (types.Match, error)
	Match(ctx context.Context, id string) (types.Match, error)
	RecordScore(ctx context.Context, e model.ScoringEvent) (types.ScoreResult, error)
	Finalize(ctx context.Context, id string) (types.Outcome, error)
}

// MatchesHandler handles match lifecycle requests.
type MatchesHandler struct {
	deps   MatchDependencies
	logger logger.Logger
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies, l logger.Logger) *MatchesHandler {
	return &MatchesHandler{deps: deps, logger: l}
}

// HandleStartMatch handles POST /matches. An empty body starts a match
// between the default selections.
func (h *MatchesHandler) HandleStartMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.start_match"
	var req startMatchRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	m, err := h.deps.StartMatch(r.Context(), req.TeamA, req.TeamB)
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, Wrap(op, err), http.StatusBadRequest)
		return
	}
	w.Header().Set("Location", "/matches/"+m.ID)
	writeJSON(w, http.StatusCreated, m)
}

// HandleGetMatch handles GET /matches/{id}.
func (h *MatchesHandler) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_match"
	m, err := h.deps.Match(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, Wrap(op, err), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// HandleRecordScore handles POST /matches/{id}/scores.
func (h *MatchesHandler) HandleRecordScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.record_score"
	var req scoreRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeDomainError(r.Context(), w, h.logger, WrapKind(op, ErrBadRequest, err), http.StatusBadRequest)
		return
	}
	res, err := h.deps.RecordScore(r.Context(), req.toEvent(r.PathValue("id")))
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, Wrap(op, err), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleFinalize handles POST /matches/{id}/finalize. The match is discarded.
func (h *MatchesHandler) HandleFinalize(w http.ResponseWriter, r *http.Request) {
	const op = "api.finalize"
	o, err := h.deps.Finalize(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, Wrap(op, err), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// decodeBody decodes a JSON body into v. With allowEmpty an absent body leaves v unchanged.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if allowEmpty && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
