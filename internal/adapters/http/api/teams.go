package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/courtside/internal/domain/types"
	"github.com/okian/courtside/pkg/logger"
)

// TeamDependencies defines the roster operations used by TeamsHandler.
type TeamDependencies interface {
	Teams(ctx context.Context) ([]types.Team, error)
	Team(ctx context.Context, index int) (types.Team, error)
	NextTeam(ctx context.Context, index int) (types.Team, error)
	SearchTeams(ctx context.Context, query string) ([]types.Team, error)
}

// TeamsHandler handles roster requests.
type TeamsHandler struct {
	deps   TeamDependencies
	logger logger.Logger
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies, l logger.Logger) *TeamsHandler {
	return &TeamsHandler{deps: deps, logger: l}
}

// HandleListTeams handles GET /teams. With ?q= it returns fuzzy matches, closest first.
func (h *TeamsHandler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	var (
		teams []types.Team
		err   error
	)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		teams, err = h.deps.SearchTeams(r.Context(), q)
	} else {
		teams, err = h.deps.Teams(r.Context())
	}
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, err, http.StatusNotFound)
		return
	}
	if teams == nil {
		teams = []types.Team{}
	}
	writeJSON(w, http.StatusOK, teams)
}

// HandleGetTeam handles GET /teams/{index}.
func (h *TeamsHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_team"
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	team, err := h.deps.Team(r.Context(), index)
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, Wrap(op, err), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// HandleNextTeam handles GET /teams/{index}/next: the team a selection cycles to.
func (h *TeamsHandler) HandleNextTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.next_team"
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	team, err := h.deps.NextTeam(r.Context(), index)
	if err != nil {
		writeDomainError(r.Context(), w, h.logger, Wrap(op, err), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func pathIndex(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("index"))
}
