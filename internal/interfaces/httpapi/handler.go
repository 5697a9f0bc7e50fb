package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/matchday/fixtures-dashboard/internal/domain/match"
	"github.com/matchday/fixtures-dashboard/internal/platform/logging"
	"github.com/matchday/fixtures-dashboard/internal/usecase"
)

// ReadinessReporter exposes the state of the initial schedule load.
type ReadinessReporter interface {
	Loaded() bool
	Loading() bool
	LoadErr() error
}

type Handler struct {
	views     *usecase.ViewService
	readiness ReadinessReporter
	logger    *logging.Logger
}

func NewHandler(views *usecase.ViewService, readiness ReadinessReporter, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		views:     views,
		readiness: readiness,
		logger:    logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports ready only after the initial load committed a
// snapshot. While loading it returns 503 without an error body detail;
// after a failed load it surfaces the aggregate load error.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	if h.readiness.Loaded() {
		writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}

	if err := h.readiness.LoadErr(); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeError(ctx, w, fmt.Errorf("%w: initial fixtures load has not completed", usecase.ErrNotReady))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues := match.Leagues()
	items := make([]leagueDTO, 0, len(leagues))
	for _, league := range leagues {
		items = append(items, leagueDTO{ID: string(league), Name: league.DisplayName()})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// ListMatches serves the global finished-last sorted list. `leagues`
// narrows the selection, `team` switches to the team spotlight, and
// `group=league` returns the same selection grouped per league in
// canonical order.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	if team := strings.TrimSpace(r.URL.Query().Get("team")); team != "" {
		matches, err := h.views.Spotlight(ctx, team)
		if err != nil {
			h.logger.WarnContext(ctx, "team spotlight failed", "team", team, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, matchesToDTOs(matches))
		return
	}

	state, err := stateFromLeaguesParam(r.URL.Query().Get("leagues"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if r.URL.Query().Get("group") == "league" {
		groups, err := h.views.LeagueGroups(ctx, state)
		if err != nil {
			h.logger.WarnContext(ctx, "league groups failed", "error", err)
			writeError(ctx, w, err)
			return
		}

		items := make([]leagueGroupDTO, 0, len(groups))
		for _, group := range groups {
			items = append(items, leagueGroupDTO{
				League:     string(group.League),
				LeagueName: group.League.DisplayName(),
				Matches:    matchesToDTOs(group.Matches),
			})
		}
		writeSuccess(ctx, w, http.StatusOK, items)
		return
	}

	matches, err := h.views.Matches(ctx, state)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTOs(matches))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	names, err := h.views.TeamNames(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, names)
}

// ListLeagueMatches serves one league's refined, paginated view.
func (h *Handler) ListLeagueMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueMatches")
	defer span.End()

	league, ok := match.ParseLeague(r.PathValue("league"))
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown league %q", usecase.ErrInvalidInput, r.PathValue("league")))
		return
	}

	query := r.URL.Query()

	status, ok := usecase.ParseStatusFilter(query.Get("status"))
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown status filter %q", usecase.ErrInvalidInput, query.Get("status")))
		return
	}

	state := usecase.NewViewState().
		WithStatus(league, status).
		WithSearch(league, query.Get("search"))

	// Page applies last: a status or search change resets it to 1.
	if raw := strings.TrimSpace(query.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			writeError(ctx, w, fmt.Errorf("%w: invalid page %q", usecase.ErrInvalidInput, raw))
			return
		}
		state = state.WithPage(league, page)
	}

	page, err := h.views.LeaguePage(ctx, league, state)
	if err != nil {
		h.logger.WarnContext(ctx, "league matches failed", "league", string(league), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaguePageDTO{
		League:       string(league),
		LeagueName:   league.DisplayName(),
		Matches:      matchesToDTOs(page.Matches),
		Page:         page.Page,
		PageSize:     page.PageSize,
		TotalMatches: page.TotalMatches,
		TotalPages:   page.TotalPages,
		PageRange:    pageRangeToDTOs(page.PageRange),
	})
}

func stateFromLeaguesParam(raw string) (usecase.ViewState, error) {
	state := usecase.NewViewState()

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return state, nil
	}

	selected := make([]match.League, 0, 4)
	for _, part := range strings.Split(raw, ",") {
		league, ok := match.ParseLeague(part)
		if !ok {
			return state, fmt.Errorf("%w: unknown league %q", usecase.ErrInvalidInput, strings.TrimSpace(part))
		}
		selected = append(selected, league)
	}

	return state.WithLeagues(selected...), nil
}
