package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/matchday/fixtures-dashboard/internal/domain/match"
	"github.com/matchday/fixtures-dashboard/internal/infrastructure/repository/memory"
	"github.com/matchday/fixtures-dashboard/internal/platform/logging"
	"github.com/matchday/fixtures-dashboard/internal/usecase"
)

type stubReadiness struct {
	loaded  bool
	loading bool
	err     error
}

func (s stubReadiness) Loaded() bool   { return s.loaded }
func (s stubReadiness) Loading() bool  { return s.loading }
func (s stubReadiness) LoadErr() error { return s.err }

type envelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       json.RawMessage  `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func seededMatches() []match.Match {
	base := time.Date(2026, time.August, 22, 12, 0, 0, 0, time.UTC)
	return []match.Match{
		{
			ID:     1,
			League: match.LeaguePremierLeague,
			Home:   match.Team{ID: 11, Name: "Arsenal"},
			Away:    match.Team{ID: 12, Name: "Chelsea"},
			Kickoff: base.Add(time.Hour),
			Status:  match.StatusUpcoming,
		},
		{
			ID:      2,
			League:  match.LeaguePremierLeague,
			Home:    match.Team{ID: 13, Name: "Liverpool"},
			Away:    match.Team{ID: 11, Name: "Arsenal"},
			Kickoff: base.Add(-4 * time.Hour),
			Status:  match.StatusFinished,
		},
		{
			ID:      3,
			League:  match.LeagueLaLiga,
			Home:    match.Team{ID: 21, Name: "Barcelona"},
			Away:    match.Team{ID: 22, Name: "Sevilla"},
			Kickoff: base.Add(-30 * time.Minute),
			Status:  match.StatusLive,
		},
		{
			ID:      4,
			League:  match.LeagueSerieA,
			Home:    match.Team{ID: 31, Name: "Inter"},
			Away:    match.Team{ID: 32, Name: "Milan"},
			Kickoff: base.Add(2 * time.Hour),
			Status:  match.StatusUpcoming,
		},
	}
}

func newTestRouter(t *testing.T, seed []match.Match, readiness ReadinessReporter) http.Handler {
	t.Helper()

	snapshots := memory.NewSnapshotStore()
	if seed != nil {
		snapshots.Replace(match.Snapshot{
			Matches:  seed,
			LoadedAt: time.Date(2026, time.August, 22, 9, 0, 0, 0, time.UTC),
		})
	}

	views := usecase.NewViewService(snapshots, nil)
	handler := NewHandler(views, readiness, logging.NewNop())
	return NewRouter(handler, logging.NewNop(), nil)
}

func doRequest(t *testing.T, router http.Handler, path string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body envelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return rec.Code, body
}

func TestHandler_ListLeagues(t *testing.T) {
	router := newTestRouter(t, seededMatches(), stubReadiness{loaded: true})

	code, body := doRequest(t, router, "/v1/leagues")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}

	var leagues []leagueDTO
	if err := sonic.Unmarshal(body.Data, &leagues); err != nil {
		t.Fatalf("unmarshal leagues: %v", err)
	}
	if len(leagues) != 4 {
		t.Fatalf("expected 4 leagues, got %d", len(leagues))
	}
	if leagues[0].ID != "premier-league" || leagues[0].Name != "Premier League" {
		t.Fatalf("unexpected first league: %+v", leagues[0])
	}
	if leagues[3].ID != "serie-a" {
		t.Fatalf("unexpected last league: %+v", leagues[3])
	}
}

func TestHandler_ListMatches_FinishedLast(t *testing.T) {
	router := newTestRouter(t, seededMatches(), stubReadiness{loaded: true})

	code, body := doRequest(t, router, "/v1/matches")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}

	var matches []matchDTO
	if err := sonic.Unmarshal(body.Data, &matches); err != nil {
		t.Fatalf("unmarshal matches: %v", err)
	}
	if len(matches) != 4 {
		t.Fatalf("expected 4 matches, got %d", len(matches))
	}
	if matches[len(matches)-1].Status != "FINISHED" {
		t.Fatalf("expected finished match last, got %+v", matches[len(matches)-1])
	}
	if matches[0].Status == "FINISHED" {
		t.Fatalf("finished match must not lead the list")
	}
}

func TestHandler_ListMatches_LeagueFilter(t *testing.T) {
	router := newTestRouter(t, seededMatches(), stubReadiness{loaded: true})

	code, body := doRequest(t, router, "/v1/matches?leagues=la-liga,serie-a")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}

	var matches []matchDTO
	if err := sonic.Unmarshal(body.Data, &matches); err != nil {
		t.Fatalf("unmarshal matches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	for _, item := range matches {
		if item.League == "premier-league" {
			t.Fatalf("premier league match leaked through the filter: %+v", item)
		}
	}
}

func TestHandler_ListMatches_UnknownLeague(t *testing.T) {
	router := newTestRouter(t, seededMatches(), stubReadiness{loaded: true})

	code, body := doRequest(t, router, "/v1/matches?leagues=ligue-1")
	if code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", code)
	}
	if body.Error == nil || body.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT error, got %+v", body.Error)
	}
}

func TestHandler_ListMatches_TeamSpotlight(t *testing.T) {
	router := newTestRouter(t, seededMatches(), stubReadiness{loaded: true})

	code, body := doRequest(t, router, "/v1/matches?team=arsenal")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}

	var matches []matchDTO
	if err := sonic.Unmarshal(body.Data, &matches); err != nil {
		t.Fatalf("unmarshal matches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 arsenal matches, got %d", len(matches))
	}
	for _, item := range matches {
		if item.Home.Name != "Arsenal" && item.Away.Name != "Arsenal" {
			t.Fatalf("non-arsenal match in spotlight: %+v", item)
		}
	}
}

func TestHandler_ListMatches_GroupedByLeague(t *testing.T) {
	router := newTestRouter(t, seededMatches(), stubReadiness{loaded: true})

	code, body := doRequest(t, router, "/v1/matches?group=league")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}

	var groups []leagueGroupDTO
	if err := sonic.Unmarshal(body.Data, &groups); err != nil {
		t.Fatalf("unmarshal groups: %v", err)
	}
	// Bundesliga has no matches and is dropped; the rest follow the
	// canonical order.
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].League != "premier-league" || groups[1].League != "la-liga" || groups[2].League != "serie-a" {
		t.Fatalf("unexpected group order: %+v", groups)
	}
}

func TestHandler_ListMatches_NotReadyBeforeFirstLoad(t *testing.T) {
	router := newTestRouter(t, nil, stubReadiness{loading: true})

	code, body := doRequest(t, router, "/v1/matches")
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", code)
	}
	if body.Error == nil || body.Error.Status != "UNAVAILABLE" {
		t.Fatalf("expected UNAVAILABLE error, got %+v", body.Error)
	}
}

func TestHandler_ListTeams(t *testing.T) {
	router := newTestRouter(t, seededMatches(), stubReadiness{loaded: true})

	code, body := doRequest(t, router, "/v1/teams")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}

	var names []string
	if err := sonic.Unmarshal(body.Data, &names); err != nil {
		t.Fatalf("unmarshal team names: %v", err)
	}
	if len(names) != 7 {
		t.Fatalf("expected 7 distinct team names, got %d: %v", len(names), names)
	}
	if names[0] != "Arsenal" {
		t.Fatalf("expected names sorted, got %v", names)
	}
}

func TestHandler_ListLeagueMatches(t *testing.T) {
	router := newTestRouter(t, seededMatches(), stubReadiness{loaded: true})

	code, body := doRequest(t, router, "/v1/leagues/premier-league/matches?search=arsenal")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}

	var page leaguePageDTO
	if err := sonic.Unmarshal(body.Data, &page); err != nil {
		t.Fatalf("unmarshal league page: %v", err)
	}
	if page.League != "premier-league" {
		t.Fatalf("unexpected league: %q", page.League)
	}
	if page.TotalMatches != 2 || page.Page != 1 || page.TotalPages != 1 {
		t.Fatalf("unexpected pagination meta: %+v", page)
	}
	if len(page.PageRange) != 1 || page.PageRange[0].Page != 1 {
		t.Fatalf("unexpected page range: %+v", page.PageRange)
	}
}

func TestHandler_ListLeagueMatches_StatusFilter(t *testing.T) {
	router := newTestRouter(t, seededMatches(), stubReadiness{loaded: true})

	code, body := doRequest(t, router, "/v1/leagues/premier-league/matches?status=finished")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}

	var page leaguePageDTO
	if err := sonic.Unmarshal(body.Data, &page); err != nil {
		t.Fatalf("unmarshal league page: %v", err)
	}
	if page.TotalMatches != 1 {
		t.Fatalf("expected 1 finished match, got %d", page.TotalMatches)
	}
	if page.Matches[0].Status != "FINISHED" {
		t.Fatalf("unexpected match: %+v", page.Matches[0])
	}
}

func TestHandler_ListLeagueMatches_UnknownLeague(t *testing.T) {
	router := newTestRouter(t, seededMatches(), stubReadiness{loaded: true})

	code, body := doRequest(t, router, "/v1/leagues/ligue-1/matches")
	if code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", code)
	}
	if body.Error == nil || body.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT error, got %+v", body.Error)
	}
}

func TestHandler_ListLeagueMatches_BadPage(t *testing.T) {
	router := newTestRouter(t, seededMatches(), stubReadiness{loaded: true})

	code, _ := doRequest(t, router, "/v1/leagues/premier-league/matches?page=abc")
	if code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", code)
	}
}

func TestHandler_Readyz(t *testing.T) {
	ready := newTestRouter(t, seededMatches(), stubReadiness{loaded: true})
	code, _ := doRequest(t, ready, "/readyz")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}

	loading := newTestRouter(t, nil, stubReadiness{loading: true})
	code, body := doRequest(t, loading, "/readyz")
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 while loading, got %d", code)
	}
	if body.Error == nil || body.Error.Status != "UNAVAILABLE" {
		t.Fatalf("expected UNAVAILABLE error, got %+v", body.Error)
	}
}

func TestHandler_Healthz(t *testing.T) {
	router := newTestRouter(t, nil, stubReadiness{})

	code, _ := doRequest(t, router, "/healthz")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
}
