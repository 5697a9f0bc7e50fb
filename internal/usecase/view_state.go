package usecase

import (
	"strings"

	"github.com/matchday/fixtures-dashboard/internal/domain/match"
)

// StatusFilter narrows one league's matches by status.
type StatusFilter string

const (
	StatusFilterAll      StatusFilter = "ALL"
	StatusFilterLive     StatusFilter = "LIVE"
	StatusFilterFinished StatusFilter = "FINISHED"
)

// ParseStatusFilter resolves a filter value; empty means ALL.
func ParseStatusFilter(value string) (StatusFilter, bool) {
	switch StatusFilter(strings.ToUpper(strings.TrimSpace(value))) {
	case "", StatusFilterAll:
		return StatusFilterAll, true
	case StatusFilterLive:
		return StatusFilterLive, true
	case StatusFilterFinished:
		return StatusFilterFinished, true
	default:
		return "", false
	}
}

// LeagueView is one league's refinement: status filter and team-name
// search compose with logical AND, the page indexes the refined list.
type LeagueView struct {
	Status StatusFilter
	Search string
	Page   int
}

func defaultLeagueView() LeagueView {
	return LeagueView{Status: StatusFilterAll, Page: 1}
}

// ViewState is the single immutable filter-state value threaded
// through the view derivation layer. The caller owns it; the service
// never stores one. Mutating constructors return a fresh value and
// reset the affected league's page back to 1, mirroring how any
// upstream filter change invalidates a page position.
type ViewState struct {
	leagues  []match.League
	byLeague map[match.League]LeagueView
}

func NewViewState() ViewState {
	return ViewState{}
}

// Leagues returns the active league selection; empty means all
// leagues.
func (s ViewState) Leagues() []match.League {
	out := make([]match.League, len(s.leagues))
	copy(out, s.leagues)
	return out
}

// League returns the named league's refinement state.
func (s ViewState) League(league match.League) LeagueView {
	if view, ok := s.byLeague[league]; ok {
		return view
	}
	return defaultLeagueView()
}

// WithLeagues replaces the league selection and resets every league's
// page.
func (s ViewState) WithLeagues(leagues ...match.League) ViewState {
	next := s.clone()
	next.leagues = make([]match.League, len(leagues))
	copy(next.leagues, leagues)
	for league, view := range next.byLeague {
		view.Page = 1
		next.byLeague[league] = view
	}
	return next
}

// WithSearch sets one league's search text and resets its page.
func (s ViewState) WithSearch(league match.League, search string) ViewState {
	next := s.clone()
	view := next.League(league)
	view.Search = search
	view.Page = 1
	next.setLeague(league, view)
	return next
}

// WithStatus sets one league's status filter and resets its page.
func (s ViewState) WithStatus(league match.League, filter StatusFilter) ViewState {
	next := s.clone()
	view := next.League(league)
	view.Status = filter
	view.Page = 1
	next.setLeague(league, view)
	return next
}

// WithPage moves one league to the given 1-indexed page.
func (s ViewState) WithPage(league match.League, page int) ViewState {
	if page < 1 {
		page = 1
	}
	next := s.clone()
	view := next.League(league)
	view.Page = page
	next.setLeague(league, view)
	return next
}

func (s ViewState) clone() ViewState {
	next := ViewState{
		leagues:  make([]match.League, len(s.leagues)),
		byLeague: make(map[match.League]LeagueView, len(s.byLeague)),
	}
	copy(next.leagues, s.leagues)
	for league, view := range s.byLeague {
		next.byLeague[league] = view
	}
	return next
}

func (s *ViewState) setLeague(league match.League, view LeagueView) {
	if s.byLeague == nil {
		s.byLeague = make(map[match.League]LeagueView, 1)
	}
	s.byLeague[league] = view
}
