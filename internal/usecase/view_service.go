package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/matchday/fixtures-dashboard/internal/domain/match"
	"github.com/matchday/fixtures-dashboard/internal/platform/cache"
)

const (
	// PageSize is the fixed per-league page length.
	PageSize = 6
	// SpotlightSize caps how many of a team's matches the spotlight
	// view returns.
	SpotlightSize = 4
	// visiblePageLimit is the page count above which the page range
	// collapses with gap markers.
	visiblePageLimit = 7
)

// ViewService derives read-only projections of the current snapshot.
// Every operation is a pure function of (snapshot, caller-supplied
// view state); the service holds no filter state of its own.
type ViewService struct {
	snapshots match.SnapshotRepository
	teamNames *cache.Store
}

func NewViewService(snapshots match.SnapshotRepository, teamNames *cache.Store) *ViewService {
	return &ViewService{
		snapshots: snapshots,
		teamNames: teamNames,
	}
}

// LeagueGroup is one league's slice of the filtered global list.
type LeagueGroup struct {
	League  match.League
	Matches []match.Match
}

// PageMark is one entry of a collapsed page range: either a page
// number or a gap marker.
type PageMark struct {
	Page int
	Gap  bool
}

// LeaguePage is a refined, paginated slice of one league's matches.
type LeaguePage struct {
	League       match.League
	Matches      []match.Match
	Page         int
	PageSize     int
	TotalMatches int
	TotalPages   int
	PageRange    []PageMark
}

// Matches returns the league-filtered global list in finished-last
// kickoff order.
func (s *ViewService) Matches(_ context.Context, state ViewState) ([]match.Match, error) {
	snapshot, ok := s.snapshots.Current()
	if !ok {
		return nil, ErrNotReady
	}

	return SortFinishedLast(FilterByLeagues(snapshot.Matches, state.Leagues())), nil
}

// TeamNames returns every distinct team name across the full
// collection in lexicographic order. The result is cached per load
// cycle: names cannot change between refresh ticks.
func (s *ViewService) TeamNames(ctx context.Context) ([]string, error) {
	snapshot, ok := s.snapshots.Current()
	if !ok {
		return nil, ErrNotReady
	}

	derive := func(context.Context) (any, error) {
		return DistinctTeamNames(snapshot.Matches), nil
	}

	if s.teamNames == nil {
		value, _ := derive(ctx)
		return value.([]string), nil
	}

	key := "team-names:" + strconv.FormatInt(snapshot.LoadedAt.UnixNano(), 10)
	value, err := s.teamNames.GetOrLoad(ctx, key, derive)
	if err != nil {
		return nil, err
	}

	names, ok := value.([]string)
	if !ok {
		return nil, fmt.Errorf("unexpected cached value %T", value)
	}
	return names, nil
}

// Spotlight returns the chosen team's matches across every league,
// finished-last order, truncated to SpotlightSize.
func (s *ViewService) Spotlight(_ context.Context, teamName string) ([]match.Match, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	snapshot, ok := s.snapshots.Current()
	if !ok {
		return nil, ErrNotReady
	}

	involved := make([]match.Match, 0, SpotlightSize)
	for _, item := range snapshot.Matches {
		if item.Involves(teamName) {
			involved = append(involved, item)
		}
	}

	sorted := SortFinishedLast(involved)
	if len(sorted) > SpotlightSize {
		sorted = sorted[:SpotlightSize]
	}
	return sorted, nil
}

// LeagueGroups partitions the league-filtered list by league in
// canonical order, dropping leagues with no matches.
func (s *ViewService) LeagueGroups(ctx context.Context, state ViewState) ([]LeagueGroup, error) {
	items, err := s.Matches(ctx, state)
	if err != nil {
		return nil, err
	}

	byLeague := make(map[match.League][]match.Match, len(match.Leagues()))
	for _, item := range items {
		byLeague[item.League] = append(byLeague[item.League], item)
	}

	groups := make([]LeagueGroup, 0, len(byLeague))
	for _, league := range match.Leagues() {
		if matches := byLeague[league]; len(matches) > 0 {
			groups = append(groups, LeagueGroup{League: league, Matches: matches})
		}
	}
	return groups, nil
}

// LeaguePage applies one league's refinement (status filter AND
// team-name search) and paginates the result.
func (s *ViewService) LeaguePage(_ context.Context, league match.League, state ViewState) (LeaguePage, error) {
	if !league.Valid() {
		return LeaguePage{}, fmt.Errorf("%w: unknown league %q", ErrInvalidInput, league)
	}

	snapshot, ok := s.snapshots.Current()
	if !ok {
		return LeaguePage{}, ErrNotReady
	}

	view := state.League(league)
	items := SortFinishedLast(FilterByLeagues(snapshot.Matches, []match.League{league}))
	refined := Refine(items, view)

	page := paginate(refined, view.Page)
	page.League = league
	return page, nil
}

// FilterByLeagues selects matches whose league is in the selection;
// an empty selection is the "all leagues" sentinel.
func FilterByLeagues(items []match.Match, leagues []match.League) []match.Match {
	if len(leagues) == 0 {
		out := make([]match.Match, len(items))
		copy(out, items)
		return out
	}

	selected := make(map[match.League]struct{}, len(leagues))
	for _, league := range leagues {
		selected[league] = struct{}{}
	}

	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		if _, ok := selected[item.League]; ok {
			out = append(out, item)
		}
	}
	return out
}

// SortFinishedLast orders matches ascending by kickoff with one
// override: every FINISHED match sorts after every non-FINISHED match
// regardless of its kickoff. The sort is stable, so source order
// breaks kickoff ties. The input slice is not mutated.
func SortFinishedLast(items []match.Match) []match.Match {
	out := make([]match.Match, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		iFinished := out[i].Status == match.StatusFinished
		jFinished := out[j].Status == match.StatusFinished
		if iFinished != jFinished {
			return !iFinished
		}
		return out[i].Kickoff.Before(out[j].Kickoff)
	})
	return out
}

// DistinctTeamNames collects every home and away team name once, in
// lexicographic order.
func DistinctTeamNames(items []match.Match) []string {
	seen := make(map[string]struct{}, len(items)*2)
	for _, item := range items {
		seen[item.Home.Name] = struct{}{}
		seen[item.Away.Name] = struct{}{}
	}
	delete(seen, "")

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Refine applies a league view's status filter and case-insensitive
// substring search (against either team's name); both compose with
// logical AND.
func Refine(items []match.Match, view LeagueView) []match.Match {
	search := strings.ToLower(strings.TrimSpace(view.Search))

	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		if !statusMatches(item.Status, view.Status) {
			continue
		}
		if search != "" && !teamNameContains(item, search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func statusMatches(status match.Status, filter StatusFilter) bool {
	switch filter {
	case StatusFilterLive:
		return status == match.StatusLive
	case StatusFilterFinished:
		return status == match.StatusFinished
	default:
		return true
	}
}

func teamNameContains(item match.Match, loweredSearch string) bool {
	return strings.Contains(strings.ToLower(item.Home.Name), loweredSearch) ||
		strings.Contains(strings.ToLower(item.Away.Name), loweredSearch)
}

func paginate(items []match.Match, page int) LeaguePage {
	totalMatches := len(items)
	totalPages := (totalMatches + PageSize - 1) / PageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > totalMatches {
		start = totalMatches
	}
	if end > totalMatches {
		end = totalMatches
	}

	return LeaguePage{
		Matches:      items[start:end],
		Page:         page,
		PageSize:     PageSize,
		TotalMatches: totalMatches,
		TotalPages:   totalPages,
		PageRange:    PageRange(totalPages, page),
	}
}

// PageRange collapses a long run of page numbers with gap markers:
// all pages when total fits within visiblePageLimit; the first five
// pages when current is within the leading edge; the last five when
// current is within three of the end; otherwise first, a window of
// three around current, and last.
func PageRange(totalPages, current int) []PageMark {
	if totalPages <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	if totalPages <= visiblePageLimit {
		out := make([]PageMark, 0, totalPages)
		for page := 1; page <= totalPages; page++ {
			out = append(out, PageMark{Page: page})
		}
		return out
	}

	gap := PageMark{Gap: true}
	switch {
	case current <= 4:
		out := make([]PageMark, 0, 7)
		for page := 1; page <= 5; page++ {
			out = append(out, PageMark{Page: page})
		}
		return append(out, gap, PageMark{Page: totalPages})
	case current >= totalPages-3:
		out := make([]PageMark, 0, 7)
		out = append(out, PageMark{Page: 1}, gap)
		for page := totalPages - 4; page <= totalPages; page++ {
			out = append(out, PageMark{Page: page})
		}
		return out
	default:
		return []PageMark{
			{Page: 1},
			gap,
			{Page: current - 1},
			{Page: current},
			{Page: current + 1},
			gap,
			{Page: totalPages},
		}
	}
}
