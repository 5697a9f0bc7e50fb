package match

import (
	"strings"
	"time"
)

// League identifies one of the four supported competitions.
type League string

const (
	LeaguePremierLeague League = "premier-league"
	LeagueLaLiga        League = "la-liga"
	LeagueBundesliga    League = "bundesliga"
	LeagueSerieA        League = "serie-a"
)

// Leagues returns the supported leagues in canonical display order.
func Leagues() []League {
	return []League{LeaguePremierLeague, LeagueLaLiga, LeagueBundesliga, LeagueSerieA}
}

var displayNames = map[League]string{
	LeaguePremierLeague: "Premier League",
	LeagueLaLiga:        "La Liga",
	LeagueBundesliga:    "Bundesliga",
	LeagueSerieA:        "Serie A",
}

func (l League) DisplayName() string {
	if name, ok := displayNames[l]; ok {
		return name
	}
	return string(l)
}

func (l League) Valid() bool {
	_, ok := displayNames[l]
	return ok
}

// ParseLeague resolves a league slug or display name.
func ParseLeague(value string) (League, bool) {
	candidate := strings.ToLower(strings.TrimSpace(value))
	for _, item := range Leagues() {
		if candidate == string(item) || strings.EqualFold(candidate, item.DisplayName()) {
			return item, true
		}
	}
	return "", false
}

type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Match is one scheduled fixture tagged with its league. Kickoff is
// derived once at ingestion and never changes; Status is the only
// mutable field and is re-derived from Kickoff and the wall clock.
type Match struct {
	ID      int64
	League  League
	Home    Team
	Away    Team
	Kickoff time.Time
	Status  Status
}

// Key is the match identity: document ids are only unique per league.
type Key struct {
	League League
	ID     int64
}

func (m Match) Key() Key {
	return Key{League: m.League, ID: m.ID}
}

// Involves reports whether the named team plays home or away.
// The comparison is case-insensitive.
func (m Match) Involves(teamName string) bool {
	return strings.EqualFold(m.Home.Name, teamName) || strings.EqualFold(m.Away.Name, teamName)
}

// Snapshot is the whole-collection value produced by one load cycle.
// Each refresher tick replaces it wholesale instead of mutating
// matches in place, so readers always observe a consistent view.
type Snapshot struct {
	Matches     []Match
	LoadedAt    time.Time
	RefreshedAt time.Time
}
