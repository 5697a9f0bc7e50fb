package httpapi

import (
	"time"

	"github.com/matchday/fixtures-dashboard/internal/domain/match"
	"github.com/matchday/fixtures-dashboard/internal/platform/timeparse"
	"github.com/matchday/fixtures-dashboard/internal/usecase"
)

type leagueDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type teamDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type matchDTO struct {
	ID           int64   `json:"id"`
	League       string  `json:"league"`
	LeagueName   string  `json:"leagueName"`
	Home         teamDTO `json:"home"`
	Away         teamDTO `json:"away"`
	Kickoff      string  `json:"kickoff"`
	KickoffLocal string  `json:"kickoffLocal"`
	Status       string  `json:"status"`
}

type leagueGroupDTO struct {
	League     string     `json:"league"`
	LeagueName string     `json:"leagueName"`
	Matches    []matchDTO `json:"matches"`
}

type pageMarkDTO struct {
	Page int  `json:"page,omitempty"`
	Gap  bool `json:"gap,omitempty"`
}

type leaguePageDTO struct {
	League       string        `json:"league"`
	LeagueName   string        `json:"leagueName"`
	Matches      []matchDTO    `json:"matches"`
	Page         int           `json:"page"`
	PageSize     int           `json:"pageSize"`
	TotalMatches int           `json:"totalMatches"`
	TotalPages   int           `json:"totalPages"`
	PageRange    []pageMarkDTO `json:"pageRange"`
}

func matchToDTO(item match.Match) matchDTO {
	return matchDTO{
		ID:           item.ID,
		League:       string(item.League),
		LeagueName:   item.League.DisplayName(),
		Home:         teamDTO{ID: item.Home.ID, Name: item.Home.Name},
		Away:         teamDTO{ID: item.Away.ID, Name: item.Away.Name},
		Kickoff:      item.Kickoff.UTC().Format(time.RFC3339),
		KickoffLocal: timeparse.FormatLocal(item.Kickoff),
		Status:       string(item.Status),
	}
}

func matchesToDTOs(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func pageRangeToDTOs(marks []usecase.PageMark) []pageMarkDTO {
	out := make([]pageMarkDTO, 0, len(marks))
	for _, mark := range marks {
		out = append(out, pageMarkDTO{Page: mark.Page, Gap: mark.Gap})
	}
	return out
}
