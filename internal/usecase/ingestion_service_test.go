package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/matchday/fixtures-dashboard/internal/domain/match"
)

type stubSource struct {
	mu   sync.Mutex
	docs map[match.League]match.Document
	errs map[match.League]error

	calls []match.League
}

func (s *stubSource) Fetch(_ context.Context, league match.League) (match.Document, error) {
	s.mu.Lock()
	s.calls = append(s.calls, league)
	s.mu.Unlock()

	if err, ok := s.errs[league]; ok {
		return match.Document{}, err
	}
	return s.docs[league], nil
}

func rawFixture(id int64, date, clock, home, away string) match.RawMatch {
	return match.RawMatch{
		ID:   id,
		Date: date,
		Time: clock,
		Teams: match.RawTeams{
			Home: match.Team{ID: id*10 + 1, Name: home},
			Away: match.Team{ID: id*10 + 2, Name: away},
		},
	}
}

func fullSource() *stubSource {
	// Kickoffs are local to UTC+7; with "now" pinned to 22/08/2026
	// 21:30 local, the first Premier League match is exactly at the
	// live boundary and the Serie A one finished hours ago.
	return &stubSource{docs: map[match.League]match.Document{
		match.LeaguePremierLeague: {
			Metadata: match.DocumentMetadata{League: "Premier League", Timezone: "UTC+7"},
			Matches: []match.RawMatch{
				rawFixture(1, "22/08/2026", "21:30", "Arsenal", "Chelsea"),
				rawFixture(2, "23/08/2026", "19:00", "Liverpool", "Everton"),
			},
		},
		match.LeagueLaLiga: {
			Metadata: match.DocumentMetadata{League: "La Liga", Timezone: "UTC+7"},
			Matches: []match.RawMatch{
				rawFixture(3, "22/08/2026", "23:00", "Barcelona", "Sevilla"),
			},
		},
		match.LeagueBundesliga: {
			Metadata: match.DocumentMetadata{League: "Bundesliga", Timezone: "UTC+7"},
			Matches: []match.RawMatch{
				rawFixture(4, "24/08/2026", "20:30", "Dortmund", "Leipzig"),
			},
		},
		match.LeagueSerieA: {
			Metadata: match.DocumentMetadata{League: "Serie A", Timezone: "UTC+7"},
			Matches: []match.RawMatch{
				rawFixture(5, "22/08/2026", "15:00", "Inter", "Milan"),
			},
		},
	}}
}

// 22/08/2026 21:30 in UTC+7 is 14:30 UTC.
var pinnedNow = time.Date(2026, time.August, 22, 14, 30, 0, 0, time.UTC)

func pinNow(svc *IngestionService) {
	svc.now = func() time.Time { return pinnedNow }
}

func TestIngestionService_Load(t *testing.T) {
	source := fullSource()
	snapshots := &stubSnapshots{}
	svc := NewIngestionService(source, snapshots, nil)
	pinNow(svc)

	snapshot, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Matches, 5)

	// Flattened in canonical league order, document order within one
	// league preserved.
	ids := make([]int64, 0, len(snapshot.Matches))
	for _, item := range snapshot.Matches {
		ids = append(ids, item.ID)
	}
	require.Equal(t, []int64{1, 2, 3, 4, 5}, ids)

	// Every match classified against the same pinned instant.
	require.Equal(t, match.StatusLive, snapshot.Matches[0].Status)
	require.Equal(t, match.StatusUpcoming, snapshot.Matches[1].Status)
	require.Equal(t, match.StatusUpcoming, snapshot.Matches[2].Status)
	require.Equal(t, match.StatusFinished, snapshot.Matches[4].Status)

	require.Equal(t, pinnedNow, snapshot.LoadedAt)
	require.Equal(t, pinnedNow, snapshot.RefreshedAt)

	// Committed.
	stored, ok := snapshots.Current()
	require.True(t, ok)
	require.Len(t, stored.Matches, 5)

	require.True(t, svc.Loaded())
	require.NoError(t, svc.LoadErr())
	require.False(t, svc.Loading())

	require.Len(t, source.calls, 4)
}

func TestIngestionService_Load_OneLeagueFailingFailsAll(t *testing.T) {
	source := fullSource()
	source.errs = map[match.League]error{
		match.LeagueBundesliga: crerr.Mark(errors.New("upstream 503"), match.ErrFetch),
	}
	snapshots := &stubSnapshots{}
	svc := NewIngestionService(source, snapshots, nil)
	pinNow(svc)

	_, err := svc.Load(context.Background())
	require.ErrorIs(t, err, ErrLoadFailed)
	require.ErrorIs(t, err, match.ErrFetch)

	// The three healthy leagues must not leak into a partial snapshot.
	_, ok := snapshots.Current()
	require.False(t, ok)

	require.False(t, svc.Loaded())
	require.ErrorIs(t, svc.LoadErr(), ErrLoadFailed)

	// Siblings still ran to completion.
	require.Len(t, source.calls, 4)
}

func TestIngestionService_Load_MalformedKickoffFailsLeague(t *testing.T) {
	source := fullSource()
	doc := source.docs[match.LeagueLaLiga]
	doc.Matches = append(doc.Matches, rawFixture(99, "2026-08-22", "23:00", "Valencia", "Getafe"))
	source.docs[match.LeagueLaLiga] = doc

	snapshots := &stubSnapshots{}
	svc := NewIngestionService(source, snapshots, nil)
	pinNow(svc)

	_, err := svc.Load(context.Background())
	require.ErrorIs(t, err, ErrLoadFailed)
	require.ErrorIs(t, err, match.ErrParse)

	_, ok := snapshots.Current()
	require.False(t, ok)
}

func TestIngestionService_Load_MissingMetadataFailsShape(t *testing.T) {
	source := fullSource()
	doc := source.docs[match.LeagueSerieA]
	doc.Metadata.League = ""
	source.docs[match.LeagueSerieA] = doc

	svc := NewIngestionService(source, &stubSnapshots{}, nil)
	pinNow(svc)

	_, err := svc.Load(context.Background())
	require.ErrorIs(t, err, ErrLoadFailed)
	require.ErrorIs(t, err, match.ErrShape)
}

func TestIngestionService_Load_CancelledLoadNeverCommits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snapshots := &stubSnapshots{}
	svc := NewIngestionService(fullSource(), snapshots, nil)
	pinNow(svc)

	_, err := svc.Load(ctx)
	require.ErrorIs(t, err, ErrLoadFailed)
	require.ErrorIs(t, err, context.Canceled)

	_, ok := snapshots.Current()
	require.False(t, ok)
}
