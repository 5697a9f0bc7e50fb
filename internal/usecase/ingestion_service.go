package usecase

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/iter"

	"github.com/matchday/fixtures-dashboard/internal/domain/match"
	"github.com/matchday/fixtures-dashboard/internal/platform/logging"
	"github.com/matchday/fixtures-dashboard/internal/platform/timeparse"
)

// IngestionService loads all four league schedule documents, derives
// every match's kickoff instant and status, and installs the result as
// one snapshot. The load is all-or-nothing: a fetch, shape, or parse
// failure for any single league fails the whole load, so the dashboard
// never shows a partially populated schedule.
type IngestionService struct {
	source    match.DocumentSource
	snapshots match.SnapshotRepository
	validate  *validator.Validate
	logger    *logging.Logger
	now       func() time.Time

	mu      sync.Mutex
	loading bool
	loadErr error
	loaded  bool
}

func NewIngestionService(
	source match.DocumentSource,
	snapshots match.SnapshotRepository,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &IngestionService{
		source:    source,
		snapshots: snapshots,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

type leagueResult struct {
	league  match.League
	matches []match.Match
	err     error
}

// Load fetches the four league documents concurrently and commits the
// flattened snapshot. "Now" is captured once at the start, so every
// match in one load is classified against the same reference instant.
// A cancelled load never commits its result.
func (s *IngestionService) Load(ctx context.Context) (match.Snapshot, error) {
	now := s.now()
	s.setLoading(true)
	started := time.Now()

	leagues := match.Leagues()
	results := make(chan leagueResult, len(leagues))

	pool, err := ants.NewPool(len(leagues))
	if err != nil {
		return s.fail(crerr.Wrap(err, "create worker pool"))
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, league := range leagues {
		league := league
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			matches, err := s.loadLeague(ctx, now, league)
			results <- leagueResult{league: league, matches: matches, err: err}
		}); err != nil {
			workers.Done()
			return s.fail(crerr.Wrap(err, "submit league task"))
		}
	}

	// Join-all: a failed league does not cancel its siblings, but any
	// failure below turns the whole load into one aggregate error.
	workers.Wait()
	close(results)

	matchesByLeague := make(map[match.League][]match.Match, len(leagues))
	errByLeague := make(map[match.League]error, len(leagues))
	for row := range results {
		if row.err != nil {
			errByLeague[row.league] = row.err
			continue
		}
		matchesByLeague[row.league] = row.matches
	}

	if len(errByLeague) > 0 {
		errs := make([]error, 0, len(errByLeague))
		for _, league := range leagues {
			if err, ok := errByLeague[league]; ok {
				errs = append(errs, err)
			}
		}
		return s.fail(crerr.Mark(stderrors.Join(errs...), ErrLoadFailed))
	}

	total := 0
	for _, league := range leagues {
		total += len(matchesByLeague[league])
	}
	flattened := make([]match.Match, 0, total)
	for _, league := range leagues {
		flattened = append(flattened, matchesByLeague[league]...)
	}

	if err := ctx.Err(); err != nil {
		return s.fail(crerr.Mark(crerr.Wrap(err, "ingestion cancelled before commit"), ErrLoadFailed))
	}

	snapshot := match.Snapshot{
		Matches:     flattened,
		LoadedAt:    now,
		RefreshedAt: now,
	}
	s.snapshots.Replace(snapshot)
	s.succeed()

	s.logger.InfoContext(ctx, "fixtures loaded",
		"leagues", len(leagues),
		"matches", total,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return snapshot, nil
}

func (s *IngestionService) loadLeague(ctx context.Context, now time.Time, league match.League) ([]match.Match, error) {
	doc, err := s.source.Fetch(ctx, league)
	if err != nil {
		return nil, err
	}

	if err := s.validate.StructCtx(ctx, doc); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "league=%s document failed validation", league), match.ErrShape)
	}

	matches, err := iter.MapErr(doc.Matches, func(raw *match.RawMatch) (match.Match, error) {
		kickoff, err := timeparse.ParseKickoff(raw.Date, raw.Time)
		if err != nil {
			return match.Match{}, crerr.Mark(
				crerr.Wrapf(err, "league=%s match_id=%d", league, raw.ID),
				match.ErrParse,
			)
		}

		return match.Match{
			ID:      raw.ID,
			League:  league,
			Home:    raw.Teams.Home,
			Away:    raw.Teams.Away,
			Kickoff: kickoff,
			Status:  match.Classify(now, kickoff),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}

// Loading reports whether a load is currently in flight.
func (s *IngestionService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LoadErr returns the aggregate error of the most recent failed load,
// nil after a success.
func (s *IngestionService) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Loaded reports whether any load has succeeded this session.
func (s *IngestionService) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *IngestionService) setLoading(value bool) {
	s.mu.Lock()
	s.loading = value
	s.mu.Unlock()
}

func (s *IngestionService) succeed() {
	s.mu.Lock()
	s.loading = false
	s.loadErr = nil
	s.loaded = true
	s.mu.Unlock()
}

func (s *IngestionService) fail(err error) (match.Snapshot, error) {
	s.mu.Lock()
	s.loading = false
	s.loadErr = err
	s.mu.Unlock()

	s.logger.Error("fixtures load failed", "error", err)
	return match.Snapshot{}, err
}
