package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/matchday/fixtures-dashboard/internal/domain/match"
	"github.com/matchday/fixtures-dashboard/internal/platform/logging"
)

const defaultRefreshInterval = 60 * time.Second

// RefreshService re-derives every match's status on a fixed cadence.
// Each tick is a pure recomputation from stored kickoffs and a fresh
// "now": no network, no re-parse. The result replaces the snapshot
// wholesale, so statuses only ever move forward.
type RefreshService struct {
	snapshots match.SnapshotRepository
	logger    *logging.Logger
	interval  time.Duration
	now       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
}

func NewRefreshService(snapshots match.SnapshotRepository, logger *logging.Logger, interval time.Duration) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	return &RefreshService{
		snapshots: snapshots,
		logger:    logger,
		interval:  interval,
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Start begins ticking until the context is cancelled or Stop is
// called. Ticks run to completion on a single goroutine and never
// overlap.
func (s *RefreshService) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	s.ticker = time.NewTicker(s.interval)

	go func() {
		s.logger.Info("status refresher started", "interval", s.interval.String())
		for {
			select {
			case <-ctx.Done():
				s.stopTicker()
				s.logger.Info("status refresher stopped")
				return
			case <-s.done:
				s.stopTicker()
				s.logger.Info("status refresher stopped")
				return
			case <-s.ticker.C:
				s.refreshOnce(s.now())
			}
		}
	}()
}

// Stop halts the refresh loop. Safe to call more than once.
func (s *RefreshService) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.stopTicker()
	})
}

func (s *RefreshService) refreshOnce(now time.Time) {
	snapshot, ok := s.snapshots.Current()
	if !ok {
		return
	}

	updated := make([]match.Match, len(snapshot.Matches))
	transitions := 0
	for i, item := range snapshot.Matches {
		next := item
		next.Status = match.Classify(now, item.Kickoff)
		if next.Status != item.Status {
			transitions++
		}
		updated[i] = next
	}

	s.snapshots.Replace(match.Snapshot{
		Matches:     updated,
		LoadedAt:    snapshot.LoadedAt,
		RefreshedAt: now,
	})

	if transitions > 0 {
		s.logger.Info("match statuses refreshed", "transitions", transitions, "matches", len(updated))
	} else {
		s.logger.Debug("match statuses refreshed", "transitions", 0, "matches", len(updated))
	}
}

func (s *RefreshService) stopTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
}
