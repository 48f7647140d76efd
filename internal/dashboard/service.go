package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	snapshotKey = "dashboard:stats"
	snapshotTTL = 5 * time.Minute
)

// RepositoryPort defines the aggregate queries behind the dashboard.
type RepositoryPort interface {
	CountStudents(ctx context.Context) (total, active int64, err error)
	CountPublishedCourses(ctx context.Context) (int64, error)
	CountUpcomingTrainings(ctx context.Context) (int64, error)
	CountInstructors(ctx context.Context) (int64, error)
	SumRevenueCents(ctx context.Context) (int64, error)
}

// Service assembles dashboard statistics. When a redis client is configured
// it serves a short-lived cached snapshot; the queries still run on a miss.
type Service struct {
	repo  RepositoryPort
	redis *redis.Client
	now   func() time.Time
}

// NewService builds Service instance. The redis client may be nil.
func NewService(repo RepositoryPort, rdb *redis.Client) *Service {
	return &Service{repo: repo, redis: rdb, now: time.Now}
}

// Stats returns the current aggregate snapshot.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if cached := s.cachedSnapshot(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.Compute(ctx)
	if err != nil {
		return nil, err
	}
	s.storeSnapshot(ctx, stats)
	return stats, nil
}

// Compute runs the aggregate queries in parallel, bypassing the snapshot.
func (s *Service) Compute(ctx context.Context) (*Stats, error) {
	stats := &Stats{GeneratedAt: s.now().UTC().Truncate(time.Second)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, active, err := s.repo.CountStudents(gctx)
		if err != nil {
			return err
		}
		stats.TotalStudents, stats.ActiveStudents = total, active
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.CountPublishedCourses(gctx)
		stats.PublishedCourses = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountUpcomingTrainings(gctx)
		stats.UpcomingTrainings = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountInstructors(gctx)
		stats.TotalInstructors = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.SumRevenueCents(gctx)
		stats.RevenueCents = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// Snapshot recomputes the stats and refreshes the cached copy. The stats
// snapshot job calls this on a schedule so the landing page stays warm.
func (s *Service) Snapshot(ctx context.Context) (*Stats, error) {
	stats, err := s.Compute(ctx)
	if err != nil {
		return nil, err
	}
	s.storeSnapshot(ctx, stats)
	return stats, nil
}

func (s *Service) cachedSnapshot(ctx context.Context) *Stats {
	if s.redis == nil {
		return nil
	}
	payload, err := s.redis.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		return nil
	}
	var stats Stats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *Service) storeSnapshot(ctx context.Context, stats *Stats) {
	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	// Cache failures are invisible to callers; the next request recomputes.
	_ = s.redis.Set(ctx, snapshotKey, payload, snapshotTTL).Err()
}
