package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepository struct {
	students    int64
	active      int64
	courses     int64
	trainings   int64
	instructors int64
	revenue     int64

	calls    atomic.Int64
	queryErr error
}

func (s *stubRepository) CountStudents(context.Context) (int64, int64, error) {
	s.calls.Add(1)
	return s.students, s.active, s.queryErr
}

func (s *stubRepository) CountPublishedCourses(context.Context) (int64, error) {
	s.calls.Add(1)
	return s.courses, s.queryErr
}

func (s *stubRepository) CountUpcomingTrainings(context.Context) (int64, error) {
	s.calls.Add(1)
	return s.trainings, s.queryErr
}

func (s *stubRepository) CountInstructors(context.Context) (int64, error) {
	s.calls.Add(1)
	return s.instructors, s.queryErr
}

func (s *stubRepository) SumRevenueCents(context.Context) (int64, error) {
	s.calls.Add(1)
	return s.revenue, s.queryErr
}

var _ RepositoryPort = (*stubRepository)(nil)

func TestStatsComputesAggregates(t *testing.T) {
	repo := &stubRepository{students: 156, active: 120, courses: 9, trainings: 3, instructors: 7, revenue: 1249500}
	svc := NewService(repo, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(156), stats.TotalStudents)
	assert.Equal(t, int64(120), stats.ActiveStudents)
	assert.Equal(t, int64(9), stats.PublishedCourses)
	assert.Equal(t, int64(3), stats.UpcomingTrainings)
	assert.Equal(t, int64(7), stats.TotalInstructors)
	assert.Equal(t, int64(1249500), stats.RevenueCents)
	assert.False(t, stats.GeneratedAt.IsZero())
}

func TestStatsPropagatesQueryError(t *testing.T) {
	repo := &stubRepository{queryErr: errors.New("connection refused")}
	svc := NewService(repo, nil)

	_, err := svc.Stats(context.Background())
	assert.Error(t, err)
}

func TestStatsServedFromSnapshot(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := &stubRepository{students: 10, active: 8, courses: 2, trainings: 1, instructors: 3, revenue: 50000}
	svc := NewService(repo, rdb)

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	firstCalls := repo.calls.Load()
	require.Positive(t, firstCalls)

	second, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, firstCalls, repo.calls.Load(), "second read should come from the snapshot")
	assert.Equal(t, first.TotalStudents, second.TotalStudents)

	mr.FastForward(6 * time.Minute)
	_, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Greater(t, repo.calls.Load(), firstCalls, "expired snapshot forces recompute")
}

func TestSnapshotRefreshesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := &stubRepository{students: 5}
	svc := NewService(repo, rdb)

	_, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	repo.students = 6
	cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), cached.TotalStudents, "reads see the snapshot until it expires")
}
