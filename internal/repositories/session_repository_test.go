package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-dashboard/internal/entities"
	apperrors "dispatch-dashboard/pkg/errors"
)

func newTestSessionRepo(t *testing.T) (SessionRepositoryInterface, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionRepository(NewRedisCacheRepository(client), time.Hour), mr
}

func TestSessionRepository_SnapshotRoundTrip(t *testing.T) {
	repo, mr := newTestSessionRepo(t)
	ctx := context.Background()

	snapshot := &entities.DashboardSnapshot{
		Date: "2026-08-27",
		Jobs: []entities.JobRecord{
			{ID: "j1", PrimaryJobStatus: "completed", RunNumber: null.StringFrom("EM1.1 AM")},
		},
		Metrics: []entities.RouteMetrics{
			{RunNumber: "EM1.1 AM", Total: 1, Completed: 1, SuccessRate: 1},
		},
		FetchedAt: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SaveSnapshot(ctx, "sess-1", snapshot))

	got, err := repo.GetSnapshot(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-27", got.Date)
	require.Len(t, got.Jobs, 1)
	assert.Equal(t, "j1", got.Jobs[0].ID)
	assert.Equal(t, "EM1.1 AM", got.Jobs[0].RunNumber.String)
	require.Len(t, got.Metrics, 1)
	assert.Equal(t, 1, got.Metrics[0].Completed)

	// Keys are namespaced per session.
	assert.True(t, mr.Exists("dashboard:session:sess-1"))
}

func TestSessionRepository_MissingSnapshot(t *testing.T) {
	repo, _ := newTestSessionRepo(t)

	_, err := repo.GetSnapshot(context.Background(), "unknown")
	assert.ErrorIs(t, err, apperrors.ErrNoSnapshot)
}

func TestSessionRepository_SetSelectedRoute(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveSnapshot(ctx, "sess-1", &entities.DashboardSnapshot{Date: "2026-08-27"}))
	require.NoError(t, repo.SetSelectedRoute(ctx, "sess-1", "EM1.1 AM"))

	got, err := repo.GetSnapshot(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "EM1.1 AM", got.SelectedRoute.String)

	// Selection requires an existing snapshot.
	assert.ErrorIs(t, repo.SetSelectedRoute(ctx, "other", "ZR5"), apperrors.ErrNoSnapshot)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveSnapshot(ctx, "sess-1", &entities.DashboardSnapshot{Date: "2026-08-27"}))
	require.NoError(t, repo.Delete(ctx, "sess-1"))

	_, err := repo.GetSnapshot(ctx, "sess-1")
	assert.ErrorIs(t, err, apperrors.ErrNoSnapshot)
}

func TestSessionRepository_SnapshotExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewSessionRepository(NewRedisCacheRepository(client), time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.SaveSnapshot(ctx, "sess-1", &entities.DashboardSnapshot{Date: "2026-08-27"}))

	mr.FastForward(2 * time.Minute)

	_, err := repo.GetSnapshot(ctx, "sess-1")
	assert.ErrorIs(t, err, apperrors.ErrNoSnapshot)
}
