package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"dispatch-dashboard/internal/entities"
	apperrors "dispatch-dashboard/pkg/errors"
)

// SessionRepositoryInterface owns the per-session dashboard state: the last
// fetched snapshot and the selected route. A fetch trigger replaces the whole
// snapshot; a route selection rewrites only that field.
type SessionRepositoryInterface interface {
	SaveSnapshot(ctx context.Context, sessionID string, snapshot *entities.DashboardSnapshot) error
	GetSnapshot(ctx context.Context, sessionID string) (*entities.DashboardSnapshot, error)
	SetSelectedRoute(ctx context.Context, sessionID string, route string) error
	Delete(ctx context.Context, sessionID string) error
}

const sessionKeyPrefix = "dashboard:session:"

type SessionRepository struct {
	cache CacheRepositoryInterface
	ttl   time.Duration
}

func NewSessionRepository(cache CacheRepositoryInterface, ttl time.Duration) SessionRepositoryInterface {
	return &SessionRepository{cache: cache, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (r *SessionRepository) SaveSnapshot(ctx context.Context, sessionID string, snapshot *entities.DashboardSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal dashboard snapshot: %w", err)
	}
	return r.cache.Set(ctx, sessionKey(sessionID), payload, r.ttl)
}

func (r *SessionRepository) GetSnapshot(ctx context.Context, sessionID string) (*entities.DashboardSnapshot, error) {
	raw, err := r.cache.Get(ctx, sessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNoSnapshot
		}
		return nil, err
	}

	snapshot := &entities.DashboardSnapshot{}
	if err := json.Unmarshal([]byte(raw), snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal dashboard snapshot: %w", err)
	}
	return snapshot, nil
}

func (r *SessionRepository) SetSelectedRoute(ctx context.Context, sessionID string, route string) error {
	snapshot, err := r.GetSnapshot(ctx, sessionID)
	if err != nil {
		return err
	}
	snapshot.SelectedRoute.SetValid(route)
	return r.SaveSnapshot(ctx, sessionID, snapshot)
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.cache.Del(ctx, sessionKey(sessionID))
}
