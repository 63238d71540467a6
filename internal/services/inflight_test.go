package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"field-service/internal/entities"
	apperrors "field-service/pkg/errors"
)

func TestMemoryInFlightGuard(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryInFlightGuard(time.Minute)

	release, err := g.Acquire(ctx, 1, entities.ActionPause)
	require.NoError(t, err)
	assert.True(t, g.IsBusy(ctx, 1, entities.ActionPause))

	_, err = g.Acquire(ctx, 1, entities.ActionPause)
	assert.ErrorIs(t, err, apperrors.ErrActionInFlight)

	otherRelease, err := g.Acquire(ctx, 1, entities.ActionCancel)
	require.NoError(t, err, "unrelated actions stay selectable")
	otherRelease()

	_, err = g.Acquire(ctx, 2, entities.ActionPause)
	require.NoError(t, err, "other orders stay selectable")

	release()
	release()
	assert.False(t, g.IsBusy(ctx, 1, entities.ActionPause))

	again, err := g.Acquire(ctx, 1, entities.ActionPause)
	require.NoError(t, err)
	again()
}

func TestMemoryInFlightGuardExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	g := NewMemoryInFlightGuard(time.Minute)
	g.clock = func() time.Time { return now }

	stale, err := g.Acquire(ctx, 1, entities.ActionConclude)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	assert.False(t, g.IsBusy(ctx, 1, entities.ActionConclude))

	fresh, err := g.Acquire(ctx, 1, entities.ActionConclude)
	require.NoError(t, err)

	stale()
	assert.True(t, g.IsBusy(ctx, 1, entities.ActionConclude), "stale release must not drop the new holder")
	fresh()
	assert.False(t, g.IsBusy(ctx, 1, entities.ActionConclude))
}

func TestMemoryInFlightGuardSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	g := NewMemoryInFlightGuard(time.Minute)
	g.clock = func() time.Time { return now }

	_, err := g.Acquire(ctx, 1, entities.ActionPause)
	require.NoError(t, err)
	assert.Zero(t, g.sweep())

	now = now.Add(time.Hour)
	assert.Equal(t, 1, g.sweep())
	assert.Empty(t, g.held)
}

func TestCacheInFlightGuard(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	g := NewCacheInFlightGuard(cache, time.Minute, zap.NewNop())

	release, err := g.Acquire(ctx, 5, entities.ActionResume)
	require.NoError(t, err)
	assert.True(t, g.IsBusy(ctx, 5, entities.ActionResume))

	_, err = g.Acquire(ctx, 5, entities.ActionResume)
	assert.ErrorIs(t, err, apperrors.ErrActionInFlight)

	release()
	assert.False(t, g.IsBusy(ctx, 5, entities.ActionResume))
}

func TestCacheInFlightGuardKeepsForeignFlag(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	g := NewCacheInFlightGuard(cache, time.Minute, zap.NewNop())

	release, err := g.Acquire(ctx, 5, entities.ActionResume)
	require.NoError(t, err)

	// Simulates expiry followed by another instance taking the flag.
	cache.data[inFlightKey(5, entities.ActionResume)] = "someone-else"
	release()
	assert.True(t, g.IsBusy(ctx, 5, entities.ActionResume))
}

func TestCacheInFlightGuardBackendError(t *testing.T) {
	cache := newFakeCache()
	cache.err = errors.New("connection refused")
	g := NewCacheInFlightGuard(cache, time.Minute, zap.NewNop())

	_, err := g.Acquire(context.Background(), 5, entities.ActionResume)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrActionInFlight)
}
