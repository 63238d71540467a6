package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"field-service/internal/entities"
	"field-service/internal/repositories"
	apperrors "field-service/pkg/errors"
)

// InFlightGuard holds the per (order, action) busy flag while an occurrence is pending.
type InFlightGuard interface {
	// Acquire fails with ErrActionInFlight when the flag is already held.
	Acquire(ctx context.Context, orderID int64, action entities.ActionKey) (release func(), err error)
	IsBusy(ctx context.Context, orderID int64, action entities.ActionKey) bool
}

func inFlightKey(orderID int64, action entities.ActionKey) string {
	return fmt.Sprintf("order-action:%d:%s", orderID, action)
}

// MemoryInFlightGuard keeps flags in process memory.
type MemoryInFlightGuard struct {
	mu    sync.Mutex
	held  map[string]time.Time
	ttl   time.Duration
	clock func() time.Time
}

func NewMemoryInFlightGuard(ttl time.Duration) *MemoryInFlightGuard {
	return &MemoryInFlightGuard{
		held:  make(map[string]time.Time),
		ttl:   ttl,
		clock: time.Now,
	}
}

func (g *MemoryInFlightGuard) Acquire(ctx context.Context, orderID int64, action entities.ActionKey) (func(), error) {
	key := inFlightKey(orderID, action)

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock()
	if expires, ok := g.held[key]; ok && now.Before(expires) {
		return nil, apperrors.ErrActionInFlight
	}
	expires := now.Add(g.ttl)
	g.held[key] = expires

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			// A TTL-expired flag may have been re-acquired by someone else.
			if g.held[key] == expires {
				delete(g.held, key)
			}
		})
	}, nil
}

func (g *MemoryInFlightGuard) IsBusy(ctx context.Context, orderID int64, action entities.ActionKey) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	expires, ok := g.held[inFlightKey(orderID, action)]
	return ok && g.clock().Before(expires)
}

// Cleanup drops expired flags every interval until ctx is done.
func (g *MemoryInFlightGuard) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.sweep()
		}
	}
}

func (g *MemoryInFlightGuard) sweep() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.clock()
	removed := 0
	for key, expires := range g.held {
		if !now.Before(expires) {
			delete(g.held, key)
			removed++
		}
	}
	return removed
}

// CacheInFlightGuard shares flags between instances through the cache (Redis SETNX).
type CacheInFlightGuard struct {
	cache  repositories.CacheRepositoryInterface
	ttl    time.Duration
	logger *zap.Logger
}

func NewCacheInFlightGuard(cache repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) *CacheInFlightGuard {
	return &CacheInFlightGuard{cache: cache, ttl: ttl, logger: logger.Named("inflight_guard")}
}

func (g *CacheInFlightGuard) Acquire(ctx context.Context, orderID int64, action entities.ActionKey) (func(), error) {
	key := inFlightKey(orderID, action)
	token := uuid.NewString()

	ok, err := g.cache.SetNX(ctx, key, token, g.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire in-flight flag %s: %w", key, err)
	}
	if !ok {
		return nil, apperrors.ErrActionInFlight
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()

			current, err := g.cache.Get(releaseCtx, key)
			if err != nil {
				if !errors.Is(err, redis.Nil) {
					g.logger.Warn("failed to read in-flight flag", zap.String("key", key), zap.Error(err))
				}
				return
			}
			if current != token {
				return
			}
			if err := g.cache.Del(releaseCtx, key); err != nil {
				g.logger.Warn("failed to release in-flight flag", zap.String("key", key), zap.Error(err))
			}
		})
	}, nil
}

func (g *CacheInFlightGuard) IsBusy(ctx context.Context, orderID int64, action entities.ActionKey) bool {
	busy, err := g.cache.Exists(ctx, inFlightKey(orderID, action))
	if err != nil {
		g.logger.Warn("failed to check in-flight flag", zap.Int64("orderID", orderID), zap.String("action", string(action)), zap.Error(err))
		return false
	}
	return busy
}
