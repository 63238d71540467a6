package services

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"field-service/internal/dto"
	"field-service/internal/entities"
	"field-service/pkg/contextkeys"
	"field-service/pkg/eventbus"
)

const techID int64 = 12

func technicianCtx(userID int64, roles ...string) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRolesKey, roles)
}

type fakeSender struct {
	mu       sync.Mutex
	requests []dto.OccurrenceRequest
	ctxErrs  []error
	resp     *dto.OccurrenceResponse
	err      error
	block    chan struct{}
	started  chan struct{}
}

func (f *fakeSender) RegisterOccurrence(ctx context.Context, req dto.OccurrenceRequest) (*dto.OccurrenceResponse, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &dto.OccurrenceResponse{Mensagem: "Ocorrência registrada"}, nil
}

func (f *fakeSender) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakeOrders struct {
	order *entities.Order
	err   error
	calls int
}

func (f *fakeOrders) FetchOrder(ctx context.Context, orderID int64) (*entities.Order, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

type fakePublisher struct {
	events []eventbus.Event
}

func (f *fakePublisher) Publish(ctx context.Context, event eventbus.Event) {
	f.events = append(f.events, event)
}

// fakeCache is an in-memory CacheRepositoryInterface without expiry.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value.(string)
	return nil
}

func (c *fakeCache) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = value.(string)
	return true, nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

func releasedOrder(fats ...entities.FAT) *entities.Order {
	return &entities.Order{
		ID:               100,
		Status:           entities.OrderStatusAssigned,
		FinancialRelease: &entities.FinancialRelease{Released: true},
		Fats:             fats,
	}
}

func inServiceFat(tech int64) entities.FAT {
	return entities.FAT{
		ID:                7,
		Technician:        &entities.Technician{ID: tech},
		Status:            entities.FatInService,
		DescricaoProblema: "vazamento",
		NumeroCiclos:      2,
	}
}
