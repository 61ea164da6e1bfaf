package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/admin/astrografia/internal/ports/cache"
)

type entry struct {
	value     string
	expiresAt time.Time // нулевое значение: без срока
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// TTLCache in-memory кэш с истечением ключей; используется, когда Redis выключен
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

func NewTTLCache() *TTLCache {
	return &TTLCache{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

var _ cache.Cache = (*TTLCache)(nil)

func (c *TTLCache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || e.expired(c.now()) {
		return "", cache.ErrCacheMiss
	}
	return e.value, nil
}

func (c *TTLCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.items[key] = e
	c.mu.Unlock()
	return nil
}

func (c *TTLCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

func (c *TTLCache) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.Get(ctx, key)
	return err == nil, nil
}

// Purge удаляет истёкшие ключи, возвращает их количество
func (c *TTLCache) Purge() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.items {
		if e.expired(now) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

func (c *TTLCache) Close() error {
	c.mu.Lock()
	c.items = make(map[string]entry)
	c.mu.Unlock()
	return nil
}
