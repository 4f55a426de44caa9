package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"
)

// Config holds the configuration of a Cache.
type Config struct {
	// DefaultTTL is used by Set. Non-positive values select 10 minutes.
	DefaultTTL time.Duration
	// CleanupInterval is the period of the background expiry sweep. Zero disables it.
	CleanupInterval time.Duration
	// MaxItems bounds the cache; the least recently used item is evicted first.
	// Non-positive values select 1000.
	MaxItems int
	// OnEviction is called after an item is evicted or expires.
	OnEviction func(key string, value any)
}

type item struct {
	key       string
	value     any
	expiresAt time.Time
	element   *list.Element
}

// Cache is an in-memory LRU cache with per-item expiry.
type Cache struct {
	config Config
	now    func() time.Time

	mu    sync.Mutex
	items map[string]*item
	order *list.List // front is most recently used

	stopCh    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a cache and starts its cleanup goroutine when configured.
func New(config Config) *Cache {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = 10 * time.Minute
	}
	if config.MaxItems <= 0 {
		config.MaxItems = 1000
	}

	c := &Cache{
		config: config,
		now:    time.Now,
		items:  make(map[string]*item),
		order:  list.New(),
		stopCh: make(chan struct{}),
	}

	if config.CleanupInterval > 0 {
		c.wg.Add(1)
		go c.cleanupLoop(config.CleanupInterval)
	}
	return c
}

// Get returns the value stored under key if it has not expired.
func (c *Cache) Get(_ context.Context, key string) (any, bool) {
	c.mu.Lock()
	it, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		return nil, false
	}
	if c.now().After(it.expiresAt) {
		c.remove(it)
		c.mu.Unlock()
		c.evicted(it)
		return nil, false
	}
	c.order.MoveToFront(it.element)
	value := it.value
	c.mu.Unlock()
	return value, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	c.SetWithTTL(ctx, key, value, c.config.DefaultTTL)
}

// SetWithTTL stores value under key for ttl.
func (c *Cache) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.config.DefaultTTL
	}

	c.mu.Lock()
	if it, ok := c.items[key]; ok {
		it.value = value
		it.expiresAt = c.now().Add(ttl)
		c.order.MoveToFront(it.element)
		c.mu.Unlock()
		return
	}

	var dropped []*item
	for len(c.items) >= c.config.MaxItems {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		it := oldest.Value.(*item)
		c.remove(it)
		dropped = append(dropped, it)
	}

	it := &item{key: key, value: value, expiresAt: c.now().Add(ttl)}
	it.element = c.order.PushFront(it)
	c.items[key] = it
	c.mu.Unlock()

	for _, d := range dropped {
		c.evicted(d)
	}
}

// Delete removes key.
func (c *Cache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if it, ok := c.items[key]; ok {
		c.remove(it)
	}
}

// DeletePrefix removes every key starting with prefix and returns how many
// were removed.
func (c *Cache) DeletePrefix(_ context.Context, prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for key, it := range c.items {
		if strings.HasPrefix(key, prefix) {
			c.remove(it)
			count++
		}
	}
	return count
}

// Clear removes every item.
func (c *Cache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*item)
	c.order.Init()
}

// Size returns the number of stored items, expired ones included until swept.
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.items))
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *Cache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopCh)
	})
	c.wg.Wait()
	return nil
}

func (c *Cache) cleanupLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpired()
		case <-c.stopCh:
			return
		}
	}
}

// cleanupExpired removes expired items and returns how many were removed.
func (c *Cache) cleanupExpired() int {
	c.mu.Lock()
	now := c.now()
	var expired []*item
	for _, it := range c.items {
		if now.After(it.expiresAt) {
			expired = append(expired, it)
		}
	}
	for _, it := range expired {
		c.remove(it)
	}
	c.mu.Unlock()

	for _, it := range expired {
		c.evicted(it)
	}
	return len(expired)
}

// remove must be called with c.mu held.
func (c *Cache) remove(it *item) {
	c.order.Remove(it.element)
	delete(c.items, it.key)
}

func (c *Cache) evicted(it *item) {
	if c.config.OnEviction != nil {
		c.config.OnEviction(it.key, it.value)
	}
}
