package data

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
)

type cacheEntry struct {
	data     []types.OHLC
	storedAt time.Time
}

// MemoryCache implements DataCache using in-memory storage. Entries older
// than ttl are treated as missing; a zero ttl keeps entries forever.
type MemoryCache struct {
	cache map[string]cacheEntry
	ttl   time.Duration
	now   func() time.Time
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get retrieves data from cache if available
func (c *MemoryCache) Get(key string) ([]types.OHLC, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.cache[key]
	if !exists {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(entry.storedAt) > c.ttl {
		return nil, false
	}

	// Return a copy to prevent external modifications
	result := make([]types.OHLC, len(entry.data))
	copy(result, entry.data)
	return result, true
}

// Set stores data in cache
func (c *MemoryCache) Set(key string, data []types.OHLC) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Store a copy to prevent external modifications
	cached := make([]types.OHLC, len(data))
	copy(cached, data)
	c.cache[key] = cacheEntry{data: cached, storedAt: c.now()}
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[string]cacheEntry)
}

// Size returns the number of cached entries
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}

// CachedProvider wraps another DataProvider with caching functionality
type CachedProvider struct {
	provider DataProvider
	cache    DataCache
}

// NewCachedProvider creates a new cached data provider
func NewCachedProvider(provider DataProvider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    NewMemoryCache(ttl),
	}
}

// NewCachedProviderWithCache creates a new cached data provider with custom cache
func NewCachedProviderWithCache(provider DataProvider, cache DataCache) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
	}
}

// GetName returns the name of the underlying provider with cache indication
func (p *CachedProvider) GetName() string {
	return "Cached " + p.provider.GetName()
}

// LoadData loads data with caching to avoid repeated reads of the same source
func (p *CachedProvider) LoadData(ctx context.Context, source string) ([]types.OHLC, error) {
	if cachedData, exists := p.cache.Get(source); exists {
		return cachedData, nil
	}

	data, err := p.provider.LoadData(ctx, source)
	if err != nil {
		log.Printf("❌ Failed to load data from %s: %v", source, err)
		return nil, err
	}

	p.cache.Set(source, data)

	log.Printf("✅ Loaded and cached data from %s (%d records)", source, len(data))
	return data, nil
}

// ClearCache clears all cached data
func (p *CachedProvider) ClearCache() {
	p.cache.Clear()
}

// GetCacheSize returns the number of cached entries
func (p *CachedProvider) GetCacheSize() int {
	return p.cache.Size()
}
