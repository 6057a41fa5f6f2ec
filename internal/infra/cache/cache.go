package cache

import (
	"fmt"
	"sync"
	"time"

	"cabin-booking/internal/pkg/config"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// AllBookingsKey is the aggregate listing entry; it is dropped on every
// mutation regardless of which cabin the mutation touched.
const AllBookingsKey = "bookings:all"

func AvailabilityKey(cabinID uuid.UUID, checkIn, checkOut time.Time) string {
	return fmt.Sprintf("availability:%s:%d:%d", cabinID, checkIn.Unix(), checkOut.Unix())
}

func CabinBookingsKey(cabinID uuid.UUID) string {
	return fmt.Sprintf("bookings:cabin:%s", cabinID)
}

func CabinCalendarKey(cabinID uuid.UUID) string {
	return fmt.Sprintf("calendar:cabin:%s", cabinID)
}

// ResourceCache memoizes availability and listing reads for a fixed TTL.
// Entry storage and expiry are delegated to go-cache; beside it the cache
// keeps an index of which keys each cabin has touched, so invalidation
// removes every entry for a cabin without reconstructing key strings at the
// call site. The cache is advisory only: the transactional availability
// check never consults it.
type ResourceCache struct {
	store *gocache.Cache

	mu      sync.Mutex
	byCabin map[uuid.UUID]map[string]struct{}
	cabinOf map[string]uuid.UUID
}

func New(cfg config.CacheConfig) *ResourceCache {
	c := &ResourceCache{
		store:   gocache.New(cfg.TTL, cfg.CleanupInterval),
		byCabin: make(map[uuid.UUID]map[string]struct{}),
		cabinOf: make(map[string]uuid.UUID),
	}
	// Keep the index from accumulating keys whose entries have expired.
	c.store.OnEvicted(func(key string, _ any) {
		c.forget(key)
	})
	return c
}

func (c *ResourceCache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// SetForCabin stores an entry under the default TTL and records it in the
// cabin's invalidation index.
func (c *ResourceCache) SetForCabin(cabinID uuid.UUID, key string, value any) {
	c.mu.Lock()
	if c.byCabin[cabinID] == nil {
		c.byCabin[cabinID] = make(map[string]struct{})
	}
	c.byCabin[cabinID][key] = struct{}{}
	c.cabinOf[key] = cabinID
	c.mu.Unlock()

	c.store.SetDefault(key, value)
}

// SetGlobal stores an entry that is not tied to a single cabin; it is
// dropped on any mutation.
func (c *ResourceCache) SetGlobal(key string, value any) {
	c.store.SetDefault(key, value)
}

// InvalidateCabin removes every entry the cabin has touched, plus the
// aggregate listing entry. A single mutation can change the answer of many
// previously cached interval queries, so invalidation is exhaustive.
func (c *ResourceCache) InvalidateCabin(cabinID uuid.UUID) {
	c.mu.Lock()
	keys := make([]string, 0, len(c.byCabin[cabinID]))
	for key := range c.byCabin[cabinID] {
		keys = append(keys, key)
		delete(c.cabinOf, key)
	}
	delete(c.byCabin, cabinID)
	c.mu.Unlock()

	for _, key := range keys {
		c.store.Delete(key)
	}
	c.store.Delete(AllBookingsKey)
}

// Flush clears everything; used when shutting down or in tests.
func (c *ResourceCache) Flush() {
	c.mu.Lock()
	c.byCabin = make(map[uuid.UUID]map[string]struct{})
	c.cabinOf = make(map[string]uuid.UUID)
	c.mu.Unlock()

	c.store.Flush()
}

func (c *ResourceCache) forget(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cabinID, ok := c.cabinOf[key]; ok {
		delete(c.cabinOf, key)
		if keys := c.byCabin[cabinID]; keys != nil {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.byCabin, cabinID)
			}
		}
	}
}
