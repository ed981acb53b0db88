package forecast

import (
	"context"
	"sync"

	"github.com/couchcryptid/weather-guardians/internal/domain"
	"github.com/couchcryptid/weather-guardians/internal/observability"
)

// CachedService wraps a Service with an in-memory LRU of composite assessments.
// Assessments are pure functions of the date, so entries never go stale.
type CachedService struct {
	*Service
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedService creates a cache decorator around a service. A non-positive
// maxEntries disables caching.
func NewCachedService(inner *Service, maxEntries int, metrics *observability.Metrics) *CachedService {
	c := &CachedService{Service: inner, metrics: metrics}
	if maxEntries > 0 {
		c.cache = newLRUCache(maxEntries)
	}
	return c
}

// Composite returns the cached assessment for date, computing it on a miss.
func (c *CachedService) Composite(ctx context.Context, date domain.CalendarDate) (domain.CompositeAssessment, error) {
	if c.cache == nil {
		return c.Service.Composite(ctx, date)
	}
	if a, ok := c.cache.get(date); ok {
		c.metrics.AssessmentCache.WithLabelValues("hit").Inc()
		return a, nil
	}
	c.metrics.AssessmentCache.WithLabelValues("miss").Inc()

	a, err := c.Service.Composite(ctx, date)
	if err != nil {
		return a, err
	}
	c.cache.put(date, a)
	return a, nil
}

// Len reports how many assessments are cached.
func (c *CachedService) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.size()
}

// lruCache is a simple thread-safe LRU cache of assessments keyed by date.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[domain.CalendarDate]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   domain.CalendarDate
	value domain.CompositeAssessment
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[domain.CalendarDate]*entry),
	}
}

func (c *lruCache) get(key domain.CalendarDate) (domain.CompositeAssessment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.CompositeAssessment{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key domain.CalendarDate, value domain.CompositeAssessment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.unlink(c.tail)
}
