// Package travel caches per-place travel time computations so repeated
// queries from a similar location reuse one in-flight or completed result.
package travel

import (
	"context"
	"sync"

	"github.com/mozilla-mobile/prox-sub000/schema"
)

// Source computes travel times; external/directions is the production
// implementation.
type Source interface {
	TravelTimes(ctx context.Context, origin, destination schema.Location, modes []schema.TravelMode) (*schema.TravelTimes, error)
}

// Computation is a pending-or-completed travel time result. Resolve settles
// it exactly once; Done is closed on settlement.
type Computation struct {
	done  chan struct{}
	once  sync.Once
	times *schema.TravelTimes
	err   error
}

func NewComputation() *Computation {
	return &Computation{done: make(chan struct{})}
}

// Resolve settles the computation. Later calls are ignored.
func (c *Computation) Resolve(times *schema.TravelTimes, err error) {
	c.once.Do(func() {
		c.times = times
		c.err = err
		close(c.done)
	})
}

// Done is closed once the computation has settled.
func (c *Computation) Done() <-chan struct{} {
	return c.done
}

// Result returns the settled value. It is only meaningful after Done is
// closed.
func (c *Computation) Result() (*schema.TravelTimes, error) {
	return c.times, c.err
}

// Settled reports whether the computation has completed, without blocking.
func (c *Computation) Settled() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Computation) failed() bool {
	return c.Settled() && c.err != nil
}

type entry struct {
	comp   *Computation
	origin schema.Location
}

// Cache keeps at most one computation per place id, remembered together with
// the origin it was computed from. One coarse lock guards every read and
// write; correctness over throughput.
type Cache struct {
	mu               sync.Mutex
	entries          map[string]*entry
	expirationMeters float64
}

// NewCache builds a cache that invalidates entries once the caller has moved
// expirationMeters away from the cached origin.
func NewCache(expirationMeters float64) *Cache {
	return &Cache{
		entries:          map[string]*entry{},
		expirationMeters: expirationMeters,
	}
}

// Get returns the cached computation for a place when it is still usable
// from the current location: the origin is within the expiration distance
// and the computation is either still pending or completed successfully. A
// cached failure is never reused.
func (c *Cache) Get(placeID string, current schema.Location) (*Computation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lookup(placeID, current)
}

// lookup must be called with the lock held.
func (c *Cache) lookup(placeID string, current schema.Location) (*Computation, bool) {
	e, ok := c.entries[placeID]
	if !ok {
		return nil, false
	}
	if e.origin.DistanceTo(current) >= c.expirationMeters {
		return nil, false
	}
	if e.comp.failed() {
		return nil, false
	}

	return e.comp, true
}

// Put stores a computation unconditionally. A superseded in-flight
// computation is abandoned, not cancelled; its eventual completion is
// harmless and wasted.
func (c *Cache) Put(placeID string, comp *Computation, origin schema.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[placeID] = &entry{comp: comp, origin: origin}
}

// GetOrCreate returns a usable cached computation or installs a fresh one.
// The peek-else-insert is a single critical section, so two concurrent
// callers for the same place get the same in-flight computation and exactly
// one of them sees created == true and must start the work and Resolve it.
func (c *Cache) GetOrCreate(placeID string, origin schema.Location) (comp *Computation, created bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if comp, ok := c.lookup(placeID, origin); ok {
		return comp, false
	}

	comp = NewComputation()
	c.entries[placeID] = &entry{comp: comp, origin: origin}

	return comp, true
}
