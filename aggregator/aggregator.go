// Package aggregator orchestrates the nearby places pipeline: geo query,
// per-key detail fetches, the stability retry loop, the event union and the
// filtered, sorted result delivered to the presentation layer.
package aggregator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"

	"github.com/mozilla-mobile/prox-sub000/geo"
	"github.com/mozilla-mobile/prox-sub000/relevance"
	"github.com/mozilla-mobile/prox-sub000/schema"
	"github.com/mozilla-mobile/prox-sub000/travel"
)

const aggregatorLogPrefix = "aggregator"

// walkingSpeedMetersPerSecond converts a straight-line distance into an
// estimated duration so places without a computed travel time sort on the
// same axis as places with one.
const walkingSpeedMetersPerSecond = 1.4

// State is the aggregator phase for one update cycle.
type State int32

const (
	StateIdle State = iota
	StateFetching
	StateStable
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateStable:
		return "stable"
	case StateTimedOut:
		return "timed_out"
	default:
		return "idle"
	}
}

// IndexOutOfRangeError reports an index accessor miss.
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("place index %d out of range, have %d places", e.Index, e.Count)
}

// Delegate receives user-visible pipeline signals. An empty final update and
// a timeout are delivered through distinct calls so the presentation layer
// can tell slow-empty from genuinely-empty.
type Delegate interface {
	// PlacesUpdated delivers a display list. final is false for interim
	// updates published while the retry loop waits for the crawl to settle.
	PlacesUpdated(location schema.Location, places []*schema.Place, final bool)

	// UpdateTimedOut signals that the retry budget ran out before the
	// result count stabilized. The last partial set is not promoted.
	UpdateTimedOut(location schema.Location)
}

// Config carries the injected tunables; nothing here has a hardcoded
// fallback besides the travel mode set.
type Config struct {
	RadiusKm           float64
	MaxRetries         int
	TimeBetweenRetries time.Duration
	TravelModes        []schema.TravelMode
}

// Aggregator runs at most one update cycle at a time and owns the displayed
// place list.
type Aggregator struct {
	index     geo.Index
	records   geo.RecordStore
	crawler   geo.CrawlNotifier
	relevance *relevance.Engine
	travel    *travel.Cache
	source    travel.Source
	delegate  Delegate
	clock     clock.Clock
	cfg       Config

	fetching atomic.Bool
	state    atomic.Int32

	// places and indexByID are always mutated as a pair under mu. Index
	// accessors are consistent with each other only within one acquisition;
	// two separate accessor calls may observe different lists.
	mu        sync.RWMutex
	places    []*schema.Place
	indexByID map[string]int
	filters   []*schema.PlaceFilter
}

func New(index geo.Index, records geo.RecordStore, crawler geo.CrawlNotifier,
	engine *relevance.Engine, cache *travel.Cache, source travel.Source,
	delegate Delegate, c clock.Clock, cfg Config) *Aggregator {
	if c == nil {
		c = clock.New()
	}

	return &Aggregator{
		index:     index,
		records:   records,
		crawler:   crawler,
		relevance: engine,
		travel:    cache,
		source:    source,
		delegate:  delegate,
		clock:     c,
		cfg:       cfg,
		indexByID: map[string]int{},
	}
}

// State returns the phase of the most recent update cycle.
func (a *Aggregator) State() State {
	return State(a.state.Load())
}

func (a *Aggregator) setState(s State) {
	a.state.Store(int32(s))
}

// UpdatePlaces starts an update cycle for the location. It returns false
// without doing anything when a cycle is already in flight; at most one
// update runs per aggregator at a time.
func (a *Aggregator) UpdatePlaces(ctx context.Context, location schema.Location) bool {
	if !a.fetching.CompareAndSwap(false, true) {
		log.WithField("prefix", aggregatorLogPrefix).Debug("update already in flight, skip")
		return false
	}

	a.setState(StateFetching)

	// superseded or failed crawl notifies never block the pipeline
	go func() {
		if err := a.crawler.Put(context.WithoutCancel(ctx), location); err != nil {
			log.WithField("prefix", aggregatorLogPrefix).WithError(err).Error("fail to notify crawler")
		}
	}()

	go a.run(ctx, location)

	return true
}

// run is the stability retry loop. Iterations are strictly sequential; the
// single-flight guard keeps two loops from interleaving.
func (a *Aggregator) run(ctx context.Context, location schema.Location) {
	defer a.fetching.Store(false)

	lastCount := -1
	for attempt := 0; attempt <= a.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			a.clock.Sleep(a.cfg.TimeBetweenRetries)
		}

		places := a.fetchNearbyPlaces(ctx, location)
		count := len(places)

		if count > 0 && count == lastCount {
			a.finalize(ctx, location, places)
			a.setState(StateStable)
			return
		}

		if count > 0 {
			// keep the UI from sitting empty while the crawl settles
			a.setPlaces(places)
			a.delegate.PlacesUpdated(location, places, false)
		}

		lastCount = count
	}

	log.WithFields(log.Fields{
		"prefix":    aggregatorLogPrefix,
		"retries":   a.cfg.MaxRetries,
		"lastCount": lastCount,
	}).Warn("place count never stabilized")

	a.setState(StateTimedOut)
	a.delegate.UpdateTimedOut(location)
}

// fetchNearbyPlaces performs one poll: geo query then a detail fetch fan-out
// joined all-or-nothing. A geo query failure counts as zero results, which
// feeds the retry loop instead of an error path. Individual fetch failures
// drop that key only.
func (a *Aggregator) fetchNearbyPlaces(ctx context.Context, location schema.Location) []*schema.Place {
	entries, err := a.index.QueryKeysNear(ctx, location, a.cfg.RadiusKm)
	if err != nil {
		log.WithField("prefix", aggregatorLogPrefix).WithError(err).Warn("geo query failed, treating as zero results")
		return nil
	}

	results := make([]*schema.Place, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()

			place, err := a.records.FetchPlace(ctx, key)
			if err != nil {
				log.WithFields(log.Fields{
					"prefix": aggregatorLogPrefix,
					"key":    key,
				}).WithError(err).Debug("drop place detail fetch")
				return
			}
			results[i] = place
		}(i, entry.Key)
	}
	wg.Wait()

	places := make([]*schema.Place, 0, len(results))
	for _, p := range results {
		if p != nil {
			places = append(places, p)
		}
	}

	return places
}

// finalize runs once the count is stable: union the event-bearing places
// over the plain set, apply filters, sort and deliver the final list.
func (a *Aggregator) finalize(ctx context.Context, location schema.Location, places []*schema.Place) {
	eventPlaces := a.fetchEventPlaces(ctx, location)

	union := make([]*schema.Place, len(places))
	copy(union, places)
	position := make(map[string]int, len(union))
	for i, p := range union {
		position[p.ID] = i
	}

	// an event-bearing record replaces the plain record with the same id
	for _, ep := range eventPlaces {
		if i, ok := position[ep.ID]; ok {
			union[i] = ep
		} else {
			position[ep.ID] = len(union)
			union = append(union, ep)
		}
	}

	filtered := a.applyFilters(union)

	sort.SliceStable(filtered, func(i, j int) bool {
		return a.sortKeySeconds(location, filtered[i]) < a.sortKeySeconds(location, filtered[j])
	})

	a.setPlaces(filtered)
	a.delegate.PlacesUpdated(location, filtered, true)
}

// fetchEventPlaces loads the displayable events near the location and the
// place record for each, with the events attached. Fetch failures drop the
// affected place only; an event query failure yields no event places at all.
func (a *Aggregator) fetchEventPlaces(ctx context.Context, location schema.Location) []*schema.Place {
	events, err := a.records.NearbyEvents(ctx, location, a.cfg.RadiusKm)
	if err != nil {
		log.WithField("prefix", aggregatorLogPrefix).WithError(err).Error("fail to fetch nearby events")
		return nil
	}

	byPlace := map[string][]*schema.Event{}
	order := make([]string, 0, len(events))
	for _, ev := range events {
		if !a.relevance.ShouldShow(ev) {
			continue
		}
		if _, ok := byPlace[ev.PlaceID]; !ok {
			order = append(order, ev.PlaceID)
		}
		byPlace[ev.PlaceID] = append(byPlace[ev.PlaceID], ev)
	}

	results := make([]*schema.Place, len(order))

	var wg sync.WaitGroup
	for i, placeID := range order {
		wg.Add(1)
		go func(i int, placeID string) {
			defer wg.Done()

			place, err := a.records.FetchPlace(ctx, placeID)
			if err != nil {
				log.WithFields(log.Fields{
					"prefix": aggregatorLogPrefix,
					"key":    placeID,
				}).WithError(err).Debug("drop event place fetch")
				return
			}
			place.Events = byPlace[placeID]
			results[i] = place
		}(i, placeID)
	}
	wg.Wait()

	places := make([]*schema.Place, 0, len(results))
	for _, p := range results {
		if p != nil {
			places = append(places, p)
		}
	}

	return places
}

// applyFilters keeps a place when no filter group claims any of its category
// ids, or when at least one enabled group does. Groups are OR'd and match on
// category ids, never display names.
func (a *Aggregator) applyFilters(places []*schema.Place) []*schema.Place {
	a.mu.RLock()
	filters := a.filters
	a.mu.RUnlock()

	if len(filters) == 0 {
		return places
	}

	kept := make([]*schema.Place, 0, len(places))
	for _, place := range places {
		restricted := false
		enabled := false
		for _, f := range filters {
			if !f.Matches(place.CategoryIDs) {
				continue
			}
			restricted = true
			if f.Enabled {
				enabled = true
				break
			}
		}

		if !restricted || enabled {
			kept = append(kept, place)
		}
	}

	return kept
}

// sortKeySeconds orders places by computed travel time when one is cached
// and successful, falling back to straight-line distance expressed as an
// estimated walking duration.
func (a *Aggregator) sortKeySeconds(location schema.Location, place *schema.Place) float64 {
	if comp, ok := a.travel.Get(place.ID, location); ok && comp.Settled() {
		if times, err := comp.Result(); err == nil {
			if shortest := times.Shortest(); shortest != nil {
				return shortest.Seconds()
			}
		}
	}

	return location.DistanceTo(place.Location) / walkingSpeedMetersPerSecond
}

func (a *Aggregator) setPlaces(places []*schema.Place) {
	index := make(map[string]int, len(places))
	for i, p := range places {
		index[p.ID] = i
	}

	a.mu.Lock()
	a.places = places
	a.indexByID = index
	a.mu.Unlock()
}

// SetFilters replaces the active filter set. Filter values stay shared by
// reference with the caller; toggling Enabled takes effect on the next
// finalize.
func (a *Aggregator) SetFilters(filters []*schema.PlaceFilter) {
	a.mu.Lock()
	a.filters = filters
	a.mu.Unlock()
}

// Filters returns the shared filter set.
func (a *Aggregator) Filters() []*schema.PlaceFilter {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.filters
}

// Places returns a copy of the current display list.
func (a *Aggregator) Places() []*schema.Place {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]*schema.Place, len(a.places))
	copy(out, a.places)
	return out
}

// Place returns the place at a display index.
func (a *Aggregator) Place(index int) (*schema.Place, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if index < 0 || index >= len(a.places) {
		return nil, &IndexOutOfRangeError{Index: index, Count: len(a.places)}
	}

	return a.places[index], nil
}

// IndexOf returns the display index of a place by identity.
func (a *Aggregator) IndexOf(place *schema.Place) (int, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	i, ok := a.indexByID[place.ID]
	return i, ok
}

// NextPlace returns the place after the given one. When the place is no
// longer in the list the first element is returned as a recovery heuristic;
// PreviousPlace deliberately does not mirror this.
func (a *Aggregator) NextPlace(place *schema.Place) *schema.Place {
	a.mu.RLock()
	defer a.mu.RUnlock()

	i, ok := a.indexByID[place.ID]
	if !ok {
		if len(a.places) == 0 {
			return nil
		}
		return a.places[0]
	}

	if i+1 >= len(a.places) {
		return nil
	}
	return a.places[i+1]
}

// PreviousPlace returns the place before the given one, or nil when the
// place is unknown or first.
func (a *Aggregator) PreviousPlace(place *schema.Place) *schema.Place {
	a.mu.RLock()
	defer a.mu.RUnlock()

	i, ok := a.indexByID[place.ID]
	if !ok || i == 0 {
		return nil
	}
	return a.places[i-1]
}

// TravelTimes returns the pending-or-completed travel time computation for a
// place from the current location, starting one when the cache has no usable
// entry. Get-or-create is atomic in the cache, so concurrent callers share
// one computation. Superseded computations are abandoned, never cancelled.
func (a *Aggregator) TravelTimes(ctx context.Context, place *schema.Place, current schema.Location) *travel.Computation {
	comp, created := a.travel.GetOrCreate(place.ID, current)
	if created {
		go func() {
			times, err := a.source.TravelTimes(context.WithoutCancel(ctx), current, place.Location, a.cfg.TravelModes)
			if err != nil {
				log.WithFields(log.Fields{
					"prefix": aggregatorLogPrefix,
					"place":  place.ID,
				}).WithError(err).Warn("travel time computation failed")
			}
			comp.Resolve(times, err)
		}()
	}

	return comp
}
