// Package geo declares the contracts the aggregation pipeline consumes: a
// radius-indexed key lookup, a fetch-by-key record store and the crawl
// notify hook. Implementations live in store/ and external/.
package geo

import (
	"context"
	"fmt"

	"github.com/mozilla-mobile/prox-sub000/schema"
)

var (
	ErrNotFound        = fmt.Errorf("record is not found")
	ErrInvalidDocument = fmt.Errorf("record fails validation")
)

// IndexEntry is one key the geo index reports within a query radius.
type IndexEntry struct {
	Key      string
	Location schema.Location
}

// Index finds keys near a point. A query completes once the index has
// delivered all currently-known matches; new keys written by the crawler
// afterwards show up on the next poll, the pipeline never subscribes to
// live updates.
type Index interface {
	QueryKeysNear(ctx context.Context, center schema.Location, radiusKm float64) ([]IndexEntry, error)
}

// RecordStore fetches full records by key. FetchPlace returns ErrNotFound
// for a missing key and ErrInvalidDocument (wrapped) for a record that fails
// validation; both are per-item drops, never batch failures.
type RecordStore interface {
	FetchPlace(ctx context.Context, key string) (*schema.Place, error)
	NearbyEvents(ctx context.Context, center schema.Location, radiusKm float64) ([]*schema.Event, error)
}

// CrawlNotifier tells the crawler to (re)visit an area. Callers treat it as
// fire-and-forget; a failure is logged, never blocks the pipeline.
type CrawlNotifier interface {
	Put(ctx context.Context, location schema.Location) error
}
