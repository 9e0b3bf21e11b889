package schema

import (
	"fmt"
)

const (
	PlaceCollection = "places"
	EventCollection = "events"
)

var (
	ErrMissingID          = fmt.Errorf("document has no id")
	ErrMissingName        = fmt.Errorf("document has no name")
	ErrMissingCoordinates = fmt.Errorf("document has no coordinates")
	ErrMissingProvider    = fmt.Errorf("document has no review provider")
	ErrNoPhotos           = fmt.Errorf("no photo urls resolved")
	ErrCategoryMismatch   = fmt.Errorf("category names and ids length mismatch")
)

// PlaceDocument is the raw stored form of a place, written by the crawler.
type PlaceDocument struct {
	ID            string                      `bson:"_id" json:"id"`
	Name          string                      `bson:"name" json:"name"`
	Location      *GeoJSON                    `bson:"location" json:"location"`
	Address       string                      `bson:"address" json:"address"`
	URL           string                      `bson:"url" json:"url"`
	CategoryNames []string                    `bson:"category_names" json:"category_names"`
	CategoryIDs   []string                    `bson:"category_ids" json:"category_ids"`
	Providers     map[string]ProviderDocument `bson:"providers" json:"providers"`
	UpdatedAt     int64                       `bson:"updated_at" json:"-"`
}

// Place is the canonical merged record shown to the user. Identity is the id
// alone; two Place values with the same id are the same place regardless of
// any other field.
type Place struct {
	ID            string
	Name          string
	Location      Location
	Address       string
	URL           string
	CategoryNames []string
	CategoryIDs   []string
	PhotoURLs     []string
	Hours         *OpenHours

	// Providers is ordered by precedence; the first entry is the primary
	// provider and always carries a rating.
	Providers []*ReviewProvider

	// Events holds the events currently associated with this place. The
	// aggregator owns this list; an event belongs to its place by id only.
	Events []*Event
}

// PlaceFromDocument builds a Place from its raw document. It fails on any
// missing mandatory field, a present-but-malformed hours sub-document, a
// category name/id length mismatch, a primary provider without a rating, or
// zero resolved photo URLs. Callers drop failed records, they never abort a
// batch over one.
func PlaceFromDocument(doc PlaceDocument) (*Place, error) {
	if doc.ID == "" {
		return nil, ErrMissingID
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("%w: place %s", ErrMissingName, doc.ID)
	}
	if doc.Location == nil || len(doc.Location.Coordinates) != 2 {
		return nil, fmt.Errorf("%w: place %s", ErrMissingCoordinates, doc.ID)
	}
	if len(doc.CategoryNames) != len(doc.CategoryIDs) {
		return nil, fmt.Errorf("%w: place %s has %d names and %d ids",
			ErrCategoryMismatch, doc.ID, len(doc.CategoryNames), len(doc.CategoryIDs))
	}

	providers := make([]*ReviewProvider, 0, len(doc.Providers))
	for _, source := range ProviderPrecedence {
		record, ok := doc.Providers[source]
		if !ok {
			continue
		}

		provider, err := ReviewProviderFromDocument(source, record)
		if err != nil {
			return nil, fmt.Errorf("place %s provider %s: %w", doc.ID, source, err)
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: place %s", ErrMissingProvider, doc.ID)
	}
	if providers[0].Rating == nil {
		return nil, fmt.Errorf("%w: place %s provider %s", ErrMissingRating, doc.ID, providers[0].Source)
	}

	photos := resolvePhotoURLs(providers)
	if len(photos) == 0 {
		return nil, fmt.Errorf("%w: place %s", ErrNoPhotos, doc.ID)
	}

	place := &Place{
		ID:            doc.ID,
		Name:          doc.Name,
		Location:      doc.Location.Location(),
		Address:       doc.Address,
		URL:           doc.URL,
		CategoryNames: doc.CategoryNames,
		CategoryIDs:   doc.CategoryIDs,
		PhotoURLs:     photos,
	}

	for _, provider := range providers {
		if provider.Hours != nil {
			place.Hours = provider.Hours
			break
		}
	}

	place.Providers = providers

	return place, nil
}

// resolvePhotoURLs takes the first non-empty photo list across providers in
// precedence order.
func resolvePhotoURLs(providers []*ReviewProvider) []string {
	for _, provider := range providers {
		if len(provider.PhotoURLs) > 0 {
			return provider.PhotoURLs
		}
	}
	return nil
}
