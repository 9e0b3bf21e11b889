package schema

import "fmt"

var (
	ErrMissingRating = fmt.Errorf("primary provider rating not present")
)

// Provider source names in precedence order. The first provider found on a
// place document following this order becomes the primary provider.
const (
	ProviderYelp        = "yelp"
	ProviderTripAdvisor = "tripadvisor"
	ProviderWikipedia   = "wikipedia"
)

// ProviderPrecedence lists provider sources from highest to lowest priority.
var ProviderPrecedence = []string{ProviderYelp, ProviderTripAdvisor, ProviderWikipedia}

// ProviderDocument is the stored per-source review record embedded in a
// place document.
type ProviderDocument struct {
	Rating           *float64             `bson:"rating,omitempty" json:"rating,omitempty"`
	TotalReviewCount int                  `bson:"total_review_count" json:"total_review_count"`
	Description      string               `bson:"description" json:"description"`
	URL              string               `bson:"url" json:"url"`
	PhotoURLs        []string             `bson:"photo_urls" json:"photo_urls"`
	CategoryNames    []string             `bson:"category_names" json:"category_names"`
	CategoryIDs      []string             `bson:"category_ids" json:"category_ids"`
	Hours            map[string][][]string `bson:"hours,omitempty" json:"hours,omitempty"`
}

// ReviewProvider is one rating/review source attached to a place.
type ReviewProvider struct {
	Source           string
	Rating           *float64
	TotalReviewCount int
	Description      string
	URL              string
	PhotoURLs        []string
	CategoryNames    []string
	CategoryIDs      []string
	Hours            *OpenHours
}

// ReviewProviderFromDocument converts a stored provider record. The hours
// sub-document, when present, must parse; an absent one is valid.
func ReviewProviderFromDocument(source string, doc ProviderDocument) (*ReviewProvider, error) {
	hours, err := OpenHoursFromDocument(doc.Hours)
	if err != nil {
		return nil, err
	}

	return &ReviewProvider{
		Source:           source,
		Rating:           doc.Rating,
		TotalReviewCount: doc.TotalReviewCount,
		Description:      doc.Description,
		URL:              doc.URL,
		PhotoURLs:        doc.PhotoURLs,
		CategoryNames:    doc.CategoryNames,
		CategoryIDs:      doc.CategoryIDs,
		Hours:            hours,
	}, nil
}
