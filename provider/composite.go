// Package provider merges the per-source review records of a place into one
// composite view.
package provider

import (
	"github.com/mozilla-mobile/prox-sub000/schema"
)

// Composite is the merged view over an ordered provider list. Scalar fields
// take the first non-absent value in list order; TotalReviewCount is the sum
// across every provider. Photo and category lists are taken wholesale from
// the first provider with a non-empty list, which is a known simplification
// rather than a true multi-source merge.
type Composite struct {
	Rating           *float64
	TotalReviewCount int
	Description      string
	URL              string
	PhotoURLs        []string
	CategoryNames    []string
	CategoryIDs      []string
	Hours            *schema.OpenHours
}

// Merge composes the providers in priority order (list order = precedence).
func Merge(providers []*schema.ReviewProvider) Composite {
	var merged Composite

	for _, p := range providers {
		if merged.Rating == nil && p.Rating != nil {
			merged.Rating = p.Rating
		}
		if merged.Description == "" {
			merged.Description = p.Description
		}
		if merged.URL == "" {
			merged.URL = p.URL
		}
		if merged.Hours == nil {
			merged.Hours = p.Hours
		}
		if len(merged.PhotoURLs) == 0 {
			merged.PhotoURLs = p.PhotoURLs
		}
		if len(merged.CategoryNames) == 0 && len(merged.CategoryIDs) == 0 {
			merged.CategoryNames = p.CategoryNames
			merged.CategoryIDs = p.CategoryIDs
		}

		// review counts are additive across sources, unlike every other field
		merged.TotalReviewCount += p.TotalReviewCount
	}

	return merged
}
