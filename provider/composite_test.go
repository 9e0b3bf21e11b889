package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mozilla-mobile/prox-sub000/schema"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestMergeRatingPrecedence(t *testing.T) {
	providers := []*schema.ReviewProvider{
		{Source: schema.ProviderYelp, TotalReviewCount: 12},
		{Source: schema.ProviderTripAdvisor, Rating: floatPtr(4.2), TotalReviewCount: 30},
		{Source: schema.ProviderWikipedia, Rating: floatPtr(1.0), TotalReviewCount: 0},
	}

	merged := Merge(providers)

	// only B carries a rating, so B's rating wins even though A outranks it
	assert.NotNil(t, merged.Rating)
	assert.Equal(t, 4.2, *merged.Rating)

	// review counts are summed across every provider, zeros included
	assert.Equal(t, 42, merged.TotalReviewCount)
}

func TestMergeScalarFirstWins(t *testing.T) {
	providers := []*schema.ReviewProvider{
		{Source: schema.ProviderYelp, Rating: floatPtr(3.5), URL: "https://yelp.example/p"},
		{Source: schema.ProviderTripAdvisor, Rating: floatPtr(4.9), URL: "https://ta.example/p", Description: "a nice place"},
	}

	merged := Merge(providers)

	assert.Equal(t, 3.5, *merged.Rating)
	assert.Equal(t, "https://yelp.example/p", merged.URL)
	assert.Equal(t, "a nice place", merged.Description)
}

func TestMergeListsTakenWholesale(t *testing.T) {
	providers := []*schema.ReviewProvider{
		{Source: schema.ProviderYelp, Rating: floatPtr(4.0)},
		{
			Source:        schema.ProviderTripAdvisor,
			PhotoURLs:     []string{"https://ta.example/1.jpg", "https://ta.example/2.jpg"},
			CategoryNames: []string{"Coffee"},
			CategoryIDs:   []string{"coffee"},
		},
		{
			Source:        schema.ProviderWikipedia,
			PhotoURLs:     []string{"https://wiki.example/1.jpg"},
			CategoryNames: []string{"Landmark"},
			CategoryIDs:   []string{"landmark"},
		},
	}

	merged := Merge(providers)

	// the first non-empty list wins wholesale, later lists are ignored
	assert.Equal(t, []string{"https://ta.example/1.jpg", "https://ta.example/2.jpg"}, merged.PhotoURLs)
	assert.Equal(t, []string{"Coffee"}, merged.CategoryNames)
	assert.Equal(t, []string{"coffee"}, merged.CategoryIDs)
}

func TestMergeEmpty(t *testing.T) {
	merged := Merge(nil)

	assert.Nil(t, merged.Rating)
	assert.Equal(t, 0, merged.TotalReviewCount)
	assert.Empty(t, merged.PhotoURLs)
}
