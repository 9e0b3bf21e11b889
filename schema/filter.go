package schema

// PlaceFilter is one toggleable category group. Filter values are shared by
// reference between the filter surface and the aggregator; only Enabled is
// meant to change after construction.
type PlaceFilter struct {
	Label       string   `json:"label"`
	Enabled     bool     `json:"enabled"`
	CategoryIDs []string `json:"category_ids"`
}

// Matches reports whether any of the given category ids belongs to this
// filter group. Matching is by category id, never by display name.
func (f *PlaceFilter) Matches(categoryIDs []string) bool {
	for _, id := range categoryIDs {
		for _, filterID := range f.CategoryIDs {
			if id == filterID {
				return true
			}
		}
	}
	return false
}
