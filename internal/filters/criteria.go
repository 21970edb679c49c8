package filters

import (
	"slices"

	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
)

// Criteria is the canonical filter shape handed to the listing consumer.
type Criteria struct {
	Categories  []enums.ListingCategory `json:"categories"`
	Brands      []enums.Brand           `json:"brands"`
	PriceRange  Bounds                  `json:"priceRange"`
	EngineSizes []enums.EngineSize      `json:"engineSizes"`
}

// ActiveFilters is the externally owned snapshot. A nil field means the
// facet was not specified and is left alone by Reconcile.
type ActiveFilters struct {
	Categories  []enums.ListingCategory
	Brands      []enums.Brand
	PriceRange  *Bounds
	EngineSizes []enums.EngineSize
}

// IsEmpty reports whether no facet is specified.
func (a ActiveFilters) IsEmpty() bool {
	return a.Categories == nil && a.Brands == nil && a.PriceRange == nil && a.EngineSizes == nil
}

// Snapshot is the widget's local state for all four facets.
type Snapshot struct {
	Categories  []enums.ListingCategory
	Brands      []enums.Brand
	EngineSizes []enums.EngineSize
	Price       PriceRange
}

// DefaultSnapshot returns empty sets and a fully unset price range.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Categories:  []enums.ListingCategory{},
		Brands:      []enums.Brand{},
		EngineSizes: []enums.EngineSize{},
	}
}

// Clone returns a deep copy so callers never share backing arrays with the store.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Categories:  cloneSet(s.Categories),
		Brands:      cloneSet(s.Brands),
		EngineSizes: cloneSet(s.EngineSizes),
		Price:       s.Price,
	}
}

// Equal reports whether two snapshots hold the same selections in the same order
// and the same price representation, unset markers included.
func (s Snapshot) Equal(other Snapshot) bool {
	return slices.Equal(s.Categories, other.Categories) &&
		slices.Equal(s.Brands, other.Brands) &&
		slices.Equal(s.EngineSizes, other.EngineSizes) &&
		s.Price == other.Price
}

func cloneSet[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// toggle returns a new set with v removed when present, appended otherwise.
func toggle[T comparable](set []T, v T) []T {
	if slices.Contains(set, v) {
		out := make([]T, 0, len(set))
		for _, item := range set {
			if item != v {
				out = append(out, item)
			}
		}
		return out
	}
	out := make([]T, len(set), len(set)+1)
	copy(out, set)
	return append(out, v)
}
