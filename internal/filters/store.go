package filters

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
)

// Store owns the local filter snapshot. Every mutation replaces the affected
// slice rather than editing it, so snapshots handed out earlier stay intact.
type Store struct {
	limits Limits
	snap   Snapshot
}

// NewStore returns a store holding the default snapshot.
func NewStore(limits Limits) *Store {
	return &Store{limits: limits, snap: DefaultSnapshot()}
}

// Limits returns the price limits the store clamps against.
func (s *Store) Limits() Limits {
	return s.limits
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	return s.snap.Clone()
}

// Price returns the current price pair.
func (s *Store) Price() PriceRange {
	return s.snap.Price
}

// Toggle flips value in the named facet and returns the new set as labels.
func (s *Store) Toggle(facet enums.FilterFacet, value string) ([]string, error) {
	switch facet {
	case enums.FilterFacetCategory:
		c, err := enums.ParseListingCategory(value)
		if err != nil {
			return nil, err
		}
		s.snap.Categories = toggle(s.snap.Categories, c)
		return labels(s.snap.Categories), nil
	case enums.FilterFacetBrand:
		b, err := enums.ParseBrand(value)
		if err != nil {
			return nil, err
		}
		s.snap.Brands = toggle(s.snap.Brands, b)
		return labels(s.snap.Brands), nil
	case enums.FilterFacetEngineSize:
		e, err := enums.ParseEngineSize(value)
		if err != nil {
			return nil, err
		}
		s.snap.EngineSizes = toggle(s.snap.EngineSizes, e)
		return labels(s.snap.EngineSizes), nil
	}
	return nil, fmt.Errorf("invalid filter facet %q", facet)
}

// SetPriceField applies a keystroke to one price field. An empty value clears
// the field; numbers are clamped into [0, MaxPrice]. Anything else returns
// ErrNotNumeric and leaves the state untouched.
func (s *Store) SetPriceField(side enums.PriceSide, raw string) (PriceBound, error) {
	if !side.IsValid() {
		return PriceBound{}, fmt.Errorf("invalid price side %q", side)
	}
	bound, err := parsePriceInput(strings.TrimSpace(raw), s.limits)
	if err != nil {
		return PriceBound{}, err
	}
	s.snap.Price = s.snap.Price.With(side, bound)
	return bound, nil
}

// setPrice replaces the whole price pair. Used by the slider and reconciler.
func (s *Store) setPrice(p PriceRange) {
	s.snap.Price = p
}

// replace swaps in a reconciled snapshot.
func (s *Store) replace(next Snapshot) {
	s.snap = next.Clone()
}

// Reset restores every facet to its default in one step.
func (s *Store) Reset() {
	s.snap = DefaultSnapshot()
}

func labels[T ~string](set []T) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = string(v)
	}
	return out
}
