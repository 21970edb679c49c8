package filters

import "github.com/angelmondragon/ridefinderz-filters/pkg/enums"

// SyncResult describes what a reconciliation changed.
type SyncResult struct {
	// Replaced lists the set facets that were overwritten.
	Replaced []enums.FilterFacet
	// PriceApplied is true when the incoming range replaced the local one.
	PriceApplied bool
	// PriceKept is true when an incoming range matched local state and was dropped.
	PriceKept bool
	// PriceRejected is true when the incoming range was inverted and ignored.
	PriceRejected bool
}

// Reconcile merges an external snapshot into local state and returns the result.
// Set facets present in incoming are replaced wholesale. The price range is only
// replaced when it differs from the local effective pair, the same values the
// widget emits, so a cleared field stays cleared when its emission echoes back.
// An inverted incoming range is malformed and leaves the price untouched.
// Reconcile is pure and idempotent.
func Reconcile(local Snapshot, incoming ActiveFilters, l Limits) (Snapshot, SyncResult) {
	next := local.Clone()
	var res SyncResult

	if incoming.Categories != nil {
		next.Categories = validSet(incoming.Categories, enums.ListingCategory.IsValid)
		res.Replaced = append(res.Replaced, enums.FilterFacetCategory)
	}
	if incoming.Brands != nil {
		next.Brands = validSet(incoming.Brands, enums.Brand.IsValid)
		res.Replaced = append(res.Replaced, enums.FilterFacetBrand)
	}
	if incoming.EngineSizes != nil {
		next.EngineSizes = validSet(incoming.EngineSizes, enums.EngineSize.IsValid)
		res.Replaced = append(res.Replaced, enums.FilterFacetEngineSize)
	}

	if incoming.PriceRange != nil {
		in := Bounds{Min: l.Clamp(incoming.PriceRange.Min), Max: l.Clamp(incoming.PriceRange.Max)}
		switch {
		case in.Min > in.Max:
			res.PriceRejected = true
		case in == local.Price.Effective(l):
			res.PriceKept = true
		default:
			next.Price = PriceRange{Min: At(in.Min), Max: At(in.Max)}
			res.PriceApplied = true
		}
	}
	return next, res
}

// validSet copies in, dropping unknown labels and duplicates while keeping order.
func validSet[T comparable](in []T, valid func(T) bool) []T {
	out := make([]T, 0, len(in))
	seen := make(map[T]struct{}, len(in))
	for _, v := range in {
		if !valid(v) {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Apply reconciles incoming into the store.
func (s *Store) Apply(incoming ActiveFilters) SyncResult {
	next, res := Reconcile(s.snap, incoming, s.limits)
	s.replace(next)
	return res
}
