// Package querystate maps the listing page URL query to filter snapshots and
// back. The URL is the canonical owner of the filter state: every decoded
// query describes all four facets, so a key missing from the query means an
// empty selection rather than "leave alone".
package querystate

import (
	"errors"
	"net/url"

	"github.com/angelmondragon/ridefinderz-filters/internal/filters"
	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
	"github.com/gorilla/schema"
)

const (
	KeyCategory = "category"
	KeyBrand    = "brand"
	KeyEngine   = "engine"
	KeyPriceMin = "price_min"
	KeyPriceMax = "price_max"
)

type query struct {
	Categories  []string `schema:"category,omitempty"`
	Brands      []string `schema:"brand,omitempty"`
	EngineSizes []string `schema:"engine,omitempty"`
	PriceMin    *int64   `schema:"price_min,omitempty"`
	PriceMax    *int64   `schema:"price_max,omitempty"`
}

var (
	decoder = schema.NewDecoder()
	encoder = schema.NewEncoder()
)

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Decode reads a query into an external snapshot. A facet whose values cannot
// be understood (an unknown label, a non-integer price) is reported as absent so
// the widget keeps its local value for it.
func Decode(values url.Values, l filters.Limits) filters.ActiveFilters {
	var q query
	bad := map[string]bool{}
	if err := decoder.Decode(&q, values); err != nil {
		var multi schema.MultiError
		if !errors.As(err, &multi) {
			return filters.ActiveFilters{}
		}
		for key := range multi {
			bad[key] = true
		}
	}

	var out filters.ActiveFilters
	if !bad[KeyCategory] {
		out.Categories = parseAll(q.Categories, enums.ParseListingCategory)
	}
	if !bad[KeyBrand] {
		out.Brands = parseAll(q.Brands, enums.ParseBrand)
	}
	if !bad[KeyEngine] {
		out.EngineSizes = parseAll(q.EngineSizes, enums.ParseEngineSize)
	}
	if !bad[KeyPriceMin] && !bad[KeyPriceMax] {
		b := filters.Bounds{Min: 0, Max: l.MaxPrice}
		if q.PriceMin != nil {
			b.Min = *q.PriceMin
		}
		if q.PriceMax != nil {
			b.Max = *q.PriceMax
		}
		out.PriceRange = &b
	}
	return out
}

// Parse decodes a raw query string. An unparseable string yields an empty
// snapshot with every facet absent.
func Parse(raw string, l filters.Limits) filters.ActiveFilters {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return filters.ActiveFilters{}
	}
	return Decode(values, l)
}

// Encode writes criteria as a query. Empty sets and price bounds at their
// defaults are omitted, so default criteria encode to an empty query.
func Encode(c filters.Criteria, l filters.Limits) url.Values {
	q := query{
		Categories:  labels(c.Categories),
		Brands:      labels(c.Brands),
		EngineSizes: labels(c.EngineSizes),
	}
	if c.PriceRange.Min != 0 {
		v := c.PriceRange.Min
		q.PriceMin = &v
	}
	if c.PriceRange.Max != l.MaxPrice {
		v := c.PriceRange.Max
		q.PriceMax = &v
	}
	values := url.Values{}
	if err := encoder.Encode(q, values); err != nil {
		// query only holds strings and ints, which the encoder always supports
		panic(err)
	}
	return values
}

// parseAll returns nil when any value is unknown, marking the facet absent.
func parseAll[T any](raw []string, parse func(string) (T, error)) []T {
	out := make([]T, 0, len(raw))
	for _, v := range raw {
		parsed, err := parse(v)
		if err != nil {
			return nil
		}
		out = append(out, parsed)
	}
	return out
}

func labels[T ~string](set []T) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = string(v)
	}
	return out
}
