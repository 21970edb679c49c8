package filters

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
)

const (
	// DefaultMaxPrice is the upper bound of every price value, in currency minor units.
	DefaultMaxPrice int64 = 5_000_000
	// DefaultPriceGap is the minimum distance the slider keeps between the two handles.
	DefaultPriceGap int64 = 10_000
)

// ErrNotNumeric is returned when a price keystroke cannot be read as an integer.
var ErrNotNumeric = errors.New("price input is not numeric")

// Limits bounds the price facet.
type Limits struct {
	MaxPrice int64
	Gap      int64
}

// DefaultLimits returns the marketplace defaults.
func DefaultLimits() Limits {
	return Limits{MaxPrice: DefaultMaxPrice, Gap: DefaultPriceGap}
}

// Validate reports whether the limits can hold a two-handle range.
func (l Limits) Validate() error {
	if l.MaxPrice <= 0 {
		return fmt.Errorf("max price must be positive, got %d", l.MaxPrice)
	}
	if l.Gap < 0 || l.Gap > l.MaxPrice {
		return fmt.Errorf("price gap must be within [0, %d], got %d", l.MaxPrice, l.Gap)
	}
	return nil
}

// Clamp pins v into [0, MaxPrice].
func (l Limits) Clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	if v > l.MaxPrice {
		return l.MaxPrice
	}
	return v
}

// PriceBound is one side of the local price range: either unset or a concrete amount.
// The zero value is unset.
type PriceBound struct {
	value int64
	set   bool
}

// Unset returns the bound a cleared field holds.
func Unset() PriceBound {
	return PriceBound{}
}

// At returns a concrete bound.
func At(v int64) PriceBound {
	return PriceBound{value: v, set: true}
}

// IsSet reports whether the bound holds a concrete amount.
func (b PriceBound) IsSet() bool {
	return b.set
}

// Value returns the concrete amount and whether one is present.
func (b PriceBound) Value() (int64, bool) {
	return b.value, b.set
}

// Or returns the concrete amount, or def when unset.
func (b PriceBound) Or(def int64) int64 {
	if !b.set {
		return def
	}
	return b.value
}

// String renders the bound for logs and test failures.
func (b PriceBound) String() string {
	if !b.set {
		return "unset"
	}
	return strconv.FormatInt(b.value, 10)
}

// PriceRange is the locally edited price pair.
type PriceRange struct {
	Min PriceBound
	Max PriceBound
}

// Side returns the bound for the requested side.
func (p PriceRange) Side(side enums.PriceSide) PriceBound {
	if side == enums.PriceSideMax {
		return p.Max
	}
	return p.Min
}

// With returns a copy of p with one side replaced.
func (p PriceRange) With(side enums.PriceSide, b PriceBound) PriceRange {
	if side == enums.PriceSideMax {
		p.Max = b
	} else {
		p.Min = b
	}
	return p
}

// Effective resolves unset sides for emission: min falls back to 0, max to MaxPrice.
func (p PriceRange) Effective(l Limits) Bounds {
	return Bounds{Min: p.Min.Or(0), Max: p.Max.Or(l.MaxPrice)}
}

// Bounds is a resolved, fully numeric price range.
type Bounds struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// parsePriceInput reads a raw field value. An empty string clears the field.
// Integers beyond the int64 range saturate so they clamp like any other
// out-of-range entry.
func parsePriceInput(raw string, l Limits) (PriceBound, error) {
	if raw == "" {
		return Unset(), nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return At(l.Clamp(v)), nil
		}
		return PriceBound{}, fmt.Errorf("%w: %q", ErrNotNumeric, raw)
	}
	return At(l.Clamp(v)), nil
}
