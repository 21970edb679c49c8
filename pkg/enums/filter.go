package enums

import "fmt"

// FilterFacet names one independently filterable set dimension.
type FilterFacet string

const (
	FilterFacetCategory   FilterFacet = "category"
	FilterFacetBrand      FilterFacet = "brand"
	FilterFacetEngineSize FilterFacet = "engine_size"
)

var validFilterFacets = []FilterFacet{
	FilterFacetCategory,
	FilterFacetBrand,
	FilterFacetEngineSize,
}

// String implements fmt.Stringer.
func (f FilterFacet) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FilterFacet.
func (f FilterFacet) IsValid() bool {
	for _, candidate := range validFilterFacets {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFilterFacet converts raw input into a FilterFacet.
func ParseFilterFacet(value string) (FilterFacet, error) {
	for _, candidate := range validFilterFacets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid filter facet %q", value)
}

// PriceSide selects one end of the price range.
type PriceSide string

const (
	PriceSideMin PriceSide = "min"
	PriceSideMax PriceSide = "max"
)

// String implements fmt.Stringer.
func (s PriceSide) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PriceSide.
func (s PriceSide) IsValid() bool {
	return s == PriceSideMin || s == PriceSideMax
}

// ParsePriceSide converts raw input into a PriceSide.
func ParsePriceSide(value string) (PriceSide, error) {
	switch PriceSide(value) {
	case PriceSideMin, PriceSideMax:
		return PriceSide(value), nil
	}
	return "", fmt.Errorf("invalid price side %q", value)
}

// PanelCloseReason records which exit path closed the filter panel.
type PanelCloseReason string

const (
	PanelCloseButton  PanelCloseReason = "close_button"
	PanelCloseOverlay PanelCloseReason = "overlay"
	PanelCloseReset   PanelCloseReason = "reset"
	PanelCloseUnmount PanelCloseReason = "unmount"
)

var validPanelCloseReasons = []PanelCloseReason{
	PanelCloseButton,
	PanelCloseOverlay,
	PanelCloseReset,
	PanelCloseUnmount,
}

// String implements fmt.Stringer.
func (r PanelCloseReason) String() string {
	return string(r)
}

// IsValid reports whether the value is a known PanelCloseReason.
func (r PanelCloseReason) IsValid() bool {
	for _, candidate := range validPanelCloseReasons {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParsePanelCloseReason converts raw input into a PanelCloseReason.
func ParsePanelCloseReason(value string) (PanelCloseReason, error) {
	for _, candidate := range validPanelCloseReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid panel close reason %q", value)
}

// EmissionTrigger names the discrete interaction that produced an emission.
type EmissionTrigger string

const (
	EmissionTriggerToggle       EmissionTrigger = "toggle"
	EmissionTriggerPriceInput   EmissionTrigger = "price_input"
	EmissionTriggerSliderCommit EmissionTrigger = "slider_commit"
	EmissionTriggerReset        EmissionTrigger = "reset"
)

// String implements fmt.Stringer.
func (t EmissionTrigger) String() string {
	return string(t)
}
