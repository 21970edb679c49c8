package enums

import "fmt"

// ListingCategory is the riding class a motorcycle listing is filed under.
type ListingCategory string

const (
	ListingCategorySupersport ListingCategory = "Supersport"
	ListingCategoryHyperNaked ListingCategory = "Hyper Naked"
	ListingCategoryAdventure  ListingCategory = "Adventure"
	ListingCategoryCafeRacer  ListingCategory = "Cafe Racer"
)

var validListingCategories = []ListingCategory{
	ListingCategorySupersport,
	ListingCategoryHyperNaked,
	ListingCategoryAdventure,
	ListingCategoryCafeRacer,
}

// String implements fmt.Stringer.
func (c ListingCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ListingCategory.
func (c ListingCategory) IsValid() bool {
	for _, candidate := range validListingCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseListingCategory converts raw input into a ListingCategory.
func ParseListingCategory(value string) (ListingCategory, error) {
	for _, candidate := range validListingCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing category %q", value)
}

// ListingCategories returns the categories in display order.
func ListingCategories() []ListingCategory {
	out := make([]ListingCategory, len(validListingCategories))
	copy(out, validListingCategories)
	return out
}

// Brand is the manufacturer of a listed motorcycle.
type Brand string

const (
	BrandDucati   Brand = "Ducati"
	BrandYamaha   Brand = "Yamaha"
	BrandBMW      Brand = "BMW"
	BrandKawasaki Brand = "Kawasaki"
	BrandHonda    Brand = "Honda"
	BrandSuzuki   Brand = "Suzuki"
	BrandAprilia  Brand = "Aprilia"
	BrandKTM      Brand = "KTM"
)

var validBrands = []Brand{
	BrandDucati,
	BrandYamaha,
	BrandBMW,
	BrandKawasaki,
	BrandHonda,
	BrandSuzuki,
	BrandAprilia,
	BrandKTM,
}

// String implements fmt.Stringer.
func (b Brand) String() string {
	return string(b)
}

// IsValid reports whether the value is a known Brand.
func (b Brand) IsValid() bool {
	for _, candidate := range validBrands {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBrand converts raw input into a Brand.
func ParseBrand(value string) (Brand, error) {
	for _, candidate := range validBrands {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid brand %q", value)
}

// Brands returns the brands in display order.
func Brands() []Brand {
	out := make([]Brand, len(validBrands))
	copy(out, validBrands)
	return out
}

// EngineSize is a displacement bucket.
type EngineSize string

const (
	EngineSizeUnder600    EngineSize = "lt600"
	EngineSize600To999    EngineSize = "600-999"
	EngineSize1000AndOver EngineSize = "1000plus"
)

var validEngineSizes = []EngineSize{
	EngineSizeUnder600,
	EngineSize600To999,
	EngineSize1000AndOver,
}

var engineSizeLabels = map[EngineSize]string{
	EngineSizeUnder600:    "< 600cc",
	EngineSize600To999:    "600cc - 999cc",
	EngineSize1000AndOver: "1000cc+",
}

// String implements fmt.Stringer.
func (e EngineSize) String() string {
	return string(e)
}

// Label returns the human readable bucket name.
func (e EngineSize) Label() string {
	if label, ok := engineSizeLabels[e]; ok {
		return label
	}
	return string(e)
}

// IsValid reports whether the value is a known EngineSize.
func (e EngineSize) IsValid() bool {
	for _, candidate := range validEngineSizes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEngineSize converts raw input into an EngineSize.
func ParseEngineSize(value string) (EngineSize, error) {
	for _, candidate := range validEngineSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid engine size %q", value)
}

// EngineSizes returns the buckets in display order.
func EngineSizes() []EngineSize {
	out := make([]EngineSize, len(validEngineSizes))
	copy(out, validEngineSizes)
	return out
}
