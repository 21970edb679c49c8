package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
)

func TestStoreToggleIsInvolution(t *testing.T) {
	cases := map[enums.FilterFacet][]string{
		enums.FilterFacetCategory:   {"Supersport", "Hyper Naked", "Adventure", "Cafe Racer"},
		enums.FilterFacetBrand:      {"Ducati", "Yamaha", "BMW", "Kawasaki", "Honda", "Suzuki", "Aprilia", "KTM"},
		enums.FilterFacetEngineSize: {"lt600", "600-999", "1000plus"},
	}
	for facet, values := range cases {
		for _, value := range values {
			s := NewStore(DefaultLimits())
			_, err := s.Toggle(facet, values[0])
			require.NoError(t, err)
			before := s.Snapshot()

			_, err = s.Toggle(facet, value)
			require.NoError(t, err)
			_, err = s.Toggle(facet, value)
			require.NoError(t, err)

			assert.Truef(t, before.Equal(s.Snapshot()), "facet %s value %s: double toggle changed state", facet, value)
		}
	}
}

func TestStoreToggleReturnsNewSet(t *testing.T) {
	s := NewStore(DefaultLimits())
	first, err := s.Toggle(enums.FilterFacetBrand, "Ducati")
	require.NoError(t, err)
	held := s.Snapshot().Brands

	second, err := s.Toggle(enums.FilterFacetBrand, "KTM")
	require.NoError(t, err)

	assert.Equal(t, []string{"Ducati"}, first)
	assert.Equal(t, []string{"Ducati", "KTM"}, second)
	assert.Equal(t, []enums.Brand{enums.BrandDucati}, held)
}

func TestStoreToggleRejectsUnknownValue(t *testing.T) {
	s := NewStore(DefaultLimits())
	_, err := s.Toggle(enums.FilterFacetCategory, "Scooter")
	require.Error(t, err)
	_, err = s.Toggle(enums.FilterFacet("colour"), "red")
	require.Error(t, err)
	assert.True(t, s.Snapshot().Equal(DefaultSnapshot()))
}

func TestStoreSetPriceField(t *testing.T) {
	limits := DefaultLimits()

	t.Run("empty clears", func(t *testing.T) {
		s := NewStore(limits)
		_, err := s.SetPriceField(enums.PriceSideMin, "2000")
		require.NoError(t, err)
		b, err := s.SetPriceField(enums.PriceSideMin, "")
		require.NoError(t, err)
		assert.False(t, b.IsSet())
		assert.False(t, s.Price().Min.IsSet())
	})

	t.Run("clamps into range", func(t *testing.T) {
		s := NewStore(limits)
		b, err := s.SetPriceField(enums.PriceSideMin, "-40")
		require.NoError(t, err)
		assert.Equal(t, At(0), b)

		b, err = s.SetPriceField(enums.PriceSideMax, "9000000")
		require.NoError(t, err)
		assert.Equal(t, At(limits.MaxPrice), b)

		b, err = s.SetPriceField(enums.PriceSideMax, "123456789012345678901234567890")
		require.NoError(t, err)
		assert.Equal(t, At(limits.MaxPrice), b)
	})

	t.Run("non numeric is rejected without change", func(t *testing.T) {
		s := NewStore(limits)
		_, err := s.SetPriceField(enums.PriceSideMax, "750000")
		require.NoError(t, err)
		before := s.Snapshot()

		for _, raw := range []string{"abc", "12abc", "1e5", "5.5"} {
			_, err := s.SetPriceField(enums.PriceSideMax, raw)
			require.ErrorIs(t, err, ErrNotNumeric, raw)
		}
		assert.True(t, before.Equal(s.Snapshot()))
	})

	t.Run("typing does not enforce the slider gap", func(t *testing.T) {
		s := NewStore(limits)
		_, err := s.SetPriceField(enums.PriceSideMax, "50000")
		require.NoError(t, err)
		_, err = s.SetPriceField(enums.PriceSideMin, "60000")
		require.NoError(t, err)
		assert.Equal(t, PriceRange{Min: At(60000), Max: At(50000)}, s.Price())
	})
}

func TestStoreResetRestoresDefaults(t *testing.T) {
	s := NewStore(DefaultLimits())
	_, _ = s.Toggle(enums.FilterFacetCategory, "Adventure")
	_, _ = s.Toggle(enums.FilterFacetEngineSize, "1000plus")
	_, _ = s.SetPriceField(enums.PriceSideMin, "100000")

	s.Reset()

	assert.True(t, s.Snapshot().Equal(DefaultSnapshot()))
}

func TestPriceBound(t *testing.T) {
	assert.Equal(t, "unset", Unset().String())
	assert.Equal(t, int64(7), Unset().Or(7))
	assert.Equal(t, int64(3), At(3).Or(7))
	assert.Equal(t, "3", At(3).String())
	assert.NotEqual(t, Unset(), At(0))
}

func TestLimitsValidate(t *testing.T) {
	require.NoError(t, DefaultLimits().Validate())
	require.Error(t, Limits{MaxPrice: 0, Gap: 0}.Validate())
	require.Error(t, Limits{MaxPrice: 100, Gap: 101}.Validate())
	require.Error(t, Limits{MaxPrice: 100, Gap: -1}.Validate())
}
