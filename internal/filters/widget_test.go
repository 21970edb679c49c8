package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
)

func newTestWidget(t *testing.T) (*Widget, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewWidget(DefaultLimits(), rec.onChange, nil), rec
}

func TestWidgetToggleEmitsEachTime(t *testing.T) {
	w, rec := newTestWidget(t)

	require.NoError(t, w.Toggle(enums.FilterFacetCategory, "Supersport"))
	require.NoError(t, w.Toggle(enums.FilterFacetBrand, "Ducati"))
	require.NoError(t, w.Toggle(enums.FilterFacetCategory, "Supersport"))

	require.Len(t, rec.emitted, 3)
	assert.Equal(t, []enums.ListingCategory{enums.ListingCategorySupersport}, rec.emitted[0].Categories)
	assert.Equal(t, []enums.Brand{enums.BrandDucati}, rec.emitted[1].Brands)
	assert.Empty(t, rec.emitted[2].Categories)
	assert.Equal(t, Bounds{Min: 0, Max: 5_000_000}, rec.emitted[2].PriceRange)
}

func TestWidgetToggleUnknownValueDoesNotEmit(t *testing.T) {
	w, rec := newTestWidget(t)
	require.Error(t, w.Toggle(enums.FilterFacetEngineSize, "2000plus"))
	assert.Empty(t, rec.emitted)
}

func TestWidgetTypedMinAfterClearing(t *testing.T) {
	w, rec := newTestWidget(t)

	ok, err := w.TypePrice(enums.PriceSideMin, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, w.View().MinField.Unset)

	ok, err = w.TypePrice(enums.PriceSideMin, "50000")
	require.NoError(t, err)
	require.True(t, ok)

	require.Len(t, rec.emitted, 2)
	assert.Equal(t, Bounds{Min: 50_000, Max: 5_000_000}, rec.emitted[1].PriceRange)
	assert.Equal(t, "50000", w.View().MinField.Text)
	assert.False(t, w.View().MinField.Unset)
}

func TestWidgetNonNumericKeystrokeIsIgnored(t *testing.T) {
	w, rec := newTestWidget(t)
	_, err := w.TypePrice(enums.PriceSideMax, "800000")
	require.NoError(t, err)
	before := w.Snapshot()

	ok, err := w.TypePrice(enums.PriceSideMax, "80k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, rec.emitted, 1)
	assert.True(t, before.Equal(w.Snapshot()))
}

func TestWidgetDragThenCommit(t *testing.T) {
	w, rec := newTestWidget(t)
	_, err := w.TypePrice(enums.PriceSideMax, "5000000")
	require.NoError(t, err)
	rec.emitted = nil

	assert.Equal(t, int64(4_990_000), w.DragSlider(enums.PriceSideMin, 4_990_000))
	assert.Empty(t, rec.emitted)

	c := w.CommitSlider()
	require.Len(t, rec.emitted, 1)
	assert.Equal(t, Bounds{Min: 4_990_000, Max: 5_000_000}, c.PriceRange)
}

func TestWidgetResetEmitsDefaultsOnceAndClosesPanel(t *testing.T) {
	w, rec := newTestWidget(t)
	require.NoError(t, w.Toggle(enums.FilterFacetCategory, "Supersport"))
	w.OpenPanel()
	require.True(t, w.View().ScrollLock)
	rec.emitted = nil

	c := w.Reset()

	require.Len(t, rec.emitted, 1)
	assert.Equal(t, Criteria{
		Categories:  []enums.ListingCategory{},
		Brands:      []enums.Brand{},
		PriceRange:  Bounds{Min: 0, Max: 5_000_000},
		EngineSizes: []enums.EngineSize{},
	}, c)
	assert.Equal(t, c, rec.emitted[0])
	v := w.View()
	assert.False(t, v.PanelOpen)
	assert.False(t, v.ScrollLock)
}

func TestWidgetSyncNeverEmits(t *testing.T) {
	w, rec := newTestWidget(t)
	res := w.Sync(ActiveFilters{
		Brands:     []enums.Brand{enums.BrandAprilia},
		PriceRange: bounds(100_000, 600_000),
	})
	assert.True(t, res.PriceApplied)
	assert.Empty(t, rec.emitted)
	assert.Equal(t, []enums.Brand{enums.BrandAprilia}, w.Snapshot().Brands)
}

func TestWidgetClearedMinSurvivesEcho(t *testing.T) {
	w, rec := newTestWidget(t)
	_, err := w.TypePrice(enums.PriceSideMax, "900000")
	require.NoError(t, err)
	_, err = w.TypePrice(enums.PriceSideMin, "")
	require.NoError(t, err)

	echo := rec.emitted[len(rec.emitted)-1].PriceRange
	w.Sync(ActiveFilters{PriceRange: &echo})

	assert.True(t, w.View().MinField.Unset)
	assert.Equal(t, "", w.View().MinField.Text)
}

func TestWidgetViewFieldText(t *testing.T) {
	w, _ := newTestWidget(t)
	w.Sync(ActiveFilters{PriceRange: bounds(0, 5_000_000)})

	v := w.View()
	assert.Equal(t, PriceField{Text: "", Placeholder: "0"}, v.MinField)
	assert.Equal(t, PriceField{Text: "", Placeholder: "5000000"}, v.MaxField)

	w.Sync(ActiveFilters{PriceRange: bounds(20_000, 300_000)})
	v = w.View()
	assert.Equal(t, "20000", v.MinField.Text)
	assert.Equal(t, "300000", v.MaxField.Text)
	assert.Equal(t, Bounds{Min: 20_000, Max: 300_000}, v.Handles)
}

func TestWidgetDeactivateReleasesScrollLock(t *testing.T) {
	lock := &ScrollLock{}
	w := NewWidget(DefaultLimits(), nil, lock)
	w.OpenPanel()
	require.True(t, lock.Locked())

	w.Deactivate()

	assert.False(t, lock.Locked())
	assert.True(t, w.Snapshot().Equal(DefaultSnapshot()))
}
