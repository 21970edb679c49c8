package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
)

const browseScript = `
initial: "?brand=Ducati"
steps:
  - op: open
  - op: toggle
    facet: category
    value: Supersport
  - op: drag
    side: max
    value: "4990000"
  - op: drag
    side: max
    value: "3000000"
  - op: commit
  - op: price
    side: min
    value: "50000"
  - op: price
    side: min
    value: "50k"
  - op: close
    reason: overlay
`

func TestRunRecordsEveryDiscreteEmission(t *testing.T) {
	s, err := Load([]byte(browseScript))
	require.NoError(t, err)

	res, err := Run(s)
	require.NoError(t, err)

	// toggle, commit and the numeric keystroke emit; drags and "50k" do not
	require.Len(t, res.Emissions, 3)
	assert.Equal(t, OpToggle, res.Emissions[0].Op)
	assert.Equal(t, 2, res.Emissions[0].Step)
	assert.Equal(t, "brand=Ducati&category=Supersport", res.Emissions[0].Query)

	assert.Equal(t, OpCommit, res.Emissions[1].Op)
	assert.Equal(t, int64(3_000_000), res.Emissions[1].Criteria.PriceRange.Max)

	assert.Equal(t, OpPrice, res.Emissions[2].Op)
	assert.Equal(t, int64(50_000), res.Emissions[2].Criteria.PriceRange.Min)

	assert.False(t, res.Final.PanelOpen)
	assert.False(t, res.Final.ScrollLock)
	assert.Equal(t, "brand=Ducati&category=Supersport&price_max=3000000&price_min=50000", res.Query)
}

func TestRunResetEmitsDefaultsOnce(t *testing.T) {
	s, err := Load([]byte(`
steps:
  - op: toggle
    facet: brand
    value: KTM
  - op: open
  - op: reset
`))
	require.NoError(t, err)

	res, err := Run(s)
	require.NoError(t, err)
	require.Len(t, res.Emissions, 2)
	last := res.Emissions[1]
	assert.Equal(t, OpReset, last.Op)
	assert.Empty(t, last.Criteria.Brands)
	assert.Equal(t, "", last.Query)
	assert.False(t, res.Final.PanelOpen)
}

func TestRunHonoursCustomLimits(t *testing.T) {
	s, err := Load([]byte(`
limits:
  max_price: 100000
  gap: 1000
steps:
  - op: drag
    side: min
    value: "999999"
  - op: commit
`))
	require.NoError(t, err)

	res, err := Run(s)
	require.NoError(t, err)
	require.Len(t, res.Emissions, 1)
	assert.Equal(t, int64(99_000), res.Emissions[0].Criteria.PriceRange.Min)
	assert.Equal(t, int64(100_000), res.Emissions[0].Criteria.PriceRange.Max)
}

func TestRunUnknownLabelSurfacesStepError(t *testing.T) {
	s, err := Load([]byte(`
steps:
  - op: toggle
    facet: brand
    value: Vespa
`))
	require.NoError(t, err)

	_, err = Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1 (toggle)")
}

func TestLoadRejectsInvalidSteps(t *testing.T) {
	tests := map[string]string{
		"unknown op":     "steps:\n  - op: hover\n",
		"bad facet":      "steps:\n  - op: toggle\n    facet: colour\n",
		"bad side":       "steps:\n  - op: price\n    side: middle\n",
		"bad drag value": "steps:\n  - op: drag\n    side: min\n    value: lots\n",
		"bad reason":     "steps:\n  - op: close\n    reason: swipe\n",
		"bad limits":     "limits:\n  max_price: 0\nsteps: []\n",
		"not yaml":       "steps: [",
	}
	for name, script := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load([]byte(script))
			assert.Error(t, err)
		})
	}
}

func TestStepValidateAcceptsKnownCloseReasons(t *testing.T) {
	for _, reason := range []enums.PanelCloseReason{enums.PanelCloseButton, enums.PanelCloseOverlay} {
		assert.NoError(t, Step{Op: OpClose, Reason: reason.String()}.validate())
	}
}
