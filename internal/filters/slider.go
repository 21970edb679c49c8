package filters

import (
	"math"

	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
)

// minOnTopMargin is how close to MaxPrice the min handle must be before it is
// stacked above the max handle, so it stays grabbable at the far right.
const minOnTopMargin = 100

// Slider drives the two price handles. Drag only touches local state; Commit
// is the single point where a gesture reaches the emitter.
type Slider struct {
	store   *Store
	emitter *Emitter
}

// NewSlider binds a slider to the store it edits and the emitter it commits to.
func NewSlider(store *Store, emitter *Emitter) *Slider {
	return &Slider{store: store, emitter: emitter}
}

// Handles returns the handle positions: an unset min sits at 0, an unset max at MaxPrice.
func (s *Slider) Handles() Bounds {
	return s.store.Price().Effective(s.store.Limits())
}

// Drag moves one handle and returns its new position. The opposite handle is
// read from stored state, never from a value being recomputed in the same
// gesture, so the two clamps cannot chase each other.
func (s *Slider) Drag(side enums.PriceSide, v int64) int64 {
	l := s.store.Limits()
	current := s.store.Price()
	v = l.Clamp(v)

	switch side {
	case enums.PriceSideMin:
		v = l.Clamp(min(v, current.Max.Or(l.MaxPrice)-l.Gap))
	case enums.PriceSideMax:
		v = l.Clamp(max(v, current.Min.Or(0)+l.Gap))
	default:
		return 0
	}
	s.store.setPrice(current.With(side, At(v)))
	return v
}

// Commit finalizes a gesture and emits exactly once. Handles are resolved to
// their effective values; if typed input left min above max, the emitted min
// is pulled down to max.
func (s *Slider) Commit() Criteria {
	c := s.emitter.Assemble(s.store.Snapshot())
	if c.PriceRange.Min > c.PriceRange.Max {
		c.PriceRange.Min = c.PriceRange.Max
	}
	s.emitter.Deliver(c)
	return c
}

// Percent maps a price onto the track, rounded to a whole percent.
func (s *Slider) Percent(v int64) int {
	return Percent(v, s.store.Limits())
}

// Track returns the geometry of the coloured range indicator.
func (s *Slider) Track() Track {
	l := s.store.Limits()
	h := s.Handles()
	left := Percent(h.Min, l)
	return Track{
		Left:     left,
		Width:    max(0, Percent(h.Max, l)-left),
		MinOnTop: h.Min > l.MaxPrice-minOnTopMargin,
	}
}

// Track positions the range indicator between the handles, in percent.
type Track struct {
	Left     int  `json:"left"`
	Width    int  `json:"width"`
	MinOnTop bool `json:"min_on_top"`
}

// Percent computes round(v / MaxPrice * 100).
func Percent(v int64, l Limits) int {
	if l.MaxPrice <= 0 {
		return 0
	}
	return int(math.Round(float64(v) * 100 / float64(l.MaxPrice)))
}
