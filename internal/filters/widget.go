// Package filters holds the listing filter widget: local facet state, the
// two-handle price slider, reconciliation against the externally owned
// snapshot, and emission of canonical criteria.
//
// A Widget is driven from a single goroutine; callers that share one across
// goroutines must serialize access themselves.
package filters

import (
	"errors"
	"strconv"

	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
)

// Widget wires the store, slider, emitter and panel behind the operations a
// user can perform.
type Widget struct {
	limits  Limits
	store   *Store
	emitter *Emitter
	slider  *Slider
	panel   *Panel
}

// NewWidget activates a widget with default state. lock may be nil, in which
// case the widget gets its own.
func NewWidget(limits Limits, onChange ChangeFunc, lock *ScrollLock) *Widget {
	store := NewStore(limits)
	emitter := NewEmitter(limits, onChange)
	return &Widget{
		limits:  limits,
		store:   store,
		emitter: emitter,
		slider:  NewSlider(store, emitter),
		panel:   NewPanel(lock),
	}
}

// Limits returns the price limits in effect.
func (w *Widget) Limits() Limits {
	return w.limits
}

// Snapshot returns a copy of local state.
func (w *Widget) Snapshot() Snapshot {
	return w.store.Snapshot()
}

// Criteria resolves current state without delivering it.
func (w *Widget) Criteria() Criteria {
	return w.emitter.Assemble(w.store.Snapshot())
}

// Toggle flips a facet value and emits.
func (w *Widget) Toggle(facet enums.FilterFacet, value string) error {
	if _, err := w.store.Toggle(facet, value); err != nil {
		return err
	}
	w.emitter.Emit(w.store.Snapshot())
	return nil
}

// TypePrice applies a keystroke to a price field. Accepted input emits and
// returns true; non-numeric input is dropped without emitting.
func (w *Widget) TypePrice(side enums.PriceSide, raw string) (bool, error) {
	if _, err := w.store.SetPriceField(side, raw); err != nil {
		if errors.Is(err, ErrNotNumeric) {
			return false, nil
		}
		return false, err
	}
	w.emitter.Emit(w.store.Snapshot())
	return true, nil
}

// DragSlider moves a handle without emitting.
func (w *Widget) DragSlider(side enums.PriceSide, v int64) int64 {
	return w.slider.Drag(side, v)
}

// CommitSlider ends a drag gesture and emits once.
func (w *Widget) CommitSlider() Criteria {
	return w.slider.Commit()
}

// Reset clears every facet, emits the defaults once and closes the panel.
func (w *Widget) Reset() Criteria {
	w.store.Reset()
	c := w.emitter.Emit(w.store.Snapshot())
	w.panel.Close(enums.PanelCloseReset)
	return c
}

// Sync reconciles a new external snapshot. It never emits.
func (w *Widget) Sync(incoming ActiveFilters) SyncResult {
	return w.store.Apply(incoming)
}

// OpenPanel shows the filter panel and locks viewport scrolling.
func (w *Widget) OpenPanel() {
	w.panel.Open()
}

// ClosePanel hides the panel via the given exit path.
func (w *Widget) ClosePanel(reason enums.PanelCloseReason) bool {
	return w.panel.Close(reason)
}

// LastCloseReason reports how the panel was last closed.
func (w *Widget) LastCloseReason() enums.PanelCloseReason {
	return w.panel.LastCloseReason()
}

// Deactivate tears the widget down. The panel is closed so the scroll lock is
// never left engaged; local state is discarded.
func (w *Widget) Deactivate() {
	w.panel.Close(enums.PanelCloseUnmount)
	w.store.Reset()
}

// View is the derived read model a renderer needs.
type View struct {
	Categories  []enums.ListingCategory `json:"categories"`
	Brands      []enums.Brand           `json:"brands"`
	EngineSizes []enums.EngineSize      `json:"engine_sizes"`
	MinField    PriceField              `json:"min_field"`
	MaxField    PriceField              `json:"max_field"`
	Handles     Bounds                  `json:"handles"`
	Track       Track                   `json:"track"`
	PanelOpen   bool                    `json:"panel_open"`
	ScrollLock  bool                    `json:"scroll_locked"`
}

// PriceField is the text shown in a price input.
type PriceField struct {
	Text        string `json:"text"`
	Placeholder string `json:"placeholder"`
	Unset       bool   `json:"unset"`
}

// View derives the render model from current state.
func (w *Widget) View() View {
	snap := w.store.Snapshot()
	return View{
		Categories:  snap.Categories,
		Brands:      snap.Brands,
		EngineSizes: snap.EngineSizes,
		MinField:    fieldText(snap.Price.Min, 0, 0),
		MaxField:    fieldText(snap.Price.Max, w.limits.MaxPrice, w.limits.MaxPrice),
		Handles:     w.slider.Handles(),
		Track:       w.slider.Track(),
		PanelOpen:   w.panel.IsOpen(),
		ScrollLock:  w.panel.ScrollLocked(),
	}
}

// fieldText renders a bound for its input. Unset and the side's resting value
// both show empty so the placeholder is visible.
func fieldText(b PriceBound, resting, placeholder int64) PriceField {
	f := PriceField{Placeholder: strconv.FormatInt(placeholder, 10), Unset: !b.IsSet()}
	if v, ok := b.Value(); ok && v != resting {
		f.Text = strconv.FormatInt(v, 10)
	}
	return f
}
