package sessions

import (
	"time"

	"github.com/angelmondragon/ridefinderz-filters/internal/filters"
	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
	"github.com/angelmondragon/ridefinderz-filters/pkg/money"
	"github.com/angelmondragon/ridefinderz-filters/pkg/querystate"
)

// View is the session read model returned to API callers.
type View struct {
	SessionID    string            `json:"session_id"`
	Widget       filters.View      `json:"widget"`
	PriceLabels  PriceLabels       `json:"price_labels"`
	Criteria     filters.Criteria  `json:"criteria"`
	Query        string            `json:"query"`
	LastEmitted  *filters.Criteria `json:"last_emitted,omitempty"`
	Emissions    int               `json:"emissions"`
	InputIgnored bool              `json:"input_ignored,omitempty"`
	ExpiresAt    time.Time         `json:"expires_at"`
}

// PriceLabels renders the slider handles for display.
type PriceLabels struct {
	Currency   enums.Currency `json:"currency"`
	Min        string         `json:"min"`
	Max        string         `json:"max"`
	MinCompact string         `json:"min_compact"`
	MaxCompact string         `json:"max_compact"`
}

func buildView(s *session, limits filters.Limits, currency enums.Currency, ttl time.Duration) View {
	wv := s.widget.View()
	criteria := s.widget.Criteria()
	v := View{
		SessionID: s.id.String(),
		Widget:    wv,
		PriceLabels: PriceLabels{
			Currency:   currency,
			Min:        money.Format(wv.Handles.Min, currency),
			Max:        money.Format(wv.Handles.Max, currency),
			MinCompact: money.Compact(wv.Handles.Min, currency),
			MaxCompact: money.Compact(wv.Handles.Max, currency),
		},
		Criteria:  criteria,
		Query:     querystate.Encode(criteria, limits).Encode(),
		Emissions: s.emissions,
		ExpiresAt: s.lastSeen.Add(ttl).UTC(),
	}
	if s.last != nil {
		last := *s.last
		v.LastEmitted = &last
	}
	return v
}
