// Package sessions hosts listing filter widgets for remote clients. Each session
// owns one widget; its emissions are forwarded to the configured sinks.
package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/ridefinderz-filters/internal/filters"
	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
	"github.com/angelmondragon/ridefinderz-filters/pkg/errors"
	"github.com/angelmondragon/ridefinderz-filters/pkg/logger"
	"github.com/angelmondragon/ridefinderz-filters/pkg/metrics"
	"github.com/angelmondragon/ridefinderz-filters/pkg/querystate"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

const defaultTTL = 30 * time.Minute

type Service interface {
	Activate(ctx context.Context, initial filters.ActiveFilters) (View, error)
	Get(ctx context.Context, id uuid.UUID) (View, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Toggle(ctx context.Context, id uuid.UUID, facet enums.FilterFacet, value string) (View, error)
	SetPrice(ctx context.Context, id uuid.UUID, side enums.PriceSide, raw string) (View, error)
	Drag(ctx context.Context, id uuid.UUID, side enums.PriceSide, value int64) (View, error)
	Commit(ctx context.Context, id uuid.UUID) (View, error)
	Reset(ctx context.Context, id uuid.UUID) (View, error)
	Sync(ctx context.Context, id uuid.UUID, incoming filters.ActiveFilters) (View, error)
	OpenPanel(ctx context.Context, id uuid.UUID) (View, error)
	ClosePanel(ctx context.Context, id uuid.UUID, reason enums.PanelCloseReason) (View, error)
	Sweep(ctx context.Context) (int, error)
}

// ServiceParams configure the session service.
type ServiceParams struct {
	Logger   *logger.Logger
	Limits   filters.Limits
	Currency enums.Currency
	TTL      time.Duration
	Sinks    []Sink
	Metrics  *metrics.FilterMetrics
}

type service struct {
	logg     *logger.Logger
	limits   filters.Limits
	currency enums.Currency
	ttl      time.Duration
	sinks    []Sink
	metrics  *metrics.FilterMetrics
	sessions *registry
	now      func() time.Time
	newID    func() uuid.UUID
}

// NewService builds a session service.
func NewService(params ServiceParams) (Service, error) {
	return newService(params)
}

func newService(params ServiceParams) (*service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if err := params.Limits.Validate(); err != nil {
		return nil, fmt.Errorf("filter limits: %w", err)
	}
	currency := params.Currency
	if currency == "" {
		currency = enums.CurrencyINR
	}
	if !currency.IsValid() {
		return nil, fmt.Errorf("invalid currency %q", currency)
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	sinks := make([]Sink, 0, len(params.Sinks))
	for _, sink := range params.Sinks {
		if sink != nil {
			sinks = append(sinks, sink)
		}
	}
	return &service{
		logg:     params.Logger,
		limits:   params.Limits,
		currency: currency,
		ttl:      ttl,
		sinks:    sinks,
		metrics:  params.Metrics,
		sessions: newRegistry(),
		now:      time.Now,
		newID:    uuid.New,
	}, nil
}

func (s *service) Activate(ctx context.Context, initial filters.ActiveFilters) (View, error) {
	sess := newSession(s.newID(), s.limits, s.now())
	if !initial.IsEmpty() {
		sess.widget.Sync(initial)
	}
	s.metrics.SetActiveSessions(s.sessions.put(sess))

	ctx = s.logg.WithSessionID(ctx, sess.id.String())
	s.logg.Info(s.logg.WithEvent(ctx, "filters.session.activated"), "filter session activated")

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return buildView(sess, s.limits, s.currency, s.ttl), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (View, error) {
	return s.with(ctx, id, func(context.Context, *session) (enums.EmissionTrigger, error) {
		return "", nil
	})
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return errors.New(errors.CodeNotFound, "filter session not found")
	}
	sess.widget.Deactivate()
	sess.closed = true
	sess.mu.Unlock()

	s.metrics.SetActiveSessions(s.sessions.remove(id))
	ctx = s.logg.WithSessionID(ctx, id.String())
	s.forget(ctx, id)
	s.logg.Info(s.logg.WithEvent(ctx, "filters.session.deactivated"), "filter session deactivated")
	return nil
}

func (s *service) Toggle(ctx context.Context, id uuid.UUID, facet enums.FilterFacet, value string) (View, error) {
	return s.with(ctx, id, func(_ context.Context, sess *session) (enums.EmissionTrigger, error) {
		if err := sess.widget.Toggle(facet, value); err != nil {
			return "", errors.Wrap(errors.CodeValidation, err, "invalid filter value")
		}
		return enums.EmissionTriggerToggle, nil
	})
}

func (s *service) SetPrice(ctx context.Context, id uuid.UUID, side enums.PriceSide, raw string) (View, error) {
	var accepted bool
	view, err := s.with(ctx, id, func(_ context.Context, sess *session) (enums.EmissionTrigger, error) {
		ok, err := sess.widget.TypePrice(side, raw)
		if err != nil {
			return "", errors.Wrap(errors.CodeValidation, err, "invalid price field")
		}
		accepted = ok
		return enums.EmissionTriggerPriceInput, nil
	})
	if err != nil {
		return view, err
	}
	view.InputIgnored = !accepted
	return view, nil
}

func (s *service) Drag(ctx context.Context, id uuid.UUID, side enums.PriceSide, value int64) (View, error) {
	if !side.IsValid() {
		return View{}, errors.New(errors.CodeValidation, "invalid price side").WithDetails(map[string]string{"side": side.String()})
	}
	return s.with(ctx, id, func(_ context.Context, sess *session) (enums.EmissionTrigger, error) {
		sess.widget.DragSlider(side, value)
		s.metrics.IncDrag()
		return "", nil
	})
}

func (s *service) Commit(ctx context.Context, id uuid.UUID) (View, error) {
	return s.with(ctx, id, func(_ context.Context, sess *session) (enums.EmissionTrigger, error) {
		sess.widget.CommitSlider()
		return enums.EmissionTriggerSliderCommit, nil
	})
}

func (s *service) Reset(ctx context.Context, id uuid.UUID) (View, error) {
	return s.with(ctx, id, func(_ context.Context, sess *session) (enums.EmissionTrigger, error) {
		sess.widget.Reset()
		return enums.EmissionTriggerReset, nil
	})
}

func (s *service) Sync(ctx context.Context, id uuid.UUID, incoming filters.ActiveFilters) (View, error) {
	return s.with(ctx, id, func(ctx context.Context, sess *session) (enums.EmissionTrigger, error) {
		res := sess.widget.Sync(incoming)
		outcome := "absent"
		switch {
		case res.PriceApplied:
			outcome = "applied"
		case res.PriceKept:
			outcome = "kept"
		case res.PriceRejected:
			outcome = "rejected"
		}
		s.metrics.IncReconcile(outcome)
		s.logg.Debug(s.logg.WithFields(ctx, map[string]any{
			"replaced_facets": res.Replaced,
			"price_outcome":   outcome,
		}), "external filter snapshot reconciled")
		return "", nil
	})
}

func (s *service) OpenPanel(ctx context.Context, id uuid.UUID) (View, error) {
	return s.with(ctx, id, func(_ context.Context, sess *session) (enums.EmissionTrigger, error) {
		sess.widget.OpenPanel()
		return "", nil
	})
}

func (s *service) ClosePanel(ctx context.Context, id uuid.UUID, reason enums.PanelCloseReason) (View, error) {
	if !reason.IsValid() {
		return View{}, errors.New(errors.CodeValidation, "invalid close reason").WithDetails(map[string]string{"reason": reason.String()})
	}
	return s.with(ctx, id, func(_ context.Context, sess *session) (enums.EmissionTrigger, error) {
		sess.widget.ClosePanel(reason)
		return "", nil
	})
}

// Sweep deactivates every session idle for longer than the TTL.
func (s *service) Sweep(ctx context.Context) (int, error) {
	now := s.now()
	swept := 0
	var errs error
	for _, sess := range s.sessions.snapshot() {
		sess.mu.Lock()
		if sess.closed || !sess.expired(now, s.ttl) {
			sess.mu.Unlock()
			continue
		}
		sess.widget.Deactivate()
		sess.closed = true
		sess.mu.Unlock()

		s.sessions.remove(sess.id)
		if err := s.forget(s.logg.WithSessionID(ctx, sess.id.String()), sess.id); err != nil {
			errs = multierr.Append(errs, err)
		}
		swept++
	}
	s.metrics.SetActiveSessions(s.sessions.len())
	return swept, errs
}

func (s *service) lookup(id uuid.UUID) (*session, error) {
	sess, ok := s.sessions.get(id)
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "filter session not found")
	}
	return sess, nil
}

// with runs op under the session lock, then forwards whatever the widget
// emitted to the sinks tagged with the returned trigger.
func (s *service) with(ctx context.Context, id uuid.UUID, op func(context.Context, *session) (enums.EmissionTrigger, error)) (View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return View{}, err
	}
	ctx = s.logg.WithSessionID(ctx, id.String())

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return View{}, errors.New(errors.CodeNotFound, "filter session not found")
	}
	now := s.now()
	if sess.expired(now, s.ttl) {
		sess.widget.Deactivate()
		sess.closed = true
		s.metrics.SetActiveSessions(s.sessions.remove(id))
		s.forget(ctx, id)
		return View{}, errors.Newf(errors.CodeExpired, "filter session %s expired", id)
	}
	sess.lastSeen = now

	trigger, err := op(ctx, sess)
	if err != nil {
		sess.pending = nil
		return View{}, err
	}
	for _, pe := range sess.drain(trigger) {
		s.deliver(ctx, sess, pe, now)
	}
	return buildView(sess, s.limits, s.currency, s.ttl), nil
}

func (s *service) deliver(ctx context.Context, sess *session, pe pendingEmission, now time.Time) {
	s.metrics.IncEmission(pe.trigger.String())
	e := Emission{
		EventID:   uuid.NewString(),
		SessionID: sess.id.String(),
		Sequence:  pe.seq,
		Trigger:   pe.trigger,
		Criteria:  pe.criteria,
		Query:     querystate.Encode(pe.criteria, s.limits).Encode(),
		EmittedAt: now.UTC(),
	}
	for _, sink := range s.sinks {
		if err := sink.Deliver(ctx, e); err != nil {
			s.metrics.IncSinkFailure(sink.Name())
			logCtx := s.logg.WithFields(ctx, map[string]any{
				"sink":     sink.Name(),
				"trigger":  pe.trigger.String(),
				"sequence": e.Sequence,
			})
			s.logg.Error(logCtx, "criteria delivery failed", err)
		}
	}
}

func (s *service) forget(ctx context.Context, id uuid.UUID) error {
	var errs error
	for _, sink := range s.sinks {
		f, ok := sink.(Forgetter)
		if !ok {
			continue
		}
		if err := f.Forget(ctx, id.String()); err != nil {
			s.metrics.IncSinkFailure(sink.Name())
			s.logg.Warn(s.logg.WithField(ctx, "sink", sink.Name()), "failed to drop session state: "+err.Error())
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
