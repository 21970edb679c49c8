package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/angelmondragon/ridefinderz-filters/internal/filters"
	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
)

const (
	filtersChangedEvent   = "filters.changed"
	defaultPublishTimeout = 5 * time.Second
)

// Emission is one criteria change handed to the sinks.
type Emission struct {
	EventID   string                `json:"event_id"`
	SessionID string                `json:"session_id"`
	Sequence  int                   `json:"sequence"`
	Trigger   enums.EmissionTrigger `json:"trigger"`
	Criteria  filters.Criteria      `json:"criteria"`
	Query     string                `json:"query"`
	EmittedAt time.Time             `json:"emitted_at"`
}

// Sink receives every emission of every session. Deliver errors are logged by
// the service and never fail the user operation.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, e Emission) error
}

// Forgetter is implemented by sinks that hold per-session state to drop on deactivation.
type Forgetter interface {
	Forget(ctx context.Context, sessionID string) error
}

type criteriaStore interface {
	StoreCriteria(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) (int64, error)
	DeleteCriteria(ctx context.Context, sessionID string) error
}

// RedisSink keeps the latest criteria of each session in redis for the listing consumer.
type RedisSink struct {
	store criteriaStore
	ttl   time.Duration
}

func NewRedisSink(store criteriaStore, ttl time.Duration) (*RedisSink, error) {
	if store == nil {
		return nil, errors.New("criteria store required")
	}
	return &RedisSink{store: store, ttl: ttl}, nil
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Deliver(ctx context.Context, e Emission) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode emission: %w", err)
	}
	_, err = s.store.StoreCriteria(ctx, e.SessionID, payload, s.ttl)
	return err
}

func (s *RedisSink) Forget(ctx context.Context, sessionID string) error {
	return s.store.DeleteCriteria(ctx, sessionID)
}

type publisher interface {
	Publish(context.Context, *gcppubsub.Message) publishResult
	ResumePublish(orderingKey string)
}

type publishResult interface {
	Get(context.Context) (string, error)
}

// PubSubSink fans emissions out as filters.changed events.
type PubSubSink struct {
	pub publisher
}

// NewPubSubSink wraps a topic publisher.
func NewPubSubSink(p *gcppubsub.Publisher) (*PubSubSink, error) {
	if p == nil {
		return nil, errors.New("pubsub publisher required")
	}
	return &PubSubSink{pub: &gcpPublisher{Publisher: p}}, nil
}

func (s *PubSubSink) Name() string { return "pubsub" }

func (s *PubSubSink) Deliver(ctx context.Context, e Emission) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode emission: %w", err)
	}
	// Ordered per session so subscribers see a session's criteria in
	// emission order.
	msg := &gcppubsub.Message{
		Data:        data,
		OrderingKey: e.SessionID,
		Attributes: map[string]string{
			"event_id":   e.EventID,
			"event_type": filtersChangedEvent,
			"session_id": e.SessionID,
			"trigger":    e.Trigger.String(),
			"emitted_at": e.EmittedAt.Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	defer cancel()
	result := s.pub.Publish(publishCtx, msg)
	if result == nil {
		return errors.New("publisher returned nil result")
	}
	if _, err := result.Get(publishCtx); err != nil {
		// A failed ordered publish pauses the key; the next emission is
		// allowed through and supersedes the lost one.
		s.pub.ResumePublish(e.SessionID)
		return fmt.Errorf("publish %s: %w", filtersChangedEvent, err)
	}
	return nil
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return &gcpPublishResult{PublishResult: p.Publisher.Publish(ctx, msg)}
}

type gcpPublishResult struct {
	*gcppubsub.PublishResult
}

func (r *gcpPublishResult) Get(ctx context.Context) (string, error) {
	if r == nil || r.PublishResult == nil {
		return "", errors.New("publish result is nil")
	}
	return r.PublishResult.Get(ctx)
}
