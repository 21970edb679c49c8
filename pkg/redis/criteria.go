package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// StoredCriteria is the last criteria payload a session emitted plus the
// emission sequence that wrote it.
type StoredCriteria struct {
	Payload string
	Seq     int64
}

// CriteriaKey returns the key holding the latest emitted criteria of a session.
func (c *Client) CriteriaKey(sessionID string) string {
	return c.buildKey(criteriaPrefix, sessionID)
}

// CriteriaSeqKey returns the key counting emissions of a session.
func (c *Client) CriteriaSeqKey(sessionID string) string {
	return c.buildKey(counterPrefix, criteriaPrefix, sessionID)
}

// StoreCriteria writes the encoded criteria of a session and bumps its
// emission sequence. The returned sequence lets readers drop stale payloads.
func (c *Client) StoreCriteria(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) (int64, error) {
	seq, err := c.IncrWithTTL(ctx, c.CriteriaSeqKey(sessionID), ttl)
	if err != nil {
		return 0, fmt.Errorf("bump criteria sequence: %w", err)
	}
	if err := c.Set(ctx, c.CriteriaKey(sessionID), payload, ttl); err != nil {
		return seq, fmt.Errorf("store criteria: %w", err)
	}
	return seq, nil
}

// LatestCriteria returns the encoded criteria last stored for a session. It
// returns Nil when the session never emitted or has aged out. A missing
// counter next to a present payload reads as sequence 0.
func (c *Client) LatestCriteria(ctx context.Context, sessionID string) (StoredCriteria, error) {
	payload, err := c.Get(ctx, c.CriteriaKey(sessionID))
	if err != nil {
		return StoredCriteria{}, err
	}
	out := StoredCriteria{Payload: payload}
	raw, err := c.Get(ctx, c.CriteriaSeqKey(sessionID))
	switch {
	case errors.Is(err, Nil):
		return out, nil
	case err != nil:
		return out, fmt.Errorf("read criteria sequence: %w", err)
	}
	if out.Seq, err = strconv.ParseInt(raw, 10, 64); err != nil {
		return out, fmt.Errorf("parse criteria sequence %q: %w", raw, err)
	}
	return out, nil
}

// DeleteCriteria drops the stored criteria and its sequence counter.
func (c *Client) DeleteCriteria(ctx context.Context, sessionID string) error {
	return c.Del(ctx, c.CriteriaKey(sessionID), c.CriteriaSeqKey(sessionID))
}
