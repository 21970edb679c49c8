package pubsub

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/ridefinderz-filters/pkg/config"
)

func TestTopicResourceName(t *testing.T) {
	cases := map[string]string{
		"rf-filter-events":                    "projects/rides-dev/topics/rf-filter-events",
		"  rf-filter-events ":                 "projects/rides-dev/topics/rf-filter-events",
		"projects/other/topics/custom-events": "projects/other/topics/custom-events",
		"":                                    "",
	}
	for in, want := range cases {
		if got := topicResourceName("rides-dev", in); got != want {
			t.Fatalf("topicResourceName(%q) = %q, want %q", in, got, want)
		}
	}

	if got := topicResourceName(" ", "events"); got != "" {
		t.Fatalf("expected empty name without project, got %q", got)
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	if c.FilterEventsPublisher() != nil {
		t.Fatalf("nil client should not return a publisher")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close on nil client: %v", err)
	}
	if err := c.Ping(context.Background()); !errors.Is(err, errNotInitialized) {
		t.Fatalf("expected not initialized error, got %v", err)
	}
}

func TestNewClientValidatesConfig(t *testing.T) {
	_, err := NewClient(context.Background(), config.PubSubConfig{Enabled: true}, nil)
	if !errors.Is(err, errProjectIDRequired) {
		t.Fatalf("expected project id error, got %v", err)
	}
	_, err = NewClient(context.Background(), config.PubSubConfig{Enabled: true, ProjectID: "rides-dev"}, nil)
	if !errors.Is(err, errNoTopic) {
		t.Fatalf("expected topic error, got %v", err)
	}
}
