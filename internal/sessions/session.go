package sessions

import (
	"sync"
	"time"

	"github.com/angelmondragon/ridefinderz-filters/internal/filters"
	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
	"github.com/google/uuid"
)

// session is one hosted widget. mu serializes every widget call because the
// widget itself is single-threaded.
type session struct {
	mu        sync.Mutex
	id        uuid.UUID
	widget    *filters.Widget
	pending   []filters.Criteria
	last      *filters.Criteria
	emissions int
	lastSeen  time.Time
	closed    bool
}

func newSession(id uuid.UUID, limits filters.Limits, now time.Time) *session {
	s := &session{id: id, lastSeen: now}
	s.widget = filters.NewWidget(limits, s.collect, nil)
	return s
}

// collect is the widget change callback; emissions are drained after each operation.
func (s *session) collect(c filters.Criteria) {
	s.pending = append(s.pending, c)
}

func (s *session) drain(trigger enums.EmissionTrigger) []pendingEmission {
	if len(s.pending) == 0 {
		return nil
	}
	out := make([]pendingEmission, 0, len(s.pending))
	for _, c := range s.pending {
		s.emissions++
		out = append(out, pendingEmission{trigger: trigger, criteria: c, seq: s.emissions})
	}
	last := s.pending[len(s.pending)-1]
	s.last = &last
	s.pending = nil
	return out
}

func (s *session) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.lastSeen) > ttl
}

type pendingEmission struct {
	trigger  enums.EmissionTrigger
	criteria filters.Criteria
	seq      int
}

// registry holds live sessions keyed by id.
type registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[uuid.UUID]*session)}
}

func (r *registry) put(s *session) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.id] = s
	return len(r.sessions)
}

func (r *registry) get(id uuid.UUID) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *registry) remove(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return len(r.sessions)
}

func (r *registry) snapshot() []*session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
