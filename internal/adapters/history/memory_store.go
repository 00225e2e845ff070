package history

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/forexflex/internal/core/domain"
	portsrepo "github.com/SscSPs/forexflex/internal/core/ports/repositories"
)

const sweepInterval = time.Minute

type sessionHistory struct {
	records   []domain.ConversionRecord
	expiresAt time.Time
}

// MemoryStore keeps each session's history in process memory until the session TTL elapses.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
	sessions  map[string]*sessionHistory
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates an in-process history store. A ttl of zero keeps histories until the process exits.
func NewMemoryStore(ttl time.Duration, opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*sessionHistory),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastSweep = s.now()
	return s
}

// AppendRecord appends a record and extends the session's expiry.
func (s *MemoryStore) AppendRecord(_ context.Context, sessionID string, record domain.ConversionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	h, ok := s.sessions[sessionID]
	if !ok || s.expiredLocked(h, now) {
		h = &sessionHistory{}
		s.sessions[sessionID] = h
	}
	h.records = append(h.records, record)
	if s.ttl > 0 {
		h.expiresAt = now.Add(s.ttl)
	}
	return nil
}

// ListRecords returns a copy of the session's records in insertion order.
func (s *MemoryStore) ListRecords(_ context.Context, sessionID string) ([]domain.ConversionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.sessions[sessionID]
	if !ok {
		return []domain.ConversionRecord{}, nil
	}
	if s.expiredLocked(h, s.now()) {
		delete(s.sessions, sessionID)
		return []domain.ConversionRecord{}, nil
	}

	out := make([]domain.ConversionRecord, len(h.records))
	copy(out, h.records)
	return out, nil
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemoryStore) expiredLocked(h *sessionHistory, now time.Time) bool {
	return !h.expiresAt.IsZero() && !now.Before(h.expiresAt)
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	for id, h := range s.sessions {
		if s.expiredLocked(h, now) {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

var _ portsrepo.HistoryRepositoryFacade = (*MemoryStore)(nil)
