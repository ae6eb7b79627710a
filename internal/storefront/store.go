package storefront

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Factory builds and loads a session for id.
type Factory func(ctx context.Context, id string) (*Session, error)

type storeEntry struct {
	session *Session
	seen    time.Time
}

// Store keeps sessions in memory keyed by cookie id and forgets the ones idle
// longer than ttl.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*storeEntry
	ttl      time.Duration
	factory  Factory
	now      func() time.Time
	logger   zerolog.Logger
}

// NewStore returns an empty Store. A ttl of zero disables eviction.
func NewStore(ttl time.Duration, factory Factory, logger *zerolog.Logger) *Store {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Store{
		sessions: make(map[string]*storeEntry),
		ttl:      ttl,
		factory:  factory,
		now:      time.Now,
		logger:   l,
	}
}

// Get returns the session for id, creating one under a fresh id when id is
// unknown. created reports whether a new session was made.
func (s *Store) Get(ctx context.Context, id string) (sess *Session, created bool, err error) {
	if id != "" {
		s.mu.Lock()
		if e, ok := s.sessions[id]; ok {
			e.seen = s.now()
			s.mu.Unlock()
			return e.session, false, nil
		}
		s.mu.Unlock()
	}

	sess, err = s.factory(ctx, uuid.NewString())
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	s.sessions[sess.ID()] = &storeEntry{session: sess, seen: s.now()}
	s.mu.Unlock()
	s.logger.Debug().Str("session", sess.ID()).Msg("session created")
	return sess, true, nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Evict drops sessions idle longer than the ttl and returns how many went.
func (s *Store) Evict() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.sessions {
		if e.seen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run evicts idle sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				s.logger.Info().Int("evicted", n).Int("live", s.Len()).Msg("sessions evicted")
			}
		}
	}
}
