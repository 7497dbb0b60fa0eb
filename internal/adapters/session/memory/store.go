// Package memory keeps shopper sessions in process memory.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/resinwood/internal/domain"
	"github.com/phenrril/resinwood/internal/usecase"
)

const DefaultTTL = 72 * time.Hour

type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]usecase.Session
	lastGC   time.Time
}

func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{ttl: ttl, now: time.Now, sessions: map[string]usecase.Session{}}
}

// WithClock replaces the time source; used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Get(ctx context.Context, id string) (*usecase.Session, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		return nil, domain.ErrNotFound
	}
	return &sess, nil
}

func (s *Store) Update(ctx context.Context, id string, fn func(*usecase.Session) error) (*usecase.Session, error) {
	if id == "" {
		return nil, errors.New("empty session id")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		sess = *usecase.NewSession(id)
	}
	if err := fn(&sess); err != nil {
		return nil, err
	}
	sess.ID = id
	sess.UpdatedAt = s.now()
	s.sessions[id] = sess
	out := sess
	return &out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len counts live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sess := range s.sessions {
		if !s.expired(sess) {
			n++
		}
	}
	return n
}

func (s *Store) expired(sess usecase.Session) bool {
	return s.now().Sub(sess.UpdatedAt) > s.ttl
}

// sweep drops expired sessions at most once per ttl/4. Caller holds mu.
func (s *Store) sweep() {
	now := s.now()
	if now.Sub(s.lastGC) < s.ttl/4 {
		return
	}
	s.lastGC = now
	dropped := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			dropped++
		}
	}
	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Int("live", len(s.sessions)).Msg("expired sessions removed")
	}
}
