// Package session keeps per-client state in process memory. Handlers see a
// read-only Snapshot and request changes by returning a Mutation.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"
)

const IDLength = 64

var ErrUnknownSession = errors.New("unknown session")

// Snapshot is the state of one session at the start of a request. A zero
// Snapshot means there is no session.
type Snapshot struct {
	ID              string
	AuthenticatedAs string
}

func (s Snapshot) Exists() bool {
	return s.ID != ""
}

// Mutation describes a session change to apply after a handler returns.
type Mutation struct {
	login  string
	logout bool
}

// Login replaces the current session with a new one for user.
func Login(user string) *Mutation {
	return &Mutation{login: user}
}

// Logout destroys the current session.
func Logout() *Mutation {
	return &Mutation{logout: true}
}

func (m *Mutation) IsLogout() bool {
	return m != nil && m.logout
}

type entry struct {
	user      string
	expiresAt time.Time
}

// Store is a mutex-guarded in-memory session store with sliding expiry.
type Store struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get returns the snapshot for id and extends its expiry. Unknown or expired
// ids yield a zero Snapshot.
func (s *Store) Get(id string) Snapshot {
	if id == "" {
		return Snapshot{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return Snapshot{}
	}

	now := s.now()
	if !now.Before(e.expiresAt) {
		delete(s.sessions, id)
		return Snapshot{}
	}

	e.expiresAt = now.Add(s.ttl)
	s.sessions[id] = e

	return Snapshot{ID: id, AuthenticatedAs: e.user}
}

// Create starts a new session for user.
func (s *Store) Create(user string) (Snapshot, error) {
	id, err := newID()
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	s.sessions[id] = entry{user: user, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return Snapshot{ID: id, AuthenticatedAs: user}, nil
}

func (s *Store) Destroy(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrUnknownSession
	}
	delete(s.sessions, id)

	return nil
}

// Apply executes m against the session described by current and returns the
// resulting snapshot. A login always issues a fresh id.
func (s *Store) Apply(current Snapshot, m *Mutation) (Snapshot, error) {
	switch {
	case m == nil:
		return current, nil
	case m.logout:
		if !current.Exists() {
			return Snapshot{}, ErrUnknownSession
		}
		return Snapshot{}, s.Destroy(current.ID)
	default:
		if current.Exists() {
			_ = s.Destroy(current.ID)
		}
		return s.Create(m.login)
	}
}

// Cleanup removes expired sessions and reports how many were removed.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (s *Store) RunCleanup(ctx context.Context, interval time.Duration, onCleanup func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Cleanup(); removed > 0 && onCleanup != nil {
				onCleanup(removed)
			}
		}
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func newID() (string, error) {
	bytes := make([]byte, IDLength/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
