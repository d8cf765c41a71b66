package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps all live conversations in memory, keyed by session id
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Create starts a fresh session in the greeting stage and returns it
func (s *Store) Create() *Session {
	now := time.Now()
	sess := &Session{
		ID:                uuid.New().String(),
		Stage:             StageGreeting,
		SalesState:        SalesAskAmount,
		VerificationState: VerificationAskPhone,
		UnderwritingState: UnderwritingPending,
		InterestRate:      DefaultInterestRate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session for an id, or false when it does not exist
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Touch bumps the session's UpdatedAt timestamp
func (s *Store) Touch(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.UpdatedAt = time.Now()
}

// Delete drops a session (reset endpoint)
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Count returns the number of live sessions
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
