package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("wizard session not found")

// DefaultIdle is how long a session survives without being touched.
const DefaultIdle = 30 * time.Minute

// Store keeps live wizard sessions in memory. Sessions die with the process
// on purpose: the form only outlives the visit once it is submitted.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idle     time.Duration
	now      func() time.Time
}

func NewStore(idle time.Duration) *Store {
	if idle <= 0 {
		idle = DefaultIdle
	}
	return &Store{
		sessions: map[string]*Session{},
		idle:     idle,
		now:      time.Now,
	}
}

// Create opens a new session for the user.
func (st *Store) Create(userID uint) *Session {
	s := newSession(uuid.NewString(), userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.evictLocked()
	st.sessions[s.ID] = s
	return s
}

// Get returns the session if it exists, belongs to the user, and has not
// idled out.
func (st *Store) Get(id string, userID uint) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok || s.UserID != userID {
		return nil, ErrSessionNotFound
	}
	s.mu.Lock()
	expired := st.now().Sub(s.lastSeen) > st.idle
	s.mu.Unlock()
	if expired {
		delete(st.sessions, id)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete drops a session, e.g. when the client navigates away.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *Store) evictLocked() {
	cutoff := st.now().Add(-st.idle)
	for id, s := range st.sessions {
		s.mu.Lock()
		stale := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(st.sessions, id)
		}
	}
}
