// Package session holds in-progress registration dialogues. Sessions are
// process-local: a restart loses uncommitted input and the user starts over
// with /start.
package session

import "sync"

type Step string

const (
	StepName        Step = "collecting_name"
	StepGroup       Step = "collecting_group"
	StepPreferences Step = "collecting_preferences"
)

// Session is one user's registration progress, keyed by Telegram id.
type Session struct {
	Step     Step
	FullName string
	Group    string
}

type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Start creates a fresh session at the name-collection step, replacing any
// previous one for the same user.
func (s *Store) Start(telegramID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{Step: StepName}
	s.sessions[telegramID] = sess
	return sess
}

func (s *Store) Get(telegramID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[telegramID]
	return sess, ok
}

func (s *Store) Delete(telegramID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, telegramID)
}
