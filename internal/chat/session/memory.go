package session

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"scheduling-assistant/internal/model"
)

// DefaultMaxUsers bounds how many user sessions are tracked at once.
// The least recently active user is evicted when the bound is hit.
const DefaultMaxUsers = 1024

type memoryStore struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, *sessionEntry]
}

type sessionEntry struct {
	history []model.ConversationTurn
	pending *model.PendingProposal
}

// NewMemoryStore creates an in-memory session store bounded to maxUsers
// tracked sessions. maxUsers <= 0 falls back to DefaultMaxUsers.
func NewMemoryStore(maxUsers int) (Store, error) {
	if maxUsers <= 0 {
		maxUsers = DefaultMaxUsers
	}
	cache, err := lru.New[string, *sessionEntry](maxUsers)
	if err != nil {
		return nil, err
	}
	return &memoryStore{sessions: cache}, nil
}

// entry returns the user's live entry, creating one if needed.
// Callers must hold s.mu.
func (s *memoryStore) entry(userID string) *sessionEntry {
	if e, ok := s.sessions.Get(userID); ok {
		return e
	}
	e := &sessionEntry{}
	s.sessions.Add(userID, e)
	return e
}

func (s *memoryStore) Get(userID string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions.Get(userID)
	if !ok {
		return Session{}
	}

	// Snapshot: callers never share the live slice or proposal.
	history := make([]model.ConversationTurn, len(e.history))
	copy(history, e.history)

	var pending *model.PendingProposal
	if e.pending != nil {
		cp := *e.pending
		pending = &cp
	}

	return Session{History: history, Pending: pending}
}

func (s *memoryStore) AppendTurn(userID string, turn model.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(userID)
	e.history = append(e.history, turn)
	if len(e.history) > MaxHistoryTurns {
		e.history = e.history[len(e.history)-MaxHistoryTurns:]
	}
}

func (s *memoryStore) SetPending(userID string, p *model.PendingProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entry(userID).pending = p
}

func (s *memoryStore) ClearPending(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions.Get(userID); ok {
		e.pending = nil
	}
}
