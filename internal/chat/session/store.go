package session

import (
	"scheduling-assistant/internal/model"
)

// MaxHistoryTurns caps the rolling conversation history per user
// (5 user/assistant pairs). Oldest turns are evicted first.
const MaxHistoryTurns = 10

// Session is the per-user ephemeral state snapshot: rolling conversation
// history and at most one pending proposal.
type Session struct {
	History []model.ConversationTurn
	Pending *model.PendingProposal
}

// HasPending reports whether a proposal is awaiting confirmation.
func (s Session) HasPending() bool { return s.Pending != nil }

// Store keeps per-user conversation state for the process lifetime.
// Implementations are safe for concurrent use; concurrent writes for the
// same user are last-write-wins.
type Store interface {
	// Get returns a snapshot of the user's session. A missing user yields
	// an empty session.
	Get(userID string) Session

	// AppendTurn records a conversation turn, evicting the oldest beyond
	// MaxHistoryTurns.
	AppendTurn(userID string, turn model.ConversationTurn)

	// SetPending replaces the user's pending proposal.
	SetPending(userID string, p *model.PendingProposal)

	// ClearPending drops the user's pending proposal, if any.
	ClearPending(userID string)
}
