package model

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message within a conversation. Immutable once recorded.
type ConversationTurn struct {
	Role    Role
	Content string
}
