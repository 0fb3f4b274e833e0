package chat

// HandleMessageInput is one raw utterance from the user.
type HandleMessageInput struct {
	Text string
}

// HandleMessageOutput is the assistant's reply for the turn.
type HandleMessageOutput struct {
	Message              string
	RequiresConfirmation bool // a proposal is pending after this turn
}
