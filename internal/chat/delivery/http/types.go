package http

// sendMessageRequest is the wire shape of one conversation turn.
type sendMessageRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Username string `json:"username"`
	Text     string `json:"text" binding:"required"`
}

// sendMessageResponse is the assistant's reply for the turn.
type sendMessageResponse struct {
	Message              string `json:"message"`
	RequiresConfirmation bool   `json:"requires_confirmation"`
}
