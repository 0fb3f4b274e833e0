package http

import (
	"github.com/gin-gonic/gin"

	"scheduling-assistant/internal/chat"
	pkgLog "scheduling-assistant/pkg/log"
)

// Handler is the interface for the chat HTTP delivery handler.
type Handler interface {
	HandleMessage(c *gin.Context)
}

// New creates a new chat delivery handler.
func New(l pkgLog.Logger, uc chat.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
