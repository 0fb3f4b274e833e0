package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"scheduling-assistant/internal/chat"
	"scheduling-assistant/internal/model"
	pkgLog "scheduling-assistant/pkg/log"
	pkgResponse "scheduling-assistant/pkg/response"
)

type handler struct {
	l  pkgLog.Logger
	uc chat.UseCase
}

// HandleMessage runs one conversation turn for a user.
// @Summary Send a chat message
// @Description Process one conversational turn through the scheduling decision engine
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body sendMessageRequest true "Message payload"
// @Success 200 {object} response.Resp{data=sendMessageResponse} "Assistant reply"
// @Router /api/v1/chat/messages [post]
func (h *handler) HandleMessage(c *gin.Context) {
	ctx := c.Request.Context()

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "chat handler: bad request: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	sc := model.Scope{
		UserID:   req.UserID,
		Username: req.Username,
	}

	out, err := h.uc.HandleMessage(ctx, sc, chat.HandleMessageInput{Text: req.Text})
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrMissingUser):
			pkgResponse.Error(c, err, nil)
		case errors.Is(err, chat.ErrMaterializeFailed):
			h.l.Errorf(ctx, "chat handler: materialize failed for user=%s: %v", req.UserID, err)
			pkgResponse.InternalError(c, err)
		default:
			h.l.Errorf(ctx, "chat handler: HandleMessage failed for user=%s: %v", req.UserID, err)
			pkgResponse.InternalError(c, err)
		}
		return
	}

	pkgResponse.OK(c, sendMessageResponse{
		Message:              out.Message,
		RequiresConfirmation: out.RequiresConfirmation,
	})
}
