package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/message"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/auth"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/metrics"
	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver/requests"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

// MessageHandler exposes direct-message and anonymous-room endpoints.
type MessageHandler struct {
	service *message.Service
	log     zerolog.Logger
}

func NewMessageHandler(service *message.Service, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		service: service,
		log:     log.With().Str("component", "message-handler").Logger(),
	}
}

// Send persists a direct message over REST. The sender is always the
// authenticated caller.
func (h *MessageHandler) Send(c *gin.Context) {
	var req requests.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, h.log)
		return
	}

	msg, err := h.service.Send(c.Request.Context(), auth.UserID(c), req.ReceiverID, req.Content, false)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}

	metrics.MessagesSentTotal.Inc()
	c.JSON(http.StatusCreated, msg)
}

// History returns the full two-sided conversation between the caller and
// the user in the path, oldest first.
func (h *MessageHandler) History(c *gin.Context) {
	peerID, ok := pathID(c, "userID", h.log)
	if !ok {
		return
	}

	callerID := auth.UserID(c)
	msgs, err := h.service.History(c.Request.Context(), callerID, callerID, peerID)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// MarkSeen acknowledges a message. Acknowledging an already-seen message
// succeeds without changes.
func (h *MessageHandler) MarkSeen(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}

	msg, err := h.service.MarkSeen(c.Request.Context(), id)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// Conversations returns one summary per counterpart, most recent first.
func (h *MessageHandler) Conversations(c *gin.Context) {
	summaries, err := h.service.ListConversations(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// AnonymousHistory returns recent anonymous-room messages, oldest first.
func (h *MessageHandler) AnonymousHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			apperrors.WriteError(c, apperrors.New(
				c.Request.Context(),
				apperrors.LayerHandler,
				apperrors.ErrorTypeValidation,
				"invalid limit query parameter",
				err,
				"9d2c4b1a-6e0f-4c83-b7d5-48a91f6e2d30",
			), h.log)
			return
		}
		limit = parsed
	}

	msgs, err := h.service.ListAnonymous(c.Request.Context(), limit)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
