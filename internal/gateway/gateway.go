package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mb-aarfi/glbconnect-sub000/internal/config"
	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/message"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/auth"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/metrics"
)

// Inbound event names accepted from clients.
const (
	eventJoin        = "join"
	eventSendMessage = "send_message"
	eventTyping      = "typing"
	eventAnonymous   = "anonymous-message"
)

// Outbound event names.
const (
	eventReceiveMessage = "receive_message"
	eventMessageSent    = "message_sent"
	eventMessageError   = "message_error"
	eventUserTyping     = "user_typing"
)

// SendMessagePayload is the inbound payload for send_message.
type SendMessagePayload struct {
	SenderID    uint   `json:"sender_id"`
	ReceiverID  uint   `json:"receiver_id"`
	Content     string `json:"content"`
	IsAnonymous bool   `json:"is_anonymous"`
	// ClientRef is echoed back on message_sent/message_error so the sender
	// can resolve its optimistic temp entry.
	ClientRef string `json:"client_ref,omitempty"`
}

// TypingPayload is the inbound payload for typing.
type TypingPayload struct {
	SenderID   uint `json:"sender_id"`
	ReceiverID uint `json:"receiver_id"`
}

// AnonymousPayload is the inbound payload for anonymous-message.
type AnonymousPayload struct {
	GuestID string `json:"guest_id"`
	Content string `json:"content"`
}

// Gateway authenticates WebSocket connections and relays message, typing
// and broadcast events between the message service and connected clients.
// It performs no retries and no queuing: delivery is at-most-once, on top
// of the authoritative store.
type Gateway struct {
	cfg      *config.Config
	hub      *Hub
	messages *message.Service
	tokens   *auth.TokenService
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func New(cfg *config.Config, hub *Hub, messages *message.Service, tokens *auth.TokenService, log zerolog.Logger) *Gateway {
	return &Gateway{
		cfg:      cfg,
		hub:      hub,
		messages: messages,
		tokens:   tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: log.With().Str("component", "gateway").Logger(),
	}
}

// Hub exposes the connection registry, used as the event broadcaster.
func (g *Gateway) Hub() *Hub {
	return g.hub
}

// HandleWS authenticates and upgrades a connection, then serves it until
// disconnect. An invalid credential is rejected before the upgrade and the
// connection never joins any channel.
func (g *Gateway) HandleWS(c *gin.Context) {
	token := auth.BearerToken(c)
	claims, err := g.tokens.Validate(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := newClient(userID, conn, g.cfg.WSSendBufferSize, g.log)
	g.hub.Register(client)
	g.log.Info().Uint("user_id", userID).Msg("gateway connection opened")

	go client.writePump(g.cfg.WSWriteTimeout, g.cfg.WSPongTimeout)
	g.readLoop(c.Request.Context(), client)
}

func (g *Gateway) readLoop(ctx context.Context, client *Client) {
	defer func() {
		g.hub.Unregister(client)
		g.log.Info().Uint("user_id", client.userID).Msg("gateway connection closed")
	}()

	client.conn.SetReadLimit(g.cfg.WSMaxMessageBytes)
	client.conn.SetReadDeadline(time.Now().Add(g.cfg.WSPongTimeout))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(g.cfg.WSPongTimeout))
		return nil
	})

	for {
		var frame struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := client.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Debug().Err(err).Msg("gateway read error")
			}
			return
		}
		client.conn.SetReadDeadline(time.Now().Add(g.cfg.WSPongTimeout))

		g.dispatch(ctx, client, frame.Event, frame.Data)
	}
}

func (g *Gateway) dispatch(ctx context.Context, client *Client, eventName string, data json.RawMessage) {
	switch eventName {
	case eventJoin:
		// Idempotent: the connection is already bound at registration.
		g.hub.Join(client)
		metrics.RecordGatewayEvent(eventJoin, "ok")
	case eventSendMessage:
		g.handleSendMessage(ctx, client, data)
	case eventTyping:
		g.handleTyping(client, data)
	case eventAnonymous:
		g.handleAnonymous(ctx, client, data)
	default:
		g.hub.EmitTo(client, Envelope{
			Event: eventMessageError,
			Data:  map[string]string{"message": "unsupported event: " + eventName},
		})
	}
}

// handleSendMessage persists first, then notifies. The persisted message
// (carrying its durable id) goes to the receiver's channel; the send
// confirmation goes to the originating connection only. A persist failure is
// reported to the sender only and nothing is broadcast.
func (g *Gateway) handleSendMessage(ctx context.Context, client *Client, data json.RawMessage) {
	var payload SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.emitSendError(client, payload.ClientRef, "invalid send_message payload")
		return
	}
	if payload.SenderID != client.userID {
		g.emitSendError(client, payload.ClientRef, "sender does not match authenticated user")
		return
	}

	msg, err := g.messages.Send(ctx, payload.SenderID, payload.ReceiverID, payload.Content, payload.IsAnonymous)
	if err != nil {
		g.log.Error().Err(err).Uint("sender_id", client.userID).Msg("persist message failed")
		g.emitSendError(client, payload.ClientRef, "message could not be saved")
		return
	}

	metrics.MessagesSentTotal.Inc()
	metrics.RecordGatewayEvent(eventSendMessage, "ok")

	g.hub.EmitToUser(payload.ReceiverID, Envelope{Event: eventReceiveMessage, Data: msg})
	g.hub.EmitTo(client, Envelope{
		Event: eventMessageSent,
		Data: map[string]interface{}{
			"message":    msg,
			"client_ref": payload.ClientRef,
		},
	})
}

// handleTyping is fire-and-forget: no persistence, no acknowledgement, no
// retry. Lost typing events are acceptable.
func (g *Gateway) handleTyping(client *Client, data json.RawMessage) {
	var payload TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	if payload.SenderID != client.userID {
		return
	}

	metrics.RecordGatewayEvent(eventTyping, "ok")
	g.hub.EmitToUser(payload.ReceiverID, Envelope{Event: eventUserTyping, Data: payload})
}

// handleAnonymous persists the shared-room message and broadcasts it to
// every connected client. Anonymity means the sender label is a throwaway,
// not that distribution is restricted.
func (g *Gateway) handleAnonymous(ctx context.Context, client *Client, data json.RawMessage) {
	var payload AnonymousPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.emitSendError(client, "", "invalid anonymous-message payload")
		return
	}

	msg, err := g.messages.SendAnonymous(ctx, payload.GuestID, payload.Content)
	if err != nil {
		g.log.Error().Err(err).Msg("persist anonymous message failed")
		g.emitSendError(client, "", "message could not be saved")
		return
	}

	metrics.RecordGatewayEvent(eventAnonymous, "ok")
	g.hub.Broadcast(eventAnonymous, msg)
}

func (g *Gateway) emitSendError(client *Client, clientRef, reason string) {
	metrics.RecordGatewayEvent(eventSendMessage, "error")
	g.hub.EmitTo(client, Envelope{
		Event: eventMessageError,
		Data: map[string]string{
			"message":    reason,
			"client_ref": clientRef,
		},
	})
}
