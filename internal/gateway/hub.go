package gateway

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/event"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/metrics"
)

// Envelope is the wire frame for every gateway event, inbound and outbound.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Hub tracks live connections. Each user id is a logical channel holding
// every connection that user currently has open (multiple tabs). All
// connections additionally belong to the shared broadcast set, which doubles
// as the anonymous room. The hub never persists anything.
type Hub struct {
	mu       sync.RWMutex
	channels map[uint]map[*Client]struct{}
	all      map[*Client]struct{}
	log      zerolog.Logger
}

var _ event.Broadcaster = (*Hub)(nil)

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		channels: make(map[uint]map[*Client]struct{}),
		all:      make(map[*Client]struct{}),
		log:      log.With().Str("component", "gateway-hub").Logger(),
	}
}

// Register adds a connection to the broadcast set and to its user's channel.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.all[client] = struct{}{}
	h.joinLocked(client)
	metrics.GatewayConnections.Inc()
}

// Join idempotently (re)binds the connection to its user's channel.
func (h *Hub) Join(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.joinLocked(client)
}

func (h *Hub) joinLocked(client *Client) {
	conns, ok := h.channels[client.userID]
	if !ok {
		conns = make(map[*Client]struct{})
		h.channels[client.userID] = conns
	}
	conns[client] = struct{}{}
}

// Unregister removes a connection from every channel and room.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}
	delete(h.all, client)

	if conns, ok := h.channels[client.userID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.channels, client.userID)
		}
	}

	client.close()
	metrics.GatewayConnections.Dec()
}

// EmitToUser delivers an envelope to every live connection of one user.
// Best effort: users with no connection simply miss the push; the store
// remains the source of truth.
func (h *Hub) EmitToUser(userID uint, env Envelope) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.channels[userID]))
	for client := range h.channels[userID] {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		h.deliver(client, env)
	}
}

// EmitTo delivers an envelope to one specific connection.
func (h *Hub) EmitTo(client *Client, env Envelope) {
	h.deliver(client, env)
}

// Broadcast delivers an envelope to every live connection.
func (h *Hub) Broadcast(eventName string, payload interface{}) {
	env := Envelope{Event: eventName, Data: payload}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.all))
	for client := range h.all {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		h.deliver(client, env)
	}
}

// deliver pushes onto the client's buffered send queue. A connection that is
// already shutting down is skipped; one whose queue is full is dropped rather
// than blocked on.
func (h *Hub) deliver(client *Client, env Envelope) {
	select {
	case <-client.done:
	case client.send <- env:
	default:
		h.log.Warn().Uint("user_id", client.userID).Msg("dropping slow gateway connection")
		h.Unregister(client)
	}
}

// ConnectionCount reports the number of live connections for a user.
func (h *Hub) ConnectionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[userID])
}
