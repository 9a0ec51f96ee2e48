package gateway

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Client is one live WebSocket connection bound to an authenticated user.
// send is never closed: shutdown is signalled through done, so a broadcaster
// holding a stale target snapshot can still send without panicking.
type Client struct {
	userID    uint
	conn      *websocket.Conn
	send      chan Envelope
	done      chan struct{}
	closeOnce sync.Once
	log       zerolog.Logger
}

func newClient(userID uint, conn *websocket.Conn, sendBuffer int, log zerolog.Logger) *Client {
	return &Client{
		userID: userID,
		conn:   conn,
		send:   make(chan Envelope, sendBuffer),
		done:   make(chan struct{}),
		log:    log.With().Uint("user_id", userID).Logger(),
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// writePump drains the send queue onto the socket and keeps the connection
// alive with pings. Runs in its own goroutine per connection.
func (c *Client) writePump(writeTimeout, pongTimeout time.Duration) {
	pingInterval := pongTimeout * 9 / 10
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case env := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(env); err != nil {
				c.log.Debug().Err(err).Msg("gateway write failed")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
