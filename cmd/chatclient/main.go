// Command chatclient is a terminal client for the realtime gateway. It keeps
// a local reconciled view of one conversation while messages flow both ways,
// so an optimistic send, its confirmation and a concurrent push all collapse
// into a single consistent list.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/gorilla/websocket"

	"github.com/mb-aarfi/glbconnect-sub000/pkg/chatstate"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerURL         string        `env:"CHAT_SERVER_URL" envDefault:"ws://localhost:8090/ws"`
	Token             string        `env:"CHAT_TOKEN,notEmpty"`
	SelfID            uint          `env:"CHAT_SELF_ID,notEmpty"`
	PeerID            uint          `env:"CHAT_PEER_ID,notEmpty"`
	ReconnectAttempts int           `env:"CHAT_RECONNECT_ATTEMPTS" envDefault:"5"`
	ReconnectDelay    time.Duration `env:"CHAT_RECONNECT_DELAY" envDefault:"2s"`
}

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type wireMessage struct {
	ID         uint      `json:"id"`
	SenderID   uint      `json:"sender_id"`
	ReceiverID uint      `json:"receiver_id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Seen       bool      `json:"seen"`
}

type sentConfirmation struct {
	Message   wireMessage `json:"message"`
	ClientRef string      `json:"client_ref"`
}

type sendError struct {
	Message   string `json:"message"`
	ClientRef string `json:"client_ref"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatclient: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dial := func(ctx context.Context) (*websocket.Conn, error) {
		return connect(ctx, cfg)
	}

	conn, err := dial(ctx)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		if conn != nil {
			conn.Close()
		}
	}()

	store := chatstate.NewStore(cfg.SelfID, nil)
	store.Open(cfg.PeerID, nil)
	fmt.Printf(">>> connected to %s, chatting with user %d (Ctrl+C to quit)\n", cfg.ServerURL, cfg.PeerID)

	recvErr := make(chan error, 1)
	go func(c *websocket.Conn) { recvErr <- receive(c, store, cfg) }(conn)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("closing...")
			return exitOK, nil
		case cause := <-recvErr:
			if ctx.Err() != nil {
				return exitOK, nil
			}
			conn.Close()
			conn, err = redial(ctx, dial, cfg.ReconnectAttempts, cfg.ReconnectDelay, cause)
			if err != nil {
				if ctx.Err() != nil {
					return exitOK, nil
				}
				return exitRuntime, err
			}
			fmt.Printf(">>> reconnected to %s\n", cfg.ServerURL)
			go func(c *websocket.Conn) { recvErr <- receive(c, store, cfg) }(conn)
		case line, ok := <-lines:
			if !ok {
				return exitOK, nil
			}
			if line == "" {
				continue
			}
			entry := store.Send(cfg.PeerID, line)
			payload := map[string]interface{}{
				"sender_id":   cfg.SelfID,
				"receiver_id": cfg.PeerID,
				"content":     line,
				"client_ref":  entry.ID,
			}
			data, _ := json.Marshal(payload)
			if err := conn.WriteJSON(envelope{Event: "send_message", Data: data}); err != nil {
				store.Fail(cfg.PeerID, entry.ID)
				fmt.Printf("!!! send failed: %v\n", err)
			}
		}
	}
}

// connect dials the gateway and joins the user's channel.
func connect(ctx context.Context, cfg Config) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, cfg.ServerURL+"?token="+cfg.Token, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.ServerURL, err)
	}
	if err := conn.WriteJSON(envelope{Event: "join"}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("join: %w", err)
	}
	return conn, nil
}

type dialFunc func(ctx context.Context) (*websocket.Conn, error)

// redial retries the dial with a fixed delay between attempts, giving up once
// the budget is spent. cause is the error that cost us the connection.
func redial(ctx context.Context, dial dialFunc, attempts int, delay time.Duration, cause error) (*websocket.Conn, error) {
	for attempt := 1; attempt <= attempts; attempt++ {
		fmt.Printf("!!! connection lost (%v), retrying %d/%d\n", cause, attempt, attempts)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		conn, err := dial(ctx)
		if err == nil {
			return conn, nil
		}
		cause = err
	}
	return nil, fmt.Errorf("connection lost after %d attempts: %w", attempts, cause)
}

// receive applies every server event to the local store and prints the
// resulting view changes.
func receive(conn *websocket.Conn, store *chatstate.Store, cfg Config) error {
	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			return err
		}

		switch env.Event {
		case "receive_message":
			var msg wireMessage
			if err := json.Unmarshal(env.Data, &msg); err != nil {
				continue
			}
			store.Push(toEntry(msg))
			fmt.Printf("[%s] them: %s\n", msg.Timestamp.Format(time.TimeOnly), msg.Content)
		case "message_sent":
			var conf sentConfirmation
			if err := json.Unmarshal(env.Data, &conf); err != nil {
				continue
			}
			store.Confirm(cfg.PeerID, conf.ClientRef, toEntry(conf.Message))
			fmt.Printf("[%s] you (#%d): delivered\n", conf.Message.Timestamp.Format(time.TimeOnly), conf.Message.ID)
		case "message_error":
			var fail sendError
			if err := json.Unmarshal(env.Data, &fail); err != nil {
				continue
			}
			if fail.ClientRef != "" {
				store.Fail(cfg.PeerID, fail.ClientRef)
			}
			fmt.Printf("!!! %s\n", fail.Message)
		case "user_typing":
			store.SetTyping(cfg.PeerID)
			fmt.Printf("... user %d is typing\n", cfg.PeerID)
		case "anonymous-message":
			var msg struct {
				GuestID string `json:"guest_id"`
				Content string `json:"content"`
			}
			if err := json.Unmarshal(env.Data, &msg); err != nil {
				continue
			}
			fmt.Printf("(room) %s: %s\n", msg.GuestID, msg.Content)
		}
	}
}

func toEntry(msg wireMessage) chatstate.Entry {
	return chatstate.Entry{
		ID:         chatstate.DurableID(msg.ID),
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
		Timestamp:  msg.Timestamp,
		Seen:       msg.Seen,
	}
}
