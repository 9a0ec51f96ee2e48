// Package chatstate reconciles the three concurrent sources a chat client
// observes for the same logical message: its own optimistic insert, the
// authoritative send confirmation, and an asynchronous push that may arrive
// in either order relative to the confirmation. It produces one ordered,
// duplicate-free view per conversation and an activity-ordered summary list.
package chatstate

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DedupWindow is how far apart two timestamps may be for two observations
// of the same (sender, receiver, content) triple to count as one message.
// The optimistic entry carries a client-stamped timestamp and the push
// carries the server's; for the same logical send they differ slightly.
const DedupWindow = time.Second

const tempIDPrefix = "tmp_"

// Entry is one message in a conversation view. ID is either a durable
// server id (decimal string) or a client-generated temporary id.
type Entry struct {
	ID         string
	SenderID   uint
	ReceiverID uint
	Content    string
	Timestamp  time.Time
	Seen       bool
	// Pending marks an optimistic entry whose durable id has not arrived.
	Pending bool
	// Failed marks a pending entry whose send was reported failed. The
	// entry stays visible: "sent but not saved", never a silent loss.
	Failed bool
}

// NewTempID returns a fresh client-generated temporary id.
func NewTempID() string {
	return tempIDPrefix + uuid.NewString()
}

// IsTempID reports whether an id is client-generated.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, tempIDPrefix)
}

// DurableID formats a server-assigned numeric id as an entry id.
func DurableID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// sameMessage is the duplicate test: identical triple with timestamps
// within DedupWindow of each other.
func sameMessage(a, b Entry) bool {
	if a.SenderID != b.SenderID || a.ReceiverID != b.ReceiverID || a.Content != b.Content {
		return false
	}
	delta := a.Timestamp.Sub(b.Timestamp)
	if delta < 0 {
		delta = -delta
	}
	return delta <= DedupWindow
}
