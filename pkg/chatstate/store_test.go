package chatstate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mb-aarfi/glbconnect-sub000/pkg/chatstate"
)

func TestStore_SendConfirmRoundTrip(t *testing.T) {
	store := chatstate.NewStore(1, nil)
	store.Open(2, nil)

	entry := store.Send(2, "hello")
	require.True(t, chatstate.IsTempID(entry.ID))

	store.Confirm(2, entry.ID, chatstate.Entry{
		ID:         chatstate.DurableID(10),
		SenderID:   1,
		ReceiverID: 2,
		Content:    "hello",
		Timestamp:  entry.Timestamp.Add(50 * time.Millisecond),
	})

	conv := store.Conversation(2)
	require.Len(t, conv, 1)
	assert.Equal(t, "10", conv[0].ID)
	assert.False(t, conv[0].Pending)
}

func TestStore_PushToOpenConversationMarksSeen(t *testing.T) {
	var acked []string
	store := chatstate.NewStore(1, func(id string) { acked = append(acked, id) })
	store.Open(2, nil)

	store.Push(chatstate.Entry{
		ID:         chatstate.DurableID(5),
		SenderID:   2,
		ReceiverID: 1,
		Content:    "hi",
		Timestamp:  time.Now(),
	})

	require.Equal(t, []string{"5"}, acked)
	conv := store.Conversation(2)
	require.Len(t, conv, 1)
	assert.True(t, conv[0].Seen)

	summaries := store.Summaries()
	require.Len(t, summaries, 1)
	assert.Zero(t, summaries[0].Unread)
}

func TestStore_PushToOtherConversationIncrementsUnread(t *testing.T) {
	var acked []string
	store := chatstate.NewStore(1, func(id string) { acked = append(acked, id) })
	store.Open(2, nil)

	store.Push(chatstate.Entry{
		ID:         chatstate.DurableID(6),
		SenderID:   3,
		ReceiverID: 1,
		Content:    "pssst",
		Timestamp:  time.Now(),
	})

	assert.Empty(t, acked)
	summaries := store.Summaries()
	require.Len(t, summaries, 2)
	for _, summary := range summaries {
		if summary.PeerID == 3 {
			assert.Equal(t, 1, summary.Unread)
		}
	}
}

func TestStore_OpenResetsUnread(t *testing.T) {
	store := chatstate.NewStore(1, nil)
	store.Push(chatstate.Entry{
		ID:         chatstate.DurableID(7),
		SenderID:   3,
		ReceiverID: 1,
		Content:    "unread",
		Timestamp:  time.Now(),
	})

	store.Open(3, nil)

	summaries := store.Summaries()
	require.Len(t, summaries, 1)
	assert.Zero(t, summaries[0].Unread)
}

func TestStore_SummariesOrderedByActivity(t *testing.T) {
	store := chatstate.NewStore(1, nil)
	now := time.Now()

	store.Push(chatstate.Entry{ID: "1", SenderID: 2, ReceiverID: 1, Content: "older", Timestamp: now.Add(-time.Hour)})
	store.Push(chatstate.Entry{ID: "2", SenderID: 3, ReceiverID: 1, Content: "newer", Timestamp: now})
	store.SetSummaries([]chatstate.ConversationSummary{{PeerID: 4, Name: "quiet"}})

	summaries := store.Summaries()
	require.Len(t, summaries, 3)
	assert.Equal(t, uint(3), summaries[0].PeerID)
	assert.Equal(t, uint(2), summaries[1].PeerID)
	assert.Equal(t, uint(4), summaries[2].PeerID)
}

func TestStore_FailedSendStaysVisible(t *testing.T) {
	store := chatstate.NewStore(1, nil)
	store.Open(2, nil)

	entry := store.Send(2, "will fail")
	store.Fail(2, entry.ID)

	conv := store.Conversation(2)
	require.Len(t, conv, 1)
	assert.True(t, conv[0].Failed)
	assert.True(t, conv[0].Pending)
}

func TestStore_RefreshAfterFailureDropsNothing(t *testing.T) {
	store := chatstate.NewStore(1, nil)
	store.Open(2, nil)

	entry := store.Send(2, "lost send")
	store.Fail(2, entry.ID)

	// The failed send never reached the server, so a refresh does not
	// contain it.
	store.Refresh(2, []chatstate.Entry{
		{ID: "1", SenderID: 2, ReceiverID: 1, Content: "from them", Timestamp: time.Now().Add(-time.Minute)},
	})

	conv := store.Conversation(2)
	require.Len(t, conv, 2)
	var failed int
	for _, e := range conv {
		if e.Failed {
			failed++
		}
	}
	assert.Equal(t, 1, failed)
}

func TestStore_TypingIndicator(t *testing.T) {
	store := chatstate.NewStore(1, nil)

	assert.False(t, store.IsTyping(2))
	store.SetTyping(2)
	assert.True(t, store.IsTyping(2))
}
