package message_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/message"
)

func msg(id, sender, receiver uint, content string, at time.Time, seen bool) *message.Message {
	return &message.Message{
		ID:         id,
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    content,
		Timestamp:  at,
		Seen:       seen,
	}
}

func TestDeriveSummaries_OnePerCounterpart(t *testing.T) {
	now := time.Now()
	msgs := []*message.Message{
		msg(1, 2, 1, "hi", now.Add(-3*time.Hour), true),
		msg(2, 1, 2, "hello", now.Add(-2*time.Hour), true),
		msg(3, 3, 1, "yo", now.Add(-time.Hour), false),
	}

	summaries := message.DeriveSummaries(1, msgs)
	require.Len(t, summaries, 2)
}

func TestDeriveSummaries_MostRecentMessageWins(t *testing.T) {
	now := time.Now()
	msgs := []*message.Message{
		msg(1, 2, 1, "first", now.Add(-2*time.Hour), true),
		msg(2, 1, 2, "latest", now, false),
	}

	summaries := message.DeriveSummaries(1, msgs)
	require.Len(t, summaries, 1)
	assert.Equal(t, "latest", summaries[0].LastMessage)
	assert.Equal(t, now, summaries[0].LastMessageTime)
}

func TestDeriveSummaries_UnreadCountsOnlyIncomingUnseen(t *testing.T) {
	now := time.Now()
	msgs := []*message.Message{
		msg(1, 2, 1, "unseen in", now.Add(-3*time.Minute), false),
		msg(2, 2, 1, "seen in", now.Add(-2*time.Minute), true),
		msg(3, 1, 2, "unseen out", now.Add(-time.Minute), false),
	}

	summaries := message.DeriveSummaries(1, msgs)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].UnreadCount)
}

func TestDeriveSummaries_SortedByRecency(t *testing.T) {
	now := time.Now()
	msgs := []*message.Message{
		msg(1, 2, 1, "old", now.Add(-2*time.Hour), true),
		msg(2, 3, 1, "new", now, true),
	}

	summaries := message.DeriveSummaries(1, msgs)
	require.Len(t, summaries, 2)
	assert.Equal(t, uint(3), summaries[0].UserID)
	assert.Equal(t, uint(2), summaries[1].UserID)
}

func TestDeriveSummaries_EmptyInput(t *testing.T) {
	assert.Empty(t, message.DeriveSummaries(1, nil))
}
