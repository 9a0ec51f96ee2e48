package message

import "sort"

// DeriveSummaries folds a user's messages into one summary per counterpart.
// The most recent message supplies the last-message fields and the unread
// count is the number of unseen messages where the user is the receiver.
// The result is sorted most recently active first.
func DeriveSummaries(selfID uint, msgs []*Message) []ConversationSummary {
	byCounterpart := make(map[uint]*ConversationSummary)

	for _, msg := range msgs {
		counterpart := msg.SenderID
		if counterpart == selfID {
			counterpart = msg.ReceiverID
		}
		if counterpart == selfID {
			continue
		}

		summary, ok := byCounterpart[counterpart]
		if !ok {
			summary = &ConversationSummary{UserID: counterpart}
			byCounterpart[counterpart] = summary
		}

		if !msg.Timestamp.Before(summary.LastMessageTime) {
			summary.LastMessage = msg.Content
			summary.LastMessageTime = msg.Timestamp
			summary.IsAnonymous = msg.IsAnonymous
		}
		if msg.ReceiverID == selfID && !msg.Seen {
			summary.UnreadCount++
		}
	}

	summaries := make([]ConversationSummary, 0, len(byCounterpart))
	for _, summary := range byCounterpart {
		summaries = append(summaries, *summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastMessageTime.After(summaries[j].LastMessageTime)
	})

	return summaries
}
