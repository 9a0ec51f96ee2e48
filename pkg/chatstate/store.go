package chatstate

import (
	"sort"
	"sync"
	"time"
)

// TypingTTL is how long a typing indicator stays visible without a refresh.
const TypingTTL = 3 * time.Second

// ConversationSummary is the client-side view over one counterpart.
type ConversationSummary struct {
	PeerID       uint
	Name         string
	LastMessage  string
	LastActivity time.Time
	Unread       int
}

// MarkSeenFunc is invoked when a pushed message lands in the currently open
// conversation and should be acknowledged against the server.
type MarkSeenFunc func(messageID string)

// Store holds every conversation view for one signed-in user. All methods
// are safe to call from the gateway read goroutine and UI code concurrently;
// each event re-derives duplicate status against the state current at that
// moment, so interleaving with in-flight sends cannot reintroduce
// duplicates.
type Store struct {
	mu            sync.Mutex
	selfID        uint
	conversations map[uint][]Entry
	summaries     map[uint]*ConversationSummary
	openPeer      uint
	typingUntil   map[uint]time.Time
	markSeen      MarkSeenFunc
	now           func() time.Time
}

func NewStore(selfID uint, markSeen MarkSeenFunc) *Store {
	if markSeen == nil {
		markSeen = func(string) {}
	}
	return &Store{
		selfID:        selfID,
		conversations: make(map[uint][]Entry),
		summaries:     make(map[uint]*ConversationSummary),
		typingUntil:   make(map[uint]time.Time),
		markSeen:      markSeen,
		now:           time.Now,
	}
}

// Open marks a conversation as the visible one and merges its fetched
// history. Pending optimistic entries survive the merge.
func (s *Store) Open(peerID uint, history []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.openPeer = peerID
	s.conversations[peerID] = Apply(s.conversations[peerID], Incoming{
		Source: SourceHistory,
		Rows:   history,
	})
	if summary := s.summaries[peerID]; summary != nil {
		summary.Unread = 0
	}
	s.touchLocked(peerID, s.conversations[peerID])
}

// Close clears the open conversation.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openPeer = 0
}

// Send inserts an optimistic entry and returns it so the caller can
// transmit the send and later resolve the temp id.
func (s *Store) Send(peerID uint, content string) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		ID:         NewTempID(),
		SenderID:   s.selfID,
		ReceiverID: peerID,
		Content:    content,
		Timestamp:  s.now(),
		Pending:    true,
	}
	s.conversations[peerID] = Apply(s.conversations[peerID], Incoming{
		Source: SourceOptimistic,
		Entry:  entry,
	})
	s.touchLocked(peerID, s.conversations[peerID])
	return entry
}

// Confirm resolves an optimistic entry with its durable counterpart.
func (s *Store) Confirm(peerID uint, tempID string, confirmed Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations[peerID] = Apply(s.conversations[peerID], Incoming{
		Source: SourceConfirmation,
		TempID: tempID,
		Entry:  confirmed,
	})
	s.touchLocked(peerID, s.conversations[peerID])
}

// Fail flags an optimistic entry after a transient send failure. The entry
// stays visible as unconfirmed.
func (s *Store) Fail(peerID uint, tempID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[peerID] = MarkFailed(s.conversations[peerID], tempID)
}

// Push reconciles a pushed message. For the open conversation the message
// is acknowledged immediately; for any other conversation its unread count
// is incremented instead. The mark-seen callback runs outside the lock.
func (s *Store) Push(entry Entry) {
	var ack string

	s.mu.Lock()
	peerID := entry.SenderID
	if peerID == s.selfID {
		peerID = entry.ReceiverID
	}

	before := len(s.conversations[peerID])
	s.conversations[peerID] = Apply(s.conversations[peerID], Incoming{
		Source: SourcePush,
		Entry:  entry,
	})
	appended := len(s.conversations[peerID]) > before

	if appended && entry.ReceiverID == s.selfID {
		if peerID == s.openPeer {
			s.conversations[peerID] = MarkSeen(s.conversations[peerID], entry.ID)
			ack = entry.ID
		} else if summary := s.ensureSummaryLocked(peerID); summary != nil {
			summary.Unread++
		}
	}
	s.touchLocked(peerID, s.conversations[peerID])
	s.mu.Unlock()

	if ack != "" {
		s.markSeen(ack)
	}
}

// Refresh merges a fetched history for a conversation that may or may not
// be open.
func (s *Store) Refresh(peerID uint, history []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations[peerID] = Apply(s.conversations[peerID], Incoming{
		Source: SourceHistory,
		Rows:   history,
	})
	s.touchLocked(peerID, s.conversations[peerID])
}

// Conversation returns a copy of one conversation view.
func (s *Store) Conversation(peerID uint) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.conversations[peerID]
	out := make([]Entry, len(list))
	copy(out, list)
	return out
}

// SetSummaries seeds the summary list from a server fetch.
func (s *Store) SetSummaries(summaries []ConversationSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range summaries {
		summary := summaries[i]
		s.summaries[summary.PeerID] = &summary
	}
}

// Summaries returns conversations ordered most recently active first;
// conversations with no activity sort after all active ones.
func (s *Store) Summaries() []ConversationSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ConversationSummary, 0, len(s.summaries))
	for _, summary := range s.summaries {
		out = append(out, *summary)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.LastActivity.IsZero() != b.LastActivity.IsZero() {
			return !a.LastActivity.IsZero()
		}
		return a.LastActivity.After(b.LastActivity)
	})
	return out
}

// SetTyping records a typing indicator for the peer; it expires after
// TypingTTL unless refreshed.
func (s *Store) SetTyping(peerID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typingUntil[peerID] = s.now().Add(TypingTTL)
}

// IsTyping reports whether the peer's typing indicator is still live.
func (s *Store) IsTyping(peerID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Before(s.typingUntil[peerID])
}

func (s *Store) ensureSummaryLocked(peerID uint) *ConversationSummary {
	summary, ok := s.summaries[peerID]
	if !ok {
		summary = &ConversationSummary{PeerID: peerID}
		s.summaries[peerID] = summary
	}
	return summary
}

func (s *Store) touchLocked(peerID uint, list []Entry) {
	if len(list) == 0 {
		return
	}
	last := list[len(list)-1]
	summary := s.ensureSummaryLocked(peerID)
	summary.LastMessage = last.Content
	summary.LastActivity = last.Timestamp
}
