package chatstate

import "sort"

// Source identifies which path an incoming observation arrived on.
type Source int

const (
	// SourceOptimistic is the local insert performed at send time.
	SourceOptimistic Source = iota
	// SourceConfirmation is the authoritative response to that send.
	SourceConfirmation
	// SourcePush is an asynchronous gateway notification.
	SourcePush
	// SourceHistory is a full history refresh from the store.
	SourceHistory
)

// Incoming is one observation to reconcile into a conversation view.
type Incoming struct {
	Source Source
	// Entry carries the observed message for Optimistic, Confirmation and
	// Push sources.
	Entry Entry
	// TempID names the optimistic entry a Confirmation resolves.
	TempID string
	// Rows carries the full history for a History refresh.
	Rows []Entry
}

// Apply reconciles one observation into the list and returns the new list,
// always sorted ascending by timestamp. It never mutates its input. The
// result is independent of the order in which a confirmation and a push for
// the same logical send are applied.
func Apply(list []Entry, in Incoming) []Entry {
	switch in.Source {
	case SourceOptimistic:
		return applyOptimistic(list, in.Entry)
	case SourceConfirmation:
		return applyConfirmation(list, in.TempID, in.Entry)
	case SourcePush:
		return applyPush(list, in.Entry)
	case SourceHistory:
		return applyHistory(list, in.Rows)
	default:
		return sortedCopy(list)
	}
}

func applyOptimistic(list []Entry, entry Entry) []Entry {
	entry.Pending = true
	out := append(sortedCopy(list), entry)
	sortByTimestamp(out)
	return out
}

// applyConfirmation relabels the temp entry in place with its durable id.
// The entry is never re-inserted. If the temp entry is gone the
// confirmation degrades to a push so the message is still not lost.
func applyConfirmation(list []Entry, tempID string, confirmed Entry) []Entry {
	out := sortedCopy(list)
	for i := range out {
		if out[i].ID == tempID {
			out[i].ID = confirmed.ID
			out[i].Timestamp = confirmed.Timestamp
			out[i].Seen = confirmed.Seen
			out[i].Pending = false
			out[i].Failed = false
			sortByTimestamp(out)
			return out
		}
	}
	return applyPush(out, confirmed)
}

// applyPush appends the entry unless it duplicates an existing one, either
// by durable id or by the fuzzy content test.
func applyPush(list []Entry, entry Entry) []Entry {
	out := sortedCopy(list)
	if isDuplicate(out, entry) {
		return out
	}
	out = append(out, entry)
	sortByTimestamp(out)
	return out
}

// applyHistory keeps every non-temporary existing entry plus all pending
// temp entries, then appends each history row that is genuinely new under
// the same duplicate test. An in-flight optimistic send survives the
// refresh.
func applyHistory(list []Entry, rows []Entry) []Entry {
	out := sortedCopy(list)
	for _, row := range rows {
		if isDuplicate(out, row) {
			continue
		}
		out = append(out, row)
	}
	sortByTimestamp(out)
	return out
}

// MarkFailed flags a pending entry after a transient send failure.
func MarkFailed(list []Entry, tempID string) []Entry {
	out := sortedCopy(list)
	for i := range out {
		if out[i].ID == tempID {
			out[i].Failed = true
			break
		}
	}
	return out
}

// MarkSeen flips the seen flag on the entry with the given id.
func MarkSeen(list []Entry, id string) []Entry {
	out := sortedCopy(list)
	for i := range out {
		if out[i].ID == id {
			out[i].Seen = true
			break
		}
	}
	return out
}

func isDuplicate(list []Entry, entry Entry) bool {
	for i := range list {
		if !IsTempID(entry.ID) && list[i].ID == entry.ID {
			return true
		}
		if sameMessage(list[i], entry) {
			return true
		}
	}
	return false
}

func sortedCopy(list []Entry) []Entry {
	out := make([]Entry, len(list))
	copy(out, list)
	sortByTimestamp(out)
	return out
}

func sortByTimestamp(list []Entry) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.Before(list[j].Timestamp)
	})
}
