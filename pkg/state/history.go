package state

// DefaultHistorySize is the ring capacity used when a history is
// created with no explicit size.
const DefaultHistorySize = 32

// ActivityRecord is one completed or in-progress activity in an NPC's
// history.
type ActivityRecord struct {
	ActivityID string  `json:"activity_id"`
	Start      float64 `json:"start"`
	End        float64 `json:"end,omitempty"` // 0 while in progress
}

// ActivityHistory is a fixed-capacity ring buffer of activity records.
// The oldest record is overwritten once the buffer is full; history is
// bounded by construction, never trimmed after the fact.
type ActivityHistory struct {
	Records []ActivityRecord `json:"records"`
	Head    int              `json:"head"` // index of the next write
	Count   int              `json:"count"`
}

// NewActivityHistory creates a ring with the given capacity.
// Non-positive sizes fall back to DefaultHistorySize.
func NewActivityHistory(size int) *ActivityHistory {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &ActivityHistory{Records: make([]ActivityRecord, size)}
}

// Push appends a record, overwriting the oldest entry when full.
func (h *ActivityHistory) Push(rec ActivityRecord) {
	if len(h.Records) == 0 {
		h.Records = make([]ActivityRecord, DefaultHistorySize)
	}
	h.Records[h.Head] = rec
	h.Head = (h.Head + 1) % len(h.Records)
	if h.Count < len(h.Records) {
		h.Count++
	}
}

// Latest returns the most recently pushed record, or nil when empty.
func (h *ActivityHistory) Latest() *ActivityRecord {
	if h.Count == 0 {
		return nil
	}
	idx := (h.Head - 1 + len(h.Records)) % len(h.Records)
	return &h.Records[idx]
}

// All returns records oldest-first. The returned slice is a copy.
func (h *ActivityHistory) All() []ActivityRecord {
	if h.Count == 0 {
		return nil
	}
	out := make([]ActivityRecord, 0, h.Count)
	start := (h.Head - h.Count + len(h.Records)) % len(h.Records)
	for i := 0; i < h.Count; i++ {
		out = append(out, h.Records[(start+i)%len(h.Records)])
	}
	return out
}
