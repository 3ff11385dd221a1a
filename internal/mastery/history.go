package mastery

// History is a bounded append-only buffer that drops its oldest entries once
// the cap is reached. Both trackers keep a live history of 50 entries but
// persist only the most recent 20, so the export length is a parameter of
// Last, not of the buffer.
type History[T any] struct {
	cap   int
	items []T
}

// NewHistory returns a history bounded to the given capacity. Capacities
// below 1 are coerced to 1.
func NewHistory[T any](capacity int) *History[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &History[T]{cap: capacity}
}

// Append adds an entry, evicting the oldest if the buffer is full.
func (h *History[T]) Append(v T) {
	h.items = append(h.items, v)
	if len(h.items) > h.cap {
		h.items = h.items[len(h.items)-h.cap:]
	}
}

// Len returns the number of stored entries.
func (h *History[T]) Len() int { return len(h.items) }

// Values returns a copy of all stored entries, oldest first.
func (h *History[T]) Values() []T {
	return append([]T(nil), h.items...)
}

// Last returns a copy of the most recent n entries, oldest first. It returns
// everything when n exceeds the stored count.
func (h *History[T]) Last(n int) []T {
	if n >= len(h.items) {
		return h.Values()
	}
	return append([]T(nil), h.items[len(h.items)-n:]...)
}

const (
	// liveHistoryCap bounds the in-memory history per skill.
	liveHistoryCap = 50
	// persistedHistoryCap bounds the history slice written by Snapshot.
	persistedHistoryCap = 20
)

// skillKey joins topic and subtopic into the map key used by both trackers.
func skillKey(topicID, subtopicID string) string {
	if subtopicID != "" {
		return topicID + ":" + subtopicID
	}
	return topicID
}
