package mastery

import "time"

// Tracker is the surface the CLI and TUI consume: either tracker can drive a
// practice session. Implementations assume single-writer access per skill
// key; see the package types for the full contract.
type Tracker interface {
	Mastery(topicID, subtopicID string) float64
	Update(topicID, subtopicID string, correct bool, responseTime time.Duration) float64
	RecommendedDifficulty(topicID, subtopicID string) float64
	Reset(topicID, subtopicID string)
	ResetAll()
}

var (
	_ Tracker = (*BKTTracker)(nil)
	_ Tracker = (*EMATracker)(nil)
)
