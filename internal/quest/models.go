// internal/quest/models.go
package quest

import (
	"time"

	"echo3/internal/ledger"
)

// Truth level display names, indexed by the on-chain level (0..4).
var truthLabels = [5]string{
	"Seeking Truth...",
	"Partial Truth Revealed",
	"Significant Discovery",
	"Profound Insight",
	"Ultimate Truth",
}

// Quest is the typed view of an on-chain quest record.
type Quest struct {
	ID           int64
	Seeker       string
	Question     string
	RandomResult int64
	IsComplete   bool
	Timestamp    time.Time
	TruthLevel   uint8
}

// TruthLabel renders the quest's level as its display name. Levels beyond
// the known range fall back to the seeking state.
func (q Quest) TruthLabel() string {
	if int(q.TruthLevel) >= len(truthLabels) {
		return truthLabels[0]
	}
	return truthLabels[q.TruthLevel]
}

func fromRecord(r ledger.QuestRecord) Quest {
	return Quest{
		ID:           r.QuestID,
		Seeker:       r.Seeker,
		Question:     r.Question,
		RandomResult: r.RandomResult,
		IsComplete:   r.IsComplete,
		Timestamp:    time.Unix(r.Timestamp, 0),
		TruthLevel:   r.TruthLevel,
	}
}

// Result is the outcome of a full quest round trip.
type Result struct {
	Quest        Quest
	TruthMessage string
	TxHash       string
	BlockNumber  int64
	TotalQuests  int64
}
