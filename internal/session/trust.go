// internal/session/trust.go
package session

// TrustState holds the assistant's mutable learning metrics. Single
// instance per session, mutated only by the orchestrator loop and the
// decision handler; every update clamps back into the declared range.
type TrustState struct {
	Confidence         float64
	SuccessRate        float64
	TruthScore         float64
	AdaptationRate     float64
	PredictionAccuracy float64
	LearningVelocity   float64
	CollaborationScore float64

	HumanOverrideCount   int
	TotalSessions        int64
	DimensionsAnalyzed   int
	OnChainVerified      bool
	HumanDecisionPending bool
}

func NewTrustState() *TrustState {
	return &TrustState{
		Confidence:         0.76,
		SuccessRate:        0.83,
		TruthScore:         0.89,
		AdaptationRate:     0.73,
		PredictionAccuracy: 0.81,
		LearningVelocity:   0.94,
		CollaborationScore: 0.91,
		DimensionsAnalyzed: 127,
	}
}

func clampMax(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}

func clampMin(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}

// ApplyLearning distributes one bounded gain across the learning fields.
// Each field absorbs the gain at its own rate; all stay within [0,1].
func (t *TrustState) ApplyLearning(gain float64) {
	t.AdaptationRate = clampMax(t.AdaptationRate+gain, 1.0)
	t.PredictionAccuracy = clampMax(t.PredictionAccuracy+gain*0.8, 1.0)
	t.TruthScore = clampMax(t.TruthScore+gain*1.2, 1.0)
	t.LearningVelocity = clampMax(t.LearningVelocity+gain*0.5, 1.0)
	t.CollaborationScore = clampMax(t.CollaborationScore+gain*0.6, 1.0)
	t.TotalSessions++
}

// BumpConfidence is the per-query confidence step.
func (t *TrustState) BumpConfidence() {
	t.Confidence = clampMax(t.Confidence+0.005, 0.99)
}

// MarkOnChainVerified records a successful quest round trip and syncs the
// session count to the contract's reported total.
func (t *TrustState) MarkOnChainVerified(totalQuests int64) {
	t.OnChainVerified = true
	t.TotalSessions = totalQuests
}

// RecordAccept applies the accept deltas. Modify shares them.
func (t *TrustState) RecordAccept() {
	t.SuccessRate = clampMax(t.SuccessRate+0.01, 0.99)
	t.Confidence = clampMax(t.Confidence+0.005, 0.95)
	t.recordDecision()
}

// RecordReject applies the reject deltas.
func (t *TrustState) RecordReject() {
	t.HumanOverrideCount++
	t.Confidence = clampMin(t.Confidence-0.003, 0.5)
	t.recordDecision()
}

func (t *TrustState) recordDecision() {
	t.CollaborationScore = clampMax(t.CollaborationScore+0.005, 1.0)
	t.AdaptationRate = clampMax(t.AdaptationRate+0.002, 1.0)
	t.DimensionsAnalyzed++
	t.HumanDecisionPending = false
}
