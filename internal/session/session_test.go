// internal/session/session_test.go
package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echo3/internal/advisor"
	"echo3/internal/catalog"
)

const catalogFixture = `{
  "dimensions": [
    {
      "id": "personalized",
      "title": "Personalized Truth",
      "subtitle": "Your DeFi Journey",
      "description": "Portfolio-aware analysis.",
      "badge": "CORE",
      "truthLevel": "Personal Learning Engine",
      "dataSource": "Portfolio API",
      "features": ["history"]
    },
    {
      "id": "security",
      "title": "Security Truth",
      "subtitle": "Risk Shield",
      "description": "Exposure and approval risk.",
      "badge": "SHIELD",
      "truthLevel": "Security Neural Networks",
      "dataSource": "Audit Feeds",
      "features": ["approvals"]
    }
  ]
}`

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cat, err := catalog.Parse([]byte(catalogFixture))
	require.NoError(t, err)
	sel, err := catalog.NewSelection(cat, "personalized")
	require.NoError(t, err)
	return New(sel)
}

func pendingRec() advisor.Recommendation {
	return advisor.Recommendation{
		ID:                    "rec-1",
		Kind:                  "PROTOCOL_ANALYSIS",
		Project:               "Uniswap V4",
		Confidence:            0.9,
		RequiresHumanApproval: true,
	}
}

func TestNewTrustStateDefaults(t *testing.T) {
	trust := NewTrustState()

	assert.Equal(t, 0.76, trust.Confidence)
	assert.Equal(t, 0.83, trust.SuccessRate)
	assert.Equal(t, 0.89, trust.TruthScore)
	assert.Equal(t, 0.91, trust.CollaborationScore)
	assert.Equal(t, 127, trust.DimensionsAnalyzed)
	assert.False(t, trust.OnChainVerified)
	assert.Zero(t, trust.TotalSessions)
}

func TestAppendStampsTrustAndSelection(t *testing.T) {
	sess := newTestSession(t)

	msg := sess.Append(RoleAssistant, "hello", false)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())
	assert.Equal(t, 0.76, msg.Confidence)
	assert.Equal(t, 0.89, msg.TruthScore)
	assert.Equal(t, []string{"personalized"}, msg.Dimensions)
	assert.Equal(t, []string{"Portfolio API"}, msg.DataSources)

	// Dimensions are a snapshot, unaffected by later toggles.
	sess.Selection.Toggle("security")
	assert.Equal(t, []string{"personalized"}, msg.Dimensions)
}

func TestLogAppendOnly(t *testing.T) {
	log := NewLog()
	log.Append(Message{Role: RoleUser, Content: "first"})
	log.Append(Message{Role: RoleAssistant, Content: "second"})

	msgs := log.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Content)

	// Mutating the returned slice must not affect the log.
	msgs[0].Content = "tampered"
	fresh := log.Messages()
	assert.Equal(t, "first", fresh[0].Content)

	last, ok := log.Last()
	require.True(t, ok)
	assert.Equal(t, "second", last.Content)
}

func TestDecideAccept(t *testing.T) {
	sess := newTestSession(t)
	sess.SetPending(pendingRec())
	assert.True(t, sess.Trust.HumanDecisionPending)

	msg, err := sess.Decide(VerdictAccept)
	require.NoError(t, err)

	assert.InDelta(t, 0.84, sess.Trust.SuccessRate, 1e-9)
	assert.InDelta(t, 0.765, sess.Trust.Confidence, 1e-9)
	assert.InDelta(t, 0.915, sess.Trust.CollaborationScore, 1e-9)
	assert.InDelta(t, 0.732, sess.Trust.AdaptationRate, 1e-9)
	assert.Equal(t, 128, sess.Trust.DimensionsAnalyzed)
	assert.False(t, sess.Trust.HumanDecisionPending)
	assert.Equal(t, RoleSystem, msg.Role)
	assert.Contains(t, msg.Content, "Decision recorded: ACCEPT")

	_, stillPending := sess.Pending()
	assert.False(t, stillPending)
}

func TestDecideRejectExactDeltas(t *testing.T) {
	sess := newTestSession(t)
	sess.SetPending(pendingRec())

	before := sess.Trust.Confidence
	_, err := sess.Decide(VerdictReject)
	require.NoError(t, err)

	assert.Equal(t, 1, sess.Trust.HumanOverrideCount)
	assert.InDelta(t, before-0.003, sess.Trust.Confidence, 1e-9)
}

func TestRejectConfidenceFloor(t *testing.T) {
	trust := NewTrustState()
	trust.Confidence = 0.501

	trust.RecordReject()
	assert.InDelta(t, 0.5, trust.Confidence, 1e-9)

	trust.RecordReject()
	assert.InDelta(t, 0.5, trust.Confidence, 1e-9)
	assert.Equal(t, 2, trust.HumanOverrideCount)
}

func TestAcceptConfidenceCeiling(t *testing.T) {
	trust := NewTrustState()
	trust.Confidence = 0.949
	trust.SuccessRate = 0.989

	trust.RecordAccept()
	assert.InDelta(t, 0.95, trust.Confidence, 1e-9)
	assert.InDelta(t, 0.99, trust.SuccessRate, 1e-9)
}

func TestModifySharesAcceptDeltas(t *testing.T) {
	accepted := newTestSession(t)
	accepted.SetPending(pendingRec())
	_, err := accepted.Decide(VerdictAccept)
	require.NoError(t, err)

	modified := newTestSession(t)
	modified.SetPending(pendingRec())
	_, err = modified.Decide(VerdictModify)
	require.NoError(t, err)

	assert.Equal(t, accepted.Trust.SuccessRate, modified.Trust.SuccessRate)
	assert.Equal(t, accepted.Trust.Confidence, modified.Trust.Confidence)
}

func TestDecideWithoutPending(t *testing.T) {
	sess := newTestSession(t)

	_, err := sess.Decide(VerdictAccept)
	assert.ErrorIs(t, err, ErrNoPendingDecision)
}

func TestApplyLearningRates(t *testing.T) {
	trust := NewTrustState()
	trust.AdaptationRate = 0.5
	trust.PredictionAccuracy = 0.5
	trust.TruthScore = 0.5
	trust.LearningVelocity = 0.5
	trust.CollaborationScore = 0.5

	trust.ApplyLearning(0.1)

	assert.InDelta(t, 0.6, trust.AdaptationRate, 1e-9)
	assert.InDelta(t, 0.58, trust.PredictionAccuracy, 1e-9)
	assert.InDelta(t, 0.62, trust.TruthScore, 1e-9)
	assert.InDelta(t, 0.55, trust.LearningVelocity, 1e-9)
	assert.InDelta(t, 0.56, trust.CollaborationScore, 1e-9)
	assert.Equal(t, int64(1), trust.TotalSessions)
}

func TestApplyLearningClamps(t *testing.T) {
	trust := NewTrustState()
	trust.TruthScore = 0.999

	trust.ApplyLearning(0.1)
	assert.LessOrEqual(t, trust.TruthScore, 1.0)
}

func TestBumpConfidenceCeiling(t *testing.T) {
	trust := NewTrustState()
	trust.Confidence = 0.988

	trust.BumpConfidence()
	assert.InDelta(t, 0.99, trust.Confidence, 1e-9)
}

func TestMarkOnChainVerified(t *testing.T) {
	trust := NewTrustState()
	trust.MarkOnChainVerified(42)

	assert.True(t, trust.OnChainVerified)
	assert.Equal(t, int64(42), trust.TotalSessions)
}

func TestSetPendingSupersedes(t *testing.T) {
	sess := newTestSession(t)
	first := pendingRec()
	second := pendingRec()
	second.ID = "rec-2"

	sess.SetPending(first)
	sess.SetPending(second)

	rec, ok := sess.Pending()
	require.True(t, ok)
	assert.Equal(t, "rec-2", rec.ID)
}
