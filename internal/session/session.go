// internal/session/session.go
package session

import (
	"fmt"
	"strings"

	"echo3/internal/advisor"
	"echo3/internal/catalog"
	"echo3/internal/common/metrics"
)

// Verdict is the human's response to a pending recommendation.
type Verdict string

const (
	VerdictAccept Verdict = "accept"
	VerdictModify Verdict = "modify"
	VerdictReject Verdict = "reject"
)

// ErrNoPendingDecision is returned when a decision arrives with nothing
// awaiting one.
var ErrNoPendingDecision = fmt.Errorf("no recommendation awaiting a decision")

// Session owns all mutable per-session state: the dimension selection, the
// trust metrics, the conversation log, and the most recent pending
// recommendation. Created at session start, discarded at session end, so
// independent sessions never share state.
type Session struct {
	Selection *catalog.Selection
	Trust     *TrustState
	Log       *Log

	pending *advisor.Recommendation
}

func New(selection *catalog.Selection) *Session {
	return &Session{
		Selection: selection,
		Trust:     NewTrustState(),
		Log:       NewLog(),
	}
}

// Append stamps a message with the current trust metrics and selection
// snapshot before adding it to the log.
func (s *Session) Append(role Role, content string, requiresDecision bool) Message {
	ids := s.Selection.IDs()
	return s.Log.Append(Message{
		Role:             role,
		Content:          content,
		Confidence:       s.Trust.Confidence,
		TruthScore:       s.Trust.TruthScore,
		RequiresDecision: requiresDecision,
		Dimensions:       ids,
		DataSources:      s.Selection.DataSources(),
	})
}

// SetPending installs a recommendation as the one awaiting a decision,
// superseding any earlier one.
func (s *Session) SetPending(rec advisor.Recommendation) {
	s.pending = &rec
	s.Trust.HumanDecisionPending = rec.RequiresHumanApproval
}

// Pending returns the recommendation awaiting a decision, if any.
func (s *Session) Pending() (advisor.Recommendation, bool) {
	if s.pending == nil {
		return advisor.Recommendation{}, false
	}
	return *s.pending, true
}

// Decide applies the human verdict to the trust state, clears the pending
// recommendation, and appends a confirmation message. Modify carries the
// accept deltas.
func (s *Session) Decide(verdict Verdict) (Message, error) {
	if s.pending == nil {
		return Message{}, ErrNoPendingDecision
	}

	switch verdict {
	case VerdictAccept, VerdictModify:
		s.Trust.RecordAccept()
	case VerdictReject:
		s.Trust.RecordReject()
	default:
		return Message{}, fmt.Errorf("unknown verdict %q", verdict)
	}

	s.pending = nil
	metrics.HumanDecisions.WithLabelValues(string(verdict)).Inc()

	content := fmt.Sprintf("Decision recorded: %s\n\nAI Learning Update:\n- Analysis patterns improved\n- DeFi protocol preferences updated\n- Future recommendations will reflect this feedback\n\nYour AI assistant is getting smarter!", strings.ToUpper(string(verdict)))
	return s.Append(RoleSystem, content, false), nil
}
