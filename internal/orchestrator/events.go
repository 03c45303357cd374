// internal/orchestrator/events.go
package orchestrator

import (
	"echo3/internal/advisor"
	"echo3/internal/progress"
	"echo3/internal/session"
)

// Event is anything the loop surfaces to the presentation layer.
type Event interface{ isEvent() }

// MessageEvent carries a newly appended conversation message.
type MessageEvent struct {
	Message session.Message
}

// ProgressEvent carries one progress tick of the in-flight query.
type ProgressEvent struct {
	Update progress.Update
}

// StateEvent announces a state machine transition.
type StateEvent struct {
	State State
}

// SelectionEvent announces a changed dimension selection. It carries
// everything the presentation layer renders about the selection so views
// never read the live selection set across goroutines.
type SelectionEvent struct {
	IDs         []string
	Description string
	Suggestions []string
}

// PendingEvent announces a recommendation awaiting a human decision.
type PendingEvent struct {
	Recommendation advisor.Recommendation
}

// DecisionEvent announces an applied human verdict.
type DecisionEvent struct {
	Verdict session.Verdict
}

// TrustEvent carries a snapshot of the trust metrics after an update.
type TrustEvent struct {
	Trust session.TrustState
}

func (MessageEvent) isEvent()   {}
func (ProgressEvent) isEvent()  {}
func (StateEvent) isEvent()     {}
func (SelectionEvent) isEvent() {}
func (PendingEvent) isEvent()   {}
func (DecisionEvent) isEvent()  {}
func (TrustEvent) isEvent()     {}
