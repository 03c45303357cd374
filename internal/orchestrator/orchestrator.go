// internal/orchestrator/orchestrator.go
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"

	"echo3/internal/advisor"
	"echo3/internal/catalog"
	stderrors "echo3/internal/common/errors"
	"echo3/internal/common/logger"
	"echo3/internal/common/metrics"
	"echo3/internal/common/observability"
	"echo3/internal/ledger"
	"echo3/internal/market"
	"echo3/internal/progress"
	"echo3/internal/quest"
	"echo3/internal/response"
	"echo3/internal/session"
)

// State is the query state machine's position.
type State int

const (
	StateIdle State = iota
	StateCollecting
	StateComposing
)

func (s State) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StateComposing:
		return "composing"
	default:
		return "idle"
	}
}

var advisoryTriggers = []string{"should i", "recommend", "suggest", "analyze"}

// command is one unit of work for the loop goroutine. All session state
// is mutated only on that goroutine, so ordering is program order.
type command interface{ isCommand() }

type queryCommand struct{ text string }
type toggleCommand struct{ id string }
type decisionCommand struct{ verdict session.Verdict }

func (queryCommand) isCommand()    {}
func (toggleCommand) isCommand()   {}
func (decisionCommand) isCommand() {}

// Options carries the orchestrator's collaborators. Bridge, WalletInfo,
// ContractAddress and Observability may be absent; the orchestrator
// degrades rather than failing.
type Options struct {
	Session       *session.Session
	Catalog       *catalog.Catalog
	Generator     *advisor.Generator
	Progress      progress.Simulator
	Refresher     *market.Refresher
	Bridge        *quest.Bridge
	WalletInfo    *ledger.WalletInfo
	ContractAddr  string
	Observability *observability.Observability
	Logger        logger.Logger
	Rand          *rand.Rand
}

// Orchestrator owns the query lifecycle: entry guard, progress pacing,
// data collection, composition, and the post-query learning update. One
// loop goroutine consumes commands; Dispatch/Toggle/Decide are the only
// entry points.
type Orchestrator struct {
	sess      *session.Session
	catalog   *catalog.Catalog
	generator *advisor.Generator
	sim       progress.Simulator
	refresher *market.Refresher
	bridge    *quest.Bridge
	wallet    *ledger.WalletInfo
	contract  string
	obs       *observability.Observability
	logger    logger.Logger
	rand      *rand.Rand

	commands chan command
	events   chan Event
	inFlight atomic.Bool
	state    State
}

func New(opts Options) *Orchestrator {
	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Orchestrator{
		sess:      opts.Session,
		catalog:   opts.Catalog,
		generator: opts.Generator,
		sim:       opts.Progress,
		refresher: opts.Refresher,
		bridge:    opts.Bridge,
		wallet:    opts.WalletInfo,
		contract:  opts.ContractAddr,
		obs:       opts.Observability,
		logger:    log.With(map[string]interface{}{"component": "orchestrator"}),
		rand:      r,
		commands:  make(chan command, 16),
		events:    make(chan Event, 64),
	}
}

// Events is the stream the presentation layer consumes.
func (o *Orchestrator) Events() <-chan Event {
	return o.events
}

// Dispatch validates and enqueues a query. The entry guard is
// synchronous: an empty query or one arriving while another is in flight
// is rejected here, before any state transition.
func (o *Orchestrator) Dispatch(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		metrics.QueriesRejected.WithLabelValues("invalid_query").Inc()
		return stderrors.NewInvalidQueryError()
	}
	if !o.inFlight.CompareAndSwap(false, true) {
		metrics.QueriesRejected.WithLabelValues("in_flight").Inc()
		return stderrors.NewQueryInFlightError()
	}
	o.commands <- queryCommand{text: trimmed}
	return nil
}

// Toggle enqueues a dimension toggle. Always safe; the operation is total.
func (o *Orchestrator) Toggle(id string) {
	o.commands <- toggleCommand{id: id}
}

// Decide enqueues a human verdict on the pending recommendation.
func (o *Orchestrator) Decide(verdict session.Verdict) {
	o.commands <- decisionCommand{verdict: verdict}
}

// Run starts the loop and blocks until ctx is done. The welcome banner,
// wallet status, and initial guide message are emitted before the first
// command is consumed.
func (o *Orchestrator) Run(ctx context.Context) {
	o.greet(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-o.commands:
			switch c := cmd.(type) {
			case queryCommand:
				o.handleQuery(ctx, c.text)
			case toggleCommand:
				o.handleToggle(c.id)
			case decisionCommand:
				o.handleDecision(c.verdict)
			}
		}
	}
}

func (o *Orchestrator) greet(ctx context.Context) {
	msg := o.sess.Append(session.RoleSystem, response.Welcome(o.sess.Trust), false)
	o.emit(MessageEvent{Message: msg})

	if o.wallet != nil {
		contractActive := o.bridge.Available()
		var total int64
		if contractActive {
			n, err := o.bridge.TotalQuests(ctx)
			if err != nil {
				o.logger.Warn("contract status check failed", map[string]interface{}{"error": err.Error()})
			} else {
				total = n
				o.sess.Trust.MarkOnChainVerified(n)
			}
		}
		banner := response.ConnectBanner(o.wallet, o.contract, total, contractActive, o.sess.Trust)
		o.emit(MessageEvent{Message: o.sess.Append(session.RoleSystem, banner, false)})
	}

	guide := response.Guide(o.sess.Selection, o.sess.Trust.Confidence)
	o.emit(MessageEvent{Message: o.sess.Append(session.RoleAssistant, guide, false)})

	o.emit(o.selectionSnapshot())
	o.emit(TrustEvent{Trust: *o.sess.Trust})
}

func (o *Orchestrator) handleToggle(id string) {
	before := o.sess.Selection.IDs()
	after := o.sess.Selection.Toggle(id)
	if equalIDs(before, after) {
		return
	}

	o.emit(o.selectionSnapshot())

	guide := response.Guide(o.sess.Selection, o.sess.Trust.Confidence)
	o.emit(MessageEvent{Message: o.sess.Append(session.RoleAssistant, guide, false)})
}

func (o *Orchestrator) selectionSnapshot() SelectionEvent {
	return SelectionEvent{
		IDs:         o.sess.Selection.IDs(),
		Description: o.sess.Selection.Describe(),
		Suggestions: o.sess.Selection.Suggestions(),
	}
}

func (o *Orchestrator) handleDecision(verdict session.Verdict) {
	msg, err := o.sess.Decide(verdict)
	if err != nil {
		if !errors.Is(err, session.ErrNoPendingDecision) {
			o.logger.Warn("decision not applied", map[string]interface{}{"error": err.Error()})
		}
		return
	}
	o.emit(DecisionEvent{Verdict: verdict})
	o.emit(MessageEvent{Message: msg})
	o.emit(TrustEvent{Trust: *o.sess.Trust})
}

func (o *Orchestrator) handleQuery(ctx context.Context, text string) {
	started := time.Now()
	defer o.inFlight.Store(false)

	spanCtx := ctx
	if o.obs != nil {
		var span oteltrace.Span
		spanCtx, span = o.obs.StartQuerySpan(ctx, "query")
		defer span.End()
	}

	o.emit(MessageEvent{Message: o.sess.Append(session.RoleUser, text, false)})
	o.setState(StateCollecting)
	defer o.setState(StateIdle)

	err := o.sim.Run(spanCtx, func(u progress.Update) {
		o.emit(ProgressEvent{Update: u})
	})
	if err != nil {
		// Abandoned query: no message, no learning update.
		o.logger.Info("query abandoned during progress", map[string]interface{}{"error": err.Error()})
		return
	}

	snapshot := o.refresher.FetchNow(spanCtx)
	questResult := o.seekTruth(spanCtx, text)

	if spanCtx.Err() != nil {
		return
	}
	o.setState(StateComposing)

	branch, msg, composeErr := o.compose(text, snapshot, questResult)
	if composeErr != nil {
		o.logger.Error("composition failed", map[string]interface{}{"error": composeErr.Error()})
		metrics.QueriesDegraded.Inc()
		o.emit(MessageEvent{Message: o.sess.Append(session.RoleAssistant, response.Degraded, false)})
		return
	}

	o.emit(MessageEvent{Message: msg})

	if spanCtx.Err() != nil {
		return
	}

	gain := 0.002 + o.rand.Float64()*0.003
	o.sess.Trust.ApplyLearning(gain)
	o.sess.Trust.BumpConfidence()
	o.emit(TrustEvent{Trust: *o.sess.Trust})

	metrics.QueriesCompleted.WithLabelValues(string(branch)).Inc()
	metrics.QueryDuration.Observe(time.Since(started).Seconds())
	if o.obs != nil {
		o.obs.RecordQueryProcessed(spanCtx, string(branch))
		o.obs.RecordQueryDuration(spanCtx, time.Since(started), string(branch))
	}
}

// seekTruth attempts the quest round trip. Absence and failure both
// yield nil; only failure is logged and counted as degradation.
func (o *Orchestrator) seekTruth(ctx context.Context, text string) *quest.Result {
	result, err := o.bridge.SeekTruth(ctx, text)
	if err != nil {
		if !errors.Is(err, quest.ErrUnavailable) {
			o.logger.Warn("quest round trip failed", map[string]interface{}{"error": err.Error()})
			metrics.QueriesDegraded.Inc()
		}
		return nil
	}
	o.sess.Trust.MarkOnChainVerified(result.TotalQuests)
	return result
}

// compose builds and appends the assistant message. Panics anywhere in
// composition are confined here so TrustState is never corrupted.
func (o *Orchestrator) compose(text string, snapshot *market.Snapshot, questResult *quest.Result) (branch response.Branch, msg session.Message, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = stderrors.NewCompositionFailedError(fmt.Errorf("panic: %v", r))
		}
	}()

	contractActive := o.bridge.Available()

	if isAdvisory(text) {
		rec := o.generator.Generate()
		o.sess.SetPending(rec)
		doc := response.NewAdvisory(o.sess.Selection, snapshot, rec, questResult, contractActive)
		msg = o.sess.Append(session.RoleAssistant, response.Render(doc), rec.RequiresHumanApproval)
		if rec.RequiresHumanApproval {
			o.emit(PendingEvent{Recommendation: rec})
		}
		return response.BranchAdvisory, msg, nil
	}

	var ethPrice float64
	if snapshot != nil {
		ethPrice = snapshot.ETH
	}
	doc := response.NewDescriptive(o.sess.Selection, response.PerformanceMetrics{
		ActiveDimensions:   o.sess.Selection.Len(),
		CatalogSize:        o.catalog.Len(),
		ETHPrice:           ethPrice,
		CollaborationScore: o.sess.Trust.CollaborationScore,
		ProtocolsAnalyzed:  o.sess.Trust.DimensionsAnalyzed,
	}, o.refresher.CurrentTVL(), questResult, contractActive)
	msg = o.sess.Append(session.RoleAssistant, response.Render(doc), false)
	return response.BranchDescriptive, msg, nil
}

func (o *Orchestrator) setState(s State) {
	o.state = s
	o.emit(StateEvent{State: s})
}

// emit never blocks the loop; a full event buffer drops the event. The
// conversation log remains the source of truth for the presentation
// layer to catch up from.
func (o *Orchestrator) emit(e Event) {
	select {
	case o.events <- e:
	default:
		o.logger.Debug("event dropped", map[string]interface{}{"event": fmt.Sprintf("%T", e)})
	}
}

func isAdvisory(text string) bool {
	lower := strings.ToLower(text)
	for _, trigger := range advisoryTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
