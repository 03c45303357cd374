// internal/quest/bridge.go
package quest

import (
	"context"
	"errors"
	"time"

	stderrors "echo3/internal/common/errors"
	"echo3/internal/common/logger"
	"echo3/internal/common/metrics"
	"echo3/internal/ledger"
)

// ErrUnavailable marks the bridge as absent rather than failed: no wallet,
// wrong network, or no deployed contract. Callers degrade instead of erroring.
var ErrUnavailable = errors.New("QUEST_UNAVAILABLE")

// Bridge drives a question through the quest contract: submit, wait for
// confirmation, then read the recorded quest and its truth message back.
type Bridge struct {
	contract       ledger.Contract
	confirmTimeout time.Duration
	logger         logger.Logger
}

func NewBridge(contract ledger.Contract, confirmTimeout time.Duration, log logger.Logger) *Bridge {
	return &Bridge{
		contract:       contract,
		confirmTimeout: confirmTimeout,
		logger:         log.With(map[string]interface{}{"component": "quest_bridge"}),
	}
}

// Available reports whether a contract is wired in at all.
func (b *Bridge) Available() bool {
	return b != nil && b.contract != nil
}

// TotalQuests reads the contract's quest count, for the connect banner.
func (b *Bridge) TotalQuests(ctx context.Context) (int64, error) {
	if !b.Available() {
		return 0, ErrUnavailable
	}
	return b.contract.QuestCount(ctx)
}

// SeekTruth runs one complete round trip. When no contract is available it
// returns ErrUnavailable without touching the chain.
func (b *Bridge) SeekTruth(ctx context.Context, question string) (*Result, error) {
	if !b.Available() {
		return nil, ErrUnavailable
	}

	tx, err := b.contract.SubmitQuestion(ctx, question)
	if err != nil {
		metrics.QuestRoundTrips.WithLabelValues("submit_failed").Inc()
		return nil, stderrors.NewTransactionFailedError(err)
	}

	b.logger.Info("question submitted", map[string]interface{}{
		"tx_hash":  tx.Hash,
		"quest_id": tx.QuestID,
	})

	confirmCtx, cancel := context.WithTimeout(ctx, b.confirmTimeout)
	defer cancel()

	receipt, err := b.contract.AwaitConfirmation(confirmCtx, tx)
	if err != nil {
		metrics.QuestRoundTrips.WithLabelValues("confirm_failed").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, stderrors.NewConfirmationTimeoutError(tx.Hash)
		}
		return nil, stderrors.NewTransactionFailedError(err)
	}

	total, err := b.contract.QuestCount(ctx)
	if err != nil {
		metrics.QuestRoundTrips.WithLabelValues("read_failed").Inc()
		return nil, stderrors.NewQuestReadFailedError(err)
	}

	// The submission carries its own quest id; reading the latest count is
	// only a fallback, since a concurrent seeker could bump it in between.
	questID := tx.QuestID
	if questID == 0 {
		questID = total
	}

	record, err := b.contract.Quest(ctx, questID)
	if err != nil {
		metrics.QuestRoundTrips.WithLabelValues("read_failed").Inc()
		return nil, stderrors.NewQuestReadFailedError(err)
	}

	message, err := b.contract.QuestMessage(ctx, questID)
	if err != nil {
		metrics.QuestRoundTrips.WithLabelValues("read_failed").Inc()
		return nil, stderrors.NewQuestReadFailedError(err)
	}

	metrics.QuestRoundTrips.WithLabelValues("completed").Inc()

	return &Result{
		Quest:        fromRecord(record),
		TruthMessage: message,
		TxHash:       receipt.TxHash,
		BlockNumber:  receipt.BlockNumber,
		TotalQuests:  total,
	}, nil
}
