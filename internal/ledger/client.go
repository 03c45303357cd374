// Package ledger defines the boundary to the on-chain collaborator: wallet
// connection, network identification, and the quest contract surface. The
// core never talks to a chain directly; it sees only these interfaces.
package ledger

import (
	"context"
	"errors"
)

// ErrWalletUnavailable is returned by Connect when no compatible wallet is
// present. The system continues in demo mode.
var ErrWalletUnavailable = errors.New("WALLET_UNAVAILABLE")

// WalletInfo describes a connected wallet.
type WalletInfo struct {
	Address     string
	NetworkName string
	ChainID     int64
	Balance     string
}

// Tx is a submitted, unconfirmed transaction. QuestID carries the id the
// contract assigned at submission when the implementation exposes it;
// zero means unknown and readers fall back to the quest-count read.
type Tx struct {
	Hash    string
	QuestID int64
}

// Receipt is a confirmed transaction.
type Receipt struct {
	TxHash      string
	BlockNumber int64
}

// QuestRecord mirrors the contract's quest tuple at one point in time.
type QuestRecord struct {
	QuestID      int64
	Seeker       string
	Question     string
	RandomResult int64
	IsComplete   bool
	Timestamp    int64
	TruthLevel   uint8
}

// Contract is the deployed quest contract surface.
type Contract interface {
	SubmitQuestion(ctx context.Context, text string) (Tx, error)
	AwaitConfirmation(ctx context.Context, tx Tx) (Receipt, error)
	QuestCount(ctx context.Context) (int64, error)
	Quest(ctx context.Context, index int64) (QuestRecord, error)
	QuestMessage(ctx context.Context, index int64) (string, error)
}

// Client is the wallet-facing collaborator.
type Client interface {
	// Connect establishes the wallet session. Fails with
	// ErrWalletUnavailable when no compatible wallet is present.
	Connect(ctx context.Context) (*WalletInfo, error)

	// Contract returns the deployed contract handle for a chain id, or nil
	// when no address is configured for that network.
	Contract(chainID int64) Contract
}
