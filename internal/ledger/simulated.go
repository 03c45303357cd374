// internal/ledger/simulated.go
package ledger

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"echo3/internal/common/config"
	"echo3/internal/common/logger"
)

// Demo wallet shown when running without a real wallet.
const (
	demoAddress = "0x742d35Cc6634C0532925a3b8D7389e9bA7e7b8b5"
	demoBalance = "2.4567"
)

// Messages returned by the simulated contract, keyed by truth level.
var truthMessagePool = [5][]string{
	{"The chain is still listening. Ask again."},
	{"A pattern surfaces in your approval history.", "Partial signal found across recent blocks."},
	{"Cross-protocol flows confirm the hypothesis.", "Liquidity migration matches your question."},
	{"Validator consensus aligns with your thesis.", "The data agrees with you more than the market does."},
	{"Every source converges on the same answer.", "The chain has spoken without ambiguity."},
}

// SimulatedClient is the in-process stand-in for a browser wallet plus the
// deployed quest contract. One instance owns one contract state.
type SimulatedClient struct {
	cfg      config.LedgerConfig
	logger   logger.Logger
	contract *SimulatedContract
}

func NewSimulatedClient(cfg config.LedgerConfig, log logger.Logger) *SimulatedClient {
	return &SimulatedClient{
		cfg:    cfg,
		logger: log.With(map[string]interface{}{"component": "ledger"}),
	}
}

func (c *SimulatedClient) Connect(ctx context.Context) (*WalletInfo, error) {
	if !c.cfg.Simulate {
		return nil, fmt.Errorf("%w: no browser wallet in a headless process", ErrWalletUnavailable)
	}

	net, ok := c.cfg.ContractFor(11155111)
	info := &WalletInfo{
		Address:     demoAddress,
		NetworkName: "Demo Mode",
		ChainID:     0,
		Balance:     demoBalance,
	}
	if ok {
		info.NetworkName = net.Name
		info.ChainID = net.ChainID
		c.contract = NewSimulatedContract(info.Address)
	}

	c.logger.Info("wallet connected", map[string]interface{}{
		"address": info.Address,
		"network": info.NetworkName,
	})

	return info, nil
}

func (c *SimulatedClient) Contract(chainID int64) Contract {
	if c.contract == nil {
		return nil
	}
	if _, ok := c.cfg.ContractFor(chainID); !ok {
		return nil
	}
	return c.contract
}

// SimulatedContract implements the quest contract surface in memory. It
// honors the same read pattern as the deployed contract: quests are indexed
// from 1 and QuestCount returns the index of the most recent quest.
type SimulatedContract struct {
	mu      sync.Mutex
	seeker  string
	quests  []QuestRecord
	rand    *rand.Rand
	blockAt int64

	// FailSubmit and FailConfirm force the corresponding step to error,
	// used to exercise degraded paths.
	FailSubmit  bool
	FailConfirm bool
}

func NewSimulatedContract(seeker string) *SimulatedContract {
	return &SimulatedContract{
		seeker:  seeker,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		blockAt: 7_300_000,
	}
}

func (c *SimulatedContract) SubmitQuestion(ctx context.Context, text string) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return Tx{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailSubmit {
		return Tx{}, fmt.Errorf("execution reverted")
	}

	id := int64(len(c.quests) + 1)
	c.quests = append(c.quests, QuestRecord{
		QuestID:      id,
		Seeker:       c.seeker,
		Question:     text,
		RandomResult: c.rand.Int63n(1_000_000),
		IsComplete:   true,
		Timestamp:    time.Now().Unix(),
		TruthLevel:   uint8(c.rand.Intn(5)),
	})

	return Tx{
		Hash:    fmt.Sprintf("0x%016x%016x", c.rand.Int63(), c.rand.Int63()),
		QuestID: id,
	}, nil
}

func (c *SimulatedContract) AwaitConfirmation(ctx context.Context, tx Tx) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailConfirm {
		return Receipt{}, fmt.Errorf("transaction dropped from mempool")
	}

	c.blockAt++
	return Receipt{TxHash: tx.Hash, BlockNumber: c.blockAt}, nil
}

func (c *SimulatedContract) QuestCount(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.quests)), nil
}

func (c *SimulatedContract) Quest(ctx context.Context, index int64) (QuestRecord, error) {
	if err := ctx.Err(); err != nil {
		return QuestRecord{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 1 || index > int64(len(c.quests)) {
		return QuestRecord{}, fmt.Errorf("quest %d out of range", index)
	}
	return c.quests[index-1], nil
}

func (c *SimulatedContract) QuestMessage(ctx context.Context, index int64) (string, error) {
	q, err := c.Quest(ctx, index)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	pool := truthMessagePool[q.TruthLevel]
	return pool[c.rand.Intn(len(pool))], nil
}

// DisconnectedClient always reports an unavailable wallet.
type DisconnectedClient struct{}

func (DisconnectedClient) Connect(context.Context) (*WalletInfo, error) {
	return nil, ErrWalletUnavailable
}

func (DisconnectedClient) Contract(int64) Contract {
	return nil
}
