// internal/ledger/simulated_test.go
package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echo3/internal/common/config"
	"echo3/internal/common/logger"
)

func sepoliaConfig() config.LedgerConfig {
	return config.LedgerConfig{
		Networks: map[string]config.NetworkConfig{
			"sepolia": {
				Address: "0x99Bbb017561782a5Ee927d3F6a67d350d37A941F",
				ChainID: 11155111,
				Name:    "Sepolia Testnet",
			},
		},
		ConfirmTimeout: 45000,
		Simulate:       true,
	}
}

func TestSimulatedClientConnect(t *testing.T) {
	client := NewSimulatedClient(sepoliaConfig(), logger.NewNoOpLogger())

	info, err := client.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0x742d35Cc6634C0532925a3b8D7389e9bA7e7b8b5", info.Address)
	assert.Equal(t, "2.4567", info.Balance)
	assert.Equal(t, "Sepolia Testnet", info.NetworkName)
	assert.NotNil(t, client.Contract(11155111))
}

func TestSimulatedClientConnectDisabled(t *testing.T) {
	cfg := sepoliaConfig()
	cfg.Simulate = false
	client := NewSimulatedClient(cfg, logger.NewNoOpLogger())

	_, err := client.Connect(context.Background())
	assert.ErrorIs(t, err, ErrWalletUnavailable)
}

func TestContractNilWhenNotDeployed(t *testing.T) {
	client := NewSimulatedClient(sepoliaConfig(), logger.NewNoOpLogger())
	_, err := client.Connect(context.Background())
	require.NoError(t, err)

	// Polygon has no configured address.
	assert.Nil(t, client.Contract(137))
}

func TestContractNilBeforeConnect(t *testing.T) {
	client := NewSimulatedClient(sepoliaConfig(), logger.NewNoOpLogger())
	assert.Nil(t, client.Contract(11155111))
}

func TestSubmitAssignsSequentialIDs(t *testing.T) {
	contract := NewSimulatedContract(demoAddress)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		tx, err := contract.SubmitQuestion(ctx, "should i buy eth?")
		require.NoError(t, err)
		assert.Equal(t, want, tx.QuestID)
		assert.NotEmpty(t, tx.Hash)
	}

	count, err := contract.QuestCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestQuestReadBack(t *testing.T) {
	contract := NewSimulatedContract(demoAddress)
	ctx := context.Background()

	tx, err := contract.SubmitQuestion(ctx, "analyze my portfolio")
	require.NoError(t, err)

	receipt, err := contract.AwaitConfirmation(ctx, tx)
	require.NoError(t, err)
	assert.Equal(t, tx.Hash, receipt.TxHash)
	assert.Greater(t, receipt.BlockNumber, int64(0))

	quest, err := contract.Quest(ctx, tx.QuestID)
	require.NoError(t, err)
	assert.Equal(t, "analyze my portfolio", quest.Question)
	assert.Equal(t, demoAddress, quest.Seeker)
	assert.True(t, quest.IsComplete)
	assert.LessOrEqual(t, quest.TruthLevel, uint8(4))

	msg, err := contract.QuestMessage(ctx, tx.QuestID)
	require.NoError(t, err)
	assert.NotEmpty(t, msg)
}

func TestQuestIndexOutOfRange(t *testing.T) {
	contract := NewSimulatedContract(demoAddress)
	ctx := context.Background()

	_, err := contract.Quest(ctx, 1)
	assert.Error(t, err)

	_, err = contract.Quest(ctx, 0)
	assert.Error(t, err)
}

func TestContractHonorsCancellation(t *testing.T) {
	contract := NewSimulatedContract(demoAddress)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := contract.SubmitQuestion(ctx, "question")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = contract.QuestCount(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForcedFailures(t *testing.T) {
	contract := NewSimulatedContract(demoAddress)
	ctx := context.Background()

	contract.FailSubmit = true
	_, err := contract.SubmitQuestion(ctx, "question")
	assert.Error(t, err)

	contract.FailSubmit = false
	tx, err := contract.SubmitQuestion(ctx, "question")
	require.NoError(t, err)

	contract.FailConfirm = true
	_, err = contract.AwaitConfirmation(ctx, tx)
	assert.Error(t, err)
}
