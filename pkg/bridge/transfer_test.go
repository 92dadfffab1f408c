package bridge

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDaiToXdaiBridge(t *testing.T) {
	t.Parallel()

	engine, eth, xdai := newTestBridge(t)
	amount := big.NewInt(1_000_000)

	hash, err := engine.DaiToXdaiBridge(context.Background(), amount)
	require.NoError(t, err)
	require.NotZero(t, hash)

	// Submission only; nothing goes to the xdai chain and no event is waited on.
	require.Empty(t, xdai.sentTransactions())
	txs := eth.sentTransactions()
	require.Len(t, txs, 1)
	tx := txs[0]
	require.Equal(t, hash, tx.Hash())
	require.Equal(t, testDaiAddress, *tx.To())
	require.Zero(t, tx.Value().Sign())
	// No gas override on the outbound direction.
	require.Equal(t, big.NewInt(1_000_000_000), tx.GasPrice())

	method, err := erc20Contract.MethodById(tx.Data()[:4])
	require.NoError(t, err)
	require.Equal(t, "transfer", method.Name)

	args, err := method.Inputs.Unpack(tx.Data()[4:])
	require.NoError(t, err)
	require.Equal(t, testForeignBridgeAddress, args[0])
	require.Equal(t, amount, args[1])
}

func TestXdaiToDaiBridge(t *testing.T) {
	t.Parallel()

	engine, eth, xdai := newTestBridge(t)
	amount := big.NewInt(2_500_000)

	hash, err := engine.XdaiToDaiBridge(context.Background(), amount)
	require.NoError(t, err)
	require.NotZero(t, hash)

	require.Empty(t, eth.sentTransactions())
	txs := xdai.sentTransactions()
	require.Len(t, txs, 1)
	tx := txs[0]
	require.Equal(t, testHomeBridgeAddress, *tx.To())
	require.Equal(t, amount, tx.Value())
	// Plain value send with the fixed 10 gwei price and explicit xdai chain id.
	require.Empty(t, tx.Data())
	require.Equal(t, big.NewInt(10_000_000_000), tx.GasPrice())
	require.Equal(t, big.NewInt(100), tx.ChainId())
}

func TestBridgeTransfersRejectNegativeAmounts(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestBridge(t)

	_, err := engine.DaiToXdaiBridge(context.Background(), big.NewInt(-1))
	require.Error(t, err)

	_, err = engine.XdaiToDaiBridge(context.Background(), big.NewInt(-1))
	require.Error(t, err)
}
