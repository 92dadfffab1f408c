package bridge

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

func TestSlippageFloor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		quoted int64
		want   int64
	}{
		{0, 0},
		{39, 0}, // truncates to zero below one full step
		{40, 39},
		{41, 39},
		{4000, 3900},
		{4001, 3900},
		{1_000_000, 975_000},
	}
	for _, tc := range cases {
		got := slippageFloor(big.NewInt(tc.quoted))
		require.Equal(t, tc.want, got.Int64(), "quoted %d", tc.quoted)
		require.LessOrEqual(t, got.Int64(), tc.quoted)
	}
}

func TestSwapDeadline(t *testing.T) {
	t.Parallel()

	deadline, err := swapDeadline(big.NewInt(1_700_000_000), 600)
	require.NoError(t, err)
	require.Equal(t, int64(1_700_000_600), deadline.Int64())

	_, err = swapDeadline(math.MaxBig256, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "overflows uint256")
}

func TestEthToDaiSwap(t *testing.T) {
	t.Parallel()

	engine, eth, _ := newTestBridge(t)
	ethAmount := big.NewInt(1_000_000)
	quoted := big.NewInt(4000)
	realized := big.NewInt(3950)

	eth.respondTo("uniswap", "getEthToTokenInputPrice", uint256Bytes(quoted))
	eth.logs = []types.Log{purchaseLog(testUniswapAddress, tokenPurchaseEvent, engine.OwnAddress(), ethAmount, realized)}

	got, err := engine.EthToDaiSwap(context.Background(), ethAmount, 600)
	require.NoError(t, err)
	require.Equal(t, realized, got)

	txs := eth.sentTransactions()
	require.Len(t, txs, 1)
	tx := txs[0]
	require.Equal(t, testUniswapAddress, *tx.To())
	require.Equal(t, ethAmount, tx.Value())
	// 2x the suggested price, estimate plus 60k headroom
	require.Equal(t, big.NewInt(2_000_000_000), tx.GasPrice())
	require.Equal(t, uint64(110_000), tx.Gas())

	method, err := uniswapContract.MethodById(tx.Data()[:4])
	require.NoError(t, err)
	require.Equal(t, "ethToTokenSwapInput", method.Name)

	args, err := method.Inputs.Unpack(tx.Data()[4:])
	require.NoError(t, err)
	require.Equal(t, big.NewInt(3900), args[0]) // (4000/40)*39
	require.Equal(t, big.NewInt(1_700_000_600), args[1])
}

func TestDaiToEthSwap(t *testing.T) {
	t.Parallel()

	engine, eth, _ := newTestBridge(t)
	daiAmount := big.NewInt(4000)
	quoted := big.NewInt(1_000_000)
	realized := big.NewInt(980_000)

	eth.respondTo("uniswap", "getTokenToEthInputPrice", uint256Bytes(quoted))
	eth.logs = []types.Log{purchaseLog(testUniswapAddress, ethPurchaseEvent, engine.OwnAddress(), daiAmount, realized)}

	got, err := engine.DaiToEthSwap(context.Background(), daiAmount, 600)
	require.NoError(t, err)
	require.Equal(t, realized, got)

	txs := eth.sentTransactions()
	require.Len(t, txs, 1)
	tx := txs[0]
	require.Equal(t, testUniswapAddress, *tx.To())
	// No value attached when selling the token
	require.Zero(t, tx.Value().Sign())

	method, err := uniswapContract.MethodById(tx.Data()[:4])
	require.NoError(t, err)
	require.Equal(t, "tokenToEthSwapInput", method.Name)

	args, err := method.Inputs.Unpack(tx.Data()[4:])
	require.NoError(t, err)
	require.Equal(t, daiAmount, args[0])
	require.Equal(t, big.NewInt(975_000), args[1])
	require.Equal(t, big.NewInt(1_700_000_600), args[2])
}

func TestSwapTimesOutWithoutEvent(t *testing.T) {
	t.Parallel()

	engine, eth, _ := newTestBridge(t)
	eth.respondTo("uniswap", "getEthToTokenInputPrice", uint256Bytes(big.NewInt(4000)))
	// No purchase event is ever emitted.

	_, err := engine.EthToDaiSwap(context.Background(), big.NewInt(100), 1)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestSwapTimesOutWhenSubmissionHangs(t *testing.T) {
	t.Parallel()

	engine, eth, _ := newTestBridge(t)
	eth.respondTo("uniswap", "getEthToTokenInputPrice", uint256Bytes(big.NewInt(4000)))
	// The event is observable, but submission never resolves in the window.
	eth.logs = []types.Log{purchaseLog(testUniswapAddress, tokenPurchaseEvent, engine.OwnAddress(), big.NewInt(100), big.NewInt(3950))}
	eth.sendDelay = time.Minute

	_, err := engine.EthToDaiSwap(context.Background(), big.NewInt(100), 1)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestSwapRejectsBadInputs(t *testing.T) {
	t.Parallel()

	engine, _, _ := newTestBridge(t)

	_, err := engine.EthToDaiSwap(context.Background(), big.NewInt(-5), 600)
	require.Error(t, err)
	require.Contains(t, err.Error(), "negative")

	_, err = engine.EthToDaiSwap(context.Background(), big.NewInt(5), 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "timeout must be positive")
}

func TestSwapSurfacesMalformedQuote(t *testing.T) {
	t.Parallel()

	engine, eth, _ := newTestBridge(t)
	eth.respondTo("uniswap", "getEthToTokenInputPrice", make([]byte, 31))

	_, err := engine.EthToDaiSwap(context.Background(), big.NewInt(100), 600)
	require.ErrorIs(t, err, ErrMalformedResponse)
}
