package bridge

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/sync/errgroup"
)

// swapGasHeadroom is added on top of the estimated base cost of a swap call.
const swapGasHeadroom = 60_000

// EthToDaiSwap sells `ethAmount` wei of ETH for DAI on the Uniswap exchange.
// The whole operation is bounded by timeoutSeconds, and the same window is
// embedded as the on-chain deadline, so the swap is guaranteed not to execute
// after this call has reported ErrTimeout. Returns the realized DAI amount
// from the TokenPurchase event, which may differ from the quote.
//
// There is no retry: after a failure the caller must start over with a fresh
// quote, since chain state has moved.
func (t *TokenBridge) EthToDaiSwap(ctx context.Context, ethAmount *big.Int, timeoutSeconds uint64) (*big.Int, error) {
	return t.swapInput(ctx, ethAmount, timeoutSeconds, swapDirection{
		quote:       t.EthToDaiPrice,
		method:      "ethToTokenSwapInput",
		event:       tokenPurchaseEvent,
		attachValue: true,
	})
}

// DaiToEthSwap sells `daiAmount` of DAI for ETH on the Uniswap exchange.
// Requires a prior ApproveUniswapDaiTransfers. Same timeout and deadline
// semantics as EthToDaiSwap; returns the realized ETH amount from the
// EthPurchase event.
func (t *TokenBridge) DaiToEthSwap(ctx context.Context, daiAmount *big.Int, timeoutSeconds uint64) (*big.Int, error) {
	return t.swapInput(ctx, daiAmount, timeoutSeconds, swapDirection{
		quote:       t.DaiToEthPrice,
		method:      "tokenToEthSwapInput",
		event:       ethPurchaseEvent,
		attachValue: false,
	})
}

type swapDirection struct {
	quote       func(context.Context, *big.Int) (*big.Int, error)
	method      string
	event       string
	attachValue bool
}

func (t *TokenBridge) swapInput(ctx context.Context, amount *big.Int, timeoutSeconds uint64, dir swapDirection) (*big.Int, error) {
	if err := validAmount(amount); err != nil {
		return nil, err
	}
	if timeoutSeconds == 0 {
		return nil, fmt.Errorf("timeout must be positive")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	// The latest block and the quote are independent reads; fetch them
	// concurrently and join before computing the deadline and floor.
	var (
		header *types.Header
		quoted *big.Int
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		header, err = t.ethClient.HeaderByNumber(groupCtx, nil)
		if err != nil {
			return fmt.Errorf("failed to get latest block: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		quoted, err = dir.quote(groupCtx, amount)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, asTimeout(err)
	}

	minOutput := slippageFloor(quoted)
	deadline, err := swapDeadline(new(big.Int).SetUint64(header.Time), timeoutSeconds)
	if err != nil {
		return nil, err
	}

	var payload []byte
	value := big.NewInt(0)
	if dir.attachValue {
		payload, err = uniswapContract.Pack(dir.method, minOutput, deadline)
		value = amount
	} else {
		payload, err = uniswapContract.Pack(dir.method, amount, minOutput, deadline)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s data: %w", dir.method, err)
	}

	// Submit and wait for the purchase event concurrently; success requires
	// both before the timeout.
	var purchase types.Log
	group, groupCtx = errgroup.WithContext(ctx)
	group.Go(func() error {
		_, err := t.sendTransaction(groupCtx, t.ethClient, t.uniswapAddress, value, payload,
			WithGasPriceMultiplier(2), WithGasHeadroom(swapGasHeadroom))
		return err
	})
	group.Go(func() error {
		var err error
		purchase, err = t.waitForEvent(groupCtx, t.ethClient, t.uniswapAddress, dir.event,
			[]common.Hash{addressTopic(t.ownAddress)})
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, asTimeout(err)
	}

	// The realized output is the third indexed value of the purchase event.
	if len(purchase.Topics) < 4 {
		return nil, fmt.Errorf("%s event carried %d topics, want 4", dir.event, len(purchase.Topics))
	}
	return new(big.Int).SetBytes(purchase.Topics[3].Bytes()), nil
}

// slippageFloor returns 97.5% of the quoted output without decimal
// arithmetic: integer division by 40 first, then multiplication by 39. The
// order matters, division truncates.
func slippageFloor(quoted *big.Int) *big.Int {
	floor := new(big.Int).Div(quoted, big.NewInt(40))
	return floor.Mul(floor, big.NewInt(39))
}

// swapDeadline is the on-chain expiry: block timestamp plus the caller's
// timeout. A result past uint256 is rejected rather than wrapped.
func swapDeadline(blockTime *big.Int, timeoutSeconds uint64) (*big.Int, error) {
	deadline := new(big.Int).Add(blockTime, new(big.Int).SetUint64(timeoutSeconds))
	if deadline.Cmp(math.MaxBig256) > 0 {
		return nil, fmt.Errorf("deadline %s overflows uint256", deadline)
	}
	return deadline, nil
}
