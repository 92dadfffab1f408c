package bridge

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"golang.org/x/sync/errgroup"
)

// approvedThreshold is half of the maximum uint256. An allowance above it is
// treated as unlimited; the looseness is deliberate, an approval slightly
// below max still counts once it crosses the threshold.
var approvedThreshold = new(big.Int).Div(math.MaxBig256, big.NewInt(2))

// UniswapDaiApproved reports whether the Uniswap exchange already holds an
// effectively unlimited DAI allowance from the engine's account.
func (t *TokenBridge) UniswapDaiApproved(ctx context.Context) (bool, error) {
	data, err := erc20Contract.Pack("allowance", t.ownAddress, t.uniswapAddress)
	if err != nil {
		return false, fmt.Errorf("failed to pack allowance data: %w", err)
	}

	allowance, err := t.contractCall(ctx, t.ethClient, t.daiContractAddress, data, "allowance")
	if err != nil {
		return false, err
	}

	return allowance.Cmp(approvedThreshold) > 0, nil
}

// ApproveUniswapDaiTransfers submits an unlimited DAI approval for the
// Uniswap exchange and waits for the matching Approval event, both bounded
// by timeout. Call once before the first DAI-to-ETH swap; the engine never
// submits approvals on its own, and every invocation submits a fresh
// transaction regardless of prior approval state.
func (t *TokenBridge) ApproveUniswapDaiTransfers(ctx context.Context, timeout time.Duration) error {
	data, err := erc20Contract.Pack("approve", t.uniswapAddress, math.MaxBig256)
	if err != nil {
		return fmt.Errorf("failed to pack approve data: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		_, err := t.sendTransaction(ctx, t.ethClient, t.daiContractAddress, big.NewInt(0), data, WithGasPriceMultiplier(2))
		return err
	})
	group.Go(func() error {
		_, err := t.waitForEvent(ctx, t.ethClient, t.daiContractAddress, approvalEvent,
			[]common.Hash{addressTopic(t.ownAddress)},
			[]common.Hash{addressTopic(t.uniswapAddress)},
		)
		return err
	})

	return asTimeout(group.Wait())
}

func addressTopic(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

// asTimeout normalizes a context deadline expiry surfaced through a backend
// call into ErrTimeout; other errors pass through unchanged.
func asTimeout(err error) error {
	if err == nil || errors.Is(err, ErrTimeout) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%v: %w", err, ErrTimeout)
	}
	return err
}
