package bridge

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// DaiBalance returns the DAI balance of an arbitrary address, not
// necessarily the engine's own account.
func (t *TokenBridge) DaiBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	data, err := erc20Contract.Pack("balanceOf", address)
	if err != nil {
		return nil, fmt.Errorf("failed to pack balanceOf data: %w", err)
	}
	return t.contractCall(ctx, t.ethClient, t.daiContractAddress, data, "balanceOf")
}
