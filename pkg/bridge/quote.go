package bridge

import (
	"context"
	"fmt"
	"math/big"
)

// EthToDaiPrice quotes how much DAI `amount` wei of ETH currently buys on the
// Uniswap exchange. Read-only; the quote is only valid at the block it was
// read from.
func (t *TokenBridge) EthToDaiPrice(ctx context.Context, amount *big.Int) (*big.Int, error) {
	return t.inputPrice(ctx, "getEthToTokenInputPrice", amount)
}

// DaiToEthPrice quotes how much ETH `amount` of DAI currently buys on the
// Uniswap exchange.
func (t *TokenBridge) DaiToEthPrice(ctx context.Context, amount *big.Int) (*big.Int, error) {
	return t.inputPrice(ctx, "getTokenToEthInputPrice", amount)
}

func (t *TokenBridge) inputPrice(ctx context.Context, method string, amount *big.Int) (*big.Int, error) {
	if err := validAmount(amount); err != nil {
		return nil, err
	}
	data, err := uniswapContract.Pack(method, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s data: %w", method, err)
	}
	return t.contractCall(ctx, t.ethClient, t.uniswapAddress, data, method)
}
