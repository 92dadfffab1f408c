package bridge

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// xdaiChainID is required in signed transactions on the xDai chain.
const xdaiChainID = 100

// xdaiBridgeGasPrice is the fixed 10 gwei gas price used for home-bridge
// transfers.
var xdaiBridgeGasPrice = big.NewInt(10_000_000_000)

// DaiToXdaiBridge moves `daiAmount` of DAI to the xDai chain by transferring
// it to the foreign bridge contract. Fire-and-forget: the returned hash only
// proves the transaction was accepted for inclusion. The bridge's settlement
// events are not indexed in a filterable way, so arrival on the xDai side
// must be confirmed out-of-band, e.g. by polling balances.
func (t *TokenBridge) DaiToXdaiBridge(ctx context.Context, daiAmount *big.Int) (common.Hash, error) {
	if err := validAmount(daiAmount); err != nil {
		return common.Hash{}, err
	}

	payload, err := erc20Contract.Pack("transfer", t.xdaiForeignBridgeAddress, daiAmount)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack transfer data: %w", err)
	}

	return t.sendTransaction(ctx, t.ethClient, t.daiContractAddress, big.NewInt(0), payload)
}

// XdaiToDaiBridge moves `xdaiAmount` wei of xDai back to DAI on Ethereum by
// sending plain value to the home bridge contract. Same weak guarantee as
// DaiToXdaiBridge: success means submission only.
func (t *TokenBridge) XdaiToDaiBridge(ctx context.Context, xdaiAmount *big.Int) (common.Hash, error) {
	if err := validAmount(xdaiAmount); err != nil {
		return common.Hash{}, err
	}

	return t.sendTransaction(ctx, t.xdaiClient, t.xdaiHomeBridgeAddress, xdaiAmount, nil,
		WithGasPrice(xdaiBridgeGasPrice), WithChainID(xdaiChainID))
}
