package bridge

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// sendTransaction signs and submits a single transaction from the engine's
// account. It resolves the pending nonce, gas price, gas limit and chain id,
// applying any per-call overrides, and returns once the network has accepted
// the transaction.
func (t *TokenBridge) sendTransaction(ctx context.Context, backend chainBackend, to common.Address, value *big.Int, payload []byte, opts ...TxOption) (common.Hash, error) {
	var options txOptions
	for _, opt := range opts {
		opt(&options)
	}

	nonce, err := backend.PendingNonceAt(ctx, t.ownAddress)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := t.resolveGasPrice(ctx, backend, options)
	if err != nil {
		return common.Hash{}, err
	}

	gasLimit, err := t.resolveGasLimit(ctx, backend, to, value, payload, options)
	if err != nil {
		return common.Hash{}, err
	}

	chainID := options.chainID
	if chainID == nil {
		chainID, err = backend.ChainID(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to get chain id: %w", err)
		}
	}

	tx := types.NewTransaction(nonce, to, value, gasLimit, gasPrice, payload)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(chainID), t.privateKey)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := backend.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx.Hash(), nil
}

func (t *TokenBridge) resolveGasPrice(ctx context.Context, backend chainBackend, options txOptions) (*big.Int, error) {
	if options.gasPrice != nil {
		return options.gasPrice, nil
	}

	gasPrice, err := backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}
	if options.gasPriceMultiplier > 1 {
		gasPrice = new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(options.gasPriceMultiplier))
	}
	return gasPrice, nil
}

func (t *TokenBridge) resolveGasLimit(ctx context.Context, backend chainBackend, to common.Address, value *big.Int, payload []byte, options txOptions) (uint64, error) {
	if options.gasLimit != 0 {
		return options.gasLimit, nil
	}

	msg := ethereum.CallMsg{
		From:  t.ownAddress,
		To:    &to,
		Value: value,
		Data:  payload,
	}
	estimated, err := backend.EstimateGas(ctx, msg)
	if err != nil {
		return 0, fmt.Errorf("failed to estimate gas: %w", err)
	}

	if options.gasHeadroom != 0 {
		return estimated + options.gasHeadroom, nil
	}
	return estimated * 120 / 100, nil
}
