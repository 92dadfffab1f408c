package bridge

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TxStatus describes a previously submitted transaction. Pending means the
// network knows the transaction but has not mined it; once mined the receipt
// fields are populated.
type TxStatus struct {
	Hash     common.Hash
	Nonce    uint64
	To       *common.Address
	Value    *big.Int
	GasPrice *big.Int
	GasLimit uint64
	Pending  bool

	BlockNumber uint64
	GasUsed     uint64
	Succeeded   bool
}

// TransactionStatus looks up a submitted transaction on the given chain.
// This is the out-of-band check for operations whose completion is not
// observable through an event, such as the bridge transfers.
func (t *TokenBridge) TransactionStatus(ctx context.Context, chain Chain, hash common.Hash) (*TxStatus, error) {
	backend, err := t.backend(chain)
	if err != nil {
		return nil, err
	}

	tx, pending, err := backend.TransactionByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	status := &TxStatus{
		Hash:     tx.Hash(),
		Nonce:    tx.Nonce(),
		To:       tx.To(),
		Value:    tx.Value(),
		GasPrice: tx.GasPrice(),
		GasLimit: tx.Gas(),
		Pending:  pending,
	}
	if pending {
		return status, nil
	}

	receipt, err := backend.TransactionReceipt(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
	}
	status.BlockNumber = receipt.BlockNumber.Uint64()
	status.GasUsed = receipt.GasUsed
	status.Succeeded = receipt.Status == 1

	return status, nil
}
