package bridge

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

const eventPollInterval = time.Second

// waitForEvent polls for the first log emitted by contract matching the
// event signature and the given indexed topic filters, starting from the
// block height observed when the wait begins. The wait is bounded by ctx;
// a deadline expiry is reported as ErrTimeout.
//
// topics are the indexed topic filters after the event signature: a nil
// entry matches any value in that position.
func (t *TokenBridge) waitForEvent(ctx context.Context, backend chainBackend, contract common.Address, eventSig string, topics ...[]common.Hash) (types.Log, error) {
	fromBlock, err := backend.BlockNumber(ctx)
	if err != nil {
		return types.Log{}, fmt.Errorf("failed to get block number: %w", err)
	}

	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: []common.Address{contract},
		Topics:    append([][]common.Hash{{crypto.Keccak256Hash([]byte(eventSig))}}, topics...),
	}

	ticker := time.NewTicker(eventPollInterval)
	defer ticker.Stop()

	for {
		logs, err := backend.FilterLogs(ctx, query)
		if err != nil {
			if timedOut(ctx, err) {
				return types.Log{}, fmt.Errorf("%s event not observed: %w", eventSig, ErrTimeout)
			}
			return types.Log{}, fmt.Errorf("failed to filter logs: %w", err)
		}
		for _, log := range logs {
			if !log.Removed {
				return log, nil
			}
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return types.Log{}, fmt.Errorf("%s event not observed: %w", eventSig, ErrTimeout)
			}
			return types.Log{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// timedOut reports whether err is the context deadline surfacing through a
// backend call.
func timedOut(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) && errors.Is(ctx.Err(), context.DeadlineExceeded)
}
