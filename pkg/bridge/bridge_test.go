package bridge

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

var (
	testUniswapAddress       = common.HexToAddress("0x09cabEC1eAd1c0Ba254B09efb3EE13841712bE14")
	testHomeBridgeAddress    = common.HexToAddress("0x7301CFA0e1756B71869E93d4e4Dca5c7d0eb0AA6")
	testForeignBridgeAddress = common.HexToAddress("0x4aa42145Aa6Ebf72e164C9bBC74fbD3788045016")
	testDaiAddress           = common.HexToAddress("0x89d24A6b4CcB1B6fAA2625fE562bDD9a23260359")
)

// fakeBackend implements chainBackend in memory. Read-only call responses
// are keyed by the 4-byte method selector; logs become visible to FilterLogs
// once the logsAvailable channel (if any) is closed.
type fakeBackend struct {
	mu sync.Mutex

	chainID     *big.Int
	header      *types.Header
	blockNumber uint64
	gasPrice    *big.Int
	nonce       uint64
	estimate    uint64

	callResponses map[string][]byte

	logs          []types.Log
	logsAvailable chan struct{}

	sendDelay time.Duration
	sentTxs   []*types.Transaction

	txs      map[common.Hash]*types.Transaction
	pending  map[common.Hash]bool
	receipts map[common.Hash]*types.Receipt
}

func newFakeBackend(chainID int64) *fakeBackend {
	return &fakeBackend{
		chainID:       big.NewInt(chainID),
		header:        &types.Header{Number: big.NewInt(1000), Time: 1_700_000_000},
		blockNumber:   1000,
		gasPrice:      big.NewInt(1_000_000_000),
		estimate:      50_000,
		callResponses: map[string][]byte{},
		txs:           map[common.Hash]*types.Transaction{},
		pending:       map[common.Hash]bool{},
		receipts:      map[common.Hash]*types.Receipt{},
	}
}

func (f *fakeBackend) respondTo(contract string, method string, response []byte) {
	var id []byte
	switch contract {
	case "uniswap":
		id = uniswapContract.Methods[method].ID
	case "erc20":
		id = erc20Contract.Methods[method].ID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callResponses[hex.EncodeToString(id)] = response
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if len(msg.Data) < 4 {
		return nil, fmt.Errorf("malformed call data")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	response, ok := f.callResponses[hex.EncodeToString(msg.Data[:4])]
	if !ok {
		return nil, fmt.Errorf("unexpected call %x", msg.Data[:4])
	}
	return response, nil
}

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return f.header, nil
}

func (f *fakeBackend) BlockNumber(context.Context) (uint64, error) {
	return f.blockNumber, nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return new(big.Int).Set(f.gasPrice), nil
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return f.estimate, nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return f.nonce, nil
}

func (f *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if f.sendDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.sendDelay):
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentTxs = append(f.sentTxs, tx)
	return nil
}

func (f *fakeBackend) FilterLogs(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	if f.logsAvailable != nil {
		select {
		case <-f.logsAvailable:
		default:
			return nil, nil
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []types.Log
	for _, log := range f.logs {
		if logMatches(log, q) {
			matched = append(matched, log)
		}
	}
	return matched, nil
}

func logMatches(log types.Log, q ethereum.FilterQuery) bool {
	if len(q.Addresses) > 0 {
		found := false
		for _, addr := range q.Addresses {
			if addr == log.Address {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	for i, filters := range q.Topics {
		if len(filters) == 0 {
			continue
		}
		if i >= len(log.Topics) {
			return false
		}
		found := false
		for _, topic := range filters {
			if topic == log.Topics[i] {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	return new(big.Int).Set(f.chainID), nil
}

func (f *fakeBackend) TransactionByHash(_ context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.txs[hash]
	if !ok {
		return nil, false, ethereum.NotFound
	}
	return tx, f.pending[hash], nil
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	receipt, ok := f.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (f *fakeBackend) sentTransactions() []*types.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*types.Transaction(nil), f.sentTxs...)
}

// newTestBridge wires a TokenBridge onto fake backends with a fresh key.
func newTestBridge(t *testing.T) (*TokenBridge, *fakeBackend, *fakeBackend) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	eth := newFakeBackend(1)
	xdai := newFakeBackend(100)
	cfg := Config{
		UniswapAddress:           testUniswapAddress,
		XdaiHomeBridgeAddress:    testHomeBridgeAddress,
		XdaiForeignBridgeAddress: testForeignBridgeAddress,
		DaiContractAddress:       testDaiAddress,
	}
	return newWithBackends(cfg, eth, xdai, key), eth, xdai
}

func uint256Bytes(value *big.Int) []byte {
	return common.BytesToHash(value.Bytes()).Bytes()
}

func purchaseLog(address common.Address, eventSig string, buyer common.Address, input, output *big.Int) types.Log {
	return types.Log{
		Address: address,
		Topics: []common.Hash{
			crypto.Keccak256Hash([]byte(eventSig)),
			addressTopic(buyer),
			common.BytesToHash(input.Bytes()),
			common.BytesToHash(output.Bytes()),
		},
	}
}
