// Package bridge implements the swap and bridge engine for a single
// controlled account: ETH/DAI swaps through the Uniswap v1 exchange contract
// and DAI/xDai transfers through the xDai bridge pair.
//
// Every state-changing operation is signed by the one account held by the
// engine. The engine does not serialize calls against that account; callers
// issuing concurrent state-changing calls race on the nonce and must provide
// their own serialization.
package bridge

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Chain selects which of the two configured networks an operation runs on.
type Chain string

const (
	// ChainEth is the chain holding the Uniswap exchange, the DAI contract
	// and the foreign side of the xDai bridge.
	ChainEth Chain = "eth"
	// ChainXdai is the chain holding the home side of the xDai bridge.
	ChainXdai Chain = "xdai"
)

// chainBackend is the subset of ethclient.Client the engine depends on.
// Tests substitute a fake; production always uses *ethclient.Client.
type chainBackend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	BlockNumber(ctx context.Context) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	ChainID(ctx context.Context) (*big.Int, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// Config holds the construction parameters for a TokenBridge.
type Config struct {
	// UniswapAddress is the Uniswap v1 ETH/DAI exchange contract on Ethereum.
	UniswapAddress common.Address
	// XdaiHomeBridgeAddress is the xDai bridge contract on the xDai chain.
	XdaiHomeBridgeAddress common.Address
	// XdaiForeignBridgeAddress is the xDai bridge contract on Ethereum.
	XdaiForeignBridgeAddress common.Address
	// DaiContractAddress is the DAI token contract on Ethereum.
	DaiContractAddress common.Address
	// PrivateKey signs every state-changing transaction; hex encoded,
	// with or without a 0x prefix.
	PrivateKey string
	// EthRPCURL and XdaiRPCURL are the node endpoints, one per chain.
	EthRPCURL  string
	XdaiRPCURL string
}

// TokenBridge is the engine. All configuration is read-only after
// construction; read-only operations are safe to call concurrently.
type TokenBridge struct {
	ethClient  chainBackend
	xdaiClient chainBackend

	uniswapAddress           common.Address
	xdaiHomeBridgeAddress    common.Address
	xdaiForeignBridgeAddress common.Address
	daiContractAddress       common.Address

	ownAddress common.Address
	privateKey *ecdsa.PrivateKey
}

// New parses the signing key and dials both node endpoints.
func New(cfg Config) (*TokenBridge, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	if cfg.EthRPCURL == "" {
		return nil, fmt.Errorf("eth RPC URL not configured")
	}
	if cfg.XdaiRPCURL == "" {
		return nil, fmt.Errorf("xdai RPC URL not configured")
	}

	ethClient, err := ethclient.Dial(cfg.EthRPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to eth RPC endpoint: %w", err)
	}
	xdaiClient, err := ethclient.Dial(cfg.XdaiRPCURL)
	if err != nil {
		ethClient.Close()
		return nil, fmt.Errorf("failed to connect to xdai RPC endpoint: %w", err)
	}

	bridge := newWithBackends(cfg, ethClient, xdaiClient, privateKey)
	return bridge, nil
}

// newWithBackends wires pre-built chain backends; used by New and by tests.
func newWithBackends(cfg Config, eth, xdai chainBackend, key *ecdsa.PrivateKey) *TokenBridge {
	return &TokenBridge{
		ethClient:                eth,
		xdaiClient:               xdai,
		uniswapAddress:           cfg.UniswapAddress,
		xdaiHomeBridgeAddress:    cfg.XdaiHomeBridgeAddress,
		xdaiForeignBridgeAddress: cfg.XdaiForeignBridgeAddress,
		daiContractAddress:       cfg.DaiContractAddress,
		ownAddress:               crypto.PubkeyToAddress(key.PublicKey),
		privateKey:               key,
	}
}

// OwnAddress returns the address derived from the configured signing key.
func (t *TokenBridge) OwnAddress() common.Address {
	return t.ownAddress
}

// Close releases the network connections held by the engine.
func (t *TokenBridge) Close() {
	if client, ok := t.ethClient.(*ethclient.Client); ok {
		client.Close()
	}
	if client, ok := t.xdaiClient.(*ethclient.Client); ok {
		client.Close()
	}
}

func (t *TokenBridge) backend(chain Chain) (chainBackend, error) {
	switch chain {
	case ChainEth:
		return t.ethClient, nil
	case ChainXdai:
		return t.xdaiClient, nil
	default:
		return nil, fmt.Errorf("unknown chain: %s", chain)
	}
}

// contractCall performs a read-only call and decodes the first 32 bytes of
// the response as a big-endian uint256.
func (t *TokenBridge) contractCall(ctx context.Context, backend chainBackend, contract common.Address, data []byte, call string) (*big.Int, error) {
	msg := ethereum.CallMsg{
		From: t.ownAddress,
		To:   &contract,
		Data: data,
	}
	result, err := backend.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", call, err)
	}
	return decodeUint256(result, call)
}

func decodeUint256(data []byte, call string) (*big.Int, error) {
	if len(data) < 32 {
		return nil, fmt.Errorf("%s returned %d bytes, want 32: %w", call, len(data), ErrMalformedResponse)
	}
	return new(big.Int).SetBytes(data[:32]), nil
}

func validAmount(amount *big.Int) error {
	if amount == nil {
		return fmt.Errorf("amount is required")
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("amount must not be negative: %s", amount)
	}
	return nil
}
