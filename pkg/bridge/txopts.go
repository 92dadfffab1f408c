package bridge

import "math/big"

// txOptions collects the per-call gas and signing overrides a call site may
// set. The zero value means: suggested gas price, estimated gas limit with a
// 20% buffer, chain id taken from the node.
type txOptions struct {
	gasPriceMultiplier uint64
	gasPrice           *big.Int
	gasLimit           uint64
	gasHeadroom        uint64
	chainID            *big.Int
}

// TxOption configures a single transaction submission.
type TxOption func(*txOptions)

// WithGasPriceMultiplier multiplies the node's suggested gas price.
func WithGasPriceMultiplier(multiplier uint64) TxOption {
	return func(o *txOptions) { o.gasPriceMultiplier = multiplier }
}

// WithGasPrice sets a fixed gas price, skipping the suggested-price query.
func WithGasPrice(price *big.Int) TxOption {
	return func(o *txOptions) { o.gasPrice = new(big.Int).Set(price) }
}

// WithGasLimit sets a fixed gas limit, skipping estimation.
func WithGasLimit(limit uint64) TxOption {
	return func(o *txOptions) { o.gasLimit = limit }
}

// WithGasHeadroom adds a fixed number of gas units on top of the estimated
// base cost of the call.
func WithGasHeadroom(units uint64) TxOption {
	return func(o *txOptions) { o.gasHeadroom = units }
}

// WithChainID signs with an explicit chain id instead of querying the node.
// Required on networks whose id differs from what the endpoint advertises
// by default.
func WithChainID(id uint64) TxOption {
	return func(o *txOptions) { o.chainID = new(big.Int).SetUint64(id) }
}
