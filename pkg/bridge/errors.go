package bridge

import "errors"

var (
	// ErrMalformedResponse indicates a read-only contract call returned fewer
	// bytes than the expected fixed-width value. Never retried internally.
	ErrMalformedResponse = errors.New("malformed contract response")

	// ErrTimeout indicates a bounded wait for transaction submission and its
	// confirmation event elapsed. The underlying transaction may still be
	// mined later; the caller decides whether to retry with fresh market data.
	ErrTimeout = errors.New("operation timed out")
)
