package parser

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"token-bridge/pkg/types"
)

// ParseSwapCommand parses a swap or quote command
// Examples:
//   - "swap 0.5 ETH to DAI"
//   - "1.5 DAI to ETH"
//   - "100 DAI to XDAI"
func ParseSwapCommand(command string) (*types.SwapRequest, error) {
	// Normalize the command
	command = strings.TrimSpace(strings.ToUpper(command))

	// Remove the word "SWAP" if present at the beginning
	command = strings.TrimPrefix(command, "SWAP ")

	// Pattern: <amount> <source_asset> TO <dest_asset>
	// Matches: "0.5 ETH TO DAI", "100 DAI TO ETH", "1.25 DAI TO XDAI"
	pattern := regexp.MustCompile(`^(\d+\.?\d*)\s+([A-Z]+)\s+TO\s+([A-Z]+)$`)

	matches := pattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid command format. Expected: '<amount> <asset> to <asset>' (e.g., '0.5 ETH to DAI')")
	}

	return &types.SwapRequest{
		Amount:      matches[1],
		SourceAsset: matches[2],
		DestAsset:   matches[3],
	}, nil
}

// ValidateSwapPair checks that a request names a supported swap direction
func ValidateSwapPair(req *types.SwapRequest) error {
	switch {
	case req.SourceAsset == types.AssetEth && req.DestAsset == types.AssetDai:
		return nil
	case req.SourceAsset == types.AssetDai && req.DestAsset == types.AssetEth:
		return nil
	default:
		return fmt.Errorf("unsupported swap pair: %s to %s (supported: ETH to DAI, DAI to ETH)", req.SourceAsset, req.DestAsset)
	}
}

// ValidateBridgePair checks that a request names a supported bridge direction
func ValidateBridgePair(req *types.SwapRequest) error {
	switch {
	case req.SourceAsset == types.AssetDai && req.DestAsset == types.AssetXdai:
		return nil
	case req.SourceAsset == types.AssetXdai && req.DestAsset == types.AssetDai:
		return nil
	default:
		return fmt.Errorf("unsupported bridge pair: %s to %s (supported: DAI to XDAI, XDAI to DAI)", req.SourceAsset, req.DestAsset)
	}
}

// ParseAmount converts a decimal amount in main units to wei (18 decimals)
func ParseAmount(amount string) (*big.Int, error) {
	amountFloat := new(big.Float)
	if _, ok := amountFloat.SetString(amount); !ok {
		return nil, fmt.Errorf("invalid amount format: %s", amount)
	}
	if amountFloat.Sign() < 0 {
		return nil, fmt.Errorf("amount must not be negative: %s", amount)
	}

	weiPerUnit := new(big.Float).SetInt(big.NewInt(1e18))
	amountWei := new(big.Float).Mul(amountFloat, weiPerUnit)

	result := new(big.Int)
	amountWei.Int(result)

	return result, nil
}

// FormatAmount renders a wei amount in main units for display
func FormatAmount(wei *big.Int) string {
	value := new(big.Float).SetInt(wei)
	value.Quo(value, new(big.Float).SetInt(big.NewInt(1e18)))
	return value.Text('f', 6)
}
