package bridge

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Minimal ABI fragments for the two contracts this engine talks to. Only the
// functions actually called are declared.
const (
	uniswapABI = `[
		{"constant":true,"inputs":[{"name":"eth_sold","type":"uint256"}],"name":"getEthToTokenInputPrice","outputs":[{"name":"tokens_bought","type":"uint256"}],"type":"function"},
		{"constant":true,"inputs":[{"name":"tokens_sold","type":"uint256"}],"name":"getTokenToEthInputPrice","outputs":[{"name":"eth_bought","type":"uint256"}],"type":"function"},
		{"constant":false,"inputs":[{"name":"min_tokens","type":"uint256"},{"name":"deadline","type":"uint256"}],"name":"ethToTokenSwapInput","outputs":[{"name":"tokens_bought","type":"uint256"}],"payable":true,"type":"function"},
		{"constant":false,"inputs":[{"name":"tokens_sold","type":"uint256"},{"name":"min_eth","type":"uint256"},{"name":"deadline","type":"uint256"}],"name":"tokenToEthSwapInput","outputs":[{"name":"eth_bought","type":"uint256"}],"type":"function"}
	]`

	erc20ABI = `[
		{"constant":true,"inputs":[{"name":"_owner","type":"address"},{"name":"_spender","type":"address"}],"name":"allowance","outputs":[{"name":"remaining","type":"uint256"}],"type":"function"},
		{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"type":"function"},
		{"constant":false,"inputs":[{"name":"_spender","type":"address"},{"name":"_value","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"type":"function"},
		{"constant":false,"inputs":[{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"}
	]`
)

// Event signatures waited on for confirmation. Topic hashes are derived from
// these at filter time.
const (
	tokenPurchaseEvent = "TokenPurchase(address,uint256,uint256)"
	ethPurchaseEvent   = "EthPurchase(address,uint256,uint256)"
	approvalEvent      = "Approval(address,address,uint256)"
)

var (
	uniswapContract = mustParseABI(uniswapABI)
	erc20Contract   = mustParseABI(erc20ABI)
)

func mustParseABI(abiJSON string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic(err)
	}
	return parsed
}
