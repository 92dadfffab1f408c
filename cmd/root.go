package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "token-bridge",
	Short: "A CLI for ETH/DAI swaps on Uniswap and transfers across the xDai bridge",
	Long: `token-bridge is a command-line tool that swaps between ETH and DAI through
the Uniswap v1 exchange contract and moves funds between Ethereum and the
xDai chain through the xDai bridge pair, acting on behalf of one configured
account.

Examples:
  token-bridge quote 0.5 ETH to DAI
  token-bridge swap 0.5 ETH to DAI --timeout 600
  token-bridge approve
  token-bridge bridge 100 DAI to XDAI
  token-bridge balance
  token-bridge status <tx-hash> --chain xdai`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}
