package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"token-bridge/pkg/bridge"
)

var (
	statusChain   string
	watchStatus   bool
	watchInterval int
)

var statusCmd = &cobra.Command{
	Use:   "status <tx-hash>",
	Short: "Check the status of a submitted transaction",
	Long: `Check whether a submitted transaction is still pending or has been mined,
and whether it succeeded. This is the out-of-band check for bridge transfers,
whose settlement the engine does not track.

Examples:
  token-bridge status 0x1234...abcd
  token-bridge status 0x1234...abcd --chain xdai
  token-bridge status 0x1234...abcd --watch --interval 10`,
	Args: cobra.ExactArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusChain, "chain", "eth", "Chain to query: eth or xdai")
	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Watch until the transaction is mined")
	statusCmd.Flags().IntVar(&watchInterval, "interval", 5, "Polling interval in seconds (when watching)")
}

func runStatus(cmd *cobra.Command, args []string) {
	hash := common.HexToHash(args[0])
	chain := bridge.Chain(statusChain)
	jsonOutput, _ := cmd.Flags().GetBool("json")

	engine, err := newEngine()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer engine.Close()

	if watchStatus {
		watchTransaction(engine, chain, hash, jsonOutput)
		return
	}

	status, err := fetchStatus(engine, chain, hash, jsonOutput)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	displayStatus(status, jsonOutput)
}

func watchTransaction(engine *bridge.TokenBridge, chain bridge.Chain, hash common.Hash, jsonOutput bool) {
	for {
		status, err := fetchStatus(engine, chain, hash, jsonOutput)
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		displayStatus(status, jsonOutput)
		if !status.Pending {
			return
		}
		time.Sleep(time.Duration(watchInterval) * time.Second)
	}
}

func fetchStatus(engine *bridge.TokenBridge, chain bridge.Chain, hash common.Hash, jsonOutput bool) (*bridge.TxStatus, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Checking transaction..."
		s.Start()
		defer s.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return engine.TransactionStatus(ctx, chain, hash)
}

func displayStatus(status *bridge.TxStatus, jsonOutput bool) {
	if jsonOutput {
		output := map[string]interface{}{
			"hash":      status.Hash.Hex(),
			"nonce":     status.Nonce,
			"value":     status.Value.String(),
			"gas_price": status.GasPrice.String(),
			"gas_limit": status.GasLimit,
			"pending":   status.Pending,
		}
		if status.To != nil {
			output["to"] = status.To.Hex()
		}
		if !status.Pending {
			output["block_number"] = status.BlockNumber
			output["gas_used"] = status.GasUsed
			output["succeeded"] = status.Succeeded
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Printf("\n  Transaction: %s\n", color.CyanString(status.Hash.Hex()))
	if status.To != nil {
		fmt.Printf("  To:          %s\n", status.To.Hex())
	}
	fmt.Printf("  Nonce:       %d\n", status.Nonce)
	fmt.Printf("  Value:       %s wei\n", status.Value.String())

	switch {
	case status.Pending:
		color.Yellow("\n  Status: pending\n")
	case status.Succeeded:
		color.Green("\n  Status: mined in block %d (success, %d gas used)\n", status.BlockNumber, status.GasUsed)
	default:
		color.Red("\n  Status: mined in block %d but reverted\n", status.BlockNumber)
	}
	fmt.Println()
}
