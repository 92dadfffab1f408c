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

	"token-bridge/pkg/parser"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show a DAI balance",
	Long: `Show the DAI balance of an address, defaulting to the configured account.

Examples:
  token-bridge balance
  token-bridge balance 0x79AE13432950bF5CDC3499f8d4Cf5963c3F0d42c`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	engine, err := newEngine()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer engine.Close()

	address := engine.OwnAddress()
	if len(args) == 1 {
		if !common.IsHexAddress(args[0]) {
			printError(fmt.Errorf("invalid address: %s", args[0]))
			os.Exit(1)
		}
		address = common.HexToAddress(args[0])
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching balance..."
		s.Start()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	balance, err := engine.DaiBalance(ctx, address)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		output := map[string]interface{}{
			"address":     address.Hex(),
			"balance":     parser.FormatAmount(balance),
			"balance_wei": balance.String(),
			"asset":       "DAI",
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Printf("\n  %s holds %s DAI\n\n", address.Hex(), color.GreenString(parser.FormatAmount(balance)))
}
