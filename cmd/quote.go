package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"token-bridge/config"
	"token-bridge/pkg/bridge"
	"token-bridge/pkg/parser"
	"token-bridge/pkg/types"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <amount> <asset> to <asset>",
	Short: "Quote a swap without executing it",
	Long: `Quote how much the Uniswap exchange would currently pay for an input
amount. Read-only; no transaction is submitted.

Examples:
  token-bridge quote 0.5 ETH to DAI
  token-bridge quote 100 DAI to ETH`,
	Args: cobra.MinimumNArgs(1),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) {
	swapReq, err := parser.ParseSwapCommand(strings.Join(args, " "))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if err := parser.ValidateSwapPair(swapReq); err != nil {
		printError(err)
		os.Exit(1)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")

	amount, err := parser.ParseAmount(swapReq.Amount)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	engine, err := newEngine()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer engine.Close()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching quote..."
		s.Start()
	}

	quoted, err := fetchQuote(engine, swapReq, amount)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		output := map[string]interface{}{
			"source_amount": swapReq.Amount,
			"source_asset":  swapReq.SourceAsset,
			"dest_amount":   parser.FormatAmount(quoted),
			"dest_asset":    swapReq.DestAsset,
			"dest_wei":      quoted.String(),
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Printf("\n  %s %s buys ~%s %s\n\n",
		swapReq.Amount, color.YellowString(swapReq.SourceAsset),
		color.GreenString(parser.FormatAmount(quoted)), color.YellowString(swapReq.DestAsset))
}

func fetchQuote(engine *bridge.TokenBridge, swapReq *types.SwapRequest, amount *big.Int) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if swapReq.SourceAsset == types.AssetEth {
		return engine.EthToDaiPrice(ctx, amount)
	}
	return engine.DaiToEthPrice(ctx, amount)
}

func newEngine() (*bridge.TokenBridge, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return bridge.New(cfg.EngineConfig())
}
