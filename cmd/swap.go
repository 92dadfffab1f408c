package cmd

import (
	"bufio"
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

	"token-bridge/pkg/parser"
	"token-bridge/pkg/types"
)

var (
	swapTimeout uint64
	noConfirm   bool
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <asset> to <asset>",
	Short: "Swap between ETH and DAI on the Uniswap exchange",
	Long: `Swap between ETH and DAI through the Uniswap v1 exchange contract.

The swap accepts at most 2.5% slippage against the quote taken at submission
time, and carries an on-chain deadline so it cannot execute after the timeout
has elapsed. DAI to ETH swaps require a one-time approval first; run
'token-bridge approve' before the first one.

Examples:
  token-bridge swap 0.5 ETH to DAI
  token-bridge swap 100 DAI to ETH --timeout 300
  token-bridge swap 0.5 ETH to DAI --yes`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().Uint64Var(&swapTimeout, "timeout", 600, "Timeout in seconds; also the on-chain deadline window")
	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
}

func runSwap(cmd *cobra.Command, args []string) {
	swapReq, err := parser.ParseSwapCommand(strings.Join(args, " "))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if err := parser.ValidateSwapPair(swapReq); err != nil {
		printError(err)
		os.Exit(1)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
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

	// Show the current quote before asking for confirmation
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

	if !jsonOutput {
		displaySwapQuote(swapReq, parser.FormatAmount(quoted))
	}

	if !noConfirm && !jsonOutput {
		if !confirm("Proceed with swap?") {
			fmt.Println("\nSwap cancelled.")
			os.Exit(0)
		}
	}

	if verbose {
		fmt.Printf("\nDebug: submitting %s %s swap with %ds timeout\n", swapReq.Amount, swapReq.SourceAsset, swapTimeout)
	}

	if !jsonOutput {
		s.Suffix = " Swapping... (waiting for the purchase event)"
		s.Start()
	}

	ctx := context.Background()
	var realized *big.Int
	if swapReq.SourceAsset == types.AssetEth {
		realized, err = engine.EthToDaiSwap(ctx, amount, swapTimeout)
	} else {
		realized, err = engine.DaiToEthSwap(ctx, amount, swapTimeout)
	}
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
			"dest_amount":   parser.FormatAmount(realized),
			"dest_asset":    swapReq.DestAsset,
			"dest_wei":      realized.String(),
			"status":        "executed",
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	color.Green("\n✓ Swap executed!")
	fmt.Printf("  Received: %s %s\n\n", color.CyanString(parser.FormatAmount(realized)), swapReq.DestAsset)
}

func displaySwapQuote(swapReq *types.SwapRequest, destAmount string) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     SWAP QUOTE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  From:           %s %s\n", swapReq.Amount, color.YellowString(swapReq.SourceAsset))
	fmt.Printf("  To:             ~%s %s\n", destAmount, color.YellowString(swapReq.DestAsset))
	fmt.Printf("  Max Slippage:   2.5%%\n")
	fmt.Printf("  Timeout:        %d seconds\n", swapTimeout)

	fmt.Println("\n" + strings.Repeat("=", 60))
}

func confirm(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("\n%s (y/N): ", prompt)

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
