package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	approveTimeout uint64
	approveForce   bool
	approveYes     bool
)

var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Approve the Uniswap exchange to spend DAI",
	Long: `Grant the Uniswap exchange an unlimited DAI allowance from the configured
account. Required once before the first DAI to ETH swap. The command first
checks the current allowance and skips submission when it is already
effectively unlimited, unless --force is given.

Examples:
  token-bridge approve
  token-bridge approve --timeout 300
  token-bridge approve --force --yes`,
	Run: runApprove,
}

func init() {
	rootCmd.AddCommand(approveCmd)

	approveCmd.Flags().Uint64Var(&approveTimeout, "timeout", 600, "Timeout in seconds for submission plus event confirmation")
	approveCmd.Flags().BoolVar(&approveForce, "force", false, "Submit even if an approval already exists")
	approveCmd.Flags().BoolVarP(&approveYes, "yes", "y", false, "Skip confirmation prompt")
}

func runApprove(cmd *cobra.Command, args []string) {
	engine, err := newEngine()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer engine.Close()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Checking current allowance..."
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	approved, err := engine.UniswapDaiApproved(ctx)
	cancel()
	s.Stop()

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if approved && !approveForce {
		printSuccess("Uniswap already holds an effectively unlimited DAI allowance. Use --force to re-approve.")
		return
	}

	if !approveYes {
		if !confirm("Grant Uniswap an unlimited DAI allowance?") {
			fmt.Println("\nApproval cancelled.")
			os.Exit(0)
		}
	}

	s.Suffix = " Approving... (waiting for the Approval event)"
	s.Start()

	err = engine.ApproveUniswapDaiTransfers(context.Background(), time.Duration(approveTimeout)*time.Second)
	s.Stop()

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	color.Green("\n✓ Approval confirmed on-chain.\n")
}
