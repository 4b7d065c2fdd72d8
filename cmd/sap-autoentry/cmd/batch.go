package cmd

import (
	"fmt"
	"log/slog"

	"github.com/JesusMMA96/sap-autoentry/pkg/workflow"
	"github.com/spf13/cobra"
)

var batchIntentFile string

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Post one aggregated batch payment",
	Long: `Post an aggregated batch payment described by an intent file.

The intent file is YAML: the header payment, per-client debit/credit
totals, direct entries and the optional stamp-duty adjustment. After
the lines are entered, the loaded open items are checked against the
intent's invoice totals and discrepancies are reconciled before
simulating and confirming.

Example:
  sap-autoentry batch --intent pago_acme.yaml`,
	Run: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchIntentFile, "intent", "", "batch payment intent file (required)")
	batchCmd.MarkFlagRequired("intent")
}

func runBatch(cmd *cobra.Command, args []string) {
	intent, err := workflow.LoadIntent(batchIntentFile)
	exitOnError(err, "failed to load intent")

	runner, cleanup := newRunner()
	defer cleanup()

	slog.Info("Starting batch run", "intent", batchIntentFile, "client", intent.ClientName, "run_id", runner.RunID())
	number, err := runner.Batch(intent)
	exitOnError(err, "batch run failed")

	slog.Info("Batch run finished", "document", number, "run_id", runner.RunID())
	fmt.Printf("Posted document %s\n", number)
}
