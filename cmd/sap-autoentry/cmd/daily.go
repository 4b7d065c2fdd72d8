package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var dailyFile string

// dailyCmd represents the daily command.
var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Post the treated daily bank payments",
	Long: `Post every unprocessed row of a treated daily bank file.

Rows are processed bottom-up. Each row's action column picks the
posting recipe (RELACION, FACTURA, TODO, HASTA, SOLO, ENTRE, A CUENTA,
REEMBOLSO). Rows already marked "Aplicado" are skipped; rows that fail
are marked "No aplicado" in red and the run continues with the next
row. The file is saved back with statuses and document numbers.

Example:
  sap-autoentry daily --file banco_tratado.xlsx`,
	Run: runDaily,
}

func init() {
	dailyCmd.Flags().StringVar(&dailyFile, "file", "", "treated daily bank file (required)")
	dailyCmd.MarkFlagRequired("file")
}

func runDaily(cmd *cobra.Command, args []string) {
	runner, cleanup := newRunner()
	defer cleanup()

	slog.Info("Starting daily run", "file", dailyFile, "run_id", runner.RunID())
	exitOnError(runner.Daily(dailyFile), "daily run failed")
	slog.Info("Daily run finished", "run_id", runner.RunID())
}
