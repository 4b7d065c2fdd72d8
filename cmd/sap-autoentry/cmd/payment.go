package cmd

import (
	"log/slog"

	"github.com/JesusMMA96/sap-autoentry/pkg/workflow"
	"github.com/spf13/cobra"
)

var (
	paymentFile      string
	paymentClient    string
	paymentCode      string
	paymentCategory  string
	paymentIndicator string
	paymentTaxAssign string
)

// paymentCmd represents the payment command.
var paymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Post a client's promissory notes",
	Long: `Post every promissory note in a notes file for one client.

Each note debits the client with the special G/L indicator, posts the
stamp-duty adjustment when the note carries one, then clears the open
items found by searching for the note amount plus tax. Document
numbers are written back to the file.

Example:
  sap-autoentry payment --file pagares.xlsx --client ACME \
    --client-code 430012 --indicator P`,
	Run: runPayment,
}

func init() {
	paymentCmd.Flags().StringVar(&paymentFile, "file", "", "promissory notes file (required)")
	paymentCmd.Flags().StringVar(&paymentClient, "client", "", "client name used in commentaries (required)")
	paymentCmd.Flags().StringVar(&paymentCode, "client-code", "", "client account code (required)")
	paymentCmd.Flags().StringVar(&paymentCategory, "category", "D", "account category (D customer, K vendor)")
	paymentCmd.Flags().StringVar(&paymentIndicator, "indicator", "", "special G/L indicator for the note debit (required)")
	paymentCmd.Flags().StringVar(&paymentTaxAssign, "tax-assignment", "", "assignment for stamp-duty adjustment lines")

	paymentCmd.MarkFlagRequired("file")
	paymentCmd.MarkFlagRequired("client")
	paymentCmd.MarkFlagRequired("client-code")
	paymentCmd.MarkFlagRequired("indicator")
}

func runPayment(cmd *cobra.Command, args []string) {
	runner, cleanup := newRunner()
	defer cleanup()

	opts := workflow.PromissoryOptions{
		Path:          paymentFile,
		ClientName:    paymentClient,
		ClientCode:    paymentCode,
		Category:      paymentCategory,
		SGLIndicator:  paymentIndicator,
		TaxAssignment: paymentTaxAssign,
	}

	slog.Info("Starting promissory run", "file", paymentFile, "client", paymentClient, "run_id", runner.RunID())
	exitOnError(runner.Promissory(opts), "promissory run failed")
	slog.Info("Promissory run finished", "run_id", runner.RunID())
}
