package cmd

import (
	"fmt"
	"log/slog"

	"github.com/JesusMMA96/sap-autoentry/pkg/config"
	"github.com/JesusMMA96/sap-autoentry/pkg/db"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyRun   string
)

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display the posting history",
	Long: `Display recorded posting attempts from the history database.

Shows the most recent attempts, or every attempt of one run when
--run is given, plus totals per status.

Example:
  sap-autoentry history --limit 20
  sap-autoentry history --run 8f14e45f-ceea-4672-95de-02a1f0d1b6a9`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of attempts to show")
	historyCmd.Flags().StringVar(&historyRun, "run", "", "show every attempt of one run id")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	slog.Debug("Opening posting history", "path", cfg.HistoryDB)
	conn, err := db.Open(cfg.HistoryDB)
	exitOnError(err, "failed to open posting history")
	defer conn.Close()

	history := db.NewPostingHistory(conn)

	var postings []db.Posting
	if historyRun != "" {
		postings, err = history.ListByRun(historyRun)
		exitOnError(err, "failed to list run postings")
	} else {
		postings, err = history.ListRecent(historyLimit)
		exitOnError(err, "failed to list postings")
	}

	fmt.Println("\n=== Posting History ===")
	for _, p := range postings {
		doc := p.DocumentNumber
		if doc == "" {
			doc = "-"
		}
		fmt.Printf("%s  %-10s  %-10s  %12s  %-11s  %s\n",
			p.RecordedAt.Format("2006-01-02 15:04"),
			p.Workflow, p.ClientCode, p.Amount, p.Status, doc)
		if p.Detail != "" {
			fmt.Printf("    %s\n", p.Detail)
		}
	}
	if len(postings) == 0 {
		fmt.Println("(no postings recorded)")
	}

	counts, err := history.CountByStatus()
	exitOnError(err, "failed to count postings")

	fmt.Println()
	fmt.Printf("Applied:     %d\n", counts[db.StatusPostingApplied])
	fmt.Printf("Not applied: %d\n", counts[db.StatusPostingNotApplied])
	fmt.Println()
}
