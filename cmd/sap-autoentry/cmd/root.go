// Package cmd provides CLI commands for sap-autoentry.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JesusMMA96/sap-autoentry/pkg/config"
	"github.com/JesusMMA96/sap-autoentry/pkg/db"
	"github.com/JesusMMA96/sap-autoentry/pkg/entry"
	"github.com/JesusMMA96/sap-autoentry/pkg/prompt"
	"github.com/JesusMMA96/sap-autoentry/pkg/scripting"
	"github.com/JesusMMA96/sap-autoentry/pkg/terminal"
	"github.com/JesusMMA96/sap-autoentry/pkg/workflow"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sap-autoentry",
	Short: "Post accounting entries through the SAP GUI scripting interface",
	Long: `sap-autoentry drives an already-open SAP GUI session to post
accounting entries that would otherwise be typed by hand.

It supports:
- Posting treated daily bank payments row by row (F-04)
- Posting promissory notes with stamp-duty adjustments
- Posting aggregated batch payments from an intent file
- Recording every attempt in a SQLite posting history

The terminal session must be open and logged in before running any
posting command. Entries are never saved automatically: the tool stops
at the summary screen and waits for the operator to save.

Example:
  sap-autoentry daily --file banco_tratado.xlsx
  sap-autoentry history --limit 20`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(paymentCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(historyCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}

// newRunner wires the full posting stack: config, history database,
// terminal session, prompts and the workflow runner. The returned
// cleanup drops the session, releases the scripting engine and closes
// the history database, without closing the terminal window.
func newRunner() (*workflow.Runner, func()) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")
	exitOnError(cfg.Accounts.Validate(), "invalid configuration")

	slog.Debug("Opening posting history", "path", cfg.HistoryDB)
	conn, err := db.Open(cfg.HistoryDB)
	exitOnError(err, "failed to open posting history")
	history := db.NewPostingHistory(conn)

	engine, err := scripting.NewEngine()
	exitOnError(err, "failed to reach the terminal")
	sessions := scripting.NewManager(engine)

	console := prompt.NewConsole()
	probe := terminal.NewProbe(sessions, console)
	nav := terminal.NewNavigator(sessions, probe)
	builder := entry.NewBuilder(sessions, nav, probe, console, console, cfg.Accounts)
	runner := workflow.NewRunner(nav, builder, console, console, cfg, history, slog.Default())

	cleanup := func() {
		sessions.Disconnect(false)
		engine.Close()
		conn.Close()
	}
	return runner, cleanup
}
