// Package workflow ties the collaborators together: it walks payment
// rows, runs the posting sequence for each one through the entry
// builder, and records the outcome in the spreadsheet and the posting
// history. A failed row never stops the run; it is marked and the loop
// moves on.
package workflow

import (
	"errors"
	"log/slog"
	"time"

	"github.com/JesusMMA96/sap-autoentry/pkg/config"
	"github.com/JesusMMA96/sap-autoentry/pkg/db"
	"github.com/JesusMMA96/sap-autoentry/pkg/entry"
	"github.com/JesusMMA96/sap-autoentry/pkg/prompt"
	"github.com/JesusMMA96/sap-autoentry/pkg/terminal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Runner executes posting workflows over one shared terminal session.
type Runner struct {
	nav     *terminal.Navigator
	builder *entry.Builder
	ask     prompt.Prompter
	notify  prompt.Notifier
	cfg     *config.Config
	history *db.PostingHistory
	runID   string
	log     *slog.Logger
}

// NewRunner wires a runner. history may be nil when the posting
// history database is disabled.
func NewRunner(nav *terminal.Navigator, builder *entry.Builder, ask prompt.Prompter,
	notify prompt.Notifier, cfg *config.Config, history *db.PostingHistory, log *slog.Logger) *Runner {
	return &Runner{
		nav:     nav,
		builder: builder,
		ask:     ask,
		notify:  notify,
		cfg:     cfg,
		history: history,
		runID:   uuid.NewString(),
		log:     log,
	}
}

// RunID identifies this run in the posting history.
func (r *Runner) RunID() string {
	return r.runID
}

// fillGeneratedPositions enters every line the simulation generated
// and completes its data. The amounts are already simulated; only the
// descriptive fields need filling.
func (r *Runner) fillGeneratedPositions(rng entry.SimulationRange, dueDate, commentary, assignment string) error {
	for pos := rng.Initial + 1; pos <= rng.Final; pos++ {
		if err := r.builder.EnterPosition(pos); err != nil {
			return err
		}
		data := entry.LineData{
			Amount:        decimal.Zero,
			DueDate:       dueDate,
			Commentary:    commentary,
			PaymentMethod: entry.NoPaymentMethod,
			Assignment:    assignment,
		}
		if err := r.builder.AddLineData(data); err != nil {
			return err
		}
	}
	return nil
}

// finishPosting runs the tail of every posting sequence: confirm,
// read the document number and archive its spool.
func (r *Runner) finishPosting() (string, error) {
	if err := r.builder.ConfirmAndSave(); err != nil {
		return "", err
	}
	number, err := r.builder.DocumentNumber()
	if err != nil {
		return "", err
	}
	if err := r.builder.ArchiveSpool(r.cfg.Accounts.SpoolPath); err != nil {
		return "", err
	}
	return number, nil
}

// record stores one posting attempt in the history. Recording is best
// effort; a history failure is logged, never fatal.
func (r *Runner) record(workflow, clientCode string, amount decimal.Decimal, docDate time.Time, action, number string, runErr error) {
	if r.history == nil {
		return
	}
	p := db.Posting{
		RunID:          r.runID,
		Workflow:       workflow,
		ClientCode:     clientCode,
		Amount:         amount.StringFixed(2),
		DocDate:        docDate.Format("02.01.2006"),
		Action:         action,
		DocumentNumber: number,
		Status:         db.StatusPostingApplied,
	}
	if runErr != nil {
		p.Status = db.StatusPostingNotApplied
		p.Detail = runErr.Error()
	}
	if err := r.history.Record(p); err != nil {
		r.log.Warn("failed to record posting", "error", err)
	}
}

// cancelled reports whether the error means the user gave up rather
// than something breaking.
func cancelled(err error) bool {
	return errors.Is(err, prompt.ErrCancelled)
}
