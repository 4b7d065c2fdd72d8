package entry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JesusMMA96/sap-autoentry/pkg/prompt"
	"github.com/JesusMMA96/sap-autoentry/pkg/scripting"
	"github.com/JesusMMA96/sap-autoentry/pkg/terminal"
	"github.com/shopspring/decimal"
)

func selectMenu(sess scripting.Session, id string) error {
	el, err := sess.FindByID(id)
	if err != nil {
		return err
	}
	return el.Select()
}

// Difference resolution strategies offered to the operator.
const (
	resolveAbsorb   = "Absorb into the rounding account"
	resolveAllocate = "Allocate to the account"
	resolveAbandon  = "Abandon"
)

// Simulate runs the terminal's balancing simulation and returns the
// range of line positions it generated. When the terminal reports a
// difference too large to clear automatically, the displayed amount is
// parsed, the difference resolver is invoked, and the simulation is
// re-run with the initial position re-read after resolution.
//
// account and dueDate are only used by the resolver when a difference
// has to be posted.
func (b *Builder) Simulate(account, dueDate string) (SimulationRange, error) {
	sess, err := b.sessions.Session()
	if err != nil {
		return SimulationRange{}, err
	}

	if err := b.ensureScreenWithUser(terminal.TitleSummary, 3); err != nil {
		return SimulationRange{}, err
	}

	initial, err := b.lineCount()
	if err != nil {
		return SimulationRange{}, err
	}

	if err := selectMenu(sess, idSimulateMenu); err != nil {
		return SimulationRange{}, fmt.Errorf("simulate: %w", err)
	}

	if terminal.ClassifyStatus(b.probe.StatusMessage()) == terminal.StatusDifferenceTooLarge {
		raw, err := terminal.ReadText(sess, idDifference)
		if err != nil {
			b.notify.Info("Simulation", "could not read the difference amount")
			if homeErr := b.nav.ReturnHome(); homeErr != nil {
				return SimulationRange{}, homeErr
			}
			return SimulationRange{}, &ParseError{Field: "difference", Raw: "", Err: err}
		}

		difference, err := ParseDisplayAmount(raw)
		if err != nil {
			b.notify.Info("Simulation", "could not read the difference amount")
			if homeErr := b.nav.ReturnHome(); homeErr != nil {
				return SimulationRange{}, homeErr
			}
			return SimulationRange{}, &ParseError{Field: "difference", Raw: raw, Err: err}
		}

		if err := b.resolveDifference(difference, account, dueDate); err != nil {
			return SimulationRange{}, err
		}

		initial, err = b.lineCount()
		if err != nil {
			return SimulationRange{}, err
		}
		if err := selectMenu(sess, idSimulateMenu); err != nil {
			return SimulationRange{}, fmt.Errorf("simulate: %w", err)
		}
	}

	final, err := b.lineCount()
	if err != nil {
		return SimulationRange{}, err
	}
	return SimulationRange{Initial: initial, Final: final}, nil
}

func (b *Builder) lineCount() (int, error) {
	sess, err := b.sessions.Session()
	if err != nil {
		return 0, err
	}
	raw, err := terminal.ReadText(sess, idLineCount)
	if err != nil {
		return 0, fmt.Errorf("read line count: %w", err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ParseError{Field: "line count", Raw: raw, Err: err}
	}
	return count, nil
}

// resolveDifference asks the operator what to do with an unresolved
// difference and posts the chosen correction. Abandoning returns the
// terminal home and reports ErrCancelled.
func (b *Builder) resolveDifference(difference decimal.Decimal, account, dueDate string) error {
	sess, err := b.sessions.Session()
	if err != nil {
		return err
	}

	choice, err := b.ask.Select(
		fmt.Sprintf("Simulation left a difference of %s. How should it be resolved?", difference.StringFixed(2)),
		[]string{resolveAbsorb, resolveAllocate, resolveAbandon},
	)
	if err != nil {
		return err
	}

	switch choice {
	case resolveAbsorb:
		if err := terminal.Press(sess, terminal.IDSummaryButton); err != nil {
			return fmt.Errorf("resolve difference: %w", err)
		}
		return b.absorbRounding(difference, dueDate)

	case resolveAllocate:
		if err := terminal.Press(sess, terminal.IDSummaryButton); err != nil {
			return fmt.Errorf("resolve difference: %w", err)
		}
		return b.allocateToAccount(difference, account, dueDate)
	}

	b.notify.Info("Simulation", "the difference was not applied")
	if err := b.nav.ReturnHome(); err != nil {
		return err
	}
	return prompt.ErrCancelled
}

// absorbRounding posts the difference to the configured rounding
// account: debit when positive, credit when negative.
func (b *Builder) absorbRounding(difference decimal.Decimal, dueDate string) error {
	if !b.accounts.HasRoundingPair() {
		return &ValidationError{Field: "rounding account", Reason: "rounding_account/rounding_cost_center not configured"}
	}
	if difference.IsZero() {
		b.notify.Info("Rounding", "difference is zero, nothing to post")
		return nil
	}

	key := KeyGLDebit
	if difference.IsNegative() {
		key = KeyGLCredit
		difference = difference.Abs()
	}

	if err := b.NewLine(key, b.accounts.RoundingAccount, "", ""); err != nil {
		return err
	}
	return b.AddLineData(LineData{
		Amount:        difference,
		DueDate:       dueDate,
		PaymentMethod: NoPaymentMethod,
		CostCenter:    b.accounts.RoundingCostCenter,
	})
}

// allocateToAccount posts the difference directly to the given
// account: debit '06' when negative, credit '16' when positive.
func (b *Builder) allocateToAccount(difference decimal.Decimal, account, dueDate string) error {
	if difference.IsZero() {
		b.notify.Info("Difference", "difference is zero, nothing to post")
		return nil
	}

	key := KeyCustomerCredit
	if difference.IsNegative() {
		key = KeyCustomerDebit
		difference = difference.Abs()
	}

	if err := b.NewLine(key, account, "", ""); err != nil {
		return err
	}
	return b.AddLineData(LineData{
		Amount:  difference,
		DueDate: dueDate,
	})
}

// ConfirmAndSave asks the operator whether the summarized entry may be
// saved, repeating while the terminal keeps showing the summary
// screen: intermediate confirmations can land back on it. The final
// save keystroke in the terminal stays a manual operator action;
// declining reports ErrCancelled.
func (b *Builder) ConfirmAndSave() error {
	for {
		on, err := b.probe.OnScreen(terminal.TitleSummary)
		if err != nil {
			return err
		}
		if !on {
			return nil
		}

		ok, err := b.ask.Confirm("Satisfied with the posting lines? Proceed to save in the terminal?")
		if err != nil {
			return err
		}
		if !ok {
			b.notify.Info("Cancelled", "the posting was not saved")
			return prompt.ErrCancelled
		}
	}
}
