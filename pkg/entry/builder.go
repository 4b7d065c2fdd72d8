package entry

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/JesusMMA96/sap-autoentry/pkg/scripting"
	"github.com/JesusMMA96/sap-autoentry/pkg/terminal"
	"github.com/shopspring/decimal"
)

// NewLine opens a new posting line with the given key and account.
// When the current screen is the compensation-document header, the
// header is filled first (company code, document type, dates; the
// document date is asked of the operator when not supplied).
//
// The key must be one of the accepted posting keys, and keys 09/19
// additionally need a non-empty special G/L indicator. Violations are
// rejected before any data-entry field is touched: the operator is
// warned, the terminal returns home, and a ValidationError is
// returned.
func (b *Builder) NewLine(postingKey, account, specialIndicator, docDate string) error {
	sess, err := b.sessions.Session()
	if err != nil {
		return err
	}

	if !validPostingKeys[postingKey] {
		b.notify.Warn("Posting key", fmt.Sprintf("posting key %q is not supported", postingKey))
		if err := b.nav.ReturnHome(); err != nil {
			return err
		}
		return &ValidationError{Field: "posting key", Reason: fmt.Sprintf("%q not in accepted set", postingKey)}
	}
	if requiresIndicator(postingKey) && specialIndicator == "" {
		b.notify.Warn("Special G/L indicator", "posting key "+postingKey+" requires a special G/L indicator")
		if err := b.nav.ReturnHome(); err != nil {
			return err
		}
		return &ValidationError{Field: "special G/L indicator", Reason: "required for posting key " + postingKey}
	}

	onHeader, err := b.probe.OnScreen(terminal.TitleClearingHeader)
	if err != nil {
		return err
	}
	if onHeader {
		if err := b.fillHeader(sess, docDate); err != nil {
			return err
		}
	}

	if err := terminal.SetText(sess, idPostingKey, postingKey); err != nil {
		return fmt.Errorf("new line: %w", err)
	}
	if err := terminal.SetText(sess, idAccount, account); err != nil {
		return fmt.Errorf("new line: %w", err)
	}
	if err := terminal.SetText(sess, idSpecialIndicator, specialIndicator); err != nil {
		return fmt.Errorf("new line: %w", err)
	}
	if err := terminal.SendVKey(sess, idMainWindow, scripting.VKeyEnter); err != nil {
		return fmt.Errorf("new line: %w", err)
	}

	// The terminal sometimes substitutes a default value and asks for
	// a second acknowledgment.
	if terminal.ClassifyStatus(b.probe.StatusMessage()) == terminal.StatusAutoCorrected {
		if err := terminal.SendVKey(sess, idMainWindow, scripting.VKeyEnter); err != nil {
			return fmt.Errorf("new line: %w", err)
		}
	}

	slog.Debug("Posting line opened", "key", postingKey, "account", account)
	return nil
}

func requiresIndicator(postingKey string) bool {
	return postingKey == KeyCustomerDebitSGL || postingKey == KeyCustomerCreditSGL
}

func (b *Builder) fillHeader(sess scripting.Session, docDate string) error {
	if b.accounts.CompanyCode == "" {
		return &ValidationError{Field: "company code", Reason: "not configured"}
	}

	if el, err := sess.FindByID(idHeaderMode); err == nil {
		if err := el.Select(); err != nil {
			return fmt.Errorf("fill header: %w", err)
		}
	}

	if docDate == "" {
		var err error
		docDate, err = b.ask.Date("Document date")
		if err != nil {
			return err
		}
	}

	for _, f := range []struct{ id, value string }{
		{idDocDate, docDate},
		{idAccountingDate, docDate},
		{idCompanyCode, b.accounts.CompanyCode},
		{idDocType, "SA"},
	} {
		if err := terminal.SetText(sess, f.id, f.value); err != nil {
			return fmt.Errorf("fill header: %w", err)
		}
	}
	return nil
}

// AddLineData fills the open posting line and advances to the summary
// screen. Commentary is mandatory and asked for until non-empty. A
// missing payment method triggers a question; if the line has one, the
// operator is asked until a valid code is given. The business-area
// field (and the cost-center field, when a cost center was supplied)
// is written across its alternative locations, ignoring individual
// misses: which location exists depends on the active subscreen.
func (b *Builder) AddLineData(data LineData) error {
	sess, err := b.sessions.Session()
	if err != nil {
		return err
	}

	if b.accounts.BusinessArea == "" {
		return &ValidationError{Field: "business area", Reason: "not configured"}
	}

	assignment := data.Assignment
	if assignment == "" {
		due, err := time.Parse("02.01.2006", data.DueDate)
		if err != nil {
			return &ParseError{Field: "due date", Raw: data.DueDate, Err: err}
		}
		assignment = due.Format("02/01/2006")
	}

	if err := terminal.SetText(sess, idAmount, formatAmount(data.Amount)); err != nil {
		return fmt.Errorf("write amount: %w", err)
	}
	if err := terminal.SetText(sess, idDueDate, data.DueDate); err != nil {
		return fmt.Errorf("write due date: %w", err)
	}
	if err := terminal.SetText(sess, idAssignment, assignment); err != nil {
		return fmt.Errorf("write assignment: %w", err)
	}

	commentary := data.Commentary
	for commentary == "" {
		commentary, err = b.ask.Input("Commentary for the posting line")
		if err != nil {
			return err
		}
	}
	if err := terminal.SetText(sess, idCommentary, commentary); err != nil {
		return fmt.Errorf("write commentary: %w", err)
	}

	method, err := b.resolvePaymentMethod(data.PaymentMethod)
	if err != nil {
		return err
	}
	if method != "" && method != NoPaymentMethod {
		if err := terminal.SetText(sess, idPaymentMethod, method); err != nil {
			slog.Warn("Could not set payment method", "error", err)
		}
	}

	// The business area field moves between screen layouts; write it
	// into every location that accepts it.
	for _, id := range businessAreaFields {
		if err := terminal.SetText(sess, id, b.accounts.BusinessArea); err != nil {
			slog.Debug("Business area field not present", "id", id)
		}
	}
	if data.CostCenter != "" {
		for _, id := range costCenterFields {
			if err := terminal.SetText(sess, id, data.CostCenter); err == nil {
				break
			}
		}
	}

	if err := terminal.SendVKey(sess, idMainWindow, scripting.VKeyEnter); err != nil {
		return fmt.Errorf("confirm line data: %w", err)
	}
	if wnd, err := sess.ActiveWindow(); err == nil {
		if err := wnd.SendVKey(scripting.VKeyEnter); err != nil {
			return fmt.Errorf("confirm line data: %w", err)
		}
	}

	b.probe.StatusMessage()

	if err := terminal.Press(sess, terminal.IDSummaryButton); err != nil {
		return fmt.Errorf("advance to summary: %w", err)
	}
	if wnd, err := sess.ActiveWindow(); err == nil {
		if err := wnd.SendVKey(scripting.VKeyEnter); err != nil {
			return fmt.Errorf("advance to summary: %w", err)
		}
	}
	return nil
}

// resolvePaymentMethod returns the payment method to write: the given
// one, or the operator's answer when none was supplied. Invalid
// answers warn once each and re-ask.
func (b *Builder) resolvePaymentMethod(method string) (string, error) {
	if method != "" {
		return method, nil
	}

	has, err := b.ask.Confirm("Does the posting line have a payment method?")
	if err != nil {
		return "", err
	}
	if !has {
		return "", nil
	}

	for {
		answer, err := b.ask.Input("Payment method (2, 3, R, T)")
		if err != nil {
			return "", err
		}
		if validPaymentMethods[answer] {
			return answer, nil
		}
		b.notify.Warn("Payment method", "enter a valid payment method: 2, 3, R or T")
	}
}

// EnterPosition opens the line-detail dialog for the given position,
// used after simulation to visit each generated line.
func (b *Builder) EnterPosition(position int) error {
	sess, err := b.sessions.Session()
	if err != nil {
		return err
	}

	count, err := sess.FindByID(idLineCount)
	if err != nil {
		return fmt.Errorf("enter position %d: %w", position, err)
	}
	if err := count.SetFocus(); err != nil {
		return fmt.Errorf("enter position %d: %w", position, err)
	}
	if err := terminal.SendVKey(sess, idMainWindow, scripting.VKeyF2); err != nil {
		return fmt.Errorf("enter position %d: %w", position, err)
	}
	if err := terminal.SetText(sess, idPositionDialog, strconv.Itoa(position)); err != nil {
		return fmt.Errorf("enter position %d: %w", position, err)
	}
	if err := terminal.Press(sess, idPositionOK); err != nil {
		return fmt.Errorf("enter position %d: %w", position, err)
	}
	return nil
}

// EnterTaxAdjustment posts a tax/expense adjustment line against the
// configured expense account and cost center: debit for a positive
// amount, credit for a negative one (submitted as its absolute value).
// It fails closed when the expense pair is not configured.
func (b *Builder) EnterTaxAdjustment(amount decimal.Decimal, assignment, commentary, dueDate string) error {
	if !b.accounts.HasExpensePair() {
		return &ValidationError{Field: "expense account", Reason: "expense_account/expense_cost_center not configured"}
	}

	key := KeyGLDebit
	if amount.IsNegative() {
		key = KeyGLCredit
		amount = amount.Abs()
	}

	if err := b.NewLine(key, b.accounts.ExpenseAccount, "", ""); err != nil {
		return err
	}
	return b.AddLineData(LineData{
		Amount:        amount,
		DueDate:       dueDate,
		Commentary:    commentary,
		PaymentMethod: NoPaymentMethod,
		Assignment:    assignment,
		CostCenter:    b.accounts.ExpenseCostCenter,
	})
}
