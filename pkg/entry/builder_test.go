package entry

import (
	"errors"
	"testing"

	"github.com/JesusMMA96/sap-autoentry/pkg/config"
	"github.com/JesusMMA96/sap-autoentry/pkg/prompt"
	"github.com/JesusMMA96/sap-autoentry/pkg/prompt/prompttest"
	"github.com/JesusMMA96/sap-autoentry/pkg/scripting"
	"github.com/JesusMMA96/sap-autoentry/pkg/scripting/scriptingtest"
	"github.com/JesusMMA96/sap-autoentry/pkg/terminal"
	"github.com/shopspring/decimal"
)

func testAccounts() config.Accounts {
	return config.Accounts{
		CompanyCode:        "2000",
		BusinessArea:       "0010",
		BankAccount:        "57200001",
		ExpenseAccount:     "62600001",
		ExpenseCostCenter:  "CC100",
		RoundingAccount:    "65900001",
		RoundingCostCenter: "CC900",
		SpoolPath:          "C:\\spool",
	}
}

func newTestBuilder(sess *scriptingtest.Session, ask *prompttest.Fake, accounts config.Accounts) *Builder {
	mgr := scripting.NewManager(&scriptingtest.Engine{Sess: sess})
	probe := terminal.NewProbe(mgr, ask)
	nav := terminal.NewNavigator(mgr, probe)
	return NewBuilder(mgr, nav, probe, ask, ask, accounts)
}

// newTestBuilderWithPrompter accepts any prompter, for tests that
// script answers with behavior the queue-based fake cannot express.
func newTestBuilderWithPrompter(sess *scriptingtest.Session, ask prompt.Prompter, notify prompt.Notifier) *Builder {
	mgr := scripting.NewManager(&scriptingtest.Engine{Sess: sess})
	probe := terminal.NewProbe(mgr, notify)
	nav := terminal.NewNavigator(mgr, probe)
	return NewBuilder(mgr, nav, probe, ask, notify, testAccounts())
}

func TestNewLineRejectsInvalidPostingKey(t *testing.T) {
	sess := scriptingtest.NewSession()
	sess.Title = terminal.TitleSummary
	ask := &prompttest.Fake{}
	b := newTestBuilder(sess, ask, testAccounts())

	err := b.NewLine("99", "430001", "", "01.02.2026")

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("NewLine with key 99 returned %v, expected ValidationError", err)
	}
	if sess.Wrote(idPostingKey) {
		t.Error("posting key field was written despite invalid key")
	}
	if sess.TextOf(testCommandField) != "/n00" {
		t.Error("terminal was not returned home after rejection")
	}
	if len(ask.Warnings) != 1 {
		t.Errorf("got %d warnings, expected 1", len(ask.Warnings))
	}
}

// testCommandField mirrors the terminal package's command field id so
// tests can assert on return-home navigation.
const testCommandField = "wnd[0]/tbar[0]/okcd"

func TestNewLineRequiresSpecialIndicator(t *testing.T) {
	for _, key := range []string{KeyCustomerDebitSGL, KeyCustomerCreditSGL} {
		t.Run(key, func(t *testing.T) {
			sess := scriptingtest.NewSession()
			sess.Title = terminal.TitleSummary
			ask := &prompttest.Fake{}
			b := newTestBuilder(sess, ask, testAccounts())

			err := b.NewLine(key, "430001", "", "01.02.2026")

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("NewLine(%s) without indicator returned %v, expected ValidationError", key, err)
			}
			if sess.Wrote(idAccount) {
				t.Error("account field was written despite missing indicator")
			}
			if sess.TextOf(testCommandField) != "/n00" {
				t.Error("terminal was not returned home after rejection")
			}
		})
	}
}

func TestNewLineFillsClearingHeader(t *testing.T) {
	sess := scriptingtest.NewSession()
	sess.Title = terminal.TitleClearingHeader
	ask := &prompttest.Fake{Dates: []string{"05.03.2026"}}
	b := newTestBuilder(sess, ask, testAccounts())

	if err := b.NewLine(KeyGLDebit, "57200001", "", ""); err != nil {
		t.Fatalf("NewLine returned error: %v", err)
	}

	if !sess.Pressed(idHeaderMode) {
		t.Error("header mode radio was not selected")
	}
	checks := []struct{ id, expected string }{
		{idDocDate, "05.03.2026"},
		{idAccountingDate, "05.03.2026"},
		{idCompanyCode, "2000"},
		{idDocType, "SA"},
		{idPostingKey, KeyGLDebit},
		{idAccount, "57200001"},
	}
	for _, c := range checks {
		if got := sess.TextOf(c.id); got != c.expected {
			t.Errorf("field %s = %q, expected %q", c.id, got, c.expected)
		}
	}
	if len(ask.Dates) != 0 {
		t.Error("document date was not asked of the operator")
	}
}

func TestNewLineSkipsDatePromptWhenGiven(t *testing.T) {
	sess := scriptingtest.NewSession()
	sess.Title = terminal.TitleClearingHeader
	ask := &prompttest.Fake{}
	b := newTestBuilder(sess, ask, testAccounts())

	if err := b.NewLine(KeyCustomerCredit, "430001", "", "10.01.2026"); err != nil {
		t.Fatalf("NewLine returned error: %v", err)
	}
	if got := sess.TextOf(idDocDate); got != "10.01.2026" {
		t.Errorf("document date = %q, expected 10.01.2026", got)
	}
	if len(ask.Questions) != 0 {
		t.Errorf("operator was asked %v, expected no questions", ask.Questions)
	}
}

func TestNewLineAcknowledgesAutoCorrection(t *testing.T) {
	sess := scriptingtest.NewSession()
	sess.Title = terminal.TitleSummary
	sess.Status = "El valor se adapta al formato interno"
	ask := &prompttest.Fake{}
	b := newTestBuilder(sess, ask, testAccounts())

	if err := b.NewLine(KeyCustomerCredit, "430001", "", "01.02.2026"); err != nil {
		t.Fatalf("NewLine returned error: %v", err)
	}

	enters := 0
	for _, vk := range sess.VKeys {
		if vk.ID == "wnd[0]" && vk.Code == scripting.VKeyEnter {
			enters++
		}
	}
	if enters != 2 {
		t.Errorf("got %d Enter keys, expected 2 (auto-correction acknowledgment)", enters)
	}
}

func TestAddLineData(t *testing.T) {
	sess := scriptingtest.NewSession()
	sess.Title = terminal.TitleSummary
	ask := &prompttest.Fake{
		Confirms: []bool{true},
		Inputs:   []string{"", "PAGO FACTURA 123", "X", "2"},
	}
	b := newTestBuilder(sess, ask, testAccounts())

	err := b.AddLineData(LineData{
		Amount:  decimal.RequireFromString("1234.5"),
		DueDate: "05.03.2026",
	})
	if err != nil {
		t.Fatalf("AddLineData returned error: %v", err)
	}

	checks := []struct{ id, expected string }{
		{idAmount, "1234,50"},
		{idDueDate, "05.03.2026"},
		{idAssignment, "05/03/2026"},
		{idCommentary, "PAGO FACTURA 123"},
		{idPaymentMethod, "2"},
	}
	for _, c := range checks {
		if got := sess.TextOf(c.id); got != c.expected {
			t.Errorf("field %s = %q, expected %q", c.id, got, c.expected)
		}
	}
	if len(ask.Warnings) != 1 {
		t.Errorf("got %d warnings, expected 1 (invalid payment method)", len(ask.Warnings))
	}
	for _, id := range businessAreaFields {
		if !sess.Wrote(id) {
			t.Errorf("business area location %s was not written", id)
		}
	}
	if !sess.Pressed(terminal.IDSummaryButton) {
		t.Error("summary button was not pressed")
	}
}

func TestAddLineDataNoPaymentMethod(t *testing.T) {
	sess := scriptingtest.NewSession()
	sess.Title = terminal.TitleSummary
	ask := &prompttest.Fake{}
	b := newTestBuilder(sess, ask, testAccounts())

	err := b.AddLineData(LineData{
		Amount:        decimal.RequireFromString("50"),
		DueDate:       "05.03.2026",
		Commentary:    "TOTAL CARGOS",
		PaymentMethod: NoPaymentMethod,
		Assignment:    "20260305",
	})
	if err != nil {
		t.Fatalf("AddLineData returned error: %v", err)
	}
	if len(ask.Questions) != 0 {
		t.Errorf("operator was asked %v, expected no questions", ask.Questions)
	}
	if sess.Wrote(idPaymentMethod) {
		t.Error("payment method field written for a line without one")
	}
	if got := sess.TextOf(idAssignment); got != "20260305" {
		t.Errorf("assignment = %q, expected 20260305", got)
	}
}

func TestAddLineDataBadDueDate(t *testing.T) {
	sess := scriptingtest.NewSession()
	sess.Title = terminal.TitleSummary
	b := newTestBuilder(sess, &prompttest.Fake{}, testAccounts())

	err := b.AddLineData(LineData{
		Amount:  decimal.RequireFromString("10"),
		DueDate: "not-a-date",
	})

	var pErr *ParseError
	if !errors.As(err, &pErr) {
		t.Fatalf("AddLineData with bad due date returned %v, expected ParseError", err)
	}
	if pErr.Field != "due date" {
		t.Errorf("ParseError field = %q, expected due date", pErr.Field)
	}
	if sess.Wrote(idAmount) {
		t.Error("amount was written despite unparseable due date")
	}
}

func TestEnterTaxAdjustment(t *testing.T) {
	tests := []struct {
		name           string
		amount         string
		expectedKey    string
		expectedAmount string
	}{
		{"negative posts credit", "-12.30", KeyGLCredit, "12,30"},
		{"positive posts debit", "7", KeyGLDebit, "7,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := scriptingtest.NewSession()
			sess.Title = terminal.TitleSummary
			b := newTestBuilder(sess, &prompttest.Fake{}, testAccounts())

			err := b.EnterTaxAdjustment(decimal.RequireFromString(tt.amount), "20260305", "GASTOS AJD", "05.03.2026")
			if err != nil {
				t.Fatalf("EnterTaxAdjustment returned error: %v", err)
			}
			if got := sess.TextOf(idPostingKey); got != tt.expectedKey {
				t.Errorf("posting key = %q, expected %q", got, tt.expectedKey)
			}
			if got := sess.TextOf(idAmount); got != tt.expectedAmount {
				t.Errorf("amount = %q, expected %q", got, tt.expectedAmount)
			}
			if got := sess.TextOf(idAccount); got != "62600001" {
				t.Errorf("account = %q, expected expense account", got)
			}
			if !sess.Wrote(costCenterFields[0]) {
				t.Error("cost center was not written")
			}
		})
	}
}

func TestEnterTaxAdjustmentRequiresExpensePair(t *testing.T) {
	sess := scriptingtest.NewSession()
	sess.Title = terminal.TitleSummary
	accounts := testAccounts()
	accounts.ExpenseAccount = ""
	b := newTestBuilder(sess, &prompttest.Fake{}, accounts)

	err := b.EnterTaxAdjustment(decimal.RequireFromString("5"), "", "GASTOS", "05.03.2026")

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("EnterTaxAdjustment returned %v, expected ValidationError", err)
	}
	if len(sess.Writes) != 0 {
		t.Errorf("fields were written despite missing expense pair: %v", sess.Writes)
	}
}

func TestEnterPosition(t *testing.T) {
	sess := scriptingtest.NewSession()
	sess.Title = terminal.TitleSummary
	b := newTestBuilder(sess, &prompttest.Fake{}, testAccounts())

	if err := b.EnterPosition(3); err != nil {
		t.Fatalf("EnterPosition returned error: %v", err)
	}

	gotF2 := false
	for _, vk := range sess.VKeys {
		if vk.ID == "wnd[0]" && vk.Code == scripting.VKeyF2 {
			gotF2 = true
		}
	}
	if !gotF2 {
		t.Error("F2 was not sent to open the position dialog")
	}
	if got := sess.TextOf(idPositionDialog); got != "3" {
		t.Errorf("position dialog = %q, expected 3", got)
	}
	if !sess.Pressed(idPositionOK) {
		t.Error("position dialog was not confirmed")
	}
}
