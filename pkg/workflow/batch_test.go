package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/JesusMMA96/sap-autoentry/pkg/entry"
	"github.com/JesusMMA96/sap-autoentry/pkg/prompt"
	"github.com/JesusMMA96/sap-autoentry/pkg/prompt/prompttest"
	"github.com/JesusMMA96/sap-autoentry/pkg/scripting/scriptingtest"
	"github.com/JesusMMA96/sap-autoentry/pkg/terminal"
	"github.com/shopspring/decimal"
)

// Open-items screen fields backing ReadClearingTotals.
const (
	openItemsPane      = "wnd[0]/usr/tabsTS/tabpMAIN/ssubPAGE:SAPDF05X:6102"
	fieldDifference    = openItemsPane + "/txtRF05A-DIFFB"
	fieldItemCount     = openItemsPane + "/txtRF05A-ANZPO"
	fieldItemsAmount   = openItemsPane + "/txtRF05A-NETTO"
	fieldClearingTotal = openItemsPane + "/txtRF05A-BETRG"
)

func testIntent() PaymentIntent {
	return PaymentIntent{
		ClientName:     "ACME",
		ClientCode:     "430001",
		PaymentLabel:   "Pago Conf.",
		Number:         "2026-17",
		SGLIndicator:   "P",
		DocDate:        time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		DueDate:        time.Date(2026, 5, 25, 0, 0, 0, 0, time.UTC),
		Amount:         decimal.RequireFromString("10500.25"),
		InvoicesAmount: decimal.RequireFromString("10560.35"),
		InvoiceCount:   2,
		TaxAmount:      decimal.RequireFromString("60.10"),
		TaxAssignment:  "20260525",
		Totals: []ClientTotal{
			{ClientCode: "430002", Debit: decimal.RequireFromString("1000.00"), Credit: decimal.RequireFromString("250.00")},
		},
		Entries: []DirectEntry{
			{ClientCode: "430004", Reference: "FA-881", Amount: decimal.RequireFromString("-75.00")},
		},
	}
}

func newBatchSession() *scriptingtest.Session {
	sess := scriptingtest.NewSession()
	sess.Title = terminal.TitleHome
	sess.Set(fieldLineCount, "5")
	sess.Set(fieldItemCount, "2")
	sess.Set(fieldItemsAmount, "10.560,35")
	sess.Set(fieldDifference, "0,00")
	sess.Set(fieldClearingTotal, "10.560,35")
	sess.OnSetText = func(id, value string) {
		if id != fieldCommand {
			return
		}
		switch value {
		case entry.TxnPostWithClearing:
			sess.Title = terminal.TitleClearingHeader
		case "/n00":
			sess.Title = terminal.TitleHome
		}
	}
	sess.OnPress = func(id string) {
		switch id {
		case terminal.IDOpenItemsButton:
			sess.Title = terminal.TitleOpenItems
		case terminal.IDSummaryButton:
			sess.Title = terminal.TitleSummary
		}
	}
	return sess
}

func TestBatch(t *testing.T) {
	sess := newBatchSession()
	ask := &screenPrompter{sess: sess, documentNumber: "1400000888"}
	r := newTestRunner(&scriptingtest.Engine{Sess: sess}, ask, ask)

	number, err := r.Batch(testIntent())
	if err != nil {
		t.Fatalf("Batch returned error: %v", err)
	}
	if number != "1400000888" {
		t.Errorf("Batch = %q, expected 1400000888", number)
	}

	// The header line carried the note indicator.
	indicatorWritten := false
	for _, w := range sess.Writes {
		if w.ID == fieldIndicator && w.Value == "P" {
			indicatorWritten = true
		}
	}
	if !indicatorWritten {
		t.Error("special G/L indicator was not written for the header line")
	}

	// Every posting key the batch needs showed up, in order.
	var keys []string
	for _, w := range sess.Writes {
		if w.ID == fieldPostingKey {
			keys = append(keys, w.Value)
		}
	}
	expected := []string{
		entry.KeyCustomerDebitSGL, // header
		entry.KeyCustomerDebit,    // total cargos
		entry.KeyCustomerCredit,   // total abonos
		entry.KeyCustomerDebit,    // negative direct entry
		entry.KeyGLDebit,          // tax adjustment
	}
	if len(keys) != len(expected) {
		t.Fatalf("posting keys = %v, expected %v", keys, expected)
	}
	for i := range expected {
		if keys[i] != expected[i] {
			t.Errorf("posting key %d = %q, expected %q", i, keys[i], expected[i])
		}
	}

	// Commentaries identify the payment.
	var comments []string
	for _, w := range sess.Writes {
		if w.ID == fieldCommentary {
			comments = append(comments, w.Value)
		}
	}
	if len(comments) == 0 || comments[0] != "Pago Conf.. ACME 2026-17 vto. 25.05.2026" {
		t.Errorf("header commentary = %v, expected the payment label line first", comments)
	}
}

func TestBatchUnifiedHeader(t *testing.T) {
	sess := newBatchSession()
	ask := &screenPrompter{sess: sess, documentNumber: "1400000889"}
	r := newTestRunner(&scriptingtest.Engine{Sess: sess}, ask, ask)

	intent := testIntent()
	intent.Unified = true
	intent.SGLIndicator = ""
	intent.TaxAmount = decimal.Zero
	intent.Totals = nil
	intent.Entries = nil

	if _, err := r.Batch(intent); err != nil {
		t.Fatalf("Batch returned error: %v", err)
	}
	if got := sess.TextOf(fieldPostingKey); got != entry.KeyCustomerDebit {
		t.Errorf("posting key = %q, expected unified debit %q", got, entry.KeyCustomerDebit)
	}
}

func TestReconcileBatchRoundingResidue(t *testing.T) {
	sess := newBatchSession()
	sess.Set(fieldDifference, "0,03")
	sess.Set(fieldItemsAmount, "10.560,32")
	ask := &screenPrompter{sess: sess, documentNumber: "1400000890"}
	r := newTestRunner(&scriptingtest.Engine{Sess: sess}, ask, ask)
	sess.Title = terminal.TitleSummary

	intent := testIntent()
	err := r.reconcileBatch(intent, "25.05.2026", "20260525")
	if err != nil {
		t.Fatalf("reconcileBatch returned error: %v", err)
	}

	// Counts match, so the residue is left for the simulation.
	found := false
	for _, info := range ask.Infos {
		if info == "La diferencia está en céntimos acumulados" {
			found = true
		}
	}
	if !found {
		t.Error("rounding residue was not reported")
	}
	if sess.Wrote(fieldPostingKey) {
		t.Error("a manual line was posted for a pure rounding residue")
	}
}

func TestReconcileBatchDeclineAdjustment(t *testing.T) {
	sess := newBatchSession()
	sess.Set(fieldDifference, "120,00")
	sess.Set(fieldItemsAmount, "10.440,35")
	sess.Set(fieldItemCount, "1")
	sess.Title = terminal.TitleSummary

	// Decline the adjustment question.
	ask := &declinePrompter{}
	r := newTestRunner(&scriptingtest.Engine{Sess: sess}, ask, &ask.Fake)

	err := r.reconcileBatch(testIntent(), "25.05.2026", "20260525")
	if !errors.Is(err, prompt.ErrCancelled) {
		t.Fatalf("reconcileBatch returned %v, expected ErrCancelled", err)
	}
}

// declinePrompter answers no to everything.
type declinePrompter struct {
	prompttest.Fake
}

func (p *declinePrompter) Confirm(message string) (bool, error) {
	return false, nil
}
