package workflow

import (
	"fmt"
	"time"

	"github.com/JesusMMA96/sap-autoentry/pkg/entry"
	"github.com/JesusMMA96/sap-autoentry/pkg/prompt"
	"github.com/shopspring/decimal"
)

// ClientTotal aggregates the debits and credits one client
// contributes to a batch payment. Both amounts are magnitudes.
type ClientTotal struct {
	ClientCode string
	Debit      decimal.Decimal
	Credit     decimal.Decimal
}

// DirectEntry is a batch line that belongs to no aggregate: a single
// charge or credit tied to an invoice reference. Positive amounts are
// credits, negative amounts debits.
type DirectEntry struct {
	ClientCode string
	Reference  string
	Amount     decimal.Decimal
}

// PaymentIntent is the semantic container a preprocessed batch file
// hands over: everything the posting needs, nothing about the file's
// layout.
type PaymentIntent struct {
	ClientName   string
	ClientCode   string
	PaymentLabel string
	// Number identifies the payment in the commentaries.
	Number string
	// Unified payments post a plain debit header; others carry the
	// special G/L indicator of a promissory note.
	Unified      bool
	SGLIndicator string

	DocDate time.Time
	DueDate time.Time
	Amount  decimal.Decimal

	// InvoicesAmount and InvoiceCount describe the detail file's
	// invoice total, compared against the open items the search
	// actually loaded.
	InvoicesAmount decimal.Decimal
	InvoiceCount   int

	// TaxAmount is the stamp-duty adjustment, zero when none applies.
	TaxAmount     decimal.Decimal
	TaxAssignment string

	Totals  []ClientTotal
	Entries []DirectEntry
}

// Batch posts one aggregated batch payment: the header line, the
// per-client totals, the direct entries, the optional tax adjustment,
// then a difference check against the loaded open items before
// simulating and confirming. Returns the document number.
func (r *Runner) Batch(intent PaymentIntent) (string, error) {
	number, err := r.postBatch(intent)
	r.record("batch", intent.ClientCode, intent.Amount, intent.DocDate, "", number, err)
	return number, err
}

func (r *Runner) postBatch(intent PaymentIntent) (string, error) {
	dueDate := intent.DueDate.Format("02.01.2006")
	docAssignment := intent.DocDate.Format("20060102")
	dueAssignment := intent.DueDate.Format("20060102")

	commentary := fmt.Sprintf("%s. %s %s vto. %s", intent.PaymentLabel, intent.ClientName, intent.Number, dueDate)
	debitCommentary := fmt.Sprintf("TOTAL CARGOS %s %s vto. %s", intent.ClientName, intent.Number, dueDate)
	creditCommentary := fmt.Sprintf("TOTAL ABONOS %s %s vto. %s", intent.ClientName, intent.Number, dueDate)
	taxCommentary := fmt.Sprintf("GASTOS AJD %s %s vto. %s", intent.ClientName, intent.Number, dueDate)

	if err := r.nav.OpenTransaction(entry.TxnPostWithClearing); err != nil {
		return "", err
	}

	docDate := intent.DocDate.Format("02.01.2006")
	if intent.Unified {
		if err := r.builder.NewLine(entry.KeyCustomerDebit, intent.ClientCode, "", docDate); err != nil {
			return "", err
		}
	} else {
		if err := r.builder.NewLine(entry.KeyCustomerDebitSGL, intent.ClientCode, intent.SGLIndicator, docDate); err != nil {
			return "", err
		}
	}
	header := entry.LineData{
		Amount:        intent.Amount,
		DueDate:       dueDate,
		Commentary:    commentary,
		PaymentMethod: entry.NoPaymentMethod,
		Assignment:    docAssignment,
	}
	if err := r.builder.AddLineData(header); err != nil {
		return "", err
	}

	for _, total := range intent.Totals {
		if !total.Debit.IsZero() {
			if err := r.addBatchLine(entry.KeyCustomerDebit, total.ClientCode,
				total.Debit, dueDate, debitCommentary, dueAssignment); err != nil {
				return "", err
			}
		}
		if !total.Credit.IsZero() {
			if err := r.addBatchLine(entry.KeyCustomerCredit, total.ClientCode,
				total.Credit, dueDate, creditCommentary, dueAssignment); err != nil {
				return "", err
			}
		}
	}

	for _, direct := range intent.Entries {
		key := entry.KeyCustomerCredit
		amount := direct.Amount
		text := fmt.Sprintf("CARGO %s %s", direct.Reference, intent.ClientName)
		if amount.IsNegative() {
			key = entry.KeyCustomerDebit
			amount = amount.Abs()
		}
		if err := r.addBatchLine(key, direct.ClientCode, amount, dueDate, text, dueAssignment); err != nil {
			return "", err
		}
	}

	if !intent.TaxAmount.IsZero() {
		if err := r.builder.EnterTaxAdjustment(intent.TaxAmount, intent.TaxAssignment, taxCommentary, dueDate); err != nil {
			return "", err
		}
	}

	if err := r.reconcileBatch(intent, dueDate, dueAssignment); err != nil {
		return "", err
	}

	rng, err := r.builder.Simulate(intent.ClientCode, dueDate)
	if err != nil {
		return "", err
	}
	if err := r.fillGeneratedPositions(rng, dueDate, commentary, dueAssignment); err != nil {
		return "", err
	}
	return r.finishPosting()
}

// reconcileBatch compares the detail file's totals against what the
// terminal actually loaded. Missing invoices are entered by hand; a
// pure rounding residue is left for the simulation's difference
// resolver.
func (r *Runner) reconcileBatch(intent PaymentIntent, dueDate, dueAssignment string) error {
	totals, err := r.builder.ReadClearingTotals()
	if err != nil {
		return err
	}
	if totals.Difference.IsZero() {
		return nil
	}

	invoicesDiff := intent.InvoicesAmount.Sub(totals.ItemsAmount)
	if invoicesDiff.IsZero() {
		return nil
	}

	if intent.InvoiceCount == totals.ItemCount {
		r.notify.Info("Diferencia", "La diferencia está en céntimos acumulados")
		return nil
	}

	adjust, err := r.ask.Confirm(fmt.Sprintf(
		"Hay diferencia en las facturas: %s\n¿Quieres ajustar la diferencia?",
		totals.Difference.StringFixed(2)))
	if err != nil {
		return err
	}
	if !adjust {
		r.notify.Info("Cancelación", "No se ha ajustado la diferencia")
		return prompt.ErrCancelled
	}

	for {
		more, err := r.ask.Confirm("¿Falta alguna factura por cargar?")
		if err != nil {
			return err
		}
		if !more {
			return nil
		}

		reference, err := r.ask.Input("Referencia de la factura:")
		if err != nil {
			return err
		}
		amount, err := r.ask.Amount("Importe de la factura:")
		if err != nil {
			return err
		}
		isCredit, err := r.ask.Confirm("¿Es un abono?")
		if err != nil {
			return err
		}

		key := entry.KeyCustomerDebit
		text := "SE DESCUENTA ABONO " + reference
		if isCredit {
			key = entry.KeyCustomerCredit
			text = "PAGA FACTURA " + reference
		}
		if err := r.addBatchLine(key, intent.ClientCode, amount, dueDate, text, dueAssignment); err != nil {
			return err
		}
	}
}

func (r *Runner) addBatchLine(key, account string, amount decimal.Decimal, dueDate, commentary, assignment string) error {
	if err := r.builder.NewLine(key, account, "", dueDate); err != nil {
		return err
	}
	return r.builder.AddLineData(entry.LineData{
		Amount:        amount,
		DueDate:       dueDate,
		Commentary:    commentary,
		PaymentMethod: entry.NoPaymentMethod,
		Assignment:    assignment,
	})
}
