package workflow

import (
	"fmt"
	"time"

	"github.com/JesusMMA96/sap-autoentry/pkg/entry"
	"github.com/JesusMMA96/sap-autoentry/pkg/workbook"
)

// Actions a daily payment row can carry. The action picks the posting
// recipe for the row.
const (
	ActionRelation  = "RELACION"  // manual entries against the payment
	ActionInvoice   = "FACTURA"   // clear a reference range of invoices
	ActionAll       = "TODO"      // clear every open item
	ActionUpTo      = "HASTA"     // clear items due up to a date
	ActionOnly      = "SOLO"      // clear items due on one date
	ActionBetween   = "ENTRE"     // clear items due between two dates
	ActionOnAccount = "A CUENTA"  // single on-account credit
	ActionRefund    = "REEMBOLSO" // credit a vendor refund
)

// Daily walks the treated daily bank file bottom-up and posts every
// unprocessed payment row. A failed row is marked "No aplicado" and
// the loop continues; rows already marked "Aplicado" are skipped.
func (r *Runner) Daily(bookPath string) error {
	book, err := workbook.OpenDaily(bookPath)
	if err != nil {
		return err
	}
	defer book.Close()

	rows, err := book.Rows()
	if err != nil {
		return err
	}

	hasVendors, err := r.ask.Confirm("¿Hay alguna cuenta de Acreedor?")
	if err != nil {
		return err
	}

	category := "D"
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		if row.Status == workbook.StatusApplied {
			r.notify.Info("Salto", fmt.Sprintf("Fila %d: ya aplicado, se salta.", row.Row))
			continue
		}

		if hasVendors {
			answer, selErr := r.ask.Select(
				fmt.Sprintf("Cliente Nº %s: categoría de cuenta", row.ClientCode),
				[]string{"D", "K"})
			if selErr == nil {
				category = answer
			}
		}

		number, rowErr := r.postDailyRow(row, category)
		r.record("daily", row.ClientCode, row.Amount, row.DocDate, row.Action, number, rowErr)
		if rowErr != nil {
			if cancelled(rowErr) {
				r.notify.Info("Cancelación", fmt.Sprintf("Fila %d: cancelado por el usuario.", row.Row))
			}
			r.log.Warn("row not applied", "row", row.Row, "action", row.Action, "error", rowErr)
			if err := book.MarkNotApplied(row.Row); err != nil {
				return err
			}
			continue
		}

		r.log.Info("row applied", "row", row.Row, "document", number)
		if err := book.MarkApplied(row.Row, number); err != nil {
			return err
		}
	}

	if err := book.Save(); err != nil {
		return err
	}
	r.notify.Info("Finalizado", "Pagos diarios aplicados correctamente.\nRevisa los números de asiento.")
	return nil
}

// postDailyRow runs the full posting sequence for one row and returns
// the document number it produced.
func (r *Runner) postDailyRow(row workbook.PaymentRow, category string) (string, error) {
	if row.Action == "" {
		return "", &entry.ValidationError{Field: "action", Reason: "missing"}
	}
	if row.DocDate.IsZero() {
		return "", &entry.ValidationError{Field: "doc date", Reason: "missing or unreadable"}
	}
	if row.Amount.IsZero() {
		return "", &entry.ValidationError{Field: "amount", Reason: "missing or unreadable"}
	}

	dueDate := row.DocDate.Format("02.01.2006")

	if row.Action == ActionRelation {
		if err := r.relationEntries(row, dueDate); err != nil {
			return "", err
		}
	} else {
		if err := r.nav.OpenTransaction(entry.TxnPostWithClearing); err != nil {
			return "", err
		}
		if err := r.builder.NewLine(entry.KeyGLDebit, r.cfg.Accounts.BankAccount, "", dueDate); err != nil {
			return "", err
		}
		if err := r.builder.AddLineData(r.lineData(row, dueDate)); err != nil {
			return "", err
		}
		if err := r.dispatchAction(row, category, dueDate); err != nil {
			return "", err
		}
	}

	rng, err := r.builder.Simulate(row.ClientCode, dueDate)
	if err != nil {
		return "", err
	}
	if err := r.fillGeneratedPositions(rng, dueDate, row.Commentary, row.Assignment); err != nil {
		return "", err
	}
	return r.finishPosting()
}

// dispatchAction runs the per-action clearing step after the bank
// debit line is in place.
func (r *Runner) dispatchAction(row workbook.PaymentRow, category, dueDate string) error {
	switch row.Action {
	case ActionInvoice:
		return r.builder.SearchOpenItems(category, entry.SearchByReference,
			row.SearchFrom, "", row.ClientCode, row.SearchTo)

	case ActionAll:
		return r.builder.SearchOpenItems(category, entry.SearchAll,
			"", "", row.ClientCode, "")

	case ActionUpTo:
		to, err := searchDate(row.SearchFrom)
		if err != nil {
			return err
		}
		return r.builder.SearchOpenItems(category, entry.SearchByDueDate,
			"", "", row.ClientCode, to)

	case ActionOnly:
		on, err := searchDate(row.SearchFrom)
		if err != nil {
			return err
		}
		return r.builder.SearchOpenItems(category, entry.SearchByDueDate,
			on, "", row.ClientCode, "")

	case ActionBetween:
		from, err := searchDate(row.SearchFrom)
		if err != nil {
			return err
		}
		to, err := searchDate(row.SearchTo)
		if err != nil {
			return err
		}
		return r.builder.SearchOpenItems(category, entry.SearchByDueDate,
			from, "", row.ClientCode, to)

	case ActionOnAccount:
		if err := r.builder.NewLine(entry.KeyCustomerCredit, row.ClientCode, "", dueDate); err != nil {
			return err
		}
		return r.builder.AddLineData(r.lineData(row, dueDate))

	case ActionRefund:
		target := RefundDueDate(time.Now())
		data := entry.LineData{
			Amount:        row.Amount,
			DueDate:       target.Format("02.01.2006"),
			Commentary:    "Tr. Reemb. OS " + row.SearchFrom,
			PaymentMethod: entry.NoPaymentMethod,
			Assignment:    target.Format("20060102"),
		}
		if err := r.builder.NewLine(entry.KeyVendorCredit, row.ClientCode, "", dueDate); err != nil {
			return err
		}
		return r.builder.AddLineData(data)

	default:
		r.notify.Warn("Acción no válida", fmt.Sprintf("Fila %d: acción %q no reconocida.", row.Row, row.Action))
		return &entry.ValidationError{Field: "action", Reason: fmt.Sprintf("unknown action %q", row.Action)}
	}
}

// relationEntries posts a payment whose detail arrives as manual
// entries: the bank debit first, then operator-entered credits and
// debits against the client until there are no more.
func (r *Runner) relationEntries(row workbook.PaymentRow, dueDate string) error {
	if err := r.nav.OpenTransaction(entry.TxnPostWithClearing); err != nil {
		return err
	}
	if err := r.builder.NewLine(entry.KeyGLDebit, r.cfg.Accounts.BankAccount, "", dueDate); err != nil {
		return err
	}
	if err := r.builder.AddLineData(r.lineData(row, dueDate)); err != nil {
		return err
	}

	for {
		more, err := r.ask.Confirm("¿Tiene algún apunte manual?")
		if err != nil {
			return err
		}
		if !more {
			return nil
		}

		amount, err := r.ask.Amount("Introduce el importe del apunte:")
		if err != nil {
			return err
		}
		isCredit, err := r.ask.Confirm("¿Es un abono?")
		if err != nil {
			return err
		}

		key := entry.KeyCustomerDebit
		if isCredit {
			key = entry.KeyCustomerCredit
		}
		if err := r.builder.NewLine(key, row.ClientCode, "", dueDate); err != nil {
			return err
		}
		data := r.lineData(row, dueDate)
		data.Amount = amount
		if err := r.builder.AddLineData(data); err != nil {
			return err
		}
	}
}

// lineData builds the standard line payload for a daily row.
func (r *Runner) lineData(row workbook.PaymentRow, dueDate string) entry.LineData {
	return entry.LineData{
		Amount:        row.Amount,
		DueDate:       dueDate,
		Commentary:    row.Commentary,
		PaymentMethod: entry.NoPaymentMethod,
		Assignment:    row.Assignment,
	}
}

// RefundDueDate is the due date a refund credit carries: the 25th of
// the current month, or of the next month once the 8th has passed.
func RefundDueDate(today time.Time) time.Time {
	year, month := today.Year(), today.Month()
	if today.Day() >= 8 {
		if month == time.December {
			year, month = year+1, time.January
		} else {
			month++
		}
	}
	return time.Date(year, month, 25, 0, 0, 0, 0, today.Location())
}

// searchDate accepts the dd/mm/yyyy dates the spreadsheet carries and
// returns them in the terminal's dd.mm.yyyy form. Values already in
// terminal form pass through unchanged.
func searchDate(value string) (string, error) {
	if t, err := workbook.ParseDate(value); err == nil {
		return t.Format("02.01.2006"), nil
	}
	if t, err := time.Parse("02.01.2006", value); err == nil {
		return t.Format("02.01.2006"), nil
	}
	return "", &entry.ParseError{Field: "search date", Raw: value,
		Err: fmt.Errorf("not a dd/mm/yyyy date")}
}
