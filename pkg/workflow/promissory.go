package workflow

import (
	"fmt"
	"strings"

	"github.com/JesusMMA96/sap-autoentry/pkg/entry"
	"github.com/JesusMMA96/sap-autoentry/pkg/workbook"
)

// PromissoryOptions describe the client whose promissory notes are
// being posted. The special G/L indicator marks the debit lines as
// note receivables.
type PromissoryOptions struct {
	Path          string
	ClientName    string
	ClientCode    string
	Category      string
	SGLIndicator  string
	TaxAssignment string
}

// Promissory posts every promissory note in the notes file: a debit
// with the special G/L indicator, the note's stamp-duty tax when it
// carries one, then clearing of the open items found by searching for
// the note amount plus tax.
func (r *Runner) Promissory(opts PromissoryOptions) error {
	book, err := workbook.OpenPromissory(opts.Path)
	if err != nil {
		return err
	}
	defer book.Close()

	ready, err := r.ask.Confirm("Prepare el fichero con los datos necesarios. ¿Continuar?")
	if err != nil {
		return err
	}
	if !ready {
		r.notify.Info("Cancelación", "Cancelado por el usuario")
		return nil
	}

	rows, err := book.Rows()
	if err != nil {
		return err
	}

	for _, note := range rows {
		if note.EntryNumber != "" {
			continue
		}

		number, noteErr := r.postNote(book, note, opts)
		r.record("promissory", opts.ClientCode, note.Amount, note.DocDate, "", number, noteErr)
		if noteErr != nil {
			if cancelled(noteErr) {
				r.notify.Info("Cancelación", "Se cancela el proceso")
			}
			r.log.Warn("note not applied", "row", note.Row, "note", note.NoteNumber, "error", noteErr)
			continue
		}

		r.log.Info("note applied", "row", note.Row, "document", number)
		if err := book.SetEntryNumber(note.Row, number); err != nil {
			return err
		}
	}

	return book.Save()
}

func (r *Runner) postNote(book *workbook.PromissoryBook, note workbook.PromissoryRow, opts PromissoryOptions) (string, error) {
	if note.DocDate.IsZero() {
		return "", &entry.ValidationError{Field: "doc date", Reason: "missing or unreadable"}
	}
	if note.DueDate.IsZero() {
		return "", &entry.ValidationError{Field: "due date", Reason: "missing or unreadable"}
	}
	if note.Amount.IsZero() {
		return "", &entry.ValidationError{Field: "amount", Reason: "missing or unreadable"}
	}

	docDate := note.DocDate.Format("02.01.2006")
	dueDate := note.DueDate.Format("02.01.2006")
	searchAmount := note.Amount.Add(note.Tax).Round(2)

	commentary := fmt.Sprintf("PAG. %s %s VTO. %s", opts.ClientName, note.NoteNumber, dueDate)
	taxCommentary := fmt.Sprintf("GASTOS AJD %s %s VTO. %s", opts.ClientName, note.NoteNumber, dueDate)

	if err := book.FillDerived(note, commentary, searchAmount); err != nil {
		return "", err
	}

	if err := r.nav.OpenTransaction(entry.TxnPostWithClearing); err != nil {
		return "", err
	}
	if err := r.builder.NewLine(entry.KeyCustomerDebitSGL, opts.ClientCode, opts.SGLIndicator, docDate); err != nil {
		return "", err
	}

	data := entry.LineData{
		Amount:        note.Amount,
		DueDate:       dueDate,
		Commentary:    commentary,
		PaymentMethod: entry.NoPaymentMethod,
		Assignment:    note.DocDate.Format("20060102"),
	}
	if err := r.builder.AddLineData(data); err != nil {
		return "", err
	}

	if !note.Tax.IsZero() {
		if err := r.builder.EnterTaxAdjustment(note.Tax, opts.TaxAssignment, taxCommentary, dueDate); err != nil {
			return "", err
		}
	}

	searchValue := strings.Replace(searchAmount.StringFixed(2), ".", ",", 1)
	if err := r.builder.SearchOpenItems(opts.Category, entry.SearchByAmount,
		searchValue, r.cfg.Accounts.CompanyCode, opts.ClientCode, ""); err != nil {
		return "", err
	}

	rng, err := r.builder.Simulate(opts.ClientCode, dueDate)
	if err != nil {
		return "", err
	}
	if err := r.fillGeneratedPositions(rng, dueDate, commentary, note.DueDate.Format("20060102")); err != nil {
		return "", err
	}
	return r.finishPosting()
}
