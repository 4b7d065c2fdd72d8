package workbook

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Promissory note file columns.
const (
	colNoteDocDate    = 1
	colNoteAcctDate   = 2
	colNoteAmount     = 3
	colNoteAssignment = 4
	colNoteNumber     = 5
	colNoteCommentary = 6
	colNoteDueDate    = 7
	colNoteDueAssign  = 8
	colNoteTax        = 9
	colNoteSearch     = 10
	colNoteEntry      = 11
)

// PromissoryRow is one note to be posted: the payment received today
// plus the promissory note that clears it at its due date.
type PromissoryRow struct {
	Row        int
	DocDate    time.Time
	Amount     decimal.Decimal
	NoteNumber string
	DueDate    time.Time
	// Tax is the withholding to adjust against the expense account,
	// zero when the note carries none.
	Tax decimal.Decimal
	// EntryNumber is the already-recorded document number, empty for
	// unprocessed rows.
	EntryNumber string
}

// PromissoryBook wraps the promissory notes file.
type PromissoryBook struct {
	file  *excelize.File
	sheet string
	path  string
}

// OpenPromissory opens the promissory notes file at path.
func OpenPromissory(path string) (*PromissoryBook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open promissory file: %w", err)
	}

	sheet := f.GetSheetName(0)
	if sheet == "" {
		f.Close()
		return nil, fmt.Errorf("promissory file has no sheets")
	}

	return &PromissoryBook{file: f, sheet: sheet, path: path}, nil
}

// Rows reads every note row below the header.
func (b *PromissoryBook) Rows() ([]PromissoryRow, error) {
	raw, err := b.file.GetRows(b.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read promissory rows: %w", err)
	}

	var rows []PromissoryRow
	for i := 2; i <= len(raw); i++ {
		row := PromissoryRow{
			Row:         i,
			NoteNumber:  b.cell(i, colNoteNumber),
			EntryNumber: b.cell(i, colNoteEntry),
		}
		if row.NoteNumber == "" && b.cell(i, colNoteDocDate) == "" {
			continue
		}
		row.DocDate, _ = ParseDate(b.cell(i, colNoteDocDate))
		row.Amount, _ = ParseAmount(b.cell(i, colNoteAmount))
		row.DueDate, _ = ParseDate(b.cell(i, colNoteDueDate))
		if tax := b.cell(i, colNoteTax); tax != "" {
			row.Tax, _ = ParseAmount(tax)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FillDerived writes the tracking columns the posting derives from
// the note: accounting date, yyyymmdd assignments, commentary and the
// search amount that locates the open item.
func (b *PromissoryBook) FillDerived(note PromissoryRow, commentary string, search decimal.Decimal) error {
	values := map[int]string{
		colNoteAcctDate:   note.DocDate.Format("02.01.2006"),
		colNoteAssignment: note.DocDate.Format("20060102"),
		colNoteCommentary: commentary,
		colNoteDueAssign:  note.DueDate.Format("20060102"),
		colNoteSearch:     search.StringFixed(2),
	}
	row := note.Row
	for col, value := range values {
		if err := b.set(row, col, value); err != nil {
			return err
		}
	}
	return nil
}

// SetEntryNumber records the posted document number for a note.
func (b *PromissoryBook) SetEntryNumber(row int, documentNumber string) error {
	return b.set(row, colNoteEntry, documentNumber)
}

// Save writes the workbook back to its path.
func (b *PromissoryBook) Save() error {
	if err := b.file.SaveAs(b.path); err != nil {
		return fmt.Errorf("failed to save promissory file: %w", err)
	}
	return nil
}

// Close releases the underlying file without saving.
func (b *PromissoryBook) Close() error {
	return b.file.Close()
}

func (b *PromissoryBook) cell(row, col int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	value, _ := b.file.GetCellValue(b.sheet, name)
	return strings.TrimSpace(value)
}

func (b *PromissoryBook) set(row, col int, value string) error {
	name, _ := excelize.CoordinatesToCellName(col, row)
	if err := b.file.SetCellValue(b.sheet, name, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
