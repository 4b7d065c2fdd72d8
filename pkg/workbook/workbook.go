// Package workbook is the spreadsheet collaborator: it reads payment
// rows out of the operator's Excel files and writes posting outcomes
// back. The core never touches files itself; it receives parsed rows
// and returns a document number, and this package records the result.
package workbook

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Row status markers written to the status column.
const (
	StatusApplied    = "Aplicado"
	StatusNotApplied = "No aplicado"
)

// Daily payment file columns.
const (
	colDocDate    = 1
	colAmount     = 3
	colClientCode = 4
	colCommentary = 6
	colAssignment = 8
	colAction     = 9
	colSearchFrom = 10
	colSearchTo   = 11
	colStatus     = 12
	colDocNumber  = 13
)

// PaymentRow is one treated bank-file row: a payment the operator
// wants posted.
type PaymentRow struct {
	// Row is the 1-based spreadsheet row the payment came from.
	Row        int
	DocDate    time.Time
	Amount     decimal.Decimal
	ClientCode string
	Commentary string
	Assignment string
	// Action selects the posting recipe (RELACION, FACTURA, TODO,
	// HASTA, SOLO, ENTRE, A CUENTA, REEMBOLSO).
	Action     string
	SearchFrom string
	SearchTo   string
	// Status is the current marker, empty for unprocessed rows.
	Status string
}

// DailyBook wraps the treated daily bank file.
type DailyBook struct {
	file  *excelize.File
	sheet string
	path  string
}

// OpenDaily opens the treated daily bank file at path. The first sheet
// holds the payments, one per row below the header.
func OpenDaily(path string) (*DailyBook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open daily file: %w", err)
	}

	sheet := f.GetSheetName(0)
	if sheet == "" {
		f.Close()
		return nil, fmt.Errorf("daily file has no sheets")
	}

	return &DailyBook{file: f, sheet: sheet, path: path}, nil
}

// Rows reads every payment row below the header. Rows whose date or
// amount cannot be parsed are returned with zero values; the workflow
// decides what to do with them.
func (b *DailyBook) Rows() ([]PaymentRow, error) {
	raw, err := b.file.GetRows(b.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read daily rows: %w", err)
	}

	var rows []PaymentRow
	for i := 2; i <= len(raw); i++ {
		row := PaymentRow{
			Row:        i,
			ClientCode: b.cell(i, colClientCode),
			Commentary: b.cell(i, colCommentary),
			Assignment: b.cell(i, colAssignment),
			Action:     strings.ToUpper(b.cell(i, colAction)),
			SearchFrom: b.cell(i, colSearchFrom),
			SearchTo:   b.cell(i, colSearchTo),
			Status:     b.cell(i, colStatus),
		}
		if row.ClientCode == "" && row.Commentary == "" && b.cell(i, colDocDate) == "" {
			continue // trailing blank row
		}
		row.DocDate, _ = ParseDate(b.cell(i, colDocDate))
		row.Amount, _ = ParseAmount(b.cell(i, colAmount))
		rows = append(rows, row)
	}
	return rows, nil
}

// MarkApplied records a successful posting: status marker plus the
// document number.
func (b *DailyBook) MarkApplied(row int, documentNumber string) error {
	if err := b.set(row, colStatus, StatusApplied); err != nil {
		return err
	}
	return b.set(row, colDocNumber, documentNumber)
}

// MarkNotApplied flags a row the operator must revisit: status marker
// plus a red font over the whole row.
func (b *DailyBook) MarkNotApplied(row int) error {
	if err := b.set(row, colStatus, StatusNotApplied); err != nil {
		return err
	}

	style, err := b.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "FF0000"},
	})
	if err != nil {
		return fmt.Errorf("failed to create row style: %w", err)
	}

	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(colDocNumber, row)
	if err := b.file.SetCellStyle(b.sheet, first, last, style); err != nil {
		return fmt.Errorf("failed to style row %d: %w", row, err)
	}
	return nil
}

// Save writes the workbook back to its path, widening the status
// columns so the markers stay readable.
func (b *DailyBook) Save() error {
	if err := b.file.SetColWidth(b.sheet, "L", "M", 16); err != nil {
		return fmt.Errorf("failed to widen status columns: %w", err)
	}
	if err := b.file.SaveAs(b.path); err != nil {
		return fmt.Errorf("failed to save daily file: %w", err)
	}
	return nil
}

// Close releases the underlying file without saving.
func (b *DailyBook) Close() error {
	return b.file.Close()
}

func (b *DailyBook) cell(row, col int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	value, _ := b.file.GetCellValue(b.sheet, name)
	return strings.TrimSpace(value)
}

func (b *DailyBook) set(row, col int, value string) error {
	name, _ := excelize.CoordinatesToCellName(col, row)
	if err := b.file.SetCellValue(b.sheet, name, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// ParseDate parses the dd/mm/yyyy dates the treated files carry.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("02/01/2006", strings.TrimSpace(value))
}

// ParseAmount parses a spreadsheet amount, accepting both decimal
// point and decimal comma.
func ParseAmount(value string) (decimal.Decimal, error) {
	s := strings.TrimSpace(value)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}
