package workbook

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func writePromissoryFile(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"Fecha doc.", "Fecha cont.", "Importe", "Asignación", "Pagaré", "Comentario", "Vencimiento", "Asig. vto.", "AJD", "Búsqueda", "Asiento"}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("failed to write row %d: %v", i+2, err)
		}
	}

	path := filepath.Join(t.TempDir(), "notes.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save test file: %v", err)
	}
	return path
}

func TestPromissoryRows(t *testing.T) {
	path := writePromissoryFile(t, [][]interface{}{
		{"05/03/2026", "", "10.000,00", "", "PG-001", "", "25/05/2026", "", "60,10", "", ""},
		{"05/03/2026", "", "5.000,00", "", "PG-002", "", "25/05/2026", "", "", "", "1400000055"},
	})

	book, err := OpenPromissory(path)
	if err != nil {
		t.Fatalf("OpenPromissory returned error: %v", err)
	}
	defer book.Close()

	rows, err := book.Rows()
	if err != nil {
		t.Fatalf("Rows returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, expected 2", len(rows))
	}

	first := rows[0]
	if first.NoteNumber != "PG-001" {
		t.Errorf("NoteNumber = %q, expected PG-001", first.NoteNumber)
	}
	if first.Amount.StringFixed(2) != "10000.00" {
		t.Errorf("Amount = %s, expected 10000.00", first.Amount)
	}
	if first.DueDate.Format("02/01/2006") != "25/05/2026" {
		t.Errorf("DueDate = %v, expected 25/05/2026", first.DueDate)
	}
	if first.Tax.StringFixed(2) != "60.10" {
		t.Errorf("Tax = %s, expected 60.10", first.Tax)
	}
	if first.EntryNumber != "" {
		t.Errorf("EntryNumber = %q, expected empty", first.EntryNumber)
	}

	if rows[1].EntryNumber != "1400000055" {
		t.Errorf("EntryNumber = %q, expected 1400000055", rows[1].EntryNumber)
	}
	if !rows[1].Tax.IsZero() {
		t.Errorf("Tax = %s, expected zero for a blank cell", rows[1].Tax)
	}
}

func TestPromissoryFillDerived(t *testing.T) {
	path := writePromissoryFile(t, [][]interface{}{
		{"05/03/2026", "", "10.000,00", "", "PG-001", "", "25/05/2026", "", "60,10", "", ""},
	})

	book, err := OpenPromissory(path)
	if err != nil {
		t.Fatalf("OpenPromissory returned error: %v", err)
	}
	defer book.Close()

	rows, err := book.Rows()
	if err != nil {
		t.Fatalf("Rows returned error: %v", err)
	}

	search := decimal.RequireFromString("10060.10")
	if err := book.FillDerived(rows[0], "PAG. ACME PG-001 VTO. 25.05.2026", search); err != nil {
		t.Fatalf("FillDerived returned error: %v", err)
	}
	if err := book.SetEntryNumber(rows[0].Row, "1400000321"); err != nil {
		t.Fatalf("SetEntryNumber returned error: %v", err)
	}

	checks := []struct {
		col      int
		expected string
	}{
		{colNoteAcctDate, "05.03.2026"},
		{colNoteAssignment, "20260305"},
		{colNoteCommentary, "PAG. ACME PG-001 VTO. 25.05.2026"},
		{colNoteDueAssign, "20260525"},
		{colNoteSearch, "10060.10"},
		{colNoteEntry, "1400000321"},
	}
	for _, c := range checks {
		if got := book.cell(2, c.col); got != c.expected {
			t.Errorf("column %d = %q, expected %q", c.col, got, c.expected)
		}
	}
}
