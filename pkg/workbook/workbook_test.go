package workbook

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeDailyFile(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"Fecha", "", "Importe", "Cliente", "", "Comentario", "", "Asignación", "Acción", "Desde", "Hasta", "Estado", "Documento"}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("failed to write row %d: %v", i+2, err)
		}
	}

	path := filepath.Join(t.TempDir(), "daily.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save test file: %v", err)
	}
	return path
}

func TestDailyRows(t *testing.T) {
	path := writeDailyFile(t, [][]interface{}{
		{"05/03/2026", "", "1.234,56", "430001", "", "PAGO MARZO", "", "20260305", "factura", "F-100", "F-200", "", ""},
		{"06/03/2026", "", "80,00", "430002", "", "A CUENTA", "", "", "a cuenta", "", "", "Aplicado", "1400000001"},
	})

	book, err := OpenDaily(path)
	if err != nil {
		t.Fatalf("OpenDaily returned error: %v", err)
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
	if first.Row != 2 {
		t.Errorf("Row = %d, expected 2", first.Row)
	}
	if first.DocDate.Format("02/01/2006") != "05/03/2026" {
		t.Errorf("DocDate = %v, expected 05/03/2026", first.DocDate)
	}
	if first.Amount.StringFixed(2) != "1234.56" {
		t.Errorf("Amount = %s, expected 1234.56", first.Amount)
	}
	if first.Action != "FACTURA" {
		t.Errorf("Action = %q, expected FACTURA (uppercased)", first.Action)
	}
	if first.SearchFrom != "F-100" || first.SearchTo != "F-200" {
		t.Errorf("search range = %q..%q, expected F-100..F-200", first.SearchFrom, first.SearchTo)
	}
	if first.Status != "" {
		t.Errorf("Status = %q, expected empty", first.Status)
	}

	second := rows[1]
	if second.Status != StatusApplied {
		t.Errorf("Status = %q, expected %q", second.Status, StatusApplied)
	}
	if second.Action != "A CUENTA" {
		t.Errorf("Action = %q, expected A CUENTA", second.Action)
	}
}

func TestDailyMarkAndSave(t *testing.T) {
	path := writeDailyFile(t, [][]interface{}{
		{"05/03/2026", "", "100,00", "430001", "", "PAGO", "", "", "todo", "", "", "", ""},
		{"06/03/2026", "", "200,00", "430002", "", "PAGO", "", "", "solo", "01/04/2026", "", "", ""},
	})

	book, err := OpenDaily(path)
	if err != nil {
		t.Fatalf("OpenDaily returned error: %v", err)
	}

	if err := book.MarkApplied(2, "1400000123"); err != nil {
		t.Fatalf("MarkApplied returned error: %v", err)
	}
	if err := book.MarkNotApplied(3); err != nil {
		t.Fatalf("MarkNotApplied returned error: %v", err)
	}
	if err := book.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	book.Close()

	reopened, err := OpenDaily(path)
	if err != nil {
		t.Fatalf("reopening saved file: %v", err)
	}
	defer reopened.Close()

	rows, err := reopened.Rows()
	if err != nil {
		t.Fatalf("Rows returned error: %v", err)
	}
	if rows[0].Status != StatusApplied {
		t.Errorf("row 2 status = %q, expected %q", rows[0].Status, StatusApplied)
	}
	if got := reopened.cell(2, colDocNumber); got != "1400000123" {
		t.Errorf("row 2 document number = %q, expected 1400000123", got)
	}
	if rows[1].Status != StatusNotApplied {
		t.Errorf("row 3 status = %q, expected %q", rows[1].Status, StatusNotApplied)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "05/03/2026", false},
		{"padded", " 05/03/2026 ", false},
		{"wrong format", "2026-03-05", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
		wantErr  bool
	}{
		{"decimal comma", "1.234,56", "1234.56", false},
		{"decimal point", "1234.56", "1234.56", false},
		{"bare integer", "80", "80.00", false},
		{"comma only", "45,5", "45.50", false},
		{"garbage", "n/a", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseAmount(%q) expected error, got %s", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) returned error: %v", tt.value, err)
			}
			if got.StringFixed(2) != tt.expected {
				t.Errorf("ParseAmount(%q) = %s, expected %s", tt.value, got.StringFixed(2), tt.expected)
			}
		})
	}
}
