package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp csv: %v", err)
	}
	return path
}

func TestReadBusinesses_CSV(t *testing.T) {
	path := writeTempCSV(t, `name,address,phone_number,website
Acme Bakery,123 Main St,555-111-2222,https://acme.example.com
No Site Co,456 Oak Ave,555-333-4444,
,,,
`)

	businesses, err := ReadBusinesses(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(businesses) != 2 {
		t.Fatalf("expected 2 businesses (blank row skipped), got %d", len(businesses))
	}
	if businesses[0].Name != "Acme Bakery" || businesses[0].Website != "https://acme.example.com" {
		t.Errorf("first business = %+v", businesses[0])
	}
	if businesses[1].Website != "" {
		t.Errorf("second business website = %q, want empty", businesses[1].Website)
	}
}

func TestReadBusinesses_HeaderVariants(t *testing.T) {
	path := writeTempCSV(t, `Name,Address,Phone Number,Website
Acme,1 St,555,https://a.example.com
`)

	businesses, err := ReadBusinesses(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(businesses) != 1 || businesses[0].PhoneNumber != "555" {
		t.Errorf("businesses = %+v, header matching should tolerate case and spaces", businesses)
	}
}

func TestReadBusinesses_MissingNameColumn(t *testing.T) {
	path := writeTempCSV(t, "website\nhttps://a.example.com\n")
	if _, err := ReadBusinesses(path, ""); err == nil {
		t.Fatal("expected error for a table without a name column")
	}
}

func TestReadBusinesses_UnsupportedExtension(t *testing.T) {
	if _, err := ReadBusinesses("input.txt", ""); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestReadBusinesses_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")

	f := excelize.NewFile()
	sheet := "Sheet1"
	rows := [][]interface{}{
		{"name", "address", "phone_number", "website"},
		{"Acme Bakery", "123 Main St", "555-111-2222", "https://acme.example.com"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("building workbook: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving workbook: %v", err)
	}
	f.Close()

	businesses, err := ReadBusinesses(path, "Sheet1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(businesses) != 1 || businesses[0].Name != "Acme Bakery" {
		t.Errorf("businesses = %+v", businesses)
	}
}

func TestWriteResultsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "out.xlsx")

	results := sampleResults()
	if err := WriteResultsXLSX(xlsxPath, "Results", results); err != nil {
		t.Fatalf("writing workbook: %v", err)
	}

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	if len(rows) != len(results)+1 {
		t.Fatalf("rows = %d, want header plus %d results", len(rows), len(results))
	}

	// Trailing empty cells are trimmed on read, so address columns by header
	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok {
			t.Fatalf("missing column %q in header %v", name, rows[0])
		}
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	first := rows[1]
	if got := cell(first, "name"); got != "Acme Bakery" {
		t.Errorf("name = %q", got)
	}
	if got := cell(first, "emails"); got != "hi@acme.example.com" {
		t.Errorf("emails = %q", got)
	}
	if got := cell(first, "twitter"); got != "https://x.com/acme" {
		t.Errorf("twitter = %q", got)
	}
	if got := cell(first, "phone_numbers"); got != "555-987-6543" {
		t.Errorf("phone_numbers = %q", got)
	}
	if got := cell(first, "last_modified"); got != "Tue, 01 Jul 2025 00:00:00 GMT" {
		t.Errorf("last_modified = %q", got)
	}
	if got := cell(first, "crawl_timestamp"); got != "2026-07-01T12:00:00Z" {
		t.Errorf("crawl_timestamp = %q", got)
	}
	var checks []models.PageCheck
	if err := json.Unmarshal([]byte(cell(first, "pages_checked")), &checks); err != nil {
		t.Fatalf("pages_checked cell is not valid JSON: %v", err)
	}
	if len(checks) != 1 || checks[0].Status != "200" {
		t.Errorf("pages_checked = %+v", checks)
	}

	if got := cell(rows[2], "error_message"); got != "Input_NoWebsite" {
		t.Errorf("error_message = %q", got)
	}
}
