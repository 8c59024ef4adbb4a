package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
)

// Input column headers. Matching is case-insensitive and tolerates spaces
// in place of underscores.
const (
	colName    = "name"
	colAddress = "address"
	colPhone   = "phone_number"
	colWebsite = "website"
)

// ReadBusinesses loads the input table of businesses from an .xlsx or .csv
// file, keyed by header row. Rows with every cell blank are skipped.
func ReadBusinesses(path, sheetName string) ([]models.Business, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path, sheetName)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

func readXLSX(path, sheetName string) ([]models.Business, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}
	return rowsToBusinesses(rows)
}

func readCSV(path string) ([]models.Business, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Ragged rows are normal in hand-edited sheets

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		rows = append(rows, record)
	}
	return rowsToBusinesses(rows)
}

func rowsToBusinesses(rows [][]string) ([]models.Business, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("input table is empty")
	}

	cols := headerIndex(rows[0])
	if _, ok := cols[colName]; !ok {
		return nil, fmt.Errorf("input table has no %q column", colName)
	}

	var businesses []models.Business
	for _, row := range rows[1:] {
		b := models.Business{
			Name:        cellAt(row, cols, colName),
			Address:     cellAt(row, cols, colAddress),
			PhoneNumber: cellAt(row, cols, colPhone),
			Website:     cellAt(row, cols, colWebsite),
		}
		if b.Name == "" && b.Address == "" && b.PhoneNumber == "" && b.Website == "" {
			continue
		}
		businesses = append(businesses, b)
	}
	return businesses, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if key != "" {
			cols[key] = i
		}
	}
	return cols
}

func cellAt(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
