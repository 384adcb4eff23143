package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CatalogImportResult is returned after parsing and validating an uploaded
// catalog file.
type CatalogImportResult struct {
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Errors    []ValidationError `json:"errors"`
	Options   []CatalogOption   `json:"-"`
	FileName  string            `json:"-"`
}

// catalogColumns maps accepted header spellings to field keys.
var catalogColumns = map[string]string{
	"category":  "category",
	"類別":        "category",
	"name":      "name",
	"品名":        "name",
	"quantity":  "quantity",
	"qty":       "quantity",
	"數量":        "quantity",
	"unit":      "unit",
	"單位":        "unit",
	"price":     "price",
	"單價":        "price",
	"note":      "note",
	"備註":        "note",
	"sub_items": "sub_items",
	"配件":        "sub_items",
}

// subItemSeparator splits the accessory cell of an import row.
const subItemSeparator = "|"

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapCatalogHeaders returns the field key of each column ("" if unrecognized).
func mapCatalogHeaders(headers []string) []string {
	keys := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))
		keys[i] = catalogColumns[norm]
	}
	return keys
}

// ValidateCatalogFile parses an uploaded .csv or .xlsx catalog and validates
// every row. Rows with errors are reported and left out of Options.
func ValidateCatalogFile(file io.Reader, fileName string) (*CatalogImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	if strings.HasSuffix(lowerName, ".csv") {
		headers, dataRows, err = parseCSV(file)
	} else if strings.HasSuffix(lowerName, ".xlsx") {
		headers, dataRows, err = parseExcel(file)
	} else {
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapCatalogHeaders(headers)

	result := &CatalogImportResult{
		TotalRows: len(dataRows),
		FileName:  fileName,
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		data := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key == "" || colIdx >= len(row) {
				continue
			}
			data[key] = strings.TrimSpace(row[colIdx])
		}

		opt, rowErrors := catalogOptionFromRow(rowNum, data)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.ErrorRows++
			continue
		}
		result.Options = append(result.Options, opt)
	}
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

func catalogOptionFromRow(rowNum int, data map[string]string) (CatalogOption, []ValidationError) {
	var errs []ValidationError

	category := Category(strings.ToLower(data["category"]))
	if mapped, ok := legacyCategories[string(category)]; ok {
		category = mapped
	}
	if !isKnownCategory(category) {
		errs = append(errs, ValidationError{Row: rowNum, Field: "category", Message: fmt.Sprintf("unknown category %q", data["category"])})
	}
	if data["name"] == "" {
		errs = append(errs, ValidationError{Row: rowNum, Field: "name", Message: "name is required"})
	}

	qty, qtyErr := parseAmount(data["quantity"], 1)
	if qtyErr != nil {
		errs = append(errs, ValidationError{Row: rowNum, Field: "quantity", Message: qtyErr.Error()})
	}
	price, priceErr := parseAmount(data["price"], 0)
	if priceErr != nil {
		errs = append(errs, ValidationError{Row: rowNum, Field: "price", Message: priceErr.Error()})
	}

	subItems := []string{}
	for _, s := range strings.Split(data["sub_items"], subItemSeparator) {
		if s = strings.TrimSpace(s); s != "" {
			subItems = append(subItems, s)
		}
	}

	unit := data["unit"]
	if unit == "" {
		unit = "式"
	}

	return CatalogOption{
		Category: category,
		Name:     data["name"],
		Quantity: qty,
		Unit:     unit,
		Price:    price,
		Note:     data["note"],
		SubItems: subItems,
	}, errs
}

// parseAmount parses a non-negative number, allowing thousands separators.
func parseAmount(s string, fallback float64) (float64, error) {
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return v, nil
}

func isKnownCategory(c Category) bool {
	for _, info := range Categories {
		if info.ID == c {
			return true
		}
	}
	return false
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, sanitizeExcelCell(e.Message))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
