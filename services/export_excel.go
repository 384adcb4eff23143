package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// excelColumnWidths are character widths per table column.
var excelColumnWidths = map[Column]float64{
	ColNumber:     6,
	ColName:       40,
	ColQuantity:   10,
	ColUnit:       8,
	ColUnitPrice:  14,
	ColAmount:     16,
	ColDispatched: 8,
	ColReturned:   8,
	ColNote:       28,
}

// GenerateExcel renders a resolved document to a single-sheet workbook.
// Prices and amounts are written as numbers so the sheet stays editable.
func GenerateExcel(v DocumentView, b Branding) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := v.Title
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	letters := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name %d: %w", i+1, err)
		}
		letters[i] = name
		if err := f.SetColWidth(sheetName, name, name, excelColumnWidths[c]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}
	lastCol := letters[len(letters)-1]

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#EBEBEB"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		NumFmt: 3, // #,##0
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		NumFmt: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Title and header block ──────────────────────────────────────────

	row := 1
	cell := func(col string, r int) string { return fmt.Sprintf("%s%d", col, r) }

	if err := f.MergeCell(sheetName, cell("A", row), cell(lastCol, row)); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, cell("A", row), sanitizeExcelCell(b.CompanyName+v.Title))
	f.SetCellStyle(sheetName, cell("A", row), cell(lastCol, row), titleStyle)
	row++

	f.SetCellValue(sheetName, cell("A", row), "單號: "+v.DocumentNumber)
	row++

	left, right := v.HeaderColumns()
	for _, field := range append(left, right...) {
		f.SetCellValue(sheetName, cell("A", row), field.Label)
		if err := f.MergeCell(sheetName, cell("B", row), cell(lastCol, row)); err != nil {
			return nil, fmt.Errorf("merge header field: %w", err)
		}
		f.SetCellValue(sheetName, cell("B", row), sanitizeExcelCell(field.Value))
		row++
	}
	row++

	// ── Table ───────────────────────────────────────────────────────────

	for i, c := range v.Columns {
		f.SetCellValue(sheetName, cell(letters[i], row), c.Label())
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(lastCol, row), headerStyle)
	row++

	for _, section := range v.Sections {
		if err := f.MergeCell(sheetName, cell("A", row), cell(lastCol, row)); err != nil {
			return nil, fmt.Errorf("merge section: %w", err)
		}
		f.SetCellValue(sheetName, cell("A", row), section.Label)
		f.SetCellStyle(sheetName, cell("A", row), cell(lastCol, row), sectionStyle)
		row++

		for _, r := range section.Rows {
			f.SetCellStyle(sheetName, cell("A", row), cell(lastCol, row), itemStyle)
			for i, c := range v.Columns {
				ref := cell(letters[i], row)
				switch {
				case c == ColNumber:
					f.SetCellValue(sheetName, ref, r.Number)
				case c == ColQuantity && v.Type != ViewEquipmentList:
					f.SetCellValue(sheetName, ref, r.Quantity)
				case c == ColUnitPrice && r.UnitPrice != nil:
					f.SetCellValue(sheetName, ref, *r.UnitPrice)
					f.SetCellStyle(sheetName, ref, ref, moneyStyle)
				case c == ColAmount && r.Amount != nil:
					f.SetCellValue(sheetName, ref, *r.Amount)
					f.SetCellStyle(sheetName, ref, ref, moneyStyle)
				case c == ColName && len(r.DetailLines()) > 0:
					name := r.Name
					for _, d := range r.DetailLines() {
						name += "\n- " + d
					}
					f.SetCellValue(sheetName, ref, sanitizeExcelCell(name))
				default:
					f.SetCellValue(sheetName, ref, sanitizeExcelCell(v.CellText(r, c)))
				}
			}
			row++
		}
	}

	// ── Charges and totals ──────────────────────────────────────────────

	labelCol := letters[max(len(letters)-2, 0)]
	row++
	for _, c := range v.Charges {
		label := c.Label
		if c.Annotation != "" {
			label += " " + c.Annotation
		}
		f.SetCellValue(sheetName, cell(labelCol, row), sanitizeExcelCell(label))
		f.SetCellStyle(sheetName, cell(labelCol, row), cell(labelCol, row), summaryLabelStyle)
		f.SetCellValue(sheetName, cell(lastCol, row), c.Amount)
		f.SetCellStyle(sheetName, cell(lastCol, row), cell(lastCol, row), summaryValueStyle)
		row++
	}
	for _, l := range v.SummaryLines() {
		f.SetCellValue(sheetName, cell(labelCol, row), l.Label)
		f.SetCellStyle(sheetName, cell(labelCol, row), cell(labelCol, row), summaryLabelStyle)
		f.SetCellValue(sheetName, cell(lastCol, row), l.Amount)
		f.SetCellStyle(sheetName, cell(lastCol, row), cell(lastCol, row), summaryValueStyle)
		row++
	}

	if v.Type == ViewQuote && b.QuoteTerms != "" {
		row++
		if err := f.MergeCell(sheetName, cell("A", row), cell(lastCol, row)); err != nil {
			return nil, fmt.Errorf("merge terms: %w", err)
		}
		f.SetCellValue(sheetName, cell("A", row), b.QuoteTerms)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
