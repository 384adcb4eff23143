package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func testBranding() Branding {
	return Branding{
		CompanyName:    "Test Events Co",
		CompanyTaxID:   "12345678",
		SalesName:      "Sales",
		SalesPhone:     "0900-000-000",
		QuoteTerms:     "Valid for 15 days.",
		QuoteValidDays: 15,
	}
}

func TestGeneratePDF_AllViews(t *testing.T) {
	p := sampleProject()
	cases := []struct {
		vt    ViewType
		subID string
	}{
		{ViewQuote, ""},
		{ViewEquipmentList, ""},
		{ViewSubcontract, "sub1"},
	}
	for _, tc := range cases {
		t.Run(string(tc.vt), func(t *testing.T) {
			v, ok := ResolveView(p, tc.vt, tc.subID)
			if !ok {
				t.Fatalf("ResolveView(%s) failed", tc.vt)
			}
			data, err := GeneratePDF(v, testBranding())
			if err != nil {
				t.Fatalf("GeneratePDF error: %v", err)
			}
			if !bytes.HasPrefix(data, []byte("%PDF-")) {
				t.Errorf("output does not look like a PDF (first bytes %q)", data[:min(8, len(data))])
			}
		})
	}
}

func TestGeneratePDF_MissingFont(t *testing.T) {
	v, _ := ResolveView(sampleProject(), ViewQuote, "")
	b := testBranding()
	b.FontPath = "/nonexistent/font.ttf"
	if _, err := GeneratePDF(v, b); err == nil {
		t.Error("expected error for missing font file")
	}
}

func TestGeneratePDF_EmptyProject(t *testing.T) {
	v, _ := ResolveView(Project{ID: "empty"}, ViewQuote, "")
	data, err := GeneratePDF(v, Branding{})
	if err != nil {
		t.Fatalf("GeneratePDF error: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty PDF")
	}
}

func excelText(t *testing.T, data []byte) (string, []string) {
	t.Helper()
	f, err := excelize.OpenReader(bytesReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	var cells []string
	for _, r := range rows {
		cells = append(cells, r...)
	}
	return sheet, cells
}

func containsCell(cells []string, want string) bool {
	for _, c := range cells {
		if strings.Contains(c, want) {
			return true
		}
	}
	return false
}

func TestGenerateExcel_Quote(t *testing.T) {
	v, _ := ResolveView(sampleProject(), ViewQuote, "")
	data, err := GenerateExcel(v, testBranding())
	if err != nil {
		t.Fatalf("GenerateExcel error: %v", err)
	}

	sheet, cells := excelText(t, data)
	if sheet != "報價單" {
		t.Errorf("sheet = %q, want 報價單", sheet)
	}
	for _, want := range []string{"Test Events Co報價單", "單號: ABCDEF", "音響系統", "無線麥克風\n- 如附件", "進場日 (85%)", "檔期合計", "總計", "Valid for 15 days."} {
		if !containsCell(cells, want) {
			t.Errorf("expected a cell containing %q", want)
		}
	}
	if containsCell(cells, "內部人力") {
		t.Error("internal-only item must not appear on the quote")
	}
}

func TestGenerateExcel_EquipmentList(t *testing.T) {
	v, _ := ResolveView(sampleProject(), ViewEquipmentList, "")
	data, err := GenerateExcel(v, testBranding())
	if err != nil {
		t.Fatalf("GenerateExcel error: %v", err)
	}

	_, cells := excelText(t, data)
	for _, want := range []string{"出貨", "回收", "內部人力", "- 麥架 (長)", "2 支"} {
		if !containsCell(cells, want) {
			t.Errorf("expected a cell containing %q", want)
		}
	}
	if containsCell(cells, "總計") {
		t.Error("equipment list must not carry totals")
	}
}

func TestGenerateExcel_Subcontract(t *testing.T) {
	v, _ := ResolveView(sampleProject(), ViewSubcontract, "sub1")
	data, err := GenerateExcel(v, testBranding())
	if err != nil {
		t.Fatalf("GenerateExcel error: %v", err)
	}

	_, cells := excelText(t, data)
	for _, want := range []string{"燈光廠商", "5% 稅金", "染色燈"} {
		if !containsCell(cells, want) {
			t.Errorf("expected a cell containing %q", want)
		}
	}
	if containsCell(cells, "無線麥克風") {
		t.Error("items outside the subcontract must not appear")
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"plain", "plain"},
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1", "'+1"},
		{"-1", "'-1"},
		{"@cmd", "'@cmd"},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.in); got != tt.want {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
