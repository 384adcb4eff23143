package services

import (
	"strconv"
	"strings"
)

// Branding carries the company details every rendered document prints.
type Branding struct {
	CompanyName    string
	CompanyTaxID   string
	SalesName      string
	SalesPhone     string
	QuoteTerms     string
	QuoteValidDays int
	FontPath       string
	LogoPath       string
}

var columnLabels = map[Column]string{
	ColNumber:     "項次",
	ColName:       "品名",
	ColQuantity:   "數量",
	ColUnit:       "單位",
	ColUnitPrice:  "單價",
	ColAmount:     "金額",
	ColDispatched: "出貨",
	ColReturned:   "回收",
	ColNote:       "備註",
}

// Label is the printed column header.
func (c Column) Label() string {
	if l, ok := columnLabels[c]; ok {
		return l
	}
	return string(c)
}

// CellText renders one table cell of r. The checkoff columns are always blank.
func (v DocumentView) CellText(r ViewRow, c Column) string {
	switch c {
	case ColNumber:
		return strconv.Itoa(r.Number)
	case ColName:
		return r.Name
	case ColQuantity:
		if v.Type == ViewEquipmentList {
			return strings.TrimSpace(FormatQty(r.Quantity) + " " + r.Unit)
		}
		return FormatQty(r.Quantity)
	case ColUnit:
		return r.Unit
	case ColUnitPrice:
		if r.UnitPrice != nil {
			return FormatTWD(*r.UnitPrice)
		}
	case ColAmount:
		if r.Amount != nil {
			return FormatTWD(*r.Amount)
		}
	case ColNote:
		return r.Note
	}
	return ""
}

// DetailLines are the lines printed under an item name: the full accessory
// list, or just the attachment marker on a quote.
func (r ViewRow) DetailLines() []string {
	if r.SeeAttachment {
		return []string{SeeAttachmentMarker}
	}
	return r.SubItems
}

// SummaryLine is one label/amount pair in a document's totals block.
type SummaryLine struct {
	Label  string
	Amount float64
	Strong bool
}

// SummaryLines lists the totals block of the document. Equipment lists have none.
func (v DocumentView) SummaryLines() []SummaryLine {
	switch {
	case v.Totals != nil:
		lines := []SummaryLine{{Label: "小計", Amount: v.Totals.BaseSubtotal}}
		if len(v.Charges) > 0 {
			lines = append(lines, SummaryLine{Label: "檔期合計", Amount: v.Totals.Subtotal})
		}
		return append(lines,
			SummaryLine{Label: v.TaxLabel, Amount: v.Totals.Tax},
			SummaryLine{Label: "總計", Amount: v.Totals.Total, Strong: true},
		)
	case v.CostTotals != nil:
		return []SummaryLine{
			{Label: "小計", Amount: v.CostTotals.Subtotal},
			{Label: v.TaxLabel, Amount: v.CostTotals.Tax},
			{Label: "總計", Amount: v.CostTotals.Total, Strong: true},
		}
	}
	return nil
}

// HeaderField is one caption/value pair of the document header.
type HeaderField struct {
	Label string
	Value string
}

// HeaderColumns returns the left and right header blocks. Subcontract sheets
// show the vendor instead of the client.
func (v DocumentView) HeaderColumns() (left, right []HeaderField) {
	p := v.Project
	if v.Subcontract != nil {
		s := v.Subcontract
		left = []HeaderField{
			{"協力廠商", s.VendorName},
			{"統一編號", s.VendorTaxID},
			{"聯繫人", s.VendorContact},
			{"電話", s.VendorPhone},
		}
		right = []HeaderField{
			{"活動名稱", p.Name},
			{"活動地點", p.Location},
			{"進撤場日期", p.MoveInDate + " ~ " + p.MoveOutDate},
			{"交台時間", s.HandoverTime},
		}
		return left, right
	}
	left = []HeaderField{
		{"客戶名稱", p.Client},
		{"活動名稱", p.Name},
		{"聯繫人", p.Contact},
		{"電話", p.Phone},
		{"統一編號", p.TaxID},
	}
	right = []HeaderField{
		{"活動地點", p.Location},
		{"進場日期", p.MoveInDate},
		{"活動日期", strings.TrimSpace(p.Date + " " + p.ActivityTime)},
		{"撤場日期", p.MoveOutDate},
		{"檔期", v.PeriodSummary},
	}
	return left, right
}

// DocumentFileName is "{project}_{document}.{ext}" with path separators removed.
func DocumentFileName(v DocumentView, ext string) string {
	name := strings.NewReplacer("/", "-", "\\", "-", "\"", "").Replace(v.Project.Name)
	if name == "" {
		name = v.DocumentNumber
	}
	return name + "_" + v.Title + "." + ext
}
