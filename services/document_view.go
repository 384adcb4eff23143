package services

import (
	"fmt"
	"math"
	"strings"
)

// ViewType selects which document is composed from a project.
type ViewType string

const (
	ViewQuote         ViewType = "quote"
	ViewEquipmentList ViewType = "equipment-list"
	ViewSubcontract   ViewType = "subcontract"
)

// ParseViewType accepts the canonical names plus the short "list" alias.
func ParseViewType(s string) (ViewType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quote":
		return ViewQuote, true
	case "equipment-list", "list":
		return ViewEquipmentList, true
	case "subcontract":
		return ViewSubcontract, true
	}
	return "", false
}

// Label is the printed document title suffix.
func (v ViewType) Label() string {
	switch v {
	case ViewQuote:
		return "報價單"
	case ViewEquipmentList:
		return "器材清單"
	case ViewSubcontract:
		return "發包單"
	}
	return string(v)
}

// Column identifies one table column of a document.
type Column string

const (
	ColNumber     Column = "number"
	ColName       Column = "name"
	ColQuantity   Column = "quantity"
	ColUnit       Column = "unit"
	ColUnitPrice  Column = "unitPrice"
	ColAmount     Column = "amount"
	ColDispatched Column = "dispatched"
	ColReturned   Column = "returned"
	ColNote       Column = "note"
)

var viewColumns = map[ViewType][]Column{
	ViewQuote:         {ColNumber, ColName, ColQuantity, ColUnit, ColUnitPrice, ColAmount, ColNote},
	ViewEquipmentList: {ColNumber, ColName, ColQuantity, ColDispatched, ColReturned, ColNote},
	ViewSubcontract:   {ColNumber, ColName, ColQuantity, ColUnit, ColNote},
}

// SeeAttachmentMarker replaces the sub-item list on client quotes.
const SeeAttachmentMarker = "如附件"

// SubcontractTaxLabel is the fixed caption printed on subcontract sheets. The
// amount beside it always uses the project's real tax rate.
const SubcontractTaxLabel = "5% 稅金"

// QuoteTaxLabel is the caption printed beside the quote tax amount.
const QuoteTaxLabel = "稅金"

// ViewRow is one visible item line.
type ViewRow struct {
	Number        int      `json:"number"`
	ItemID        string   `json:"itemId"`
	Name          string   `json:"name"`
	Quantity      float64  `json:"quantity"`
	Unit          string   `json:"unit"`
	Note          string   `json:"note"`
	UnitPrice     *float64 `json:"unitPrice,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	SubItems      []string `json:"subItems,omitempty"`
	SeeAttachment bool     `json:"seeAttachment,omitempty"`
}

// ViewSection groups the rows of one category.
type ViewSection struct {
	Category Category  `json:"category"`
	Label    string    `json:"label"`
	Rows     []ViewRow `json:"rows"`
}

// ChargeLine is one resolved period charge on a quote.
type ChargeLine struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	Type       ChargeType `json:"type"`
	Annotation string     `json:"annotation,omitempty"`
	Amount     float64    `json:"amount"`
}

// ProjectHeader carries the project fields printed in the document header.
type ProjectHeader struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Client       string `json:"client"`
	Date         string `json:"date"`
	ActivityTime string `json:"activityTime"`
	Location     string `json:"location"`
	Contact      string `json:"contact"`
	Phone        string `json:"phone"`
	TaxID        string `json:"taxId"`
	MoveInDate   string `json:"moveInDate"`
	MoveOutDate  string `json:"moveOutDate"`
}

// DocumentView is a fully resolved document, ready for any renderer.
type DocumentView struct {
	Type           ViewType      `json:"type"`
	Title          string        `json:"title"`
	DocumentNumber string        `json:"documentNumber"`
	PeriodSummary  string        `json:"periodSummary"`
	Project        ProjectHeader `json:"project"`
	Subcontract    *Subcontract  `json:"subcontract,omitempty"`
	Columns        []Column      `json:"columns"`
	Sections       []ViewSection `json:"sections"`
	Charges        []ChargeLine  `json:"charges,omitempty"`
	Totals         *QuoteTotals  `json:"totals,omitempty"`
	CostTotals     *CostTotals   `json:"costTotals,omitempty"`
	TaxLabel       string        `json:"taxLabel"`
}

// ResolveView composes the requested document. It reports false for an
// unknown view type or an unknown subcontract id.
func ResolveView(p Project, vt ViewType, subcontractID string) (DocumentView, bool) {
	columns, ok := viewColumns[vt]
	if !ok {
		return DocumentView{}, false
	}

	view := DocumentView{
		Type:           vt,
		Title:          vt.Label(),
		DocumentNumber: DocumentNumber(p.ID),
		PeriodSummary:  PeriodSummary(p),
		Project:        headerOf(p),
		Columns:        append([]Column{}, columns...),
	}

	var visible []EquipmentItem
	switch vt {
	case ViewQuote:
		visible = clientItems(p.Items)
		totals := CalcQuoteTotals(p)
		view.Totals = &totals
		view.Charges = chargeLines(p.PeriodCharges, totals.BaseSubtotal)
		view.TaxLabel = QuoteTaxLabel
	case ViewEquipmentList:
		visible = p.Items
	case ViewSubcontract:
		sub, found := p.FindSubcontract(subcontractID)
		if !found {
			return DocumentView{}, false
		}
		visible = SubcontractItems(p, sub)
		costs := CalcCostTotals(visible, p.TaxRate)
		view.CostTotals = &costs
		view.TaxLabel = SubcontractTaxLabel
		subCopy := sub
		subCopy.ItemIDs = append([]string{}, sub.ItemIDs...)
		view.Subcontract = &subCopy
	}

	view.Sections = groupByCategory(visible, vt)
	return view, true
}

// SubcontractItems returns the project items referenced by a subcontract in
// project order. Dangling and duplicate ids have no effect.
func SubcontractItems(p Project, sub Subcontract) []EquipmentItem {
	wanted := make(map[string]struct{}, len(sub.ItemIDs))
	for _, id := range sub.ItemIDs {
		wanted[id] = struct{}{}
	}
	var items []EquipmentItem
	for _, item := range p.Items {
		if _, ok := wanted[item.ID]; ok {
			items = append(items, item)
		}
	}
	return items
}

func clientItems(items []EquipmentItem) []EquipmentItem {
	var out []EquipmentItem
	for _, item := range items {
		if !item.InternalOnly {
			out = append(out, item)
		}
	}
	return out
}

// groupByCategory buckets items in category display order. Numbering runs
// across sections. Items whose category is not one of Categories are not
// printed.
func groupByCategory(items []EquipmentItem, vt ViewType) []ViewSection {
	sections := []ViewSection{}
	counter := 0
	for _, cat := range Categories {
		var rows []ViewRow
		for _, item := range items {
			if item.Category != cat.ID {
				continue
			}
			counter++
			rows = append(rows, buildRow(item, counter, vt))
		}
		if len(rows) == 0 {
			continue
		}
		sections = append(sections, ViewSection{Category: cat.ID, Label: cat.Label, Rows: rows})
	}
	return sections
}

func buildRow(item EquipmentItem, number int, vt ViewType) ViewRow {
	row := ViewRow{
		Number:   number,
		ItemID:   item.ID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Unit:     item.Unit,
		Note:     item.Note,
	}
	switch vt {
	case ViewQuote:
		price := item.Price
		amount := ClientTotal(item)
		row.UnitPrice = &price
		row.Amount = &amount
		row.SeeAttachment = len(item.SubItems) > 0
	case ViewEquipmentList:
		row.SubItems = append([]string{}, item.SubItems...)
	}
	return row
}

func chargeLines(charges []PeriodCharge, base float64) []ChargeLine {
	if len(charges) == 0 {
		return nil
	}
	lines := make([]ChargeLine, 0, len(charges))
	for _, c := range charges {
		line := ChargeLine{
			ID:     c.ID,
			Label:  c.Label,
			Type:   c.Type,
			Amount: ChargeAmount(c, base),
		}
		if c.Type == ChargeRate {
			line.Annotation = fmt.Sprintf("(%.0f%%)", math.Round(c.Value*100))
		}
		lines = append(lines, line)
	}
	return lines
}

func headerOf(p Project) ProjectHeader {
	return ProjectHeader{
		ID:           p.ID,
		Name:         p.Name,
		Client:       p.Client,
		Date:         p.Date,
		ActivityTime: p.ActivityTime,
		Location:     p.Location,
		Contact:      p.Contact,
		Phone:        p.Phone,
		TaxID:        p.TaxID,
		MoveInDate:   p.MoveInDate,
		MoveOutDate:  p.MoveOutDate,
	}
}

// DocumentNumber is the first six characters of the project id, upper-cased.
func DocumentNumber(projectID string) string {
	id := []rune(projectID)
	if len(id) > 6 {
		id = id[:6]
	}
	return strings.ToUpper(string(id))
}

// PeriodSummary describes the schedule, e.g. "2 天 (進場日+活動日)".
func PeriodSummary(p Project) string {
	if len(p.PeriodCharges) == 0 {
		days := p.Period
		if days == 0 {
			days = 1
		}
		return fmt.Sprintf("%d 天", days)
	}
	var labels []string
	for _, c := range p.PeriodCharges {
		if c.Label != "" {
			labels = append(labels, c.Label)
		}
	}
	return fmt.Sprintf("%d 天 (%s)", len(p.PeriodCharges), strings.Join(labels, "+"))
}
