// Package services holds the pricing engine, document views and the exports
// built on top of them.
package services

// ClientTotal is quantity × client unit price. Days are not multiplied in.
func ClientTotal(item EquipmentItem) float64 {
	return item.Quantity * item.Price
}

// CostTotal is quantity × cost unit price.
func CostTotal(item EquipmentItem) float64 {
	return item.Quantity * item.CostPrice
}

// ProfitMarginPercent returns the margin of an item as a percentage of its
// client total. A zero client total yields 0.
func ProfitMarginPercent(item EquipmentItem) float64 {
	client := ClientTotal(item)
	if client == 0 {
		return 0
	}
	return (client - CostTotal(item)) / client * 100
}

// BaseSubtotal sums client totals of every item that is not internal-only.
func BaseSubtotal(items []EquipmentItem) float64 {
	var sum float64
	for _, item := range items {
		if item.InternalOnly {
			continue
		}
		sum += ClientTotal(item)
	}
	return sum
}

// ChargeAmount resolves one period charge against the base subtotal. Rate
// charges are rounded half-up; fixed charges are returned verbatim.
func ChargeAmount(charge PeriodCharge, baseSubtotal float64) float64 {
	if charge.Type == ChargeRate {
		return MulRound(baseSubtotal, charge.Value)
	}
	return charge.Value
}

// GrandSubtotal sums every charge amount. It does not special-case an empty
// list; see PeriodSubtotal for the fallback.
func GrandSubtotal(baseSubtotal float64, charges []PeriodCharge) float64 {
	var sum float64
	for _, c := range charges {
		sum += ChargeAmount(c, baseSubtotal)
	}
	return sum
}

// PeriodSubtotal is GrandSubtotal, or the base subtotal itself when the
// project has no period charges (single flat day).
func PeriodSubtotal(baseSubtotal float64, charges []PeriodCharge) float64 {
	if len(charges) == 0 {
		return baseSubtotal
	}
	return GrandSubtotal(baseSubtotal, charges)
}

// Tax is subtotal × rate rounded half-up.
func Tax(subtotal, taxRate float64) float64 {
	return MulRound(subtotal, taxRate)
}

// QuoteTotals holds the client-facing totals of a project.
type QuoteTotals struct {
	BaseSubtotal float64 `json:"baseSubtotal"`
	Subtotal     float64 `json:"subtotal"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
}

// CalcQuoteTotals computes the quote totals of a project.
func CalcQuoteTotals(p Project) QuoteTotals {
	base := BaseSubtotal(p.Items)
	subtotal := PeriodSubtotal(base, p.PeriodCharges)
	tax := Tax(subtotal, p.TaxRate)
	return QuoteTotals{
		BaseSubtotal: base,
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        subtotal + tax,
	}
}

// CostTotals holds the cost-basis totals used on subcontract sheets.
type CostTotals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CalcCostTotals sums cost totals of the given items and applies taxRate.
// Internal-only items are not excluded here.
func CalcCostTotals(items []EquipmentItem, taxRate float64) CostTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += CostTotal(item)
	}
	tax := Tax(subtotal, taxRate)
	return CostTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// ItemMargin is the per-item profitability shown next to each editor row.
type ItemMargin struct {
	ItemID        string  `json:"itemId"`
	ClientTotal   float64 `json:"clientTotal"`
	CostTotal     float64 `json:"costTotal"`
	MarginPercent float64 `json:"marginPercent"`
}

// CalcItemMargins returns ClientTotal, CostTotal and margin for every item.
func CalcItemMargins(items []EquipmentItem) []ItemMargin {
	margins := make([]ItemMargin, 0, len(items))
	for _, item := range items {
		margins = append(margins, ItemMargin{
			ItemID:        item.ID,
			ClientTotal:   ClientTotal(item),
			CostTotal:     CostTotal(item),
			MarginPercent: ProfitMarginPercent(item),
		})
	}
	return margins
}
