// Package templates holds the server-rendered HTML views.
package templates

import "avquote/services"

// PrintPageData is everything the print preview needs.
type PrintPageData struct {
	View     services.DocumentView
	Branding services.Branding
	LogoURL  string
}

func leftFields(v services.DocumentView) []services.HeaderField {
	left, _ := v.HeaderColumns()
	return left
}

func rightFields(v services.DocumentView) []services.HeaderField {
	_, right := v.HeaderColumns()
	return right
}

func salesLine(b services.Branding) string {
	return "業務聯繫人 " + b.SalesName + " 電話 " + b.SalesPhone
}

func chargeLabel(c services.ChargeLine) string {
	if c.Annotation == "" {
		return c.Label
	}
	return c.Label + " " + c.Annotation
}

func showQuoteTerms(data PrintPageData) bool {
	return data.View.Type == services.ViewQuote && data.Branding.QuoteTerms != ""
}
