package services

import (
	"fmt"
	"os"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
)

// pdfFontFamily names the embedded CJK font when one is configured.
const pdfFontFamily = "cjk"

// pdfColumnWidths are grid widths (out of 12) per document type.
var pdfColumnWidths = map[ViewType]map[Column]int{
	ViewQuote: {
		ColNumber: 1, ColName: 4, ColQuantity: 1, ColUnit: 1,
		ColUnitPrice: 2, ColAmount: 2, ColNote: 1,
	},
	ViewEquipmentList: {
		ColNumber: 1, ColName: 5, ColQuantity: 2,
		ColDispatched: 1, ColReturned: 1, ColNote: 2,
	},
	ViewSubcontract: {
		ColNumber: 1, ColName: 5, ColQuantity: 2, ColUnit: 1, ColNote: 3,
	},
}

var (
	pdfHeaderBg  = &props.Color{Red: 33, Green: 37, Blue: 41}
	pdfSectionBg = &props.Color{Red: 235, Green: 235, Blue: 235}
	pdfSummaryBg = &props.Color{Red: 245, Green: 245, Blue: 245}
	pdfMuted     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// GeneratePDF renders a resolved document to an A4 PDF using maroto/v2.
// When b.FontPath is set the font is embedded so Chinese text prints.
func GeneratePDF(v DocumentView, b Branding) ([]byte, error) {
	builder := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(10).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "{current} / {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		})

	if b.FontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(pdfFontFamily, fontstyle.Normal, b.FontPath).
			AddUTF8Font(pdfFontFamily, fontstyle.Bold, b.FontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("load PDF font %s: %w", b.FontPath, err)
		}
		builder = builder.WithCustomFonts(fonts).WithDefaultFont(&props.Font{Family: pdfFontFamily})
	}

	m := maroto.New(builder.Build())

	addDocumentTitle(m, v, b)
	addDocumentHeader(m, v, b)
	addItemTable(m, v)
	addChargeBreakdown(m, v)
	addSummaryBlock(m, v)
	addQuoteTerms(m, v, b)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addDocumentTitle adds the optional logo, the title and the document number.
func addDocumentTitle(m core.Maroto, v DocumentView, b Branding) {
	if b.LogoPath != "" {
		if _, err := os.Stat(b.LogoPath); err == nil {
			m.AddRows(row.New(18).Add(
				image.NewFromFileCol(3, b.LogoPath, props.Rect{Percent: 90}),
				col.New(9),
			))
		}
	}

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(b.CompanyName+v.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(
				text.New("單號: "+v.DocumentNumber, props.Text{
					Size:  9,
					Align: align.Left,
					Color: pdfMuted,
				}),
			),
			col.New(6).Add(
				text.New("日期: "+v.Project.Date, props.Text{
					Size:  9,
					Align: align.Right,
					Color: pdfMuted,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addDocumentHeader prints the client (or vendor) block beside the event block.
func addDocumentHeader(m core.Maroto, v DocumentView, b Branding) {
	left, right := v.HeaderColumns()
	fieldText := props.Text{Size: 9, Align: align.Left}

	n := max(len(left), len(right))
	for i := 0; i < n; i++ {
		r := row.New(6)
		r.Add(headerFieldCol(left, i, fieldText), headerFieldCol(right, i, fieldText))
		m.AddRows(r)
	}

	if v.Subcontract == nil {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("業務聯繫人: %s    電話: %s", b.SalesName, b.SalesPhone), props.Text{
						Size:  9,
						Align: align.Left,
						Color: pdfMuted,
					}),
				),
			),
		)
	}
	m.AddRows(row.New(4))
}

func headerFieldCol(fields []HeaderField, i int, style props.Text) core.Col {
	if i >= len(fields) {
		return col.New(6)
	}
	f := fields[i]
	return col.New(6).Add(text.New(f.Label+": "+f.Value, style))
}

// addItemTable adds the column header and one block of rows per category.
func addItemTable(m core.Maroto, v DocumentView) {
	widths := pdfColumnWidths[v.Type]

	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := &props.Cell{BackgroundColor: pdfHeaderBg}

	header := row.New(8)
	for _, c := range v.Columns {
		header.Add(col.New(widths[c]).Add(text.New(c.Label(), headerText)).WithStyle(headerCell))
	}
	m.AddRows(header)

	sectionCell := &props.Cell{BackgroundColor: pdfSectionBg}
	for _, section := range v.Sections {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(
					text.New(section.Label, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}),
				).WithStyle(sectionCell),
			),
		)
		for _, r := range section.Rows {
			addItemRow(m, v, r, widths)
		}
	}
}

func addItemRow(m core.Maroto, v DocumentView, r ViewRow, widths map[Column]int) {
	base := props.Text{Size: 8, Align: align.Center}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	line := row.New(7)
	for _, c := range v.Columns {
		style := base
		switch c {
		case ColName, ColNote:
			style = left
		case ColUnitPrice, ColAmount:
			style = right
		}
		line.Add(col.New(widths[c]).Add(text.New(v.CellText(r, c), style)))
	}
	m.AddRows(line)

	detail := props.Text{Size: 7, Align: align.Left, Color: pdfMuted}
	for _, d := range r.DetailLines() {
		m.AddRows(
			row.New(5).Add(
				col.New(widths[ColNumber]),
				col.New(12-widths[ColNumber]).Add(text.New("  - "+d, detail)),
			),
		)
	}
}

// addChargeBreakdown lists each period charge with its computed amount.
func addChargeBreakdown(m core.Maroto, v DocumentView) {
	if len(v.Charges) == 0 {
		return
	}
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New("檔期計費", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}),
			).WithStyle(&props.Cell{BackgroundColor: pdfSectionBg}),
		),
	)
	for _, c := range v.Charges {
		label := c.Label
		if c.Annotation != "" {
			label += " " + c.Annotation
		}
		m.AddRows(
			row.New(6).Add(
				col.New(8).Add(text.New(label, props.Text{Size: 8, Align: align.Left})),
				col.New(4).Add(text.New(FormatTWD(c.Amount), props.Text{Size: 8, Align: align.Right})),
			),
		)
	}
}

// addSummaryBlock adds subtotal, tax and total lines.
func addSummaryBlock(m core.Maroto, v DocumentView) {
	lines := v.SummaryLines()
	if len(lines) == 0 {
		return
	}
	m.AddRows(row.New(4))

	summaryCell := &props.Cell{BackgroundColor: pdfSummaryBg}
	for _, l := range lines {
		style := props.Text{Size: 9, Align: align.Right}
		if l.Strong {
			style.Style = fontstyle.Bold
		}
		m.AddRows(
			row.New(7).Add(
				col.New(8).Add(text.New(l.Label, style)).WithStyle(summaryCell),
				col.New(4).Add(text.New(FormatTWD(l.Amount), style)).WithStyle(summaryCell),
			),
		)
	}
}

// addQuoteTerms prints the acceptance terms under a quote.
func addQuoteTerms(m core.Maroto, v DocumentView, b Branding) {
	if v.Type != ViewQuote || b.QuoteTerms == "" {
		return
	}
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(b.QuoteTerms, props.Text{Size: 8, Align: align.Left}),
			),
		),
	)
	m.AddRows(
		row.New(14).Add(
			col.New(6).Add(text.New("客戶簽認:", props.Text{Size: 9, Align: align.Left})),
			col.New(6).Add(text.New(fmt.Sprintf("%s 統一編號 %s", b.CompanyName, b.CompanyTaxID), props.Text{
				Size:  9,
				Align: align.Right,
			})),
		),
	)
}
