package doctpl

import (
	"fmt"
	"strings"

	"github.com/lvillar/docgen/invoice"
	"github.com/lvillar/docgen/layout"
	"github.com/lvillar/docgen/table"
)

const invoiceMargin = 20

var (
	invoiceHeaderFill = layout.Color{R: 10, G: 10, B: 10}
	invoiceMuted      = layout.Color{R: 100, G: 100, B: 100}
	invoiceSubtle     = layout.Color{R: 200, G: 200, B: 200}
	invoiceNotes      = layout.Color{R: 50, G: 50, B: 50}
	invoiceFooter     = layout.Color{R: 150, G: 150, B: 150}
	invoiceTableFill  = layout.Color{R: 245, G: 245, B: 245}
	invoiceRowRule    = layout.Color{R: 240, G: 240, B: 240}
)

// Kind implements Template.
func (f *InvoiceForm) Kind() Kind { return KindInvoice }

// Validate implements Template.
func (f *InvoiceForm) Validate() error {
	if err := checkRequired(KindInvoice, f); err != nil {
		return err
	}
	rates := []struct {
		field string
		v     float64
	}{{"taxRate", f.TaxRate}, {"discountRate", f.DiscountRate}}
	for _, r := range rates {
		if r.v < 0 || r.v > 100 {
			return &FieldError{Kind: KindInvoice, Field: r.field, Reason: "must be between 0 and 100"}
		}
	}
	for i, li := range f.Items {
		if li.Quantity < 0 || li.Price < 0 {
			return &FieldError{Kind: KindInvoice, Field: fmt.Sprintf("items[%d]", i), Reason: "must not be negative"}
		}
	}
	return nil
}

// Geometry implements Template.
func (f *InvoiceForm) Geometry() layout.Geometry {
	return layout.A4Portrait(layout.Margins{Top: 25, Right: invoiceMargin, Bottom: 20, Left: invoiceMargin})
}

// Background implements Template.
func (f *InvoiceForm) Background() []layout.Op { return nil }

// Title implements Template.
func (f *InvoiceForm) Title() string {
	return fmt.Sprintf("Invoice %s - %s", f.InvoiceNumber, orDefault(f.ClientName, "Client"))
}

// FileName implements Template.
func (f *InvoiceForm) FileName() string {
	return fileName("Invoice", orDefault(f.ClientName, "Client"), f.InvoiceNumber)
}

// Blocks implements Template.
func (f *InvoiceForm) Blocks(bc BuildContext) []layout.Block {
	text := func(s, style string, size float64, color layout.Color, align layout.Align, gap float64) layout.Block {
		return layout.Text{Text: s, Font: bc.sans(style, size), Color: color, Align: align, Gap: gap}
	}
	currency := orDefault(f.Currency, invoice.DefaultCurrency)

	blocks := []layout.Block{
		layout.Panel{
			Height: 35, Fill: &invoiceHeaderFill, PadTop: 12, Gap: 5,
			Blocks: []layout.Block{
				text("INVOICE", "B", 24, layout.White, layout.AlignCenter, 5),
				text(f.InvoiceNumber, "", 10, invoiceSubtle, layout.AlignCenter, 2),
			},
		},
		layout.Columns{
			Stacks: [][]layout.Block{
				{
					text("FROM:", "B", 8, invoiceMuted, layout.AlignLeft, 2),
					text(orDefault(f.OrgName, "Your Organization"), "B", 11, layout.Black, layout.AlignLeft, 6),
				},
				{
					text("BILL TO:", "B", 8, invoiceMuted, layout.AlignRight, 2),
					text(orDefault(f.ClientName, "Client Name"), "B", 11, layout.Black, layout.AlignRight, 2),
					text(f.ClientEmail, "", 9, invoiceMuted, layout.AlignRight, 10),
				},
			},
			Gap: 5,
		},
		layout.Columns{
			Stacks: [][]layout.Block{
				{text("Invoice Date: "+FormatDate(f.InvoiceDate), "", 9, layout.Black, layout.AlignLeft, 2)},
				{text("Due Date: "+FormatDate(f.DueDate), "", 9, layout.Black, layout.AlignRight, 2)},
			},
			Gap: 15,
		},
		f.itemsTable(bc, currency),
		f.totalsBlock(bc, currency),
	}

	if notes := strings.TrimSpace(f.Notes); notes != "" {
		blocks = append(blocks,
			layout.Spacer{Height: 13},
			layout.KeepTogether{Blocks: []layout.Block{
				text("NOTES / TERMS:", "B", 8, invoiceMuted, layout.AlignLeft, 4),
				text(notes, "", 9, invoiceNotes, layout.AlignLeft, 2),
			}},
		)
	}

	blocks = append(blocks, layout.Fixed{Y: 285, Blocks: []layout.Block{
		text("Generated via OfferPro Suite • Automated Documentation", "", 8, invoiceFooter, layout.AlignCenter, 0),
	}})
	return blocks
}

func (f *InvoiceForm) itemsTable(bc BuildContext, currency string) *table.Table {
	head := bc.sans("B", 9)
	body := bc.sans("", 9)
	tbl := table.New()
	tbl.SetColumns(
		table.ColumnDef{},
		table.ColumnDef{Width: 20, Align: "R"},
		table.ColumnDef{Width: 35, Align: "R"},
		table.ColumnDef{Width: 35, Align: "R"},
	)
	tbl.SetStyle(table.TableStyle{
		CellPadding:  table.Padding{Top: 2.5, Right: 2, Bottom: 2.5, Left: 2},
		CellFont:     &body,
		MinRowHeight: 8,
		HeaderStyle:  &table.CellStyle{FillColor: &invoiceTableFill, Font: &head},
		RowRule:      &table.BorderStyle{Width: 0.2, Color: invoiceRowRule},
	})
	tbl.SetGap(10)

	h := tbl.AddHeaderRow()
	h.AddCell("Description")
	h.AddCell("Qty")
	h.AddCell("Price")
	h.AddCell("Total")

	for _, li := range f.Items {
		r := tbl.AddRow()
		r.AddCell(orDefault(li.Description, "-"))
		r.AddCell(invoice.FormatRate(li.Quantity))
		r.AddCell(invoice.FormatAmount(currency, li.Price))
		r.AddCell(invoice.FormatAmount(currency, li.Total()))
	}
	return tbl
}

func (f *InvoiceForm) totalsBlock(bc BuildContext, currency string) layout.Block {
	const pageWidth = layout.A4Width
	labelArea := layout.Area{Left: pageWidth - invoiceMargin - 60, Width: 60}
	tot := f.Totals()

	row := func(label string, value float64, strong bool) layout.Block {
		font := bc.sans("", 9)
		if strong {
			font = bc.sans("B", 11)
		}
		return layout.Columns{
			Stacks: [][]layout.Block{
				{layout.Text{Text: label, Font: font, Leading: 7}},
				{layout.Text{Text: invoice.FormatAmount(currency, value), Font: font, Align: layout.AlignRight, Leading: 7}},
			},
			Areas: []layout.Area{labelArea, labelArea},
		}
	}

	rows := []layout.Block{row("Subtotal:", tot.Subtotal, false)}
	if f.DiscountRate > 0 {
		rows = append(rows, row(fmt.Sprintf("Discount (%s%%):", invoice.FormatRate(f.DiscountRate)), -tot.DiscountAmount, false))
	}
	if f.TaxRate > 0 {
		rows = append(rows, row(fmt.Sprintf("Tax (%s%%):", invoice.FormatRate(f.TaxRate)), tot.TaxAmount, false))
	}
	rows = append(rows,
		layout.Spacer{Height: 2},
		layout.Rule{X1: labelArea.Left, X2: labelArea.Right(), Offset: -4, Color: layout.Black, Width: 0.5},
		row("TOTAL AMOUNT:", tot.GrandTotal, true),
	)

	left := []layout.Block{
		layout.Barcode{Kind: layout.Code128, Value: f.InvoiceNumber, Width: 50, Height: 10, Gap: 2},
	}
	return layout.Columns{
		Stacks: [][]layout.Block{left, rows},
		Areas: []layout.Area{
			{Left: invoiceMargin, Width: 60},
			{Left: labelArea.Left, Width: labelArea.Width},
		},
	}
}
