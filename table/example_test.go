package table_test

import (
	"fmt"

	"github.com/lvillar/docgen/layout"
	"github.com/lvillar/docgen/table"
)

// ExampleTable demonstrates a line-item table whose header repeats on every
// page it spans.
func ExampleTable() {
	tbl := table.New()
	tbl.SetColumnWidths(90, 20, 30, 30)
	tbl.SetStyle(table.TableStyle{
		CellPadding:  table.UniformPadding(2),
		MinRowHeight: 8,
		HeaderStyle: &table.CellStyle{
			FillColor: &layout.Color{R: 245, G: 245, B: 245},
			Font:      &layout.Font{Family: "Helvetica", Style: "B", Size: 10},
		},
		RowRule: &table.BorderStyle{Width: 0.1, Color: layout.Color{R: 240, G: 240, B: 240}},
	})

	header := tbl.AddHeaderRow()
	header.AddCell("Description")
	header.AddCell("Qty").SetAlign("C")
	header.AddCell("Rate").SetAlign("R")
	header.AddCell("Amount").SetAlign("R")

	for i := 1; i <= 60; i++ {
		row := tbl.AddRow()
		row.AddCellf("Consulting block %d", i)
		row.AddCell("1").SetAlign("C")
		row.AddCell("100.00").SetAlign("R")
		row.AddCell("100.00").SetAlign("R")
	}

	geom := layout.A4Portrait(layout.Margins{Top: 25, Right: 20, Bottom: 20, Left: 20})
	pages := layout.Layout([]layout.Block{tbl}, geom, fixedMetrics{})
	for _, p := range pages {
		fmt.Printf("page %d starts with %s\n", p.Number, p.Texts()[0].Text)
	}
	// Output:
	// page 1 starts with Description
	// page 2 starts with Description
	// page 3 starts with Description
}
