package table

import (
	"strings"

	"github.com/lvillar/docgen/layout"
)

// ColumnDef defines the properties of a table column.
type ColumnDef struct {
	Width    float64 // Fixed width. 0 means auto/fill.
	MinWidth float64 // Minimum width for auto columns.
	MaxWidth float64 // Maximum width for auto columns. 0 means unlimited.
	Align    string  // Default alignment for this column ("L", "C", "R").
}

// Table is a layout block that renders rows of wrapped text cells.
type Table struct {
	columns    []ColumnDef
	rows       []*Row
	style      TableStyle
	left       float64 // 0 means the area's left edge
	tableWidth float64 // 0 means the area width
	gap        float64
}

// New creates an empty table.
func New() *Table {
	return &Table{style: TableStyle{CellPadding: defaultPadding, MinRowHeight: defaultMinRowHeight}}
}

var defaultPadding = UniformPadding(1)

const defaultMinRowHeight = 5

// SetColumns sets column definitions for the table.
func (t *Table) SetColumns(cols ...ColumnDef) *Table {
	t.columns = cols
	return t
}

// SetColumnWidths is a convenience method to set column widths directly.
// A width of 0 means the column will auto-fill remaining space.
func (t *Table) SetColumnWidths(widths ...float64) *Table {
	t.columns = make([]ColumnDef, len(widths))
	for i, w := range widths {
		t.columns[i] = ColumnDef{Width: w}
	}
	return t
}

// SetStyle sets the table-wide style. A zero CellPadding or MinRowHeight keeps
// the default of 1mm padding and 5mm rows.
func (t *Table) SetStyle(s TableStyle) *Table {
	if s.CellPadding == (Padding{}) {
		s.CellPadding = defaultPadding
	}
	if s.MinRowHeight == 0 {
		s.MinRowHeight = defaultMinRowHeight
	}
	t.style = s
	return t
}

// SetLeft sets the x of the table's left edge.
func (t *Table) SetLeft(x float64) *Table {
	t.left = x
	return t
}

// SetWidth sets the total table width. If not called, uses the area width.
func (t *Table) SetWidth(w float64) *Table {
	t.tableWidth = w
	return t
}

// SetGap sets the space left below the table.
func (t *Table) SetGap(g float64) *Table {
	t.gap = g
	return t
}

// AddRow adds a new data row to the table and returns it for chaining.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.rows = append(t.rows, r)
	return r
}

// AddHeaderRow adds a new header row and returns it for chaining. Header rows
// always precede data rows.
func (t *Table) AddHeaderRow() *Row {
	r := &Row{isHeader: true}
	insertIdx := 0
	for i, existing := range t.rows {
		if !existing.isHeader {
			insertIdx = i
			break
		}
		insertIdx = i + 1
	}
	t.rows = append(t.rows, nil)
	copy(t.rows[insertIdx+1:], t.rows[insertIdx:])
	t.rows[insertIdx] = r
	return r
}

// Rows returns all rows, headers first.
func (t *Table) Rows() []*Row {
	return t.rows
}

// Layout implements layout.Block. Every row is one unit; the driver may break
// pages between rows and repeats the header rows on each new page.
func (t *Table) Layout(ctx *layout.Context) layout.Frame {
	area := ctx.Area
	if t.left > 0 {
		area.Left = t.left
	}
	if t.tableWidth > 0 {
		area.Width = t.tableWidth
	}
	widths := t.calculateWidths(area.Width)

	fr := layout.Frame{Split: true, Gap: t.gap}
	body := 0
	for _, r := range t.rows {
		idx := -1
		if !r.isHeader {
			idx = body
			body++
		}
		u := t.layoutRow(ctx.Metrics, r, widths, area.Left, idx)
		fr.Units = append(fr.Units, u)
		if r.isHeader {
			fr.Repeat = append(fr.Repeat, u)
		}
	}
	return fr
}

// calculateWidths computes final column widths based on definitions and available space.
func (t *Table) calculateWidths(totalWidth float64) []float64 {
	columns := t.columns
	if len(columns) == 0 {
		if len(t.rows) == 0 || len(t.rows[0].cells) == 0 {
			return nil
		}
		columns = make([]ColumnDef, len(t.rows[0].cells))
	}

	widths := make([]float64, len(columns))
	fixedTotal := 0.0
	autoCount := 0
	for i, col := range columns {
		if col.Width > 0 {
			widths[i] = col.Width
			fixedTotal += col.Width
		} else {
			autoCount++
		}
	}

	if autoCount > 0 {
		remaining := totalWidth - fixedTotal
		if remaining < 0 {
			remaining = 0
		}
		autoWidth := remaining / float64(autoCount)
		for i, col := range columns {
			if col.Width == 0 {
				w := autoWidth
				if col.MinWidth > 0 && w < col.MinWidth {
					w = col.MinWidth
				}
				if col.MaxWidth > 0 && w > col.MaxWidth {
					w = col.MaxWidth
				}
				widths[i] = w
			}
		}
	}
	return widths
}

type placedCell struct {
	x, w  float64
	style CellStyle
	lines []string
	font  layout.Font
}

func (t *Table) lineHeight(f layout.Font) float64 {
	spacing := t.style.LineSpacing
	if spacing <= 0 {
		spacing = layout.TextSpacing
	}
	return f.LineHeight(spacing)
}

// layoutRow measures a row and returns its unit with ops relative to the row top.
func (t *Table) layoutRow(m layout.Metrics, r *Row, widths []float64, left float64, bodyIdx int) layout.Unit {
	rowH := t.style.MinRowHeight
	if r.minH > rowH {
		rowH = r.minH
	}

	var cells []placedCell
	x := left
	col := 0
	for _, cell := range r.cells {
		if col >= len(widths) {
			break
		}
		cellW := widths[col]
		for j := 1; j < cell.colspan && col+j < len(widths); j++ {
			cellW += widths[col+j]
		}

		style := t.resolveCellStyle(cell, r, col, bodyIdx)
		pad := t.style.CellPadding
		if style.Padding != nil {
			pad = *style.Padding
		}
		font := DefaultFont
		if style.Font != nil {
			font = *style.Font
		}

		contentW := cellW - pad.Left - pad.Right
		if contentW < 1 {
			contentW = 1
		}
		lines := wrapCell(m, cell.text, font, contentW)
		if h := float64(len(lines))*t.lineHeight(font) + pad.Top + pad.Bottom; h > rowH {
			rowH = h
		}
		style.Padding = &pad
		cells = append(cells, placedCell{x: x, w: cellW, style: style, lines: lines, font: font})

		x += cellW
		col += cell.colspan
	}

	var ops []layout.Op
	for _, c := range cells {
		if c.style.FillColor != nil {
			ops = append(ops, layout.RectOp{X: c.x, W: c.w, H: rowH, Fill: c.style.FillColor})
		}
		if b := t.style.Border; b != nil {
			stroke := b.Color
			ops = append(ops, layout.RectOp{X: c.x, W: c.w, H: rowH, Stroke: &stroke, LineWidth: b.Width})
		}

		pad := *c.style.Padding
		color := layout.Black
		if c.style.TextColor != nil {
			color = *c.style.TextColor
		}
		area := layout.Area{Left: c.x + pad.Left, Width: c.w - pad.Left - pad.Right}
		align := alignOf(c.style.Align)
		lh := t.lineHeight(c.font)
		baseline := pad.Top + c.font.Size*layout.PointToMM
		for i, line := range c.lines {
			lx := area.Place(m.TextWidth(line, c.font), align)
			ops = append(ops, layout.TextOp{X: lx, Y: baseline + float64(i)*lh, Text: line, Font: c.font, Color: color})
		}
	}
	if rule := t.style.RowRule; rule != nil && !r.isHeader && len(cells) > 0 {
		last := cells[len(cells)-1]
		ops = append(ops, layout.LineOp{
			X1: cells[0].x, Y1: rowH, X2: last.x + last.w, Y2: rowH,
			Color: rule.Color, Width: rule.Width,
		})
	}
	return layout.Unit{Height: rowH, Ops: ops}
}

func wrapCell(m layout.Metrics, text string, f layout.Font, width float64) []string {
	measure := layout.MeasureWith(m, f)
	var out []string
	for _, para := range strings.Split(text, "\n") {
		lines := layout.Wrap(layout.Run{{Text: para, Bold: f.Bold()}}, width, measure)
		if len(lines) == 0 {
			out = append(out, "")
			continue
		}
		for _, l := range lines {
			out = append(out, l.Text())
		}
	}
	return out
}

// resolveCellStyle determines the effective style for a cell by merging
// table, column, header, alternate row, row, and cell-level styles.
func (t *Table) resolveCellStyle(cell *Cell, row *Row, col, bodyIdx int) CellStyle {
	var result CellStyle

	if t.style.CellFont != nil {
		result.Font = t.style.CellFont
	}
	if col < len(t.columns) && t.columns[col].Align != "" {
		result.Align = t.columns[col].Align
	}

	if row.isHeader && t.style.HeaderStyle != nil {
		mergeStyle(&result, t.style.HeaderStyle)
	}

	if !row.isHeader && t.style.AlternateRows != nil && bodyIdx >= 0 {
		if bodyIdx%2 == 0 {
			mergeStyle(&result, &t.style.AlternateRows.Even)
		} else {
			mergeStyle(&result, &t.style.AlternateRows.Odd)
		}
	}

	if row.style != nil {
		mergeStyle(&result, row.style)
	}

	// Cell-level style (highest priority)
	if cell.style != nil {
		mergeStyle(&result, cell.style)
	}

	return result
}

// mergeStyle copies non-nil fields from src to dst.
func mergeStyle(dst, src *CellStyle) {
	if src.FillColor != nil {
		dst.FillColor = src.FillColor
	}
	if src.TextColor != nil {
		dst.TextColor = src.TextColor
	}
	if src.Font != nil {
		dst.Font = src.Font
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
	if src.Padding != nil {
		dst.Padding = src.Padding
	}
}
