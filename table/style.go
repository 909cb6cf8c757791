// Package table lays out tables as layout blocks.
//
// A Table computes column widths from the area it is placed in, wraps cell text,
// and produces one unit per row so the layout driver can break pages between
// rows. Header rows are repeated at the top of every continuation page.
package table

import "github.com/lvillar/docgen/layout"

// Padding defines spacing inside a cell.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// BorderStyle defines the appearance of a stroked edge.
type BorderStyle struct {
	Width float64
	Color layout.Color
}

// CellStyle defines the visual appearance of a cell. Nil fields inherit.
type CellStyle struct {
	FillColor *layout.Color
	TextColor *layout.Color
	Font      *layout.Font
	Align     string // "L", "C", "R"
	Padding   *Padding
}

// AlternateStyle defines alternating row colors.
type AlternateStyle struct {
	Even CellStyle
	Odd  CellStyle
}

// TableStyle defines the overall appearance of a table.
type TableStyle struct {
	// Border strokes every cell.
	Border *BorderStyle
	// RowRule draws a line under every body row.
	RowRule       *BorderStyle
	AlternateRows *AlternateStyle
	HeaderStyle   *CellStyle
	CellPadding   Padding
	CellFont      *layout.Font
	// LineSpacing multiplies the font size for wrapped lines. Zero means
	// layout.TextSpacing.
	LineSpacing float64
	// MinRowHeight is the smallest height of any row.
	MinRowHeight float64
}

// DefaultFont is used for cells without a font in any style.
var DefaultFont = layout.Font{Family: "Helvetica", Size: 10}

func alignOf(s string) layout.Align {
	switch s {
	case "C":
		return layout.AlignCenter
	case "R":
		return layout.AlignRight
	default:
		return layout.AlignLeft
	}
}
