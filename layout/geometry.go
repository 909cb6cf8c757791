// Package layout turns ordered content blocks into positioned drawing operations
// on fixed-size pages.
//
// The package is independent of any PDF backend: text widths come from a Metrics
// implementation and the result is a list of pages holding absolute-coordinate
// operations (text, images, rectangles, lines, barcodes) that a renderer replays.
// All lengths are in millimetres except font sizes, which are in points.
package layout

// PointToMM converts a font size in points to millimetres.
const PointToMM = 0.3527

// Default line spacing multipliers.
const (
	TextSpacing      = 1.3
	ParagraphSpacing = 1.35
)

// Color is an RGB color value.
type Color struct {
	R, G, B int
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Font specifies a font face.
type Font struct {
	Family string  // Helvetica, Times, Courier or a registered UTF-8 family
	Style  string  // "" (regular), "B" (bold), "I" (italic), "BI"
	Size   float64 // in points
}

// Bold reports whether the style includes bold.
func (f Font) Bold() bool {
	return hasStyle(f.Style, 'B')
}

// Italic reports whether the style includes italic.
func (f Font) Italic() bool {
	return hasStyle(f.Style, 'I')
}

// WithBold returns a copy of f with bold switched on or off, keeping italic.
func (f Font) WithBold(bold bool) Font {
	style := ""
	if bold {
		style = "B"
	}
	if f.Italic() {
		style += "I"
	}
	f.Style = style
	return f
}

// LineHeight returns the baseline distance for the font at the given spacing.
func (f Font) LineHeight(spacing float64) float64 {
	return f.Size * PointToMM * spacing
}

func hasStyle(style string, c byte) bool {
	for i := 0; i < len(style); i++ {
		if style[i] == c || style[i] == c+('a'-'A') {
			return true
		}
	}
	return false
}

// Margins defines page margins.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Geometry describes the page all blocks are laid out on.
type Geometry struct {
	Width, Height float64
	Margins       Margins
	// ContinueTop is the cursor start on pages after the first. Zero means Margins.Top.
	ContinueTop float64
	Landscape   bool
}

// A4 page dimensions in millimetres.
const (
	A4Width  = 210.0
	A4Height = 297.0
)

// A4Portrait returns a portrait A4 geometry with the given margins.
func A4Portrait(m Margins) Geometry {
	return Geometry{Width: A4Width, Height: A4Height, Margins: m}
}

// A4Landscape returns a landscape A4 geometry with the given margins.
func A4Landscape(m Margins) Geometry {
	return Geometry{Width: A4Height, Height: A4Width, Margins: m, Landscape: true}
}

// ContentWidth is the page width between the left and right margins.
func (g Geometry) ContentWidth() float64 {
	return g.Width - g.Margins.Left - g.Margins.Right
}

// Bottom is the lowest Y content may reach.
func (g Geometry) Bottom() float64 {
	return g.Height - g.Margins.Bottom
}

func (g Geometry) top(page int) float64 {
	if page > 1 && g.ContinueTop > 0 {
		return g.ContinueTop
	}
	return g.Margins.Top
}

// Area is the horizontal band a block is laid out in.
type Area struct {
	Left, Width float64
}

// Right is the right edge of the area.
func (a Area) Right() float64 {
	return a.Left + a.Width
}

// Center is the horizontal midpoint of the area.
func (a Area) Center() float64 {
	return a.Left + a.Width/2
}

// Align is a horizontal alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Place returns the x at which content of width w starts inside a.
func (a Area) Place(w float64, align Align) float64 {
	switch align {
	case AlignCenter:
		return a.Center() - w/2
	case AlignRight:
		return a.Right() - w
	default:
		return a.Left
	}
}
