package layout

// Op is a drawing operation positioned on a page.
type Op interface {
	shift(dy float64) Op
}

// TextOp draws a string with its baseline at Y.
type TextOp struct {
	X, Y  float64
	Text  string
	Font  Font
	Color Color
}

func (o TextOp) shift(dy float64) Op { o.Y += dy; return o }

// ImageOp draws an image with its top-left corner at X, Y.
type ImageOp struct {
	X, Y, W, H float64
	Image      *Image
}

func (o ImageOp) shift(dy float64) Op { o.Y += dy; return o }

// RectOp draws a rectangle. A nil Fill and nil Stroke draws nothing.
type RectOp struct {
	X, Y, W, H float64
	Fill       *Color
	Stroke     *Color
	LineWidth  float64
}

func (o RectOp) shift(dy float64) Op { o.Y += dy; return o }

// LineOp draws a straight line.
type LineOp struct {
	X1, Y1, X2, Y2 float64
	Color          Color
	Width          float64
}

func (o LineOp) shift(dy float64) Op { o.Y1 += dy; o.Y2 += dy; return o }

// BarcodeKind selects the symbology of a BarcodeOp.
type BarcodeKind int

const (
	QRCode BarcodeKind = iota
	Code128
)

func (k BarcodeKind) String() string {
	if k == Code128 {
		return "code128"
	}
	return "qr"
}

// BarcodeOp draws a barcode symbol scaled into the given box.
type BarcodeOp struct {
	X, Y, W, H float64
	Kind       BarcodeKind
	Value      string
}

func (o BarcodeOp) shift(dy float64) Op { o.Y += dy; return o }

// Shift returns ops moved down by dy.
func Shift(ops []Op, dy float64) []Op {
	out := make([]Op, len(ops))
	for i, op := range ops {
		out[i] = op.shift(dy)
	}
	return out
}

// Page is one laid-out page.
type Page struct {
	Number int
	Ops    []Op
}

// Texts returns the text ops of the page in drawing order.
func (p Page) Texts() []TextOp {
	var out []TextOp
	for _, op := range p.Ops {
		if t, ok := op.(TextOp); ok {
			out = append(out, t)
		}
	}
	return out
}
