package layout

import (
	"strings"

	"go.uber.org/zap"
)

// Context is what a block sees while laying itself out.
type Context struct {
	Metrics Metrics
	Area    Area
	Page    Geometry
	Logger  *zap.Logger
}

func (c *Context) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Unit is an indivisible slice of a frame. Its ops are relative to the cursor at
// the moment the unit is placed.
type Unit struct {
	Height float64
	Ops    []Op
}

// Frame is the measured output of a block.
type Frame struct {
	Units []Unit
	// Gap is the space left below the frame. It never triggers a page break.
	Gap float64
	// Split allows a page break between units. Otherwise the whole frame moves to
	// a new page when it does not fit below the cursor.
	Split bool
	// Repeat units are re-emitted at the top of every page the frame spills onto.
	// They are also the leading units of Units.
	Repeat []Unit
	// Fixed frames are drawn at absolute Y on the current page and leave the
	// cursor untouched.
	Fixed bool
	Y     float64
}

// Height is the summed height of the frame's units, without Gap.
func (f Frame) Height() float64 {
	return unitsHeight(f.Units)
}

// Block is an element of document content.
type Block interface {
	Layout(ctx *Context) Frame
}

// BlockFunc adapts a function to the Block interface.
type BlockFunc func(ctx *Context) Frame

// Layout calls f(ctx).
func (f BlockFunc) Layout(ctx *Context) Frame { return f(ctx) }

// flatten lays out blocks one after another and returns their units with the
// gaps between them as empty units. The gap of the last block is returned apart.
// Fixed frames are skipped and the Split and Repeat flags of nested frames are
// not carried over.
func flatten(ctx *Context, blocks []Block) (units []Unit, gap float64) {
	for _, b := range blocks {
		fr := b.Layout(ctx)
		if fr.Fixed {
			continue
		}
		if gap > 0 && len(fr.Units) > 0 {
			units = append(units, Unit{Height: gap})
			gap = 0
		}
		units = append(units, fr.Units...)
		gap += fr.Gap
	}
	return units, gap
}

// stack lays out blocks vertically from zero and returns the combined ops and
// the height including the trailing gap.
func stack(ctx *Context, blocks []Block) ([]Op, float64) {
	units, gap := flatten(ctx, blocks)
	var (
		ops []Op
		y   float64
	)
	for _, u := range units {
		ops = append(ops, Shift(u.Ops, y)...)
		y += u.Height
	}
	return ops, y + gap
}

// Text is left, centered or right aligned text wrapped to the area width. Hard
// newlines start new lines; an empty string still takes one line.
type Text struct {
	Text    string
	Font    Font
	Color   Color
	Align   Align
	Spacing float64 // line spacing multiplier, TextSpacing when zero
	Leading float64 // fixed baseline distance, overrides Spacing when set
	Gap     float64
	// Left and Width override the context area when Width is set.
	Left, Width float64
}

func (b Text) lineHeight() float64 {
	if b.Leading > 0 {
		return b.Leading
	}
	spacing := b.Spacing
	if spacing <= 0 {
		spacing = TextSpacing
	}
	return b.Font.LineHeight(spacing)
}

// Layout implements Block.
func (b Text) Layout(ctx *Context) Frame {
	area := ctx.Area
	if b.Width > 0 {
		area = Area{Left: b.Left, Width: b.Width}
	}
	lh := b.lineHeight()
	measure := MeasureWith(ctx.Metrics, b.Font)
	bold := b.Font.Bold()

	var units []Unit
	text := strings.ReplaceAll(b.Text, "\r\n", "\n")
	for _, para := range strings.Split(text, "\n") {
		lines := Wrap(Run{{Text: para, Bold: bold}}, area.Width, measure)
		if len(lines) == 0 {
			units = append(units, Unit{Height: lh})
			continue
		}
		for _, l := range lines {
			s := l.Text()
			w := ctx.Metrics.TextWidth(s, b.Font)
			units = append(units, Unit{Height: lh, Ops: []Op{
				TextOp{X: area.Place(w, b.Align), Text: s, Font: b.Font, Color: b.Color},
			}})
		}
	}
	return Frame{Units: units, Gap: b.Gap}
}

// Paragraph is fully justified mixed-style text. Bold segments of Runs use the
// bold face of Font.
type Paragraph struct {
	Runs    Run
	Font    Font
	Color   Color
	Spacing float64 // ParagraphSpacing when zero
	Gap     float64
}

// Layout implements Block.
func (b Paragraph) Layout(ctx *Context) Frame {
	spacing := b.Spacing
	if spacing <= 0 {
		spacing = ParagraphSpacing
	}
	return justified(ctx, b.Runs, b.Font, b.Color, b.Font.LineHeight(spacing), false, b.Gap)
}

// Field is a bold label followed by a regular value on the same line, wrapping
// as one paragraph and never stretched.
type Field struct {
	Label, Value string
	Font         Font
	Color        Color
	Spacing      float64 // TextSpacing when zero
	Gap          float64
}

// Layout implements Block.
func (b Field) Layout(ctx *Context) Frame {
	spacing := b.Spacing
	if spacing <= 0 {
		spacing = TextSpacing
	}
	run := Run{{Text: b.Label, Bold: true}, {Text: " "}, {Text: b.Value}}
	return justified(ctx, run, b.Font.WithBold(false), b.Color, b.Font.LineHeight(spacing), true, b.Gap)
}

func justified(ctx *Context, run Run, font Font, color Color, lh float64, ragged bool, gap float64) Frame {
	measure := MeasureWith(ctx.Metrics, font)
	lines := Wrap(run, ctx.Area.Width, measure)
	units := make([]Unit, 0, len(lines))
	for i, l := range lines {
		last := ragged || i == len(lines)-1
		var ops []Op
		for _, p := range Justify(l, ctx.Area.Left, ctx.Area.Width, last, measure) {
			ops = append(ops, TextOp{X: p.X, Text: p.Text, Font: font.WithBold(p.Bold), Color: color})
		}
		units = append(units, Unit{Height: lh, Ops: ops})
	}
	return Frame{Units: units, Gap: gap}
}

// Figure is an embedded raster image scaled to Width. Missing sources reserve
// Placeholder space; undecodable sources are logged and skipped.
type Figure struct {
	Name        string // used in log entries
	Source      string // data URL or base64
	Width       float64
	Height      float64 // keeps the aspect ratio when zero
	Align       Align
	Left        float64 // absolute x, overrides Align when set
	Placeholder float64
	Gap         float64
}

// Layout implements Block.
func (b Figure) Layout(ctx *Context) Frame {
	if strings.TrimSpace(b.Source) == "" {
		return Frame{Gap: b.Placeholder}
	}
	img, err := DecodeImage(b.Source)
	if err != nil {
		ctx.logger().Warn("skipping image", zap.String("image", b.Name), zap.Error(err))
		return Frame{}
	}
	h := b.Height
	if h <= 0 {
		h = img.ScaledHeight(b.Width)
	}
	x := b.Left
	if x <= 0 {
		x = ctx.Area.Place(b.Width, b.Align)
	}
	return Frame{
		Units: []Unit{{Height: h, Ops: []Op{ImageOp{X: x, W: b.Width, H: h, Image: img}}}},
		Gap:   b.Gap,
	}
}

// Spacer advances the cursor. It never moves content to a new page.
type Spacer struct {
	Height float64
}

// Layout implements Block.
func (b Spacer) Layout(*Context) Frame {
	return Frame{Gap: b.Height, Split: true}
}

// Rule is a horizontal line Offset below the cursor. X1 and X2 default to the
// area edges.
type Rule struct {
	X1, X2 float64
	Offset float64
	Color  Color
	Width  float64
	Gap    float64
}

// Layout implements Block.
func (b Rule) Layout(ctx *Context) Frame {
	x1, x2 := b.X1, b.X2
	if x1 == 0 && x2 == 0 {
		x1, x2 = ctx.Area.Left, ctx.Area.Right()
	}
	op := LineOp{X1: x1, Y1: b.Offset, X2: x2, Y2: b.Offset, Color: b.Color, Width: b.Width}
	return Frame{Units: []Unit{{Ops: []Op{op}}}, Gap: b.Gap}
}

// Columns lays out stacks of blocks side by side, all starting at the cursor.
// Each stack sees Areas[i] when given, the context area otherwise. The frame is
// as tall as the tallest stack. Stacks must not contain Fixed blocks, which are
// dropped, and a nested table never splits or repeats its header.
type Columns struct {
	Stacks [][]Block
	Areas  []Area
	Gap    float64
}

// Layout implements Block.
func (b Columns) Layout(ctx *Context) Frame {
	var (
		ops    []Op
		height float64
	)
	for i, s := range b.Stacks {
		sub := *ctx
		if i < len(b.Areas) {
			sub.Area = b.Areas[i]
		}
		o, h := stack(&sub, s)
		ops = append(ops, o...)
		if h > height {
			height = h
		}
	}
	return Frame{Units: []Unit{{Height: height, Ops: ops}}, Gap: b.Gap}
}

// KeepTogether moves its blocks to a new page as a group when they do not fit.
// Nested Fixed blocks are dropped. Nested frames that allow splitting, such as
// tables, stay in the group and their repeated header rows are not re-emitted.
type KeepTogether struct {
	Blocks []Block
}

// Layout implements Block.
func (b KeepTogether) Layout(ctx *Context) Frame {
	units, gap := flatten(ctx, b.Blocks)
	return Frame{Units: units, Gap: gap}
}

// Panel is a rectangle of fixed height spanning the area with blocks stacked
// inside it from PadTop. Nested Fixed blocks are dropped.
type Panel struct {
	Height    float64
	Fill      *Color
	Stroke    *Color
	LineWidth float64
	PadTop    float64
	Blocks    []Block
	Gap       float64
}

// Layout implements Block.
func (b Panel) Layout(ctx *Context) Frame {
	ops := []Op{RectOp{
		X: ctx.Area.Left, W: ctx.Area.Width, H: b.Height,
		Fill: b.Fill, Stroke: b.Stroke, LineWidth: b.LineWidth,
	}}
	inner, _ := stack(ctx, b.Blocks)
	ops = append(ops, Shift(inner, b.PadTop)...)
	return Frame{Units: []Unit{{Height: b.Height, Ops: ops}}, Gap: b.Gap}
}

// Fixed draws its blocks at an absolute Y on the current page without moving
// the cursor.
type Fixed struct {
	Y      float64
	Blocks []Block
}

// Layout implements Block.
func (b Fixed) Layout(ctx *Context) Frame {
	units, _ := flatten(ctx, b.Blocks)
	return Frame{Units: units, Fixed: true, Y: b.Y}
}

// Barcode is a QR code or Code 128 symbol. An empty value produces nothing.
type Barcode struct {
	Kind   BarcodeKind
	Value  string
	Width  float64
	Height float64 // Width when zero
	Align  Align
	Left   float64 // absolute x, overrides Align when set
	Gap    float64
}

// Layout implements Block.
func (b Barcode) Layout(ctx *Context) Frame {
	if strings.TrimSpace(b.Value) == "" {
		return Frame{}
	}
	h := b.Height
	if h <= 0 {
		h = b.Width
	}
	x := b.Left
	if x <= 0 {
		x = ctx.Area.Place(b.Width, b.Align)
	}
	op := BarcodeOp{X: x, W: b.Width, H: h, Kind: b.Kind, Value: b.Value}
	return Frame{Units: []Unit{{Height: h, Ops: []Op{op}}}, Gap: b.Gap}
}
