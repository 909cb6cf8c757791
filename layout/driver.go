package layout

import "go.uber.org/zap"

// epsilon absorbs float rounding when a block ends exactly on the bottom margin.
const epsilon = 1e-9

// WillOverflow reports whether a block of height h placed at cursorY would cross
// bottom.
func WillOverflow(cursorY, h, bottom float64) bool {
	return cursorY+h > bottom+epsilon
}

// Cursor is the insertion point of a Driver.
type Cursor struct {
	Page int
	Y    float64
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithLogger sets the logger handed to blocks and used for page events.
func WithLogger(l *zap.Logger) DriverOption {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// WithBackground sets ops drawn first on every page.
func WithBackground(ops ...Op) DriverOption {
	return func(d *Driver) {
		d.background = append(d.background, ops...)
	}
}

// Driver places blocks top to bottom, starting new pages when content would
// cross the bottom margin. A Driver owns its cursor and is not safe for
// concurrent use.
type Driver struct {
	geom       Geometry
	metrics    Metrics
	log        *zap.Logger
	background []Op
	cursor     Cursor
	pages      []Page
}

// NewDriver returns a driver for the given page geometry.
func NewDriver(geom Geometry, m Metrics, opts ...DriverOption) *Driver {
	d := &Driver{geom: geom, metrics: m, log: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Cursor returns the current insertion point.
func (d *Driver) Cursor() Cursor {
	return d.cursor
}

// Pages returns the pages laid out so far.
func (d *Driver) Pages() []Page {
	return d.pages
}

// Add lays out b at the cursor.
func (d *Driver) Add(b Block) {
	if len(d.pages) == 0 {
		d.newPage()
	}
	ctx := &Context{
		Metrics: d.metrics,
		Area:    Area{Left: d.geom.Margins.Left, Width: d.geom.ContentWidth()},
		Page:    d.geom,
		Logger:  d.log,
	}
	d.place(b.Layout(ctx))
}

// Layout lays out blocks on fresh pages. The result always holds at least one
// page.
func Layout(blocks []Block, geom Geometry, m Metrics, opts ...DriverOption) []Page {
	d := NewDriver(geom, m, opts...)
	d.newPage()
	for _, b := range blocks {
		d.Add(b)
	}
	return d.Pages()
}

func (d *Driver) place(fr Frame) {
	if fr.Fixed {
		y := fr.Y
		for _, u := range fr.Units {
			d.emit(Shift(u.Ops, y))
			y += u.Height
		}
		return
	}

	if !fr.Split && d.overflows(fr.Height()) {
		d.newPage()
	}

	head := len(fr.Repeat)
	if head > len(fr.Units) {
		head = len(fr.Units)
	}
	for i, u := range fr.Units {
		switch {
		case !fr.Split && i == 0:
		case i == 0 && head > 0:
			// Keep the repeated head with the first unit after it.
			need := unitsHeight(fr.Repeat)
			if head < len(fr.Units) {
				need += fr.Units[head].Height
			}
			if d.overflows(need) {
				d.newPage()
			}
		case i < head:
		case d.overflows(u.Height):
			d.newPage()
			for _, r := range fr.Repeat {
				d.emitUnit(r)
			}
		}
		d.emitUnit(u)
	}
	d.cursor.Y += fr.Gap
}

func (d *Driver) overflows(h float64) bool {
	if d.cursor.Y <= d.geom.top(d.cursor.Page)+epsilon {
		// Content taller than a page goes on one anyway.
		return false
	}
	return WillOverflow(d.cursor.Y, h, d.geom.Bottom())
}

func (d *Driver) newPage() {
	n := len(d.pages) + 1
	ops := make([]Op, len(d.background))
	copy(ops, d.background)
	d.pages = append(d.pages, Page{Number: n, Ops: ops})
	d.cursor = Cursor{Page: n, Y: d.geom.top(n)}
	if n > 1 {
		d.log.Debug("page break", zap.Int("page", n))
	}
}

func (d *Driver) emitUnit(u Unit) {
	d.emit(Shift(u.Ops, d.cursor.Y))
	d.cursor.Y += u.Height
}

func (d *Driver) emit(ops []Op) {
	p := &d.pages[len(d.pages)-1]
	p.Ops = append(p.Ops, ops...)
}

func unitsHeight(units []Unit) float64 {
	var h float64
	for _, u := range units {
		h += u.Height
	}
	return h
}
