// Package render replays laid-out pages onto a gofpdf document.
//
// A Renderer doubles as the layout.Metrics implementation so that the widths the
// layout driver measures are exactly the widths gofpdf draws. Core fonts are
// measured and drawn in cp1252; registering a UTF-8 font family switches every
// text operation to that family.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/barcode"
	"go.uber.org/zap"

	"github.com/lvillar/docgen/layout"
)

// ErrNoPages is returned by Output when nothing was drawn.
var ErrNoPages = errors.New("render: document has no pages")

// UnicodeFont names the TTF files of a UTF-8 font family. Empty style files fall
// back to Regular.
type UnicodeFont struct {
	Family                            string
	Regular, Bold, Italic, BoldItalic string
}

// Option configures a Renderer.
type Option func(*config)

type config struct {
	log         *zap.Logger
	fontDir     string
	unicode     *UnicodeFont
	letterhead  string
	watermark   *Watermark
	title       string
	creator     string
	compress    bool
	created     time.Time
	orientation string
}

// WithLogger sets the logger used for degraded images and barcodes.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithFontDir sets the directory UTF-8 font files are resolved against.
func WithFontDir(dir string) Option {
	return func(c *config) { c.fontDir = dir }
}

// WithUnicodeFont registers a UTF-8 font family that replaces the core fonts.
func WithUnicodeFont(f UnicodeFont) Option {
	return func(c *config) {
		if f.Family != "" && f.Regular != "" {
			c.unicode = &f
		}
	}
}

// WithLetterhead imports page 1 of the PDF at path under every page.
func WithLetterhead(path string) Option {
	return func(c *config) { c.letterhead = path }
}

// WithWatermark stamps wm over every page.
func WithWatermark(wm Watermark) Option {
	return func(c *config) {
		if wm.Text != "" {
			c.watermark = &wm
		}
	}
}

// WithTitle sets the document title metadata.
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

// WithCreator sets the document creator metadata.
func WithCreator(creator string) Option {
	return func(c *config) { c.creator = creator }
}

// WithCompression toggles stream compression (on by default).
func WithCompression(on bool) Option {
	return func(c *config) { c.compress = on }
}

// WithCreationDate fixes the CreationDate entry, which makes output reproducible.
func WithCreationDate(t time.Time) Option {
	return func(c *config) { c.created = t }
}

// WithLandscape sets the default orientation to landscape.
func WithLandscape(on bool) Option {
	return func(c *config) {
		if on {
			c.orientation = "L"
		}
	}
}

// Renderer draws layout pages with gofpdf. A Renderer is not safe for
// concurrent use; create one per document.
type Renderer struct {
	pdf       *gofpdf.Fpdf
	cfg       config
	log       *zap.Logger
	tr        func(string) string
	current   layout.Font
	fontSet   bool
	images    map[string]bool
	barcodes  map[string]string
	head      *letterhead
	pageCount int
}

// New returns a Renderer with an empty A4 document in millimetres.
func New(opts ...Option) *Renderer {
	cfg := config{
		log:         zap.NewNop(),
		creator:     "docgen",
		compress:    true,
		orientation: "P",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: cfg.orientation,
		UnitStr:        "mm",
		SizeStr:        "A4",
		FontDirStr:     cfg.fontDir,
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCompression(cfg.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreator(cfg.creator, true)
	if cfg.title != "" {
		pdf.SetTitle(cfg.title, true)
	}
	if !cfg.created.IsZero() {
		pdf.SetCreationDate(cfg.created)
	}

	r := &Renderer{
		pdf:      pdf,
		cfg:      cfg,
		log:      cfg.log,
		tr:       func(s string) string { return s },
		images:   make(map[string]bool),
		barcodes: make(map[string]string),
	}
	if cfg.unicode != nil {
		r.registerUnicode(*cfg.unicode)
	} else {
		r.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	if cfg.letterhead != "" {
		r.head = r.importLetterhead(cfg.letterhead)
	}
	return r
}

func (r *Renderer) registerUnicode(f UnicodeFont) {
	styles := []struct{ style, file string }{
		{"", f.Regular},
		{"B", f.Bold},
		{"I", f.Italic},
		{"BI", f.BoldItalic},
	}
	for _, s := range styles {
		file := s.file
		if file == "" {
			file = f.Regular
		}
		r.pdf.AddUTF8Font(f.Family, s.style, file)
	}
}

// family maps the requested family onto the registered UTF-8 family, if any.
func (r *Renderer) family(f layout.Font) string {
	if r.cfg.unicode != nil {
		return r.cfg.unicode.Family
	}
	if f.Family == "" {
		return "Helvetica"
	}
	return f.Family
}

func (r *Renderer) setFont(f layout.Font) {
	if r.fontSet && f == r.current {
		return
	}
	r.pdf.SetFont(r.family(f), f.Style, f.Size)
	r.current = f
	r.fontSet = true
}

// TextWidth implements layout.Metrics.
func (r *Renderer) TextWidth(text string, f layout.Font) float64 {
	if text == "" {
		return 0
	}
	r.setFont(f)
	return r.pdf.GetStringWidth(r.tr(text))
}

// Draw appends pages to the document. Each page uses geom for its size.
func (r *Renderer) Draw(pages []layout.Page, geom layout.Geometry) error {
	orientation := "P"
	if geom.Landscape {
		orientation = "L"
	}
	size := gofpdf.SizeType{Wd: geom.Width, Ht: geom.Height}
	if geom.Landscape {
		// AddPageFormat swaps the dimensions for landscape itself.
		size = gofpdf.SizeType{Wd: geom.Height, Ht: geom.Width}
	}

	for _, p := range pages {
		r.pdf.AddPageFormat(orientation, size)
		r.pageCount++
		if r.head != nil {
			r.head.place(r.pdf, geom.Width, geom.Height)
		}
		for _, op := range p.Ops {
			r.drawOp(op)
		}
		if r.cfg.watermark != nil {
			r.drawWatermark(*r.cfg.watermark, geom.Width, geom.Height)
		}
		if r.pdf.Err() {
			return fmt.Errorf("render: drawing page %d: %w", p.Number, r.pdf.Error())
		}
	}
	return nil
}

func (r *Renderer) drawOp(op layout.Op) {
	switch o := op.(type) {
	case layout.TextOp:
		r.setFont(o.Font)
		r.pdf.SetTextColor(o.Color.R, o.Color.G, o.Color.B)
		r.pdf.Text(o.X, o.Y, r.tr(o.Text))
	case layout.RectOp:
		style := ""
		if o.Fill != nil {
			r.pdf.SetFillColor(o.Fill.R, o.Fill.G, o.Fill.B)
			style += "F"
		}
		if o.Stroke != nil {
			r.pdf.SetDrawColor(o.Stroke.R, o.Stroke.G, o.Stroke.B)
			r.pdf.SetLineWidth(lineWidth(o.LineWidth))
			style += "D"
		}
		if style != "" {
			r.pdf.Rect(o.X, o.Y, o.W, o.H, style)
		}
	case layout.LineOp:
		r.pdf.SetDrawColor(o.Color.R, o.Color.G, o.Color.B)
		r.pdf.SetLineWidth(lineWidth(o.Width))
		r.pdf.Line(o.X1, o.Y1, o.X2, o.Y2)
	case layout.ImageOp:
		r.drawImage(o)
	case layout.BarcodeOp:
		r.drawBarcode(o)
	}
}

func lineWidth(w float64) float64 {
	if w <= 0 {
		return 0.2
	}
	return w
}

// drawImage embeds the image once per document and places it. A failing image
// is logged and skipped; the document stays valid.
func (r *Renderer) drawImage(o layout.ImageOp) {
	img := o.Image
	if img == nil {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: img.Type}
	if !r.images[img.Name] {
		r.pdf.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.Data))
		if r.pdf.Err() {
			r.log.Warn("skipping image", zap.String("image", img.Name), zap.Error(r.pdf.Error()))
			r.pdf.ClearError()
			return
		}
		r.images[img.Name] = true
	}
	r.pdf.ImageOptions(img.Name, o.X, o.Y, o.W, o.H, false, opts, 0, "")
}

// drawBarcode registers the symbol on first use and scales it into the box.
func (r *Renderer) drawBarcode(o layout.BarcodeOp) {
	id := o.Kind.String() + ":" + o.Value
	key, ok := r.barcodes[id]
	if !ok {
		switch o.Kind {
		case layout.Code128:
			key = barcode.RegisterCode128(r.pdf, o.Value)
		default:
			key = barcode.RegisterQR(r.pdf, o.Value, qr.M, qr.Auto)
		}
		if r.pdf.Err() {
			r.log.Warn("skipping barcode",
				zap.Stringer("kind", o.Kind), zap.String("value", o.Value), zap.Error(r.pdf.Error()))
			r.pdf.ClearError()
			return
		}
		r.barcodes[id] = key
	}
	barcode.Barcode(r.pdf, key, o.X, o.Y, o.W, o.H, false)
}

// PageCount returns the number of pages drawn so far.
func (r *Renderer) PageCount() int { return r.pageCount }

// Output writes the finished PDF to w.
func (r *Renderer) Output(w io.Writer) error {
	if r.pageCount == 0 {
		return ErrNoPages
	}
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("render: writing pdf: %w", err)
	}
	return nil
}

// Bytes returns the finished PDF.
func (r *Renderer) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
