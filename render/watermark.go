package render

import "github.com/lvillar/docgen/layout"

// Watermark is text stamped diagonally across the centre of each page.
type Watermark struct {
	Text     string
	FontSize float64      // points (default: 60)
	Color    layout.Color // default: light gray
	Opacity  float64      // 0.0 to 1.0 (default: 0.3)
	Angle    float64      // degrees counter-clockwise (default: 45)
}

func (wm Watermark) withDefaults() Watermark {
	if wm.FontSize == 0 {
		wm.FontSize = 60
	}
	if wm.Opacity == 0 {
		wm.Opacity = 0.3
	}
	if wm.Angle == 0 {
		wm.Angle = 45
	}
	if wm.Color == (layout.Color{}) {
		wm.Color = layout.Color{R: 200, G: 200, B: 200}
	}
	return wm
}

func (r *Renderer) drawWatermark(wm Watermark, pageW, pageH float64) {
	wm = wm.withDefaults()
	font := layout.Font{Family: "Helvetica", Style: "B", Size: wm.FontSize}
	textW := r.TextWidth(wm.Text, font)
	cx, cy := pageW/2, pageH/2

	r.pdf.SetTextColor(wm.Color.R, wm.Color.G, wm.Color.B)
	r.pdf.SetAlpha(wm.Opacity, "Normal")
	r.pdf.TransformBegin()
	r.pdf.TransformRotate(wm.Angle, cx, cy)
	// Baseline a third of the cap height below the centre.
	r.pdf.Text(cx-textW/2, cy+wm.FontSize*layout.PointToMM/3, r.tr(wm.Text))
	r.pdf.TransformEnd()
	r.pdf.SetAlpha(1, "Normal")
}
