package render

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
	"go.uber.org/zap"
)

// letterhead is the first page of an existing PDF imported as a template.
type letterhead struct {
	imp *gofpdi.Importer
	tpl int
}

// importLetterhead imports page 1 of path. The importer panics on unreadable
// input, so failures are recovered, logged and the letterhead dropped.
func (r *Renderer) importLetterhead(path string) (lh *letterhead) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Warn("skipping letterhead", zap.String("path", path), zap.Error(fmt.Errorf("render: importing letterhead: %v", p)))
			lh = nil
		}
	}()
	imp := gofpdi.NewImporter()
	tpl := imp.ImportPage(r.pdf, path, 1, "/MediaBox")
	if r.pdf.Err() {
		r.log.Warn("skipping letterhead", zap.String("path", path), zap.Error(r.pdf.Error()))
		r.pdf.ClearError()
		return nil
	}
	return &letterhead{imp: imp, tpl: tpl}
}

// place draws the letterhead stretched over the whole current page.
func (lh *letterhead) place(pdf *gofpdf.Fpdf, w, h float64) {
	lh.imp.UseImportedTemplate(pdf, lh.tpl, 0, 0, w, h)
}
