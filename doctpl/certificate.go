package doctpl

import (
	"strings"

	"github.com/lvillar/docgen/layout"
)

var (
	certPrimary = layout.Color{R: 15, G: 23, B: 42}
	certAccent  = layout.Color{R: 37, G: 99, B: 235}
	certBorder  = layout.Color{R: 226, G: 232, B: 240}
)

const certFooterY = 175

// Kind implements Template.
func (f *CertificateForm) Kind() Kind { return KindCertificate }

// Validate implements Template.
func (f *CertificateForm) Validate() error {
	return checkRequired(KindCertificate, f)
}

// Geometry implements Template. Content starts at y=30; the bottom margin only
// matters for an unusually long description.
func (f *CertificateForm) Geometry() layout.Geometry {
	return layout.A4Landscape(layout.Margins{Top: 30, Right: 10, Bottom: 15, Left: 10})
}

// Background implements Template: top and bottom bars and an inset border.
func (f *CertificateForm) Background() []layout.Op {
	w, h := layout.A4Height, layout.A4Width
	return []layout.Op{
		layout.RectOp{X: 0, Y: 0, W: w, H: 5, Fill: &certPrimary},
		layout.RectOp{X: 0, Y: h - 5, W: w, H: 5, Fill: &certPrimary},
		layout.RectOp{X: 10, Y: 10, W: w - 20, H: h - 20, Stroke: &certBorder, LineWidth: 1},
	}
}

// Title implements Template.
func (f *CertificateForm) Title() string {
	return "Certificate - " + f.RecipientName
}

// FileName implements Template.
func (f *CertificateForm) FileName() string {
	return fileName("Certificate", f.RecipientName)
}

// Blocks implements Template.
func (f *CertificateForm) Blocks(bc BuildContext) []layout.Block {
	const pageWidth = layout.A4Height
	center := func(s string, font layout.Font, color layout.Color, advance float64) layout.Block {
		return layout.Text{Text: s, Font: font, Color: color, Align: layout.AlignCenter, Leading: advance}
	}

	blocks := []layout.Block{
		layout.Fixed{Y: 15, Blocks: []layout.Block{
			layout.Barcode{Kind: layout.QRCode, Value: f.VerificationCode, Left: pageWidth - 35, Width: 20},
		}},
		layout.Figure{Name: "logo", Source: f.Logo, Width: 35, Align: layout.AlignCenter, Gap: 15, Placeholder: 25},
		center("CERTIFICATE", bc.serif("B", 36), layout.Black, 12),
		center("OF ACHIEVEMENT", bc.sans("", 16), layout.Black, 25),
		center("This is to certify that", bc.sans("", 14), layout.Black, 15),
		center(strings.ToUpper(f.RecipientName), bc.sans("B", 28), certAccent, 15),
		center("has successfully demonstrated excellence in", bc.sans("", 14), certPrimary, 10),
		center(f.AchievementTitle, bc.sans("B", 18), certPrimary, 20),
		layout.Text{
			Text: f.Description, Font: bc.sans("I", 12), Color: certPrimary,
			Align: layout.AlignCenter, Leading: 6, Gap: 20,
			Left: (pageWidth - 200) / 2, Width: 200,
		},
	}

	footerText := func(s string, font layout.Font, left, width float64, align layout.Align) layout.Block {
		return layout.Text{Text: s, Font: font, Color: certPrimary, Align: align, Leading: 5, Left: left, Width: width}
	}
	sigX := pageWidth - 50 - 40
	blocks = append(blocks,
		layout.Fixed{Y: certFooterY, Blocks: []layout.Block{
			footerText(f.IssuingOrganization, bc.sans("B", 12), 50, 80, layout.AlignLeft),
			footerText("Organization", bc.sans("", 12), 50, 80, layout.AlignLeft),
		}},
		layout.Fixed{Y: certFooterY, Blocks: []layout.Block{
			footerText(FormatDate(f.IssueDate), bc.sans("B", 12), pageWidth/2-40, 80, layout.AlignCenter),
			footerText("Date of Issue", bc.sans("", 12), pageWidth/2-40, 80, layout.AlignCenter),
		}},
		layout.Fixed{Y: certFooterY - 15, Blocks: []layout.Block{
			layout.Figure{Name: "signature", Source: f.Signature, Left: sigX, Width: 40, Height: 15},
		}},
		layout.Fixed{Y: certFooterY - 2, Blocks: []layout.Block{
			layout.Rule{X1: pageWidth - 90, X2: pageWidth - 50, Color: certPrimary, Width: 0.5},
		}},
		layout.Fixed{Y: certFooterY, Blocks: []layout.Block{
			footerText(f.AuthorizedSignatory, bc.sans("B", 12), pageWidth-110, 80, layout.AlignCenter),
			footerText(f.SignatoryDesignation, bc.sans("", 10), pageWidth-110, 80, layout.AlignCenter),
		}},
	)
	return blocks
}
