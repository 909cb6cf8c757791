package doctpl

import (
	"fmt"
	"strings"

	"github.com/lvillar/docgen/layout"
)

const offerBodySize = 11

// Kind implements Template.
func (f *OfferForm) Kind() Kind { return KindOffer }

// FullTime reports whether the full-time template applies.
func (f *OfferForm) FullTime() bool {
	return strings.EqualFold(strings.TrimSpace(f.OfferType), OfferFullTime)
}

// Validate implements Template.
func (f *OfferForm) Validate() error {
	switch strings.ToLower(strings.TrimSpace(f.OfferType)) {
	case "", OfferInternship, OfferFullTime:
	default:
		return &FieldError{Kind: KindOffer, Field: "offerType", Reason: "must be internship or fulltime"}
	}
	return checkRequired(KindOffer, f)
}

// Geometry implements Template.
func (f *OfferForm) Geometry() layout.Geometry {
	return layout.A4Portrait(layout.Margins{Top: 15, Right: 25, Bottom: 20, Left: 25})
}

// Background implements Template.
func (f *OfferForm) Background() []layout.Op { return nil }

// Title implements Template.
func (f *OfferForm) Title() string {
	if f.FullTime() {
		return "Employment Offer - " + f.StudentName
	}
	return "Internship Offer - " + f.StudentName
}

// FileName implements Template.
func (f *OfferForm) FileName() string {
	return fileName("Offer", f.StudentName)
}

// Blocks implements Template.
func (f *OfferForm) Blocks(bc BuildContext) []layout.Block {
	text := func(s, style string, size float64, align layout.Align, gap float64) layout.Block {
		return layout.Text{Text: s, Font: bc.sans(style, size), Align: align, Gap: gap}
	}
	para := func(segs ...layout.Segment) layout.Block {
		return layout.Paragraph{Runs: layout.Run(segs), Font: bc.sans("", offerBodySize), Gap: 5}
	}

	blocks := []layout.Block{
		layout.Figure{Name: "companyLogo", Source: f.CompanyLogo, Width: 28, Gap: 12},
		text(strings.ToUpper(f.CompanyName), "B", 13, layout.AlignLeft, 0),
		text(f.CompanyAddress, "", 9, layout.AlignLeft, 4),
	}
	if contact := f.contactLine(); contact != "" {
		blocks = append(blocks, text(contact, "", 9, layout.AlignLeft, 4))
	}
	blocks = append(blocks,
		text("Date: "+OrdinalDate(bc.Now), "", offerBodySize, layout.AlignLeft, 4),
		text("To,", "B", offerBodySize, layout.AlignLeft, 1),
		text(f.StudentName, "B", offerBodySize, layout.AlignLeft, 1),
		text(f.StudentAddress, "", 10, layout.AlignLeft, 5),
	)

	if f.FullTime() {
		blocks = append(blocks,
			text("Subject: Offer of Full-Time Employment", "B", offerBodySize, layout.AlignCenter, 6),
			text(fmt.Sprintf("Dear %s,", f.StudentName), "B", offerBodySize, layout.AlignLeft, 4),
		)
		blocks = append(blocks, f.fullTimeBody(para)...)
	} else {
		blocks = append(blocks,
			text("Subject: Internship Offer Letter", "B", offerBodySize, layout.AlignCenter, 6),
			text(fmt.Sprintf("Dear %s,", f.StudentName), "B", offerBodySize, layout.AlignLeft, 4),
		)
		blocks = append(blocks, f.internshipBody(para)...)
	}

	closing := layout.KeepTogether{Blocks: []layout.Block{
		layout.Spacer{Height: 2},
		text("Sincerely,", "", offerBodySize, layout.AlignLeft, 2),
		layout.Figure{Name: "signature", Source: f.Signature, Width: 40, Placeholder: 12, Gap: 2},
		text(f.AuthorizedPersonName, "B", offerBodySize, layout.AlignLeft, 2),
		text(f.AuthorizedPersonDesignation, "", 10, layout.AlignLeft, 0.5),
		text(f.CompanyName, "B", 10, layout.AlignLeft, 2),
	}}
	return append(blocks, closing)
}

func (f *OfferForm) contactLine() string {
	var parts []string
	if s := strings.TrimSpace(f.ContactEmail); s != "" {
		parts = append(parts, "Email: "+s)
	}
	if s := strings.TrimSpace(f.ContactPhone); s != "" {
		parts = append(parts, "Phone: "+s)
	}
	return strings.Join(parts, " | ")
}

func (f *OfferForm) currency() string {
	return orDefault(f.Currency, "INR")
}

func bold(s string) layout.Segment { return layout.Segment{Text: s, Bold: true} }
func plain(s string) layout.Segment { return layout.Segment{Text: s} }

func (f *OfferForm) fullTimeBody(para func(...layout.Segment) layout.Block) []layout.Block {
	payTerm := "a compensation"
	if f.PaymentFrequency == "Annual" {
		payTerm = "an annual compensation"
	}
	return []layout.Block{
		para(
			plain("We are pleased to offer you the position of "), bold(f.Role),
			plain(" at "), bold(f.CompanyName),
			plain(", effective "), bold(FormatDate(f.StartDate)),
			plain(". You will be associated with the "), bold(f.Department),
			plain(" and will report to "), bold(f.SupervisorName), plain("."),
		),
		para(
			plain("In this role, you will be responsible for "), plain(f.Responsibilities),
			plain(", contributing to the company’s strategic, operational, and financial objectives."),
		),
		para(
			plain("This is a full-time employment position. You will receive "),
			plain(payTerm+" of "), bold(fmt.Sprintf("%s %s", f.Stipend, f.currency())),
			plain(", payable as per company policy, along with applicable benefits."),
		),
		para(plain("You are required to maintain the highest standards of professional conduct and " +
			"confidentiality during and after your employment with the company. Your employment will " +
			"be governed by company policies and applicable laws.")),
		para(
			plain("To confirm your acceptance of this offer, please reply to this email with your confirmation by "),
			bold(FormatDate(f.AcceptanceDeadline)), plain("."),
		),
		para(plain(fmt.Sprintf("We look forward to your association and contributions to %s.", f.CompanyName))),
	}
}

func (f *OfferForm) internshipBody(para func(...layout.Segment) layout.Block) []layout.Block {
	payText := "This is an unpaid internship. No financial remuneration or benefits will be provided by the organization."
	if f.IsPaid {
		payText = fmt.Sprintf("This is a paid internship. You will receive a stipend of %s %s, disbursed on a %s basis.",
			f.Stipend, f.currency(), orDefault(f.PaymentFrequency, "Monthly"))
	}
	return []layout.Block{
		para(
			plain("We are pleased to offer you the position of "), bold(f.Role),
			plain(" at "), bold(f.CompanyName),
			plain(". This internship will commence on "), bold(FormatDate(f.StartDate)),
			plain(" and conclude on "), bold(FormatDate(f.EndDate)),
			plain(". You will be associated with the "), bold(f.Department),
			plain(" and report to "), bold(f.SupervisorName), plain("."),
		),
		para(
			plain("Your responsibilities will include "), plain(f.Responsibilities),
			plain(fmt.Sprintf(". %s This offer does not guarantee permanent employment.", payText)),
		),
		para(
			plain("You are required to maintain professional conduct and confidentiality during and after your "+
				"tenure. To accept this offer, please confirm your acceptance by replying to this email by "),
			bold(FormatDate(f.AcceptanceDeadline)), plain("."),
		),
		para(plain("We wish you a productive learning experience with us.")),
	}
}
