package doctpl

import (
	"fmt"
	"strings"

	"github.com/lvillar/docgen/layout"
)

const (
	mouBodySize      = 11
	mouClauseSpacing = 1.4
)

// Kind implements Template.
func (f *MoUForm) Kind() Kind { return KindMoU }

// Validate implements Template.
func (f *MoUForm) Validate() error {
	return checkRequired(KindMoU, f)
}

// Geometry implements Template.
func (f *MoUForm) Geometry() layout.Geometry {
	return layout.Geometry{
		Width:       layout.A4Width,
		Height:      layout.A4Height,
		Margins:     layout.Margins{Top: 25, Right: 28, Bottom: 20, Left: 28},
		ContinueTop: 30,
	}
}

// Background implements Template.
func (f *MoUForm) Background() []layout.Op { return nil }

// Title implements Template.
func (f *MoUForm) Title() string {
	return fmt.Sprintf("MoU - %s & %s", f.PartyAName, f.PartyBName)
}

// FileName implements Template.
func (f *MoUForm) FileName() string {
	return fileName("MoU", f.PartyAName, f.PartyBName)
}

type clause struct {
	heading, body string
}

func (f *MoUForm) clauses() []clause {
	cs := []clause{
		{"PURPOSE AND SCOPE", "The purpose of this MoU is to outline the understanding between the Parties regarding " +
			f.Purpose + ". This agreement establishes a framework for cooperation and sets forth the intentions of both Parties."},
		{"DURATION", "This MoU shall become effective as of " + FormatDate(f.EffectiveDate) +
			" and shall remain in force until " + orDefault(FormatDate(f.TerminationDate), "terminated") +
			", unless terminated earlier by either party with mutual consent."},
	}
	if f.Confidentiality {
		cs = append(cs, clause{"CONFIDENTIALITY", "Both parties agree to maintain the strictest confidentiality " +
			"regarding all proprietary information, trade secrets, and internal data shared during the course of this association."})
	}
	if s := strings.TrimSpace(f.OtherClauses); s != "" {
		cs = append(cs, clause{"ADDITIONAL TERMS", s})
	}
	law := orDefault(f.GoverningLaw, "India")
	jurisdiction := orDefault(f.Jurisdiction, "courts of "+law)
	cs = append(cs, clause{"GOVERNING LAW AND JURISDICTION", "This MoU shall be governed by and construed in accordance with the laws of " +
		law + ". Any disputes arising shall be subject to the exclusive jurisdiction of the " + jurisdiction + "."})
	return cs
}

// Blocks implements Template.
func (f *MoUForm) Blocks(bc BuildContext) []layout.Block {
	text := func(s, style string, size float64, align layout.Align, gap float64) layout.Block {
		return layout.Text{Text: s, Font: bc.serif(style, size), Align: align, Gap: gap}
	}

	blocks := []layout.Block{
		text("MEMORANDUM OF UNDERSTANDING", "B", 16, layout.AlignCenter, 10),
		text("This Memorandum of Understanding (MoU) is entered into on this "+FormatDate(f.EffectiveDate)+
			" BY AND BETWEEN:", "", mouBodySize, layout.AlignLeft, 6),
		text(strings.ToUpper(f.PartyAName), "B", mouBodySize, layout.AlignLeft, 1),
		text(`(Hereinafter referred to as the "FIRST PARTY")`, "I", 9, layout.AlignLeft, 6),
		text("AND", "B", mouBodySize, layout.AlignCenter, 6),
		text(strings.ToUpper(f.PartyBName), "B", mouBodySize, layout.AlignLeft, 1),
		text(`(Hereinafter referred to as the "SECOND PARTY")`, "I", 9, layout.AlignLeft, 10),
	}

	// Numbering follows the clauses actually present.
	for i, c := range f.clauses() {
		var body []layout.Block
		for _, p := range strings.Split(c.body, "\n") {
			if strings.TrimSpace(p) == "" {
				continue
			}
			body = append(body, layout.Paragraph{
				Runs: layout.Plain(p), Font: bc.serif("", mouBodySize), Spacing: mouClauseSpacing, Gap: 4,
			})
		}
		// The heading stays with the first paragraph of its clause.
		head := layout.KeepTogether{Blocks: []layout.Block{
			text(fmt.Sprintf("%d. %s", i+1, c.heading), "B", mouBodySize, layout.AlignLeft, 4),
			body[0],
		}}
		blocks = append(blocks, head)
		blocks = append(blocks, body[1:]...)
	}

	signature := func(src, name, role, party string, align layout.Align) []layout.Block {
		return []layout.Block{
			layout.Figure{Name: name, Source: src, Width: 40, Height: 15, Align: align, Gap: 2},
			text("__________________________", "", mouBodySize, align, 4),
			text("For ("+role+")", "", 10, align, 1),
			text(party, "B", 10, align, 2),
		}
	}
	blocks = append(blocks,
		layout.Spacer{Height: 15},
		layout.KeepTogether{Blocks: []layout.Block{
			text("IN WITNESS WHEREOF, the parties hereto have executed this MoU as of the date first above written.",
				"I", 10, layout.AlignLeft, 15),
			layout.Columns{Stacks: [][]layout.Block{
				signature(f.SignatureA, "signatureA", "First Party", f.PartyAName, layout.AlignLeft),
				signature(f.SignatureB, "signatureB", "Second Party", f.PartyBName, layout.AlignRight),
			}},
		}},
	)
	return blocks
}
