package docgen

import (
	"encoding/json"

	"github.com/lvillar/docgen/doctpl"
)

// Stats summarizes recorded submissions.
type Stats struct {
	// TotalRevenue is the sum of the grand totals of recorded invoices.
	TotalRevenue float64
	// Counts holds the number of submissions per kind. Every kind is present.
	Counts map[doctpl.Kind]int
}

// Summarize counts submissions per kind and adds up invoice revenue from the
// totals embedded in invoice records. Submissions of unknown kinds are ignored,
// and an invoice without readable totals counts towards Counts only.
func Summarize(subs []Submission) Stats {
	st := Stats{Counts: make(map[doctpl.Kind]int, len(doctpl.Kinds()))}
	for _, k := range doctpl.Kinds() {
		st.Counts[k] = 0
	}
	for _, s := range subs {
		kind, err := doctpl.ParseKind(s.Kind)
		if err != nil {
			continue
		}
		st.Counts[kind]++
		if kind != doctpl.KindInvoice {
			continue
		}
		var rec struct {
			Totals struct {
				GrandTotal float64 `json:"grandTotal"`
			} `json:"totals"`
		}
		if json.Unmarshal(s.Data, &rec) == nil {
			st.TotalRevenue += rec.Totals.GrandTotal
		}
	}
	return st
}
