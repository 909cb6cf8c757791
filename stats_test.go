package docgen_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lvillar/docgen"
	"github.com/lvillar/docgen/doctpl"
)

func TestSummarize(t *testing.T) {
	subs := []docgen.Submission{
		{Kind: "invoice", Data: json.RawMessage(`{"totals":{"grandTotal":1062}}`)},
		{Kind: "invoice", Data: json.RawMessage(`{"totals":{"grandTotal":500.5}}`)},
		{Kind: "invoice", Data: json.RawMessage(`{"invoiceNumber":"INV-1"}`)},
		{Kind: "offer", Data: json.RawMessage(`{"totals":{"grandTotal":99}}`)},
		{Kind: "MoU", Data: json.RawMessage(`{}`)},
		{Kind: "receipt", Data: json.RawMessage(`{"totals":{"grandTotal":7}}`)},
		{Kind: "invoice", Data: json.RawMessage(`not json`)},
	}
	st := docgen.Summarize(subs)
	if st.TotalRevenue != 1562.5 {
		t.Errorf("TotalRevenue = %v, want 1562.5", st.TotalRevenue)
	}
	want := map[doctpl.Kind]int{
		doctpl.KindOffer:       1,
		doctpl.KindCertificate: 0,
		doctpl.KindMoU:         1,
		doctpl.KindInvoice:     4,
	}
	for k, n := range want {
		if st.Counts[k] != n {
			t.Errorf("Counts[%s] = %d, want %d", k, st.Counts[k], n)
		}
	}
	if len(st.Counts) != len(want) {
		t.Errorf("Counts = %v", st.Counts)
	}
}

func TestSummarizeRecordedInvoices(t *testing.T) {
	rec := &memRecorder{}
	gen := docgen.New(docgen.WithClock(clock), docgen.WithRecorder(rec))
	for i := 0; i < 2; i++ {
		if _, err := gen.Generate(context.Background(), docgen.Request{Kind: "invoice", Data: []byte(invoicePayload)}); err != nil {
			t.Fatalf("Generate: %v", err)
		}
	}
	if _, err := gen.Generate(context.Background(), docgen.Request{Kind: "invoice", Data: []byte(invoicePayload), Preview: true}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	st := docgen.Summarize(rec.subs)
	if st.TotalRevenue != 2124 || st.Counts[doctpl.KindInvoice] != 2 {
		t.Errorf("got %+v", st)
	}
}
