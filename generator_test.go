package docgen_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lvillar/docgen"
	"github.com/lvillar/docgen/doctpl"
)

var fixedNow = time.Date(2026, time.January, 3, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

const invoicePayload = `{
	"orgName": "Acme Ltd",
	"clientName": "Globex Corp",
	"clientEmail": "billing@globex.example",
	"invoiceNumber": "INV-42",
	"invoiceDate": "2026-01-03",
	"dueDate": "2026-01-10",
	"items": [{"description": "Consulting", "quantity": 2, "price": 500}],
	"taxRate": 18,
	"discountRate": 10,
	"notes": "Payment due within 7 days."
}`

type memRecorder struct {
	mu   sync.Mutex
	subs []docgen.Submission
	err  error
}

func (m *memRecorder) Record(_ context.Context, s docgen.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.subs = append(m.subs, s)
	return nil
}

func TestGenerateInvoice(t *testing.T) {
	rec := &memRecorder{}
	gen := docgen.New(docgen.WithClock(clock), docgen.WithRecorder(rec))
	res, err := gen.Generate(context.Background(), docgen.Request{
		Kind: "invoice", Data: []byte(invoicePayload), OrganizationID: "org-1", UserID: "user-7",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(res.Data, []byte("%PDF-")) {
		t.Fatalf("not a PDF: %q", res.Data[:8])
	}
	if res.FileName != "Invoice_Globex_Corp_INV-42.pdf" {
		t.Errorf("FileName = %q", res.FileName)
	}
	if res.Pages != 1 || res.Kind != doctpl.KindInvoice || res.Preview {
		t.Errorf("got %+v", res)
	}
	if len(rec.subs) != 1 {
		t.Fatalf("recorded %d submissions, want 1", len(rec.subs))
	}
	sub := rec.subs[0]
	if sub.Kind != "invoice" || sub.OrganizationID != "org-1" || sub.UserID != "user-7" || !sub.CreatedAt.Equal(fixedNow) {
		t.Errorf("submission = %+v", sub)
	}
	if sub.Title != "Invoice INV-42 - Globex Corp" {
		t.Errorf("Title = %q", sub.Title)
	}
	var form struct {
		doctpl.InvoiceForm
		Totals struct {
			Subtotal   float64 `json:"subtotal"`
			GrandTotal float64 `json:"grandTotal"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(sub.Data, &form); err != nil || form.InvoiceNumber != "INV-42" {
		t.Errorf("recorded data does not round trip: %v %+v", err, form)
	}
	if form.Totals.Subtotal != 1000 || form.Totals.GrandTotal != 1062 {
		t.Errorf("recorded totals = %+v", form.Totals)
	}
}

func TestPreviewNeverRecords(t *testing.T) {
	rec := &memRecorder{}
	gen := docgen.New(docgen.WithRecorder(rec), docgen.WithPreviewWatermark("PREVIEW"), docgen.WithCompression(false))
	res, err := gen.Generate(context.Background(), docgen.Request{Kind: "invoice", Data: []byte(invoicePayload), Preview: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(rec.subs) != 0 {
		t.Errorf("preview recorded %d submissions", len(rec.subs))
	}
	if !res.Preview || !bytes.Contains(res.Data, []byte("(PREVIEW) Tj")) {
		t.Error("preview watermark missing")
	}

	res, err = gen.Generate(context.Background(), docgen.Request{Kind: "invoice", Data: []byte(invoicePayload)})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if bytes.Contains(res.Data, []byte("(PREVIEW) Tj")) {
		t.Error("final document carries the preview watermark")
	}
}

func TestRecorderErrorAborts(t *testing.T) {
	storeDown := errors.New("store unavailable")
	core, logs := observer.New(zapcore.InfoLevel)
	gen := docgen.New(docgen.WithRecorder(&memRecorder{err: storeDown}), docgen.WithLogger(zap.New(core)))

	res, err := gen.Generate(context.Background(), docgen.Request{Kind: "invoice", Data: []byte(invoicePayload)})
	if res != nil {
		t.Error("got a result despite the recorder failure")
	}
	if !errors.Is(err, docgen.ErrRecord) || !errors.Is(err, storeDown) {
		t.Fatalf("got %v", err)
	}
	var de *docgen.DocError
	if !errors.As(err, &de) || de.Op != "record" || de.Kind != "invoice" {
		t.Errorf("got %#v", err)
	}
	if logs.FilterMessage("recording submission").Len() != 1 {
		t.Errorf("logs = %v", logs.All())
	}
	if logs.FilterMessage("document generated").Len() != 0 {
		t.Error("document generated after a recorder failure")
	}
}

func TestRecorderFunc(t *testing.T) {
	var got []string
	rec := docgen.RecorderFunc(func(_ context.Context, s docgen.Submission) error {
		got = append(got, s.Kind)
		return nil
	})
	gen := docgen.New(docgen.WithRecorder(rec))
	if _, err := gen.Generate(context.Background(), docgen.Request{Kind: "INVOICE", Data: []byte(invoicePayload)}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "invoice" {
		t.Errorf("got %v", got)
	}
}

func TestGenerateErrors(t *testing.T) {
	gen := docgen.New()
	tests := []struct {
		name string
		req  docgen.Request
		want []error
		op   string
	}{
		{"unknown kind", docgen.Request{Kind: "receipt", Data: []byte(`{}`)}, []error{docgen.ErrUnknownKind}, "parse"},
		{"malformed", docgen.Request{Kind: "invoice", Data: []byte(`{"items": 3}`)}, []error{docgen.ErrInvalidPayload}, "decode"},
		{"missing field", docgen.Request{Kind: "offer", Data: []byte(`{"companyName": "Acme"}`)},
			[]error{docgen.ErrInvalidPayload, doctpl.ErrInvalidForm}, "validate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(context.Background(), tt.req)
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("got %v, want %v", err, want)
				}
			}
			var de *docgen.DocError
			if !errors.As(err, &de) || de.Op != tt.op {
				t.Errorf("got %#v, want op %q", err, tt.op)
			}
		})
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := docgen.New().Generate(ctx, docgen.Request{Kind: "invoice", Data: []byte(invoicePayload)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v", err)
	}
}

func TestGeneratedLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	gen := docgen.New(docgen.WithLogger(zap.New(core)))
	if _, err := gen.Generate(context.Background(), docgen.Request{Kind: "invoice", Data: []byte(invoicePayload)}); err != nil {
		t.Fatal(err)
	}
	entries := logs.FilterMessage("document generated").All()
	if len(entries) != 1 {
		t.Fatalf("logs = %v", logs.All())
	}
	fields := entries[0].ContextMap()
	if fields["kind"] != "invoice" || fields["pages"] != int64(1) || fields["file"] != "Invoice_Globex_Corp_INV-42.pdf" {
		t.Errorf("fields = %v", fields)
	}
}

func TestGenerateAllKinds(t *testing.T) {
	payloads := map[string]string{
		"offer": `{"offerType": "internship", "companyName": "Acme", "studentName": "Jane Smith",
			"role": "Analyst", "startDate": "2026-02-01", "endDate": "2026-07-31", "isPaid": true, "stipend": 15000}`,
		"certificate": `{"recipientName": "Ravi Kumar", "achievementTitle": "Excellence in Go",
			"issuingOrganization": "Acme Academy", "issueDate": "2026-03-21", "verificationCode": "CERT-2026-001"}`,
		"mou": `{"partyAName": "Acme Ltd", "partyBName": "Beta Labs", "effectiveDate": "2026-01-03",
			"purpose": "joint research", "confidentiality": true}`,
		"invoice": invoicePayload,
	}
	gen := docgen.New(docgen.WithClock(clock))
	for kind, payload := range payloads {
		t.Run(kind, func(t *testing.T) {
			res, err := gen.Generate(context.Background(), docgen.Request{Kind: kind, Data: []byte(payload)})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if res.Pages < 1 || !bytes.HasPrefix(res.Data, []byte("%PDF-")) {
				t.Errorf("got %d pages, %d bytes", res.Pages, len(res.Data))
			}
		})
	}
}

func TestInvoicePaginates(t *testing.T) {
	var items []string
	for i := 0; i < 80; i++ {
		items = append(items, fmt.Sprintf(`{"description": "Service block %d", "quantity": 1, "price": 100}`, i+1))
	}
	payload := fmt.Sprintf(`{"invoiceNumber": "INV-9", "items": [%s]}`, strings.Join(items, ","))
	res, err := docgen.New().Generate(context.Background(), docgen.Request{Kind: "invoice", Data: []byte(payload)})
	if err != nil {
		t.Fatal(err)
	}
	if res.Pages < 2 {
		t.Errorf("80 items fit on %d page(s)", res.Pages)
	}
}

func TestGenerateFile(t *testing.T) {
	dir := t.TempDir()
	payload := `{"invoiceNumber": "INV/7", "clientName": "Globex Corp"}`
	res, err := docgen.New().GenerateFile(context.Background(), dir, docgen.Request{Kind: "invoice", Data: []byte(payload)})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "Invoice_Globex_Corp_INV-7.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, res.Data) {
		t.Error("written file differs from the result")
	}
}

func TestConcurrentGenerate(t *testing.T) {
	gen := docgen.New(docgen.WithClock(clock))
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gen.Generate(context.Background(), docgen.Request{Kind: "invoice", Data: []byte(invoicePayload), Preview: true})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Error(err)
		}
	}
}
