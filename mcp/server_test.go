package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lvillar/docgen"
)

// connect serves a new server over an in-memory transport and returns a client
// session connected to it.
func connect(t *testing.T, log *zap.Logger) *sdk.ClientSession {
	t.Helper()
	ctx := context.Background()

	srv, err := NewServer(docgen.New(), log)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	clientTransport, serverTransport := sdk.NewInMemoryTransports()
	ss, err := srv.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server Connect: %v", err)
	}
	t.Cleanup(func() { ss.Close() })

	client := sdk.NewClient(&sdk.Implementation{Name: "test", Version: "1.0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client Connect: %v", err)
	}
	t.Cleanup(func() { cs.Close() })
	return cs
}

func callTool(t *testing.T, cs *sdk.ClientSession, name string, args map[string]any) *sdk.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	return res
}

func text(t *testing.T, res *sdk.CallToolResult, i int) string {
	t.Helper()
	if len(res.Content) <= i {
		t.Fatalf("result has %d content blocks, want more than %d", len(res.Content), i)
	}
	tc, ok := res.Content[i].(*sdk.TextContent)
	if !ok {
		t.Fatalf("content %d is %T, want text", i, res.Content[i])
	}
	return tc.Text
}

var invoiceData = map[string]any{
	"invoiceNumber": "INV-42",
	"clientName":    "Globex Corp",
	"items": []any{
		map[string]any{"description": "Consulting", "quantity": 2, "price": 500},
	},
	"taxRate":      18,
	"discountRate": 10,
}

func TestServerToolsList(t *testing.T) {
	cs := connect(t, nil)

	res, err := cs.ListTools(context.Background(), &sdk.ListToolsParams{})
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		if tool.InputSchema == nil {
			t.Errorf("%s has no input schema", tool.Name)
		}
	}
	sort.Strings(names)
	want := "compute_invoice_totals,format_date,generate_document,list_document_kinds"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("tools = %s, want %s", got, want)
	}
}

func TestServerResourcesList(t *testing.T) {
	cs := connect(t, nil)

	res, err := cs.ListResources(context.Background(), &sdk.ListResourcesParams{})
	if err != nil {
		t.Fatal(err)
	}
	var uris []string
	for _, r := range res.Resources {
		uris = append(uris, r.URI)
		if r.MIMEType != schemaMIME {
			t.Errorf("%s has MIME type %q", r.URI, r.MIMEType)
		}
	}
	sort.Strings(uris)
	want := "docgen://kinds/certificate,docgen://kinds/invoice,docgen://kinds/mou,docgen://kinds/offer"
	if got := strings.Join(uris, ","); got != want {
		t.Errorf("resources = %s, want %s", got, want)
	}
}

type schemaDoc struct {
	Properties map[string]struct {
		Type any `json:"type"`
	} `json:"properties"`
	Required []string `json:"required"`
}

func readSchema(t *testing.T, cs *sdk.ClientSession, uri string) schemaDoc {
	t.Helper()
	res, err := cs.ReadResource(context.Background(), &sdk.ReadResourceParams{URI: uri})
	if err != nil {
		t.Fatalf("ReadResource(%s): %v", uri, err)
	}
	if len(res.Contents) != 1 {
		t.Fatalf("got %d contents", len(res.Contents))
	}
	var doc schemaDoc
	if err := json.Unmarshal([]byte(res.Contents[0].Text), &doc); err != nil {
		t.Fatalf("decoding schema: %v", err)
	}
	return doc
}

func TestServerReadSchema(t *testing.T) {
	cs := connect(t, nil)

	inv := readSchema(t, cs, "docgen://kinds/invoice")
	if inv.Properties["taxRate"].Type != "number" {
		t.Errorf("taxRate type = %v", inv.Properties["taxRate"].Type)
	}
	if _, ok := inv.Properties["items"]; !ok {
		t.Error("items missing from invoice schema")
	}
	if strings.Join(inv.Required, ",") != "invoiceNumber" {
		t.Errorf("required = %v", inv.Required)
	}

	offer := readSchema(t, cs, "docgen://kinds/offer")
	types, _ := offer.Properties["stipend"].Type.([]any)
	if len(types) != 2 || types[0] != "string" || types[1] != "number" {
		t.Errorf("stipend type = %v", offer.Properties["stipend"].Type)
	}
	if strings.Join(offer.Required, ",") != "companyName,studentName,role,startDate" {
		t.Errorf("required = %v", offer.Required)
	}
}

func TestServerPing(t *testing.T) {
	cs := connect(t, nil)
	if err := cs.Ping(context.Background(), &sdk.PingParams{}); err != nil {
		t.Fatal(err)
	}
}

func TestServerUnknownTool(t *testing.T) {
	cs := connect(t, nil)
	_, err := cs.CallTool(context.Background(), &sdk.CallToolParams{Name: "nonexistent_tool", Arguments: map[string]any{}})
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestGenerateDocumentTool(t *testing.T) {
	cs := connect(t, nil)

	res := callTool(t, cs, "generate_document", map[string]any{"kind": "invoice", "data": invoiceData})
	if res.IsError || len(res.Content) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if summary := text(t, res, 0); !strings.Contains(summary, "Invoice_Globex_Corp_INV-42.pdf") {
		t.Errorf("summary = %q", summary)
	}

	er, ok := res.Content[1].(*sdk.EmbeddedResource)
	if !ok || er.Resource == nil {
		t.Fatalf("content 1 is %T, want an embedded resource", res.Content[1])
	}
	if er.Resource.MIMEType != "application/pdf" || er.Resource.URI != "docgen://documents/Invoice_Globex_Corp_INV-42.pdf" {
		t.Errorf("resource = %s %s", er.Resource.URI, er.Resource.MIMEType)
	}
	if !bytes.HasPrefix(er.Resource.Blob, []byte("%PDF-")) {
		t.Error("embedded blob is not a PDF")
	}

	// The PDF travels nested under "resource" as a base64 blob.
	raw, err := json.Marshal(res.Content[1])
	if err != nil {
		t.Fatal(err)
	}
	var wire map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatal(err)
	}
	var nested map[string]any
	if err := json.Unmarshal(wire["resource"], &nested); err != nil {
		t.Fatalf("no nested resource in %s", raw)
	}
	if _, ok := wire["data"]; ok {
		t.Errorf("content block carries top-level data: %s", raw)
	}
	if blob, _ := nested["blob"].(string); blob == "" || nested["mimeType"] != "application/pdf" {
		t.Errorf("nested resource = %v", nested)
	}
}

func TestGenerateDocumentToFile(t *testing.T) {
	cs := connect(t, nil)
	dir := t.TempDir()

	res := callTool(t, cs, "generate_document", map[string]any{
		"kind":      "invoice",
		"data":      invoiceData,
		"preview":   true,
		"outputDir": dir,
	})
	if res.IsError {
		t.Fatalf("unexpected result: %s", text(t, res, 0))
	}
	path := filepath.Join(dir, "Invoice_Globex_Corp_INV-42.pdf")
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text(t, res, 0), path) {
		t.Errorf("summary %q does not name %s", text(t, res, 0), path)
	}
}

func TestGenerateDocumentFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cs := connect(t, zap.New(core))

	res := callTool(t, cs, "generate_document", map[string]any{"kind": "receipt", "data": map[string]any{}})
	if !res.IsError || !strings.Contains(text(t, res, 0), "unknown document kind") {
		t.Fatalf("unexpected result: %+v", res)
	}
	res = callTool(t, cs, "generate_document", map[string]any{"kind": "invoice", "data": map[string]any{}})
	if !res.IsError || !strings.Contains(text(t, res, 0), "invoiceNumber is required") {
		t.Fatalf("unexpected result: %+v", res)
	}
	if logs.FilterField(zap.String("tool", "generate_document")).Len() != 2 {
		t.Errorf("logs = %v", logs.All())
	}
}

func TestComputeInvoiceTotalsTool(t *testing.T) {
	cs := connect(t, nil)

	res := callTool(t, cs, "compute_invoice_totals", map[string]any{
		"items":        invoiceData["items"],
		"taxRate":      18,
		"discountRate": 10,
	})
	if res.IsError {
		t.Fatalf("unexpected result: %s", text(t, res, 0))
	}
	var totals struct {
		Subtotal   float64           `json:"subtotal"`
		GrandTotal float64           `json:"grandTotal"`
		Formatted  map[string]string `json:"formatted"`
	}
	if err := json.Unmarshal([]byte(text(t, res, 0)), &totals); err != nil {
		t.Fatal(err)
	}
	if totals.Subtotal != 1000 || totals.GrandTotal != 1062 {
		t.Errorf("totals = %+v", totals)
	}
	if totals.Formatted["grandTotal"] != "INR 1,062.00" {
		t.Errorf("formatted = %v", totals.Formatted)
	}
}

func TestFormatDateTool(t *testing.T) {
	cs := connect(t, nil)

	res := callTool(t, cs, "format_date", map[string]any{"date": "2026-01-03"})
	if got := text(t, res, 0); got != "3rd January 2026" {
		t.Errorf("got %q", got)
	}
}

func TestListDocumentKindsTool(t *testing.T) {
	cs := connect(t, nil)

	res := callTool(t, cs, "list_document_kinds", map[string]any{})
	var kinds []struct {
		Kind     string   `json:"kind"`
		Schema   string   `json:"schema"`
		Required []string `json:"required"`
	}
	if err := json.Unmarshal([]byte(text(t, res, 0)), &kinds); err != nil {
		t.Fatal(err)
	}
	if len(kinds) != 4 || kinds[0].Kind != "offer" || kinds[0].Schema != "docgen://kinds/offer" {
		t.Errorf("kinds = %+v", kinds)
	}
	if strings.Join(kinds[3].Required, ",") != "invoiceNumber" {
		t.Errorf("invoice required = %v", kinds[3].Required)
	}
}
