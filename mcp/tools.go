package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/lvillar/docgen"
	"github.com/lvillar/docgen/doctpl"
	"github.com/lvillar/docgen/invoice"
)

type generateInput struct {
	Kind           string         `json:"kind" jsonschema:"document kind: offer, certificate, mou or invoice"`
	Data           map[string]any `json:"data" jsonschema:"form payload of the document kind, described by docgen://kinds/{kind}"`
	Preview        bool           `json:"preview,omitempty" jsonschema:"generate a watermarked preview that is not recorded"`
	OutputDir      string         `json:"outputDir,omitempty" jsonschema:"directory to save the PDF in; the PDF is returned inline when omitted"`
	OrganizationID string         `json:"organizationId,omitempty"`
	UserID         string         `json:"userId,omitempty"`
}

type totalsInput struct {
	Items        []invoice.LineItem `json:"items"`
	TaxRate      float64            `json:"taxRate,omitempty" jsonschema:"tax percentage applied after the discount"`
	DiscountRate float64            `json:"discountRate,omitempty" jsonschema:"discount percentage of the subtotal"`
	Currency     string             `json:"currency,omitempty" jsonschema:"currency code of the formatted amounts, INR when omitted"`
}

type dateInput struct {
	Date string `json:"date" jsonschema:"date as YYYY-MM-DD or RFC 3339"`
}

func registerTools(s *sdk.Server, gen *docgen.Generator, log *zap.Logger) {
	addTool(s, log, &sdk.Tool{
		Name: "generate_document",
		Description: "Generate a business document PDF (" + strings.Join(kindNames(), ", ") + ") from its form payload. " +
			"Read docgen://kinds/{kind} for the payload fields. Returns the PDF as an embedded resource unless outputDir is set.",
	}, func(ctx context.Context, in generateInput) (*sdk.CallToolResult, error) {
		return generateDocument(ctx, gen, in)
	})
	addTool(s, log, &sdk.Tool{
		Name:        "compute_invoice_totals",
		Description: "Compute subtotal, discount, tax and grand total of invoice line items. Rates are percentages.",
	}, computeInvoiceTotals)
	addTool(s, log, &sdk.Tool{
		Name:        "format_date",
		Description: `Format an ISO date as it appears in documents, e.g. "2026-01-03" becomes "3rd January 2026".`,
	}, formatDate)
	addTool(s, log, &sdk.Tool{
		Name:        "list_document_kinds",
		Description: "List the document kinds that can be generated with their required payload fields.",
	}, listDocumentKinds)
}

func generateDocument(ctx context.Context, gen *docgen.Generator, in generateInput) (*sdk.CallToolResult, error) {
	data, err := json.Marshal(in.Data)
	if err != nil {
		return nil, fmt.Errorf("encoding data: %w", err)
	}
	req := docgen.Request{
		Kind:           in.Kind,
		Data:           data,
		Preview:        in.Preview,
		OrganizationID: in.OrganizationID,
		UserID:         in.UserID,
	}

	if in.OutputDir != "" {
		res, err := gen.GenerateFile(ctx, in.OutputDir, req)
		if err != nil {
			return nil, err
		}
		return textResult(fmt.Sprintf("%s created successfully: %s (%d pages, %d bytes)",
			res.Title, res.Path, res.Pages, len(res.Data))), nil
	}

	res, err := gen.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return &sdk.CallToolResult{
		Content: []sdk.Content{
			&sdk.TextContent{Text: fmt.Sprintf("%s generated (%s, %d pages, %d bytes)", res.Title, res.FileName, res.Pages, len(res.Data))},
			&sdk.EmbeddedResource{Resource: &sdk.ResourceContents{
				URI:      documentURI(res.FileName),
				MIMEType: "application/pdf",
				Blob:     res.Data,
			}},
		},
	}, nil
}

func documentURI(fileName string) string {
	return "docgen://documents/" + pathEscaper.Replace(fileName)
}

var pathEscaper = strings.NewReplacer("/", "-", `\`, "-", " ", "_")

func computeInvoiceTotals(_ context.Context, in totalsInput) (*sdk.CallToolResult, error) {
	if in.Currency == "" {
		in.Currency = invoice.DefaultCurrency
	}
	t := invoice.ComputeTotals(in.Items, in.TaxRate, in.DiscountRate)
	return jsonResult(map[string]any{
		"subtotal":       t.Subtotal,
		"discountAmount": t.DiscountAmount,
		"taxAmount":      t.TaxAmount,
		"grandTotal":     t.GrandTotal,
		"formatted": map[string]string{
			"subtotal":       invoice.FormatAmount(in.Currency, t.Subtotal),
			"discountAmount": invoice.FormatAmount(in.Currency, t.DiscountAmount),
			"taxAmount":      invoice.FormatAmount(in.Currency, t.TaxAmount),
			"grandTotal":     invoice.FormatAmount(in.Currency, t.GrandTotal),
		},
	})
}

func formatDate(_ context.Context, in dateInput) (*sdk.CallToolResult, error) {
	return textResult(doctpl.FormatDate(in.Date)), nil
}

func listDocumentKinds(context.Context, struct{}) (*sdk.CallToolResult, error) {
	kinds := make([]map[string]any, 0, len(doctpl.Kinds()))
	for _, k := range doctpl.Kinds() {
		kinds = append(kinds, map[string]any{
			"kind":     string(k),
			"schema":   schemaURI(k),
			"required": doctpl.RequiredFields(k),
		})
	}
	return jsonResult(kinds)
}

func kindNames() []string {
	var names []string
	for _, k := range doctpl.Kinds() {
		names = append(names, string(k))
	}
	return names
}

func textResult(s string) *sdk.CallToolResult {
	return &sdk.CallToolResult{Content: []sdk.Content{&sdk.TextContent{Text: s}}}
}

func jsonResult(v any) (*sdk.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return textResult(string(data)), nil
}
