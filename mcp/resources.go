package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lvillar/docgen/doctpl"
)

const schemaMIME = "application/schema+json"

var formSchemas = map[doctpl.Kind]func() (*jsonschema.Schema, error){
	doctpl.KindOffer:       schemaFor[doctpl.OfferForm],
	doctpl.KindCertificate: schemaFor[doctpl.CertificateForm],
	doctpl.KindMoU:         schemaFor[doctpl.MoUForm],
	doctpl.KindInvoice:     schemaFor[doctpl.InvoiceForm],
}

func schemaFor[T any]() (*jsonschema.Schema, error) {
	return jsonschema.For[T](nil)
}

func schemaURI(k doctpl.Kind) string {
	return "docgen://kinds/" + string(k)
}

// registerResources adds a JSON Schema resource for each document kind's form
// payload, under docgen://kinds/{kind}.
func registerResources(s *sdk.Server) error {
	for _, k := range doctpl.Kinds() {
		schema, err := formSchema(k)
		if err != nil {
			return err
		}
		text, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("mcp: encoding %s schema: %w", k, err)
		}
		uri := schemaURI(k)
		s.AddResource(&sdk.Resource{
			URI:         uri,
			Name:        fmt.Sprintf("%s form schema", k),
			Description: fmt.Sprintf("JSON Schema of the %s payload accepted by generate_document.", k),
			MIMEType:    schemaMIME,
		}, func(context.Context, *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
			return &sdk.ReadResourceResult{Contents: []*sdk.ResourceContents{{
				URI:      uri,
				MIMEType: schemaMIME,
				Text:     string(text),
			}}}, nil
		})
	}
	return nil
}

// formSchema infers the payload schema of k. Required fields come from the same
// tags form validation reads. Unknown fields are allowed, as form clients send
// UI state along with the payload.
func formSchema(k doctpl.Kind) (*jsonschema.Schema, error) {
	schema, err := formSchemas[k]()
	if err != nil {
		return nil, fmt.Errorf("mcp: inferring %s schema: %w", k, err)
	}
	schema.Schema = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = string(k)
	schema.Required = doctpl.RequiredFields(k)
	schema.AdditionalProperties = nil
	widenAmounts(schema, doctpl.FormType(k))
	return schema, nil
}

var amountType = reflect.TypeOf(doctpl.Amount(""))

// widenAmounts lets Amount properties be numbers as well as strings.
func widenAmounts(schema *jsonschema.Schema, t reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type != amountType {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if p := schema.Properties[name]; p != nil {
			p.Type = ""
			p.Types = []string{"string", "number"}
		}
	}
}
