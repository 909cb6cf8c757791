package docgen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lvillar/docgen/doctpl"
)

// Submission is what a Generator records for every final (non-preview)
// document: the validated form payload and who submitted it. Invoice payloads
// carry their computed totals under "totals".
type Submission struct {
	Kind           string          `json:"kind"`
	Title          string          `json:"title"`
	Data           json.RawMessage `json:"data"`
	OrganizationID string          `json:"organizationId,omitempty"`
	UserID         string          `json:"userId,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Recorder persists submissions. Implementations assign their own record ids.
type Recorder interface {
	Record(ctx context.Context, s Submission) error
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(ctx context.Context, s Submission) error

// Record calls f(ctx, s).
func (f RecorderFunc) Record(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// submissionData returns the payload to record for tpl. Invoices get their
// totals recomputed and embedded; other payloads are copied as submitted.
func submissionData(tpl doctpl.Template, raw []byte) (json.RawMessage, error) {
	inv, ok := tpl.(*doctpl.InvoiceForm)
	if !ok {
		return append(json.RawMessage(nil), raw...), nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("docgen: decoding invoice payload: %w", err)
	}
	totals, err := json.Marshal(inv.Totals())
	if err != nil {
		return nil, fmt.Errorf("docgen: encoding invoice totals: %w", err)
	}
	fields["totals"] = totals
	return json.Marshal(fields)
}
