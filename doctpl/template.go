package doctpl

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/lvillar/docgen/layout"
)

// BuildContext carries the inputs of a build that do not come from the form.
type BuildContext struct {
	// Now is the generation time, printed as the letter date.
	Now time.Time
	// Sans and Serif name the font families to use. Empty means Helvetica and
	// Times.
	Sans, Serif string
}

func (bc BuildContext) sans(style string, size float64) layout.Font {
	family := bc.Sans
	if family == "" {
		family = "Helvetica"
	}
	return layout.Font{Family: family, Style: style, Size: size}
}

func (bc BuildContext) serif(style string, size float64) layout.Font {
	family := bc.Serif
	if family == "" {
		family = "Times"
	}
	return layout.Font{Family: family, Style: style, Size: size}
}

// Template is a decoded form that can lay itself out.
type Template interface {
	Kind() Kind
	Validate() error
	Geometry() layout.Geometry
	Blocks(bc BuildContext) []layout.Block
	// Background returns ops drawn on every page.
	Background() []layout.Op
	Title() string
	FileName() string
}

// Document is a built template ready for the layout driver.
type Document struct {
	Kind       Kind
	Title      string
	FileName   string
	Geometry   layout.Geometry
	Blocks     []layout.Block
	Background []layout.Op
}

// Decode parses the JSON payload of kind into its template.
func Decode(kind Kind, data []byte) (Template, error) {
	var t Template
	switch kind {
	case KindOffer:
		t = &OfferForm{}
	case KindCertificate:
		t = &CertificateForm{}
	case KindMoU:
		t = &MoUForm{}
	case KindInvoice:
		t = &InvoiceForm{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("doctpl: decoding %s payload: %w", kind, err)
	}
	return t, nil
}

// Build decodes and validates a payload and returns the document to lay out.
func Build(kind Kind, data []byte, bc BuildContext) (*Document, error) {
	t, err := Decode(kind, data)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return NewDocument(t, bc), nil
}

// NewDocument builds the document of an already validated template.
func NewDocument(t Template, bc BuildContext) *Document {
	if bc.Now.IsZero() {
		bc.Now = time.Now()
	}
	return &Document{
		Kind:       t.Kind(),
		Title:      t.Title(),
		FileName:   t.FileName(),
		Geometry:   t.Geometry(),
		Blocks:     t.Blocks(bc),
		Background: t.Background(),
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// fileName joins parts with "_" after replacing whitespace runs in each part
// with "_", and appends ".pdf".
func fileName(parts ...string) string {
	for i, p := range parts {
		parts[i] = whitespaceRun.ReplaceAllString(p, "_")
	}
	return strings.Join(parts, "_") + ".pdf"
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
