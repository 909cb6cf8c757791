// Package doctpl turns submitted business forms into laid-out documents.
//
// Each document kind (offer letter, certificate, memorandum of understanding,
// invoice) has a typed form payload decoded from JSON, validation rules and a
// template that emits layout blocks. The payload field names match the JSON
// posted by the form UI.
//
// Example JSON for a certificate:
//
//	{
//	  "recipientName": "Jane Smith",
//	  "achievementTitle": "Excellence in Go",
//	  "issuingOrganization": "Acme Academy",
//	  "issueDate": "2026-01-03",
//	  "description": "For outstanding performance."
//	}
package doctpl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lvillar/docgen/invoice"
)

// Kind identifies a document type.
type Kind string

// Document kinds.
const (
	KindOffer       Kind = "offer"
	KindCertificate Kind = "certificate"
	KindMoU         Kind = "mou"
	KindInvoice     Kind = "invoice"
)

// Kinds lists every supported kind.
func Kinds() []Kind {
	return []Kind{KindOffer, KindCertificate, KindMoU, KindInvoice}
}

// ErrUnknownKind is returned for a kind outside Kinds.
var ErrUnknownKind = errors.New("doctpl: unknown document kind")

// ErrInvalidForm is matched by every validation failure.
var ErrInvalidForm = errors.New("doctpl: invalid form")

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// FieldError reports an invalid form field.
type FieldError struct {
	Kind   Kind
	Field  string // JSON field name
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("doctpl: %s: %s %s", e.Kind, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidForm
}


// Amount is a free-form amount that accepts a JSON string or number.
type Amount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("doctpl: amount must be a string or number: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// Offer types.
const (
	OfferInternship = "internship"
	OfferFullTime   = "fulltime"
)

// OfferForm is the payload of an offer letter.
type OfferForm struct {
	OfferType                   string `json:"offerType,omitempty"` // internship (default) or fulltime
	CompanyName                 string `json:"companyName"`
	CompanyAddress              string `json:"companyAddress,omitempty"`
	CompanyLogo                 string `json:"companyLogo,omitempty"` // data URL
	AuthorizedPersonName        string `json:"authorizedPersonName,omitempty"`
	AuthorizedPersonDesignation string `json:"authorizedPersonDesignation,omitempty"`
	ContactEmail                string `json:"contactEmail,omitempty"`
	ContactPhone                string `json:"contactPhone,omitempty"`
	StudentName                 string `json:"studentName"`
	Signature                   string `json:"signature,omitempty"` // data URL
	StudentAddress              string `json:"studentAddress,omitempty"`
	Email                       string `json:"email,omitempty"`
	Phone                       string `json:"phone,omitempty"`
	Role                        string `json:"role"`
	Department                  string `json:"department,omitempty"`
	SupervisorName              string `json:"supervisorName,omitempty"`
	Responsibilities            string `json:"responsibilities,omitempty"`
	StartDate                   string `json:"startDate"`
	EndDate                     string `json:"endDate,omitempty"`
	AcceptanceDeadline          string `json:"acceptanceDeadline,omitempty"`
	IsPaid                      bool   `json:"isPaid,omitempty"`
	Stipend                     Amount `json:"stipend,omitempty"`
	Currency                    string `json:"currency,omitempty"`
	PaymentFrequency            string `json:"paymentFrequency,omitempty"` // Monthly, Once, Annual
}

// CertificateForm is the payload of a certificate of achievement.
type CertificateForm struct {
	RecipientName        string `json:"recipientName"`
	AchievementTitle     string `json:"achievementTitle"`
	IssuingOrganization  string `json:"issuingOrganization"`
	IssueDate            string `json:"issueDate"`
	Description          string `json:"description,omitempty"`
	AuthorizedSignatory  string `json:"authorizedSignatory,omitempty"`
	SignatoryDesignation string `json:"signatoryDesignation,omitempty"`
	Logo                 string `json:"logo,omitempty"`
	Signature            string `json:"signature,omitempty"`
	// VerificationCode is printed as a QR code when set.
	VerificationCode string `json:"verificationCode,omitempty"`
}

// MoUForm is the payload of a memorandum of understanding.
type MoUForm struct {
	PartyAName      string `json:"partyAName"`
	PartyBName      string `json:"partyBName"`
	EffectiveDate   string `json:"effectiveDate"`
	TerminationDate string `json:"terminationDate,omitempty"`
	Purpose         string `json:"purpose"`
	Confidentiality bool   `json:"confidentiality,omitempty"`
	Jurisdiction    string `json:"jurisdiction,omitempty"`
	GoverningLaw    string `json:"governingLaw,omitempty"` // India when empty
	OtherClauses    string `json:"otherClauses,omitempty"`
	SignatureA      string `json:"signatureA,omitempty"`
	SignatureB      string `json:"signatureB,omitempty"`
}

// InvoiceForm is the payload of an invoice. Totals are always recomputed from
// Items and the rates.
type InvoiceForm struct {
	OrgName       string             `json:"orgName,omitempty"`
	ClientName    string             `json:"clientName,omitempty"`
	ClientEmail   string             `json:"clientEmail,omitempty"`
	InvoiceNumber string             `json:"invoiceNumber"`
	InvoiceDate   string             `json:"invoiceDate,omitempty"`
	DueDate       string             `json:"dueDate,omitempty"`
	Items         []invoice.LineItem `json:"items,omitempty"`
	TaxRate       float64            `json:"taxRate,omitempty"`
	DiscountRate  float64            `json:"discountRate,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Currency      string             `json:"currency,omitempty"` // INR when empty
}

// Totals computes the invoice totals.
func (f *InvoiceForm) Totals() invoice.Totals {
	return invoice.ComputeTotals(f.Items, f.TaxRate, f.DiscountRate)
}
