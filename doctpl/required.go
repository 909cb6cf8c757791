package doctpl

import (
	"reflect"
	"strings"
)

var formTypes = map[Kind]reflect.Type{
	KindOffer:       reflect.TypeOf(OfferForm{}),
	KindCertificate: reflect.TypeOf(CertificateForm{}),
	KindMoU:         reflect.TypeOf(MoUForm{}),
	KindInvoice:     reflect.TypeOf(InvoiceForm{}),
}

// FormType returns the payload struct type of kind, or nil for an unknown kind.
func FormType(kind Kind) reflect.Type {
	return formTypes[kind]
}

// RequiredFields returns the JSON names of the fields a kind's payload cannot be
// submitted without, in declaration order. A field is required when it is a
// string without the omitempty option in its json tag.
func RequiredFields(kind Kind) []string {
	t := formTypes[kind]
	if t == nil {
		return nil
	}
	var names []string
	for i := 0; i < t.NumField(); i++ {
		if name, ok := requiredField(t.Field(i)); ok {
			names = append(names, name)
		}
	}
	return names
}

func requiredField(f reflect.StructField) (string, bool) {
	if f.Type.Kind() != reflect.String {
		return "", false
	}
	name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return "", false
	}
	for _, o := range strings.Split(opts, ",") {
		if o == "omitempty" {
			return "", false
		}
	}
	return name, true
}

// checkRequired reports the first required field of form that is blank.
func checkRequired(kind Kind, form any) error {
	v := reflect.Indirect(reflect.ValueOf(form))
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, ok := requiredField(t.Field(i))
		if ok && strings.TrimSpace(v.Field(i).String()) == "" {
			return &FieldError{Kind: kind, Field: name, Reason: "is required"}
		}
	}
	return nil
}
