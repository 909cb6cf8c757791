package docgen

import (
	"errors"
	"fmt"

	"github.com/lvillar/docgen/doctpl"
)

// Sentinel errors for the generation stages.
var (
	ErrUnknownKind    = doctpl.ErrUnknownKind
	ErrInvalidPayload = errors.New("docgen: invalid payload")
	ErrRecord         = errors.New("docgen: recording submission failed")
	ErrRender         = errors.New("docgen: rendering failed")
)

// DocError reports a failed generation stage for one document kind.
type DocError struct {
	Op   string // "parse", "decode", "validate", "record", "render", "write"
	Kind string
	Err  error
}

func (e *DocError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("docgen.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("docgen.%s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *DocError) Unwrap() error {
	return e.Err
}

func newDocError(op string, kind doctpl.Kind, err error) *DocError {
	return &DocError{Op: op, Kind: string(kind), Err: err}
}
