package model

import "errors"

// ErrorKind is the stable, machine-distinguishable tag of a compile
// failure. Kinds are a closed taxonomy; handlers switch on them.
type ErrorKind string

const (
	ErrUnsupportedLocation     ErrorKind = "unsupported_location"
	ErrMissingCoordinates      ErrorKind = "missing_coordinates"
	ErrMissingAnchor           ErrorKind = "missing_anchor"
	ErrMissingFloatID          ErrorKind = "missing_float_id"
	ErrOutOfRangeYear          ErrorKind = "out_of_range_year"
	ErrSchemaColumnUnavailable ErrorKind = "schema_column_unavailable"
)

// CompileError carries a taxonomy kind plus a user-facing message.
// Never a raw stack trace or internal exception text.
type CompileError struct {
	Kind    ErrorKind
	Message string
}

func (e *CompileError) Error() string { return e.Message }

// Recoverable reports whether the boundary layer can degrade the error
// into a suggestion flow instead of surfacing it as a failure.
func (e *CompileError) Recoverable() bool { return e.Kind == ErrMissingFloatID }

// AsCompileError unwraps err into a *CompileError if it is one.
func AsCompileError(err error) (*CompileError, bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
