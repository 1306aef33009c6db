package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrInvalidParameter is the sentinel error wrapped by [InvalidParameterError].
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNotFound is the sentinel error wrapped by [NotFoundError].
	ErrNotFound = errors.New("not found")
	// ErrAPI is the sentinel error wrapped by [APIError].
	ErrAPI = errors.New("flowdock api error")
)

// FieldError is used to indicate an error with a specific parameter.
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors represents a collection of field errors.
type FieldErrors []FieldError

// Error implements the error interface, returning a human-readable
// summary of all field errors.
func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + ": " + f.Err
	}
	return strings.Join(parts, "; ")
}

// Fields returns the fields that failed validation.
func (fe FieldErrors) Fields() map[string]string {
	m := make(map[string]string)
	for _, fld := range fe {
		m[fld.Field] = fld.Err
	}
	return m
}

// InvalidParameterError is returned before any network call when the
// caller supplied data breaks a precondition.
type InvalidParameterError struct {
	Fields FieldErrors
}

func newInvalidParameterError(field, reason string) *InvalidParameterError {
	return &InvalidParameterError{Fields: FieldErrors{{Field: field, Err: reason}}}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidParameter, e.Fields)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// NotFoundError is returned when the API answers 404, which usually
// means the token or resource is wrong.
type NotFoundError struct {
	StatusCode int
	Message    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %d, message: %s", ErrNotFound, e.StatusCode, e.Message)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// APIError is returned for any other unsuccessful response. Message and
// Errors come from the decoded body; Body holds the raw body when it
// could not be decoded.
type APIError struct {
	StatusCode int
	Message    string
	Errors     map[string][]string
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %d", e.Err, e.StatusCode)

	switch {
	case e.Message != "":
		fmt.Fprintf(&b, ", message: %s", e.Message)
	case e.Body != "":
		fmt.Fprintf(&b, ", body: %s", e.Body)
	default:
		b.WriteString(", (empty error body)")
	}

	for _, line := range e.FieldLines() {
		b.WriteString("\n")
		b.WriteString(line)
	}

	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// reasonSeparator joins the reasons reported for a single field.
const reasonSeparator = ","

// FieldLines flattens Errors into sorted "field: reason,reason" lines.
func (e *APIError) FieldLines() []string {
	lines := make([]string, 0, len(e.Errors))
	for _, field := range slices.Sorted(maps.Keys(e.Errors)) {
		lines = append(lines, field+": "+strings.Join(e.Errors[field], reasonSeparator))
	}
	return lines
}

// errorBody is the JSON document returned with non-2xx responses.
type errorBody struct {
	Message string                  `json:"message"`
	Errors  map[string]fieldReasons `json:"errors"`
}

// fieldReasons accepts either a single reason or a list of them.
type fieldReasons []string

func (r *fieldReasons) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*r = fieldReasons{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("decoding field reasons: %w", err)
	}
	*r = many

	return nil
}
