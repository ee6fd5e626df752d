package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField reports a snapshot lacking a required attribute.
	ErrMissingField = errors.New("missing field")
	// ErrZeroMaximum reports a snapshot whose maximum capacity is zero.
	ErrZeroMaximum = errors.New("maximum battery capacity is zero")
)

// ParseError reports a non-numeric value in a numeric field.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RecordError wraps a problem with a single record. Sources return it for
// records that can be skipped; any other error ends the run.
type RecordError struct {
	VehicleID string
	Err       error
}

func (e *RecordError) Error() string {
	if e.VehicleID == "" {
		return fmt.Sprintf("record: %v", e.Err)
	}
	return fmt.Sprintf("record %s: %v", e.VehicleID, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// MissingField builds the RecordError for an absent attribute.
func MissingField(vehicleID, field string) error {
	return &RecordError{VehicleID: vehicleID, Err: fmt.Errorf("%w %s", ErrMissingField, field)}
}

// InvalidNumber builds the RecordError for an unparsable numeric attribute.
func InvalidNumber(vehicleID, field, value string, err error) error {
	return &RecordError{VehicleID: vehicleID, Err: &ParseError{Field: field, Value: value, Err: err}}
}
