package entities

import "fmt"

// UnknownFlagError indicates that a QFLAG reply contained a flag code
// with no matching entity definition.
type UnknownFlagError struct {
	// Flag is the offending code
	Flag byte

	// Input is the full flag string being decoded
	Input string
}

func (e *UnknownFlagError) Error() string {
	return fmt.Sprintf("unknown flag %q in QFLAG output %q", e.Flag, e.Input)
}

// FormattingError indicates that one field of a query result could not
// be coerced; it aborts the whole result.
type FormattingError struct {
	// Key is the entity key of the offending field
	Key string

	// Reason describes the failure
	Reason string
}

func (e *FormattingError) Error() string {
	return fmt.Sprintf("format entity %q: %s", e.Key, e.Reason)
}

// ArgumentCountError indicates a command was given the wrong number of
// arguments.
type ArgumentCountError struct {
	Want int
	Got  int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("expected %d argument(s), got %d", e.Want, e.Got)
}

// ArgumentConversionError indicates a command argument could not be
// converted to its wire form.
type ArgumentConversionError struct {
	// Index is the zero-based argument position
	Index int

	// Raw is the argument as given
	Raw string

	// Reason describes the failure
	Reason string
}

func (e *ArgumentConversionError) Error() string {
	return fmt.Sprintf("convert argument %d (%q): %s", e.Index, e.Raw, e.Reason)
}

// ArgumentValidationError indicates a converted command argument failed
// its validation rule.
type ArgumentValidationError struct {
	// Index is the zero-based argument position
	Index int

	// Raw is the argument as given
	Raw string

	// Reason describes the failure
	Reason string
}

func (e *ArgumentValidationError) Error() string {
	return fmt.Sprintf("invalid argument %d (%q): %s", e.Index, e.Raw, e.Reason)
}
