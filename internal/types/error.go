package types

import (
	"encoding/json"
	"fmt"
)

type ErrorKind int

const (
	ErrorEmptyInput ErrorKind = iota
	ErrorInvalidIdentifier
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorEmptyInput:
		return "EmptyInput"
	case ErrorInvalidIdentifier:
		return "InvalidIdentifier"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

func (k ErrorKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ErrorKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "EmptyInput":
		*k = ErrorEmptyInput
	case "InvalidIdentifier":
		*k = ErrorInvalidIdentifier
	default:
		return fmt.Errorf("unknown ErrorKind: %s", s)
	}

	return nil
}

// ParseError is returned when an expression cannot be tokenized.
//
// Offset is 0 for an empty input and the segment index for an invalid
// identifier. Pos is the rune offset of the offending run in the input.
type ParseError struct {
	Kind    ErrorKind `json:"kind"`
	Offset  int       `json:"offset"`
	Pos     int       `json:"pos"`
	Run     string    `json:"run,omitempty"`
	Segment string    `json:"segment,omitempty"`
}

// Sentinel values for errors.Is. Only Kind is compared.
var (
	ErrEmptyInput        = &ParseError{Kind: ErrorEmptyInput}
	ErrInvalidIdentifier = &ParseError{Kind: ErrorInvalidIdentifier}
)

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrorEmptyInput:
		return "input expression is empty"
	case ErrorInvalidIdentifier:
		return fmt.Sprintf("invalid identifier %q in segment %d (%q): a character set containing a letter must begin with a letter",
			e.Run, e.Offset, e.Segment)
	default:
		return fmt.Sprintf("parse error (%s) at offset %d", e.Kind, e.Offset)
	}
}

func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
