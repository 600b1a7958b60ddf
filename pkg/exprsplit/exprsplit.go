// Package exprsplit splits arithmetic expressions into flat token sequences.
//
// This package provides functions to:
//   - Tokenize an expression into symbols, numeric literals and identifiers
//   - Convert input from legacy encodings (CP437, CP850, ISO-8859-1) to UTF-8
//   - Export tokens as text, a table, JSON, statistics or highlighted ANSI
//
// Example usage:
//
//	import "exprsplit/pkg/exprsplit"
//
//	tokens, err := exprsplit.Tokenize("1 + 5 + (.b5+")
//	// tokens: ["1" "+" "5" "+" "(" "." "b5" "+"]
//
//	_, err = exprsplit.Tokenize("2 + 4b + 4")
//	errors.Is(err, exprsplit.ErrInvalidIdentifier) // true
package exprsplit

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"exprsplit/internal/exporter"
	"exprsplit/internal/tokenizer"
	"exprsplit/internal/types"
)

// Type aliases for public API
type (
	// Token is one symbol, numeric literal or identifier with its position
	Token = types.Token

	// TokenKind is the kind of a token
	TokenKind = types.TokenKind

	// TokenStats contains statistics about a tokenized expression
	TokenStats = types.TokenStats

	// ParseError is returned when an expression cannot be tokenized
	ParseError = types.ParseError

	// ErrorKind identifies the reason of a ParseError
	ErrorKind = types.ErrorKind

	// Tokenizer is the stateful tokenizer behind Tokenize
	Tokenizer = tokenizer.Tokenizer

	// Option configures a Tokenizer
	Option = tokenizer.Option
)

// Token kind constants
const (
	TokenNumber     = types.TokenNumber
	TokenIdentifier = types.TokenIdentifier
	TokenSymbol     = types.TokenSymbol
)

// Error kind constants
const (
	ErrorEmptyInput        = types.ErrorEmptyInput
	ErrorInvalidIdentifier = types.ErrorInvalidIdentifier
)

// Sentinel errors for errors.Is
var (
	ErrEmptyInput        = types.ErrEmptyInput
	ErrInvalidIdentifier = types.ErrInvalidIdentifier
)

// WithUnicode classifies letters and digits with the Unicode tables.
func WithUnicode() Option {
	return tokenizer.WithUnicode()
}

// Tokenize splits expression into token strings. It is safe for concurrent
// use.
func Tokenize(expression string) ([]string, error) {
	tokens, err := TokenizeTokens(expression)
	if err != nil {
		return nil, err
	}
	return types.Values(tokens), nil
}

// TokenizeTokens is Tokenize with kinds and positions.
func TokenizeTokens(expression string, opts ...Option) ([]Token, error) {
	return tokenizer.NewTokenizer(expression, opts...).Tokenize()
}

// NewTokenizer creates a tokenizer that also collects statistics.
func NewTokenizer(expression string, opts ...Option) *Tokenizer {
	return tokenizer.NewTokenizer(expression, opts...)
}

// UTF-8 BOM (Byte Order Mark) sequence
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// stripUTF8BOM removes the UTF-8 BOM if present at the beginning of the data
func stripUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && bytes.Equal(data[:3], utf8BOM) {
		return data[3:]
	}
	return data
}

// ConvertToUTF8 converts byte data from a source encoding to UTF-8.
// Supported encodings: "utf8", "cp437", "cp850", "iso-8859-1"
// The UTF-8 BOM (Byte Order Mark) is automatically stripped if present.
func ConvertToUTF8(data []byte, sourceEncoding string) ([]byte, error) {
	if sourceEncoding == "utf8" || sourceEncoding == "" {
		return stripUTF8BOM(data), nil
	}

	var decoder *encoding.Decoder

	switch sourceEncoding {
	case "cp437":
		decoder = charmap.CodePage437.NewDecoder()
	case "cp850":
		decoder = charmap.CodePage850.NewDecoder()
	case "iso-8859-1":
		decoder = charmap.ISO8859_1.NewDecoder()
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", sourceEncoding)
	}

	reader := transform.NewReader(bytes.NewReader(data), decoder)
	utf8Data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("encoding conversion error: %w", err)
	}

	// Strip BOM if present after conversion
	return stripUTF8BOM(utf8Data), nil
}

// ExportText writes the token values on one line, separated by a space.
func ExportText(tokens []Token, w io.Writer) error {
	return exporter.ExportText(tokens, w)
}

// ExportTable writes the tokens as a table.
func ExportTable(tokens []Token, w io.Writer) error {
	return exporter.ExportTokensToTable(tokens, w)
}

// ExportJSON tokenizes expression and writes tokens, stats and error as JSON.
func ExportJSON(expression string, w io.Writer, opts ...Option) error {
	return exporter.ExportTokensJSON(expression, NewTokenizer(expression, opts...), w)
}

// ExportHighlightedANSI renders the expression with one color per token kind,
// or with the failing run marked when perr is set.
func ExportHighlightedANSI(expression string, tokens []Token, perr *ParseError) (string, error) {
	return exporter.ExportHighlightedANSI(expression, tokens, perr)
}

// FormatDiagnostic renders err for a terminal, pointing at the failing run.
func FormatDiagnostic(lineNum int, expression string, err error) string {
	return exporter.FormatDiagnostic(lineNum, expression, err)
}
