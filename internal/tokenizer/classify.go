package tokenizer

import (
	"unicode"
	"unicode/utf8"

	"exprsplit/internal/types"
)

type classifier struct {
	isLetter func(rune) bool
	isDigit  func(rune) bool
}

var asciiClassifier = classifier{
	isLetter: func(r rune) bool { return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') },
	isDigit:  func(r rune) bool { return r >= '0' && r <= '9' },
}

var unicodeClassifier = classifier{
	isLetter: unicode.IsLetter,
	isDigit:  unicode.IsDigit,
}

func (c classifier) isAlnum(r rune) bool {
	return c.isLetter(r) || c.isDigit(r)
}

func (c classifier) kindOf(r rune) types.TokenKind {
	switch {
	case c.isDigit(r):
		return types.TokenNumber
	case c.isLetter(r):
		return types.TokenIdentifier
	default:
		return types.TokenSymbol
	}
}

// runKind reports the kind of an alphanumeric run, and false when the run
// contains an ASCII letter but starts with a digit. Only ASCII letters trigger
// the check, in both modes; other letters still make the run an identifier.
func (c classifier) runKind(run string) (types.TokenKind, bool) {
	hasLetter, hasASCIILetter := false, false
	for _, r := range run {
		if c.isLetter(r) {
			hasLetter = true
		}
		if asciiClassifier.isLetter(r) {
			hasASCIILetter = true
			break
		}
	}

	if !hasLetter {
		return types.TokenNumber, true
	}

	first, _ := utf8.DecodeRuneInString(run)
	if hasASCIILetter && c.isDigit(first) {
		return types.TokenIdentifier, false
	}

	return types.TokenIdentifier, true
}
