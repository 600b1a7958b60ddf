package tokenizer

// Splits an arithmetic expression into symbols, numeric literals and
// identifiers.
//
// The input is cut on the space character (0x20) only. Each segment is then
// scanned rune by rune: letters and digits accumulate into a run, every other
// rune is a token of its own. A run that contains a letter must start with a
// letter.
//
// Examples:
//   "1 + 5 + (.b5+"  -> 1 + 5 + ( . b5 +
//   "($@+ + 4 + b4"  -> ( $ @ + + 4 + b4
//   "2 + 4b + 4"     -> InvalidIdentifier "4b" in segment 2

import (
	"strings"
	"unicode/utf8"

	"exprsplit/internal/types"
)

const separator = " "

var _ types.TokenizerWithStats = (*Tokenizer)(nil)

type Tokenizer struct {
	input    string
	classify classifier
	Tokens   []types.Token     `json:"tokens"`
	Stats    types.TokenStats  `json:"stats"`
	Err      *types.ParseError `json:"error,omitempty"`
}

type Option func(*Tokenizer)

// WithUnicode classifies letters and digits with the Unicode tables instead
// of ASCII.
func WithUnicode() Option {
	return func(t *Tokenizer) {
		t.classify = unicodeClassifier
	}
}

func NewTokenizer(input string, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		input:    input,
		classify: asciiClassifier,
		Tokens:   make([]types.Token, 0),
		Stats:    types.NewTokenStats(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.Stats.InputSize = len(input)
	return t
}

// Tokenize scans the whole input. On error no tokens are returned.
func (t *Tokenizer) Tokenize() ([]types.Token, error) {
	t.Tokens = make([]types.Token, 0)
	t.Stats = types.NewTokenStats()
	t.Stats.InputSize = len(t.input)
	t.Err = nil

	if len(t.input) == 0 {
		return nil, t.fail(&types.ParseError{Kind: types.ErrorEmptyInput, Offset: 0, Pos: 0})
	}

	pos := 0
	for index, segment := range strings.Split(t.input, separator) {
		t.Stats.SegmentCount++
		if err := t.scanSegment(segment, index, pos); err != nil {
			return nil, t.fail(err)
		}
		pos += utf8.RuneCountInString(segment) + 1
	}

	return t.Tokens, nil
}

func (t *Tokenizer) GetStats() types.TokenStats {
	return t.Stats
}

func (t *Tokenizer) fail(err *types.ParseError) error {
	t.Err = err
	t.Tokens = make([]types.Token, 0)
	t.Stats = types.NewTokenStats()
	t.Stats.InputSize = len(t.input)
	return err
}

func (t *Tokenizer) scanSegment(segment string, index, start int) *types.ParseError {
	if segment == "" {
		t.Stats.EmptySegments++
		return nil
	}

	// A one-character segment is always its own token.
	if utf8.RuneCountInString(segment) == 1 {
		r, _ := utf8.DecodeRuneInString(segment)
		t.emit(t.classify.kindOf(r), segment, start, index)
		return nil
	}

	// Tokens are slices of the segment so invalid UTF-8 bytes pass through
	// unchanged.
	runStart, runPos := -1, 0
	pos := start

	for i := 0; i < len(segment); {
		r, size := utf8.DecodeRuneInString(segment[i:])

		if t.classify.isAlnum(r) {
			if runStart < 0 {
				runStart, runPos = i, pos
			}
			i += size
			pos++
			continue
		}

		if runStart >= 0 {
			if err := t.flushRun(segment[runStart:i], segment, index, runPos); err != nil {
				return err
			}
			runStart = -1
		}
		t.emit(types.TokenSymbol, segment[i:i+size], pos, index)
		i += size
		pos++
	}

	if runStart >= 0 {
		return t.flushRun(segment[runStart:], segment, index, runPos)
	}

	return nil
}

func (t *Tokenizer) flushRun(run, segment string, index, pos int) *types.ParseError {
	kind, ok := t.classify.runKind(run)
	if !ok {
		return &types.ParseError{
			Kind:    types.ErrorInvalidIdentifier,
			Offset:  index,
			Pos:     pos,
			Run:     run,
			Segment: segment,
		}
	}
	t.emit(kind, run, pos, index)
	return nil
}

func (t *Tokenizer) emit(kind types.TokenKind, value string, pos, segment int) {
	tok := types.Token{
		Kind:    kind,
		Pos:     pos,
		Segment: segment,
		Value:   value,
	}
	t.Tokens = append(t.Tokens, tok)
	t.Stats.Add(tok)
}
