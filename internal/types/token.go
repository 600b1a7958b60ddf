package types

import (
	"encoding/json"
	"fmt"
)

/////////////////////////////////////////////////////////////////////////////
// TOKEN KIND
/////////////////////////////////////////////////////////////////////////////

type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenIdentifier
	TokenSymbol
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "TokenNumber"
	case TokenIdentifier:
		return "TokenIdentifier"
	case TokenSymbol:
		return "TokenSymbol"
	default:
		return fmt.Sprintf("TokenKind(%d)", k)
	}
}

func (k TokenKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *TokenKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "TokenNumber":
		*k = TokenNumber
	case "TokenIdentifier":
		*k = TokenIdentifier
	case "TokenSymbol":
		*k = TokenSymbol
	default:
		return fmt.Errorf("unknown TokenKind: %s", s)
	}

	return nil
}

// MarshalText lets TokenKind be used as a JSON map key.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

/////////////////////////////////////////////////////////////////////////////
// TOKEN
/////////////////////////////////////////////////////////////////////////////

// Token is one atomic piece of an expression. Pos is the rune offset of the
// first character in the original input, Segment the index of the
// space-delimited segment it came from.
type Token struct {
	Kind    TokenKind `json:"kind"`
	Pos     int       `json:"pos"`
	Segment int       `json:"segment"`
	Value   string    `json:"value"`
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return "NUM: " + t.Value
	case TokenIdentifier:
		return "IDENT: " + t.Value
	case TokenSymbol:
		return fmt.Sprintf("SYM: %q", t.Value)
	default:
		return "UNKNOWN"
	}
}

// Values returns the token texts in order.
func Values(tokens []Token) []string {
	values := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		values = append(values, tok.Value)
	}
	return values
}

/////////////////////////////////////////////////////////////////////////////
// TOKEN STATS
/////////////////////////////////////////////////////////////////////////////

type TokenStats struct {
	TotalTokens   int               `json:"total_tokens"`
	TokensByKind  map[TokenKind]int `json:"tokens_by_kind"`
	Symbols       map[string]int    `json:"symbols"`
	Identifiers   map[string]int    `json:"identifiers"`
	Numbers       map[string]int    `json:"numbers"`
	SegmentCount  int               `json:"segment_count"`
	EmptySegments int               `json:"empty_segments"`
	InputSize     int               `json:"input_size"`
}

func NewTokenStats() TokenStats {
	return TokenStats{
		TokensByKind: make(map[TokenKind]int),
		Symbols:      make(map[string]int),
		Identifiers:  make(map[string]int),
		Numbers:      make(map[string]int),
	}
}

// Add records a token in the stats.
func (s *TokenStats) Add(tok Token) {
	s.TotalTokens++
	s.TokensByKind[tok.Kind]++

	switch tok.Kind {
	case TokenSymbol:
		s.Symbols[tok.Value]++
	case TokenIdentifier:
		s.Identifiers[tok.Value]++
	case TokenNumber:
		s.Numbers[tok.Value]++
	}
}
