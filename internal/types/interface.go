package types

type Tokenizer interface {
	Tokenize() ([]Token, error)
}

// Tokenize with statistics
type TokenizerWithStats interface {
	Tokenizer
	GetStats() TokenStats
}
