package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"exprsplit/internal/types"
)

type TokenizerJSONOutput struct {
	Expression string            `json:"expression"`
	Tokens     []types.Token     `json:"tokens"`
	Stats      types.TokenStats  `json:"stats"`
	Error      *types.ParseError `json:"error,omitempty"`
}

// ExportTokensJSON runs the tokenizer and writes its tokens, stats and error
// (if any) as indented JSON. A parse error is part of the document, not a
// failure of the export.
func ExportTokensJSON(expression string, tok types.TokenizerWithStats, writer io.Writer) error {
	output := TokenizerJSONOutput{
		Expression: expression,
		Tokens:     make([]types.Token, 0),
	}

	tokens, err := tok.Tokenize()
	if err != nil {
		perr, ok := err.(*types.ParseError)
		if !ok {
			return err
		}
		output.Error = perr
	} else {
		output.Tokens = tokens
	}
	output.Stats = tok.GetStats()

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON serialization error: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return fmt.Errorf("error writing JSON: %w", err)
	}

	return nil
}
