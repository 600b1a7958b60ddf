package exporter

import (
	"fmt"
	"io"

	"exprsplit/internal/types"
)

func ExportTokensToTable(tokens []types.Token, writer io.Writer) error {
	fmt.Fprintln(writer, "┌─────────┬────────┬─────────┬─────────────────┬──────────────────────────────────────┐")
	fmt.Fprintf(writer, "│ %-7s │ %-6s │ %-7s │ %-15s │ %-36s │\n", "Token", "Pos", "Segment", "Kind", "Value")
	fmt.Fprintln(writer, "├─────────┼────────┼─────────┼─────────────────┼──────────────────────────────────────┤")

	for i, token := range tokens {
		_, err := fmt.Fprintf(writer, "│ %-7d │ %-6d │ %-7d │ %-15s │ %-36s │\n",
			i+1, token.Pos, token.Segment, token.Kind.String(), truncate(token.Value, 36))
		if err != nil {
			return fmt.Errorf("error writing table row: %w", err)
		}
	}

	fmt.Fprintln(writer, "└─────────┴────────┴─────────┴─────────────────┴──────────────────────────────────────┘")

	return nil
}

func truncate(s string, maxLen int) string {
	s = fmt.Sprintf("%q", s)

	// Remove quote added by %q
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	// Cut on rune boundaries, %q leaves printable multi-byte runes as is.
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
