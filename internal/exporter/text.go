package exporter

import (
	"fmt"
	"io"
	"strings"

	"exprsplit/internal/types"
)

// ExportText writes the token values on one line, separated by a space.
func ExportText(tokens []types.Token, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, strings.Join(types.Values(tokens), " ")); err != nil {
		return fmt.Errorf("error writing text: %w", err)
	}
	return nil
}
