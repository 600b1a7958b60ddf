package exporter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"exprsplit/internal/types"
)

// FormatDiagnostic renders a tokenizing error for a terminal:
//
//	error[InvalidIdentifier]: invalid identifier "4b" in segment 2
//	  --> 1:5
//	  |
//	1 | 2 + 4b + 4
//	  |     ^^ a character set containing a letter must begin with a letter
//	  = help: write a letter first, or separate the number with a space
//
// Errors that are not a *types.ParseError are rendered as "error: <msg>".
func FormatDiagnostic(lineNum int, input string, err error) string {
	var perr *types.ParseError
	if !errors.As(err, &perr) {
		return fmt.Sprintf("error: %v\n", err)
	}

	var b strings.Builder

	switch perr.Kind {
	case types.ErrorEmptyInput:
		fmt.Fprintf(&b, "error[%s]: input expression is empty\n", perr.Kind)
		fmt.Fprintf(&b, "  --> %d:%d\n", lineNum, perr.Offset+1)
		return b.String()

	case types.ErrorInvalidIdentifier:
		gutter := len(fmt.Sprintf("%d", lineNum))
		pad := strings.Repeat(" ", gutter)

		fmt.Fprintf(&b, "error[%s]: invalid identifier %q in segment %d\n", perr.Kind, perr.Run, perr.Offset)
		fmt.Fprintf(&b, "%s--> %d:%d\n", pad+" ", lineNum, perr.Pos+1)
		fmt.Fprintf(&b, "%s |\n", pad)
		line := printableLine(input)
		fmt.Fprintf(&b, "%d | %s\n", lineNum, line)
		fmt.Fprintf(&b, "%s | %s%s a character set containing a letter must begin with a letter\n",
			pad, strings.Repeat(" ", columnOf(line, perr.Pos)), strings.Repeat("^", max(1, uniseg.StringWidth(printableLine(perr.Run)))))
		fmt.Fprintf(&b, "%s = help: write a letter first, or separate the number with a space\n", pad)
		return b.String()

	default:
		return fmt.Sprintf("error: %v\n", perr)
	}
}

// columnOf returns the display width of the first pos runes of line, so
// carets line up under wide characters.
func columnOf(line string, pos int) int {
	runes := []rune(line)
	return uniseg.StringWidth(string(runes[:min(pos, len(runes))]))
}

func printableLine(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(printable(r))
	}
	return b.String()
}
