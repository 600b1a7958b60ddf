package exporter

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"exprsplit/internal/types"
)

// Styles used per token kind.
var kindStyles = map[types.TokenKind]tcell.Style{
	types.TokenNumber:     tcell.StyleDefault.Foreground(tcell.ColorTeal),
	types.TokenIdentifier: tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	types.TokenSymbol:     tcell.StyleDefault.Foreground(tcell.ColorOlive),
}

var errorStyle = tcell.StyleDefault.Foreground(tcell.ColorMaroon).Bold(true).Underline(true)

// TcellBuffer lays an expression out on a one line simulation screen so each
// token keeps the column it had in the input.
type TcellBuffer struct {
	screen tcell.SimulationScreen
	width  int
	debug  io.Writer
}

func NewTcellBuffer(width int) (*TcellBuffer, error) {
	if width < 1 {
		width = 1
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("error initializing screen: %w", err)
	}
	screen.SetSize(width, 1)

	return &TcellBuffer{
		screen: screen,
		width:  width,
	}, nil
}

// SetDebug traces every applied token to w. A nil writer disables tracing.
func (tb *TcellBuffer) SetDebug(w io.Writer) {
	tb.debug = w
}

func (tb *TcellBuffer) ApplyTokens(tokens []types.Token) {
	for i, token := range tokens {
		if tb.debug != nil {
			fmt.Fprintf(tb.debug, "[Token %d] Kind=%s Pos=%d Segment=%d Value=%q\n",
				i, token.Kind, token.Pos, token.Segment, token.Value)
		}
		style, ok := kindStyles[token.Kind]
		if !ok {
			style = tcell.StyleDefault
		}
		tb.writeAt(token.Pos, token.Value, style)
	}
	tb.screen.Show()
}

// WriteRaw draws text unstyled at column x.
func (tb *TcellBuffer) WriteRaw(x int, text string) {
	tb.writeAt(x, text, tcell.StyleDefault)
	tb.screen.Show()
}

// MarkError draws the failing run of a parse error.
func (tb *TcellBuffer) MarkError(perr *types.ParseError) {
	if perr == nil || perr.Kind != types.ErrorInvalidIdentifier {
		return
	}
	tb.writeAt(perr.Pos, perr.Run, errorStyle)
	tb.screen.Show()
}

func (tb *TcellBuffer) writeAt(x int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= tb.width {
			return
		}
		tb.screen.SetContent(x, 0, printable(r), nil, style)
		x++
	}
}

// printable maps C0 controls and DEL to their Control Pictures glyph.
func printable(r rune) rune {
	switch {
	case r < 0x20:
		return 0x2400 + r
	case r == 0x7F:
		return 0x2421
	default:
		return r
	}
}

// ExportANSI serializes the line, emitting SGR sequences on style changes.
func (tb *TcellBuffer) ExportANSI() string {
	var builder strings.Builder
	current := tcell.StyleDefault

	for x := 0; x < tb.width; x++ {
		mainc, _, style, _ := tb.screen.GetContent(x, 0)
		if mainc == 0 {
			mainc = ' '
		}

		if style != current {
			builder.WriteString(styleToSGR(style))
			current = style
		}
		builder.WriteRune(mainc)
	}

	if current != tcell.StyleDefault {
		builder.WriteString("\x1b[0m")
	}

	return strings.TrimRight(builder.String(), " ")
}

func (tb *TcellBuffer) GetPlainText() string {
	var builder strings.Builder

	for x := 0; x < tb.width; x++ {
		mainc, _, _, _ := tb.screen.GetContent(x, 0)
		// Convert 0 (empty cell) to space to avoid null bytes in output
		if mainc == 0 {
			mainc = ' '
		}
		builder.WriteRune(mainc)
	}

	return strings.TrimRight(builder.String(), " ")
}

func (tb *TcellBuffer) Close() {
	tb.screen.Fini()
}

// styleToSGR returns a full reset followed by the codes of style.
func styleToSGR(style tcell.Style) string {
	fg, _, attrs := style.Decompose()

	codes := []string{"0"}
	if code, ok := colorToSGR[fg]; ok {
		codes = append(codes, code)
	}
	if attrs&tcell.AttrBold != 0 {
		codes = append(codes, "1")
	}
	if attrs&tcell.AttrUnderline != 0 {
		codes = append(codes, "4")
	}

	return "\x1b[" + strings.Join(codes, ";") + "m"
}

var colorToSGR = map[tcell.Color]string{
	tcell.ColorBlack:  "30",
	tcell.ColorMaroon: "31",
	tcell.ColorGreen:  "32",
	tcell.ColorOlive:  "33",
	tcell.ColorNavy:   "34",
	tcell.ColorPurple: "35",
	tcell.ColorTeal:   "36",
	tcell.ColorSilver: "37",
}

// ExportHighlightedANSI renders the expression with one color per token kind.
// When perr is an invalid identifier, the input is drawn unstyled and the
// failing run is marked instead.
func ExportHighlightedANSI(input string, tokens []types.Token, perr *types.ParseError) (string, error) {
	buffer, err := NewTcellBuffer(utf8.RuneCountInString(input))
	if err != nil {
		return "", fmt.Errorf("error creating buffer: %w", err)
	}
	defer buffer.Close()

	if perr != nil {
		buffer.WriteRaw(0, input)
		buffer.MarkError(perr)
	} else {
		buffer.ApplyTokens(tokens)
	}

	return buffer.ExportANSI(), nil
}
