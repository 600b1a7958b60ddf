package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"exprsplit/internal/exporter"
	"exprsplit/internal/tokenizer"
	"exprsplit/pkg/exprsplit"
)

type CLI struct {
	Expressions []string `arg:"" optional:"" help:"Expressions to tokenize. When omitted, one expression per line is read from --file or stdin."`

	File     string `short:"f" type:"path" help:"Read expressions from a file, one per line."`
	Format   string `short:"o" enum:"text,table,json,stats,color" default:"text" env:"EXPRSPLIT_FORMAT" help:"Output format (${enum})."`
	Encoding string `short:"e" enum:"utf8,cp437,cp850,iso-8859-1" default:"utf8" env:"EXPRSPLIT_ENCODING" help:"Encoding of --file or stdin (${enum})."`
	Unicode  bool   `short:"u" help:"Classify letters and digits with the Unicode tables instead of ASCII."`
	Debug    bool   `short:"d" help:"Trace tokens and segments on stderr."`
}

var errNoInput = errors.New("no expression given and stdin is not a pipe")

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("exprsplit"),
		kong.Description("Split arithmetic expressions into symbols, numbers and identifiers."),
		kong.UsageOnError(),
	)

	var stdin io.Reader
	if len(cli.Expressions) == 0 && cli.File == "" {
		// Check if stdin is a pipe or has data
		stat, err := os.Stdin.Stat()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error checking stdin: %v\n", err)
			os.Exit(1)
		}
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			_ = ctx.PrintUsage(false)
			ctx.Exit(1)
		}
		stdin = os.Stdin
	}

	failed, err := run(&cli, stdin, os.Stdout, os.Stderr)
	ctx.FatalIfErrorf(err)
	if failed > 0 {
		os.Exit(1)
	}
}

// run tokenizes every expression and returns how many of them failed.
func run(cli *CLI, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	expressions, err := loadExpressions(cli, stdin)
	if err != nil {
		return 0, err
	}

	debugf(cli, stderr, "%d expression(s), format=%s encoding=%s unicode=%t",
		len(expressions), cli.Format, cli.Encoding, cli.Unicode)

	var opts []tokenizer.Option
	if cli.Unicode {
		opts = append(opts, tokenizer.WithUnicode())
	}

	failed := 0
	for i, expression := range expressions {
		ok, err := process(cli, i+1, expression, opts, stdout, stderr)
		if err != nil {
			return failed, err
		}
		if !ok {
			failed++
		}
	}

	debugf(cli, stderr, "%d/%d expression(s) failed", failed, len(expressions))
	return failed, nil
}

func loadExpressions(cli *CLI, stdin io.Reader) ([]string, error) {
	if len(cli.Expressions) > 0 {
		return cli.Expressions, nil
	}

	var data []byte
	var err error

	switch {
	case cli.File != "":
		data, err = os.ReadFile(cli.File)
		if err != nil {
			return nil, fmt.Errorf("error reading file: %w", err)
		}
	case stdin != nil:
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading from stdin: %w", err)
		}
	default:
		return nil, errNoInput
	}

	data, err = exprsplit.ConvertToUTF8(data, cli.Encoding)
	if err != nil {
		return nil, err
	}

	var expressions []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	// A line is never longer than the whole input.
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(data)+1)
	for scanner.Scan() {
		expressions = append(expressions, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading expressions: %w", err)
	}

	return expressions, nil
}

// process writes one expression in the selected format. ok is false when the
// expression could not be tokenized; err is only set for output failures.
func process(cli *CLI, lineNum int, expression string, opts []tokenizer.Option, stdout, stderr io.Writer) (ok bool, err error) {
	tok := tokenizer.NewTokenizer(expression, opts...)

	if cli.Format == "json" {
		if err := exporter.ExportTokensJSON(expression, tok, stdout); err != nil {
			return false, err
		}
		return tok.Err == nil, nil
	}

	tokens, tokErr := tok.Tokenize()
	if cli.Debug {
		for i, token := range tokens {
			debugf(cli, stderr, "line %d token %d: %s (pos=%d segment=%d)", lineNum, i, token, token.Pos, token.Segment)
		}
	}

	if tokErr != nil {
		debugf(cli, stderr, "line %d: %v", lineNum, tokErr)
		if cli.Format == "color" {
			line, err := exporter.ExportHighlightedANSI(expression, nil, tok.Err)
			if err != nil {
				return false, err
			}
			fmt.Fprintln(stdout, line)
		}
		fmt.Fprint(stderr, exporter.FormatDiagnostic(lineNum, expression, tokErr))
		return false, nil
	}

	switch cli.Format {
	case "table":
		fmt.Fprintf(stdout, "=== Expression %d: %q ===\n", lineNum, expression)
		err = exporter.ExportTokensToTable(tokens, stdout)
	case "stats":
		fmt.Fprintf(stdout, "=== Expression %d: %q ===\n", lineNum, expression)
		exporter.DisplayStats(tok.GetStats(), stdout)
	case "color":
		var line string
		line, err = exporter.ExportHighlightedANSI(expression, tokens, nil)
		if err == nil {
			fmt.Fprintln(stdout, line)
		}
	default:
		err = exporter.ExportText(tokens, stdout)
	}

	return err == nil, err
}

func debugf(cli *CLI, stderr io.Writer, format string, args ...any) {
	if !cli.Debug {
		return
	}
	fmt.Fprintf(stderr, "[debug] "+format+"\n", args...)
}
