package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCLI(t *testing.T, args ...string) *CLI {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("exprsplit"))
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return &cli
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	cli := parseCLI(t, args...)

	var stdout, stderr bytes.Buffer
	failed, err := run(cli, strings.NewReader(stdin), &stdout, &stderr)
	require.NoError(t, err)
	return failed, stdout.String(), stderr.String()
}

func TestCLIDefaults(t *testing.T) {
	cli := parseCLI(t, "1 + 2")
	assert.Equal(t, []string{"1 + 2"}, cli.Expressions)
	assert.Equal(t, "text", cli.Format)
	assert.Equal(t, "utf8", cli.Encoding)
	assert.False(t, cli.Unicode)
	assert.False(t, cli.Debug)
}

func TestCLIFormatFromEnv(t *testing.T) {
	t.Setenv("EXPRSPLIT_FORMAT", "json")
	cli := parseCLI(t, "x")
	assert.Equal(t, "json", cli.Format)
}

func TestCLIRejectsUnknownFormat(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli)
	require.NoError(t, err)
	_, err = parser.Parse([]string{"--format", "xml", "x"})
	assert.Error(t, err)
}

func TestRunTextArguments(t *testing.T) {
	failed, stdout, stderr := runCLI(t, "", "1 + 5 + (.b5+", "2 + 4 + b4")
	assert.Equal(t, 0, failed)
	assert.Equal(t, "1 + 5 + ( . b5 +\n2 + 4 + b4\n", stdout)
	assert.Empty(t, stderr)
}

func TestRunReportsFailures(t *testing.T) {
	failed, stdout, stderr := runCLI(t, "", "b2bt + 4 + b4", "2 + 4b + 4")
	assert.Equal(t, 1, failed)
	assert.Equal(t, "b2bt + 4 + b4\n", stdout)
	assert.Contains(t, stderr, `error[InvalidIdentifier]: invalid identifier "4b" in segment 2`)
	assert.Contains(t, stderr, "2 | 2 + 4b + 4")
}

func TestRunStdinLines(t *testing.T) {
	failed, stdout, stderr := runCLI(t, "($@+ + 4 + b4\r\n\na + 1\n")
	assert.Equal(t, 1, failed)
	assert.Equal(t, "( $ @ + + 4 + b4\na + 1\n", stdout)
	assert.Contains(t, stderr, "error[EmptyInput]")
	assert.Contains(t, stderr, "--> 2:1")
}

func TestRunFileWithEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xE3, '2', ' ', '*', ' ', 'r', '\n'}, 0o644))

	failed, stdout, _ := runCLI(t, "", "--file", path, "--encoding", "cp437", "--unicode")
	assert.Equal(t, 0, failed)
	assert.Equal(t, "π2 * r\n", stdout)
}

func TestRunLongStdinLine(t *testing.T) {
	long := strings.Repeat("a+", 35000) + "1"
	failed, stdout, stderr := runCLI(t, "x + 1\n"+long+"\n4b\n")

	assert.Equal(t, 1, failed)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "x + 1", lines[0])
	assert.Len(t, lines[1], 2*len(long)-1)
	assert.Contains(t, stderr, "--> 3:1")
}

func TestRunLongFileLine(t *testing.T) {
	long := strings.Repeat("9", 70000)
	path := filepath.Join(t.TempDir(), "long.txt")
	require.NoError(t, os.WriteFile(path, []byte(long), 0o644))

	failed, stdout, _ := runCLI(t, "", "--file", path)
	assert.Equal(t, 0, failed)
	assert.Equal(t, long+"\n", stdout)
}

func TestRunMissingFile(t *testing.T) {
	cli := parseCLI(t, "--file", filepath.Join(t.TempDir(), "missing.txt"))

	var stdout, stderr bytes.Buffer
	_, err := run(cli, nil, &stdout, &stderr)
	assert.ErrorContains(t, err, "error reading file")
}

func TestRunNoInput(t *testing.T) {
	cli := parseCLI(t)

	var stdout, stderr bytes.Buffer
	_, err := run(cli, nil, &stdout, &stderr)
	assert.ErrorIs(t, err, errNoInput)
}

func TestRunJSON(t *testing.T) {
	failed, stdout, stderr := runCLI(t, "", "--format", "json", "2 + 4b + 4")
	assert.Equal(t, 1, failed)
	assert.Contains(t, stdout, `"kind": "InvalidIdentifier"`)
	assert.Empty(t, stderr)
}

func TestRunTable(t *testing.T) {
	failed, stdout, _ := runCLI(t, "", "-o", "table", "a+1")
	assert.Equal(t, 0, failed)
	assert.Contains(t, stdout, `=== Expression 1: "a+1" ===`)
	assert.Contains(t, stdout, "TokenIdentifier")
}

func TestRunStats(t *testing.T) {
	failed, stdout, _ := runCLI(t, "", "-o", "stats", "a + a")
	assert.Equal(t, 0, failed)
	assert.Contains(t, stdout, "Total tokens: 3")
}

func TestRunColor(t *testing.T) {
	failed, stdout, stderr := runCLI(t, "", "-o", "color", "x1 + 2", "4b")
	assert.Equal(t, 1, failed)
	assert.Contains(t, stdout, "\x1b[0;32;1mx1\x1b[0m")
	assert.Contains(t, stdout, "\x1b[0;31;1;4m4b\x1b[0m")
	assert.Contains(t, stderr, `invalid identifier "4b"`)
}

func TestRunDebug(t *testing.T) {
	_, _, stderr := runCLI(t, "", "--debug", "a+1")
	assert.Contains(t, stderr, "[debug] 1 expression(s), format=text")
	assert.Contains(t, stderr, "[debug] line 1 token 0: IDENT: a")
	assert.Contains(t, stderr, "[debug] 0/1 expression(s) failed")
}
