// Package editor implements the extract.Editor port for terminal use.
//
// The active document is a file path, the selection comes from a line range
// of that file or from a separate file (or stdin), the component name comes
// from a flag or an interactive prompt, and errors are printed to stderr.
package editor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrConflictingSelection indicates both a line range and a selection file were given
	ErrConflictingSelection = errors.New("--lines and --selection-file are mutually exclusive")

	// ErrInvalidLines indicates a malformed or out-of-range line range
	ErrInvalidLines = errors.New("invalid line range")
)

// StdinPath selects standard input as the selection file.
const StdinPath = "-"

// Options configures a Terminal.
type Options struct {
	DocumentPath  string
	Lines         string // "A:B" or "A", 1-based inclusive
	SelectionFile string // path or StdinPath

	// Name is used instead of prompting when HasName is set.
	Name    string
	HasName bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	FS     afero.Fs
}

// Terminal is an extract.Editor backed by files and standard streams.
type Terminal struct {
	opts      Options
	path      string
	text      *string
	selection string
	prompt    *bufio.Reader
	errors    []string
}

// Open resolves the document path and selection.
func Open(opts Options) (*Terminal, error) {
	if opts.Lines != "" && opts.SelectionFile != "" {
		return nil, ErrConflictingSelection
	}
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.Stdin == nil {
		opts.Stdin = strings.NewReader("")
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}

	t := &Terminal{opts: opts}

	if opts.DocumentPath != "" {
		abs, err := filepath.Abs(opts.DocumentPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", opts.DocumentPath, err)
		}
		t.path = abs
	}

	switch {
	case opts.Lines != "":
		text, err := t.readDocument()
		if err != nil {
			return nil, err
		}
		if t.selection, err = SelectLines(text, opts.Lines); err != nil {
			return nil, err
		}

	case opts.SelectionFile == StdinPath:
		data, err := io.ReadAll(opts.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read selection from stdin: %w", err)
		}
		t.selection = string(data)

	case opts.SelectionFile != "":
		data, err := afero.ReadFile(opts.FS, opts.SelectionFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read selection file: %w", err)
		}
		t.selection = string(data)
	}

	return t, nil
}

func (t *Terminal) readDocument() (string, error) {
	if t.text != nil {
		return *t.text, nil
	}
	if t.path == "" {
		return "", fmt.Errorf("no document to select lines from")
	}
	data, err := afero.ReadFile(t.opts.FS, t.path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	text := string(data)
	t.text = &text
	return text, nil
}

// DocumentPath returns the absolute document path, or "" when none was given.
func (t *Terminal) DocumentPath() string {
	return t.path
}

// DocumentText returns the document contents, or "" when it cannot be read.
func (t *Terminal) DocumentText() string {
	text, _ := t.readDocument()
	return text
}

// Selection returns the resolved selection.
func (t *Terminal) Selection() string {
	return t.selection
}

// PromptName returns the preset name, or prompts on stdout and reads one line
// from stdin. End of input counts as a cancelled prompt.
func (t *Terminal) PromptName(ctx context.Context, placeholder string) (string, error) {
	if t.opts.HasName {
		return t.opts.Name, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintf(t.opts.Stdout, "%s: ", placeholder)

	if t.prompt == nil {
		t.prompt = bufio.NewReader(t.opts.Stdin)
	}
	line, err := t.prompt.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read component name: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// ShowError prints msg to stderr and records it.
func (t *Terminal) ShowError(msg string) {
	t.errors = append(t.errors, msg)
	fmt.Fprintf(t.opts.Stderr, "Error: %s\n", msg)
}

// Errors returns every message passed to ShowError.
func (t *Terminal) Errors() []string {
	return t.errors
}

// SelectLines returns lines a through b (1-based, inclusive) of text, given as
// "a:b" or "a". The terminator of the last selected line is not included.
func SelectLines(text, lineRange string) (string, error) {
	first, last, err := parseRange(lineRange)
	if err != nil {
		return "", err
	}

	lines := strings.SplitAfter(text, "\n")
	if text == "" || last > len(lines) || (last == len(lines) && lines[last-1] == "") {
		return "", fmt.Errorf("%w: %s exceeds %d lines", ErrInvalidLines, lineRange, countLines(lines))
	}

	selected := strings.Join(lines[first-1:last], "")
	selected = strings.TrimSuffix(selected, "\n")
	selected = strings.TrimSuffix(selected, "\r")
	return selected, nil
}

func parseRange(lineRange string) (int, int, error) {
	from, to, found := strings.Cut(strings.TrimSpace(lineRange), ":")
	if !found {
		to = from
	}

	first, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidLines, lineRange)
	}
	last, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidLines, lineRange)
	}
	if first < 1 || last < first {
		return 0, 0, fmt.Errorf("%w: %q must satisfy 1 <= start <= end", ErrInvalidLines, lineRange)
	}

	return first, last, nil
}

func countLines(lines []string) int {
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		return len(lines) - 1
	}
	return len(lines)
}
