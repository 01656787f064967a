package editor

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Terminal:
// - SelectLines handles single lines, ranges, CRLF and the final line
// - SelectLines rejects malformed and out-of-range specs
// - Open rejects --lines together with --selection-file
// - Open resolves the selection from a line range, a file, or stdin
// - Open with no selection source yields an empty selection
// - Relative document paths become absolute
// - PromptName uses the preset name, else reads one line, EOF means cancelled
// - ShowError prints to stderr and records the message

const document = "<div>\n  <h1>Title</h1>\n  <p>Body</p>\n</div>\n"

func memFS(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/app/page/page.component.html", []byte(document), 0644))
	require.NoError(t, afero.WriteFile(fs, "/tmp/selection.html", []byte("<span>picked</span>"), 0644))
	return fs
}

func TestSelectLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		lineRange string
		want      string
	}{
		{"single line", document, "2", "  <h1>Title</h1>"},
		{"range", document, "2:3", "  <h1>Title</h1>\n  <p>Body</p>"},
		{"whole document", document, "1:4", strings.TrimSuffix(document, "\n")},
		{"last line without newline", "a\nb", "2", "b"},
		{"crlf", "a\r\nb\r\nc\r\n", "1:2", "a\r\nb"},
		{"spaces around numbers", document, " 1 : 1 ", "<div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := SelectLines(tt.text, tt.lineRange)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectLines_Invalid(t *testing.T) {
	t.Parallel()

	for _, lineRange := range []string{"", "x", "1:y", "0", "3:2", "5", "4:5", "-1:2"} {
		_, err := SelectLines(document, lineRange)
		assert.ErrorIs(t, err, ErrInvalidLines, lineRange)
	}

	_, err := SelectLines("", "1")
	assert.ErrorIs(t, err, ErrInvalidLines)
}

func TestOpen_ConflictingSelection(t *testing.T) {
	t.Parallel()

	_, err := Open(Options{
		DocumentPath:  "/src/app/page/page.component.html",
		Lines:         "1",
		SelectionFile: "/tmp/selection.html",
		FS:            memFS(t),
	})
	assert.ErrorIs(t, err, ErrConflictingSelection)
}

func TestOpen_Lines(t *testing.T) {
	t.Parallel()

	term, err := Open(Options{
		DocumentPath: "/src/app/page/page.component.html",
		Lines:        "3",
		FS:           memFS(t),
	})
	require.NoError(t, err)

	assert.Equal(t, "/src/app/page/page.component.html", term.DocumentPath())
	assert.Equal(t, document, term.DocumentText())
	assert.Equal(t, "  <p>Body</p>", term.Selection())
}

func TestOpen_LinesMissingDocument(t *testing.T) {
	t.Parallel()

	_, err := Open(Options{
		DocumentPath: "/src/app/missing.html",
		Lines:        "1",
		FS:           memFS(t),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestOpen_SelectionFile(t *testing.T) {
	t.Parallel()

	term, err := Open(Options{
		DocumentPath:  "/src/app/page/page.component.html",
		SelectionFile: "/tmp/selection.html",
		FS:            memFS(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "<span>picked</span>", term.Selection())
}

func TestOpen_SelectionFromStdin(t *testing.T) {
	t.Parallel()

	term, err := Open(Options{
		DocumentPath:  "/src/app/page/page.component.html",
		SelectionFile: StdinPath,
		Stdin:         strings.NewReader("<b>stdin</b>\n"),
		FS:            memFS(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "<b>stdin</b>\n", term.Selection())
}

func TestOpen_NoSelectionSource(t *testing.T) {
	t.Parallel()

	term, err := Open(Options{
		DocumentPath: "/src/app/page/page.component.html",
		FS:           memFS(t),
	})
	require.NoError(t, err)
	assert.Empty(t, term.Selection())
}

func TestOpen_RelativePathMadeAbsolute(t *testing.T) {
	t.Parallel()

	term, err := Open(Options{DocumentPath: "page.component.html", FS: memFS(t)})
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(term.DocumentPath()))
	assert.Equal(t, "page.component.html", filepath.Base(term.DocumentPath()))
	assert.Empty(t, term.DocumentText())
}

func TestOpen_NoDocumentPath(t *testing.T) {
	t.Parallel()

	term, err := Open(Options{FS: memFS(t)})
	require.NoError(t, err)
	assert.Empty(t, term.DocumentPath())
}

func TestPromptName(t *testing.T) {
	t.Parallel()

	t.Run("preset name skips prompt", func(t *testing.T) {
		var out bytes.Buffer
		term, err := Open(Options{Name: "UserCard", HasName: true, Stdout: &out})
		require.NoError(t, err)

		name, err := term.PromptName(context.Background(), "Enter new component name")
		require.NoError(t, err)
		assert.Equal(t, "UserCard", name)
		assert.Empty(t, out.String())
	})

	t.Run("preset empty name", func(t *testing.T) {
		term, err := Open(Options{Name: "", HasName: true})
		require.NoError(t, err)

		name, err := term.PromptName(context.Background(), "x")
		require.NoError(t, err)
		assert.Empty(t, name)
	})

	t.Run("reads one line", func(t *testing.T) {
		var out bytes.Buffer
		term, err := Open(Options{Stdin: strings.NewReader("UserCard\r\nignored\n"), Stdout: &out})
		require.NoError(t, err)

		name, err := term.PromptName(context.Background(), "Enter new component name")
		require.NoError(t, err)
		assert.Equal(t, "UserCard", name)
		assert.Equal(t, "Enter new component name: ", out.String())
	})

	t.Run("last line without newline", func(t *testing.T) {
		term, err := Open(Options{Stdin: strings.NewReader("UserCard")})
		require.NoError(t, err)

		name, err := term.PromptName(context.Background(), "x")
		require.NoError(t, err)
		assert.Equal(t, "UserCard", name)
	})

	t.Run("EOF is a cancelled prompt", func(t *testing.T) {
		term, err := Open(Options{})
		require.NoError(t, err)

		name, err := term.PromptName(context.Background(), "x")
		require.NoError(t, err)
		assert.Empty(t, name)
	})

	t.Run("cancelled context", func(t *testing.T) {
		term, err := Open(Options{Stdin: strings.NewReader("UserCard\n")})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = term.PromptName(ctx, "x")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestShowError(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	term, err := Open(Options{Stderr: &stderr})
	require.NoError(t, err)

	term.ShowError("Component name cannot be empty")
	term.ShowError("Cannot find current folder")

	assert.Equal(t, "Error: Component name cannot be empty\nError: Cannot find current folder\n", stderr.String())
	assert.Equal(t, []string{"Component name cannot be empty", "Cannot find current folder"}, term.Errors())
}
