package extract

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const componentSource = `import { Component } from '@angular/core';

@Component({
  selector: 'app-user-page',
  templateUrl: './user-page.component.html',
  styleUrls: ['./user-page.component.scss'],
})
export class UserPageComponent {
  user = { name: 'Ada' };
}
`

const componentStyles = ".card {\n  padding: 8px;\n}\n"

const selectedMarkup = "<div class=\"card\">\n  {{ user.name }}\n</div>"

// op is one recorded file-system call.
type op struct {
	Kind string // read, write, mkdir
	Path string
}

// recordingFS wraps a FileSystem, recording every call and optionally
// failing calls for a given path.
type recordingFS struct {
	inner FileSystem

	mu     sync.Mutex
	ops    []op
	failOn map[string]error
}

func newRecordingFS(fs afero.Fs) *recordingFS {
	return &recordingFS{
		inner:  NewFileSystem(fs),
		failOn: make(map[string]error),
	}
}

func (r *recordingFS) record(kind, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op{Kind: kind, Path: path})
	return r.failOn[path]
}

func (r *recordingFS) Read(ctx context.Context, path string) ([]byte, error) {
	if err := r.record("read", path); err != nil {
		return nil, err
	}
	return r.inner.Read(ctx, path)
}

func (r *recordingFS) Write(ctx context.Context, path string, data []byte) error {
	if err := r.record("write", path); err != nil {
		return err
	}
	return r.inner.Write(ctx, path, data)
}

func (r *recordingFS) CreateDirectory(ctx context.Context, path string) error {
	if err := r.record("mkdir", path); err != nil {
		return err
	}
	return r.inner.CreateDirectory(ctx, path)
}

// count returns the number of recorded ops of kind.
func (r *recordingFS) count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, o := range r.ops {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recordingFS) sideEffects() []op {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []op
	for _, o := range r.ops {
		if o.Kind != "read" {
			out = append(out, o)
		}
	}
	return out
}

// mockEditor is a scripted Editor.
type mockEditor struct {
	Path       string
	Text       string
	Selected   string
	Name       string
	PromptErr  error
	Prompts    []string
	ErrorsSeen []string
}

func (m *mockEditor) DocumentPath() string { return m.Path }
func (m *mockEditor) DocumentText() string { return m.Text }
func (m *mockEditor) Selection() string    { return m.Selected }

func (m *mockEditor) PromptName(ctx context.Context, placeholder string) (string, error) {
	m.Prompts = append(m.Prompts, placeholder)
	return m.Name, m.PromptErr
}

func (m *mockEditor) ShowError(msg string) {
	m.ErrorsSeen = append(m.ErrorsSeen, msg)
}

// recordingProgress records progress callbacks.
type recordingProgress struct {
	started   int
	steps     []Step
	completed int
}

func (p *recordingProgress) OnExtractionStart(set *ArtifactSet) { p.started++ }
func (p *recordingProgress) OnStepComplete(step Step, path string) {
	p.steps = append(p.steps, step)
}
func (p *recordingProgress) OnExtractionComplete(set *ArtifactSet) { p.completed++ }

// setupComponent writes a component trio under /src/app/user-page in a
// memory file system and returns the fs and the template path.
func setupComponent(t *testing.T) (afero.Fs, string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	dir := "/src/app/user-page"
	require.NoError(t, fs.MkdirAll(dir, 0755))

	files := map[string]string{
		"user-page.component.ts":   componentSource,
		"user-page.component.html": fmt.Sprintf("<section>\n%s\n</section>\n", selectedMarkup),
		"user-page.component.scss": componentStyles,
	}
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, dir+"/"+name, []byte(content), 0644))
	}

	return fs, dir + "/user-page.component.html"
}
