package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/ngcomp/internal/config"
)

const (
	pageDir      = "/work/src/app/user-page"
	pageTemplate = pageDir + "/user-page.component.html"
)

const pageSource = `import { Component } from '@angular/core';

@Component({
  selector: 'app-user-page',
  templateUrl: './user-page.component.html',
  styleUrls: ['./user-page.component.scss'],
})
export class UserPageComponent {
}
`

const pageMarkup = `<section>
  <div class="card">
    {{ user.name }}
  </div>
</section>
`

// setupProject writes a source component into an in-memory file system.
func setupProject(t *testing.T, source string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(pageDir, "user-page.component.ts"), []byte(source), 0644))
	require.NoError(t, afero.WriteFile(fs, pageTemplate, []byte(pageMarkup), 0644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(pageDir, "user-page.component.scss"), []byte(".card { padding: 1rem; }\n"), 0644))
	return fs
}

// testGlobal returns a global config whose lock directory is private to t.
func testGlobal(t *testing.T) *config.GlobalConfig {
	t.Helper()

	return &config.GlobalConfig{
		Guard: config.GuardConfig{
			Mode:           "wait",
			LockDir:        t.TempDir(),
			RetryDelayMS:   5,
			TimeoutSeconds: 1,
		},
		Log: config.LogConfig{Level: "info"},
	}
}

// testStreams captures output and feeds stdin.
type testStreams struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func (s *testStreams) io(fs afero.Fs, stdin string) extractIO {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return extractIO{
		FS:     fs,
		Stdin:  strings.NewReader(stdin),
		Stdout: &s.stdout,
		Stderr: &s.stderr,
		Logger: log,
	}
}
