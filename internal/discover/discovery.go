// Package discover finds component class files under a directory tree.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery walks a tree and keeps files matching the component patterns.
type Discovery struct {
	fs             afero.Fs
	components     []compiledPattern
	ignorePatterns []compiledPattern
}

// New compiles the component and ignore patterns.
func New(fs afero.Fs, components, ignore []string) (*Discovery, error) {
	d := &Discovery{fs: fs}

	var err error
	if d.components, err = compileAll(components); err != nil {
		return nil, err
	}
	if d.ignorePatterns, err = compileAll(ignore); err != nil {
		return nil, err
	}

	return d, nil
}

func compileAll(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// Walk returns the component files under root, sorted.
// Ignored directories are not descended into.
func (d *Discovery) Walk(root string) ([]string, error) {
	files := []string{}

	err := afero.Walk(d.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		if d.shouldIgnore(relPath) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if matchesAny(relPath, d.components) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Resolve expands CLI arguments into component files. Directories are walked,
// existing files are kept as given, anything else is treated as a glob over
// the working tree.
func (d *Discovery) Resolve(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	seen := make(map[string]bool)
	var out []string
	add := func(paths ...string) {
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}

	for _, arg := range args {
		info, err := d.fs.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			files, err := d.Walk(arg)
			if err != nil {
				return nil, err
			}
			add(files...)
		case err == nil:
			add(arg)
		default:
			files, err := d.glob(arg)
			if err != nil {
				return nil, err
			}
			add(files...)
		}
	}

	return out, nil
}

// glob matches a pattern against every non-ignored file below the pattern's
// literal prefix. A pattern without wildcards that does not exist matches
// nothing.
func (d *Discovery) glob(pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	base, ok := globBase(pattern)
	if !ok {
		return nil, nil
	}
	if _, err := d.fs.Stat(base); err != nil {
		return nil, nil
	}

	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}
	cp := []compiledPattern{{pattern: pattern, glob: g}}

	var files []string
	err = afero.Walk(d.fs, base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && d.shouldIgnore(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.IsDir() && matchesAny(filepath.ToSlash(path), cp) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// globBase returns the directory made of the leading pattern segments that
// hold no glob syntax. ok is false when the pattern has no glob syntax.
func globBase(pattern string) (string, bool) {
	if !strings.ContainsAny(pattern, globMeta) {
		return "", false
	}

	segments := strings.Split(pattern, "/")
	var literal []string
	for _, seg := range segments[:len(segments)-1] {
		if strings.ContainsAny(seg, globMeta) {
			break
		}
		literal = append(literal, seg)
	}

	base := strings.Join(literal, "/")
	switch {
	case base == "" && strings.HasPrefix(pattern, "/"):
		return "/", true
	case base == "":
		return ".", true
	}
	return filepath.FromSlash(base), true
}

const globMeta = "*?[{\\"

// shouldIgnore checks if a path matches any ignore pattern.
func (d *Discovery) shouldIgnore(relPath string) bool {
	if matchesAny(relPath, d.ignorePatterns) {
		return true
	}

	// "node_modules" should match pattern "node_modules/**"
	return matchesAny(relPath+"/**", d.ignorePatterns)
}

// matchesAny checks if a path matches any of the given patterns. A path in the
// root also matches patterns with a leading "**/", so "**/*.component.ts"
// finds "app.component.ts".
func matchesAny(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	if strings.Contains(path, "/") {
		return false
	}
	for _, cp := range patterns {
		if !strings.HasPrefix(cp.pattern, "**/") {
			continue
		}
		if g, err := glob.Compile(strings.TrimPrefix(cp.pattern, "**/"), '/'); err == nil && g.Match(path) {
			return true
		}
	}

	return false
}
