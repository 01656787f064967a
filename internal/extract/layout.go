package extract

import (
	"path/filepath"
	"strings"

	"github.com/mvp-joe/ngcomp/internal/naming"
	"github.com/mvp-joe/ngcomp/internal/rewrite"
)

// Layout describes how generated component files are named.
type Layout struct {
	Infix       string // "component" in user-card.component.ts
	ScriptExt   string
	TemplateExt string
	StyleExt    string
	ClassSuffix string
}

// DefaultLayout returns the Angular CLI naming convention.
func DefaultLayout() Layout {
	return Layout{
		Infix:       "component",
		ScriptExt:   ".ts",
		TemplateExt: ".html",
		StyleExt:    ".scss",
		ClassSuffix: "Component",
	}
}

// ArtifactSet is the directory and files produced by one extraction.
type ArtifactSet struct {
	Name         naming.Name `json:"-"`
	Dir          string      `json:"dir"`
	ClassPath    string      `json:"classPath"`
	TemplatePath string      `json:"templatePath"`
	StylePath    string      `json:"stylePath"`
	// MissingFields lists metadata fields that could not be rewritten.
	MissingFields []string `json:"missingFields,omitempty"`
}

// Artifacts computes the artifact paths for a component under parentDir.
func (l Layout) Artifacts(parentDir string, name naming.Name) *ArtifactSet {
	dir := filepath.Join(parentDir, name.Dashed)
	return &ArtifactSet{
		Name:         name,
		Dir:          dir,
		ClassPath:    filepath.Join(dir, l.fileName(name.Dashed, l.ScriptExt)),
		TemplatePath: filepath.Join(dir, l.fileName(name.Dashed, l.TemplateExt)),
		StylePath:    filepath.Join(dir, l.fileName(name.Dashed, l.StyleExt)),
	}
}

// TemplateURL is the relative template reference written into the class.
func (l Layout) TemplateURL(dashed string) string {
	return "./" + l.fileName(dashed, l.TemplateExt)
}

// StyleURL is the relative stylesheet reference written into the class.
func (l Layout) StyleURL(dashed string) string {
	return "./" + l.fileName(dashed, l.StyleExt)
}

// ClassName is the class declared in the rewritten class source.
// An empty ClassSuffix falls back to rewrite.DefaultClassSuffix.
func (l Layout) ClassName(classified string) string {
	if l.ClassSuffix == "" {
		return classified + rewrite.DefaultClassSuffix
	}
	return classified + l.ClassSuffix
}

func (l Layout) fileName(dashed, ext string) string {
	if l.Infix == "" {
		return dashed + ext
	}
	return dashed + "." + l.Infix + ext
}

// Sibling replaces the last extension of path with ext.
//
// Examples:
//   - /app/user/user.component.html, .scss -> /app/user/user.component.scss
//   - /app/user/user.component.ts, .ts -> /app/user/user.component.ts
//   - /app/README, .scss -> /app/README.scss
func Sibling(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
