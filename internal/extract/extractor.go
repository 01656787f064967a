// Package extract turns a selected markup fragment into a new component.
//
// An extraction reads the class source and stylesheet that sit next to the
// active document, rewrites the class metadata for the new component name,
// and writes three artifacts into a new directory next to the document:
//
//	<dir>/<dashed>/<dashed>.component.ts    rewritten class source
//	<dir>/<dashed>/<dashed>.component.html  the selected markup, verbatim
//	<dir>/<dashed>/<dashed>.component.scss  the sibling stylesheet, verbatim
//
// Host integration is expressed through the Editor and FileSystem ports;
// Command is the single invocable action a host binds to its command
// surface.
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mvp-joe/ngcomp/internal/naming"
	"github.com/mvp-joe/ngcomp/internal/rewrite"
)

var (
	// ErrEmptySelection indicates there is no selected markup to extract.
	ErrEmptySelection = errors.New("selection is empty")

	// ErrEmptyName indicates a blank component name.
	ErrEmptyName = naming.ErrEmptyName

	// ErrNoDirectory indicates the active document has no resolvable directory.
	ErrNoDirectory = errors.New("cannot resolve document directory")
)

// Request is the complete input of one extraction.
type Request struct {
	DocumentPath string
	Selection    string
	Name         string
}

// Extractor performs extractions against a FileSystem.
type Extractor struct {
	fs       FileSystem
	layout   Layout
	guard    Guard
	progress ProgressReporter
	strict   bool
	log      logrus.FieldLogger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLayout overrides the generated file naming.
func WithLayout(layout Layout) Option {
	return func(e *Extractor) { e.layout = layout }
}

// WithGuard serializes extractions targeting the same directory.
func WithGuard(g Guard) Option {
	return func(e *Extractor) { e.guard = g }
}

// WithProgress sets the progress reporter.
func WithProgress(p ProgressReporter) Option {
	return func(e *Extractor) { e.progress = p }
}

// WithStrict controls whether missing metadata fields abort the extraction.
func WithStrict(strict bool) Option {
	return func(e *Extractor) { e.strict = strict }
}

// WithLogger sets the logger used for extraction events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Extractor) { e.log = log }
}

// NewExtractor creates an Extractor. Strict mode is off by default: missing
// metadata fields are left unchanged and reported in ArtifactSet.MissingFields.
func NewExtractor(fs FileSystem, opts ...Option) *Extractor {
	e := &Extractor{
		fs:       fs,
		layout:   DefaultLayout(),
		guard:    nopGuard{},
		progress: &NoOpProgressReporter{},
		strict:   false,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract materializes req as a new component and returns the written
// artifacts.
//
// All reads and the class rewrite happen before the first write, so input
// errors and strict rewrite failures leave the file system untouched. The
// directory is created before any file is written. A failed write is not
// rolled back.
func (e *Extractor) Extract(ctx context.Context, req Request) (*ArtifactSet, error) {
	if req.Selection == "" {
		return nil, ErrEmptySelection
	}

	name, err := naming.Parse(req.Name)
	if err != nil {
		return nil, err
	}

	parentDir, err := documentDir(req.DocumentPath)
	if err != nil {
		return nil, err
	}

	set := e.layout.Artifacts(parentDir, name)
	log := e.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"target":     set.Dir,
		"dashed":     name.Dashed,
		"class":      name.Classified,
	})

	release, err := e.guard.Acquire(ctx, set.Dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(); err != nil {
			log.WithError(err).Warn("Failed to release target guard")
		}
	}()

	stylePath := Sibling(req.DocumentPath, e.layout.StyleExt)
	styles, err := e.fs.Read(ctx, stylePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read stylesheet %s: %w", stylePath, err)
	}

	classPath := Sibling(req.DocumentPath, e.layout.ScriptExt)
	source, err := e.fs.Read(ctx, classPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read class source %s: %w", classPath, err)
	}

	code, err := rewrite.PrepareComponentCode(string(source), rewrite.Options{
		Selector:    name.Dashed,
		TemplateURL: e.layout.TemplateURL(name.Dashed),
		StyleURL:    e.layout.StyleURL(name.Dashed),
		ClassName:   name.Classified,
		ClassSuffix: e.layout.ClassSuffix,
	})
	if err != nil {
		var missing *rewrite.MissingFieldsError
		if !errors.As(err, &missing) {
			return nil, fmt.Errorf("failed to rewrite %s: %w", classPath, err)
		}
		for _, f := range missing.Fields {
			set.MissingFields = append(set.MissingFields, f.String())
		}
		if e.strict {
			return nil, fmt.Errorf("failed to rewrite %s: %w", classPath, err)
		}
		log.WithField("missing", strings.Join(set.MissingFields, ",")).
			Warn("Class source is missing metadata fields; writing partial rewrite")
	}

	e.progress.OnExtractionStart(set)
	log.Debug("Writing component artifacts")

	if err := e.fs.CreateDirectory(ctx, set.Dir); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", set.Dir, err)
	}
	e.progress.OnStepComplete(StepDirectory, set.Dir)

	writes := []struct {
		step Step
		path string
		data []byte
	}{
		{StepStylesheet, set.StylePath, styles},
		{StepClass, set.ClassPath, []byte(code)},
		{StepTemplate, set.TemplatePath, []byte(req.Selection)},
	}
	for _, w := range writes {
		if err := e.fs.Write(ctx, w.path, w.data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", w.path, err)
		}
		e.progress.OnStepComplete(w.step, w.path)
	}

	e.progress.OnExtractionComplete(set)
	log.Info("Extracted component")

	return set, nil
}

// documentDir returns the directory of path, or ErrNoDirectory when path has
// no directory component.
func documentDir(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrNoDirectory
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return "", fmt.Errorf("%w: %s", ErrNoDirectory, path)
	}
	return dir, nil
}
