package discover

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/mvp-joe/ngcomp/internal/rewrite"
)

// Component is the recognized metadata of one component class file.
type Component struct {
	Path     string            `json:"path"`
	Metadata *rewrite.Metadata `json:"metadata"`
	Missing  []string          `json:"missing,omitempty"`
}

// Complete reports whether every metadata field was found.
func (c *Component) Complete() bool {
	return len(c.Missing) == 0
}

// Inspect reads path and parses its component metadata.
func Inspect(fs afero.Fs, path string) (*Component, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	meta := rewrite.Parse(string(data))
	c := &Component{Path: path, Metadata: meta}
	for _, field := range meta.Missing() {
		c.Missing = append(c.Missing, field.String())
	}
	return c, nil
}

// InspectAll inspects every file, stopping at the first read failure.
func InspectAll(fs afero.Fs, paths []string) ([]*Component, error) {
	components := make([]*Component, 0, len(paths))
	for _, path := range paths {
		c, err := Inspect(fs, path)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, nil
}
