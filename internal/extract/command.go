package extract

import (
	"context"
	"errors"

	"github.com/mvp-joe/ngcomp/internal/guard"
	"github.com/mvp-joe/ngcomp/internal/rewrite"
)

// User-visible messages shown by Command.
const (
	DefaultNamePlaceholder = "Enter new component name"
	MsgEmptyName           = "Component name cannot be empty"
	MsgNoDirectory         = "Cannot find current folder"
)

// Command is the invocable "extract component" action.
type Command struct {
	editor      Editor
	extractor   *Extractor
	placeholder string
}

// NewCommand binds an extractor to an editor. An empty placeholder uses
// DefaultNamePlaceholder.
func NewCommand(editor Editor, extractor *Extractor, placeholder string) *Command {
	if placeholder == "" {
		placeholder = DefaultNamePlaceholder
	}
	return &Command{
		editor:      editor,
		extractor:   extractor,
		placeholder: placeholder,
	}
}

// Run executes one extraction from the current editor state.
//
// Outcomes:
//   - empty selection: returns (nil, nil) without prompting or messages
//   - empty name or unresolvable directory: shows an error, returns (nil, nil)
//   - missing metadata in strict mode or a busy target: shows an error and
//     returns it
//   - file-system failures: returned unchanged, no message
func (c *Command) Run(ctx context.Context) (*ArtifactSet, error) {
	selection := c.editor.Selection()
	if selection == "" {
		return nil, nil
	}

	name, err := c.editor.PromptName(ctx, c.placeholder)
	if err != nil {
		return nil, err
	}

	set, err := c.extractor.Extract(ctx, Request{
		DocumentPath: c.editor.DocumentPath(),
		Selection:    selection,
		Name:         name,
	})
	switch {
	case err == nil:
		return set, nil
	case errors.Is(err, ErrEmptySelection):
		return nil, nil
	case errors.Is(err, ErrEmptyName):
		c.editor.ShowError(MsgEmptyName)
		return nil, nil
	case errors.Is(err, ErrNoDirectory):
		c.editor.ShowError(MsgNoDirectory)
		return nil, nil
	case errors.Is(err, rewrite.ErrFieldNotFound), errors.Is(err, guard.ErrInFlight):
		c.editor.ShowError(err.Error())
		return nil, err
	default:
		return nil, err
	}
}
