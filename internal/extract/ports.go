package extract

import "context"

// Editor exposes the host editor state needed by one extraction.
type Editor interface {
	// DocumentPath is the path of the active document.
	DocumentPath() string

	// DocumentText is the full text of the active document.
	DocumentText() string

	// Selection is the user's current text selection.
	Selection() string

	// PromptName asks the user for a component name.
	// A cancelled prompt returns an empty string and no error.
	PromptName(ctx context.Context, placeholder string) (string, error)

	// ShowError displays a user-visible error message.
	ShowError(msg string)
}

// FileSystem is the file-system port used for every read and write.
type FileSystem interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte) error
	// CreateDirectory creates path and any missing parents.
	CreateDirectory(ctx context.Context, path string) error
}

// Guard serializes extractions that target the same directory.
type Guard interface {
	// Acquire blocks or fails while another extraction holds key.
	// The returned release func must be called exactly once.
	Acquire(ctx context.Context, key string) (release func() error, err error)
}

type nopGuard struct{}

func (nopGuard) Acquire(ctx context.Context, key string) (func() error, error) {
	return func() error { return nil }, nil
}
