package extract

import (
	"context"
	"os"

	"github.com/spf13/afero"
)

const (
	filePerm = 0644
	dirPerm  = 0755
)

// aferoFileSystem implements FileSystem on top of an afero.Fs.
type aferoFileSystem struct {
	fs afero.Fs
}

// NewFileSystem returns a FileSystem backed by fs.
func NewFileSystem(fs afero.Fs) FileSystem {
	return &aferoFileSystem{fs: fs}
}

// NewOSFileSystem returns a FileSystem backed by the host file system.
func NewOSFileSystem() FileSystem {
	return NewFileSystem(afero.NewOsFs())
}

func (a *aferoFileSystem) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return afero.ReadFile(a.fs, path)
}

func (a *aferoFileSystem) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return afero.WriteFile(a.fs, path, data, os.FileMode(filePerm))
}

func (a *aferoFileSystem) CreateDirectory(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.fs.MkdirAll(path, os.FileMode(dirPerm))
}
