// Package artifact persists the rendered CSV as "<controlling>-<dependent>.csv".
package artifact

import (
	"context"

	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem"
	"github.com/sfpd/picklist-dependency/internal/pkg/log"
)

const Extension = ".csv"

// Mirror stores a copy of the written artifact, for example in an object storage.
type Mirror interface {
	Put(ctx context.Context, name string, content string) (location string, err error)
}

type Writer struct {
	fs     filesystem.Fs
	logger log.Logger
}

func FileName(controlling, dependent string) string {
	return controlling + "-" + dependent + Extension
}

// Path joins the directory and the file name, trailing separators of the directory are ignored.
func Path(dir, controlling, dependent string) string {
	return filesystem.Join(dir, FileName(controlling, dependent))
}

func NewWriter(fs filesystem.Fs, logger log.Logger) *Writer {
	return &Writer{fs: fs, logger: logger.WithComponent("artifact")}
}

// Write replaces the file content, the directory must exist.
// Returns path of the file relative to the filesystem base path.
func (w *Writer) Write(ctx context.Context, dir, controlling, dependent, content string) (string, error) {
	path := Path(dir, controlling, dependent)
	file := filesystem.NewRawFile(path, content).SetDescription("dependency table")
	if err := w.fs.WriteFile(ctx, file); err != nil {
		return "", err
	}
	w.logger.Debugf(ctx, `Written %d bytes to "%s".`, len(content), path)
	return path, nil
}

// AbsPath returns the path including the filesystem base path.
func (w *Writer) AbsPath(path string) string {
	return filesystem.Join(w.fs.BasePath(), path)
}
