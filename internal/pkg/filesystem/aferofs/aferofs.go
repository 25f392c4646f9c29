// Package aferofs implements the filesystem.Fs interface by the "afero" library.
package aferofs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem"
	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

const memoryBasePath = "__memory__"

type Fs struct {
	name     string
	basePath string
	backend  afero.Fs
	utils    *afero.Afero
	logger   log.Logger
}

// NewLocalFs creates the local filesystem rooted at the basePath.
func NewLocalFs(basePath string, opts ...filesystem.Option) (*Fs, error) {
	// nolint: forbidigo
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `cannot get absolute path of "%s"`, basePath)
	}
	return New("local", absPath, afero.NewBasePathFs(afero.NewOsFs(), absPath), opts...), nil
}

// NewMemoryFs creates the filesystem in the memory.
func NewMemoryFs(opts ...filesystem.Option) *Fs {
	return New("memory", memoryBasePath, afero.NewMemMapFs(), opts...)
}

func New(name, basePath string, backend afero.Fs, opts ...filesystem.Option) *Fs {
	cfg := filesystem.ProcessOptions(opts)
	return &Fs{
		name:     name,
		basePath: basePath,
		backend:  backend,
		utils:    &afero.Afero{Fs: backend},
		logger:   cfg.Logger,
	}
}

func (f *Fs) Name() string {
	return f.name
}

func (f *Fs) BasePath() string {
	return f.basePath
}

func (f *Fs) Logger() log.Logger {
	return f.logger
}

// Backend returns the underlying afero filesystem.
func (f *Fs) Backend() afero.Fs {
	return f.backend
}

func (f *Fs) Stat(_ context.Context, path string) (os.FileInfo, error) {
	return f.backend.Stat(f.normalize(path))
}

func (f *Fs) Mkdir(_ context.Context, path string) error {
	if err := f.backend.MkdirAll(f.normalize(path), filesystem.DirPerm); err != nil {
		return errors.PrefixErrorf(err, `cannot create directory "%s"`, path)
	}
	return nil
}

func (f *Fs) Exists(ctx context.Context, path string) bool {
	_, err := f.Stat(ctx, path)
	return err == nil
}

func (f *Fs) IsFile(ctx context.Context, path string) bool {
	info, err := f.Stat(ctx, path)
	return err == nil && !info.IsDir()
}

func (f *Fs) IsDir(ctx context.Context, path string) bool {
	info, err := f.Stat(ctx, path)
	return err == nil && info.IsDir()
}

func (f *Fs) Remove(_ context.Context, path string) error {
	return f.backend.RemoveAll(f.normalize(path))
}

func (f *Fs) ReadFile(ctx context.Context, def *filesystem.FileDef) (*filesystem.RawFile, error) {
	content, err := f.utils.ReadFile(f.normalize(def.Path()))
	if err != nil {
		return nil, errors.PrefixErrorf(err, `cannot open %s "%s"`, description(def.Description()), def.Path())
	}

	f.logger.Debugf(ctx, `Loaded "%s"`, def.Path())
	return &filesystem.RawFile{FileDef: def, Content: string(content)}, nil
}

// WriteFile writes the file, the parent directory must exist. An existing file is truncated.
func (f *Fs) WriteFile(ctx context.Context, file filesystem.File) error {
	raw, err := file.ToRawFile()
	if err != nil {
		return err
	}

	path := f.normalize(raw.Path())
	if dir := filepath.Dir(path); !f.IsDir(ctx, dir) {
		return errors.Wrapf(os.ErrNotExist, `cannot write %s "%s": directory "%s" not found`, description(raw.Description()), raw.Path(), filepath.Dir(raw.Path()))
	}

	if err := f.utils.WriteFile(path, []byte(raw.Content), filesystem.FilePerm); err != nil {
		return errors.PrefixErrorf(err, `cannot write %s "%s"`, description(raw.Description()), raw.Path())
	}

	f.logger.Debugf(ctx, `Saved "%s"`, raw.Path())
	return nil
}

// normalize converts absolute paths inside the base path to relative ones.
func (f *Fs) normalize(path string) string {
	path = filesystem.FromSlash(path)
	if filepath.IsAbs(path) && filesystem.IsFrom(path, f.basePath) {
		if rel, err := filepath.Rel(f.basePath, path); err == nil {
			path = rel
		}
	}
	if f.name == "memory" {
		path = strings.TrimPrefix(path, memoryBasePath+filesystem.PathSeparator)
	}
	return path
}

func description(desc string) string {
	if desc == "" {
		return "file"
	}
	return desc
}
