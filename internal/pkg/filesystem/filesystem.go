// Package filesystem provides an abstraction over the local or in-memory filesystem.
//
// All paths are relative to the base path of the filesystem.
// The CLI uses the local implementation rooted at the output directory, tests use the memory implementation.
package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/sfpd/picklist-dependency/internal/pkg/log"
)

const (
	PathSeparator = string(filepath.Separator)
	FilePerm      = 0o644
	DirPerm       = 0o755
)

// Fs - filesystem interface.
type Fs interface {
	Name() string // name of the used implementation, for example local, memory, ...
	BasePath() string
	Logger() log.Logger
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	Mkdir(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) bool
	IsFile(ctx context.Context, path string) bool
	IsDir(ctx context.Context, path string) bool
	Remove(ctx context.Context, path string) error
	ReadFile(ctx context.Context, def *FileDef) (*RawFile, error)
	WriteFile(ctx context.Context, file File) error
}

type Option func(c *Config)

type Config struct {
	Logger log.Logger
}

func WithLogger(logger log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

func ProcessOptions(opts []Option) Config {
	c := Config{Logger: log.NewNopLogger()}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Join joins any number of path elements into a single path.
func Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Dir returns all but the last element of path, typically the path's directory.
func Dir(path string) string {
	return filepath.Dir(path)
}

// Base returns the last element of path.
func Base(path string) string {
	return filepath.Base(path)
}

// Rel returns relative path.
func Rel(base, path string) (string, error) {
	return filepath.Rel(base, path)
}

// FromSlash returns the result of replacing each slash ('/') character in path with a separator character.
func FromSlash(path string) string {
	return filepath.FromSlash(path)
}

// ToSlash returns the result of replacing each separator character in path with a slash ('/') character.
func ToSlash(path string) string {
	return filepath.ToSlash(path)
}

// IsFrom returns true if path is from the base dir.
func IsFrom(path, base string) bool {
	base = strings.TrimRight(base, PathSeparator) + PathSeparator
	return strings.HasPrefix(path, base)
}
