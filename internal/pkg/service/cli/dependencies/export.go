package dependencies

import (
	"context"
	"net/http"

	"github.com/sfpd/picklist-dependency/internal/pkg/artifact"
	"github.com/sfpd/picklist-dependency/internal/pkg/artifact/s3mirror"
	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem"
	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem/aferofs"
	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

// OutputConfig defines where the artifact is written.
type OutputConfig struct {
	// Dir must be an existing directory, relative to the working directory or absolute.
	Dir    string
	Mirror s3mirror.Config
}

// exportCommandScope dependencies container implements ExportCommandScope interface.
type exportCommandScope struct {
	RemoteCommandScope
	fs     filesystem.Fs
	mirror artifact.Mirror
}

func newOutputFs(ctx context.Context, baseScp BaseScope, dir string) (filesystem.Fs, error) {
	if dir == "" {
		return nil, errors.New("output directory is not set")
	}

	fs, err := aferofs.NewLocalFs(absPath(baseScp.WorkingDir(), dir), filesystem.WithLogger(baseScp.Logger()))
	if err != nil {
		return nil, err
	}

	switch {
	case !fs.Exists(ctx, "."):
		return nil, errors.Errorf(`output directory "%s" does not exist`, dir)
	case !fs.IsDir(ctx, "."):
		return nil, errors.Errorf(`output path "%s" is not a directory`, dir)
	}

	baseScp.Logger().Debugf(ctx, `Output dir: %s`, fs.BasePath())
	return fs, nil
}

func newArtifactMirror(cfg s3mirror.Config, logger log.Logger, transport http.RoundTripper) (artifact.Mirror, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	var opts []s3mirror.Option
	if transport != nil {
		opts = append(opts, s3mirror.WithTransport(transport))
	}

	mirror, err := s3mirror.New(cfg, logger, opts...)
	if err != nil {
		return nil, err
	}
	return mirror, nil
}

func (v *exportCommandScope) Fs() filesystem.Fs {
	return v.fs
}

func (v *exportCommandScope) ArtifactMirror() artifact.Mirror {
	return v.mirror
}
