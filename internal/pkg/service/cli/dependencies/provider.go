package dependencies

import (
	"context"
	"io"

	"github.com/sfpd/picklist-dependency/internal/pkg/env"
	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/flag"
)

type provider struct {
	config    config
	baseScope *baseScope
}

func NewProvider(
	logger log.Logger,
	envs env.Provider,
	globalFlags flag.GlobalFlags,
	workingDir string,
	stdout io.Writer,
	stderr io.Writer,
	opts ...Option,
) Provider {
	cfg := newConfig(opts)
	return &provider{
		config:    cfg,
		baseScope: newBaseScope(logger, cfg.telemetry, envs, globalFlags, workingDir, stdout, stderr),
	}
}

func (v *provider) BaseScope() BaseScope {
	return v.baseScope
}

func (v *provider) RemoteCommandScope(ctx context.Context, cfg RemoteConfig) (RemoteCommandScope, error) {
	return newRemoteCommandScope(ctx, v.baseScope, cfg, v.config.httpTransport)
}

func (v *provider) ExportCommandScope(ctx context.Context, remoteCfg RemoteConfig, outputCfg OutputConfig) (ExportCommandScope, error) {
	fs, err := newOutputFs(ctx, v.baseScope, outputCfg.Dir)
	if err != nil {
		return nil, err
	}

	mirror, err := newArtifactMirror(outputCfg.Mirror, v.baseScope.Logger(), v.config.httpTransport)
	if err != nil {
		return nil, err
	}

	remoteScp, err := v.RemoteCommandScope(ctx, remoteCfg)
	if err != nil {
		return nil, err
	}

	return &exportCommandScope{RemoteCommandScope: remoteScp, fs: fs, mirror: mirror}, nil
}
