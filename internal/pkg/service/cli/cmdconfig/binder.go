package cmdconfig

import (
	"context"
	"reflect"

	"github.com/spf13/pflag"

	"github.com/sfpd/picklist-dependency/internal/pkg/env"
	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/common/configmap"
)

const (
	ENVPrefix = env.Prefix
)

type Binder struct {
	envNaming   *env.NamingConvention
	envs        env.Provider
	configFiles []string
	logger      log.Logger
}

// NewBinder creates a binder of flags, ENVs and optional YAML config files.
func NewBinder(envs env.Provider, l log.Logger, configFiles ...string) *Binder {
	return &Binder{
		envNaming:   env.NewNamingConvention(ENVPrefix),
		envs:        envs,
		configFiles: configFiles,
		logger:      l,
	}
}

func (b *Binder) Bind(ctx context.Context, flags *pflag.FlagSet, args []string, targets ...any) error {
	for _, target := range targets {
		spec := configmap.BindSpec{Flags: flags, Args: args, EnvNaming: b.envNaming, Envs: b.envs, ConfigFiles: b.configFiles}
		if err := configmap.Bind(spec, target); err != nil {
			return err
		}
		b.logger.Debugf(ctx, `Bound config "%s".`, reflect.TypeOf(target).Elem().String())
	}
	return nil
}
