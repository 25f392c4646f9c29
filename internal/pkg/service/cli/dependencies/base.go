package dependencies

import (
	"io"

	"github.com/sfpd/picklist-dependency/internal/pkg/env"
	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/cmdconfig"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/flag"
	"github.com/sfpd/picklist-dependency/internal/pkg/telemetry"
)

// baseScope dependencies container implements BaseScope interface.
type baseScope struct {
	logger       log.Logger
	telemetry    telemetry.Telemetry
	envs         env.Provider
	configBinder *cmdconfig.Binder
	globalFlags  flag.GlobalFlags
	workingDir   string
	stdout       io.Writer
	stderr       io.Writer
}

func newBaseScope(
	logger log.Logger,
	tel telemetry.Telemetry,
	envs env.Provider,
	globalFlags flag.GlobalFlags,
	workingDir string,
	stdout io.Writer,
	stderr io.Writer,
) *baseScope {
	var configFiles []string
	if path := globalFlags.Config.Value; path != "" {
		configFiles = append(configFiles, absPath(workingDir, path))
	}

	return &baseScope{
		logger:       logger,
		telemetry:    tel,
		envs:         envs,
		configBinder: cmdconfig.NewBinder(envs, logger, configFiles...),
		globalFlags:  globalFlags,
		workingDir:   workingDir,
		stdout:       stdout,
		stderr:       stderr,
	}
}

func (v *baseScope) Logger() log.Logger {
	return v.logger
}

func (v *baseScope) Telemetry() telemetry.Telemetry {
	return v.telemetry
}

func (v *baseScope) Environment() env.Provider {
	return v.envs
}

func (v *baseScope) ConfigBinder() *cmdconfig.Binder {
	return v.configBinder
}

func (v *baseScope) GlobalFlags() flag.GlobalFlags {
	return v.globalFlags
}

func (v *baseScope) WorkingDir() string {
	return v.workingDir
}

func (v *baseScope) Stdout() io.Writer {
	return v.stdout
}

func (v *baseScope) Stderr() io.Writer {
	return v.stderr
}
