package flag

import (
	"github.com/sfpd/picklist-dependency/internal/pkg/service/common/configmap"
)

const (
	DefaultStateDir  = "~/.sfdx"
	DefaultLogFormat = "console"
)

// GlobalFlags are persistent flags of all commands.
type GlobalFlags struct {
	Help       bool                    `configKey:"help" configShorthand:"h" configUsage:"print help for command"`
	LogFile    configmap.Value[string] `configKey:"log-file" configShorthand:"l" configUsage:"path to a log file for details"`
	LogFormat  configmap.Value[string] `configKey:"log-format" configUsage:"format of stdout and stderr, \"console\" or \"json\""`
	Verbose    configmap.Value[bool]   `configKey:"verbose" configShorthand:"v" configUsage:"print details"`
	VerboseAPI configmap.Value[bool]   `configKey:"verbose-api" configUsage:"log each API request and response"`
	WorkingDir configmap.Value[string] `configKey:"working-dir" configUsage:"use other working directory"`
	StateDir   configmap.Value[string] `configKey:"state-dir" configUsage:"directory with org aliases and auth files"`
	Config     configmap.Value[string] `configKey:"config" configUsage:"path to a YAML config file"`
}

func DefaultGlobalFlags() GlobalFlags {
	return GlobalFlags{
		LogFormat: configmap.NewValue(DefaultLogFormat),
		StateDir:  configmap.NewValue(DefaultStateDir),
	}
}
