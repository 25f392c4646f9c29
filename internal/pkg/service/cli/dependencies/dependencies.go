// Package dependencies provides dependencies for command line interface.
//
// # Dependency Containers
//
// Following dependencies containers are implemented:
//   - [BaseScope] interface provides basic CLI dependencies.
//   - [RemoteCommandScope] interface provides dependencies for commands that read from the target org.
//   - [ExportCommandScope] interface provides dependencies for commands that write an artifact to the output directory.
//
// These containers can be obtained from the [Provider], it can be created by [NewProvider].
package dependencies

import (
	"context"
	"io"

	"github.com/sfpd/picklist-dependency/internal/pkg/artifact"
	"github.com/sfpd/picklist-dependency/internal/pkg/env"
	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem"
	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/salesforce"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/cmdconfig"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/cli/flag"
	"github.com/sfpd/picklist-dependency/internal/pkg/telemetry"
)

// BaseScope interface provides basic CLI dependencies.
type BaseScope interface {
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
	Environment() env.Provider
	ConfigBinder() *cmdconfig.Binder
	GlobalFlags() flag.GlobalFlags
	WorkingDir() string
	Stdout() io.Writer
	Stderr() io.Writer
}

// RemoteCommandScope interface provides dependencies for commands that read from the target org.
// It requires a resolved org with the instance URL and the access token.
type RemoteCommandScope interface {
	BaseScope
	Org() salesforce.Org
	MetadataAPI() *salesforce.MetadataAPI
}

// ExportCommandScope interface provides dependencies for commands that write an artifact.
// The Fs is rooted at the output directory.
type ExportCommandScope interface {
	RemoteCommandScope
	Fs() filesystem.Fs
	// ArtifactMirror returns nil if no mirror is configured.
	ArtifactMirror() artifact.Mirror
}

// Provider of CLI dependencies.
type Provider interface {
	BaseScope() BaseScope
	RemoteCommandScope(ctx context.Context, cfg RemoteConfig) (RemoteCommandScope, error)
	// ExportCommandScope checks the output directory first, and then connects to the org,
	// so an invalid output directory takes precedence over missing credentials.
	ExportCommandScope(ctx context.Context, remoteCfg RemoteConfig, outputCfg OutputConfig) (ExportCommandScope, error)
}
