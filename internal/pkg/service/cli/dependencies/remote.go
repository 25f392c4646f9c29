package dependencies

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem"
	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem/aferofs"
	"github.com/sfpd/picklist-dependency/internal/pkg/salesforce"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

// RemoteConfig identifies the target org.
type RemoteConfig struct {
	// TargetOrg is an alias or a username.
	TargetOrg   string
	Credentials salesforce.Credentials
	APIVersion  string
}

// remoteCommandScope dependencies container implements RemoteCommandScope interface.
type remoteCommandScope struct {
	BaseScope
	org         salesforce.Org
	metadataAPI *salesforce.MetadataAPI
}

func newRemoteCommandScope(ctx context.Context, baseScp BaseScope, cfg RemoteConfig, transport http.RoundTripper) (*remoteCommandScope, error) {
	logger := baseScp.Logger()

	// Open the state directory, it may not exist
	stateDir, err := stateDirPath(baseScp.WorkingDir(), baseScp.GlobalFlags().StateDir.Value)
	if err != nil {
		return nil, err
	}
	stateFs, err := aferofs.NewLocalFs(stateDir, filesystem.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	// Resolve alias/username and credentials
	org, err := salesforce.ResolveOrg(ctx, stateFs, cfg.TargetOrg, cfg.Credentials)
	if err != nil {
		return nil, err
	}

	// Create API client
	opts := []salesforce.ClientOption{salesforce.WithVerbose(baseScp.GlobalFlags().VerboseAPI.Value)}
	if transport != nil {
		opts = append(opts, salesforce.WithTransport(transport))
	}
	client := salesforce.NewClient(logger, baseScp.Telemetry(), org.InstanceURL, opts...)

	return &remoteCommandScope{
		BaseScope:   baseScp,
		org:         org,
		metadataAPI: salesforce.NewMetadataAPI(client, baseScp.Telemetry(), org.AccessToken, cfg.APIVersion),
	}, nil
}

func (v *remoteCommandScope) Org() salesforce.Org {
	return v.org
}

func (v *remoteCommandScope) MetadataAPI() *salesforce.MetadataAPI {
	return v.metadataAPI
}

// stateDirPath expands the "~" prefix to the home directory.
func stateDirPath(workingDir, path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.PrefixError(err, "cannot expand state directory path")
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~")) // nolint: forbidigo
	}
	return absPath(workingDir, path), nil
}

// absPath resolves the path relative to the working directory.
func absPath(workingDir, path string) string {
	if filepath.IsAbs(path) { // nolint: forbidigo
		return path
	}
	return filepath.Join(workingDir, path) // nolint: forbidigo
}
