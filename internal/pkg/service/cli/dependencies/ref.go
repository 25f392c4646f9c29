package dependencies

import (
	"context"
)

// ProviderRef allows to create commands before the Provider is created.
// The Provider is set when the global flags are parsed.
type ProviderRef struct {
	provider Provider
}

func (r *ProviderRef) Set(provider Provider) {
	r.provider = provider
}

func (r *ProviderRef) BaseScope() BaseScope {
	return r.get().BaseScope()
}

func (r *ProviderRef) RemoteCommandScope(ctx context.Context, cfg RemoteConfig) (RemoteCommandScope, error) {
	return r.get().RemoteCommandScope(ctx, cfg)
}

func (r *ProviderRef) ExportCommandScope(ctx context.Context, remoteCfg RemoteConfig, outputCfg OutputConfig) (ExportCommandScope, error) {
	return r.get().ExportCommandScope(ctx, remoteCfg, outputCfg)
}

func (r *ProviderRef) get() Provider {
	if r.provider == nil {
		panic("dependencies provider is not set")
	}
	return r.provider
}
