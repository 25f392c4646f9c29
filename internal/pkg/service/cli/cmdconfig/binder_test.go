package cmdconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfpd/picklist-dependency/internal/pkg/env"
	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/service/common/configmap"
)

type testFlags struct {
	TargetOrg  configmap.Value[string] `configKey:"target-org" configShorthand:"u"`
	Dependent  configmap.Value[string] `configKey:"dependent" configShorthand:"d"`
	APIVersion configmap.Value[string] `configKey:"api-version"`
	LF         configmap.Value[bool]   `configKey:"lf"`
}

func TestBinder_Precedence(t *testing.T) {
	t.Parallel()

	// Config file
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("target-org: from-file\ndependent: Case.Reason__c\napi-version: \"58.0\"\n"), 0o600))

	// ENVs
	envs := env.Empty()
	envs.Set("SFPD_TARGET_ORG", "from-env")
	envs.Set("SFPD_DEPENDENT", "Case.Type__c")

	// Flags
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	configmap.MustGenerateFlags(flags, testFlags{APIVersion: configmap.NewValue("60.0")})
	require.NoError(t, flags.Parse([]string{"-u", "from-flag"}))

	logger := log.NewDebugLogger()
	target := testFlags{APIVersion: configmap.NewValue("60.0")}
	require.NoError(t, NewBinder(envs, logger, configFile).Bind(context.Background(), flags, nil, &target))

	assert.Equal(t, configmap.NewValueWithOrigin("from-flag", configmap.SetByFlag), target.TargetOrg)
	assert.Equal(t, configmap.NewValueWithOrigin("Case.Type__c", configmap.SetByEnv), target.Dependent)
	assert.Equal(t, configmap.NewValueWithOrigin("58.0", configmap.SetByConfig), target.APIVersion)
	assert.Equal(t, configmap.NewValueWithOrigin(false, configmap.SetByDefault), target.LF)
	assert.Contains(t, logger.DebugMessages(), `Bound config "cmdconfig.testFlags".`)
}

func TestBinder_InvalidValue(t *testing.T) {
	t.Parallel()

	envs := env.Empty()
	envs.Set("SFPD_LF", "maybe")

	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	configmap.MustGenerateFlags(flags, testFlags{})
	require.NoError(t, flags.Parse(nil))

	target := testFlags{}
	err := NewBinder(envs, log.NewNopLogger()).Bind(context.Background(), flags, nil, &target)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), `invalid "lf" value "maybe"`)
	}
}
