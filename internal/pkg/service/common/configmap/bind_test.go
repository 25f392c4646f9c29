package configmap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfpd/picklist-dependency/internal/pkg/env"
)

// TestBind_Empty tests empty binding without default values.
func TestBind_Empty(t *testing.T) {
	t.Parallel()

	spec := BindSpec{
		EnvNaming: env.NewNamingConvention("MY_APP_"),
		Envs:      env.Empty(),
	}

	target := TestConfig{}
	assert.NoError(t, Bind(spec, &target))
	assert.Equal(t, TestConfig{}, target)
}

// TestBind_DefaultValues tests empty binding with default values.
func TestBind_DefaultValues(t *testing.T) {
	t.Parallel()

	spec := BindSpec{
		EnvNaming: env.NewNamingConvention("MY_APP_"),
		Envs:      env.Empty(),
	}

	expected := TestConfig{
		Embedded: Embedded{EmbeddedField: "default value"},
		Int:      123,
		Float:    4.56,
		Duration: time.Minute,
		Nested:   Nested{Foo: "foo", Bar: 789},
	}
	target := expected

	assert.NoError(t, Bind(spec, &target))
	assert.Equal(t, expected, target)
}

// TestBind_Flags tests binding from flags to the configuration structure.
func TestBind_Flags(t *testing.T) {
	t.Parallel()

	spec := BindSpec{
		Args: []string{
			"--embedded", "foo",
			"--custom-string", "custom",
			"--string-slice", "a,b",
			"-i", "1000",
			"--float", "78.90",
			"--bool",
			"--nested-foo", "def",
			"--nested-bar", "2000",
			"--duration", "100s",
		},
		EnvNaming: env.NewNamingConvention("MY_APP_"),
		Envs:      env.Empty(),
	}

	target := TestConfig{Int: 123}
	require.NoError(t, Bind(spec, &target))
	assert.Equal(t, TestConfig{
		Embedded:     Embedded{EmbeddedField: "foo"},
		CustomString: "custom",
		StringSlice:  []string{"a", "b"},
		Int:          1000,
		Float:        78.90,
		Bool:         true,
		Nested:       Nested{Foo: "def", Bar: 2000},
		Duration:     100 * time.Second,
	}, target)
}

// TestBind_Precedence tests flag > ENV > config file > default value.
func TestBind_Precedence(t *testing.T) {
	t.Parallel()

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("target-org: config-org\nlf: true\nnested:\n  s3Bucket: config-bucket\n"), 0o600))

	envs := env.Empty()
	envs.Set("SFPD_TARGET_ORG", "env-org")
	envs.Set("SFPD_TIMEOUT", "45s")

	spec := BindSpec{
		Args:        []string{"--timeout", "10s"},
		EnvNaming:   env.NewNamingConvention(env.Prefix),
		Envs:        envs,
		ConfigFiles: []string{configFile},
	}

	target := TestConfigWithValueStruct{Timeout: NewValue(30 * time.Second)}
	require.NoError(t, Bind(spec, &target))

	assert.Equal(t, NewValueWithOrigin("env-org", SetByEnv), target.TargetOrg)
	assert.Equal(t, NewValueWithOrigin(true, SetByConfig), target.LF)
	assert.Equal(t, NewValueWithOrigin(10*time.Second, SetByFlag), target.Timeout)
	assert.Equal(t, NewValueWithOrigin("config-bucket", SetByConfig), target.Nested.S3Bucket)
	assert.True(t, target.TargetOrg.IsSet())
}

// TestBind_DefaultValueStruct tests that default values are marked as SetByDefault.
func TestBind_DefaultValueStruct(t *testing.T) {
	t.Parallel()

	spec := BindSpec{
		EnvNaming: env.NewNamingConvention(env.Prefix),
		Envs:      env.Empty(),
	}

	target := TestConfigWithValueStruct{Timeout: NewValue(30 * time.Second)}
	require.NoError(t, Bind(spec, &target))
	assert.Equal(t, NewValueWithOrigin(30*time.Second, SetByDefault), target.Timeout)
	assert.Equal(t, NewValueWithOrigin("", SetByDefault), target.TargetOrg)
	assert.False(t, target.TargetOrg.IsSet())
}

// TestBind_InvalidValue tests conversion error of an ENV value.
func TestBind_InvalidValue(t *testing.T) {
	t.Parallel()

	envs := env.Empty()
	envs.Set("MY_APP_INT", "abc")
	spec := BindSpec{
		EnvNaming: env.NewNamingConvention("MY_APP_"),
		Envs:      envs,
	}

	target := TestConfig{}
	err := Bind(spec, &target)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), `invalid "int" value "abc"`)
	}
}

// TestBind_Validation tests normalization and validation after binding.
func TestBind_Validation(t *testing.T) {
	t.Parallel()

	spec := BindSpec{
		Args:      []string{"--foo", "  bar"},
		EnvNaming: env.NewNamingConvention("MY_APP_"),
		Envs:      env.Empty(),
	}
	target := TestConfigWithValidation{}
	require.NoError(t, Bind(spec, &target))
	assert.Equal(t, "bar", target.Foo)

	spec.Args = nil
	target = TestConfigWithValidation{}
	err := Bind(spec, &target)
	if assert.Error(t, err) {
		assert.Equal(t, `"foo" is a required field`, err.Error())
	}
}
