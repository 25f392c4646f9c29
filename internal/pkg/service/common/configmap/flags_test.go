package configmap

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFlags(t *testing.T) {
	t.Parallel()

	fs := pflag.NewFlagSet("", pflag.ContinueOnError)
	in := TestConfig{Int: 123, Duration: time.Minute, Nested: Nested{Foo: "foo"}}
	require.NoError(t, GenerateFlags(fs, in))

	var names []string
	fs.VisitAll(func(flag *pflag.Flag) {
		names = append(names, flag.Name)
	})
	assert.Equal(t, []string{
		"bool",
		"custom-string",
		"duration",
		"embedded",
		"float",
		"int",
		"nested-bar",
		"nested-foo",
		"string-slice",
		"string-with-usage",
	}, names)

	assert.Equal(t, "123", fs.Lookup("int").DefValue)
	assert.Equal(t, "i", fs.Lookup("int").Shorthand)
	assert.Equal(t, "1m0s", fs.Lookup("duration").DefValue)
	assert.Equal(t, "foo", fs.Lookup("nested-foo").DefValue)
	assert.Equal(t, "An usage text.", fs.Lookup("string-with-usage").Usage)
}

func TestGenerateFlags_ValueStruct(t *testing.T) {
	t.Parallel()

	fs := pflag.NewFlagSet("", pflag.ContinueOnError)
	in := &TestConfigWithValueStruct{Timeout: NewValue(30 * time.Second)}
	MustGenerateFlags(fs, in)

	assert.Equal(t, "u", fs.Lookup("target-org").Shorthand)
	assert.Equal(t, "bool", fs.Lookup("lf").Value.Type())
	assert.Equal(t, "30s", fs.Lookup("timeout").DefValue)
	assert.NotNil(t, fs.Lookup("nested-s3-bucket"))
}

func TestGenerateFlags_NotStruct(t *testing.T) {
	t.Parallel()

	fs := pflag.NewFlagSet("", pflag.ContinueOnError)
	err := GenerateFlags(fs, "foo")
	if assert.Error(t, err) {
		assert.Equal(t, `cannot map type "string": it is not a struct or a pointer to a struct`, err.Error())
	}
}
