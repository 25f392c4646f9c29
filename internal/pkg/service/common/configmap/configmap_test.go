package configmap

import (
	"strings"
	"time"

	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

type CustomStringType string

type TestConfig struct {
	Embedded     `configKey:",squash"`
	Ignored      string
	CustomString CustomStringType `configKey:"customString"`
	StringSlice  []string         `configKey:"stringSlice"`
	Int          int              `configKey:"int" configShorthand:"i"`
	Float        float64          `configKey:"float"`
	Bool         bool             `configKey:"bool"`
	Usage        string           `configKey:"stringWithUsage" configUsage:"An usage text."`
	Duration     time.Duration    `configKey:"duration"`
	Nested       Nested           `configKey:"nested"`
}

type TestConfigWithValueStruct struct {
	TargetOrg Value[string]        `configKey:"target-org" configShorthand:"u"`
	LF        Value[bool]          `configKey:"lf"`
	Timeout   Value[time.Duration] `configKey:"timeout"`
	Nested    NestedValue          `configKey:"nested"`
}

type TestConfigWithValidation struct {
	Foo string `configKey:"foo"`
}

func (c *TestConfigWithValidation) Normalize() {
	c.Foo = strings.TrimSpace(c.Foo)
}

func (c *TestConfigWithValidation) Validate() error {
	if c.Foo == "" {
		return errors.New(`"foo" is a required field`)
	}
	return nil
}

type Embedded struct {
	EmbeddedField string `configKey:"embedded"`
}

type Nested struct {
	Ignored string
	Foo     string `configKey:"foo"`
	Bar     int    `configKey:"bar"`
}

type NestedValue struct {
	S3Bucket Value[string] `configKey:"s3Bucket"`
}
