// Package configmap maps a configuration structure to CLI flags, ENVs and config files.
//
// Each field tagged by "configKey" is mapped to a flag, for example "artifact.s3Bucket" -> "--artifact-s3-bucket".
// The ENV name is generated from the flag name, for example "SFPD_ARTIFACT_S3_BUCKET".
//
// Precedence: flag > ENV > config file > default value.
package configmap

import (
	"reflect"
	"strings"

	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

const (
	configKeyTag       = "configKey"
	configUsageTag     = "configUsage"
	configShorthandTag = "configShorthand"
	tagValuesSeparator = ","
)

// SetBy describes the source of a configuration value.
type SetBy int

const (
	SetByUnknown SetBy = iota
	SetByDefault
	SetByConfig
	SetByEnv
	SetByFlag
)

// ValueWithValidation is an optional interface of the configuration structure.
type ValueWithValidation interface {
	Normalize()
	Validate() error
}

// Value wraps a configuration value and records its source.
type Value[T any] struct {
	Value T
	SetBy SetBy
}

type valueType interface {
	value() reflect.Value
	setValue(v any, setBy SetBy)
	IsSet() bool
}

func NewValue[T any](v T) Value[T] {
	return Value[T]{Value: v, SetBy: SetByDefault}
}

func NewValueWithOrigin[T any](v T, setBy SetBy) Value[T] {
	return Value[T]{Value: v, SetBy: setBy}
}

// IsSet returns true if the value was set by a flag, an ENV or a config file.
func (v *Value[T]) IsSet() bool {
	return v.SetBy > SetByDefault
}

func (v *Value[T]) value() reflect.Value {
	return reflect.ValueOf(&v.Value).Elem()
}

func (v *Value[T]) setValue(value any, setBy SetBy) {
	v.Value = value.(T) // nolint: forcetypeassert
	v.SetBy = setBy
}

func (s SetBy) String() string {
	switch s {
	case SetByDefault:
		return "default"
	case SetByConfig:
		return "config"
	case SetByEnv:
		return "env"
	case SetByFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// field is a leaf of the configuration structure.
type field struct {
	Path      string
	FlagName  string
	Usage     string
	Shorthand string
	Value     reflect.Value // addressable primitive value
	Wrapper   valueType     // nil if the field is not a Value[T]
}

// visitFields calls fn for each leaf field tagged by the "configKey".
func visitFields(value reflect.Value, parent []string, fn func(f field) error) error {
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return errors.Errorf(`cannot map type "%s": it is not a struct or a pointer to a struct`, value.Type().String())
	}

	for i := 0; i < value.NumField(); i++ {
		structField := value.Type().Field(i)
		if !structField.IsExported() {
			continue
		}

		tag, found := structField.Tag.Lookup(configKeyTag)
		if !found {
			continue
		}

		parts := strings.Split(tag, tagValuesSeparator)
		name := parts[0]
		fieldValue := value.Field(i)

		switch {
		case name == "" && len(parts) == 2 && parts[1] == "squash":
			// Iterate a squashed/embedded struct
			if err := visitFields(fieldValue, parent, fn); err != nil {
				return err
			}
			continue
		case name == "" || name == "-":
			continue
		}

		path := append(append([]string{}, parent...), name)
		f := field{
			Path:      strings.Join(path, "."),
			FlagName:  fieldToFlagName(strings.Join(path, ".")),
			Usage:     structField.Tag.Get(configUsageTag),
			Shorthand: structField.Tag.Get(configShorthandTag),
		}

		if wrapper, ok := fieldValue.Addr().Interface().(valueType); ok {
			f.Wrapper = wrapper
			f.Value = wrapper.value()
		} else if fieldValue.Kind() == reflect.Struct && fieldValue.Type().String() != "time.Time" {
			if err := visitFields(fieldValue, path, fn); err != nil {
				return err
			}
			continue
		} else {
			f.Value = fieldValue
		}

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// reflectValue returns an addressable value of the structure.
func reflectValue(v any) reflect.Value {
	value := reflect.ValueOf(v)
	if value.Kind() == reflect.Pointer {
		return value
	}
	ptr := reflect.New(value.Type())
	ptr.Elem().Set(value)
	return ptr
}
