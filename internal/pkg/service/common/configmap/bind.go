package configmap

import (
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sfpd/picklist-dependency/internal/pkg/env"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

type BindSpec struct {
	// Flags is an already parsed FlagSet, if nil, flags are generated from the target and Args are parsed.
	Flags       *pflag.FlagSet
	Args        []string
	EnvNaming   *env.NamingConvention
	Envs        env.Provider
	ConfigFiles []string
}

// Bind flags, ENVs and config files to the target configuration structure.
// Each field is set from the source with the highest priority: flag > ENV > config file > default value.
// If the target implements ValueWithValidation, it is normalized and validated.
func Bind(spec BindSpec, target any) error {
	value := reflect.ValueOf(target)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return errors.Errorf(`cannot bind to type "%T": it is not a pointer to a struct`, target)
	}

	flags := spec.Flags
	if flags == nil {
		flags = pflag.NewFlagSet("", pflag.ContinueOnError)
		if err := GenerateFlags(flags, target); err != nil {
			return err
		}
		if err := flags.Parse(spec.Args); err != nil {
			return err
		}
	}

	registry, err := newRegistry(spec.ConfigFiles)
	if err != nil {
		return err
	}

	errs := errors.NewMultiError()
	err = visitFields(value, nil, func(f field) error {
		raw, setBy := lookup(registry, flags, spec, f)
		if setBy == SetByDefault {
			if f.Wrapper != nil {
				f.Wrapper.setValue(f.Value.Interface(), SetByDefault)
			}
			return nil
		}

		converted, err := convert(raw, f.Value.Type())
		if err != nil {
			errs.Append(errors.Errorf(`invalid "%s" value "%v": %w`, f.FlagName, raw, err))
			return nil
		}

		if f.Wrapper != nil {
			f.Wrapper.setValue(converted.Interface(), setBy)
		} else {
			f.Value.Set(converted)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}

	if v, ok := target.(ValueWithValidation); ok {
		v.Normalize()
		if err := v.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// newRegistry creates the Viper registry and loads config files into it.
func newRegistry(configFiles []string) (*viper.Viper, error) {
	registry := viper.New()
	for _, path := range configFiles {
		registry.SetConfigFile(path)
		if err := registry.MergeInConfig(); err != nil {
			return nil, errors.PrefixErrorf(err, `cannot load config file "%s"`, path)
		}
	}
	return registry, nil
}

// lookup returns the raw value of the field and its source.
// A changed flag is bound to the registry, an ENV is set to the registry only if the flag is not changed.
func lookup(registry *viper.Viper, flags *pflag.FlagSet, spec BindSpec, f field) (any, SetBy) {
	key := f.Path

	if flag := flags.Lookup(f.FlagName); flag != nil && flag.Changed {
		if err := registry.BindPFlag(key, flag); err == nil {
			return registry.Get(key), SetByFlag
		}
	}

	if spec.Envs != nil && spec.EnvNaming != nil {
		if v, found := spec.Envs.Lookup(spec.EnvNaming.FlagToEnv(f.FlagName)); found {
			registry.Set(key, v)
			return registry.Get(key), SetByEnv
		}
	}

	if registry.InConfig(strings.ToLower(key)) || registry.IsSet(key) {
		return registry.Get(key), SetByConfig
	}

	return nil, SetByDefault
}

// convert the raw value from a flag, ENV or config file to the target type.
func convert(raw any, target reflect.Type) (reflect.Value, error) {
	var v any
	var err error

	switch target {
	case reflect.TypeOf(time.Duration(0)):
		v, err = cast.ToDurationE(raw)
	case reflect.TypeOf([]string(nil)):
		v, err = cast.ToStringSliceE(raw)
	default:
		switch target.Kind() {
		case reflect.String:
			v, err = cast.ToStringE(raw)
		case reflect.Bool:
			v, err = cast.ToBoolE(raw)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v, err = cast.ToInt64E(raw)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			v, err = cast.ToUint64E(raw)
		case reflect.Float32, reflect.Float64:
			v, err = cast.ToFloat64E(raw)
		default:
			return reflect.Value{}, errors.Errorf(`unsupported type "%s"`, target.String())
		}
	}
	if err != nil {
		return reflect.Value{}, err
	}

	// Convert to custom types, for example "type MyString string"
	return reflect.ValueOf(v).Convert(target), nil
}
