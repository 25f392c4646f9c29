package configmap

import (
	"reflect"
	"time"

	"github.com/spf13/pflag"

	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

func MustGenerateFlags(fs *pflag.FlagSet, v any) {
	if err := GenerateFlags(fs, v); err != nil {
		panic(err)
	}
}

// GenerateFlags generates FlagSet from the provided configuration structure.
// Each field tagged by "configKey" tag is mapped to a flag.
// Field can optionally have the "configUsage" tag.
// Field can optionally have the "configShorthand" tag.
// The current value of the field is used as the default value of the flag.
func GenerateFlags(fs *pflag.FlagSet, v any) error {
	return visitFields(reflectValue(v), nil, func(f field) error {
		if f.FlagName == "" {
			return nil
		}

		flagName, shorthand, usage := f.FlagName, f.Shorthand, f.Usage
		switch v := f.Value.Interface().(type) {
		case time.Duration:
			if v == 0 {
				fs.StringP(flagName, shorthand, "", usage)
			} else {
				fs.DurationP(flagName, shorthand, v, usage)
			}
		case bool:
			fs.BoolP(flagName, shorthand, v, usage)
		case []string:
			fs.StringSliceP(flagName, shorthand, v, usage)
		default:
			switch f.Value.Kind() {
			case reflect.String:
				fs.StringP(flagName, shorthand, f.Value.String(), usage)
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				fs.Int64P(flagName, shorthand, f.Value.Int(), usage)
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				fs.Uint64P(flagName, shorthand, f.Value.Uint(), usage)
			case reflect.Float32, reflect.Float64:
				fs.Float64P(flagName, shorthand, f.Value.Float(), usage)
			default:
				return errors.Errorf(`unexpected type "%T", please implement some method to convert the type to string`, f.Value.Interface())
			}
		}
		return nil
	})
}
