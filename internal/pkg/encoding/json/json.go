// Package json wraps the json-iterator library configured as compatible with the standard library.
package json

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

// nolint: gochecknoglobals
var api = jsoniter.ConfigCompatibleWithStandardLibrary

func Encode(v any, pretty bool) ([]byte, error) {
	var data []byte
	var err error
	if pretty {
		data, err = api.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	} else {
		data, err = api.Marshal(v)
	}
	if err != nil {
		return nil, processJSONEncodeError(err)
	}
	return data, nil
}

func EncodeString(v any, pretty bool) (string, error) {
	data, err := Encode(v, pretty)
	return string(data), err
}

func MustEncode(v any, pretty bool) []byte {
	data, err := Encode(v, pretty)
	if err != nil {
		panic(err)
	}
	return data
}

func MustEncodeString(v any, pretty bool) string {
	return string(MustEncode(v, pretty))
}

func Decode(data []byte, m any) error {
	if err := api.Unmarshal(data, m); err != nil {
		return processJSONDecodeError(err)
	}
	return nil
}

func DecodeString(data string, m any) error {
	return Decode([]byte(data), m)
}

func MustDecodeString(data string, m any) {
	if err := DecodeString(data, m); err != nil {
		panic(err)
	}
}

func processJSONEncodeError(err error) error {
	return errors.PrefixError(err, "json encoding error")
}

func processJSONDecodeError(err error) error {
	return errors.PrefixError(err, "invalid json")
}
