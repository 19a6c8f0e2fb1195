package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFileType = errors.New("unsupported file type")

// Unmarshal decodes the generic config data into v. Durations are read from strings like "15s"
// and every type implementing encoding.TextUnmarshaler, e.g. datasize.ByteSize, from its text.
func Unmarshal(cfg any, v any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           v,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(cfg)
}

// ReadConfigFile decodes the YAML or JSON file at filename into v.
func ReadConfigFile(filename string, v any) error {
	bb, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	return decode(filepath.Ext(filename), bb, v)
}

// Parse decodes YAML data into a generic config map.
func Parse(bb []byte) (map[string]any, error) {
	data := map[string]any{}
	if err := decode(".yml", bb, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func decode(ext string, bb []byte, v any) error {
	switch ext {
	case ".json":
		if err := json.Unmarshal(bb, v); err != nil {
			return err
		}
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(bb, v); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
	return nil
}
