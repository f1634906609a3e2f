package easyparse

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Schema formats accepted by ParseSchema
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Schema is a file representation of a registry's switch configuration.
type Schema struct {
	StrictLong bool             `yaml:"strict_long" toml:"strict_long"`
	Booleans   []BooleanSchema  `yaml:"booleans" toml:"booleans"`
	Arguments  []ArgumentSchema `yaml:"arguments" toml:"arguments"`
	Options    []OptionSchema   `yaml:"options" toml:"options"`
}

// BooleanSchema describes one boolean switch
type BooleanSchema struct {
	Long    string `yaml:"long" toml:"long"`
	Short   string `yaml:"short" toml:"short"`
	Default bool   `yaml:"default" toml:"default"`
}

// ArgumentSchema describes one argument switch
type ArgumentSchema struct {
	Long       string   `yaml:"long" toml:"long"`
	Short      string   `yaml:"short" toml:"short"`
	ShortValue []string `yaml:"short_value" toml:"short_value"`
	Default    []string `yaml:"default" toml:"default"`
}

// OptionSchema describes one option switch
type OptionSchema struct {
	Long    string   `yaml:"long" toml:"long"`
	Options []string `yaml:"options" toml:"options"`
	Default int      `yaml:"default" toml:"default"`
}

// LoadSchema reads a schema file, choosing the decoder by extension:
// .toml for TOML, .yaml, .yml and .json for YAML (a JSON document is valid YAML).
func LoadSchema(path string) (*Schema, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	schema, err := ParseSchema(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schema, nil
}

// ParseSchema decodes a schema document. Unknown keys are rejected.
func ParseSchema(data []byte, format string) (*Schema, error) {
	var schema Schema

	switch strings.ToLower(format) {
	case FormatYAML, "yml", FormatJSON:
		if err := yaml.UnmarshalWithOptions(data, &schema, yaml.DisallowUnknownField()); err != nil {
			return nil, fmt.Errorf("decode schema: %w", err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&schema)
		if err != nil {
			return nil, fmt.Errorf("decode schema: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode schema: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported schema format: %q", format)
	}

	return &schema, nil
}

func formatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported schema format: %s (use .yaml, .yml, .json or .toml)", ext)
	}
}

// Registry builds a registry from the schema, registering booleans,
// arguments and options in file order. Registration errors are available
// through the registry's Err method.
func (s *Schema) Registry() *Registry {
	reg := New().
		Reserve(len(s.Booleans), len(s.Arguments), len(s.Options)).
		StrictLong(s.StrictLong)

	for _, b := range s.Booleans {
		reg.BoolSwitch(b.Long, b.Short, b.Default)
	}
	for _, a := range s.Arguments {
		reg.ArgSwitch(a.Long, a.Short, a.ShortValue, a.Default)
	}
	for _, o := range s.Options {
		reg.OptSwitch(o.Long, o.Options, o.Default)
	}
	return reg
}
