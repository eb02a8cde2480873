package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FromFile loads a parameter set from a file, detecting the format by extension.
// Supported extensions: .yaml, .yml, .json, .toml
func FromFile(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("read params file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	case ".toml":
		return FromTOML(data)
	default:
		return Params{}, fmt.Errorf("unsupported params file extension: %s", ext)
	}
}

// FromYAML parses YAML data into Params.
func FromYAML(data []byte) (Params, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Params{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses JSON data into Params.
func FromJSON(data []byte) (Params, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Params{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}

// FromTOML parses TOML data into Params.
func FromTOML(data []byte) (Params, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return Params{}, fmt.Errorf("parse toml: %w", err)
	}
	return New(m), nil
}
