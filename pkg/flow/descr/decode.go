package descr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Decoding is strict: unknown keys and values of the wrong type are
// reported as a *VerifyError wrapping ErrSchema. Decoded descriptions are
// not otherwise checked; call Verify before use.

// FromMap decodes a description held in generic maps and lists, such as a
// document decoded elsewhere.
func FromMap(m map[string]any) (*Plan, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, verifyErr(ErrSchema, "", "encode map: %v", err)
	}
	return FromJSON(data)
}

// FromJSON decodes a JSON description.
func FromJSON(data []byte) (*Plan, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var p Plan
	if err := dec.Decode(&p); err != nil {
		return nil, verifyErr(ErrSchema, "", "parse json: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, verifyErr(ErrSchema, "", "parse json: trailing data after description")
	}
	return &p, nil
}

// FromYAML decodes a YAML description.
func FromYAML(data []byte) (*Plan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, verifyErr(ErrSchema, "", "parse yaml: empty document")
		}
		return nil, verifyErr(ErrSchema, "", "parse yaml: %v", err)
	}
	return &p, nil
}

// FromTOML decodes a TOML description. Nodes are written as [[nodes]]
// tables with nested [nodes.work] and [nodes.work.worker] tables.
func FromTOML(data []byte) (*Plan, error) {
	var p Plan
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return nil, verifyErr(ErrSchema, "", "parse toml: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, verifyErr(ErrSchema, keys[0], "unknown keys: %s", strings.Join(keys, ", "))
	}
	return &p, nil
}

// FromFile reads a description, detecting the format by extension.
// Supported extensions: .json, .yaml, .yml, .toml, .hcl
func FromFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan description: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return FromJSON(data)
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".toml":
		return FromTOML(data)
	case ".hcl":
		return FromHCL(data, path)
	default:
		return nil, fmt.Errorf("unsupported plan description extension: %s", ext)
	}
}

// Marshal encodes a description as indented JSON.
func Marshal(p *Plan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
