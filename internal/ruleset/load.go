package ruleset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Load reads a ruleset file, picking the codec by extension:
// .cue, .yaml/.yml, or .json.
func Load(path string) (*Ruleset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return LoadCUE(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".json":
		return LoadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported ruleset format: %s", filepath.Ext(path))
	}
}

// LoadCUE compiles a single CUE file and extracts the "bracket" struct.
func LoadCUE(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	bracketVal := v.LookupPath(cue.ParsePath("bracket"))
	if !bracketVal.Exists() {
		return nil, &CompileError{
			Field:   "bracket",
			Message: fmt.Sprintf("no bracket declaration found in %s", path),
			Pos:     v.Pos(),
		}
	}

	return CompileRuleset(bracketVal)
}

// LoadYAML reads a YAML ruleset with strict field validation, so typos in
// hand-authored files fail loudly instead of silently dropping slots.
func LoadYAML(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset: %w", err)
	}

	var r Ruleset
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&r); err != nil {
		return nil, fmt.Errorf("parse YAML ruleset: %w", err)
	}
	return &r, nil
}

// LoadJSON reads a JSON ruleset.
func LoadJSON(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset: %w", err)
	}

	var r Ruleset
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse JSON ruleset: %w", err)
	}
	return &r, nil
}

// EncodeJSON writes the ruleset as indented JSON without HTML escaping.
func EncodeJSON(r Ruleset) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode ruleset: %w", err)
	}
	return buf.Bytes(), nil
}
