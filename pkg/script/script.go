// Package script describes edit sessions as data.
//
// A script is an ordered list of steps, each of which becomes one engine
// transaction. Scripts are written in TOML or YAML:
//
//	# TOML
//	[[steps]]
//	op = "pin"
//	component = "R1"
//	pin = "1"
//	at = [0.0, 0.0]
//
//	[[steps]]
//	op = "path"
//	points = [[0.0, 0.0], [100.0, 0.0], [100.0, 50.0]]
//	width = 0.25
//
//	# YAML
//	steps:
//	  - op: label
//	    at: [100, 0]
//	    label: SDA
//
// The operations are path, pin, delete, move, meta and label. Steps that
// address an existing vertex may name it by ID (vertex), by pin
// (component + pin) or by position (at).
package script

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/errors"
)

// Formats accepted by Parse.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Script is a named sequence of steps.
type Script struct {
	Name  string `toml:"name" yaml:"name" json:"name,omitempty"`
	Steps []Step `toml:"steps" yaml:"steps" json:"steps"`
}

// Load reads a script, choosing the format from the file extension.
func Load(path string) (Script, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Script{}, err
	}
	format, err := FormatOf(path)
	if err != nil {
		return Script{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Script{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s", path)
	}
	if err != nil {
		return Script{}, errors.Wrap(errors.ErrCodeInvalidScript, err, "read %s", path)
	}
	s, err := Parse(data, format)
	if err != nil {
		return Script{}, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// FormatOf maps a file extension to a script format.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot tell script format of %q (want .toml, .yaml or .json)", path)
}

// Parse decodes a script in the given format and validates every step.
func Parse(data []byte, format string) (Script, error) {
	var s Script
	var err error
	switch strings.ToLower(format) {
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &s)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return Script{}, errors.New(errors.ErrCodeInvalidScript, "unknown key %q", undecoded[0].String())
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&s)
		if err == io.EOF {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	default:
		return Script{}, errors.ValidateFormat(format, FormatTOML, FormatYAML, FormatJSON)
	}
	if err != nil {
		return Script{}, errors.Wrap(errors.ErrCodeInvalidScript, err, "decode %s script", format)
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// DecodeStep reads one JSON-encoded step, as posted to the inspection server.
func DecodeStep(r io.Reader) (Step, error) {
	var st Step
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&st); err != nil {
		return Step{}, errors.Wrap(errors.ErrCodeInvalidScript, err, "decode step")
	}
	if err := st.Validate(); err != nil {
		return Step{}, err
	}
	return st, nil
}

// Validate checks every step.
func (s Script) Validate() error {
	for i, st := range s.Steps {
		if err := st.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScript, err, "step %d", i+1)
		}
	}
	return nil
}

// Run executes the steps in order and returns one delta per step. It stops at
// the first step that cannot be resolved against the current graph.
func (s Script) Run(eng *engine.Engine) ([]engine.Delta, error) {
	deltas := make([]engine.Delta, 0, len(s.Steps))
	for i, st := range s.Steps {
		d, err := st.Run(eng)
		if err != nil {
			return deltas, errors.Wrap(errors.ErrCodeInvalidScript, err, "step %d", i+1)
		}
		deltas = append(deltas, d)
	}
	return deltas, nil
}
