// Package config holds the optimizer configuration.
//
// The surrounding compiler driver loads a tern-opt.yaml next to the build
// manifest and hands the resulting Options to the optimizer. Everything in
// the file is optional; a missing file means default options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Options configures the optimizer passes.
type Options struct {
	// CodeGenTypes names host-emitted code-generation classes. The
	// tightener must not touch them: their shape is a contract with the
	// host's generated code.
	CodeGenTypes []string `yaml:"codegenTypes,omitempty"`

	// Instantiated names classes the host instantiates outside the
	// program's view (reflection-style entry points). They count as
	// allocated even when no `new` expression survives in the IR.
	Instantiated []string `yaml:"instantiated,omitempty"`

	// Trace enables per-decision trace output on stderr.
	Trace bool `yaml:"trace,omitempty"`
}

// Load reads and parses an options file. A missing file is not an error;
// it yields default options.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Options{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	opts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return opts, nil
}

// Parse parses options from YAML. Unknown keys are rejected so a typo in
// the options file fails loudly instead of silently disabling a knob.
func Parse(data []byte) (*Options, error) {
	var opts Options
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		if errors.Is(err, io.EOF) {
			return &Options{}, nil
		}
		return nil, err
	}
	for _, name := range opts.CodeGenTypes {
		if name == "" {
			return nil, fmt.Errorf("codegenTypes: empty type name")
		}
	}
	for _, name := range opts.Instantiated {
		if name == "" {
			return nil, fmt.Errorf("instantiated: empty type name")
		}
	}
	return &opts, nil
}
