package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/slingproj/sling/pkg/yaml"
)

// Validator validates configuration data against a schema.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*Loader)

// WithValidator sets a custom validator.
func WithValidator(v Validator) LoaderOpt {
	return func(l *Loader) {
		l.validator = v
	}
}

// Loader parses and validates experiment configuration data.
type Loader struct {
	validator Validator
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] from byte data.
func NewLoaderFromBytes(data []byte, opts ...LoaderOpt) *Loader {
	l := &Loader{
		data:      data,
		validator: DefaultValidator,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// NewLoaderFromFile creates a [Loader] from a file path.
func NewLoaderFromFile(path string, opts ...LoaderOpt) (*Loader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return NewLoaderFromBytes(data, opts...), nil
}

// Validate validates the configuration data against the schema.
func (l *Loader) Validate() error {
	var anyConfig any

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(&anyConfig)
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	if l.validator != nil {
		err = l.validator.Validate(anyConfig)
		if err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}

	return nil
}

// Load parses and returns the experiment, with defaults applied and env
// patterns compiled.
func (l *Loader) Load() (*Experiment, error) {
	e := &Experiment{}

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(e)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	e.EnsureDefaults()

	err = e.Submit.CompilePatterns()
	if err != nil {
		return nil, fmt.Errorf("compile submit env patterns: %w", err)
	}

	return e, nil
}
