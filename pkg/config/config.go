package config

import (
	"bytes"
	"fmt"
	"os"

	_ "embed"

	"github.com/slingproj/sling/pkg/execs"
	"github.com/slingproj/sling/pkg/expand"
	"github.com/slingproj/sling/pkg/schema"
	"github.com/slingproj/sling/pkg/yaml"
)

var (
	//go:embed experiment.v1beta1.json
	schemaJSON []byte

	ValidAPIVersions = []string{
		"sling.dev/v1beta1",
	}
	ValidKinds = []string{
		"Experiment",
	}

	DefaultValidator = schema.MustNewValidator(
		"https://raw.githubusercontent.com/slingproj/sling/refs/heads/main/pkg/config/experiment.v1beta1.json",
		schemaJSON,
	)
)

// Experiment is the top-level configuration: one named experiment whose
// parameter grid expands into a batch of jobs, all submitted via the same
// command.
type Experiment struct {
	// Submit is the scheduler command each expanded job is handed to.
	Submit *execs.Command `json:"submit" jsonschema:"title=Submit Command"`
	// Parameters maps parameter names to a scalar or a list of values.
	Parameters map[string]expand.Value `json:"parameters,omitempty" jsonschema:"title=Parameters"`
	// Labels are static labels attached to every job, before sanitization.
	Labels map[string]string `json:"labels,omitempty" jsonschema:"title=Labels"`
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion,omitempty" jsonschema:"title=API Version"`
	// Kind defines the type of configuration.
	Kind string `json:"kind,omitempty" jsonschema:"title=Kind"`
	// Name identifies the experiment; it prefixes job names and labels.
	Name string `json:"name" jsonschema:"title=Name"`
}

// New creates an [Experiment] with defaults applied.
func New() *Experiment {
	e := &Experiment{}
	e.EnsureDefaults()

	return e
}

// EnsureDefaults fills unset fields and attaches the caller environment to
// the submit command.
func (e *Experiment) EnsureDefaults() {
	if e.APIVersion == "" {
		e.APIVersion = ValidAPIVersions[0]
	}

	if e.Kind == "" {
		e.Kind = ValidKinds[0]
	}

	if e.Submit == nil {
		cmd := execs.NewCommand(os.Environ())
		e.Submit = &cmd
	} else {
		e.Submit.SetBaseEnv(os.Environ())
	}
}

// MarshalYAML encodes the experiment with the repo-wide encoder settings.
func (e *Experiment) MarshalYAML() ([]byte, error) {
	b := &bytes.Buffer{}

	enc := yaml.NewEncoder(b)

	err := enc.Encode(*e)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b.Bytes(), nil
}
