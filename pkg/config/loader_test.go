package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slingproj/sling/pkg/config"
	"github.com/slingproj/sling/pkg/expand"
)

const validExperiment = `
apiVersion: sling.dev/v1beta1
kind: Experiment
name: mnist
labels:
  owner: sam
parameters:
  lr: [0.01, 0.1]
  model: cnn
submit:
  command: gcloud
  args: [ai-platform, jobs, submit, training]
  envFrom:
    - callerRef:
        pattern: ^CLOUDSDK_
`

func TestLoader_Validate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		data        string
		expectedErr string
	}{
		"valid experiment": {
			data: validExperiment,
		},
		"minimal experiment": {
			data: `
name: e
submit:
  command: echo
`,
		},
		"missing name": {
			data: `
submit:
  command: echo
`,
			expectedErr: "validate config",
		},
		"missing submit command": {
			data: `
name: e
submit:
  args: [x]
`,
			expectedErr: "validate config",
		},
		"nested parameter value": {
			data: `
name: e
parameters:
  bad:
    nested: true
submit:
  command: echo
`,
			expectedErr: "validate config",
		},
		"unknown top-level field": {
			data: `
name: e
submit:
  command: echo
unexpected: field
`,
			expectedErr: "validate config",
		},
		"wrong api version": {
			data: `
apiVersion: sling.dev/v1
name: e
submit:
  command: echo
`,
			expectedErr: "validate config",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := config.NewLoaderFromBytes([]byte(tc.data))

			err := l.Validate()
			if tc.expectedErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tc.expectedErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	l := config.NewLoaderFromBytes([]byte(validExperiment))

	e, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "mnist", e.Name)
	assert.Equal(t, "sling.dev/v1beta1", e.APIVersion)
	assert.Equal(t, "Experiment", e.Kind)
	assert.Equal(t, map[string]string{"owner": "sam"}, e.Labels)

	require.NotNil(t, e.Submit)
	assert.Equal(t, "gcloud", e.Submit.Command)
	assert.Equal(t, []string{"ai-platform", "jobs", "submit", "training"}, e.Submit.Args)

	require.Contains(t, e.Parameters, "lr")
	require.Contains(t, e.Parameters, "model")
	assert.Len(t, e.Parameters["lr"].Items(), 2)
	assert.True(t, e.Parameters["model"].IsScalar())
	assert.Equal(t, []any{"cnn"}, e.Parameters["model"].Items())
}

func TestLoader_Load_Defaults(t *testing.T) {
	t.Parallel()

	l := config.NewLoaderFromBytes([]byte("name: e\nsubmit:\n  command: echo\n"))

	e, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "sling.dev/v1beta1", e.APIVersion)
	assert.Equal(t, "Experiment", e.Kind)
	assert.Equal(t, expand.Count(e.Parameters), 1)
}

func TestLoader_Load_BadEnvPattern(t *testing.T) {
	t.Parallel()

	data := `
name: e
submit:
  command: echo
  envFrom:
    - callerRef:
        pattern: "["
`

	l := config.NewLoaderFromBytes([]byte(data))

	_, err := l.Load()
	require.Error(t, err)
	assert.ErrorContains(t, err, "compile submit env patterns")
}

func TestNewLoaderFromFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := config.NewLoaderFromFile("testdata/does-not-exist.yaml")
	require.Error(t, err)
}

func TestExperiment_MarshalYAML(t *testing.T) {
	t.Parallel()

	e := config.New()
	e.Name = "roundtrip"

	out, err := e.MarshalYAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "name: roundtrip")
	assert.Contains(t, string(out), "apiVersion: sling.dev/v1beta1")
}
