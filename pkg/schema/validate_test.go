package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slingproj/sling/pkg/schema"
)

const testSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"args": {"type": "array", "items": {"type": "string"}}
	}
}`

func newTestValidator(t *testing.T) *schema.Validator {
	t.Helper()

	v, err := schema.NewValidator("https://example.com/test.json", []byte(testSchema))
	require.NoError(t, err)

	return v
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		data         any
		expectedPath string
	}{
		"valid data": {
			data: map[string]any{"name": "ok"},
		},
		"missing required field": {
			data:         map[string]any{},
			expectedPath: "$",
		},
		"wrong type at named field": {
			data:         map[string]any{"name": true},
			expectedPath: "$.name",
		},
		"wrong type inside array": {
			data: map[string]any{
				"name": "ok",
				"args": []any{"fine", true},
			},
			expectedPath: "$.args[1]",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v := newTestValidator(t)

			err := v.Validate(tc.data)
			if tc.expectedPath == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)

			var validationErr *schema.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.expectedPath, validationErr.Path.String())
		})
	}
}

func TestNewValidator_InvalidSchema(t *testing.T) {
	t.Parallel()

	_, err := schema.NewValidator("https://example.com/bad.json", []byte("not json"))
	require.Error(t, err)
}

func TestMustNewValidator_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		schema.MustNewValidator("https://example.com/bad.json", []byte("not json"))
	})
}
