package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slingproj/sling/internal/cli"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := cli.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	return path
}

func TestLabelsCmd(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "labels", "--", "--foo", "bar", "--flag")
	require.NoError(t, err)

	assert.Equal(t, "flag: \"\"\nfoo: bar\n", stdout)
}

func TestLabelsCmd_NoTokens(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "labels")
	require.NoError(t, err)

	assert.Equal(t, "{}\n", stdout)
}

func TestExpandCmd(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
name: exp
parameters:
  lr: [0.01, 0.1]
submit:
  command: echo
`)

	stdout, _, err := execute(t, "expand", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "name: exp-1")
	assert.Contains(t, stdout, "name: exp-2")
	assert.Contains(t, stdout, "experiment: exp")
}

func TestExpandCmd_InvalidConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "submit:\n  command: echo\n")

	_, _, err := execute(t, "expand", path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid config")
}

func TestExpandCmd_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "expand", "does-not-exist.yaml")
	require.Error(t, err)
}

func TestSubmitCmd_DryRun(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
name: exp
parameters:
  lr: [0.01, 0.1]
submit:
  command: "false"
`)

	_, _, err := execute(t, "submit", path, "--dry-run")
	require.NoError(t, err)
}

func TestSubmitCmd(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
name: exp
parameters:
  epochs: 1
submit:
  command: echo
`)

	_, _, err := execute(t, "submit", path)
	require.NoError(t, err)
}

func TestSubmitCmd_TooManyArgs(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "submit", "a.yaml", "b.yaml")
	require.Error(t, err)
}
