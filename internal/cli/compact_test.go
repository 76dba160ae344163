package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSpec = `{"openapi":"3.0.0","servers":[{"url":"https://api.pets.dev"}],"paths":{"/pets":{"get":{"summary":"List all pets","responses":{"200":{"content":{"application/json":{"schema":{"$ref":"#/components/schemas/Pets"}}}}}}}},"components":{"schemas":{"Pets":{"type":"array","items":{"type":"string"}}}}}`

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	oldWd, _ := os.Getwd()
	os.Chdir(t.TempDir())
	defer os.Chdir(oldWd)

	cmd := CompactCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCompactCommand(t *testing.T) {
	specPath := filepath.Join(t.TempDir(), "api.json")
	require.NoError(t, os.WriteFile(specPath, []byte(testSpec), 0644))

	out, errOut, err := runCommand(t, "--spec", specPath)
	require.NoError(t, err)

	want := `{"host":"https://api.pets.dev","endpoints":[{"m":"get","p":"/pets","desc":"List all pets","res":"Pets","codes":[200]}],"schemas":{"Pets":{"type":"array","items":"string"}}}`
	require.Equal(t, want+"\n", out)
	require.Contains(t, errOut, "reduced")
}

func TestCompactCommandOutputFile(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "api.json")
	outPath := filepath.Join(dir, "compact.json")
	require.NoError(t, os.WriteFile(specPath, []byte(testSpec), 0644))

	out, errOut, err := runCommand(t, "--spec", specPath, "--output", outPath)
	require.NoError(t, err)
	require.Empty(t, out)
	require.Contains(t, errOut, "Written: "+outPath)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(written), `{"host":`))
}

func TestCompactCommandStdin(t *testing.T) {
	oldWd, _ := os.Getwd()
	os.Chdir(t.TempDir())
	defer os.Chdir(oldWd)

	cmd := CompactCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(testSpec))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--spec", "-"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), `"endpoints"`)
}

func TestCompactCommandMissingSpec(t *testing.T) {
	_, _, err := runCommand(t)
	require.Error(t, err)
	require.Contains(t, err.Error(), "spec file is required")
}

func TestCompactCommandMalformedSpec(t *testing.T) {
	specPath := filepath.Join(t.TempDir(), "api.json")
	require.NoError(t, os.WriteFile(specPath, []byte(`{"paths": [`), 0644))

	_, _, err := runCommand(t, "--spec", specPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unrecognized document format")
}
