package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModel = `
subtables: [disks]
attrs:
  - name: id
    display: 1
  - name: label
    display: 2
  - name: region
  - name: size
    table: disks
    display: 1
`

const testData = `{
  "data": [
    {"id": 1, "label": "web", "region": "us-east", "disks": [{"size": 10}, {"size": 20}]},
    {"id": 2, "label": "db", "region": "eu-west", "disks": []}
  ],
  "page": 1,
  "pages": 2
}`

// resetFlags restores every flag to its default so tests do not leak state
// through the package-level command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFixtures(t *testing.T) (modelPath, dataPath string) {
	t.Helper()
	dir := t.TempDir()
	modelPath = filepath.Join(dir, "model.yaml")
	dataPath = filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(modelPath, []byte(testModel), 0o600))
	require.NoError(t, os.WriteFile(dataPath, []byte(testData), 0o600))
	return modelPath, dataPath
}

func TestRenderDelimited(t *testing.T) {
	model, data := writeFixtures(t)

	out, _, err := runCommand(t, "render", "--model", model, "--text", "--delimiter", ",", data)
	require.NoError(t, err)
	assert.Equal(t, "id,label\n1,web\n2,db\nsize\n10\n20\n", out)
}

func TestRenderColumnSelection(t *testing.T) {
	model, data := writeFixtures(t)

	out, _, err := runCommand(t, "render", "--model", model, "--text", "--no-headers", "--format", "region,id", data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "us-east\t1\neu-west\t2\n"), out)

	out, _, err = runCommand(t, "render", "--model", model, "--text", "--all-columns", data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "id\tlabel\tregion\n"), out)
}

func TestRenderJSON(t *testing.T) {
	model, data := writeFixtures(t)

	out, _, err := runCommand(t, "render", "--model", model, "--json", data)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `[{"id": 1, "label": "web"}, {"id": 2, "label": "db"}]`, lines[0])
	assert.Equal(t, `[{"size": 10}, {"size": 20}]`, lines[1])
}

func TestRenderTablePageFooter(t *testing.T) {
	model, data := writeFixtures(t)

	out, _, err := runCommand(t, "render", "--model", model, data)
	require.NoError(t, err)
	assert.Contains(t, out, "web")
	assert.Contains(t, out, "disks")
	assert.Contains(t, out, "Page 1 of 2.")

	out, _, err = runCommand(t, "render", "--model", model, "--markdown", data)
	require.NoError(t, err)
	assert.NotContains(t, out, "Page 1 of 2.")
}

func TestRenderFromStdin(t *testing.T) {
	model, _ := writeFixtures(t)
	rootCmd.SetIn(strings.NewReader(`[{"id": 5, "label": "solo", "disks": {"size": 1}}]`))
	defer rootCmd.SetIn(nil)

	out, _, err := runCommand(t, "render", "--model", model, "-o", "delimited", "-")
	require.NoError(t, err)
	assert.Equal(t, "id\tlabel\n5\tsolo\nsize\n1\n", out)
}

func TestRenderMissingSubtable(t *testing.T) {
	model, _ := writeFixtures(t)
	dir := t.TempDir()
	data := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(data, []byte(`[{"id": 1, "label": "x"}]`), 0o600))

	out, _, err := runCommand(t, "render", "--model", model, "--text", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sublist path not found in data: disks")
	assert.Equal(t, "id\tlabel\n1\tx\n", out)
}

func TestRenderUnknownMode(t *testing.T) {
	model, data := writeFixtures(t)

	out, _, err := runCommand(t, "render", "--model", model, "-o", "yaml", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output mode")
	assert.Empty(t, out)
}

func TestPrintRows(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "rows.json")
	require.NoError(t, os.WriteFile(data, []byte(`[["1", "a"], ["2", "b"]]`), 0o600))

	out, _, err := runCommand(t, "print", "--header", "id,label", "--text", "--delimiter", ",", data)
	require.NoError(t, err)
	assert.Equal(t, "id,label\n1,a\n2,b\n", out)

	out, _, err = runCommand(t, "print", "--header", "id,label", "--json", data)
	require.NoError(t, err)
	assert.Equal(t, `[{"id": "1", "label": "a"}, {"id": "2", "label": "b"}]`+"\n", out)
}

func TestPrintRejectsNonArray(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "obj.json")
	require.NoError(t, os.WriteFile(data, []byte(`{"id": 1}`), 0o600))

	_, _, err := runCommand(t, "print", "--header", "id", data)
	assert.Error(t, err)
}

func TestModes(t *testing.T) {
	out, _, err := runCommand(t, "modes", "--text", "--no-headers")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "table\t"))
}

func TestRenderAdvisory(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(model, []byte("warning: nested output\nattrs: [{name: id, display: 1}]\n"), 0o600))
	data := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(data, []byte(`[{"id": 1}]`), 0o600))

	_, stderr, err := runCommand(t, "render", "--model", model, "--text", data)
	require.NoError(t, err)
	assert.Contains(t, stderr, "nested output")

	_, stderr, err = runCommand(t, "render", "--model", model, "--text", "--suppress-warnings", data)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "nested output")
}

func TestConfigSetFeedsRender(t *testing.T) {
	model, data := writeFixtures(t)
	home := t.TempDir()

	run := func(args ...string) (string, string, error) {
		viper.Reset()
		t.Setenv("HOME", home)
		resetFlags(rootCmd)
		var stdout, stderr bytes.Buffer
		rootCmd.SetOut(&stdout)
		rootCmd.SetErr(&stderr)
		rootCmd.SetArgs(args)
		err := rootCmd.Execute()
		return stdout.String(), stderr.String(), err
	}
	t.Cleanup(viper.Reset)

	out, _, err := run("config", "set", "output_mode", "delimited")
	require.NoError(t, err)
	assert.Equal(t, "output_mode = delimited\n", out)

	_, _, err = run("config", "set", "delimiter", ";")
	require.NoError(t, err)

	out, _, err = run("config", "get", "delimiter")
	require.NoError(t, err)
	assert.Equal(t, ";\n", out)

	out, _, err = run("render", "--model", model, data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "id;label\n1;web\n"), out)

	_, _, err = run("config", "set", "output_mode", "yaml")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "outrender "+Version+"\n"))
}
