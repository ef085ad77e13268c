package response

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlModel = `
subtables: [disks]
warning: nested disks are shown separately
attrs:
  - name: id
    type: integer
    display: 1
  - name: status
    display: 2
    color_map:
      running: green
      default_: yellow
  - name: size
    table: disks
    display: 1
`

const tomlModel = `
subtables = ["disks"]

[[attrs]]
name = "id"
type = "integer"
display = 1

[[attrs]]
name = "status"
display = 2
color_map = { running = "green", default_ = "yellow" }

[[attrs]]
name = "size"
table = "disks"
display = 1
`

const jsonModel = `{
  "subtables": ["disks"],
  "attrs": [
    {"name": "id", "type": "integer", "display": 1},
    {"name": "status", "display": 2, "color_map": {"running": "green", "default_": "yellow"}},
    {"name": "size", "table": "disks", "display": 1}
  ]
}`

func TestParseModel(t *testing.T) {
	for _, tt := range []struct {
		format string
		data   string
	}{
		{"yaml", yamlModel},
		{"toml", tomlModel},
		{"json", jsonModel},
	} {
		t.Run(tt.format, func(t *testing.T) {
			m, err := ParseModel([]byte(tt.data), tt.format)
			require.NoError(t, err)

			assert.Equal(t, []string{"disks"}, m.Subtables())
			require.Len(t, m.Attrs, 3)
			assert.Equal(t, "id", m.Attrs[0].Name)
			assert.Equal(t, "integer", m.Attrs[0].Type)
			assert.Equal(t, 2, m.Attrs[1].Display)
			assert.Equal(t, "green", m.Attrs[1].ColorMap["running"])
			assert.Equal(t, "disks", m.Attrs[2].Table)
		})
	}
}

func TestParseModelAdvisory(t *testing.T) {
	m, err := ParseModel([]byte(yamlModel), "yml")
	require.NoError(t, err)
	assert.Equal(t, "nested disks are shown separately", m.Advisory())
}

func TestParseModelErrors(t *testing.T) {
	_, err := ParseModel([]byte(`{}`), "xml")
	assert.ErrorIs(t, err, ErrUnsupportedModelFormat)

	_, err = ParseModel([]byte("attrs: [{display: 1}]"), "yaml")
	assert.ErrorIs(t, err, ErrInvalidModel)

	_, err = ParseModel([]byte("attrs: [{name: size, table: disks}]"), "yaml")
	assert.ErrorIs(t, err, ErrInvalidModel)

	_, err = ParseModel([]byte("attrs: ["), "yaml")
	assert.Error(t, err)
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "linodes.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlModel), 0o600))

	m, err := LoadModel(path)
	require.NoError(t, err)
	assert.Len(t, m.Attrs, 3)

	_, err = LoadModel(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodeJSON(t *testing.T) {
	v, err := DecodeJSON(strings.NewReader(`[{"id": 12345678901234567890}]`))
	require.NoError(t, err)
	record := v.([]any)[0].(map[string]any)
	assert.Equal(t, "12345678901234567890", record["id"].(interface{ String() string }).String())

	_, err = DecodeJSON(strings.NewReader(`[`))
	assert.Error(t, err)
}
