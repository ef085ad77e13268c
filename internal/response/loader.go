package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedModelFormat = errors.New("unsupported model format")
	ErrInvalidModel           = errors.New("invalid response model")
)

// LoadModel reads a response model from a YAML, TOML or JSON file. The
// format is taken from the file extension.
func LoadModel(path string) (*Response, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	m, err := ParseModel(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return m, nil
}

// ParseModel decodes a response model in the given format ("yaml", "yml",
// "toml" or "json") and validates it.
func ParseModel(data []byte, format string) (*Response, error) {
	var m Response
	var err error
	switch format {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &m)
	case "toml":
		err = toml.Unmarshal(data, &m)
	case "json":
		err = json.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModelFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s model: %w", format, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every attribute is named and belongs to a declared
// table.
func (r *Response) Validate() error {
	for i, attr := range r.Attrs {
		if attr.Name == "" {
			return fmt.Errorf("%w: attribute %d has no name", ErrInvalidModel, i)
		}
		if attr.Table != "" && !slices.Contains(r.Tables, attr.Table) {
			return fmt.Errorf("%w: attribute %q belongs to undeclared subtable %q", ErrInvalidModel, attr.Name, attr.Table)
		}
	}
	for _, table := range r.Tables {
		if table == "" {
			return fmt.Errorf("%w: empty subtable path", ErrInvalidModel)
		}
	}
	return nil
}

// DecodeJSON decodes a response payload. Numbers are kept as json.Number so
// they print exactly as received.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return v, nil
}
