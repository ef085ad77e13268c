package response

import (
	"encoding/json"
	"strings"

	"github.com/banton/outrender/internal/output"
)

// defaultColorKey names the color used for values missing from a color map.
const defaultColorKey = "default_"

// Attr is one displayable attribute of a response. Name is a dotted path
// into the record the attribute is read from.
type Attr struct {
	Name        string            `yaml:"name" toml:"name" json:"name"`
	Description string            `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Type        string            `yaml:"type,omitempty" toml:"type,omitempty" json:"type,omitempty"`
	ItemType    string            `yaml:"item_type,omitempty" toml:"item_type,omitempty" json:"item_type,omitempty"`
	Format      string            `yaml:"format,omitempty" toml:"format,omitempty" json:"format,omitempty"`
	Display     int               `yaml:"display,omitempty" toml:"display,omitempty" json:"display,omitempty"`
	Filterable  bool              `yaml:"filterable,omitempty" toml:"filterable,omitempty" json:"filterable,omitempty"`
	ColorMap    map[string]string `yaml:"color_map,omitempty" toml:"color_map,omitempty" json:"color_map,omitempty"`
	Table       string            `yaml:"table,omitempty" toml:"table,omitempty" json:"table,omitempty"`
}

var _ output.Column = (*Attr)(nil)

// ColumnName returns the attribute's header label.
func (a *Attr) ColumnName() string { return a.Name }

// DisplayPriority returns the default display order, 0 when hidden.
func (a *Attr) DisplayPriority() int { return a.Display }

// Value returns the raw value of the attribute in record, or nil when any
// segment of the path is missing.
func (a *Attr) Value(record any) any {
	value := record
	for _, part := range strings.Split(a.Name, ".") {
		obj, ok := value.(map[string]any)
		if !ok || len(obj) == 0 {
			return nil
		}
		value = obj[part]
	}
	return value
}

// RenderValue returns the value for table output. Lists are joined with
// ", " and values are colored through the attribute's color map.
func (a *Attr) RenderValue(record any) string {
	value := a.Value(record)
	if value == nil {
		return ""
	}
	s := a.stringify(value, ", ")
	if a.ColorMap == nil {
		return s
	}
	color, ok := a.ColorMap[s]
	if !ok {
		color = a.ColorMap[defaultColorKey]
	}
	return output.Colorize(color, s)
}

// ExactValue returns the value for delimited output. Lists are joined with a
// single space and no markup is added.
func (a *Attr) ExactValue(record any) string {
	value := a.Value(record)
	if value == nil {
		return ""
	}
	return a.stringify(value, " ")
}

func (a *Attr) stringify(value any, sep string) string {
	if a.Format == "json" {
		if b, err := json.Marshal(value); err == nil {
			return string(b)
		}
	}
	list, ok := value.([]any)
	if !ok {
		return output.Stringify(value)
	}
	items := make([]string, len(list))
	for i, item := range list {
		items[i] = output.Stringify(item)
	}
	return strings.Join(items, sep)
}
