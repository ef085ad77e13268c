// Package response describes the shape of API responses: which attributes
// can be displayed, which nested lists render as their own tables, and how
// a raw payload is turned into records.
package response

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/banton/outrender/internal/output"
)

// splitKey is added to records produced by splitting a nested list.
const splitKey = "_split"

// Response is the display model of one operation's response.
type Response struct {
	Attrs      []Attr   `yaml:"attrs" toml:"attrs" json:"attrs"`
	Tables     []string `yaml:"subtables,omitempty" toml:"subtables,omitempty" json:"subtables,omitempty"`
	Rows       []string `yaml:"rows,omitempty" toml:"rows,omitempty" json:"rows,omitempty"`
	NestedList string   `yaml:"nested_list,omitempty" toml:"nested_list,omitempty" json:"nested_list,omitempty"`
	Warning    string   `yaml:"warning,omitempty" toml:"warning,omitempty" json:"warning,omitempty"`
}

var _ output.Model = (*Response)(nil)

// Subtables returns the declared sub-table paths.
func (r *Response) Subtables() []string { return r.Tables }

// Advisory returns the notice shown when the response is rendered as
// anything but JSON.
func (r *Response) Advisory() string { return r.Warning }

// ColumnsForTable returns a new slice holding the attributes of table. The
// empty string selects the top-level table.
func (r *Response) ColumnsForTable(table string) []output.Column {
	var cols []output.Column
	for i := range r.Attrs {
		if r.Attrs[i].Table == table {
			cols = append(cols, &r.Attrs[i])
		}
	}
	return cols
}

// Normalize turns a decoded response payload into the records to render.
func (r *Response) Normalize(raw any) []any {
	if raw == nil {
		return nil
	}
	if len(r.Rows) > 0 {
		return r.collectRows(raw)
	}

	data := raw
	if obj, ok := raw.(map[string]any); ok {
		if _, paged := obj["pages"]; paged {
			data = obj["data"]
		}
	}

	if r.NestedList != "" {
		data = r.splitNestedLists(data)
	}

	if list, ok := data.([]any); ok {
		return list
	}
	return []any{data}
}

// collectRows gathers the values found at each of the explicit row paths.
func (r *Response) collectRows(raw any) []any {
	var result []any
	for _, path := range r.Rows {
		value := lookup(raw, path)
		if isEmpty(value) {
			continue
		}
		if list, ok := value.([]any); ok {
			result = append(result, list...)
		} else {
			result = append(result, value)
		}
	}
	return result
}

// splitNestedLists expands every record into one record per element of each
// nested list. The element replaces the list's top-level field.
func (r *Response) splitNestedLists(data any) []any {
	records, ok := data.([]any)
	if !ok {
		records = []any{data}
	}

	var result []any
	for _, nested := range strings.Split(r.NestedList, ",") {
		parts := strings.Split(strings.TrimSpace(nested), ".")
		for _, record := range records {
			obj, ok := record.(map[string]any)
			if !ok {
				continue
			}
			items, _ := lookup(obj, strings.Join(parts, ".")).([]any)
			for _, item := range items {
				split := make(map[string]any, len(obj)+1)
				for k, v := range obj {
					if k != parts[0] {
						split[k] = v
					}
				}
				split[splitKey] = parts[len(parts)-1]
				split[parts[0]] = item
				result = append(result, split)
			}
		}
	}
	return result
}

// PageInfo reports the page number and page count of a paginated payload.
func PageInfo(raw any) (page, pages int, ok bool) {
	obj, isMap := raw.(map[string]any)
	if !isMap {
		return 0, 0, false
	}
	pages, ok = toInt(obj["pages"])
	if !ok {
		return 0, 0, false
	}
	page, _ = toInt(obj["page"])
	return page, pages, true
}

func lookup(value any, path string) any {
	for _, part := range strings.Split(path, ".") {
		obj, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		value = obj[part]
	}
	return value
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case bool:
		return !t
	}
	return false
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case float64:
		return int(t), true
	case json.Number:
		n, err := strconv.Atoi(t.String())
		return n, err == nil
	}
	return 0, false
}
