package output

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// valueTransform turns one record into the cell text for one column.
type valueTransform func(c Column, record any) string

func displayValue(c Column, record any) string { return c.RenderValue(record) }

func exactValue(c Column, record any) string { return c.ExactValue(record) }

// buildContent returns the printable rows for t. The header row is included
// only when withHeader is set and headers are enabled.
func (h *Handler) buildContent(t outputTable, withHeader bool, transform valueTransform) [][]string {
	var content [][]string
	if withHeader && h.cfg.Headers && t.header != nil {
		content = append(content, t.header)
	}

	// Without a response model the records are already rows.
	if t.columns == nil {
		for _, record := range t.records {
			content = append(content, plainRow(record, t.header))
		}
		return content
	}

	for _, record := range t.records {
		row := make([]string, len(t.columns))
		for i, c := range t.columns {
			row[i] = transform(c, record)
		}
		content = append(content, row)
	}
	return content
}

// plainRow converts a schema-less record to strings. Mappings are projected
// onto the header labels.
func plainRow(record any, header []string) []string {
	switch r := record.(type) {
	case []string:
		return r
	case []any:
		row := make([]string, len(r))
		for i, v := range r {
			row[i] = Stringify(v)
		}
		return row
	case map[string]any:
		row := make([]string, len(header))
		for i, key := range header {
			row[i] = Stringify(r[key])
		}
		return row
	default:
		return []string{Stringify(r)}
	}
}

// Stringify returns a compact string for a decoded JSON value. Mappings and
// lists are rendered as compact JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool, int, int64:
		return fmt.Sprint(t)
	case map[string]any, []any:
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
