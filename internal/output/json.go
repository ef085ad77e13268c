package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

const jsonIndent = "  "

// jsonField is one member of an ordered JSON object. rank is the position of
// the header label that selected it.
type jsonField struct {
	key   string
	value any
	rank  int
}

// jsonObject is a JSON object that keeps its member order.
type jsonObject []jsonField

// jsonOutput writes the records of t as a JSON array of objects. Mapping
// records are filtered down to the header keys, positional rows are zipped
// with the header.
func (h *Handler) jsonOutput(w io.Writer, t outputTable) error {
	content := make([]any, 0, len(t.records))

	if len(t.records) > 0 && isMapping(t.records[0]) {
		index := make(map[string]int, len(t.header))
		for i, key := range t.header {
			if _, ok := index[key]; !ok {
				index[key] = i
			}
		}
		for _, record := range t.records {
			m, _ := record.(map[string]any)
			obj, _ := selectJSONElements(index, m, "")
			content = append(content, obj)
		}
	} else {
		for _, record := range t.records {
			content = append(content, zipRow(t.header, record))
		}
	}

	var buf bytes.Buffer
	if err := encodeJSON(&buf, content, h.cfg.PrettyJSON, 0); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func isMapping(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// selectJSONElements keeps the members of record named by index, either by
// bare key at any depth or by dotted path from the root. Nested mappings are
// kept only when something inside them was selected. The returned rank is
// the lowest header position among the kept members, or -1.
func selectJSONElements(index map[string]int, record map[string]any, prefix string) (jsonObject, int) {
	var obj jsonObject
	for key, value := range record {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		rank, ok := index[key]
		if r, found := index[path]; found && (!ok || r < rank) {
			rank, ok = r, true
		}
		if ok {
			obj = append(obj, jsonField{key: key, value: value, rank: rank})
			continue
		}

		if nested, isMap := value.(map[string]any); isMap {
			if sub, subRank := selectJSONElements(index, nested, path); len(sub) > 0 {
				obj = append(obj, jsonField{key: key, value: sub, rank: subRank})
			}
		}
	}

	sort.SliceStable(obj, func(i, j int) bool {
		if obj[i].rank != obj[j].rank {
			return obj[i].rank < obj[j].rank
		}
		return obj[i].key < obj[j].key
	})
	if len(obj) == 0 {
		return obj, -1
	}
	return obj, obj[0].rank
}

// zipRow pairs header labels with the cells of a positional row. Extra
// labels or cells are dropped.
func zipRow(header []string, record any) jsonObject {
	var cells []any
	switch r := record.(type) {
	case []any:
		cells = r
	case []string:
		cells = make([]any, len(r))
		for i, s := range r {
			cells[i] = s
		}
	default:
		cells = []any{r}
	}

	n := min(len(header), len(cells))
	obj := make(jsonObject, 0, n)
	seen := make(map[string]int, n)
	for i := 0; i < n; i++ {
		if pos, ok := seen[header[i]]; ok {
			obj[pos].value = cells[i]
			continue
		}
		seen[header[i]] = len(obj)
		obj = append(obj, jsonField{key: header[i], value: cells[i], rank: i})
	}
	return obj
}

// encodeJSON writes v to buf. Pretty output is indented with sorted keys;
// compact output keeps member order and separates items with ", " and keys
// from values with ": ".
func encodeJSON(buf *bytes.Buffer, v any, pretty bool, depth int) error {
	switch t := v.(type) {
	case jsonObject:
		return encodeObject(buf, t, pretty, depth)
	case map[string]any:
		obj := make(jsonObject, 0, len(t))
		for key, value := range t {
			obj = append(obj, jsonField{key: key, value: value})
		}
		sort.Slice(obj, func(i, j int) bool { return obj[i].key < obj[j].key })
		return encodeObject(buf, obj, pretty, depth)
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return encodeArray(buf, items, pretty, depth)
	case []any:
		return encodeArray(buf, t, pretty, depth)
	default:
		return encodeScalar(buf, t)
	}
}

func encodeObject(buf *bytes.Buffer, obj jsonObject, pretty bool, depth int) error {
	if len(obj) == 0 {
		buf.WriteString("{}")
		return nil
	}
	if pretty {
		sorted := make(jsonObject, len(obj))
		copy(sorted, obj)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].key < sorted[j].key })
		obj = sorted
	}

	buf.WriteByte('{')
	for i, field := range obj {
		writeSeparator(buf, i, pretty, depth+1)
		if err := encodeScalar(buf, field.key); err != nil {
			return err
		}
		buf.WriteString(": ")
		if err := encodeJSON(buf, field.value, pretty, depth+1); err != nil {
			return err
		}
	}
	writeClosing(buf, pretty, depth)
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *bytes.Buffer, items []any, pretty bool, depth int) error {
	if len(items) == 0 {
		buf.WriteString("[]")
		return nil
	}
	buf.WriteByte('[')
	for i, item := range items {
		writeSeparator(buf, i, pretty, depth+1)
		if err := encodeJSON(buf, item, pretty, depth+1); err != nil {
			return err
		}
	}
	writeClosing(buf, pretty, depth)
	buf.WriteByte(']')
	return nil
}

func writeSeparator(buf *bytes.Buffer, i int, pretty bool, depth int) {
	switch {
	case pretty && i > 0:
		buf.WriteString(",\n")
	case pretty:
		buf.WriteByte('\n')
	case i > 0:
		buf.WriteString(", ")
	}
	if pretty {
		buf.WriteString(strings.Repeat(jsonIndent, depth))
	}
}

func writeClosing(buf *bytes.Buffer, pretty bool, depth int) {
	if pretty {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(jsonIndent, depth))
	}
}

func encodeScalar(buf *bytes.Buffer, v any) error {
	var scalar bytes.Buffer
	enc := json.NewEncoder(&scalar)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(scalar.Bytes(), "\n"))
	return nil
}
