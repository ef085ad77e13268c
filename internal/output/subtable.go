package output

import "strings"

// resolveDataForTable returns the records to render for the sub-table at
// path. Only the first record's shape is consulted; a path that resolves to
// a single mapping is returned as a one-element list.
func resolveDataForTable(path string, data []any) ([]any, error) {
	if len(data) == 0 || path == "" {
		return data, nil
	}

	current := data[0]
	for _, key := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, &PathNotFoundError{Path: path}
		}
		next, ok := obj[key]
		if !ok {
			return nil, &PathNotFoundError{Path: path}
		}
		current = next
	}

	if list, ok := current.([]any); ok {
		return list, nil
	}
	return []any{current}, nil
}
