package output

import (
	"sort"
	"strings"
)

// resolveColumns narrows attrs to the columns selected by the handler's
// Columns setting. attrs is never modified.
func (h *Handler) resolveColumns(attrs []Column) []Column {
	var columns []Column

	switch h.cfg.Columns {
	case "":
		sorted := make([]Column, len(attrs))
		copy(sorted, attrs)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DisplayPriority() < sorted[j].DisplayPriority()
		})
		for _, attr := range sorted {
			if attr.DisplayPriority() > 0 {
				columns = append(columns, attr)
			}
		}
	case "*":
		columns = append(columns, attrs...)
	default:
		remaining := make([]Column, len(attrs))
		copy(remaining, attrs)
		for _, name := range strings.Split(h.cfg.Columns, ",") {
			for i, attr := range remaining {
				if attr.ColumnName() == name {
					columns = append(columns, attr)
					remaining = append(remaining[:i], remaining[i+1:]...)
					break
				}
			}
		}
	}

	if len(columns) == 0 {
		// Nothing selected, or the model has no default columns: show everything.
		columns = make([]Column, len(attrs))
		copy(columns, attrs)
	}
	return columns
}
