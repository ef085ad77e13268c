package output

import (
	"fmt"
	"io"
	"strings"
)

// delimitedOutput writes one line per row with cells joined by the
// configured delimiter. Cells containing the delimiter are not quoted.
func (h *Handler) delimitedOutput(w io.Writer, t outputTable) error {
	for _, row := range h.buildContent(t, true, exactValue) {
		if _, err := fmt.Fprintln(w, strings.Join(row, h.cfg.Delimiter)); err != nil {
			return err
		}
	}
	return nil
}
