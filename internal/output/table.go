package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

type borderStyle int

const (
	borderLight borderStyle = iota
	borderASCII
	borderMarkdown
)

const ellipsis = "…"

// Named colors accepted by Colorize.
var colors = map[string]text.Colors{
	"black":          {text.FgBlack},
	"red":            {text.FgRed},
	"green":          {text.FgGreen},
	"yellow":         {text.FgYellow},
	"blue":           {text.FgBlue},
	"magenta":        {text.FgMagenta},
	"cyan":           {text.FgCyan},
	"white":          {text.FgWhite},
	"bright_black":   {text.FgHiBlack},
	"bright_red":     {text.FgHiRed},
	"bright_green":   {text.FgHiGreen},
	"bright_yellow":  {text.FgHiYellow},
	"bright_blue":    {text.FgHiBlue},
	"bright_magenta": {text.FgHiMagenta},
	"bright_cyan":    {text.FgHiCyan},
	"bright_white":   {text.FgHiWhite},
	"bold":           {text.Bold},
	"dim":            {text.Faint},
}

// Colorize wraps s in the ANSI sequence for the named color. Unknown names
// return s unchanged.
func Colorize(name, s string) string {
	c, ok := colors[strings.ToLower(name)]
	if !ok {
		return s
	}
	return c.Sprint(s)
}

// terminalWidth returns the width of w when it is a terminal, 0 otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}

// tableOutput renders t as a bordered table through go-pretty.
func (h *Handler) tableOutput(w io.Writer, t outputTable, border borderStyle) error {
	content := h.buildContent(t, false, displayValue)

	tw := table.NewWriter()
	if h.cfg.Headers && len(t.header) > 0 {
		headerRow := make(table.Row, len(t.header))
		for i, label := range t.header {
			headerRow[i] = label
		}
		tw.AppendHeader(headerRow)
	}
	for _, row := range content {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			tableRow[i] = cell
		}
		tw.AppendRow(tableRow)
	}

	style := table.StyleLight
	if border == borderASCII {
		style = table.StyleDefault
	}
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	numCols := len(t.header)
	if numCols == 0 && len(content) > 0 {
		numCols = len(content[0])
	}
	configs := h.columnConfigs(w, numCols)
	if t.title != "" {
		if border != borderMarkdown {
			fitTitle(configs, t.title)
		}
		tw.SetTitle(t.title)
	}
	tw.SetColumnConfigs(configs)

	var rendered string
	if border == borderMarkdown {
		rendered = tw.RenderMarkdown()
	} else {
		rendered = tw.Render()
	}
	_, err := fmt.Fprintln(w, rendered)
	return err
}

// columnConfigs sets the width limit and overflow behavior of every column.
func (h *Handler) columnConfigs(w io.Writer, numCols int) []table.ColumnConfig {
	enforcer := text.WrapSoft
	if !h.cfg.DisableTruncation {
		enforcer = ellipsize
	}

	width := h.cfg.ColumnWidth
	if width <= 0 {
		width = autoColumnWidth(h.termWidth(w), numCols)
	}

	configs := make([]table.ColumnConfig, numCols)
	for i := range configs {
		configs[i] = table.ColumnConfig{
			Number:           i + 1,
			WidthMax:         width,
			WidthMaxEnforcer: enforcer,
		}
	}
	return configs
}

// fitTitle widens the columns so that together they are at least as wide
// as title. go-pretty wraps a title to the table's inner width, which is
// never less than the sum of the column widths.
func fitTitle(configs []table.ColumnConfig, title string) {
	if len(configs) == 0 {
		return
	}
	titleWidth := text.RuneWidthWithoutEscSequences(title)
	perCol := (titleWidth + len(configs) - 1) / len(configs)
	for i := range configs {
		configs[i].WidthMin = perCol
		if configs[i].WidthMax > 0 && configs[i].WidthMax < perCol {
			configs[i].WidthMax = perCol
		}
	}
}

// autoColumnWidth shares the terminal width between columns. A zero
// terminal width leaves columns unconstrained.
func autoColumnWidth(termWidth, numCols int) int {
	if termWidth <= 0 || numCols <= 0 {
		return 0
	}
	available := termWidth - (numCols+1)*3
	perCol := available / numCols
	if perCol < 10 {
		perCol = 10
	}
	return perCol
}

// ellipsize trims col to maxLen visible characters, marking the cut with an
// ellipsis. Escape sequences do not count towards the width.
func ellipsize(col string, maxLen int) string {
	if maxLen <= 0 {
		return col
	}
	lines := strings.Split(col, "\n")
	for i, line := range lines {
		if text.RuneWidthWithoutEscSequences(line) <= maxLen {
			continue
		}
		if maxLen == 1 {
			lines[i] = ellipsis
			continue
		}
		lines[i] = text.Trim(line, maxLen-1) + ellipsis
	}
	return strings.Join(lines, "\n")
}
