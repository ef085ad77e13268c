package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Mode selects how a Handler renders its output.
type Mode int

const (
	ModeTable Mode = iota + 1
	ModeDelimited
	ModeJSON
	ModeMarkdown
	ModeASCIITable
)

var modeNames = map[Mode]string{
	ModeTable:      "table",
	ModeDelimited:  "delimited",
	ModeJSON:       "json",
	ModeMarkdown:   "markdown",
	ModeASCIITable: "ascii-table",
}

// Modes returns every supported mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeTable, ModeDelimited, ModeJSON, ModeMarkdown, ModeASCIITable}
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name. "text" is accepted as an alias for delimited.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table":
		return ModeTable, nil
	case "delimited", "text":
		return ModeDelimited, nil
	case "json":
		return ModeJSON, nil
	case "markdown":
		return ModeMarkdown, nil
	case "ascii-table", "ascii_table":
		return ModeASCIITable, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Config holds the options for one render invocation. It is passed by value
// and never modified by the Handler.
type Config struct {
	Mode              Mode
	Delimiter         string
	Headers           bool
	PrettyJSON        bool
	Columns           string // "" = default columns, "*" = all, otherwise comma-separated names
	DisableTruncation bool
	ColumnWidth       int // 0 sizes columns automatically
	SuppressWarnings  bool
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		Mode:      ModeTable,
		Delimiter: "\t",
		Headers:   true,
	}
}

// Column describes one displayable field of a response.
type Column interface {
	ColumnName() string
	// DisplayPriority orders default columns; zero hides the column unless
	// it is explicitly requested.
	DisplayPriority() int
	RenderValue(record any) string
	ExactValue(record any) string
}

// Model is the response shape consumed by PrintResponse.
type Model interface {
	Subtables() []string
	ColumnsForTable(table string) []Column
	Advisory() string
}

// Handler renders response data according to a Config.
type Handler struct {
	cfg       Config
	logger    zerolog.Logger
	termWidth func(io.Writer) int

	// hasWarned latches after the first advisory and is never reset.
	hasWarned bool
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger used for debug output and advisories.
func WithLogger(l zerolog.Logger) HandlerOption {
	return func(h *Handler) { h.logger = l }
}

// WithTerminalWidth overrides how the width of an output sink is detected.
// The function returns 0 when the sink is not a terminal.
func WithTerminalWidth(fn func(io.Writer) int) HandlerOption {
	return func(h *Handler) { h.termWidth = fn }
}

// NewHandler returns a Handler for cfg. An empty delimiter falls back to tab.
func NewHandler(cfg Config, opts ...HandlerOption) *Handler {
	if cfg.Delimiter == "" {
		cfg.Delimiter = "\t"
	}
	h := &Handler{
		cfg:       cfg,
		logger:    log.Logger.With().Str("component", "output").Logger(),
		termWidth: terminalWidth,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Config returns the handler's configuration.
func (h *Handler) Config() Config {
	return h.cfg
}

// Warn emits msg at most once per Handler. Later calls and suppressed
// handlers are silent.
func (h *Handler) Warn(msg string, kv ...any) {
	if h.hasWarned || h.cfg.SuppressWarnings {
		return
	}
	h.hasWarned = true
	h.logger.Warn().Fields(kv).Msg(msg)
}

// outputTable is one resolved rendering pass. columns is nil for output
// without a response model.
type outputTable struct {
	header  []string
	columns []Column
	records []any
	title   string
}

// Print renders data without a response model. Each record is either a
// positional row aligned to header or a mapping keyed by header labels.
func (h *Handler) Print(w io.Writer, data []any, header []string, title string) error {
	if err := h.checkMode(); err != nil {
		return err
	}
	return h.print(w, outputTable{header: header, records: data, title: title})
}

// PrintRows is Print for rows that are already strings.
func (h *Handler) PrintRows(w io.Writer, rows [][]string, header []string, title string) error {
	data := make([]any, len(rows))
	for i, row := range rows {
		data[i] = row
	}
	return h.Print(w, data, header, title)
}

// PrintResponse renders data once for the top-level table and once for each
// sub-table declared by m. It stops at the first failing table; tables
// already written are left in place.
func (h *Handler) PrintResponse(w io.Writer, m Model, data []any) error {
	if err := h.checkMode(); err != nil {
		return err
	}
	if msg := m.Advisory(); msg != "" && h.cfg.Mode != ModeJSON {
		h.Warn(msg)
	}

	tables := append([]string{""}, m.Subtables()...)
	for _, table := range tables {
		records, err := resolveDataForTable(table, data)
		if err != nil {
			return err
		}

		columns := h.resolveColumns(m.ColumnsForTable(table))
		if len(columns) < 1 {
			continue
		}

		header := make([]string, len(columns))
		for i, c := range columns {
			header[i] = c.ColumnName()
		}
		h.logger.Debug().Str("table", table).Strs("columns", header).Int("records", len(records)).Msg("rendering table")

		if err := h.print(w, outputTable{header: header, columns: columns, records: records, title: table}); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) checkMode() error {
	if _, ok := modeNames[h.cfg.Mode]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, h.cfg.Mode)
	}
	return nil
}

func (h *Handler) print(w io.Writer, t outputTable) error {
	switch h.cfg.Mode {
	case ModeTable:
		return h.tableOutput(w, t, borderLight)
	case ModeASCIITable:
		return h.tableOutput(w, t, borderASCII)
	case ModeMarkdown:
		return h.tableOutput(w, t, borderMarkdown)
	case ModeDelimited:
		return h.delimitedOutput(w, t)
	case ModeJSON:
		return h.jsonOutput(w, t)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMode, h.cfg.Mode)
	}
}
