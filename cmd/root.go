package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/banton/outrender/internal/config"
	"github.com/banton/outrender/internal/logging"
	"github.com/banton/outrender/internal/output"
)

var (
	flagOutput           string
	flagText             bool
	flagJSON             bool
	flagMarkdown         bool
	flagASCIITable       bool
	flagDelimiter        string
	flagPretty           bool
	flagNoHeaders        bool
	flagColumns          string
	flagAllColumns       bool
	flagNoTruncation     bool
	flagColumnWidth      int
	flagSuppressWarnings bool
	flagDebug            bool
	flagVerbose          int
)

var rootCmd = &cobra.Command{
	Use:   "outrender",
	Short: "Render API responses as tables, delimited text or JSON",
	Long: `Render structured API responses in one of several output formats.

A response model describes which attributes of a response are displayed by
default, how each one is rendered, and which nested lists are printed as
tables of their own.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity := flagVerbose
		if flagDebug && verbosity < 2 {
			verbosity = 2
		}
		logging.SetupLogger(verbosity)
		return config.Load()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagOutput, "output", "o", "", "Output mode: table, ascii-table, delimited, json, markdown")
	pf.BoolVar(&flagText, "text", false, "Display delimited text output")
	pf.BoolVar(&flagJSON, "json", false, "Display output as JSON")
	pf.BoolVar(&flagMarkdown, "markdown", false, "Display output as a markdown table")
	pf.BoolVar(&flagASCIITable, "ascii-table", false, "Display output as a plain ASCII table")
	pf.StringVar(&flagDelimiter, "delimiter", "", "Field delimiter for --text output (default tab)")
	pf.BoolVar(&flagPretty, "pretty", false, "Indent and sort --json output")
	pf.BoolVar(&flagNoHeaders, "no-headers", false, "Do not print column headers")
	pf.StringVar(&flagColumns, "format", "", "Comma-separated list of columns to display")
	pf.BoolVar(&flagAllColumns, "all-columns", false, "Display all columns")
	pf.BoolVar(&flagNoTruncation, "no-truncation", false, "Wrap long values instead of truncating them")
	pf.IntVar(&flagColumnWidth, "column-width", 0, "Maximum width of each column (default fits the terminal)")
	pf.BoolVar(&flagSuppressWarnings, "suppress-warnings", false, "Do not print advisory warnings")
	pf.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	pf.CountVarP(&flagVerbose, "verbose", "v", "Increase log verbosity (repeatable)")

	rootCmd.MarkFlagsMutuallyExclusive("output", "text", "json", "markdown", "ascii-table")
	rootCmd.MarkFlagsMutuallyExclusive("format", "all-columns")
}

// Execute is the main entry point for the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// renderConfig resolves the render configuration: flags set on the command
// line win over the config file and environment.
func renderConfig(cmd *cobra.Command) (output.Config, error) {
	cfg, err := config.RenderConfig()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	switch {
	case flags.Changed("output"):
		mode, err := output.ParseMode(flagOutput)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	case flagText:
		cfg.Mode = output.ModeDelimited
	case flagJSON:
		cfg.Mode = output.ModeJSON
	case flagMarkdown:
		cfg.Mode = output.ModeMarkdown
	case flagASCIITable:
		cfg.Mode = output.ModeASCIITable
	}

	if flags.Changed("delimiter") {
		cfg.Delimiter = flagDelimiter
	}
	if flags.Changed("pretty") {
		cfg.PrettyJSON = flagPretty
	}
	if flagNoHeaders {
		cfg.Headers = false
	}
	if flags.Changed("format") {
		cfg.Columns = flagColumns
	}
	if flagAllColumns {
		cfg.Columns = "*"
	}
	if flags.Changed("no-truncation") {
		cfg.DisableTruncation = flagNoTruncation
	}
	if flags.Changed("column-width") {
		if flagColumnWidth < 0 {
			return cfg, fmt.Errorf("--column-width must not be negative")
		}
		cfg.ColumnWidth = flagColumnWidth
	}
	if flags.Changed("suppress-warnings") {
		cfg.SuppressWarnings = flagSuppressWarnings
	}
	return cfg, nil
}

// getHandler returns the output handler for cmd, logging advisories to the
// command's error stream.
func getHandler(cmd *cobra.Command) (*output.Handler, error) {
	cfg, err := renderConfig(cmd)
	if err != nil {
		return nil, err
	}
	return output.NewHandler(cfg, output.WithLogger(advisoryLogger(cmd.ErrOrStderr()))), nil
}

func advisoryLogger(w io.Writer) zerolog.Logger {
	if w == os.Stderr {
		return logging.GetLogger("output")
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
		With().Str("component", "output").Logger()
}
