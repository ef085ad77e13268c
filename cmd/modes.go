package cmd

import (
	"github.com/spf13/cobra"

	"github.com/banton/outrender/internal/output"
)

var modeDescriptions = map[output.Mode]string{
	output.ModeTable:      "Aligned table with box-drawing borders",
	output.ModeDelimited:  "One line per row, fields joined by --delimiter",
	output.ModeJSON:       "JSON array of objects",
	output.ModeMarkdown:   "Markdown table",
	output.ModeASCIITable: "Table with plain ASCII borders",
}

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the supported output modes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := getHandler(cmd)
		if err != nil {
			return err
		}

		var rows [][]string
		for _, m := range output.Modes() {
			rows = append(rows, []string{m.String(), modeDescriptions[m]})
		}
		return h.PrintRows(cmd.OutOrStdout(), rows, []string{"mode", "description"}, "")
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
}
