package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/banton/outrender/internal/output"
	"github.com/banton/outrender/internal/response"
)

var renderCmd = &cobra.Command{
	Use:   "render --model <file> [data.json|-]",
	Short: "Render a JSON response using a response model",
	Long: `Render a JSON response using a response model.

The model file may be YAML, TOML or JSON. The response is read from the given
file, or from standard input when no file or "-" is given. Paginated
envelopes ({"data": [...], "page": 1, "pages": 3}) are unwrapped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath, _ := cmd.Flags().GetString("model")
		m, err := response.LoadModel(modelPath)
		if err != nil {
			return err
		}

		raw, err := readJSONInput(cmd, args)
		if err != nil {
			return err
		}

		h, err := getHandler(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := h.PrintResponse(out, m, m.Normalize(raw)); err != nil {
			return fmt.Errorf("rendering response: %w", err)
		}

		if page, pages, ok := response.PageInfo(raw); ok && pages > 1 && h.Config().Mode == output.ModeTable {
			fmt.Fprintf(out, "Page %d of %d. Call with --page [PAGE] to load a different page.\n", page, pages)
		}
		return nil
	},
}

// readJSONInput decodes the JSON document named by args, or standard input.
func readJSONInput(cmd *cobra.Command, args []string) (any, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}
	return response.DecodeJSON(r)
}

func init() {
	renderCmd.Flags().String("model", "", "Response model file (.yaml, .toml or .json)")
	_ = renderCmd.MarkFlagRequired("model")
	rootCmd.AddCommand(renderCmd)
}
