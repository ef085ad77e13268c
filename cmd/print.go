package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print --header <a,b,...> [data.json|-]",
	Short: "Render JSON rows without a response model",
	Long: `Render a JSON array without a response model.

Each element is either an array of values aligned with --header, or an object
whose keys are looked up by header label.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		header, _ := cmd.Flags().GetStringSlice("header")
		title, _ := cmd.Flags().GetString("title")

		raw, err := readJSONInput(cmd, args)
		if err != nil {
			return err
		}
		data, ok := raw.([]any)
		if !ok {
			return fmt.Errorf("input must be a JSON array, got %T", raw)
		}

		h, err := getHandler(cmd)
		if err != nil {
			return err
		}
		return h.Print(cmd.OutOrStdout(), data, header, title)
	},
}

func init() {
	printCmd.Flags().StringSlice("header", nil, "Column headers, in row order")
	printCmd.Flags().String("title", "", "Table title")
	_ = printCmd.MarkFlagRequired("header")
	rootCmd.AddCommand(printCmd)
}
