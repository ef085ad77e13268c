package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/banton/outrender/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage default output settings",
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Set a default output setting",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetValue(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a default output setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		val := config.GetValue(args[0])
		if val == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is not set\n", args[0])
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), escapeValue(val))
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := getHandler(cmd)
		if err != nil {
			return err
		}

		var rows [][]string
		flattenSettings("", config.GetAllSettings(), &rows)
		sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })

		if err := h.PrintRows(cmd.OutOrStdout(), rows, []string{"key", "value"}, ""); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "\nConfig file: %s\n", config.GetConfigPath())
		return nil
	},
}

// flattenSettings recursively flattens nested maps into dot-separated key-value rows.
func flattenSettings(prefix string, m map[string]any, rows *[][]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch vt := v.(type) {
		case map[string]any:
			flattenSettings(key, vt, rows)
		case string:
			*rows = append(*rows, []string{key, escapeValue(vt)})
		default:
			*rows = append(*rows, []string{key, fmt.Sprintf("%v", v)})
		}
	}
}

// escapeValue makes control characters such as a tab delimiter visible.
func escapeValue(s string) string {
	return strings.Trim(strconv.Quote(s), `"`)
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
