package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"notch-chatbot/pkg/registry"
)

var (
	catalogWrite string
	catalogDiff  string
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog",
	Long: `Prints every registered tool with its description and JSON schemas.
--write saves the catalog to a file; --diff compares the current tools
with a saved catalog and fails when they differ.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		catalog := a.registry.Catalog()
		out := cmd.OutOrStdout()

		switch {
		case catalogDiff != "":
			saved, err := registry.LoadCatalog(catalogDiff)
			if err != nil {
				return err
			}
			changes := registry.Diff(*saved, catalog)
			for _, c := range changes {
				fmt.Fprintln(out, c)
			}
			if len(changes) > 0 {
				return fmt.Errorf("tool catalog differs from %s", catalogDiff)
			}
			fmt.Fprintf(out, "Tool catalog matches %s\n", catalogDiff)
			return nil

		case catalogWrite != "":
			if err := registry.WriteCatalog(catalogWrite, catalog); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %d tools to %s\n", len(catalog.Tools), catalogWrite)
			return nil

		default:
			data, err := json.MarshalIndent(catalog, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}
	},
}

func init() {
	toolsCmd.Flags().StringVar(&catalogWrite, "write", "", "write the catalog to this file")
	toolsCmd.Flags().StringVar(&catalogDiff, "diff", "", "compare with a saved catalog")
	rootCmd.AddCommand(toolsCmd)
}
