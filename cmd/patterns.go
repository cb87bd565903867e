package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/tilepat/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every pattern in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := catalog.All()

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\n", e.ID, e.Title)
		}
		return w.Flush()
	},
}

var geometryCmd = &cobra.Command{
	Use:   "geometry <id>",
	Short: "Print the raw geometry descriptor of a pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, svc, closeFn, err := setup()
		if err != nil {
			return err
		}
		defer closeFn()

		id := args[0]
		if _, ok := svc.Lookup(id); !ok {
			return fmt.Errorf("unknown pattern %q\nRun `tilepat list` to see available patterns", id)
		}
		text, err := svc.RawGeometry(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", id, err)
		}
		fmt.Println(text)
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <id>",
	Short: "Render a pattern as a CSS background or SVG document",
	Long: `Renders a catalog pattern with a colour palette. By default the result is a
CSS url() value ready for background-image; --svg prints the SVG document.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, svc, closeFn, err := setup()
		if err != nil {
			return err
		}
		defer closeFn()

		id := args[0]
		if _, ok := svc.Lookup(id); !ok {
			return fmt.Errorf("unknown pattern %q\nRun `tilepat list` to see available patterns", id)
		}
		colors, _ := cmd.Flags().GetString("colors")
		pal, err := resolvePalette(cfg, colors)
		if err != nil {
			return err
		}

		asSVG, _ := cmd.Flags().GetBool("svg")
		var out string
		if asSVG {
			out, err = svc.SVG(cmd.Context(), id, pal)
		} else {
			out, err = svc.SVGDataURL(cmd.Context(), id, pal)
		}
		if err != nil {
			return fmt.Errorf("rendering %s: %w", id, err)
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath != "" {
			if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", outPath)
			return nil
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "print the catalog as JSON")

	renderCmd.Flags().String("colors", "", "comma-separated hex colours (defaults to the configured palette)")
	renderCmd.Flags().Bool("svg", false, "print the SVG document instead of a CSS url() value")
	renderCmd.Flags().StringP("out", "o", "", "write the result to a file")

	rootCmd.AddCommand(listCmd, geometryCmd, renderCmd)
}
