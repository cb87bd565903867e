package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/tilepat/internal/gallery"
	"github.com/ziadkadry99/tilepat/internal/progress"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Generate a static HTML gallery of every pattern",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, svc, closeFn, err := setup()
		if err != nil {
			return err
		}
		defer closeFn()

		colors, _ := cmd.Flags().GetString("colors")
		pal, err := resolvePalette(cfg, colors)
		if err != nil {
			return err
		}

		g := &gallery.Generator{
			Service:  svc,
			Palette:  pal,
			Warm:     cfg.WarmConcurrency,
			Reporter: progress.NewReporter("Rendering patterns"),
			Logger:   logger,
		}
		g.Title, _ = cmd.Flags().GetString("title")

		introPath, _ := cmd.Flags().GetString("intro")
		if introPath != "" {
			g.Intro, err = os.ReadFile(introPath)
			if err != nil {
				return fmt.Errorf("reading intro: %w", err)
			}
		}

		outDir, _ := cmd.Flags().GetString("out")
		n, err := g.Generate(cmd.Context(), outDir)
		if err != nil {
			return fmt.Errorf("generating gallery: %w", err)
		}

		fmt.Printf("Gallery generated: %s (%d patterns)\n", outDir, n)
		return nil
	},
}

func init() {
	galleryCmd.Flags().String("out", "gallery", "output directory")
	galleryCmd.Flags().String("colors", "", "comma-separated hex colours (defaults to the configured palette)")
	galleryCmd.Flags().String("title", "", "page title")
	galleryCmd.Flags().String("intro", "", "markdown file rendered above the tiles")
	rootCmd.AddCommand(galleryCmd)
}
