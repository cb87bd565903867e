package cmd

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/tilepat/internal/assets"
	"github.com/ziadkadry99/tilepat/internal/catalog"
	"github.com/ziadkadry99/tilepat/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every catalog pattern has exactly one geometry resource",
	Long: `Cross-checks the catalog against an asset tree in both directions: every
catalog id must have a patterns/<id>.json resource and every resource must
belong to a catalog id. With --parse each resource is also validated.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		parse, _ := cmd.Flags().GetBool("parse")

		var fsys fs.FS = assets.FS()
		label := "embedded assets"
		if dir != "" {
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("asset directory: %w", err)
			}
			fsys = os.DirFS(dir)
			label = dir
		}

		report, err := verify.Check(catalog.All(), fsys, parse)
		if err != nil {
			return err
		}

		for _, id := range report.Missing {
			fmt.Printf("  missing   %s\n", id)
		}
		for _, id := range report.Orphans {
			fmt.Printf("  orphan    %s\n", id)
		}
		for _, id := range report.Duplicates {
			fmt.Printf("  duplicate %s\n", id)
		}
		for _, p := range report.Invalid {
			fmt.Printf("  invalid   %s: %v\n", p.ID, p.Err)
		}

		if report.OK() {
			fmt.Printf("%s: %d patterns OK\n", label, report.Checked)
			return nil
		}
		return report.Err()
	},
}

func init() {
	verifyCmd.Flags().String("dir", "", "asset directory to check (defaults to the embedded assets)")
	verifyCmd.Flags().Bool("parse", false, "also parse every geometry resource")
	rootCmd.AddCommand(verifyCmd)
}
