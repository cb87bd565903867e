package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/tilepat/internal/assets"
	"github.com/ziadkadry99/tilepat/internal/db"
	"github.com/ziadkadry99/tilepat/internal/importer"
	"github.com/ziadkadry99/tilepat/internal/progress"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load geometry resources into the SQLite store",
	Long: `Validates every patterns/**/*.json resource of an asset tree and upserts it
into the database used by the sqlite source. The import is all-or-nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		dbPath, _ := cmd.Flags().GetString("db")
		if dbPath == "" {
			dbPath = cfg.Source.DBPath
		}
		database, err := db.Open(dbPath)
		if err != nil {
			return err
		}
		defer database.Close()

		imp := importer.New(database, progress.NewReporter("Importing geometry"), logger)

		showRuns, _ := cmd.Flags().GetBool("runs")
		if showRuns {
			runs, err := imp.Runs(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Printf("%s  %s  %3d patterns  %s\n", r.StartedAt.Format(time.RFC3339), r.ID, r.Count, r.Source)
			}
			return nil
		}

		dir, _ := cmd.Flags().GetString("dir")
		var fsys fs.FS = assets.FS()
		name := "embedded"
		if dir != "" {
			fsys = os.DirFS(dir)
			name = dir
		}

		run, err := imp.Import(cmd.Context(), fsys, name)
		if err != nil {
			return fmt.Errorf("importing from %s: %w", name, err)
		}
		total, err := imp.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d patterns from %s into %s (run %s, %d stored)\n", run.Count, name, dbPath, run.ID, total)
		return nil
	},
}

func init() {
	importCmd.Flags().String("dir", "", "asset directory to import (defaults to the embedded assets)")
	importCmd.Flags().String("db", "", "database path (defaults to source.db_path)")
	importCmd.Flags().Bool("runs", false, "list previous imports instead of importing")
	rootCmd.AddCommand(importCmd)
}
