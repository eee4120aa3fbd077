package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/config"
	"github.com/at-ishikawa/wordbook/internal/database"
	"github.com/at-ishikawa/wordbook/internal/datasync"
	"github.com/at-ishikawa/wordbook/internal/wordbook"
)

func newDBCommand() *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Mirror the dictionary to a MySQL database",
	}

	dbCmd.AddCommand(newDBMigrateCommand())
	dbCmd.AddCommand(newDBPushCommand())
	dbCmd.AddCommand(newDBPullCommand())

	return dbCmd
}

func newDBMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := database.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrated.")
			return nil
		},
	}
}

func newDBPushCommand() *cobra.Command {
	var opts datasync.ImportOptions

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Write the dictionary file into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, _, err := loadStore(cfg)
			if err != nil {
				return err
			}
			repo, closeDB, err := openEntryRepository(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			w := cmd.OutOrStdout()
			if opts.DryRun {
				fmt.Fprintln(w, "[DRY RUN] No changes will be written to the database.")
			}
			result, err := datasync.NewImporter(repo, w).ImportEntries(cmd.Context(), store.Entries(), opts)
			if err != nil {
				return fmt.Errorf("importer.ImportEntries() > %w", err)
			}
			fmt.Fprintf(w, "Entries: %d new, %d updated, %d skipped, %d deleted\n",
				result.New, result.Updated, result.Skipped, result.Deleted)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "show what would change without writing")
	cmd.Flags().BoolVar(&opts.Prune, "prune", false, "delete database entries that are not in the dictionary file")
	return cmd
}

func newDBPullCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Merge the database entries into the dictionary file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, path, err := loadStore(cfg)
			if err != nil {
				return err
			}
			repo, closeDB, err := openEntryRepository(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			count, err := datasync.NewExporter(repo).ExportTo(cmd.Context(), store)
			if err != nil {
				return fmt.Errorf("exporter.ExportTo() > %w", err)
			}
			if err := store.Save(appFs, path); err != nil {
				return fmt.Errorf("store.Save() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d entries into %s\n", count, path)
			return nil
		},
	}
}

func openEntryRepository(cfg *config.Config) (wordbook.EntryRepository, func(), error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}
	return wordbook.NewDBEntryRepository(db), func() {
		_ = db.Close()
	}, nil
}
