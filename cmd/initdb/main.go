// initdb creates the career database schema and idempotently seeds it from
// the configured seed files. Running it twice converges to the same row set.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"careernav/config"
	"careernav/db"
	"careernav/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	defaultMaxBackups  = 5
	backupFileExt      = ".bak"
	connectionInfoFile = "db_connection.txt"
)

func main() {
	var dbPath string
	var seedsDir string
	var doSeed bool
	var doBackup bool
	var maxBackups int

	rootCmd := &cobra.Command{
		Use:           "initdb",
		Short:         "Create the career database schema and seed it",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck // best-effort flush
			sugar := logger.Sugar()

			cfg := config.Load()
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if seedsDir != "" {
				cfg.SeedsDir = seedsDir
			}

			if doBackup {
				if err := backupExisting(sugar, cfg.DBPath, maxBackups); err != nil {
					return fmt.Errorf("backup failed: %w", err)
				}
			}

			var data *seed.Data
			if doSeed {
				data, err = seed.Load(cfg.SeedsDir)
				if err != nil {
					return err
				}
				if cfg.WorksheetID != "" {
					skills, err := seed.SkillsFromWorksheet(cmd.Context(), cfg.WorksheetID, cfg.CredentialsPath)
					if err != nil {
						return err
					}
					sugar.Infow("loaded skills from worksheet", "worksheet", cfg.WorksheetID, "skills", len(skills))
					data.MergeSkills(skills)
					if err := data.Validate(); err != nil {
						return err
					}
				}
			}

			if _, err := db.Bootstrap(cfg, sugar, data); err != nil {
				return err
			}

			if err := writeConnectionInfo(cfg.DBPath); err != nil {
				sugar.Warnw("could not write connection info", "err", err)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVar(&dbPath, "db", "", "Path to SQLite database file (default $SQLITE_DB_PATH or myapp.db)")
	rootCmd.Flags().StringVar(&seedsDir, "seeds", "", "Directory with seed files (default $SEEDS_DIR or embedded seeds)")
	rootCmd.Flags().BoolVar(&doSeed, "seed", true, "Whether to load seed data into the database")
	rootCmd.Flags().BoolVar(&doBackup, "backup", false, "Whether to create a backup of the database if it exists")
	rootCmd.Flags().IntVar(&maxBackups, "max-backups", defaultMaxBackups, "Maximum number of backups to retain")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "initdb: %v\n", err)
		os.Exit(1)
	}
}

// backupExisting copies the current database file to a timestamped .bak
// sibling and prunes old backups beyond the retention limit.
func backupExisting(logger *zap.SugaredLogger, dbPath string, maxBackups int) error {
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	backupPath := fmt.Sprintf("%s.%s%s", dbPath, time.Now().Format("20060102-150405"), backupFileExt)
	if err := copyFile(dbPath, backupPath); err != nil {
		return err
	}
	logger.Infow("existing database backed up", "backup", backupPath)
	pruneOldBackups(logger, dbPath, maxBackups)
	return nil
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close() //nolint:errcheck // read-only handle

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := destination.ReadFrom(source); err != nil {
		destination.Close() //nolint:errcheck,gosec // surfacing the copy error
		return err
	}
	return destination.Close()
}

func pruneOldBackups(logger *zap.SugaredLogger, dbPath string, max int) {
	dir := filepath.Dir(dbPath)
	prefix := filepath.Base(dbPath) + "."
	files, err := os.ReadDir(dir)
	if err != nil {
		logger.Warnw("could not read backup directory", "dir", dir, "err", err)
		return
	}

	var backups []string
	for _, f := range files {
		if strings.HasPrefix(f.Name(), prefix) && strings.HasSuffix(f.Name(), backupFileExt) {
			backups = append(backups, filepath.Join(dir, f.Name()))
		}
	}
	if len(backups) <= max {
		return
	}

	sort.Strings(backups)
	for _, file := range backups[:len(backups)-max] {
		if err := os.Remove(file); err != nil {
			logger.Warnw("could not remove old backup", "file", file, "err", err)
		} else {
			logger.Infow("removed old backup", "file", file)
		}
	}
}

// writeConnectionInfo drops a small db_connection.txt next to the database
// so other tools can find it without re-reading the environment.
func writeConnectionInfo(dbPath string) error {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintln(&b, "# SQLite connection methods:")
	fmt.Fprintf(&b, "# Connection string: sqlite:///%s\n", abs)
	fmt.Fprintf(&b, "# File path: %s\n", abs)
	target := filepath.Join(filepath.Dir(abs), connectionInfoFile)
	return os.WriteFile(target, []byte(b.String()), 0o644)
}
