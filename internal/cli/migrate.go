package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/robinrobin1706/space-biology/internal/infrastructure/config"
	"github.com/robinrobin1706/space-biology/internal/infrastructure/database"
	"github.com/robinrobin1706/space-biology/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run libsql schema migrations.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).
The mongo store has no schema; its indexes are created on startup.

Examples:
  spacebio migrate      # Run all pending migrations
  spacebio migrate 1    # Migrate to version 1
  spacebio migrate 0    # Rollback all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	target := -1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("invalid version %q", args[0])
		}
		target = v
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Store != config.StoreLibsql {
		return fmt.Errorf("migrate only applies to the %s store, configured store is %s", config.StoreLibsql, cfg.Store)
	}

	db, err := database.Open(ctx, cfg.Database.URL, cfg.Database.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	runner := migrate.NewRunner(db, out)

	current, dirty, err := runner.Version(ctx)
	if err != nil {
		if err := runner.EnsureTable(ctx); err != nil {
			return fmt.Errorf("failed to create migrations table: %w", err)
		}
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d, manual intervention required", current)
	}
	fmt.Fprintf(out, "Current version: %d\n", current)

	var n int
	switch {
	case target < 0 || target > current:
		if target < 0 {
			target = 0
		}
		n, err = runner.Up(ctx, target)
		if err == nil && n == 0 {
			fmt.Fprintln(out, "No pending migrations")
		}
	case target < current:
		n, err = runner.Down(ctx, target)
	default:
		fmt.Fprintf(out, "Already at version %d\n", current)
		return nil
	}
	if err != nil {
		return err
	}

	version, _, err := runner.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated to version %d (%d steps)\n", version, n)
	return nil
}
