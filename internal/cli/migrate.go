package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/execdash/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run migrations on the local sample warehouse",
	Long: `Run schema migrations on the local libsql sample warehouse.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).

Examples:
  execdash migrate      # Run all pending migrations
  execdash migrate 0    # Rollback all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	target := -1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("invalid version number: %s", args[0])
		}
		target = v
	}

	db, log, err := openLocal()
	if err != nil {
		return err
	}
	defer db.Close()

	runner, err := migrate.NewRunner(db, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	current, _, err := runner.Version(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Current version: %d\n", current)

	version, err := runner.To(ctx, target)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Now at version: %d\n", version)
	return nil
}
