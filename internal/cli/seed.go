package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/execdash/internal/adapters/turso"
	"github.com/emiliopalmerini/execdash/internal/migrate"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the local sample warehouse with generated data",
	Long: `Generate a deterministic e-commerce dataset in the local libsql warehouse.

Existing rows are replaced. Two windows of --days are generated so the
previous-period comparison has data.

Examples:
  execdash seed                      # 90 days, seed 1
  execdash seed --days 30 --seed 7   # smaller, different dataset`,
	RunE: runSeed,
}

var (
	seedDays         int
	seedValue        int64
	seedOrdersPerDay int
)

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntVar(&seedDays, "days", 90, "Days of data per window")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 1, "Random seed")
	seedCmd.Flags().IntVar(&seedOrdersPerDay, "orders-per-day", 40, "Baseline orders per day")
}

func runSeed(cmd *cobra.Command, args []string) error {
	if seedDays <= 0 {
		return fmt.Errorf("--days must be positive, got %d", seedDays)
	}

	db, log, err := openLocal()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if err := migrate.RunAll(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	start := time.Now()
	stats, err := turso.Seed(ctx, db, turso.SeedOptions{
		Days:         seedDays,
		Seed:         seedValue,
		OrdersPerDay: seedOrdersPerDay,
	})
	if err != nil {
		return err
	}
	log.Info().Dur("took", time.Since(start)).Int("orders", stats.Orders).Msg("seeded sample warehouse")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Products:        %d\n", stats.Products)
	fmt.Fprintf(out, "Orders:          %d\n", stats.Orders)
	fmt.Fprintf(out, "Sessions:        %d\n", stats.Sessions)
	fmt.Fprintf(out, "Marketing rows:  %d\n", stats.MarketingRows)
	fmt.Fprintf(out, "Revenue:         %s\n", stats.Revenue.StringFixed(2))
	fmt.Fprintf(out, "Marketing spend: %s\n", stats.MarketingCost.StringFixed(2))
	return nil
}
