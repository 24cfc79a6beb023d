package turso

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emiliopalmerini/execdash/internal/domain"
)

// SeedOptions controls the sample data generator.
type SeedOptions struct {
	Days         int
	Seed         int64
	OrdersPerDay int
	Now          time.Time
}

// SeedStats summarizes a generated dataset.
type SeedStats struct {
	Products      int
	Orders        int
	Sessions      int
	MarketingRows int
	Revenue       decimal.Decimal
	MarketingCost decimal.Decimal
}

type channel struct {
	source string
	medium string
	group  string
	weight int
}

// An empty source leaves the order unattributed so it reports as Direct.
var channels = []channel{
	{"google", "cpc", "Paid Search", 25},
	{"google", "organic", "Organic Search", 20},
	{"facebook", "paid", "Paid Social", 12},
	{"tiktok", "paid", "Paid Social", 5},
	{"instagram", "social", "Organic Social", 10},
	{"newsletter", "email", "Email", 10},
	{"", "", "", 18},
}

type productType struct {
	name     string
	minPrice int
	maxPrice int
}

var catalog = []productType{
	{"Skincare", 12, 65},
	{"Makeup", 8, 45},
	{"Fragrance", 35, 120},
	{"Haircare", 10, 40},
	{"Bath & Body", 6, 30},
	{"Tools", 5, 25},
}

type campaign struct {
	platform string
	name     string
	paid     bool
}

var campaigns = []campaign{
	{"Google Ads", "Brand Search", true},
	{"Google Ads", "Generic Search", true},
	{"Meta Ads", "Prospecting", true},
	{"Meta Ads", "Retargeting", true},
	{"TikTok Ads", "Creators", true},
	{"Email", "Weekly Newsletter", false},
}

var customers = []string{
	"emma.thompson", "sophie.williams", "charlotte.brown", "olivia.johnson",
	"amelia.jones", "isabella.miller", "lily.davis", "grace.wilson",
	"ella.moore", "scarlett.taylor", "chloe.anderson", "mia.thomas",
}

const (
	defaultSeedDays     = 90
	defaultOrdersPerDay = 40
)

var (
	vat     = decimal.RequireFromString("1.20")
	hundred = decimal.NewFromInt(100)
)

// Seed replaces the warehouse contents with a deterministic sample dataset
// covering opts.Days days ending on opts.Now, plus the preceding period so
// comparisons have data.
func Seed(ctx context.Context, db *sql.DB, opts SeedOptions) (SeedStats, error) {
	if opts.Days <= 0 {
		opts.Days = defaultSeedDays
	}
	if opts.OrdersPerDay <= 0 {
		opts.OrdersPerDay = defaultOrdersPerDay
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	g := &generator{
		rng:   rand.New(rand.NewSource(opts.Seed)),
		stats: SeedStats{Revenue: decimal.Zero, MarketingCost: decimal.Zero},
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return SeedStats{}, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"fact_orders", "fact_sessions", "fact_marketing_performance", "fact_inventory", "dim_products", "dim_channels"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return SeedStats{}, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := g.dimensions(ctx, tx); err != nil {
		return SeedStats{}, err
	}

	w := domain.NewWindow(opts.Days, opts.Now)
	first := w.Previous().Start()
	total := opts.Days * 2
	for i := 0; i < total; i++ {
		day := first.AddDate(0, 0, i)
		growth := 0.8 + 0.4*float64(i)/float64(total)
		if err := g.day(ctx, tx, day, opts.OrdersPerDay, growth); err != nil {
			return SeedStats{}, fmt.Errorf("seeding %s: %w", domain.FormatDate(day), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SeedStats{}, fmt.Errorf("commit seed transaction: %w", err)
	}
	return g.stats, nil
}

type generator struct {
	rng   *rand.Rand
	stats SeedStats
}

func (g *generator) id() (string, error) {
	id, err := uuid.NewRandomFromReader(io.Reader(g.rng))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// money returns a random amount in [lo, hi) with cent precision.
func (g *generator) money(lo, hi int) decimal.Decimal {
	cents := int64(lo*100) + g.rng.Int63n(int64((hi-lo)*100))
	return decimal.NewFromInt(cents).Div(hundred)
}

func (g *generator) dimensions(ctx context.Context, tx *sql.Tx) error {
	for _, c := range channels {
		if c.source == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dim_channels (channel_source, channel_medium, channel_group) VALUES (?, ?, ?)`,
			c.source, c.medium, c.group); err != nil {
			return fmt.Errorf("inserting channel: %w", err)
		}
	}

	for _, pt := range catalog {
		for n := 1; n <= 5; n++ {
			id, err := g.id()
			if err != nil {
				return err
			}
			status := "active"
			if n == 5 {
				status = "draft"
			}
			price := g.money(pt.minPrice, pt.maxPrice)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO dim_products (product_id, product_title, product_type, price, product_status) VALUES (?, ?, ?, ?, ?)`,
				id, fmt.Sprintf("%s #%d", pt.name, n), pt.name, price.InexactFloat64(), status); err != nil {
				return fmt.Errorf("inserting product: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO fact_inventory (product_id, quantity_on_hand) VALUES (?, ?)`,
				id, g.rng.Intn(120)); err != nil {
				return fmt.Errorf("inserting inventory: %w", err)
			}
			g.stats.Products++
		}
	}
	return nil
}

func (g *generator) pickChannel() channel {
	total := 0
	for _, c := range channels {
		total += c.weight
	}
	n := g.rng.Intn(total)
	for _, c := range channels {
		if n < c.weight {
			return c
		}
		n -= c.weight
	}
	return channels[len(channels)-1]
}

func (g *generator) day(ctx context.Context, tx *sql.Tx, day time.Time, base int, growth float64) error {
	key := domain.DateKey(day)
	jitter := 0.8 + 0.4*g.rng.Float64()
	orders := int(float64(base)*seasonalMultiplier(day)*growth*jitter + 0.5)

	for i := 0; i < orders; i++ {
		id, err := g.id()
		if err != nil {
			return err
		}
		total := g.money(15, 180).Mul(vat).Round(2)
		c := g.pickChannel()
		email := customers[g.rng.Intn(len(customers))] + "@example.com"

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO fact_orders (order_id, order_date_key, order_total_price, source_name, referring_site, customer_email) VALUES (?, ?, ?, ?, ?, ?)`,
			id, key, total.InexactFloat64(), nullable(c.source), nullable(c.medium), email); err != nil {
			return fmt.Errorf("inserting order: %w", err)
		}
		g.stats.Orders++
		g.stats.Revenue = g.stats.Revenue.Add(total)
	}

	// Every order closes one session; the rest fall off along the funnel.
	sessions := orders * 12
	for i := 0; i < sessions; i++ {
		id, err := g.id()
		if err != nil {
			return err
		}
		purchased := i < orders
		viewed := purchased || g.rng.Float64() < 0.6
		carted := purchased || (viewed && g.rng.Float64() < 0.35)
		checkout := purchased || (carted && g.rng.Float64() < 0.5)

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO fact_sessions (session_id, session_date_key, viewed_products, added_to_cart, began_checkout, completed_purchase) VALUES (?, ?, ?, ?, ?, ?)`,
			id, key, flag(viewed), flag(carted), flag(checkout), flag(purchased)); err != nil {
			return fmt.Errorf("inserting session: %w", err)
		}
		g.stats.Sessions++
	}

	for _, c := range campaigns {
		spend := decimal.Zero
		if c.paid {
			spend = g.money(40, 250)
		}
		roas := decimal.NewFromFloat(1.5 + 3*g.rng.Float64())
		revenue := spend.Mul(roas).Round(2)
		if !c.paid {
			revenue = g.money(50, 400)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO fact_marketing_performance (activity_date, platform, content_name, spend_amount, revenue) VALUES (?, ?, ?, ?, ?)`,
			domain.FormatDate(day), c.platform, c.name, spend.InexactFloat64(), revenue.InexactFloat64()); err != nil {
			return fmt.Errorf("inserting marketing row: %w", err)
		}
		g.stats.MarketingRows++
		g.stats.MarketingCost = g.stats.MarketingCost.Add(spend)
	}
	return nil
}

// seasonalMultiplier scales order volume around retail peaks. Black Friday
// is the day after the fourth Thursday of November.
func seasonalMultiplier(day time.Time) float64 {
	m, d, wd := day.Month(), day.Day(), day.Weekday()
	switch {
	case m == time.November && d >= 23 && d <= 29 && wd == time.Friday:
		return 4.0
	case m == time.December:
		return 2.5
	case m == time.February && d >= 10 && d <= 16:
		return 2.0
	case m == time.May && d >= 8 && d <= 14 && wd == time.Sunday:
		return 1.8
	case m == time.November || m == time.February || m == time.May:
		return 1.3
	case m >= time.June && m <= time.August:
		return 1.1
	}
	return 1.0
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
