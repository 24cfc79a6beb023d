package analytics

import (
	"fmt"
	"strings"

	"github.com/emiliopalmerini/execdash/internal/domain"
	"github.com/emiliopalmerini/execdash/internal/ports"
)

const (
	// FixedLookbackDays is the window of the channel, marketing and funnel reports.
	FixedLookbackDays = 30
	// InventoryLimit caps the inventory report.
	InventoryLimit = 10
	// DefaultChannelLimit is the number of channels returned when unspecified.
	DefaultChannelLimit = 5

	activeProductStatus = "active"
)

func windowParams(w domain.Window) []ports.Param {
	return []ports.Param{
		{Name: "start_key", Value: w.StartKey()},
		{Name: "end_key", Value: w.EndKey()},
		{Name: "start_date", Value: w.StartDate()},
		{Name: "end_date", Value: w.EndDate()},
	}
}

func (d Dialect) kpiQuery(w domain.Window) ports.Query {
	sql := fmt.Sprintf(`
WITH order_metrics AS (
  SELECT
    COUNT(DISTINCT order_id) AS total_orders,
    COALESCE(SUM(%[1]s), 0) AS total_revenue,
    COALESCE(AVG(%[1]s), 0) AS avg_order_value
  FROM %[2]s
  WHERE order_date_key BETWEEN @start_key AND @end_key
),
session_metrics AS (
  SELECT
    COUNT(DISTINCT session_id) AS total_sessions,
    COUNT(DISTINCT CASE WHEN completed_purchase THEN session_id END) AS converting_sessions
  FROM %[3]s
  WHERE session_date_key BETWEEN @start_key AND @end_key
),
marketing_metrics AS (
  SELECT
    COALESCE(SUM(spend_amount), 0) AS marketing_spend,
    COALESCE(SUM(revenue), 0) AS marketing_revenue
  FROM %[4]s
  WHERE DATE(activity_date) BETWEEN %[5]s AND %[6]s
)
SELECT
  om.total_revenue,
  om.total_orders,
  om.avg_order_value,
  sm.total_sessions,
  sm.converting_sessions,
  mm.marketing_spend,
  mm.marketing_revenue
FROM order_metrics om
CROSS JOIN session_metrics sm
CROSS JOIN marketing_metrics mm`,
		d.Float("order_total_price"),
		d.Table("fact_orders"),
		d.Table("fact_sessions"),
		d.Table("fact_marketing_performance"),
		d.DateParam("start_date"),
		d.DateParam("end_date"),
	)
	return ports.Query{SQL: sql, Params: windowParams(w)}
}

// dailyRevenueQuery covers the current window and the one before it.
func (d Dialect) dailyRevenueQuery(w domain.Window) ports.Query {
	sql := fmt.Sprintf(`
SELECT
  order_date_key AS date_key,
  SUM(%s) AS daily_revenue
FROM %s
WHERE order_date_key BETWEEN @start_key AND @end_key
GROUP BY order_date_key
ORDER BY order_date_key`,
		d.Float("order_total_price"),
		d.Table("fact_orders"),
	)
	return ports.Query{SQL: sql, Params: []ports.Param{
		{Name: "start_key", Value: w.Previous().StartKey()},
		{Name: "end_key", Value: w.EndKey()},
	}}
}

func (d Dialect) channelQuery(w domain.Window, limit int) ports.Query {
	sql := fmt.Sprintf(`
WITH channels AS (
  SELECT
    channel_source,
    channel_medium,
    MIN(channel_group) AS channel_group
  FROM %[1]s
  GROUP BY channel_source, channel_medium
),
channel_orders AS (
  SELECT
    COALESCE(NULLIF(c.channel_group, ''), @direct) AS channel_name,
    SUM(%[2]s) AS total_revenue,
    COUNT(DISTINCT o.order_id) AS total_orders,
    AVG(%[2]s) AS avg_order_value
  FROM %[3]s o
  LEFT JOIN channels c
    ON c.channel_source = COALESCE(o.source_name, 'direct')
    AND c.channel_medium = COALESCE(o.referring_site, 'none')
  WHERE o.order_date_key BETWEEN @start_key AND @end_key
  GROUP BY channel_name
)
SELECT
  channel_name,
  total_revenue,
  total_orders,
  ROUND(avg_order_value, 2) AS avg_order_value
FROM channel_orders
ORDER BY total_revenue DESC, channel_name ASC
LIMIT @limit`,
		d.Table("dim_channels"),
		d.Float("o.order_total_price"),
		d.Table("fact_orders"),
	)
	return ports.Query{SQL: sql, Params: []ports.Param{
		{Name: "direct", Value: domain.DirectChannel},
		{Name: "start_key", Value: w.StartKey()},
		{Name: "end_key", Value: w.EndKey()},
		{Name: "limit", Value: int64(limit)},
	}}
}

func (d Dialect) marketingQuery(w domain.Window) ports.Query {
	sql := fmt.Sprintf(`
SELECT
  platform,
  SUM(spend_amount) AS total_spend,
  SUM(revenue) AS total_revenue,
  COUNT(DISTINCT content_name) AS campaign_count
FROM %s
WHERE DATE(activity_date) BETWEEN %s AND %s
  AND spend_amount > 0
GROUP BY platform
HAVING SUM(spend_amount) > 0
ORDER BY total_spend DESC, platform ASC`,
		d.Table("fact_marketing_performance"),
		d.DateParam("start_date"),
		d.DateParam("end_date"),
	)
	return ports.Query{SQL: sql, Params: []ports.Param{
		{Name: "start_date", Value: w.StartDate()},
		{Name: "end_date", Value: w.EndDate()},
	}}
}

func (d Dialect) inventoryQuery() ports.Query {
	sql := fmt.Sprintf(`
WITH inventory_summary AS (
  SELECT
    p.product_type AS category,
    COUNT(DISTINCT p.product_id) AS product_count,
    AVG(%[1]s) AS avg_product_price,
    SUM(i.quantity_on_hand * %[1]s) AS inventory_value
  FROM %[2]s p
  LEFT JOIN %[3]s i
    ON p.product_id = i.product_id
  WHERE p.product_status = @product_status
    AND p.product_type IS NOT NULL
  GROUP BY p.product_type
)
SELECT
  category,
  product_count,
  inventory_value,
  avg_product_price
FROM inventory_summary
WHERE inventory_value > 0
ORDER BY inventory_value DESC, category ASC
LIMIT @limit`,
		d.Float("p.price"),
		d.Table("dim_products"),
		d.Table("fact_inventory"),
	)
	return ports.Query{SQL: sql, Params: []ports.Param{
		{Name: "product_status", Value: activeProductStatus},
		{Name: "limit", Value: int64(InventoryLimit)},
	}}
}

// funnelQuery counts distinct sessions per stage in one pass; column
// stage_N holds the count for steps[N].
func (d Dialect) funnelQuery(w domain.Window, steps []domain.FunnelStep) ports.Query {
	cols := make([]string, len(steps))
	for i, s := range steps {
		if s.Flag == "" {
			cols[i] = fmt.Sprintf("  COUNT(DISTINCT session_id) AS %s", stageColumn(i))
			continue
		}
		cols[i] = fmt.Sprintf("  COUNT(DISTINCT CASE WHEN %s THEN session_id END) AS %s", s.Flag, stageColumn(i))
	}
	sql := fmt.Sprintf(`
SELECT
%s
FROM %s
WHERE session_date_key BETWEEN @start_key AND @end_key`,
		strings.Join(cols, ",\n"),
		d.Table("fact_sessions"),
	)
	return ports.Query{SQL: sql, Params: []ports.Param{
		{Name: "start_key", Value: w.StartKey()},
		{Name: "end_key", Value: w.EndKey()},
	}}
}

func (d Dialect) statusQuery() ports.Query {
	return ports.Query{SQL: fmt.Sprintf(`
SELECT
  COUNT(*) AS count,
  MIN(order_date_key) AS min_date,
  MAX(order_date_key) AS max_date
FROM %s`, d.Table("fact_orders"))}
}

func stageColumn(i int) string {
	return fmt.Sprintf("stage_%d", i)
}
