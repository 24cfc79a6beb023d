package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/execdash/internal/dashboard"
	"github.com/emiliopalmerini/execdash/internal/domain"
	"github.com/emiliopalmerini/execdash/internal/util"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the executive dashboard in the terminal",
	Long: `Fetch every dashboard panel from a running execdash server and print it.

The channel and platform filters only narrow what is displayed; the server
is always asked for the full data set.

Examples:
  execdash snapshot                          # last 30 days from localhost:8080
  execdash snapshot --date-range 7           # last 7 days
  execdash snapshot --platform "Google Ads"  # highlight one platform`,
	RunE: runSnapshot,
}

var (
	snapshotURL      string
	snapshotFilters  dashboard.Filters
	snapshotDeadline time.Duration
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().StringVar(&snapshotURL, "url", "http://localhost:8080", "Dashboard API base URL")
	snapshotCmd.Flags().IntVarP(&snapshotFilters.DateRange, "date-range", "d", dashboard.DefaultFilters.DateRange, "Window in days")
	snapshotCmd.Flags().StringVar(&snapshotFilters.Channel, "channel", "", "Only show this channel")
	snapshotCmd.Flags().StringVar(&snapshotFilters.Platform, "platform", "", "Only show this marketing platform")
	snapshotCmd.Flags().DurationVar(&snapshotDeadline, "timeout", 60*time.Second, "Overall fetch timeout")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	client := dashboard.NewClient(snapshotURL, &http.Client{Timeout: snapshotDeadline})
	view := dashboard.NewView(client, dashboard.DefaultFilters)

	if err := view.SetFilters(cmd.Context(), snapshotFilters); err != nil {
		return err
	}
	return renderSnapshot(cmd.OutOrStdout(), view.State())
}

func renderSnapshot(w io.Writer, st dashboard.State) error {
	if st.Error != "" {
		return errors.New(st.Error)
	}
	snap := st.Snapshot
	if snap == nil {
		return errors.New("no data loaded")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Executive dashboard, last %d days\n", st.Filters.DateRange)
	if n := len(snap.Revenue); n > 0 {
		fmt.Fprintf(tw, "%s to %s\n", util.FormatDateHuman(snap.Revenue[0].Date), util.FormatDateHuman(snap.Revenue[n-1].Date))
	}
	fmt.Fprintln(tw)

	current, previous := snap.RevenueTotals()
	k := snap.KPIs
	fmt.Fprintf(tw, "Total Revenue\t%s\t%s\n", util.FormatCurrency(k.TotalRevenue), trend(current, previous))
	fmt.Fprintf(tw, "Orders\t%s\t\n", util.FormatNumber(k.TotalOrders))
	fmt.Fprintf(tw, "Avg Order Value\t%s\t\n", util.FormatCurrency(k.AvgOrderValue))
	fmt.Fprintf(tw, "Gross Margin\t%s\t\n", util.FormatPercentage(k.GrossMarginPct, 1))
	fmt.Fprintf(tw, "CAC\t%s\t\n", util.FormatCurrency(k.CustomerAcquisitionCost))
	fmt.Fprintf(tw, "ROAS\t%.2fx\t\n", k.ReturnOnAdSpend)
	fmt.Fprintf(tw, "Conversion Rate\t%s\t\n", util.FormatPercentage(k.ConversionRate, 2))

	fmt.Fprintln(tw, "\nCHANNEL\tREVENUE\tORDERS\tAOV")
	for _, c := range snap.Channels {
		if !matches(st.Filters.Channel, c.ChannelName) {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ChannelName, util.FormatCompactCurrency(c.TotalRevenue), util.FormatNumber(c.TotalOrders), util.FormatCurrency(c.AvgOrderValue))
	}

	fmt.Fprintln(tw, "\nPLATFORM\tSPEND\tREVENUE\tROAS\tCAMPAIGNS")
	for _, m := range snap.Marketing {
		if !matches(st.Filters.Platform, m.Platform) {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2fx\t%d\n", m.Platform, util.FormatCompactCurrency(m.TotalSpend), util.FormatCompactCurrency(m.TotalRevenue), m.ROAS, m.CampaignCount)
	}

	fmt.Fprintln(tw, "\nCATEGORY\tVALUE\tPRODUCTS\tAVG PRICE")
	for _, i := range snap.Inventory {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", i.Category, util.FormatCompactCurrency(i.InventoryValue), i.ProductCount, util.FormatCurrency(i.AvgProductPrice))
	}

	fmt.Fprintln(tw, "\nSTAGE\tCOUNT\tOF FIRST")
	var top int64
	for _, s := range snap.Funnel {
		if s.StageOrder == 1 {
			top = s.Count
		}
		share := domain.SafeDivide(float64(s.Count), float64(top)) * 100
		fmt.Fprintf(tw, "%d. %s\t%s\t%s\n", s.StageOrder, s.Stage, util.FormatNumber(s.Count), util.FormatPercentage(share, 1))
	}

	fmt.Fprintf(tw, "\nFetched %s\n", snap.FetchedAt.Format(time.RFC1123))
	return tw.Flush()
}

func trend(current, previous float64) string {
	pct, up := util.CalculateTrend(current, previous)
	arrow := "▲"
	if !up {
		arrow = "▼"
	}
	return fmt.Sprintf("%s %s vs previous period", arrow, util.FormatPercentage(pct, 1))
}

// matches reports whether name passes a display filter. Empty and "all" match everything.
func matches(filter, name string) bool {
	if filter == "" || strings.EqualFold(filter, "all") {
		return true
	}
	return strings.EqualFold(filter, name)
}
