//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-merchlens/internal/analytics"
	"github.com/pgEdge/pgedge-merchlens/internal/format"
	"github.com/pgEdge/pgedge-merchlens/internal/logging"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Print headline KPIs, health banners and insights",
	Long: `Print the total KPIs of the filtered snapshot with health banners
and narrative insights. With --compare the totals carry deltas against
the prior period (mom, yoy) or the sales plan (plan).

Example:
  merchlens overview --season-year 2025 --season Q1 --compare yoy`,
	RunE: runOverview,
}

func init() {
	addQueryFlags(overviewCmd)
	overviewCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
}

func runOverview(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateQuery(); err != nil {
		return err
	}
	q, err := buildQuery(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}

	logging.Info().
		Str("filter", q.Filter.Summary()).
		Str("compare", q.Compare).
		Msg("Computing overview")

	ov, err := engine.Overview(q)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), ov)
	}
	return printOverview(cmd.OutOrStdout(), ov)
}

func printOverview(w io.Writer, ov *analytics.Overview) error {
	period := "全部期间"
	if ov.Period != nil {
		period = ov.Period.String()
	}
	fmt.Fprintf(w, "期间: %s  筛选: %s\n", period, ov.Query.Filter.Summary())
	if ov.BaselinePeriod != nil {
		fmt.Fprintf(w, "对比期间: %s\n", ov.BaselinePeriod)
	}
	fmt.Fprintln(w)

	t := ov.Total
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "净销售额\t%s\n", format.Money(t.Net))
	fmt.Fprintf(tw, "销量\t%s\n", format.Fixed(t.Units, 0))
	fmt.Fprintf(tw, "SKU数\t%d\n", t.SKUs)
	if t.Plan != nil {
		fmt.Fprintf(tw, "计划\t%s\n", format.Money(t.Plan.Target))
	}
	for _, b := range ov.Banners {
		value := format.Percent(b.Value)
		if b.Metric == "wos" {
			value = format.Fixed(b.Value, 1)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Metric, value, b.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, in := range ov.Insights {
		fmt.Fprintf(w, "[%s] %s\n", in.Status, in.Text)
	}
	if ov.Dropped > 0 {
		fmt.Fprintf(w, "\n%d 条销售记录因 SKU 或渠道缺失未计入。\n", ov.Dropped)
	}
	return nil
}
