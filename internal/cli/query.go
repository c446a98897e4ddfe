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
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-merchlens/internal/analytics"
	"github.com/pgEdge/pgedge-merchlens/internal/join"
	"github.com/pgEdge/pgedge-merchlens/internal/reports"
)

var (
	// filterValues holds one flag value per filter key, shared by every
	// query command.
	filterValues = make(map[string]*string)
	compareMode  string
	jsonOutput   bool
)

func filterKeys() []string {
	return append(append([]string(nil), join.RequiredKeys...), join.OptionalKeys...)
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// addQueryFlags registers the filter and compare flags on cmd.
func addQueryFlags(cmd *cobra.Command) {
	for _, key := range filterKeys() {
		v, ok := filterValues[key]
		if !ok {
			v = new(string)
			filterValues[key] = v
		}
		cmd.Flags().StringVar(v, flagName(key), "",
			fmt.Sprintf("filter on %s (default: config value or all)", key))
	}
	cmd.Flags().StringVar(&compareMode, "compare", "",
		"compare mode (none, plan, mom, yoy)")
}

// buildQuery starts from the configured query and applies every filter
// flag given on the command line. An explicitly empty flag filters on the
// empty value.
func buildQuery(cmd *cobra.Command) (analytics.Query, error) {
	q := cfg.Query()
	for _, key := range filterKeys() {
		if !cmd.Flags().Changed(flagName(key)) {
			continue
		}
		if err := q.Filter.Set(key, *filterValues[key]); err != nil {
			return q, err
		}
	}
	if cmd.Flags().Changed("compare") {
		q.Compare = compareMode
	}
	return q, q.Validate()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable writes t with aligned columns.
func printTable(w io.Writer, t *reports.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, t.Title)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if len(t.Rows) == 0 {
		fmt.Fprintln(tw, "(无数据)")
	}
	return tw.Flush()
}
