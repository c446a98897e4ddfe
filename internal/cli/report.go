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
	"os"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-merchlens/internal/analytics"
	"github.com/pgEdge/pgedge-merchlens/internal/export"
	"github.com/pgEdge/pgedge-merchlens/internal/logging"
	"github.com/pgEdge/pgedge-merchlens/internal/reports"
)

var (
	riskLimit    int
	exportFormat string
	exportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report <name>",
	Short: "Print a named report",
	Long: `Print one of the named reports. Use 'merchlens reports' to list them.

Example:
  merchlens report region-ops --season-year 2025 --season Q1 --compare plan`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var risksCmd = &cobra.Command{
	Use:   "risks",
	Short: "Print the SKU risk list, most urgent first",
	RunE:  runRisks,
}

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a named report to CSV or XLSX",
	Long: `Export a named report with its metadata header. CSV files carry a
UTF-8 BOM and quote every field. Without --output CSV is written to
standard output.

Example:
  merchlens export risk-list --format xlsx --output risks.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	addQueryFlags(reportCmd)
	reportCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")

	addQueryFlags(risksCmd)
	risksCmd.Flags().IntVar(&riskLimit, "limit", 0, "print at most this many SKUs (0 = all)")
	risksCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")

	addQueryFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "export format (csv, xlsx)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output file path")
}

// buildReport validates the query, loads the engine and builds the report.
func buildReport(cmd *cobra.Command, name string) (*reports.Table, analytics.Query, error) {
	r, err := reports.Get(name)
	if err != nil {
		return nil, analytics.Query{}, err
	}
	q, err := buildQuery(cmd)
	if err != nil {
		return nil, q, err
	}

	ctx, cancel := signalContext()
	defer cancel()
	engine, err := newEngine(ctx)
	if err != nil {
		return nil, q, err
	}

	logging.Info().
		Str("report", name).
		Str("filter", q.Filter.Summary()).
		Str("compare", q.Compare).
		Msg("Building report")

	t, err := r.Build(engine, q)
	return t, q, err
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateQuery(); err != nil {
		return err
	}
	t, _, err := buildReport(cmd, args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), t)
	}
	return printTable(cmd.OutOrStdout(), t)
}

func runRisks(cmd *cobra.Command, args []string) error {
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

	items, err := engine.RiskList(q)
	if err != nil {
		return err
	}
	if riskLimit > 0 && len(items) > riskLimit {
		items = items[:riskLimit]
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), items)
	}
	return printTable(cmd.OutOrStdout(), reports.RiskTable(items))
}

func runExport(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if exportFormat != "" {
		cfg.Export.Format = exportFormat
	}
	if exportOutput != "" {
		cfg.Export.Output = exportOutput
	}

	// Validate configuration
	if err := cfg.ValidateExport(); err != nil {
		return err
	}

	t, q, err := buildReport(cmd, args[0])
	if err != nil {
		return err
	}
	meta := export.NewMeta(q.Filter.Summary(), q.Compare)

	switch cfg.Export.Format {
	case export.FormatXLSX:
		err = export.WriteXLSX(cfg.Export.Output, t, meta)
	default:
		err = writeCSV(cmd, t, meta)
	}
	if err != nil {
		return err
	}

	logging.Info().
		Str("report", args[0]).
		Str("format", cfg.Export.Format).
		Str("output", cfg.Export.Output).
		Str("export_id", meta.ExportID).
		Int("rows", len(t.Rows)).
		Msg("Export complete")
	return nil
}

func writeCSV(cmd *cobra.Command, t *reports.Table, meta export.Meta) error {
	if cfg.Export.Output == "" {
		return export.WriteCSV(cmd.OutOrStdout(), t, meta)
	}
	f, err := os.Create(cfg.Export.Output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", cfg.Export.Output, err)
	}
	if err := export.WriteCSV(f, t, meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
