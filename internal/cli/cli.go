//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for merchlens.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-merchlens/internal/analytics"
	"github.com/pgEdge/pgedge-merchlens/internal/config"
	"github.com/pgEdge/pgedge-merchlens/internal/db"
	"github.com/pgEdge/pgedge-merchlens/internal/logging"
	"github.com/pgEdge/pgedge-merchlens/internal/reports"
	"github.com/pgEdge/pgedge-merchlens/internal/snapshot"
	"github.com/pgEdge/pgedge-merchlens/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	dataDir    string
	source     string
	connection string
	logLevel   string
	logPretty  bool

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "merchlens",
		Short: "Footwear merchandising analytics over a sales snapshot",
		Long: `merchlens loads a snapshot of SKU, channel, weekly sales, inventory,
competitor and plan tables and answers merchandising questions over it:
KPI overviews with period or plan comparison, multi-dimensional rollups,
competitor mix, wave plan attainment and SKU risk lists.

Snapshots are read from a directory of JSON table files or from
PostgreSQL, and reports can be exported to CSV or XLSX.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./merchlens.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"directory of <table>.json snapshot files")
	rootCmd.PersistentFlags().StringVar(&source, "source", "",
		"snapshot source (json, postgres)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", false,
		"human-readable console logs")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(risksCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(seedCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	if source != "" {
		cfg.Data.Source = source
	}
	if connection != "" {
		cfg.Data.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logPretty {
		cfg.LogPretty = true
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// loadSnapshot reads the configured snapshot source.
func loadSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	switch cfg.Data.Source {
	case config.SourcePostgres:
		pool, err := db.Connect(ctx, cfg.Data.Connection)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()
		return db.LoadSnapshot(ctx, pool)
	default:
		return snapshot.LoadDir(cfg.Data.Dir)
	}
}

// newEngine loads the snapshot and builds an engine over it.
func newEngine(ctx context.Context) (*analytics.Engine, error) {
	snap, err := loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	counts := snap.Counts()
	logging.Info().
		Str("source", cfg.Data.Source).
		Int("skus", counts[snapshot.TableSKUs]).
		Int("sales", counts[snapshot.TableSales]).
		Msg("Snapshot loaded")

	return analytics.New(snap, cfg.Options())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List available reports",
	Long: `List all named reports that can be printed with 'merchlens report'
or written to a file with 'merchlens export'.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available reports:")
		cmd.Println()
		for _, r := range reports.All() {
			cmd.Printf("  %-20s - %s\n", r.Name(), r.Description())
		}
		cmd.Println()
		cmd.Println("Use 'merchlens report <name>' to print one.")
	},
}
