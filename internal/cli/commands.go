package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dyike/findash/internal/api"
	"github.com/dyike/findash/internal/config"
	"github.com/dyike/findash/internal/marketdata"
	"github.com/dyike/findash/internal/observability"
	"github.com/dyike/findash/internal/pipeline"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "findash",
		Short: "FinDash - Stock Analysis Dashboard",
		Long: `FinDash is a stock analysis toolkit built around a moving-average
crossover strategy. It fetches daily price history, computes technical
indicators, backtests the strategy, and renders the results as a
terminal dashboard or serves them over HTTP.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyRootFlags(cmd, cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start interactive mode
			return runInteractiveMode(cfg)
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(cfg))
	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().String("config", "", "Configuration file path")

	return rootCmd
}

// applyRootFlags folds the persistent flags into the shared config
// before any subcommand runs: an explicit config file replaces the
// defaults, and --debug overrides whatever the file or environment set.
func applyRootFlags(cmd *cobra.Command, cfg *config.Config) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		*cfg = *loaded
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}
	return nil
}

// newAnalyzeCmd creates the analyze command
func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [SYMBOL]",
		Short: "Run a crossover backtest for a stock symbol",
		Long: `Run a full analysis for a given stock ticker symbol: fetch daily
price history, compute indicators, and backtest the SMA crossover strategy.
Example: findash analyze AAPL --start=2024-01-01 --end=2024-12-31`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := args[0]
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			smaShort, _ := cmd.Flags().GetInt("sma-short")
			smaLong, _ := cmd.Flags().GetInt("sma-long")

			return runAnalyzeCommand(cfg, marketdata.Request{
				Symbol:    symbol,
				StartDate: start,
				EndDate:   end,
				SMAShort:  smaShort,
				SMALong:   smaLong,
			})
		},
	}

	today := time.Now()
	cmd.Flags().String("start", today.AddDate(-1, 0, 0).Format("2006-01-02"), "Start date in YYYY-MM-DD format")
	cmd.Flags().String("end", today.Format("2006-01-02"), "End date in YYYY-MM-DD format")
	cmd.Flags().Int("sma-short", pipeline.DefaultSMAShort, "Short SMA window in trading days")
	cmd.Flags().Int("sma-long", pipeline.DefaultSMALong, "Long SMA window in trading days")

	return cmd
}

// newServeCmd creates the serve command
func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the FinDash HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.HTTPAddr = addr
			}
			metrics := observability.NewMetrics(cfg.MetricsNamespace)
			runner := pipeline.NewRunner(marketdata.NewFetcher(marketdata.NewYahooProvider()), metrics)
			server := api.NewServer(runner, cfg, metrics)

			fmt.Printf("🚀 FinDash API listening on %s\n", cfg.HTTPAddr)
			return server.ListenAndServe()
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides configuration)")

	return cmd
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Manage FinDash configuration settings",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	return configCmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("FinDash v2.0.0")
			fmt.Println("Stock Analysis Dashboard")
		},
	}
}

// runAnalyzeCommand executes the main analysis workflow
func runAnalyzeCommand(cfg *config.Config, req marketdata.Request) error {
	runner := pipeline.NewRunner(marketdata.NewFetcher(marketdata.NewYahooProvider()), nil)

	fmt.Printf("🚀 Analyzing %s from %s to %s\n",
		marketdata.NormalizeSymbol(req.Symbol), req.StartDate, req.EndDate)

	analysis, err := runner.Run(req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	RenderDashboard(analysis)
	return nil
}

// showConfig displays the current configuration
func showConfig(cfg *config.Config) {
	fmt.Println("📋 Current FinDash Configuration:")
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("HTTP Address:         %s\n", cfg.HTTPAddr)
	fmt.Printf("Allowed Origin:       %s\n", cfg.AllowedOrigin)
	fmt.Printf("Metrics Namespace:    %s\n", cfg.MetricsNamespace)
	fmt.Printf("Debug:                %v\n", cfg.Debug)
}
