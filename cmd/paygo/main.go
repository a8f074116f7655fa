package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	countriesFile string
	debugMode     bool
	logger        = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "paygo",
	Short: "Salary, tax and job offer calculator",
	Long: `paygo estimates income tax across 30 countries, breaks salaries and hourly
wages down by pay period and scores competing job offers.

All figures are estimates from simplified tax schedules.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		if debugMode {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paygo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" && debugMode {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// loadTable returns the country table from --countries or the embedded one
func loadTable() (*domain.CountryTable, error) {
	if countriesFile != "" {
		logger.Debug("loading country table", zap.String("path", countriesFile))
		return config.LoadCountryTable(countriesFile)
	}
	return config.DefaultCountryTable()
}

func newTaxCalculator(table *domain.CountryTable) *calculation.TaxCalculator {
	return calculation.NewTaxCalculator(table, calculation.WithLogger(logger.Sugar()))
}

// parseMoney reads a command line amount, allowing thousands separators
func parseMoney(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", "_", "", "$", "").Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

func parseFilingStatus(s string) (domain.FilingStatus, error) {
	status, ok := domain.ParseFilingStatus(s)
	if !ok {
		return "", fmt.Errorf("filing status must be 'single' or 'married', got %q", s)
	}
	return status, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&countriesFile, "countries", "", "Path to a country table YAML file (default: built-in table)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(taxCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(wageCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(equivalentCmd)
	rootCmd.AddCommand(countriesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
