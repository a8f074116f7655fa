package main

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/compare"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var compareCmd = &cobra.Command{
	Use:   "compare [offers-file]",
	Short: "Score job offers against each other",
	Long: `Score up to five job offers on pay after tax, work-life balance and benefits.

The offers file names the country and filing status; --country and
--filing-status override them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := config.LoadOffers(args[0])
		if err != nil {
			return err
		}

		country := file.Country
		if c, _ := cmd.Flags().GetString("country"); c != "" {
			country = c
		}
		if country == "" {
			return fmt.Errorf("no country given in %s or --country", args[0])
		}
		status := file.FilingStatus
		if s, _ := cmd.Flags().GetString("filing-status"); s != "" {
			if status, err = parseFilingStatus(s); err != nil {
				return err
			}
		}

		table, err := loadTable()
		if err != nil {
			return err
		}
		engine := compare.NewEngine(newTaxCalculator(table), compare.WithEngineLogger(logger.Sugar()))

		logger.Debug("comparing offers",
			zap.String("file", args[0]),
			zap.String("country", country),
			zap.Int("offers", len(file.Offers)))
		comparison, err := engine.ScoreOffers(file.Offers, country, status)
		if err != nil {
			return err
		}
		if profile, ok := table.Profile(country); !ok || !profile.HasTaxData() {
			logger.Warn("country has no tax data, offers are compared untaxed", zap.String("country", domain.NormalizeCode(country)))
		}

		format, _ := cmd.Flags().GetString("format")
		out, err := formatComparison(comparison, format)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func formatComparison(comparison *compare.OfferComparison, format string) (string, error) {
	switch format {
	case "table", "":
		return (&compare.TableFormatter{}).Format(comparison), nil
	case "compact":
		return (&compare.TableFormatter{}).FormatCompact(comparison) + "\n", nil
	case "csv":
		return (&compare.CSVFormatter{}).Format(comparison)
	case "json":
		out, err := (&compare.JSONFormatter{Pretty: true}).Format(comparison)
		return out + "\n", err
	}
	return "", fmt.Errorf("unsupported format %q (use table, compact, csv or json)", format)
}

func init() {
	compareCmd.Flags().StringP("country", "c", "", "Country code (overrides the offers file)")
	compareCmd.Flags().String("filing-status", "", "Filing status (overrides the offers file)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
}
