package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var taxCmd = &cobra.Command{
	Use:   "tax [income]",
	Short: "Calculate the tax owed on an annual income",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		income, err := parseMoney(args[0])
		if err != nil {
			return err
		}
		country, _ := cmd.Flags().GetString("country")
		statusFlag, _ := cmd.Flags().GetString("filing-status")
		deductionsFlag, _ := cmd.Flags().GetString("deductions")
		format, _ := cmd.Flags().GetString("format")

		status, err := parseFilingStatus(statusFlag)
		if err != nil {
			return err
		}
		deductions, err := parseMoney(deductionsFlag)
		if err != nil {
			return err
		}

		table, err := loadTable()
		if err != nil {
			return err
		}
		calc := newTaxCalculator(table)
		params := domain.TaxParams{FilingStatus: status, Deductions: deductions}

		result, err := calc.CalculateTax(income, country, params)
		if err != nil {
			return err
		}
		effective, err := calc.EffectiveTaxRate(income, country, params)
		if err != nil {
			return err
		}
		marginal, err := calc.MarginalTaxRate(income, country, params)
		if err != nil {
			return err
		}

		profile, _ := table.Profile(country)
		return writeReport(cmd, format, output.NewTaxReport(profile, country, income, params, result, effective, marginal))
	},
}

// writeReport renders a report with the named formatter
func writeReport(cmd *cobra.Command, format string, report *output.TaxReport) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format %q (use %s)", format, strings.Join(output.FormatterNames(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

var ratesCmd = &cobra.Command{
	Use:   "rates [income]",
	Short: "Compare effective and marginal rates across countries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		income, err := parseMoney(args[0])
		if err != nil {
			return err
		}
		countryFlag, _ := cmd.Flags().GetString("country")
		statusFlag, _ := cmd.Flags().GetString("filing-status")
		status, err := parseFilingStatus(statusFlag)
		if err != nil {
			return err
		}

		table, err := loadTable()
		if err != nil {
			return err
		}
		calc := newTaxCalculator(table)
		params := domain.TaxParams{FilingStatus: status}

		codes := table.Codes()
		if countryFlag != "" {
			codes = splitCodes(countryFlag)
		}

		type row struct {
			code      string
			effective decimal.Decimal
			marginal  decimal.Decimal
		}
		rows := make([]row, 0, len(codes))
		for _, code := range codes {
			profile, ok := table.Profile(code)
			if !ok || !profile.HasTaxData() {
				continue
			}
			effective, err := calc.EffectiveTaxRate(income, code, params)
			if err != nil {
				return err
			}
			marginal, err := calc.MarginalTaxRate(income, code, params)
			if err != nil {
				return err
			}
			rows = append(rows, row{code: code, effective: effective, marginal: marginal})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-8s %12s %12s\n", "Country", "Effective", "Marginal")
		fmt.Fprintln(out, strings.Repeat("-", 34))
		for _, r := range rows {
			fmt.Fprintf(out, "%-8s %11s%% %11s%%\n", r.code, r.effective.StringFixed(2), r.marginal.StringFixed(2))
		}
		return nil
	},
}

func init() {
	taxCmd.Flags().StringP("country", "c", "US", "Country code")
	taxCmd.Flags().String("filing-status", "single", "Filing status (single, married)")
	taxCmd.Flags().String("deductions", "0", "Deductions subtracted before the progressive schedule")
	taxCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, html)")

	ratesCmd.Flags().StringP("country", "c", "", "Comma-separated country codes (default: every country with tax data)")
	ratesCmd.Flags().String("filing-status", "single", "Filing status (single, married)")
}
