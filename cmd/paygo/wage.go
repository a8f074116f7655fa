package main

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/rgehrsitz/paygo/internal/paycheck"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var wageCmd = &cobra.Command{
	Use:   "wage",
	Short: "Break a salary or hourly wage down by pay period",
	Example: `  paygo wage --salary 85000 --country GB
  paygo wage --hourly 32 --overtime 4 --country US`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		salaryFlag, _ := cmd.Flags().GetString("salary")
		hourlyFlag, _ := cmd.Flags().GetString("hourly")
		if (salaryFlag == "") == (hourlyFlag == "") {
			return fmt.Errorf("provide exactly one of --salary or --hourly")
		}
		country, _ := cmd.Flags().GetString("country")
		statusFlag, _ := cmd.Flags().GetString("filing-status")
		status, err := parseFilingStatus(statusFlag)
		if err != nil {
			return err
		}

		table, err := loadTable()
		if err != nil {
			return err
		}
		calc := paycheck.NewCalculator(newTaxCalculator(table), table)
		params := domain.TaxParams{FilingStatus: status}

		var breakdown *paycheck.Breakdown
		if salaryFlag != "" {
			salary, err := parseMoney(salaryFlag)
			if err != nil {
				return err
			}
			breakdown, err = calc.FromSalary(salary, country, params)
			if err != nil {
				return err
			}
		} else {
			rate, err := parseMoney(hourlyFlag)
			if err != nil {
				return err
			}
			in := paycheck.HourlyInput{Rate: rate}
			if in.HoursPerWeek, err = optionalMoney(cmd, "hours"); err != nil {
				return err
			}
			if in.OvertimeHoursPerWeek, err = optionalMoney(cmd, "overtime"); err != nil {
				return err
			}
			if in.WeeksPerYear, err = optionalMoney(cmd, "weeks"); err != nil {
				return err
			}
			breakdown, err = calc.FromHourly(in, country, params)
			if err != nil {
				return err
			}
		}

		format, _ := cmd.Flags().GetString("format")
		profile, _ := table.Profile(country)
		report := output.NewTaxReport(profile, country, breakdown.Gross.Annual, params,
			breakdown.Tax, breakdown.EffectiveRate, breakdown.MarginalRate)
		report.Paycheck = breakdown
		return writeReport(cmd, format, report)
	},
}

// optionalMoney reads an amount flag; an unset flag is zero
func optionalMoney(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := parseMoney(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

func init() {
	wageCmd.Flags().String("salary", "", "Annual salary")
	wageCmd.Flags().String("hourly", "", "Hourly rate")
	wageCmd.Flags().String("hours", "", "Hours per week (default: the country's standard week)")
	wageCmd.Flags().String("overtime", "", "Overtime hours per week")
	wageCmd.Flags().String("weeks", "", "Weeks worked per year (default: 52)")
	wageCmd.Flags().StringP("country", "c", "US", "Country code")
	wageCmd.Flags().String("filing-status", "single", "Filing status (single, married)")
	wageCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, html)")
}
