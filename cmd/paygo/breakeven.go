package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paygo/internal/breakeven"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [net-income]",
	Short: "Find the gross salary that leaves a target net income",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseMoney(args[0])
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
		result, err := newSolver(table).SolveGross(cmd.Context(), breakeven.SalaryRequest{
			Country:      country,
			FilingStatus: status,
			Deductions:   deductions,
			TargetNet:    target,
		})
		if err != nil {
			return err
		}

		switch format {
		case "table":
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
		case "json":
			out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		default:
			return fmt.Errorf("unsupported format %q (use table, json)", format)
		}
		return nil
	},
}

var equivalentCmd = &cobra.Command{
	Use:   "equivalent [salary]",
	Short: "Find the salaries that match a salary's net income in other countries",
	Example: `  paygo equivalent 120000 --from US --to GB,DE,CH
  paygo equivalent 80000 --from GB --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		salary, err := parseMoney(args[0])
		if err != nil {
			return err
		}
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		statusFlag, _ := cmd.Flags().GetString("filing-status")
		format, _ := cmd.Flags().GetString("format")

		status, err := parseFilingStatus(statusFlag)
		if err != nil {
			return err
		}

		table, err := loadTable()
		if err != nil {
			return err
		}
		targets := splitCodes(to)
		if len(targets) == 0 {
			// every other country with tax data
			targets = lo.Filter(table.Codes(), func(code string, _ int) bool {
				profile, _ := table.Profile(code)
				return code != domain.NormalizeCode(from) && profile.HasTaxData()
			})
		}

		logger.Debug("solving salary equivalents",
			zap.String("from", from),
			zap.Strings("to", targets))
		result, err := newSolver(table).EquivalentSalaries(cmd.Context(), salary, from, targets, domain.TaxParams{FilingStatus: status})
		if err != nil {
			return err
		}

		switch format {
		case "table":
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatEquivalents(result))
		case "json":
			out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatEquivalents(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		default:
			return fmt.Errorf("unsupported format %q (use table, json)", format)
		}
		return nil
	},
}

func newSolver(table *domain.CountryTable) *breakeven.Solver {
	solver := breakeven.NewDefaultSolver(newTaxCalculator(table))
	solver.Logger = logger.Sugar()
	return solver
}

func splitCodes(s string) []string {
	codes := lo.Map(strings.Split(s, ","), func(c string, _ int) string {
		return domain.NormalizeCode(c)
	})
	return lo.Compact(codes)
}

func init() {
	breakEvenCmd.Flags().String("country", "US", "ISO country code")
	breakEvenCmd.Flags().String("filing-status", "single", "Filing status (single, married)")
	breakEvenCmd.Flags().String("deductions", "0", "Deductions subtracted before the progressive schedule")
	breakEvenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")

	equivalentCmd.Flags().String("from", "US", "Country the salary is earned in")
	equivalentCmd.Flags().String("to", "", "Comma separated target countries (default: all with tax data)")
	equivalentCmd.Flags().String("filing-status", "single", "Filing status (single, married)")
	equivalentCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
}
