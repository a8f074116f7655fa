package main

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/spf13/cobra"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries in the tax table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-5s %-22s %-8s %s\n", "Code", "Name", "Currency", "Schedule")
		for _, code := range table.Codes() {
			p, _ := table.Profile(code)
			schedule := "no tax data"
			if p.HasTaxData() {
				schedule = fmt.Sprintf("%d %s brackets", len(p.Brackets), p.BracketKey)
			}
			fmt.Fprintf(out, "%-5s %-22s %-8s %s\n", p.Code, p.Name, p.Currency, schedule)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [countries-file]",
	Short: "Validate a country table file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := config.LoadCountryTable(args[0])
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is valid: %d countries\n", args[0], table.Len())
		return nil
	},
}
