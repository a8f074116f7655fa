package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter renders a plain text report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *TaxReport) ([]byte, error) {
	var buf bytes.Buffer

	if r.CountryName != "" {
		fmt.Fprintf(&buf, "Country:         %s (%s, %s)\n", r.CountryName, r.Country, r.Currency)
	} else {
		fmt.Fprintf(&buf, "Country:         %s (no tax data)\n", r.Country)
	}
	fmt.Fprintf(&buf, "Filing status:   %s\n", r.FilingStatus)
	fmt.Fprintf(&buf, "Income:          %s\n", FormatCurrency(r.Income))
	if r.Deductions.IsPositive() {
		fmt.Fprintf(&buf, "Deductions:      %s\n", FormatCurrency(r.Deductions))
	}
	buf.WriteString(strings.Repeat("-", 32) + "\n")
	for _, line := range r.Lines() {
		fmt.Fprintf(&buf, "%-16s %s\n", line.Label+":", FormatCurrency(line.Amount))
	}
	buf.WriteString(strings.Repeat("-", 32) + "\n")
	fmt.Fprintf(&buf, "Total tax:       %s\n", FormatCurrency(r.Result.TotalTax))
	fmt.Fprintf(&buf, "Net income:      %s\n", FormatCurrency(r.NetIncome()))
	fmt.Fprintf(&buf, "Effective rate:  %s\n", FormatPercentage(r.EffectiveRate))
	fmt.Fprintf(&buf, "Marginal rate:   %s\n", FormatPercentage(r.MarginalRate))

	if p := r.Paycheck; p != nil {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "%s h/week x %s weeks\n", p.HoursPerWeek.String(), p.WeeksPerYear.String())
		if p.OvertimePay.IsPositive() {
			fmt.Fprintf(&buf, "Regular pay: %s   Overtime pay: %s\n", FormatCurrency(p.RegularPay), FormatCurrency(p.OvertimePay))
		}
		fmt.Fprintf(&buf, "%-10s %14s %14s\n", "Period", "Gross", "Net")
		for _, row := range periodRows(r) {
			fmt.Fprintf(&buf, "%-10s %14s %14s\n", row[0], row[1], row[2])
		}
	}
	return buf.Bytes(), nil
}

// periodRows returns label, gross and net per pay period
func periodRows(r *TaxReport) [][3]string {
	p := r.Paycheck
	if p == nil {
		return nil
	}
	return [][3]string{
		{"Annual", FormatCurrency(p.Gross.Annual), FormatCurrency(p.Net.Annual)},
		{"Monthly", FormatCurrency(p.Gross.Monthly), FormatCurrency(p.Net.Monthly)},
		{"Biweekly", FormatCurrency(p.Gross.Biweekly), FormatCurrency(p.Net.Biweekly)},
		{"Weekly", FormatCurrency(p.Gross.Weekly), FormatCurrency(p.Net.Weekly)},
		{"Daily", FormatCurrency(p.Gross.Daily), FormatCurrency(p.Net.Daily)},
		{"Hourly", FormatCurrency(p.Gross.Hourly), FormatCurrency(p.Net.Hourly)},
	}
}
