package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a gross-up result
func (tf *TableFormatter) Format(result *SalaryResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SALARY\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Country:        %s\n", result.Request.Country))
	sb.WriteString(fmt.Sprintf("Target net:     %s\n", tf.formatCurrency(result.Request.TargetNet)))
	sb.WriteString(fmt.Sprintf("Status:         %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:     %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:    %s\n", result.ConvergenceInfo))
	}
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Gross salary:   %s\n", tf.formatCurrency(result.Gross)))
	sb.WriteString(fmt.Sprintf("Total tax:      %s\n", tf.formatCurrency(result.Tax.TotalTax)))
	sb.WriteString(fmt.Sprintf("Net income:     %s\n", tf.formatCurrency(result.Net)))
	sb.WriteString(fmt.Sprintf("Effective rate: %s%%\n", result.EffectiveRate.StringFixed(2)))
	return sb.String()
}

// FormatEquivalents formats salary equivalents across countries
func (tf *TableFormatter) FormatEquivalents(result *EquivalentResult) string {
	var sb strings.Builder

	sb.WriteString("SALARY EQUIVALENTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Reference: %s in %s (net %s)\n\n",
		tf.formatCurrency(result.Salary), result.From, tf.formatCurrency(result.Net)))

	sb.WriteString(fmt.Sprintf("%-8s %14s %14s %12s %8s\n", "Country", "Gross", "Difference", "Tax", "Eff.%"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, eq := range result.Equivalents {
		sb.WriteString(fmt.Sprintf("%-8s %14s %14s %12s %8s\n",
			tf.truncate(eq.Request.Country, 8),
			tf.formatCurrency(eq.Gross),
			tf.deltaSymbol(eq.Difference)+tf.formatCurrency(eq.Difference),
			tf.formatShort(eq.Tax.TotalTax),
			eq.EffectiveRate.StringFixed(2)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a gross-up result
func (jf *JSONFormatter) Format(result *SalaryResult) (string, error) {
	return jf.marshal(result)
}

// FormatEquivalents generates JSON output for salary equivalents
func (jf *JSONFormatter) FormatEquivalents(result *EquivalentResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return ""
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
