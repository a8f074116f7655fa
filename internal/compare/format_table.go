package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats offer comparisons as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing offers
func (tf *TableFormatter) Format(comparison *OfferComparison) string {
	var sb strings.Builder

	sb.WriteString("JOB OFFER COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Country: %s    Filing status: %s\n", comparison.Country, comparison.FilingStatus))
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 10

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Offer",
		numWidth, "Gross",
		numWidth, "Tax",
		numWidth, "Net Total",
		numWidth, "Net/Hour",
		numWidth, "Work-Life",
		numWidth, "Overall"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	for _, offer := range comparison.Offers {
		sb.WriteString(tf.formatRow(offer, nameWidth, numWidth, offer.Offer.ID == comparison.BestOfferID))
	}
	sb.WriteString(strings.Repeat("=", 88) + "\n")

	sb.WriteString("\nSCORES\n")
	sb.WriteString(strings.Repeat("-", 88) + "\n")
	for _, offer := range comparison.Offers {
		sb.WriteString(fmt.Sprintf("%s:\n", displayName(offer.Offer)))
		sb.WriteString(fmt.Sprintf("  Financial: %6s   Work-Life: %6s   Benefits: %6s   Overall: %6s\n",
			offer.Scores.Financial.StringFixed(1),
			offer.Scores.WorkLife.StringFixed(1),
			offer.Scores.Benefits.StringFixed(1),
			offer.Scores.Overall.StringFixed(1)))
		sb.WriteString(fmt.Sprintf("  Commute: %s h/yr   Work: %s h/yr   Effective rate: %s%%\n",
			offer.Calculated.AnnualCommuteHours.StringFixed(0),
			offer.Calculated.EffectiveAnnualWorkHours.StringFixed(0),
			effectiveRate(offer).StringFixed(1)))
	}

	if len(comparison.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, rec := range comparison.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(offer domain.ScoredOffer, nameWidth, numWidth int, isBest bool) string {
	name := displayName(offer.Offer)
	if isBest {
		name = "* " + name
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(offer.Calculated.GrossAnnualCompensation),
		numWidth, "$"+tf.formatDecimal(offer.Calculated.Tax.TotalTax),
		numWidth, "$"+tf.formatDecimal(offer.Calculated.NetTotalCompensationAnnual),
		numWidth, "$"+offer.Calculated.NetHourlyWithCommute.StringFixed(2),
		numWidth, offer.Scores.WorkLife.StringFixed(1),
		numWidth, offer.Scores.Overall.StringFixed(1))
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of the comparison
func (tf *TableFormatter) FormatCompact(comparison *OfferComparison) string {
	parts := make([]string, 0, len(comparison.Offers))
	for _, offer := range comparison.Offers {
		marker := ""
		if offer.Offer.ID == comparison.BestOfferID {
			marker = "*"
		}
		parts = append(parts, fmt.Sprintf("%s%s: %s", marker, displayName(offer.Offer), offer.Scores.Overall.StringFixed(1)))
	}
	return strings.Join(parts, " | ")
}

func effectiveRate(offer domain.ScoredOffer) decimal.Decimal {
	income := offer.Offer.TaxableIncome()
	if !income.IsPositive() {
		return decimal.Zero
	}
	return offer.Calculated.Tax.TotalTax.Div(income).Mul(hundred)
}
