package compare

import (
	"encoding/csv"
	"strings"

	"github.com/rgehrsitz/paygo/internal/domain"
)

// CSVFormatter formats offer comparisons as CSV
type CSVFormatter struct{}

// Format generates CSV output with one row per offer
func (cf *CSVFormatter) Format(comparison *OfferComparison) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"ID",
		"Name",
		"Best",
		"Gross Compensation",
		"Total Tax",
		"Net Income",
		"Net Total Compensation",
		"Work Days",
		"Commute Hours",
		"Effective Work Hours",
		"Net Hourly",
		"Net Hourly With Commute",
		"Financial Score",
		"Work-Life Score",
		"Benefits Score",
		"Overall Score",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, offer := range comparison.Offers {
		if err := writer.Write(cf.formatRow(offer, offer.Offer.ID == comparison.BestOfferID)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(offer domain.ScoredOffer, best bool) []string {
	c := offer.Calculated
	s := offer.Scores
	bestFlag := "false"
	if best {
		bestFlag = "true"
	}
	return []string{
		offer.Offer.ID,
		offer.Offer.Name,
		bestFlag,
		c.GrossAnnualCompensation.StringFixed(2),
		c.Tax.TotalTax.StringFixed(2),
		c.NetIncomeAnnual.StringFixed(2),
		c.NetTotalCompensationAnnual.StringFixed(2),
		c.ActualWorkDays.StringFixed(0),
		c.AnnualCommuteHours.StringFixed(2),
		c.EffectiveAnnualWorkHours.StringFixed(2),
		c.NetHourlyBase.StringFixed(2),
		c.NetHourlyWithCommute.StringFixed(2),
		s.Financial.StringFixed(2),
		s.WorkLife.StringFixed(2),
		s.Benefits.StringFixed(2),
		s.Overall.StringFixed(2),
	}
}
