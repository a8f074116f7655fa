package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// EquivalentSalaries finds, for each target country, the gross salary that
// leaves the same net income as salary earned in the from country
func (s *Solver) EquivalentSalaries(
	ctx context.Context,
	salary decimal.Decimal,
	from string,
	targets []string,
	params domain.TaxParams,
) (*EquivalentResult, error) {
	if len(targets) == 0 {
		return nil, &BreakEvenError{
			Operation: "equivalent_salaries",
			Message:   "at least one target country is required",
		}
	}
	if salary.IsNegative() {
		return nil, &BreakEvenError{
			Operation: "equivalent_salaries",
			Message:   "salary cannot be negative",
		}
	}

	from = domain.NormalizeCode(from)
	base, err := s.Tax.CalculateTax(salary, from, params)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "equivalent_salaries",
			Message:   fmt.Sprintf("failed to calculate tax for %s", from),
			Cause:     err,
		}
	}
	net := salary.Sub(base.TotalTax)
	if net.IsNegative() {
		net = decimal.Zero
	}

	result := &EquivalentResult{From: from, Salary: salary, Net: net}
	for _, code := range targets {
		solved, err := s.SolveGross(ctx, SalaryRequest{
			Country:      code,
			FilingStatus: params.FilingStatus,
			Deductions:   params.Deductions,
			TargetNet:    net,
		})
		if err != nil {
			return nil, err
		}
		result.Equivalents = append(result.Equivalents, Equivalent{
			SalaryResult: *solved,
			Difference:   solved.Gross.Sub(salary),
		})
	}

	cheapest := lo.MinBy(result.Equivalents, func(a, b Equivalent) bool {
		return a.Gross.LessThan(b.Gross)
	})
	result.Cheapest = cheapest.Request.Country
	result.Recommendations = s.equivalentRecommendations(result)
	return result, nil
}

func (s *Solver) equivalentRecommendations(result *EquivalentResult) []string {
	recommendations := []string{
		fmt.Sprintf("%s in %s leaves %s after tax", result.Salary.StringFixed(2), result.From, result.Net.StringFixed(2)),
	}
	for _, eq := range result.Equivalents {
		switch {
		case eq.Difference.IsPositive():
			recommendations = append(recommendations, fmt.Sprintf("%s needs %s more gross to match", eq.Request.Country, eq.Difference.StringFixed(2)))
		case eq.Difference.IsNegative():
			recommendations = append(recommendations, fmt.Sprintf("%s matches with %s less gross", eq.Request.Country, eq.Difference.Abs().StringFixed(2)))
		}
	}
	if result.Cheapest != "" && len(result.Equivalents) > 1 {
		recommendations = append(recommendations, fmt.Sprintf("Lowest gross needed: %s", result.Cheapest))
	}
	return recommendations
}
