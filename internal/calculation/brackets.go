package calculation

import (
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeBracketTax applies a progressive schedule to income. Brackets must
// be sorted by Min and contiguous from zero with an unbounded last bracket;
// the country table loader enforces this, the evaluator does not check it.
// Zero-rate brackets are walked like any other so the running upper edge
// advances. No rounding is applied.
func ComputeBracketTax(brackets []domain.TaxBracket, income decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	previousMax := decimal.Zero

	for _, bracket := range brackets {
		if income.LessThanOrEqual(previousMax) {
			break
		}

		start := decimal.Max(previousMax, bracket.Min)
		var width decimal.Decimal
		if bracket.Unbounded() {
			width = income.Sub(bracket.Min)
		} else {
			width = bracket.Max.Sub(bracket.Min)
		}

		taxable := decimal.Min(income.Sub(start), width)
		if taxable.IsPositive() {
			tax = tax.Add(taxable.Mul(bracket.Rate))
		}

		if bracket.Unbounded() {
			break
		}
		previousMax = *bracket.Max
	}

	return tax
}

// findBracket returns the first bracket whose [Min, Max] contains income
func findBracket(brackets []domain.TaxBracket, income decimal.Decimal) (domain.TaxBracket, bool) {
	for _, b := range brackets {
		if b.Contains(income) {
			return b, true
		}
	}
	return domain.TaxBracket{}, false
}
