package integration

import (
	"context"
	"testing"

	"github.com/rgehrsitz/paygo/internal/breakeven"
	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/compare"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/rgehrsitz/paygo/internal/paycheck"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var incomes = []int64{0, 1, 12000, 50000, 85000, 160200, 250000, 1000000}

func setup(t *testing.T) (*domain.CountryTable, *calculation.TaxCalculator) {
	t.Helper()
	table, err := config.DefaultCountryTable()
	require.NoError(t, err)
	return table, calculation.NewTaxCalculator(table)
}

func TestEndToEndComparison(t *testing.T) {
	table, calc := setup(t)

	file, err := config.LoadOffers("../testdata/offers_example.yaml")
	require.NoError(t, err)
	require.Len(t, file.Offers, 3)
	assert.True(t, file.Offers[0].Salary.Equal(decimal.NewFromInt(145000)), "currency formatting is stripped")
	assert.True(t, file.Offers[1].Bonus.IsZero(), "blank amounts become zero")

	engine := compare.NewEngine(calc)
	for _, code := range table.Codes() {
		comparison, err := engine.ScoreOffers(file.Offers, code, file.FilingStatus)
		require.NoError(t, err, code)
		require.Len(t, comparison.Offers, 3, code)

		best := comparison.BestOffer()
		require.NotNil(t, best, code)
		for _, o := range comparison.Offers {
			assert.False(t, o.Scores.Overall.GreaterThan(best.Scores.Overall), "%s: %s beats the best offer", code, o.Offer.ID)
			for name, score := range map[string]decimal.Decimal{
				"workLife":  o.Scores.WorkLife,
				"benefits":  o.Scores.Benefits,
				"financial": o.Scores.Financial,
				"overall":   o.Scores.Overall,
			} {
				assert.False(t, score.IsNegative(), "%s %s %s below 0", code, o.Offer.ID, name)
				assert.False(t, score.GreaterThan(decimal.NewFromInt(100)), "%s %s %s above 100", code, o.Offer.ID, name)
			}
		}

		for _, formatted := range []func() (string, error){
			func() (string, error) { return (&compare.TableFormatter{}).Format(comparison), nil },
			func() (string, error) { return (&compare.CSVFormatter{}).Format(comparison) },
			func() (string, error) { return (&compare.JSONFormatter{}).Format(comparison) },
		} {
			out, err := formatted()
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		}
	}
}

func TestDataConsistency(t *testing.T) {
	table, calc := setup(t)

	for _, code := range table.Codes() {
		for _, status := range []domain.FilingStatus{domain.FilingSingle, domain.FilingMarried} {
			params := domain.TaxParams{FilingStatus: status}
			previous := decimal.Zero

			for _, income := range incomes {
				amount := decimal.NewFromInt(income)
				result, err := calc.CalculateTax(amount, code, params)
				require.NoError(t, err)

				sum := result.FederalTax.Add(result.StateTax).Add(result.SocialSecurity).Add(result.Medicare).Add(result.Other)
				assert.True(t, result.TotalTax.Equal(sum), "%s %d: total %s is not the sum %s", code, income, result.TotalTax, sum)
				assert.False(t, result.TotalTax.LessThan(previous), "%s %d: tax fell from %s to %s", code, income, previous, result.TotalTax)
				previous = result.TotalTax

				effective, err := calc.EffectiveTaxRate(amount, code, params)
				require.NoError(t, err)
				assert.False(t, effective.IsNegative(), "%s %d", code, income)

				marginal, err := calc.MarginalTaxRate(amount, code, params)
				require.NoError(t, err)
				assert.False(t, marginal.IsNegative(), "%s %d", code, income)
			}
		}
	}
}

func TestNoTaxDataCountry(t *testing.T) {
	_, calc := setup(t)

	result, err := calc.CalculateTax(decimal.NewFromInt(250000), "AE", domain.TaxParams{})
	require.NoError(t, err)
	assert.True(t, result.TotalTax.IsZero())
	assert.True(t, result.FederalTax.IsZero())
}

func TestPaycheckMatchesTax(t *testing.T) {
	table, calc := setup(t)
	pc := paycheck.NewCalculator(calc, table)

	for _, code := range []string{"US", "GB", "DE", "JP", "SG"} {
		salary := decimal.NewFromInt(70000)
		b, err := pc.FromSalary(salary, code, domain.TaxParams{})
		require.NoError(t, err)

		tax, err := calc.CalculateTax(salary, code, domain.TaxParams{})
		require.NoError(t, err)
		assert.True(t, b.Tax.TotalTax.Equal(tax.TotalTax), code)
		assert.True(t, b.Net.Annual.Equal(salary.Sub(tax.TotalTax)), code)
	}
}

func TestBreakEvenRoundTrip(t *testing.T) {
	table, calc := setup(t)
	solver := breakeven.NewDefaultSolver(calc)
	salary := decimal.NewFromInt(70000)

	for _, code := range table.Codes() {
		tax, err := calc.CalculateTax(salary, code, domain.TaxParams{})
		require.NoError(t, err)

		result, err := solver.SolveGross(context.Background(), breakeven.SalaryRequest{
			Country:   code,
			TargetNet: salary.Sub(tax.TotalTax),
		})
		require.NoError(t, err, code)
		assert.True(t, result.Success, code)
		assert.InDelta(t, 70000, result.Gross.InexactFloat64(), 0.011, code)
	}
}

func TestReportFormats(t *testing.T) {
	table, calc := setup(t)
	pc := paycheck.NewCalculator(calc, table)

	b, err := pc.FromSalary(decimal.NewFromInt(85000), "GB", domain.TaxParams{})
	require.NoError(t, err)
	profile, ok := table.Profile("GB")
	require.True(t, ok)

	report := output.NewTaxReport(profile, "GB", b.Gross.Annual, domain.TaxParams{}, b.Tax, b.EffectiveRate, b.MarginalRate)
	report.Paycheck = b
	for _, name := range output.FormatterNames() {
		data, err := output.GetFormatterByName(name).Format(report)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}

func TestErrorHandling(t *testing.T) {
	_, calc := setup(t)

	_, err := calc.CalculateTax(decimal.NewFromInt(-1), "US", domain.TaxParams{})
	assert.ErrorIs(t, err, calculation.ErrNegativeIncome)

	_, err = config.LoadOffers("../testdata/missing.yaml")
	assert.Error(t, err)

	_, err = config.LoadCountryTable("../testdata/missing.yaml")
	assert.Error(t, err)
}
