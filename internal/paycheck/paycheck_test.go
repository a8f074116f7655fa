package paycheck

import (
	"testing"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalculator(t *testing.T) *Calculator {
	t.Helper()
	table, err := config.DefaultCountryTable()
	require.NoError(t, err)
	return NewCalculator(calculation.NewTaxCalculator(table), table)
}

func assertCents(t *testing.T, expected string, actual decimal.Decimal, context string) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	assert.True(t, actual.Round(2).Equal(want), "%s: expected %s, got %s", context, want, actual)
}

func TestFromSalary_UnitedStates(t *testing.T) {
	calc := newCalculator(t)

	b, err := calc.FromSalary(decimal.NewFromInt(50000), "us", domain.TaxParams{})
	require.NoError(t, err)

	assert.Equal(t, "US", b.Country)
	assert.Equal(t, "USD", b.Currency)
	assertCents(t, "40", b.HoursPerWeek, "hours per week")
	assertCents(t, "50000", b.Gross.Annual, "gross annual")
	assertCents(t, "4166.67", b.Gross.Monthly, "gross monthly")
	assertCents(t, "1923.08", b.Gross.Biweekly, "gross biweekly")
	assertCents(t, "961.54", b.Gross.Weekly, "gross weekly")
	assertCents(t, "192.31", b.Gross.Daily, "gross daily")
	assertCents(t, "24.04", b.Gross.Hourly, "gross hourly")

	assertCents(t, "12382.50", b.Tax.TotalTax, "total tax")
	assertCents(t, "37617.50", b.Net.Annual, "net annual")
	assertCents(t, "3134.79", b.Net.Monthly, "net monthly")
	assertCents(t, "18.09", b.Net.Hourly, "net hourly")
	assertCents(t, "24.77", b.EffectiveRate, "effective rate")
	assertCents(t, "34.15", b.MarginalRate, "marginal rate")
	assert.True(t, b.OvertimePay.IsZero())
}

func TestFromSalary_UsesCountryWorkingWeek(t *testing.T) {
	calc := newCalculator(t)

	b, err := calc.FromSalary(decimal.NewFromInt(39000), "GB", domain.TaxParams{})
	require.NoError(t, err)

	assertCents(t, "37.5", b.HoursPerWeek, "hours per week")
	assertCents(t, "20", b.Gross.Hourly, "39000 over 37.5h x 52 weeks")
}

func TestFromSalary_UnknownCountry(t *testing.T) {
	calc := newCalculator(t)

	b, err := calc.FromSalary(decimal.NewFromInt(52000), "ZZ", domain.TaxParams{})
	require.NoError(t, err)

	assert.Equal(t, "", b.Currency)
	assert.True(t, b.Tax.TotalTax.IsZero())
	assert.True(t, b.Net.Annual.Equal(b.Gross.Annual))
	assertCents(t, "25", b.Gross.Hourly, "default 40 hour week")
	assert.True(t, b.EffectiveRate.IsZero())
}

func TestFromSalary_ZeroAndNegative(t *testing.T) {
	calc := newCalculator(t)

	b, err := calc.FromSalary(decimal.Zero, "US", domain.TaxParams{})
	require.NoError(t, err)
	assert.True(t, b.EffectiveRate.IsZero())
	assert.True(t, b.Net.Hourly.IsZero())

	_, err = calc.FromSalary(decimal.NewFromInt(-1), "US", domain.TaxParams{})
	assert.ErrorIs(t, err, calculation.ErrNegativeIncome)
}

func TestFromHourly(t *testing.T) {
	calc := newCalculator(t)

	tests := []struct {
		name     string
		country  string
		input    HourlyInput
		hours    string
		regular  string
		overtime string
	}{
		{
			name:     "country defaults",
			country:  "US",
			input:    HourlyInput{Rate: decimal.NewFromInt(25)},
			hours:    "40",
			regular:  "52000",
			overtime: "0",
		},
		{
			name:    "overtime at one and a half",
			country: "US",
			input: HourlyInput{
				Rate:                 decimal.NewFromInt(25),
				OvertimeHoursPerWeek: decimal.NewFromInt(5),
			},
			hours:    "40",
			regular:  "52000",
			overtime: "9750",
		},
		{
			name:    "part time for part of the year",
			country: "GB",
			input: HourlyInput{
				Rate:         decimal.NewFromInt(20),
				HoursPerWeek: decimal.NewFromInt(20),
				WeeksPerYear: decimal.NewFromInt(26),
			},
			hours:    "20",
			regular:  "10400",
			overtime: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := calc.FromHourly(tt.input, tt.country, domain.TaxParams{})
			require.NoError(t, err)

			assertCents(t, tt.hours, b.HoursPerWeek, "hours per week")
			assertCents(t, tt.regular, b.RegularPay, "regular pay")
			assertCents(t, tt.overtime, b.OvertimePay, "overtime pay")
			assert.True(t, b.Gross.Annual.Equal(b.RegularPay.Add(b.OvertimePay)))
			assert.True(t, b.Net.Annual.Equal(b.Gross.Annual.Sub(b.Tax.TotalTax)))
		})
	}
}

func TestFromHourly_InvalidInput(t *testing.T) {
	calc := newCalculator(t)

	_, err := calc.FromHourly(HourlyInput{Rate: decimal.NewFromInt(-5)}, "US", domain.TaxParams{})
	assert.ErrorIs(t, err, ErrNegativeRate)

	_, err = calc.FromHourly(HourlyInput{Rate: decimal.NewFromInt(5), HoursPerWeek: decimal.NewFromInt(-1)}, "US", domain.TaxParams{})
	assert.ErrorIs(t, err, ErrNegativeHours)

	_, err = calc.FromHourly(HourlyInput{Rate: decimal.NewFromInt(5), OvertimeHoursPerWeek: decimal.NewFromInt(-1)}, "US", domain.TaxParams{})
	assert.ErrorIs(t, err, ErrNegativeHours)
}
