package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCountryTable(t *testing.T) {
	table, err := DefaultCountryTable()
	require.NoError(t, err)

	assert.Equal(t, 30, table.Len())

	us, ok := table.Profile("US")
	require.True(t, ok)
	assert.Equal(t, "USD", us.Currency)
	assert.Equal(t, domain.BracketsFederal, us.BracketKey)
	assert.Len(t, us.Brackets, 7)
	assert.Len(t, us.MarriedBrackets, 7)
	assert.True(t, us.Brackets[len(us.Brackets)-1].Unbounded())

	ss, ok := us.Component("social_security")
	require.True(t, ok)
	require.NotNil(t, ss.Cap)
	assert.True(t, ss.Cap.Equal(decimal.NewFromInt(160200)))
	assert.Equal(t, domain.BaseIncome, ss.Base, "base defaults to income")

	gb, ok := table.Profile("gb")
	require.True(t, ok)
	assert.Equal(t, domain.BracketsIncome, gb.BracketKey)
	assert.True(t, gb.WorkingHours.StandardPerWeek.Equal(decimal.NewFromFloat(37.5)))

	kr, ok := table.Profile("KR")
	require.True(t, ok)
	local, _ := kr.Component("local")
	assert.Equal(t, domain.BaseFederalTax, local.Base)

	sg, ok := table.Profile("SG")
	require.True(t, ok)
	other, _ := sg.Component("other")
	assert.Equal(t, domain.KindFlatAmount, other.Kind)

	ae, ok := table.Profile("AE")
	require.True(t, ok)
	assert.False(t, ae.HasTaxData())
	assert.True(t, ae.WorkingHours.StandardPerWeek.IsPositive())
}

func TestDefaultCountryTable_AllSchedulesValid(t *testing.T) {
	table, err := DefaultCountryTable()
	require.NoError(t, err)

	for _, code := range table.Codes() {
		p, _ := table.Profile(code)
		if len(p.Brackets) == 0 {
			continue
		}
		assert.NoError(t, ValidateBrackets(p.Brackets), code)
	}
}

func TestValidateBrackets(t *testing.T) {
	tests := []struct {
		name     string
		brackets []domain.TaxBracket
		errPart  string
	}{
		{"empty", nil, "at least one bracket"},
		{"does not start at zero", []domain.TaxBracket{domain.NewTopBracket(100, 0.1)}, "must start at 0"},
		{"gap", []domain.TaxBracket{domain.NewBracket(0, 100, 0.1), domain.NewTopBracket(150, 0.2)}, "previous bracket ends"},
		{"overlap", []domain.TaxBracket{domain.NewBracket(0, 100, 0.1), domain.NewTopBracket(50, 0.2)}, "previous bracket ends"},
		{"bounded last", []domain.TaxBracket{domain.NewBracket(0, 100, 0.1)}, "must be unbounded"},
		{"unbounded middle", []domain.TaxBracket{domain.NewTopBracket(0, 0.1), domain.NewTopBracket(100, 0.2)}, "only the last"},
		{"percent instead of fraction", []domain.TaxBracket{domain.NewTopBracket(0, 22)}, "rate must be between 0 and 1"},
		{"empty width", []domain.TaxBracket{domain.NewBracket(0, 0, 0.1), domain.NewTopBracket(0, 0.2)}, "must be greater than min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBrackets(tt.brackets)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}

	assert.NoError(t, ValidateBrackets([]domain.TaxBracket{
		domain.NewBracket(0, 100, 0),
		domain.NewTopBracket(100, 0.3),
	}))
}

func TestParseCountryTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errPart string
	}{
		{"no countries", "countries: {}\n", "no countries"},
		{"bad yaml", "countries: [", "failed to parse YAML"},
		{"missing currency", `
countries:
  XX:
    income:
      - {min: 0, rate: 0.1}
`, "currency is required"},
		{"both bracket lists", `
countries:
  XX:
    currency: XXD
    federal:
      - {min: 0, rate: 0.1}
    income:
      - {min: 0, rate: 0.1}
`, "not both"},
		{"unknown component kind", `
countries:
  XX:
    currency: XXD
    components:
      social: {kind: percent, value: 0.1}
`, "kind must be"},
		{"capped flat amount", `
countries:
  XX:
    currency: XXD
    components:
      other: {kind: flat_amount, value: 50, cap: 100}
`, "cannot be capped"},
		{"married without default", `
countries:
  XX:
    currency: XXD
    federal_married:
      - {min: 0, rate: 0.1}
`, "requires a default bracket list"},
		{"bad overtime", `
countries:
  XX:
    currency: XXD
    working_hours: {standard_per_week: 40, overtime_multiplier: 0.5}
`, "overtime multiplier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCountryTable([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestLoadCountryTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "countries.yaml")
	content := `
countries:
  xx:
    name: Example
    currency: XXD
    income:
      - {min: 0, max: 1000, rate: 0}
      - {min: 1000, rate: 0.25}
    components:
      social: {kind: rate, value: 0.05, cap: 50000}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadCountryTable(path)
	require.NoError(t, err)

	p, ok := table.Profile("XX")
	require.True(t, ok)
	assert.Equal(t, "XX", p.Code)
	assert.Equal(t, "Example", p.Name)
	assert.True(t, p.WorkingHours.StandardPerWeek.Equal(decimal.NewFromInt(40)), "default hours")
	assert.True(t, p.WorkingHours.OvertimeMultiplier.Equal(decimal.NewFromFloat(1.5)), "default overtime")

	_, err = LoadCountryTable(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
