package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile(code string) CountryProfile {
	capV := decimal.NewFromInt(1000)
	return CountryProfile{
		Code:       code,
		Currency:   "XXD",
		BracketKey: BracketsIncome,
		Brackets:   []TaxBracket{NewBracket(0, 100, 0), NewTopBracket(100, 0.2)},
		Components: map[string]Component{
			"social": {Kind: KindRate, Value: decimal.NewFromFloat(0.05), Cap: &capV},
		},
	}
}

func TestCountryTable_LookupReturnsCopies(t *testing.T) {
	table := NewCountryTable(sampleProfile("xx"))

	p, ok := table.Profile("XX")
	require.True(t, ok)
	p.Brackets[0].Rate = decimal.NewFromInt(1)
	*p.Brackets[0].Max = decimal.NewFromInt(5)
	social := p.Components["social"]
	*social.Cap = decimal.Zero
	p.Components["extra"] = Component{Kind: KindFlatAmount, Value: decimal.NewFromInt(1)}

	again, ok := table.Profile(" xx ")
	require.True(t, ok)
	assert.True(t, again.Brackets[0].Rate.IsZero())
	assert.True(t, again.Brackets[0].Max.Equal(decimal.NewFromInt(100)))
	assert.True(t, again.Components["social"].Cap.Equal(decimal.NewFromInt(1000)))
	assert.NotContains(t, again.Components, "extra")
}

func TestCountryTable_Codes(t *testing.T) {
	table := NewCountryTable(sampleProfile("us"), sampleProfile("de"), sampleProfile("AU"))
	assert.Equal(t, []string{"AU", "DE", "US"}, table.Codes())
	assert.Equal(t, 3, table.Len())

	var empty *CountryTable
	_, ok := empty.Profile("US")
	assert.False(t, ok)
	assert.Zero(t, empty.Len())
}

func TestTaxBracket_Contains(t *testing.T) {
	b := NewBracket(100, 200, 0.1)
	assert.True(t, b.Contains(decimal.NewFromInt(100)))
	assert.True(t, b.Contains(decimal.NewFromInt(200)))
	assert.False(t, b.Contains(decimal.NewFromInt(201)))
	assert.False(t, b.Contains(decimal.NewFromInt(99)))

	top := NewTopBracket(200, 0.2)
	assert.True(t, top.Unbounded())
	assert.True(t, top.Contains(decimal.NewFromInt(1_000_000_000)))
}

func TestCountryProfile_BracketsFor(t *testing.T) {
	p := sampleProfile("XX")
	assert.Equal(t, p.Brackets, p.BracketsFor(FilingMarried), "falls back without a married set")

	p.MarriedBrackets = []TaxBracket{NewTopBracket(0, 0.1)}
	assert.Equal(t, p.MarriedBrackets, p.BracketsFor(FilingMarried))
	assert.Equal(t, p.Brackets, p.BracketsFor(FilingSingle))
	assert.Equal(t, p.Brackets, p.BracketsFor(""))
}

func TestCountryProfile_HasTaxData(t *testing.T) {
	p := sampleProfile("XX")
	assert.True(t, p.HasTaxData())

	empty := CountryProfile{Code: "AE", Currency: "AED"}
	assert.False(t, empty.HasTaxData())
}

func TestParseFilingStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected FilingStatus
		ok       bool
	}{
		{"", FilingSingle, true},
		{"Single", FilingSingle, true},
		{"married", FilingMarried, true},
		{"MFJ", FilingMarried, true},
		{"head_of_household", "", false},
	}
	for _, tt := range tests {
		status, ok := ParseFilingStatus(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.expected, status, tt.input)
	}
}

func TestNewTaxResult(t *testing.T) {
	r := NewTaxResult(
		decimal.NewFromFloat(100.5),
		decimal.NewFromInt(20),
		decimal.NewFromInt(30),
		decimal.NewFromFloat(4.25),
		decimal.NewFromInt(1),
	)
	assert.True(t, r.TotalTax.Equal(decimal.NewFromFloat(155.75)))
	assert.True(t, ZeroTaxResult().TotalTax.IsZero())
}

func TestComponent_IsMarginalRate(t *testing.T) {
	assert.True(t, Component{Kind: KindRate}.IsMarginalRate())
	assert.True(t, Component{Kind: KindRate, Base: BaseIncome}.IsMarginalRate())
	assert.True(t, Component{Kind: KindRate, Base: BaseFederalTax}.IsMarginalRate())
	assert.False(t, Component{Kind: KindFlatAmount}.IsMarginalRate())
}

func TestOffer_TaxableIncome(t *testing.T) {
	o := Offer{Salary: decimal.NewFromInt(80000), Bonus: decimal.NewFromInt(5000), RetirementMatchPercent: decimal.NewFromInt(4)}
	assert.True(t, o.TaxableIncome().Equal(decimal.NewFromInt(85000)))
}
