package output

import (
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/paycheck"
	"github.com/shopspring/decimal"
)

// TaxReport is everything a formatter can render about one tax computation
type TaxReport struct {
	Country       string              `json:"country"`
	CountryName   string              `json:"countryName,omitempty"`
	Currency      string              `json:"currency,omitempty"`
	FilingStatus  domain.FilingStatus `json:"filingStatus"`
	Income        decimal.Decimal     `json:"income"`
	Deductions    decimal.Decimal     `json:"deductions"`
	Result        domain.TaxResult    `json:"result"`
	EffectiveRate decimal.Decimal     `json:"effectiveRate"`
	MarginalRate  decimal.Decimal     `json:"marginalRate"`
	Paycheck      *paycheck.Breakdown `json:"paycheck,omitempty"`
}

// NewTaxReport builds a report; profile may be nil for countries without data
func NewTaxReport(profile *domain.CountryProfile, code string, income decimal.Decimal, params domain.TaxParams,
	result domain.TaxResult, effective, marginal decimal.Decimal) *TaxReport {
	status := params.FilingStatus
	if status == "" {
		status = domain.FilingSingle
	}
	r := &TaxReport{
		Country:       domain.NormalizeCode(code),
		FilingStatus:  status,
		Income:        income,
		Deductions:    params.Deductions,
		Result:        result,
		EffectiveRate: effective,
		MarginalRate:  marginal,
	}
	if profile != nil {
		r.Country = profile.Code
		r.CountryName = profile.Name
		r.Currency = profile.Currency
	}
	return r
}

// NetIncome is income less total tax
func (r *TaxReport) NetIncome() decimal.Decimal {
	return r.Income.Sub(r.Result.TotalTax)
}

// Lines returns the result buckets in display order
func (r *TaxReport) Lines() []Line {
	return []Line{
		{"Federal tax", r.Result.FederalTax},
		{"State tax", r.Result.StateTax},
		{"Social security", r.Result.SocialSecurity},
		{"Medicare", r.Result.Medicare},
		{"Other", r.Result.Other},
	}
}

// Line is one labelled amount of a report
type Line struct {
	Label  string
	Amount decimal.Decimal
}

// FormatCurrency renders an amount with two decimals
func FormatCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatPercentage renders a percentage with two decimals
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
