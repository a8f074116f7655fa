package api

import (
	"github.com/rgehrsitz/paygo/internal/compare"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type CountrySummary struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Currency   string `json:"currency"`
	HasTaxData bool   `json:"has_tax_data"`
}

type CountriesResponse struct {
	Countries []CountrySummary `json:"countries"`
}

type TaxRequest struct {
	Income       decimal.Decimal `json:"income"`
	Country      string          `json:"country"`
	FilingStatus string          `json:"filing_status"`
	Deductions   decimal.Decimal `json:"deductions"`
}

type TaxResponse struct {
	Country       string           `json:"country"`
	Income        decimal.Decimal  `json:"income"`
	Result        domain.TaxResult `json:"result"`
	EffectiveRate decimal.Decimal  `json:"effective_rate"`
	MarginalRate  decimal.Decimal  `json:"marginal_rate"`
}

// WageRequest carries either an annual salary or an hourly rate
type WageRequest struct {
	Country       string          `json:"country"`
	FilingStatus  string          `json:"filing_status"`
	Salary        decimal.Decimal `json:"salary"`
	Hourly        decimal.Decimal `json:"hourly"`
	HoursPerWeek  decimal.Decimal `json:"hours_per_week"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	WeeksPerYear  decimal.Decimal `json:"weeks_per_year"`
}

type CompareRequest struct {
	Country      string         `json:"country"`
	FilingStatus string         `json:"filing_status"`
	Offers       []domain.Offer `json:"offers"`
}

type CompareResponse struct {
	Comparison *compare.OfferComparison `json:"comparison"`
}

type EquivalentRequest struct {
	Salary       decimal.Decimal `json:"salary"`
	From         string          `json:"from"`
	To           []string        `json:"to"`
	FilingStatus string          `json:"filing_status"`
}
