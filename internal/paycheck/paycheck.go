// Package paycheck converts salaries and hourly wages into per-period
// gross and net pay.
package paycheck

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeRate is returned for an hourly rate below zero
	ErrNegativeRate = errors.New("hourly rate cannot be negative")
	// ErrNegativeHours is returned for hours or weeks below zero
	ErrNegativeHours = errors.New("hours cannot be negative")
)

var (
	weeksPerYear    = decimal.NewFromInt(52)
	biweeklyPeriods = decimal.NewFromInt(26)
	monthsPerYear   = decimal.NewFromInt(12)
	workDaysPerYear = decimal.NewFromInt(260)

	// used for countries without a profile
	defaultWorkingHours = domain.WorkingHours{
		StandardPerWeek:    decimal.NewFromInt(40),
		OvertimeMultiplier: decimal.NewFromFloat(1.5),
	}
)

// TaxRates is the subset of the tax calculator the paycheck needs
type TaxRates interface {
	CalculateTax(income decimal.Decimal, countryCode string, params domain.TaxParams) (domain.TaxResult, error)
	MarginalTaxRate(income decimal.Decimal, countryCode string, params domain.TaxParams) (decimal.Decimal, error)
}

// Period is an amount expressed over each pay period
type Period struct {
	Annual   decimal.Decimal `json:"annual"`
	Monthly  decimal.Decimal `json:"monthly"`
	Biweekly decimal.Decimal `json:"biweekly"`
	Weekly   decimal.Decimal `json:"weekly"`
	Daily    decimal.Decimal `json:"daily"`
	Hourly   decimal.Decimal `json:"hourly"`
}

// Breakdown is the gross and net pay of one salary or wage
type Breakdown struct {
	Country       string           `json:"country"`
	Currency      string           `json:"currency"`
	HoursPerWeek  decimal.Decimal  `json:"hoursPerWeek"`
	WeeksPerYear  decimal.Decimal  `json:"weeksPerYear"`
	RegularPay    decimal.Decimal  `json:"regularPay"`
	OvertimePay   decimal.Decimal  `json:"overtimePay"`
	Gross         Period           `json:"gross"`
	Tax           domain.TaxResult `json:"tax"`
	Net           Period           `json:"net"`
	EffectiveRate decimal.Decimal  `json:"effectiveRate"`
	MarginalRate  decimal.Decimal  `json:"marginalRate"`
}

// HourlyInput describes an hourly wage. Zero hours per week fall back to the
// country's standard week and zero weeks to a full year.
type HourlyInput struct {
	Rate                 decimal.Decimal
	HoursPerWeek         decimal.Decimal
	OvertimeHoursPerWeek decimal.Decimal
	WeeksPerYear         decimal.Decimal
}

// Calculator builds paycheck breakdowns
type Calculator struct {
	Tax      TaxRates
	Profiles calculation.ProfileSource
}

// NewCalculator creates a paycheck calculator
func NewCalculator(tax TaxRates, profiles calculation.ProfileSource) *Calculator {
	return &Calculator{Tax: tax, Profiles: profiles}
}

// FromSalary breaks an annual salary down by pay period. Hourly figures
// assume the country's standard working week over 52 weeks.
func (c *Calculator) FromSalary(annual decimal.Decimal, countryCode string, params domain.TaxParams) (*Breakdown, error) {
	hours, currency := c.workingHours(countryCode)
	breakdown := &Breakdown{
		Country:      domain.NormalizeCode(countryCode),
		Currency:     currency,
		HoursPerWeek: hours.StandardPerWeek,
		WeeksPerYear: weeksPerYear,
		RegularPay:   annual,
		OvertimePay:  decimal.Zero,
	}
	if err := c.fill(breakdown, annual, countryCode, params); err != nil {
		return nil, err
	}
	return breakdown, nil
}

// FromHourly annualizes an hourly wage, paying overtime hours at the
// country's overtime multiplier, and breaks it down by pay period
func (c *Calculator) FromHourly(in HourlyInput, countryCode string, params domain.TaxParams) (*Breakdown, error) {
	if in.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", ErrNegativeRate, in.Rate)
	}
	if in.HoursPerWeek.IsNegative() || in.OvertimeHoursPerWeek.IsNegative() || in.WeeksPerYear.IsNegative() {
		return nil, ErrNegativeHours
	}

	hours, currency := c.workingHours(countryCode)
	perWeek := in.HoursPerWeek
	if perWeek.IsZero() {
		perWeek = hours.StandardPerWeek
	}
	weeks := in.WeeksPerYear
	if weeks.IsZero() {
		weeks = weeksPerYear
	}

	regular := in.Rate.Mul(perWeek).Mul(weeks)
	overtime := in.Rate.Mul(hours.OvertimeMultiplier).Mul(in.OvertimeHoursPerWeek).Mul(weeks)

	breakdown := &Breakdown{
		Country:      domain.NormalizeCode(countryCode),
		Currency:     currency,
		HoursPerWeek: perWeek,
		WeeksPerYear: weeks,
		RegularPay:   regular,
		OvertimePay:  overtime,
	}
	if err := c.fill(breakdown, regular.Add(overtime), countryCode, params); err != nil {
		return nil, err
	}
	return breakdown, nil
}

func (c *Calculator) fill(b *Breakdown, annual decimal.Decimal, countryCode string, params domain.TaxParams) error {
	tax, err := c.Tax.CalculateTax(annual, countryCode, params)
	if err != nil {
		return err
	}
	marginal, err := c.Tax.MarginalTaxRate(annual, countryCode, params)
	if err != nil {
		return err
	}

	annualHours := b.HoursPerWeek.Mul(b.WeeksPerYear)
	b.Gross = split(annual, annualHours)
	b.Tax = tax
	b.Net = split(annual.Sub(tax.TotalTax), annualHours)
	b.MarginalRate = marginal
	b.EffectiveRate = decimal.Zero
	if annual.IsPositive() {
		b.EffectiveRate = tax.TotalTax.Div(annual).Mul(decimal.NewFromInt(100))
	}
	return nil
}

func (c *Calculator) workingHours(countryCode string) (domain.WorkingHours, string) {
	if c.Profiles == nil {
		return defaultWorkingHours, ""
	}
	profile, ok := c.Profiles.Profile(countryCode)
	if !ok {
		return defaultWorkingHours, ""
	}
	hours := profile.WorkingHours
	if !hours.StandardPerWeek.IsPositive() {
		hours.StandardPerWeek = defaultWorkingHours.StandardPerWeek
	}
	if hours.OvertimeMultiplier.LessThan(decimal.NewFromInt(1)) {
		hours.OvertimeMultiplier = defaultWorkingHours.OvertimeMultiplier
	}
	return hours, profile.Currency
}

func split(annual, annualHours decimal.Decimal) Period {
	p := Period{
		Annual:   annual,
		Monthly:  annual.Div(monthsPerYear),
		Biweekly: annual.Div(biweeklyPeriods),
		Weekly:   annual.Div(weeksPerYear),
		Daily:    annual.Div(workDaysPerYear),
		Hourly:   decimal.Zero,
	}
	if annualHours.IsPositive() {
		p.Hourly = annual.Div(annualHours)
	}
	return p
}
