package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX MODEL ASSUMPTIONS:
//
// 1. Estimates only. Each country is a progressive schedule plus a handful
//    of flat components; phase-outs, credits and residency rules are ignored.
// 2. Deductions are subtracted from income before the progressive schedule.
//    Flat components (payroll contributions, state and local taxes) use gross
//    income.
// 3. Contribution caps limit the income a component applies to.
// 4. An unknown country, or one without tax data, owes nothing.

var (
	// ErrNegativeIncome is returned for income below zero
	ErrNegativeIncome = errors.New("income cannot be negative")
	// ErrNegativeDeductions is returned for deductions below zero
	ErrNegativeDeductions = errors.New("deductions cannot be negative")
)

var hundred = decimal.NewFromInt(100)

// ProfileSource looks up country profiles. *domain.CountryTable implements it.
type ProfileSource interface {
	Profile(code string) (*domain.CountryProfile, bool)
}

// TaxCalculator composes per-country tax results. It holds no mutable state
// and is safe for concurrent use.
type TaxCalculator struct {
	Profiles ProfileSource
	Rules    *RuleRegistry
	Logger   Logger
}

// Option configures a TaxCalculator
type Option func(*TaxCalculator)

// WithRules replaces the built-in rule registry
func WithRules(rules *RuleRegistry) Option {
	return func(tc *TaxCalculator) {
		if rules != nil {
			tc.Rules = rules
		}
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger Logger) Option {
	return func(tc *TaxCalculator) {
		tc.SetLogger(logger)
	}
}

// NewTaxCalculator creates a calculator over the given country profiles
func NewTaxCalculator(profiles ProfileSource, opts ...Option) *TaxCalculator {
	tc := &TaxCalculator{
		Profiles: profiles,
		Rules:    NewRuleRegistry(),
		Logger:   NopLogger{},
	}
	for _, opt := range opts {
		opt(tc)
	}
	return tc
}

// SetLogger sets the logger; nil restores the no-op logger
func (tc *TaxCalculator) SetLogger(logger Logger) {
	if logger == nil {
		tc.Logger = NopLogger{}
		return
	}
	tc.Logger = logger
}

// CalculateTax computes the tax owed on income in the given country
func (tc *TaxCalculator) CalculateTax(income decimal.Decimal, countryCode string, params domain.TaxParams) (domain.TaxResult, error) {
	if err := validateInputs(income, params); err != nil {
		return domain.ZeroTaxResult(), err
	}

	profile, ok := tc.lookup(countryCode)
	if !ok {
		tc.Logger.Debugf("no tax data for country %q, returning zero result", countryCode)
		return domain.ZeroTaxResult(), nil
	}

	taxable := income.Sub(params.Deductions)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	assessment := Assessment{
		Profile:    profile,
		Income:     income,
		Params:     params,
		FederalTax: ComputeBracketTax(profile.BracketsFor(params.FilingStatus), taxable),
	}
	result := tc.Rules.RuleFor(profile.Code)(assessment)

	tc.Logger.Debugf("tax %s income=%s taxable=%s federal=%s state=%s social=%s medicare=%s other=%s total=%s",
		profile.Code, income, taxable, result.FederalTax, result.StateTax,
		result.SocialSecurity, result.Medicare, result.Other, result.TotalTax)

	return result, nil
}

// EffectiveTaxRate returns total tax as a percentage of income
func (tc *TaxCalculator) EffectiveTaxRate(income decimal.Decimal, countryCode string, params domain.TaxParams) (decimal.Decimal, error) {
	result, err := tc.CalculateTax(income, countryCode, params)
	if err != nil {
		return decimal.Zero, err
	}
	if !income.IsPositive() {
		return decimal.Zero, nil
	}
	return result.TotalTax.Div(income).Mul(hundred), nil
}

// MarginalTaxRate approximates the percentage owed on the next unit of
// income: the rate of the bracket containing income plus the rate of every
// rate component, including those levied on the income tax. Contribution
// caps are not considered, so the figure overstates the burden above a
// wage base.
func (tc *TaxCalculator) MarginalTaxRate(income decimal.Decimal, countryCode string, params domain.TaxParams) (decimal.Decimal, error) {
	if err := validateInputs(income, params); err != nil {
		return decimal.Zero, err
	}

	profile, ok := tc.lookup(countryCode)
	if !ok {
		return decimal.Zero, nil
	}

	taxable := income.Sub(params.Deductions)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	rate := decimal.Zero
	if bracket, found := findBracket(profile.BracketsFor(params.FilingStatus), taxable); found {
		rate = bracket.Rate
	}
	for _, c := range profile.Components {
		if c.IsMarginalRate() {
			rate = rate.Add(c.Value)
		}
	}
	return rate.Mul(hundred), nil
}

func (tc *TaxCalculator) lookup(countryCode string) (*domain.CountryProfile, bool) {
	if tc.Profiles == nil {
		return nil, false
	}
	profile, ok := tc.Profiles.Profile(countryCode)
	if !ok || !profile.HasTaxData() {
		return nil, false
	}
	return profile, true
}

func validateInputs(income decimal.Decimal, params domain.TaxParams) error {
	if income.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrNegativeIncome, income)
	}
	if params.Deductions.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrNegativeDeductions, params.Deductions)
	}
	return nil
}
