package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TaxBracket is one band of a progressive schedule. A nil Max marks the
// top bracket, which is unbounded.
type TaxBracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// NewBracket creates a bounded bracket
func NewBracket(lower, upper, rate float64) TaxBracket {
	m := decimal.NewFromFloat(upper)
	return TaxBracket{Min: decimal.NewFromFloat(lower), Max: &m, Rate: decimal.NewFromFloat(rate)}
}

// NewTopBracket creates the unbounded top bracket
func NewTopBracket(lower, rate float64) TaxBracket {
	return TaxBracket{Min: decimal.NewFromFloat(lower), Rate: decimal.NewFromFloat(rate)}
}

// Unbounded reports whether the bracket extends to +Infinity
func (b TaxBracket) Unbounded() bool {
	return b.Max == nil
}

// Contains reports whether income falls within [Min, Max], inclusive on both ends
func (b TaxBracket) Contains(income decimal.Decimal) bool {
	if income.LessThan(b.Min) {
		return false
	}
	return b.Unbounded() || income.LessThanOrEqual(*b.Max)
}

// BracketSetKey names the bracket list a country defines
type BracketSetKey string

const (
	BracketsFederal BracketSetKey = "federal"
	BracketsIncome  BracketSetKey = "income"
)

// ComponentKind tells whether a flat component is a fraction of its base or
// a fixed absolute amount
type ComponentKind string

const (
	KindRate       ComponentKind = "rate"
	KindFlatAmount ComponentKind = "flat_amount"
)

// ComponentBase is what a rate component is applied to
type ComponentBase string

const (
	BaseIncome     ComponentBase = "income"
	BaseFederalTax ComponentBase = "federal_tax"
)

// Component is a flat tax or contribution. Cap, when set, is the ceiling
// income above which the component stops accruing.
type Component struct {
	Kind  ComponentKind    `yaml:"kind" json:"kind"`
	Value decimal.Decimal  `yaml:"value" json:"value"`
	Cap   *decimal.Decimal `yaml:"cap,omitempty" json:"cap,omitempty"`
	Base  ComponentBase    `yaml:"base,omitempty" json:"base,omitempty"`
}

// IsMarginalRate reports whether the component adds its rate to the
// marginal rate. Every rate component does, whatever its base.
func (c Component) IsMarginalRate() bool {
	return c.Kind == KindRate
}

// WorkingHours holds a country's working time conventions
type WorkingHours struct {
	StandardPerWeek    decimal.Decimal `yaml:"standard_per_week" json:"standardPerWeek"`
	OvertimeMultiplier decimal.Decimal `yaml:"overtime_multiplier" json:"overtimeMultiplier"`
}

// CountryProfile is the tax configuration for one country
type CountryProfile struct {
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	Currency        string               `json:"currency"`
	BracketKey      BracketSetKey        `json:"bracketKey,omitempty"`
	Brackets        []TaxBracket         `json:"brackets,omitempty"`
	MarriedBrackets []TaxBracket         `json:"marriedBrackets,omitempty"`
	Components      map[string]Component `json:"components,omitempty"`
	WorkingHours    WorkingHours         `json:"workingHours"`
}

// HasTaxData reports whether the profile defines anything to tax with
func (p *CountryProfile) HasTaxData() bool {
	return len(p.Brackets) > 0 || len(p.Components) > 0
}

// Component returns the named component, if defined
func (p *CountryProfile) Component(name string) (Component, bool) {
	c, ok := p.Components[name]
	return c, ok
}

// BracketsFor returns the schedule for a filing status, falling back to the
// default schedule when the country has no married set
func (p *CountryProfile) BracketsFor(filingStatus FilingStatus) []TaxBracket {
	if filingStatus == FilingMarried && len(p.MarriedBrackets) > 0 {
		return p.MarriedBrackets
	}
	return p.Brackets
}

// Clone returns a deep copy so callers cannot mutate shared reference data
func (p *CountryProfile) Clone() *CountryProfile {
	cp := *p
	cp.Brackets = cloneBrackets(p.Brackets)
	cp.MarriedBrackets = cloneBrackets(p.MarriedBrackets)
	if p.Components != nil {
		cp.Components = make(map[string]Component, len(p.Components))
		for name, c := range p.Components {
			if c.Cap != nil {
				capV := *c.Cap
				c.Cap = &capV
			}
			cp.Components[name] = c
		}
	}
	return &cp
}

func cloneBrackets(in []TaxBracket) []TaxBracket {
	if in == nil {
		return nil
	}
	out := make([]TaxBracket, len(in))
	for i, b := range in {
		if b.Max != nil {
			m := *b.Max
			b.Max = &m
		}
		out[i] = b
	}
	return out
}

// FilingStatus selects between single and joint schedules
type FilingStatus string

const (
	FilingSingle  FilingStatus = "single"
	FilingMarried FilingStatus = "married"
)

// ParseFilingStatus normalizes user input. An empty string means single.
func ParseFilingStatus(s string) (FilingStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single":
		return FilingSingle, true
	case "married", "mfj", "married_filing_jointly", "joint":
		return FilingMarried, true
	}
	return "", false
}

// TaxParams carries the optional inputs of a tax computation
type TaxParams struct {
	FilingStatus FilingStatus    `json:"filingStatus,omitempty"`
	Deductions   decimal.Decimal `json:"deductions"`
}

// TaxResult is the breakdown of a single tax computation
type TaxResult struct {
	TotalTax       decimal.Decimal `json:"totalTax"`
	FederalTax     decimal.Decimal `json:"federalTax"`
	StateTax       decimal.Decimal `json:"stateTax"`
	SocialSecurity decimal.Decimal `json:"socialSecurity"`
	Medicare       decimal.Decimal `json:"medicare"`
	Other          decimal.Decimal `json:"other"`
}

// NewTaxResult builds a result whose total is the sum of its buckets
func NewTaxResult(federal, state, social, medicare, other decimal.Decimal) TaxResult {
	return TaxResult{
		TotalTax:       federal.Add(state).Add(social).Add(medicare).Add(other),
		FederalTax:     federal,
		StateTax:       state,
		SocialSecurity: social,
		Medicare:       medicare,
		Other:          other,
	}
}

// ZeroTaxResult is returned for countries without tax data
func ZeroTaxResult() TaxResult {
	return NewTaxResult(decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)
}
