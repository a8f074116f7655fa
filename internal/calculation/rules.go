package calculation

import (
	"sort"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Assessment is the input handed to a country rule. FederalTax already holds
// the progressive-schedule tax, so components derived from it can be
// evaluated in any order.
type Assessment struct {
	Profile    *domain.CountryProfile
	Income     decimal.Decimal
	Params     domain.TaxParams
	FederalTax decimal.Decimal
}

// Component evaluates a named flat component. Missing components are zero.
func (a Assessment) Component(name string) decimal.Decimal {
	c, ok := a.Profile.Component(name)
	if !ok {
		return decimal.Zero
	}
	return componentAmount(c, a.Income, a.FederalTax)
}

// Components sums several named components
func (a Assessment) Components(names ...string) decimal.Decimal {
	total := decimal.Zero
	for _, name := range names {
		total = total.Add(a.Component(name))
	}
	return total
}

// componentAmount applies a component to its base. Flat amounts are only
// owed when there is income at all; caps limit the base, not the result.
func componentAmount(c domain.Component, income, federalTax decimal.Decimal) decimal.Decimal {
	if c.Kind == domain.KindFlatAmount {
		if !income.IsPositive() {
			return decimal.Zero
		}
		return c.Value
	}

	base := income
	if c.Base == domain.BaseFederalTax {
		base = federalTax
	}
	if c.Cap != nil && base.GreaterThan(*c.Cap) {
		base = *c.Cap
	}
	if !base.IsPositive() {
		return decimal.Zero
	}
	return base.Mul(c.Value)
}

// Rule composes a country's tax result from an assessment
type Rule func(a Assessment) domain.TaxResult

// RuleRegistry maps country codes to bespoke composition rules. Codes without
// a bespoke rule use DefaultRule. Register everything before sharing the
// registry between goroutines.
type RuleRegistry struct {
	rules map[string]Rule
}

// NewRuleRegistry creates a registry with the built-in country rules
func NewRuleRegistry() *RuleRegistry {
	r := &RuleRegistry{rules: make(map[string]Rule)}

	r.Register("US", unitedStatesRule)
	r.Register("CA", canadaRule)
	r.Register("GB", unitedKingdomRule)
	r.Register("DE", germanyRule)
	r.Register("JP", japanRule)
	r.Register("KR", koreaRule)
	r.Register("AU", australiaRule)
	r.Register("CH", switzerlandRule)
	r.Register("FR", franceRule)

	return r
}

// Register adds or replaces the rule for a country code
func (r *RuleRegistry) Register(code string, rule Rule) {
	r.rules[domain.NormalizeCode(code)] = rule
}

// Lookup returns the bespoke rule for code, if any
func (r *RuleRegistry) Lookup(code string) (Rule, bool) {
	rule, ok := r.rules[domain.NormalizeCode(code)]
	return rule, ok
}

// RuleFor returns the bespoke rule for code or DefaultRule
func (r *RuleRegistry) RuleFor(code string) Rule {
	if rule, ok := r.Lookup(code); ok {
		return rule
	}
	return DefaultRule
}

// Codes lists the codes with bespoke rules
func (r *RuleRegistry) Codes() []string {
	codes := lo.Keys(r.rules)
	sort.Strings(codes)
	return codes
}

// DefaultRule covers countries without special handling: the progressive
// schedule, a "social" contribution and an "other" component that is either
// a rate or a flat amount
func DefaultRule(a Assessment) domain.TaxResult {
	return domain.NewTaxResult(
		a.FederalTax,
		decimal.Zero,
		a.Component("social"),
		decimal.Zero,
		a.Component("other"),
	)
}

// unitedStatesRule: state income tax, social security up to the wage base, medicare
func unitedStatesRule(a Assessment) domain.TaxResult {
	return domain.NewTaxResult(
		a.FederalTax,
		a.Component("state"),
		a.Component("social_security"),
		a.Component("medicare"),
		decimal.Zero,
	)
}

// canadaRule: provincial tax, CPP and EI with their own maximum insurable earnings
func canadaRule(a Assessment) domain.TaxResult {
	return domain.NewTaxResult(
		a.FederalTax,
		a.Component("provincial"),
		a.Component("cpp"),
		decimal.Zero,
		a.Component("ei"),
	)
}

// unitedKingdomRule: national insurance up to the upper earnings limit
func unitedKingdomRule(a Assessment) domain.TaxResult {
	return domain.NewTaxResult(
		a.FederalTax,
		decimal.Zero,
		a.Component("national_insurance"),
		decimal.Zero,
		decimal.Zero,
	)
}

// germanyRule: solidarity surcharge and church tax are levied on the income tax
func germanyRule(a Assessment) domain.TaxResult {
	return domain.NewTaxResult(
		a.FederalTax,
		decimal.Zero,
		a.Component("social"),
		decimal.Zero,
		a.Components("solidarity", "church"),
	)
}

// japanRule: resident tax on income, reconstruction surtax on national tax
func japanRule(a Assessment) domain.TaxResult {
	return domain.NewTaxResult(
		a.FederalTax,
		a.Component("resident"),
		a.Component("social"),
		decimal.Zero,
		a.Component("reconstruction"),
	)
}

// koreaRule: local income tax is a share of the national income tax
func koreaRule(a Assessment) domain.TaxResult {
	return domain.NewTaxResult(
		a.FederalTax,
		a.Component("local"),
		a.Component("pension"),
		a.Component("health"),
		decimal.Zero,
	)
}

// australiaRule: the medicare levy is the only flat component
func australiaRule(a Assessment) domain.TaxResult {
	return domain.NewTaxResult(
		a.FederalTax,
		decimal.Zero,
		decimal.Zero,
		a.Component("medicare"),
		decimal.Zero,
	)
}

// switzerlandRule: cantonal tax on income and social contributions
func switzerlandRule(a Assessment) domain.TaxResult {
	return domain.NewTaxResult(
		a.FederalTax,
		a.Component("cantonal"),
		a.Component("social"),
		decimal.Zero,
		decimal.Zero,
	)
}

// franceRule: social contributions and CSG, which is reported as other
func franceRule(a Assessment) domain.TaxResult {
	return domain.NewTaxResult(
		a.FederalTax,
		decimal.Zero,
		a.Component("social"),
		decimal.Zero,
		a.Component("csg"),
	)
}
