package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/countries.yaml
var defaultCountriesYAML []byte

var (
	defaultStandardHours      = decimal.NewFromInt(40)
	defaultOvertimeMultiplier = decimal.NewFromFloat(1.5)
)

// countryFile mirrors the on-disk layout of a country table
type countryFile struct {
	Countries map[string]countryEntry `yaml:"countries"`
}

type countryEntry struct {
	Name           string                      `yaml:"name"`
	Currency       string                      `yaml:"currency"`
	Federal        []domain.TaxBracket         `yaml:"federal"`
	Income         []domain.TaxBracket         `yaml:"income"`
	FederalMarried []domain.TaxBracket         `yaml:"federal_married"`
	Components     map[string]domain.Component `yaml:"components"`
	WorkingHours   *domain.WorkingHours        `yaml:"working_hours"`
}

// DefaultCountryTable parses the embedded reference table
func DefaultCountryTable() (*domain.CountryTable, error) {
	table, err := ParseCountryTable(defaultCountriesYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded country table: %w", err)
	}
	return table, nil
}

// LoadCountryTable loads and validates a country table from a YAML file
func LoadCountryTable(filename string) (*domain.CountryTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ParseCountryTable(data)
}

// ParseCountryTable decodes and validates a YAML country table
func ParseCountryTable(data []byte) (*domain.CountryTable, error) {
	var file countryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(file.Countries) == 0 {
		return nil, fmt.Errorf("no countries defined")
	}

	codes := make([]string, 0, len(file.Countries))
	for code := range file.Countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	profiles := make([]domain.CountryProfile, 0, len(codes))
	for _, code := range codes {
		profile, err := buildProfile(code, file.Countries[code])
		if err != nil {
			return nil, fmt.Errorf("country %s validation failed: %w", code, err)
		}
		profiles = append(profiles, profile)
	}
	return domain.NewCountryTable(profiles...), nil
}

func buildProfile(code string, entry countryEntry) (domain.CountryProfile, error) {
	profile := domain.CountryProfile{
		Code:       domain.NormalizeCode(code),
		Name:       entry.Name,
		Currency:   entry.Currency,
		Components: entry.Components,
	}
	if profile.Code == "" {
		return profile, fmt.Errorf("country code is required")
	}
	if profile.Currency == "" {
		return profile, fmt.Errorf("currency is required")
	}

	switch {
	case len(entry.Federal) > 0 && len(entry.Income) > 0:
		return profile, fmt.Errorf("define either federal or income brackets, not both")
	case len(entry.Federal) > 0:
		profile.BracketKey = domain.BracketsFederal
		profile.Brackets = entry.Federal
	case len(entry.Income) > 0:
		profile.BracketKey = domain.BracketsIncome
		profile.Brackets = entry.Income
	}
	if len(profile.Brackets) > 0 {
		if err := ValidateBrackets(profile.Brackets); err != nil {
			return profile, fmt.Errorf("%s brackets: %w", profile.BracketKey, err)
		}
	}

	if len(entry.FederalMarried) > 0 {
		if len(profile.Brackets) == 0 {
			return profile, fmt.Errorf("federal_married requires a default bracket list")
		}
		if err := ValidateBrackets(entry.FederalMarried); err != nil {
			return profile, fmt.Errorf("federal_married brackets: %w", err)
		}
		profile.MarriedBrackets = entry.FederalMarried
	}

	for name, component := range profile.Components {
		normalized, err := validateComponent(component)
		if err != nil {
			return profile, fmt.Errorf("component %s: %w", name, err)
		}
		profile.Components[name] = normalized
	}

	profile.WorkingHours = domain.WorkingHours{
		StandardPerWeek:    defaultStandardHours,
		OvertimeMultiplier: defaultOvertimeMultiplier,
	}
	if wh := entry.WorkingHours; wh != nil {
		if !wh.StandardPerWeek.IsZero() {
			profile.WorkingHours.StandardPerWeek = wh.StandardPerWeek
		}
		if !wh.OvertimeMultiplier.IsZero() {
			profile.WorkingHours.OvertimeMultiplier = wh.OvertimeMultiplier
		}
	}
	if !profile.WorkingHours.StandardPerWeek.IsPositive() || profile.WorkingHours.StandardPerWeek.GreaterThan(decimal.NewFromInt(168)) {
		return profile, fmt.Errorf("standard hours per week must be between 0 and 168")
	}
	if profile.WorkingHours.OvertimeMultiplier.LessThan(decimal.NewFromInt(1)) {
		return profile, fmt.Errorf("overtime multiplier cannot be less than 1")
	}

	return profile, nil
}

// ValidateBrackets checks the invariants the bracket evaluator relies on:
// the schedule starts at zero, each bracket starts where the previous one
// ends, only the last bracket is unbounded and rates are fractions.
func ValidateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("at least one bracket is required")
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("first bracket must start at 0, got %s", brackets[0].Min)
	}
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d: rate must be between 0 and 1, got %s", i, b.Rate)
		}
		last := i == len(brackets)-1
		if b.Unbounded() {
			if !last {
				return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("bracket %d: last bracket must be unbounded", i)
		}
		if b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("bracket %d: max %s must be greater than min %s", i, b.Max, b.Min)
		}
		if next := brackets[i+1]; !next.Min.Equal(*b.Max) {
			return fmt.Errorf("bracket %d: starts at %s but previous bracket ends at %s", i+1, next.Min, b.Max)
		}
	}
	return nil
}

func validateComponent(c domain.Component) (domain.Component, error) {
	if c.Base == "" {
		c.Base = domain.BaseIncome
	}
	switch c.Kind {
	case domain.KindRate:
		if c.Value.IsNegative() || c.Value.GreaterThan(decimal.NewFromInt(1)) {
			return c, fmt.Errorf("rate must be between 0 and 1, got %s", c.Value)
		}
	case domain.KindFlatAmount:
		if c.Value.IsNegative() {
			return c, fmt.Errorf("flat amount cannot be negative")
		}
		if c.Cap != nil {
			return c, fmt.Errorf("flat amounts cannot be capped")
		}
		if c.Base != domain.BaseIncome {
			return c, fmt.Errorf("flat amounts cannot be derived from federal tax")
		}
	default:
		return c, fmt.Errorf("kind must be 'rate' or 'flat_amount', got %q", c.Kind)
	}
	if c.Base != domain.BaseIncome && c.Base != domain.BaseFederalTax {
		return c, fmt.Errorf("base must be 'income' or 'federal_tax', got %q", c.Base)
	}
	if c.Cap != nil && !c.Cap.IsPositive() {
		return c, fmt.Errorf("cap must be positive")
	}
	return c, nil
}
