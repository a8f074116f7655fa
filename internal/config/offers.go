package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// OfferFile is a parsed offer comparison input
type OfferFile struct {
	Country      string
	FilingStatus domain.FilingStatus
	Offers       []domain.Offer
}

type offerFileYAML struct {
	Country      string      `yaml:"country"`
	FilingStatus string      `yaml:"filing_status"`
	Offers       []offerYAML `yaml:"offers"`
}

// offerYAML keeps every numeric field as text so that blank or mistyped
// values can be coerced instead of failing the whole file
type offerYAML struct {
	ID                     string `yaml:"id"`
	Name                   string `yaml:"name"`
	Salary                 string `yaml:"salary"`
	Bonus                  string `yaml:"bonus"`
	RetirementMatchPercent string `yaml:"retirement_match_percent"`
	HealthInsuranceMonthly string `yaml:"health_insurance_monthly"`
	PaidVacationDays       string `yaml:"paid_vacation_days"`
	CommuteOneWayMinutes   string `yaml:"commute_one_way_minutes"`
	RemoteDaysPerWeek      string `yaml:"remote_days_per_week"`
}

// LoadOffers loads an offer comparison file
func LoadOffers(filename string) (*OfferFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ParseOffers(data)
}

// ParseOffers decodes an offer comparison file. Numeric fields that are
// empty or cannot be parsed become zero.
func ParseOffers(data []byte) (*OfferFile, error) {
	var raw offerFileYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	status, ok := domain.ParseFilingStatus(raw.FilingStatus)
	if !ok {
		return nil, fmt.Errorf("filing_status must be 'single' or 'married', got %q", raw.FilingStatus)
	}
	if len(raw.Offers) == 0 {
		return nil, fmt.Errorf("no offers provided")
	}

	file := &OfferFile{
		Country:      domain.NormalizeCode(raw.Country),
		FilingStatus: status,
		Offers:       make([]domain.Offer, 0, len(raw.Offers)),
	}
	for _, o := range raw.Offers {
		file.Offers = append(file.Offers, domain.Offer{
			ID:                     strings.TrimSpace(o.ID),
			Name:                   strings.TrimSpace(o.Name),
			Salary:                 ParseAmount(o.Salary),
			Bonus:                  ParseAmount(o.Bonus),
			RetirementMatchPercent: ParseAmount(o.RetirementMatchPercent),
			HealthInsuranceMonthly: ParseAmount(o.HealthInsuranceMonthly),
			PaidVacationDays:       ParseAmount(o.PaidVacationDays),
			CommuteOneWayMinutes:   ParseAmount(o.CommuteOneWayMinutes),
			RemoteDaysPerWeek:      ParseAmount(o.RemoteDaysPerWeek),
		})
	}
	return file, nil
}

// ParseAmount reads a user-entered number. Currency symbols, thousands
// separators and a trailing percent sign are ignored. Anything that still
// does not parse yields zero.
func ParseAmount(s string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '_', ' ', '\t', '$', '€', '£', '¥', '%':
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
