package domain

import "github.com/shopspring/decimal"

// Offer holds the raw terms of a job offer as entered by the user
type Offer struct {
	ID                     string          `yaml:"id" json:"id"`
	Name                   string          `yaml:"name" json:"name"`
	Salary                 decimal.Decimal `yaml:"salary" json:"salary"`
	Bonus                  decimal.Decimal `yaml:"bonus" json:"bonus"`
	RetirementMatchPercent decimal.Decimal `yaml:"retirement_match_percent" json:"retirementMatchPercent"`
	HealthInsuranceMonthly decimal.Decimal `yaml:"health_insurance_monthly" json:"healthInsuranceMonthly"`
	PaidVacationDays       decimal.Decimal `yaml:"paid_vacation_days" json:"paidVacationDays"`
	CommuteOneWayMinutes   decimal.Decimal `yaml:"commute_one_way_minutes" json:"commuteOneWayMinutes"`
	RemoteDaysPerWeek      decimal.Decimal `yaml:"remote_days_per_week" json:"remoteDaysPerWeek"`
}

// TaxableIncome is the part of the offer subject to income tax. The
// employer retirement match is not taxed.
func (o Offer) TaxableIncome() decimal.Decimal {
	return o.Salary.Add(o.Bonus)
}

// OfferCalculated holds the monetary and time figures derived from an offer
type OfferCalculated struct {
	RetirementBenefitAnnual    decimal.Decimal `json:"retirementBenefitAnnual"`
	GrossAnnualCompensation    decimal.Decimal `json:"grossAnnualCompensation"`
	Tax                        TaxResult       `json:"tax"`
	NetIncomeAnnual            decimal.Decimal `json:"netIncomeAnnual"`
	NetTotalCompensationAnnual decimal.Decimal `json:"netTotalCompensationAnnual"`
	ActualWorkDays             decimal.Decimal `json:"actualWorkDays"`
	AnnualCommuteHours         decimal.Decimal `json:"annualCommuteHours"`
	BaseAnnualWorkHours        decimal.Decimal `json:"baseAnnualWorkHours"`
	EffectiveAnnualWorkHours   decimal.Decimal `json:"effectiveAnnualWorkHours"`
	NetHourlyBase              decimal.Decimal `json:"netHourlyBase"`
	NetHourlyWithCommute       decimal.Decimal `json:"netHourlyWithCommute"`
	NetTotalCompensationHourly decimal.Decimal `json:"netTotalCompensationHourly"`
}

// OfferScores are the sub-scores and the weighted overall score, each in [0, 100]
type OfferScores struct {
	WorkLife  decimal.Decimal `json:"workLife"`
	Benefits  decimal.Decimal `json:"benefits"`
	Financial decimal.Decimal `json:"financial"`
	Overall   decimal.Decimal `json:"overall"`
}

// ScoredOffer is an offer together with its derived figures and scores
type ScoredOffer struct {
	Offer      Offer           `json:"offer"`
	Calculated OfferCalculated `json:"calculated"`
	Scores     OfferScores     `json:"scores"`
}
