package compare

import (
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// SCORING MODEL:
//
// Work time: 260 working days a year less paid vacation, 8 hours a day.
// Commuting happens on office days only, (5 - remote days) out of 5.
// Scores start from a neutral 50 and move by fixed, clamped adjustments;
// the financial score is net total compensation on a fixed 150k scale.

var (
	typicalWorkDaysInYear = decimal.NewFromInt(260)
	hoursPerWorkDay       = decimal.NewFromInt(8)
	workDaysPerWeek       = decimal.NewFromInt(5)
	minutesPerHour        = decimal.NewFromInt(60)
	hundred               = decimal.NewFromInt(100)

	neutralScore   = decimal.NewFromInt(50)
	financialScale = decimal.NewFromInt(150000)

	financialWeight = decimal.NewFromFloat(0.5)
	workLifeWeight  = decimal.NewFromFloat(0.3)
	benefitsWeight  = decimal.NewFromFloat(0.2)
)

// MetricsCalculator derives the figures and scores of a single offer
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics derives compensation and work time figures from an offer
// and the tax owed on its salary and bonus
func (mc *MetricsCalculator) CalculateMetrics(offer domain.Offer, tax domain.TaxResult) domain.OfferCalculated {
	retirement := offer.Salary.Mul(offer.RetirementMatchPercent).Div(hundred)
	gross := offer.Salary.Add(offer.Bonus).Add(retirement)
	netIncome := offer.TaxableIncome().Sub(tax.TotalTax)
	netTotal := gross.Sub(tax.TotalTax)

	workDays := decimal.Max(decimal.Zero, typicalWorkDaysInYear.Sub(offer.PaidVacationDays))
	officeFraction := decimal.Max(decimal.Zero, workDaysPerWeek.Sub(offer.RemoteDaysPerWeek).Div(workDaysPerWeek))
	commuteHours := offer.CommuteOneWayMinutes.
		Mul(decimal.NewFromInt(2)).
		Mul(workDays).
		Mul(officeFraction).
		Div(minutesPerHour)
	baseHours := workDays.Mul(hoursPerWorkDay)
	effectiveHours := baseHours.Add(commuteHours)

	return domain.OfferCalculated{
		RetirementBenefitAnnual:    retirement,
		GrossAnnualCompensation:    gross,
		Tax:                        tax,
		NetIncomeAnnual:            netIncome,
		NetTotalCompensationAnnual: netTotal,
		ActualWorkDays:             workDays,
		AnnualCommuteHours:         commuteHours,
		BaseAnnualWorkHours:        baseHours,
		EffectiveAnnualWorkHours:   effectiveHours,
		NetHourlyBase:              safeDiv(netIncome, baseHours),
		NetHourlyWithCommute:       safeDiv(netIncome, effectiveHours),
		NetTotalCompensationHourly: safeDiv(netTotal, effectiveHours),
	}
}

// ScoreOffer computes the sub-scores and the weighted overall score
func (mc *MetricsCalculator) ScoreOffer(offer domain.Offer, calculated domain.OfferCalculated) domain.OfferScores {
	workLife := WorkLifeScore(offer)
	benefits := BenefitsScore(offer)
	financial := FinancialScore(calculated.NetTotalCompensationAnnual)

	overall := financial.Mul(financialWeight).
		Add(workLife.Mul(workLifeWeight)).
		Add(benefits.Mul(benefitsWeight))

	return domain.OfferScores{
		WorkLife:  workLife,
		Benefits:  benefits,
		Financial: financial,
		Overall:   clamp(decimal.Zero, hundred, overall),
	}
}

// WorkLifeScore rewards vacation above 15 days, commutes under 30 minutes
// and remote days
func WorkLifeScore(offer domain.Offer) decimal.Decimal {
	limit := decimal.NewFromInt(20)

	vacation := offer.PaidVacationDays.Sub(decimal.NewFromInt(15)).Mul(decimal.NewFromFloat(2.5))
	commute := decimal.NewFromInt(30).Sub(offer.CommuteOneWayMinutes).Mul(decimal.NewFromFloat(0.67))
	remote := decimal.Min(limit, offer.RemoteDaysPerWeek.Mul(decimal.NewFromInt(4)))

	score := neutralScore.
		Add(clamp(limit.Neg(), limit, vacation)).
		Add(clamp(limit.Neg(), limit, commute)).
		Add(remote)
	return clamp(decimal.Zero, hundred, score)
}

// BenefitsScore rewards a retirement match above 3% and health insurance
// cheaper than 300 a month
func BenefitsScore(offer domain.Offer) decimal.Decimal {
	limit := decimal.NewFromInt(25)

	match := offer.RetirementMatchPercent.Sub(decimal.NewFromInt(3)).Mul(decimal.NewFromInt(8))
	health := decimal.NewFromInt(300).Sub(offer.HealthInsuranceMonthly).Mul(decimal.NewFromFloat(0.15))

	score := neutralScore.
		Add(clamp(limit.Neg(), limit, match)).
		Add(clamp(limit.Neg(), limit, health))
	return clamp(decimal.Zero, hundred, score)
}

// FinancialScore maps net total compensation onto 0-100, where 150k or more
// scores 100. The scale does not adapt to the country.
func FinancialScore(netTotalCompensation decimal.Decimal) decimal.Decimal {
	return clamp(decimal.Zero, hundred, netTotalCompensation.Div(financialScale).Mul(hundred))
}

func clamp(lower, upper, v decimal.Decimal) decimal.Decimal {
	return decimal.Min(upper, decimal.Max(lower, v))
}

func safeDiv(n, d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return n.Div(d)
}
