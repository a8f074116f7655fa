package compare

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DefaultMaxOffers is the number of offers compared when no limit is set
const DefaultMaxOffers = 5

var (
	// ErrNoOffers is returned when there is nothing to compare
	ErrNoOffers = errors.New("at least one offer is required")
	// ErrTooManyOffers is returned when the offer limit is exceeded
	ErrTooManyOffers = errors.New("too many offers")
	// ErrDuplicateOfferID is returned when two offers share an ID
	ErrDuplicateOfferID = errors.New("duplicate offer id")
	// ErrUnknownFilingStatus is returned for a filing status other than single or married
	ErrUnknownFilingStatus = errors.New("unknown filing status")
)

// TaxSource computes the tax owed on an offer. *calculation.TaxCalculator implements it.
type TaxSource interface {
	CalculateTax(income decimal.Decimal, countryCode string, params domain.TaxParams) (domain.TaxResult, error)
}

// Engine scores job offers against each other
type Engine struct {
	Tax       TaxSource
	Metrics   *MetricsCalculator
	MaxOffers int
	Logger    calculation.Logger
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithMaxOffers overrides the offer limit; values below 1 are ignored
func WithMaxOffers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.MaxOffers = n
		}
	}
}

// WithEngineLogger sets the logger used for debug output
func WithEngineLogger(logger calculation.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.Logger = logger
		}
	}
}

// NewEngine creates a scoring engine backed by the given tax source
func NewEngine(tax TaxSource, opts ...EngineOption) *Engine {
	e := &Engine{
		Tax:       tax,
		Metrics:   NewMetricsCalculator(),
		MaxOffers: DefaultMaxOffers,
		Logger:    calculation.NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScoreOffers computes the figures and scores of every offer in the given
// country and picks the best one. Offers keep their input order.
func (e *Engine) ScoreOffers(offers []domain.Offer, countryCode string, filingStatus domain.FilingStatus) (*OfferComparison, error) {
	if len(offers) == 0 {
		return nil, ErrNoOffers
	}
	if len(offers) > e.MaxOffers {
		return nil, fmt.Errorf("%w: got %d, limit is %d", ErrTooManyOffers, len(offers), e.MaxOffers)
	}

	status, ok := domain.ParseFilingStatus(string(filingStatus))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilingStatus, filingStatus)
	}
	params := domain.TaxParams{FilingStatus: status}

	ids, err := assignOfferIDs(offers)
	if err != nil {
		return nil, err
	}

	scored := make([]domain.ScoredOffer, 0, len(offers))
	for i, offer := range offers {
		offer.ID = ids[i]

		tax, err := e.Tax.CalculateTax(offer.TaxableIncome(), countryCode, params)
		if err != nil {
			return nil, fmt.Errorf("offer %s: %w", offer.ID, err)
		}

		calculated := e.Metrics.CalculateMetrics(offer, tax)
		scores := e.Metrics.ScoreOffer(offer, calculated)
		e.Logger.Debugf("offer %s net=%s workLife=%s benefits=%s financial=%s overall=%s",
			offer.ID, calculated.NetTotalCompensationAnnual, scores.WorkLife,
			scores.Benefits, scores.Financial, scores.Overall)

		scored = append(scored, domain.ScoredOffer{
			Offer:      offer,
			Calculated: calculated,
			Scores:     scores,
		})
	}

	comparison := &OfferComparison{
		Country:      domain.NormalizeCode(countryCode),
		FilingStatus: status,
		Offers:       scored,
		BestOfferID:  bestOfferID(scored),
	}
	comparison.Recommendations = GenerateRecommendations(comparison)
	return comparison, nil
}

// assignOfferIDs returns the offer IDs in input order. A missing ID becomes
// offer-<n> for its 1-based position, moving past any value already taken.
func assignOfferIDs(offers []domain.Offer) ([]string, error) {
	taken := make(map[string]bool, len(offers))
	for _, offer := range offers {
		if offer.ID == "" {
			continue
		}
		if taken[offer.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOfferID, offer.ID)
		}
		taken[offer.ID] = true
	}

	ids := make([]string, len(offers))
	for i, offer := range offers {
		if offer.ID != "" {
			ids[i] = offer.ID
			continue
		}
		n := i + 1
		id := fmt.Sprintf("offer-%d", n)
		for taken[id] {
			n++
			id = fmt.Sprintf("offer-%d", n)
		}
		taken[id] = true
		ids[i] = id
	}
	return ids, nil
}

// bestOfferID returns the ID of the offer with the strictly highest overall
// score; on a tie the earlier offer wins
func bestOfferID(scored []domain.ScoredOffer) string {
	if len(scored) == 0 {
		return ""
	}
	best := 0
	for i := 1; i < len(scored); i++ {
		if scored[i].Scores.Overall.GreaterThan(scored[best].Scores.Overall) {
			best = i
		}
	}
	return scored[best].Offer.ID
}

// GenerateRecommendations names the best offer and the offers that lead
// each sub-score when they differ from it
func GenerateRecommendations(comparison *OfferComparison) []string {
	best := comparison.BestOffer()
	if best == nil {
		return nil
	}

	recommendations := []string{
		fmt.Sprintf("Best Overall: %s scores %s", displayName(best.Offer), best.Scores.Overall.StringFixed(1)),
	}
	if len(comparison.Offers) == 1 {
		return recommendations
	}

	leaders := []struct {
		label string
		score func(domain.ScoredOffer) decimal.Decimal
		note  func(domain.ScoredOffer) string
	}{
		{
			label: "Highest Pay",
			score: func(s domain.ScoredOffer) decimal.Decimal { return s.Scores.Financial },
			note: func(s domain.ScoredOffer) string {
				return fmt.Sprintf("$%s net total compensation", s.Calculated.NetTotalCompensationAnnual.StringFixed(0))
			},
		},
		{
			label: "Best Work-Life Balance",
			score: func(s domain.ScoredOffer) decimal.Decimal { return s.Scores.WorkLife },
			note: func(s domain.ScoredOffer) string {
				return fmt.Sprintf("work-life score %s", s.Scores.WorkLife.StringFixed(1))
			},
		},
		{
			label: "Best Benefits",
			score: func(s domain.ScoredOffer) decimal.Decimal { return s.Scores.Benefits },
			note: func(s domain.ScoredOffer) string {
				return fmt.Sprintf("benefits score %s", s.Scores.Benefits.StringFixed(1))
			},
		},
		{
			label: "Best Hourly Rate",
			score: func(s domain.ScoredOffer) decimal.Decimal { return s.Calculated.NetHourlyWithCommute },
			note: func(s domain.ScoredOffer) string {
				return fmt.Sprintf("$%s net per hour including commute", s.Calculated.NetHourlyWithCommute.StringFixed(2))
			},
		},
	}

	for _, l := range leaders {
		leader := lo.MaxBy(comparison.Offers, func(a, b domain.ScoredOffer) bool {
			return l.score(a).GreaterThan(l.score(b))
		})
		if leader.Offer.ID == best.Offer.ID || l.score(leader).Equal(l.score(*best)) {
			continue
		}
		recommendations = append(recommendations,
			fmt.Sprintf("%s: %s offers %s", l.label, displayName(leader.Offer), l.note(leader)))
	}

	return recommendations
}
