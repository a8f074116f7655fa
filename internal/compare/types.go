package compare

import (
	"github.com/rgehrsitz/paygo/internal/domain"
)

// OfferComparison is the outcome of scoring a set of offers
type OfferComparison struct {
	Country         string               `json:"country"`
	FilingStatus    domain.FilingStatus  `json:"filingStatus"`
	Offers          []domain.ScoredOffer `json:"offers"`
	BestOfferID     string               `json:"bestOfferId"`
	Recommendations []string             `json:"recommendations"`
}

// BestOffer returns the highest scoring offer
func (oc *OfferComparison) BestOffer() *domain.ScoredOffer {
	for i := range oc.Offers {
		if oc.Offers[i].Offer.ID == oc.BestOfferID {
			return &oc.Offers[i]
		}
	}
	return nil
}

// Offer returns the scored offer with the given ID
func (oc *OfferComparison) Offer(id string) (*domain.ScoredOffer, bool) {
	for i := range oc.Offers {
		if oc.Offers[i].Offer.ID == id {
			return &oc.Offers[i], true
		}
	}
	return nil, false
}

// displayName prefers the offer name and falls back to its ID
func displayName(o domain.Offer) string {
	if o.Name != "" {
		return o.Name
	}
	return o.ID
}
