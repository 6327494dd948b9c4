package session

import "github.com/sandevgo/pitchcoach/internal/core"

// DefaultDealThreshold is the price under which an accepted deal counts as a bargain.
const DefaultDealThreshold = 60_000

// ClassifyClosure picks the closing reason for an accepted deal. price is the
// salesperson's number from the accepting turn, counterpart the buyer's last
// counter-offer. Undercutting the buyer wins over the threshold check.
func ClassifyClosure(price, counterpart *float64, threshold float64) core.ClosingReason {
	if price != nil && counterpart != nil && *price < *counterpart {
		return core.ClosingBelowCounterpartOffer
	}
	if price != nil && *price < threshold {
		return core.ClosingBelowThreshold
	}
	return core.ClosingNormal
}
