// Package settlement computes how a payment is split between the platform
// fee and the recipient. It performs no transfers.
package settlement

import (
	"fmt"

	"github.com/layerx402/layerx402/types"
	"github.com/layerx402/layerx402/utils"
)

// Quoter splits gross amounts using a fixed fee rate
type Quoter struct {
	feeBasisPoints int64
}

// NewQuoter creates a quoter charging feeBasisPoints (10000 = 100%)
func NewQuoter(feeBasisPoints int64) (*Quoter, error) {
	if feeBasisPoints < 0 || feeBasisPoints > types.BasisPointsDenominator {
		return nil, &types.X402Error{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("fee basis points must be between 0 and %d, got %d", types.BasisPointsDenominator, feeBasisPoints),
		}
	}
	return &Quoter{feeBasisPoints: feeBasisPoints}, nil
}

// FeeBasisPoints returns the configured fee rate
func (q *Quoter) FeeBasisPoints() int64 {
	return q.feeBasisPoints
}

// Quote returns the fee and net payout for gross. Since the rate never
// exceeds 100%, the fee never exceeds gross and the net is never negative.
func (q *Quoter) Quote(gross int64) (*types.SettlementQuote, error) {
	if gross <= 0 {
		return nil, &types.X402Error{
			Code:    types.ErrInvalidAmount,
			Message: fmt.Sprintf("gross amount must be greater than 0, got %d", gross),
		}
	}

	fee := utils.CalculateFee(gross, q.feeBasisPoints)

	return &types.SettlementQuote{
		GrossAmount:    gross,
		FeeAmount:      fee,
		NetAmount:      gross - fee,
		FeeBasisPoints: q.feeBasisPoints,
	}, nil
}
