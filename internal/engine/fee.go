package engine

import "math"

// FeeResult carries the operator fee and the traveler's net refund, plus the
// rates used so callers can display them.
type FeeResult struct {
	OperatorFee   float64
	RefundAmount  float64
	FeePercentage float64
	MinFee        float64
}

// ComputeFee derives the operator fee and net refund from the eligible VAT.
//
// With no ruleset loaded the result is degenerate: no fee is charged, the
// whole VAT is shown as refundable, and the display rates fall back to the
// pre-load defaults.
//
// The ordering below matters. The minimum-fee clamp only applies while there
// is VAT to refund, and the zero-VAT override runs after it; swapping them
// would bill the minimum fee on a sale with nothing to refund.
func ComputeFee(eligibleVAT float64, rs *RuleSet) FeeResult {
	if rs == nil {
		return FeeResult{
			OperatorFee:   0,
			RefundAmount:  round2(eligibleVAT),
			FeePercentage: PreloadFeePercentage,
			MinFee:        PreloadMinFee,
		}
	}

	fee := round2(eligibleVAT*rs.OperatorFeePercentage/100 + rs.OperatorFeeFixed)

	if fee < rs.MinOperatorFee && eligibleVAT > 0 {
		fee = rs.MinOperatorFee
	}
	if eligibleVAT == 0 {
		fee = 0
	}

	refund := round2(math.Max(0, eligibleVAT-fee))

	return FeeResult{
		OperatorFee:   fee,
		RefundAmount:  refund,
		FeePercentage: rs.OperatorFeePercentage,
		MinFee:        rs.MinOperatorFee,
	}
}
