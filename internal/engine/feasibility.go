package engine

import "fmt"

// Feasibility reports whether anything is left to refund once fees are
// taken. It is checked independently of eligibility validation: a sale can
// pass every rule and still be pointless to submit.
type Feasibility struct {
	Valid   bool
	Message string
}

// CheckFeasibility fails exactly when fees consume all recoverable VAT while
// VAT exists. A sale with no recoverable VAT at all is left to the
// no-eligible-items validation instead.
func CheckFeasibility(operatorFee, refundAmount, eligibleVAT float64) Feasibility {
	if refundAmount <= 0 && eligibleVAT > 0 {
		return Feasibility{
			Valid: false,
			Message: fmt.Sprintf(
				"operator fees (%.2f CDF) meet or exceed recoverable VAT (%.2f CDF), nothing would be refunded",
				operatorFee, eligibleVAT),
		}
	}
	return Feasibility{Valid: true}
}
