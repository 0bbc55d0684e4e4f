// Package engine holds the eligibility and refund computation core of the
// tax free system. Everything here is pure: no I/O, no clocks other than the
// caller-supplied instant, and the same inputs always produce the same result.
package engine

import "math"

// Rule defaults applied when a field is absent or unparseable.
const (
	DefaultMinPurchaseAmount  = 50000
	DefaultMinAge             = 16
	DefaultVATRate            = 16
	DefaultFeePercentage      = 15
	DefaultFeeFixed           = 0
	DefaultMinOperatorFee     = 0
	DefaultExitDeadlineMonths = 3
	DefaultRiskScoreThreshold = 70
	DefaultHighValueThreshold = 500000
)

// Display defaults shown before any ruleset has loaded. Distinct from the
// rule defaults above: they never influence a computation against real rules.
const (
	PreloadFeePercentage = 15
	PreloadMinFee        = 5000
)

// RuleSet is the normalized rule snapshot a computation runs against. All
// numeric fields are already defaulted and non-negative; a nil *RuleSet means
// no rules have loaded yet and triggers the degenerate paths.
type RuleSet struct {
	ID      string
	Version string

	MinPurchaseAmount          float64
	MinAge                     int
	ExcludedResidenceCountries []string
	ExcludedCategories         []string
	DefaultVATRate             float64

	OperatorFeePercentage float64
	OperatorFeeFixed      float64
	MinOperatorFee        float64

	ExitDeadlineMonths int
	RiskScoreThreshold int
	HighValueThreshold float64
	RiskRules          []RiskRule
}

// round2 follows the operator convention of rounding money to centimes.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
