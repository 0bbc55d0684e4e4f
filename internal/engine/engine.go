package engine

import "time"

// Input is one computation request: a snapshot of the sale draft plus the
// rule and catalog snapshots loaded for the session. RuleSet may be nil
// (rules not loaded yet) and Catalog may be empty (static fallback applies).
type Input struct {
	Items    []LineItem
	Traveler Traveler
	RuleSet  *RuleSet
	Catalog  []Category
	Now      time.Time
}

// Result is the full computation output the sale workflow consumes: the
// partitioned breakdown, the totals, the fee and refund, and the two
// independent gates.
type Result struct {
	Eligible []ItemBreakdown
	Excluded []ItemBreakdown

	TotalHT  float64
	TotalVAT float64
	TotalTTC float64

	EligibleHT  float64
	EligibleVAT float64
	ExcludedVAT float64

	OperatorFee   float64
	RefundAmount  float64
	FeePercentage float64
	MinFee        float64

	ValidationErrors []string
	Feasibility      Feasibility
}

// Submittable reports whether the sale may be confirmed. Both gates must
// pass; they are surfaced separately so the caller can render them apart.
func (r Result) Submittable() bool {
	return len(r.ValidationErrors) == 0 && r.Feasibility.Valid
}

// Compute runs the whole pipeline: resolve the catalog and exclusion set,
// aggregate the lines, derive fee and refund, then evaluate both gates.
// Recomputation is idempotent; callers rerun it on every input change.
func Compute(in Input) Result {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	catalog := ResolveCatalog(in.Catalog)
	excluded := ExcludedCategorySet(in.Catalog, in.RuleSet)
	agg := Aggregate(in.Items, excluded, catalog)
	fee := ComputeFee(agg.EligibleVAT, in.RuleSet)

	errs := ValidateEligibility(in.RuleSet, agg.EligibleHT, in.Traveler,
		len(agg.Eligible), len(in.Items), now)
	feas := CheckFeasibility(fee.OperatorFee, fee.RefundAmount, agg.EligibleVAT)

	return Result{
		Eligible:         agg.Eligible,
		Excluded:         agg.Excluded,
		TotalHT:          agg.TotalHT,
		TotalVAT:         agg.TotalVAT,
		TotalTTC:         agg.TotalTTC,
		EligibleHT:       agg.EligibleHT,
		EligibleVAT:      agg.EligibleVAT,
		ExcludedVAT:      agg.ExcludedVAT,
		OperatorFee:      fee.OperatorFee,
		RefundAmount:     fee.RefundAmount,
		FeePercentage:    fee.FeePercentage,
		MinFee:           fee.MinFee,
		ValidationErrors: errs,
		Feasibility:      feas,
	}
}
