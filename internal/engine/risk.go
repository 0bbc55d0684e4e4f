package engine

import "strconv"

// RiskRule is one configurable scoring rule from the active ruleset. Value is
// decoded from JSON, so numbers arrive as float64 and lists as []any.
type RiskRule struct {
	Name        string
	Field       string
	Operator    string
	Value       any
	ScoreImpact int
	Active      bool
}

// Built-in risk flags.
const (
	RiskFlagHighValue        = "HIGH_VALUE"
	RiskFlagFrequentTraveler = "FREQUENT_TRAVELER"
)

const (
	highValueScore        = 20
	frequentTravelerScore = 15
	frequentFormThreshold = 3
)

// Evaluate returns the rule's score impact when the context matches, zero
// otherwise. A context without the rule's field never matches.
func (r RiskRule) Evaluate(ctx map[string]any) int {
	v, ok := ctx[r.Field]
	if !ok || v == nil {
		return 0
	}

	matched := false
	switch r.Operator {
	case "equals":
		matched = looseEqual(v, r.Value)
	case "not_equals":
		matched = !looseEqual(v, r.Value)
	case "greater_than":
		fv, ok1 := toFloat(v)
		rv, ok2 := toFloat(r.Value)
		matched = ok1 && ok2 && fv > rv
	case "less_than":
		fv, ok1 := toFloat(v)
		rv, ok2 := toFloat(r.Value)
		matched = ok1 && ok2 && fv < rv
	case "in":
		matched = containsValue(r.Value, v)
	case "not_in":
		matched = !containsValue(r.Value, v)
	}

	if matched {
		return r.ScoreImpact
	}
	return 0
}

// RiskInput is everything risk scoring looks at for one sale.
type RiskInput struct {
	InvoiceTotal    float64
	EligibleAmount  float64
	Context         map[string]any
	RecentFormCount int
}

// ScoreRisk evaluates the active rules plus the built-in checks and decides
// whether the form needs a manual customs control before issue.
func ScoreRisk(rs *RuleSet, in RiskInput) (score int, flags []string, requiresControl bool) {
	if rs == nil {
		return 0, nil, false
	}

	for _, rule := range rs.RiskRules {
		if !rule.Active {
			continue
		}
		if s := rule.Evaluate(in.Context); s > 0 {
			score += s
			flags = append(flags, rule.Name)
		}
	}

	if in.InvoiceTotal >= rs.HighValueThreshold {
		score += highValueScore
		flags = append(flags, RiskFlagHighValue)
	}

	if in.RecentFormCount >= frequentFormThreshold {
		score += frequentTravelerScore
		flags = append(flags, RiskFlagFrequentTraveler)
	}

	requiresControl = score >= rs.RiskScoreThreshold || in.EligibleAmount >= rs.HighValueThreshold
	return score, flags, requiresControl
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func looseEqual(a, b any) bool {
	if fa, ok1 := toFloat(a); ok1 {
		if fb, ok2 := toFloat(b); ok2 {
			return fa == fb
		}
	}
	return a == b
}

func containsValue(list any, v any) bool {
	items, ok := list.([]any)
	if !ok {
		return false
	}
	for _, it := range items {
		if looseEqual(it, v) {
			return true
		}
	}
	return false
}
