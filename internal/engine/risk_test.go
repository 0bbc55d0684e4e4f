package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskRuleEvaluate(t *testing.T) {
	ctx := map[string]any{
		"amount":           750000.0,
		"traveler_country": "CD",
		"items_count":      12.0,
	}

	t.Run("happy: greater_than matches", func(t *testing.T) {
		r := RiskRule{Field: "amount", Operator: "greater_than", Value: 500000.0, ScoreImpact: 25}
		assert.Equal(t, 25, r.Evaluate(ctx))
	})

	t.Run("happy: equals on strings", func(t *testing.T) {
		r := RiskRule{Field: "traveler_country", Operator: "equals", Value: "CD", ScoreImpact: 10}
		assert.Equal(t, 10, r.Evaluate(ctx))
	})

	t.Run("happy: in list", func(t *testing.T) {
		r := RiskRule{Field: "traveler_country", Operator: "in", Value: []any{"CD", "AO"}, ScoreImpact: 10}
		assert.Equal(t, 10, r.Evaluate(ctx))
	})

	t.Run("happy: not_in list", func(t *testing.T) {
		r := RiskRule{Field: "traveler_country", Operator: "not_in", Value: []any{"FR", "BE"}, ScoreImpact: 5}
		assert.Equal(t, 5, r.Evaluate(ctx))
	})

	t.Run("bad: less_than does not match", func(t *testing.T) {
		r := RiskRule{Field: "amount", Operator: "less_than", Value: 500000.0, ScoreImpact: 25}
		assert.Zero(t, r.Evaluate(ctx))
	})

	t.Run("edge: unknown field scores zero", func(t *testing.T) {
		r := RiskRule{Field: "missing", Operator: "equals", Value: "x", ScoreImpact: 50}
		assert.Zero(t, r.Evaluate(ctx))
	})

	t.Run("edge: numeric comparison across int and float", func(t *testing.T) {
		r := RiskRule{Field: "items_count", Operator: "greater_than", Value: 10, ScoreImpact: 5}
		assert.Equal(t, 5, r.Evaluate(ctx))
	})

	t.Run("edge: unknown operator never matches", func(t *testing.T) {
		r := RiskRule{Field: "amount", Operator: "between", Value: 1.0, ScoreImpact: 5}
		assert.Zero(t, r.Evaluate(ctx))
	})
}

func TestScoreRisk(t *testing.T) {
	rules := func() *RuleSet {
		return &RuleSet{
			RiskScoreThreshold: 70,
			HighValueThreshold: 500000,
			RiskRules: []RiskRule{
				{Name: "EXCLUDED_NEIGHBOR", Field: "traveler_country", Operator: "equals", Value: "CD", ScoreImpact: 40, Active: true},
				{Name: "BULK_PURCHASE", Field: "items_count", Operator: "greater_than", Value: 10.0, ScoreImpact: 35, Active: true},
				{Name: "DISABLED", Field: "amount", Operator: "greater_than", Value: 0.0, ScoreImpact: 99, Active: false},
			},
		}
	}

	t.Run("happy: low risk sale", func(t *testing.T) {
		score, flags, control := ScoreRisk(rules(), RiskInput{
			InvoiceTotal:   100000,
			EligibleAmount: 100000,
			Context:        map[string]any{"traveler_country": "FR", "items_count": 2.0},
		})
		assert.Zero(t, score)
		assert.Empty(t, flags)
		assert.False(t, control)
	})

	t.Run("bad: rule matches push score over threshold", func(t *testing.T) {
		score, flags, control := ScoreRisk(rules(), RiskInput{
			InvoiceTotal:   100000,
			EligibleAmount: 100000,
			Context:        map[string]any{"traveler_country": "CD", "items_count": 12.0},
		})
		assert.Equal(t, 75, score)
		assert.Equal(t, []string{"EXCLUDED_NEIGHBOR", "BULK_PURCHASE"}, flags)
		assert.True(t, control)
	})

	t.Run("edge: inactive rules are skipped", func(t *testing.T) {
		score, flags, _ := ScoreRisk(rules(), RiskInput{
			InvoiceTotal:   100000,
			EligibleAmount: 100000,
			Context:        map[string]any{"amount": 999999.0},
		})
		assert.Zero(t, score)
		assert.NotContains(t, flags, "DISABLED")
	})

	t.Run("edge: high value invoice adds built-in flag", func(t *testing.T) {
		score, flags, control := ScoreRisk(rules(), RiskInput{
			InvoiceTotal:   600000,
			EligibleAmount: 100000,
			Context:        map[string]any{},
		})
		assert.Equal(t, 20, score)
		assert.Contains(t, flags, RiskFlagHighValue)
		assert.False(t, control, "score 20 stays under threshold")
	})

	t.Run("edge: high eligible amount forces control regardless of score", func(t *testing.T) {
		_, _, control := ScoreRisk(rules(), RiskInput{
			InvoiceTotal:   100000,
			EligibleAmount: 500000,
			Context:        map[string]any{},
		})
		assert.True(t, control)
	})

	t.Run("edge: frequent traveler flag", func(t *testing.T) {
		score, flags, _ := ScoreRisk(rules(), RiskInput{
			InvoiceTotal:    100000,
			EligibleAmount:  100000,
			Context:         map[string]any{},
			RecentFormCount: 3,
		})
		assert.Equal(t, 15, score)
		assert.Contains(t, flags, RiskFlagFrequentTraveler)
	})

	t.Run("edge: nil ruleset scores nothing", func(t *testing.T) {
		score, flags, control := ScoreRisk(nil, RiskInput{InvoiceTotal: 1e9})
		assert.Zero(t, score)
		assert.Empty(t, flags)
		assert.False(t, control)
	})
}
