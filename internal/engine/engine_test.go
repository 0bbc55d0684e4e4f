package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioRules() *RuleSet {
	return &RuleSet{
		ID:                    "rs-test",
		Version:               "1.0",
		MinPurchaseAmount:     50000,
		MinAge:                16,
		OperatorFeePercentage: 15,
		OperatorFeeFixed:      0,
		MinOperatorFee:        5000,
		RiskScoreThreshold:    70,
		HighValueThreshold:    500000,
	}
}

func scenarioTraveler() Traveler {
	return Traveler{
		FirstName:        "Jean",
		LastName:         "Dupont",
		DateOfBirth:      date(1990, time.January, 1),
		Nationality:      "FR",
		ResidenceCountry: "FR",
	}
}

func TestCompute_Scenarios(t *testing.T) {
	now := date(2026, time.August, 29)

	t.Run("happy: single eligible electronics item", func(t *testing.T) {
		res := Compute(Input{
			Items: []LineItem{
				{ProductName: "Laptop", Category: "ELECTRONICS", Quantity: 1, UnitPrice: 500000, VATRate: 16},
			},
			Traveler: scenarioTraveler(),
			RuleSet:  scenarioRules(),
			Now:      now,
		})

		require.Len(t, res.Eligible, 1)
		assert.Empty(t, res.Excluded)
		assert.InDelta(t, 68965.52, res.EligibleVAT, 0.01)
		assert.InDelta(t, 10344.83, res.OperatorFee, 0.01)
		assert.InDelta(t, 58620.69, res.RefundAmount, 0.01)
		assert.Empty(t, res.ValidationErrors)
		assert.True(t, res.Feasibility.Valid)
		assert.True(t, res.Submittable())
	})

	t.Run("bad: same sale with an excluded food category", func(t *testing.T) {
		res := Compute(Input{
			Items: []LineItem{
				{ProductName: "Chocolat", Category: "FOOD", Quantity: 1, UnitPrice: 500000, VATRate: 16},
			},
			Traveler: scenarioTraveler(),
			RuleSet:  scenarioRules(),
			Now:      now,
		})

		assert.Empty(t, res.Eligible)
		require.Len(t, res.Excluded, 1)
		assert.Zero(t, res.EligibleVAT)
		assert.Zero(t, res.OperatorFee)
		assert.Zero(t, res.RefundAmount)

		require.NotEmpty(t, res.ValidationErrors)
		found := false
		for _, e := range res.ValidationErrors {
			if strings.Contains(e, "eligible") {
				found = true
			}
		}
		assert.True(t, found, "expected a no-eligible-items error")
		assert.True(t, res.Feasibility.Valid, "no VAT means no feasibility failure")
		assert.False(t, res.Submittable())
	})

	t.Run("bad: amount below minimum purchase", func(t *testing.T) {
		// 34800 TTC -> 30000 HT at 16%
		res := Compute(Input{
			Items: []LineItem{
				{ProductName: "Montre", Category: "JEWELRY", Quantity: 1, UnitPrice: 34800, VATRate: 16},
			},
			Traveler: scenarioTraveler(),
			RuleSet:  scenarioRules(),
			Now:      now,
		})

		assert.InDelta(t, 30000, res.EligibleHT, 0.01)
		require.Len(t, res.ValidationErrors, 1)
		assert.Contains(t, res.ValidationErrors[0], "50000.00")
		assert.Contains(t, res.ValidationErrors[0], "30000.00")
	})

	t.Run("bad: absurd fixed fee makes the refund infeasible", func(t *testing.T) {
		rs := scenarioRules()
		rs.OperatorFeePercentage = 0
		rs.OperatorFeeFixed = 1000000

		res := Compute(Input{
			Items: []LineItem{
				{ProductName: "Laptop", Category: "ELECTRONICS", Quantity: 1, UnitPrice: 500000, VATRate: 16},
			},
			Traveler: scenarioTraveler(),
			RuleSet:  rs,
			Now:      now,
		})

		assert.InDelta(t, 1000000, res.OperatorFee, 0.01)
		assert.Zero(t, res.RefundAmount)
		assert.Empty(t, res.ValidationErrors, "eligibility passes independently")
		require.False(t, res.Feasibility.Valid)
		assert.Contains(t, res.Feasibility.Message, "1000000.00")
		assert.Contains(t, res.Feasibility.Message, "68965.52")
		assert.False(t, res.Submittable())
	})

	t.Run("edge: no ruleset loaded yields degenerate but valid result", func(t *testing.T) {
		res := Compute(Input{
			Items: []LineItem{
				{ProductName: "Laptop", Category: "ELECTRONICS", Quantity: 1, UnitPrice: 500000, VATRate: 16},
			},
			Traveler: scenarioTraveler(),
			Now:      now,
		})

		assert.Zero(t, res.OperatorFee)
		assert.InDelta(t, res.EligibleVAT, res.RefundAmount, 0.01)
		assert.Empty(t, res.ValidationErrors)
		assert.True(t, res.Feasibility.Valid)
	})

	t.Run("happy: dynamic catalog overrides exclusions", func(t *testing.T) {
		res := Compute(Input{
			Items: []LineItem{
				{ProductName: "Vin", Category: "FOOD", Quantity: 1, UnitPrice: 580000, VATRate: 16},
			},
			Traveler: scenarioTraveler(),
			RuleSet:  scenarioRules(),
			Catalog: []Category{
				{Code: "FOOD", Label: "Alimentation", Eligible: true},
				{Code: "WEAPONS", Label: "Armes", Eligible: false},
			},
			Now: now,
		})

		require.Len(t, res.Eligible, 1, "catalog marks FOOD eligible, overriding defaults")
		assert.Empty(t, res.Excluded)
	})

	t.Run("edge: recomputation is idempotent", func(t *testing.T) {
		in := Input{
			Items: []LineItem{
				{ProductName: "A", Category: "ELECTRONICS", Quantity: 2, UnitPrice: 150000, VATRate: 16},
				{ProductName: "B", Category: "FOOD", Quantity: 1, UnitPrice: 20000, VATRate: 16},
			},
			Traveler: scenarioTraveler(),
			RuleSet:  scenarioRules(),
			Now:      now,
		}

		first := Compute(in)
		second := Compute(in)
		assert.Equal(t, first, second)
	})
}
