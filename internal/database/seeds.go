package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/seeddata"
)

type categoryEntry struct {
	Code                string  `json:"code"`
	Name                string  `json:"name"`
	Icon                string  `json:"icon"`
	DefaultVATRate      float64 `json:"default_vat_rate"`
	IsEligibleByDefault bool    `json:"is_eligible_by_default"`
	DisplayOrder        int     `json:"display_order"`
}

var currencies = []struct {
	Code   string
	Name   string
	Symbol string
	Rate   float64
	IsBase bool
}{
	{"CDF", "Franc congolais", "FC", 1.0, true},
	{"USD", "US Dollar", "$", 0.00036, false},
	{"EUR", "Euro", "€", 0.00033, false},
}

type riskRuleSeed struct {
	Name        string
	Field       string
	Operator    string
	Value       any
	ScoreImpact int
}

var defaultRiskRules = []riskRuleSeed{
	{Name: "LARGE_REFUND", Field: "refund_amount", Operator: "greater_than", Value: 200000, ScoreImpact: 25},
	{Name: "MANY_ITEMS", Field: "item_count", Operator: "greater_than", Value: 30, ScoreImpact: 10},
	{Name: "WATCHLIST_RESIDENCE", Field: "residence_country", Operator: "in", Value: []string{"XX"}, ScoreImpact: 40},
}

// SeedData loads the reference data a fresh installation needs: the product
// category catalog, the payout currencies, and one active default ruleset
// with its risk rules. Running it twice is a no-op.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	var rulesetCount int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM rulesets").Scan(&rulesetCount); err != nil {
		return fmt.Errorf("check existing rulesets: %w", err)
	}
	if rulesetCount > 0 {
		log.Info().Msg("seed data already present, skipping")
		return nil
	}

	if err := seedCategories(ctx, pool); err != nil {
		return err
	}
	if err := seedCurrencies(ctx, pool); err != nil {
		return err
	}
	if err := seedDefaultRuleSet(ctx, pool); err != nil {
		return err
	}

	log.Info().Msg("seed data loaded")
	return nil
}

func seedCategories(ctx context.Context, pool *pgxpool.Pool) error {
	var entries []categoryEntry
	if err := json.Unmarshal(seeddata.Categories, &entries); err != nil {
		return fmt.Errorf("parse embedded categories: %w", err)
	}

	for _, e := range entries {
		_, err := pool.Exec(ctx,
			`INSERT INTO product_categories (code, name, icon, default_vat_rate,
				is_eligible_by_default, display_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (code) DO NOTHING`,
			e.Code, e.Name, e.Icon, e.DefaultVATRate, e.IsEligibleByDefault, e.DisplayOrder)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", e.Code, err)
		}
	}
	return nil
}

func seedCurrencies(ctx context.Context, pool *pgxpool.Pool) error {
	for _, c := range currencies {
		_, err := pool.Exec(ctx,
			`INSERT INTO currencies (code, name, symbol, exchange_rate, is_base_currency)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (code) DO NOTHING`,
			c.Code, c.Name, c.Symbol, c.Rate, c.IsBase)
		if err != nil {
			return fmt.Errorf("seed currency %s: %w", c.Code, err)
		}
	}
	return nil
}

func seedDefaultRuleSet(ctx context.Context, pool *pgxpool.Pool) error {
	var rulesetID string
	err := pool.QueryRow(ctx,
		`INSERT INTO rulesets (version, name, min_purchase_amount, min_age,
			exit_deadline_months, excluded_residence_countries, excluded_categories,
			default_vat_rate, operator_fee_percentage, operator_fee_fixed,
			min_operator_fee, risk_score_threshold, high_value_threshold, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, true)
		RETURNING id`,
		"2026.1", "Règles détaxe RDC par défaut",
		50000.0, 16, 3,
		[]string{"CD"}, []string{"SERVICES", "FOOD", "TOBACCO"},
		16.0, 15.0, 0.0, 5000.0, 70, 500000.0).
		Scan(&rulesetID)
	if err != nil {
		return fmt.Errorf("seed default ruleset: %w", err)
	}

	for _, rr := range defaultRiskRules {
		value, err := json.Marshal(rr.Value)
		if err != nil {
			return fmt.Errorf("marshal risk rule %s: %w", rr.Name, err)
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO risk_rules (ruleset_id, name, field, operator, value, score_impact)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			rulesetID, rr.Name, rr.Field, rr.Operator, value, rr.ScoreImpact)
		if err != nil {
			return fmt.Errorf("seed risk rule %s: %w", rr.Name, err)
		}
	}
	return nil
}
