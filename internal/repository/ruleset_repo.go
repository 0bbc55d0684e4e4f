package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/model"
)

type RuleSetRepository struct {
	pool *pgxpool.Pool
}

func NewRuleSetRepository(pool *pgxpool.Pool) *RuleSetRepository {
	return &RuleSetRepository{pool: pool}
}

// GetActive returns the currently active ruleset with its risk rules, or
// pgx.ErrNoRows when none is active.
func (r *RuleSetRepository) GetActive(ctx context.Context) (*model.RuleSet, []model.RiskRule, error) {
	rs := &model.RuleSet{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, version, name, min_purchase_amount, min_age, exit_deadline_months,
			excluded_residence_countries, excluded_categories, default_vat_rate,
			operator_fee_percentage, operator_fee_fixed, min_operator_fee,
			risk_score_threshold, high_value_threshold, is_active, created_at
		FROM rulesets WHERE is_active = true
		ORDER BY created_at DESC LIMIT 1`).
		Scan(&rs.ID, &rs.Version, &rs.Name, &rs.MinPurchaseAmount, &rs.MinAge,
			&rs.ExitDeadlineMonths, &rs.ExcludedResidenceCountries, &rs.ExcludedCategories,
			&rs.DefaultVATRate, &rs.OperatorFeePercentage, &rs.OperatorFeeFixed,
			&rs.MinOperatorFee, &rs.RiskScoreThreshold, &rs.HighValueThreshold,
			&rs.IsActive, &rs.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	rules, err := r.riskRules(ctx, rs.ID)
	if err != nil {
		return nil, nil, err
	}
	return rs, rules, nil
}

func (r *RuleSetRepository) riskRules(ctx context.Context, rulesetID string) ([]model.RiskRule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, ruleset_id, name, field, operator, value, score_impact, is_active
		FROM risk_rules WHERE ruleset_id = $1 AND is_active = true
		ORDER BY name`, rulesetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []model.RiskRule
	for rows.Next() {
		var rr model.RiskRule
		if err := rows.Scan(&rr.ID, &rr.RuleSetID, &rr.Name, &rr.Field, &rr.Operator,
			&rr.Value, &rr.ScoreImpact, &rr.IsActive); err != nil {
			return nil, err
		}
		rules = append(rules, rr)
	}
	return rules, rows.Err()
}
