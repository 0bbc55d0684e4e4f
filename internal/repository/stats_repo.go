package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

type StatusCount struct {
	Status string
	Count  int
}

type ActivityTotals struct {
	FormCount       int
	EligibleAmount  float64
	VATAmount       float64
	OperatorFees    float64
	RefundAmount    float64
	ControlRequired int
}

type CategoryActivity struct {
	Category  string
	ItemCount int
	LineTotal float64
	VATAmount float64
	Excluded  int
}

func (r *StatsRepository) FormCountsByStatus(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM taxfree_forms GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

func (r *StatsRepository) Totals(ctx context.Context) (ActivityTotals, error) {
	var t ActivityTotals
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(eligible_amount), 0),
			COALESCE(SUM(vat_amount), 0),
			COALESCE(SUM(operator_fee), 0),
			COALESCE(SUM(refund_amount), 0),
			COUNT(*) FILTER (WHERE requires_control)
		FROM taxfree_forms`).
		Scan(&t.FormCount, &t.EligibleAmount, &t.VATAmount, &t.OperatorFees,
			&t.RefundAmount, &t.ControlRequired)
	return t, err
}

func (r *StatsRepository) ActivityByCategory(ctx context.Context) ([]CategoryActivity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT product_category,
			COUNT(*),
			COALESCE(SUM(line_total), 0),
			COALESCE(SUM(vat_amount), 0),
			COUNT(*) FILTER (WHERE NOT is_eligible)
		FROM sale_items
		GROUP BY product_category
		ORDER BY SUM(line_total) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryActivity
	for rows.Next() {
		var ca CategoryActivity
		if err := rows.Scan(&ca.Category, &ca.ItemCount, &ca.LineTotal, &ca.VATAmount, &ca.Excluded); err != nil {
			return nil, err
		}
		out = append(out, ca)
	}
	return out, rows.Err()
}
