package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/model"
)

type FormRepository struct {
	pool *pgxpool.Pool
}

func NewFormRepository(pool *pgxpool.Pool) *FormRepository {
	return &FormRepository{pool: pool}
}

const formColumns = `id, form_number, invoice_id, traveler_id, currency,
	eligible_amount, vat_amount, operator_fee, refund_amount, status,
	rule_snapshot, risk_score, risk_flags, requires_control, expires_at, created_at`

func (r *FormRepository) scanForm(row interface{ Scan(...any) error }) (*model.TaxFreeForm, error) {
	f := &model.TaxFreeForm{}
	err := row.Scan(&f.ID, &f.FormNumber, &f.InvoiceID, &f.TravelerID, &f.Currency,
		&f.EligibleAmount, &f.VATAmount, &f.OperatorFee, &f.RefundAmount, &f.Status,
		&f.RuleSnapshot, &f.RiskScore, &f.RiskFlags, &f.RequiresControl,
		&f.ExpiresAt, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FormRepository) FindByID(ctx context.Context, id string) (*model.TaxFreeForm, error) {
	return r.scanForm(r.pool.QueryRow(ctx,
		`SELECT `+formColumns+` FROM taxfree_forms WHERE id = $1`, id))
}

// List returns forms newest first, optionally filtered by status, with the
// total count for pagination.
func (r *FormRepository) List(ctx context.Context, status string, limit, offset int) ([]*model.TaxFreeForm, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM taxfree_forms WHERE ($1 = '' OR status = $1)`, status).
		Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+formColumns+` FROM taxfree_forms
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var forms []*model.TaxFreeForm
	for rows.Next() {
		f, err := r.scanForm(rows)
		if err != nil {
			return nil, 0, err
		}
		forms = append(forms, f)
	}
	return forms, total, rows.Err()
}
