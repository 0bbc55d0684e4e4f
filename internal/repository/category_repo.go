package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/model"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) ListActive(ctx context.Context) ([]model.ProductCategory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, name, icon, default_vat_rate, is_eligible_by_default,
			is_active, display_order, created_at
		FROM product_categories WHERE is_active = true
		ORDER BY display_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []model.ProductCategory
	for rows.Next() {
		var c model.ProductCategory
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Icon, &c.DefaultVATRate,
			&c.IsEligibleByDefault, &c.IsActive, &c.DisplayOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
