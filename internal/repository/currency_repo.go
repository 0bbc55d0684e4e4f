package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/model"
)

type CurrencyRepository struct {
	pool *pgxpool.Pool
}

func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}

// FindActive returns an active currency by code, or pgx.ErrNoRows.
func (r *CurrencyRepository) FindActive(ctx context.Context, code string) (*model.Currency, error) {
	c := &model.Currency{}
	err := r.pool.QueryRow(ctx,
		`SELECT code, name, symbol, exchange_rate, is_base_currency, is_active
		FROM currencies WHERE code = $1 AND is_active = true`, code).
		Scan(&c.Code, &c.Name, &c.Symbol, &c.ExchangeRate, &c.IsBaseCurrency, &c.IsActive)
	if err != nil {
		return nil, err
	}
	return c, nil
}
