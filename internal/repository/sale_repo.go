package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/model"
)

type SaleRepository struct {
	pool *pgxpool.Pool
}

func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

// CreateSale persists the traveler, the invoice with its items, and the tax
// free form in one transaction. IDs generated by the database are written
// back into the models.
func (r *SaleRepository) CreateSale(ctx context.Context, traveler *model.Traveler,
	invoice *model.SaleInvoice, items []model.SaleItem, form *model.TaxFreeForm) error {

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO travelers (passport_number, passport_country, passport_issue_date,
			passport_expiry_date, first_name, last_name, date_of_birth, nationality,
			residence_country, email, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		traveler.PassportNumber, traveler.PassportCountry, traveler.PassportIssueDate,
		traveler.PassportExpiryDate, traveler.FirstName, traveler.LastName,
		traveler.DateOfBirth, traveler.Nationality, traveler.ResidenceCountry,
		traveler.Email, traveler.Phone).
		Scan(&traveler.ID, &traveler.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert traveler: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO sale_invoices (merchant_id, invoice_number, invoice_date, currency,
			subtotal, total_vat, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		invoice.MerchantID, invoice.InvoiceNumber, invoice.InvoiceDate, invoice.Currency,
		invoice.Subtotal, invoice.TotalVAT, invoice.TotalAmount).
		Scan(&invoice.ID, &invoice.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	for i := range items {
		items[i].InvoiceID = invoice.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO sale_items (invoice_id, product_name, barcode, product_category,
				quantity, unit_price, vat_rate, line_total, vat_amount,
				is_eligible, ineligibility_reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id`,
			items[i].InvoiceID, items[i].ProductName, items[i].Barcode,
			items[i].ProductCategory, items[i].Quantity, items[i].UnitPrice,
			items[i].VATRate, items[i].LineTotal, items[i].VATAmount,
			items[i].IsEligible, items[i].IneligibilityReason).
			Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("insert item %d: %w", i, err)
		}
	}

	form.InvoiceID = invoice.ID
	form.TravelerID = traveler.ID
	err = tx.QueryRow(ctx,
		`INSERT INTO taxfree_forms (form_number, invoice_id, traveler_id, currency,
			eligible_amount, vat_amount, operator_fee, refund_amount, status,
			rule_snapshot, risk_score, risk_flags, requires_control, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at`,
		form.FormNumber, form.InvoiceID, form.TravelerID, form.Currency,
		form.EligibleAmount, form.VATAmount, form.OperatorFee, form.RefundAmount,
		form.Status, form.RuleSnapshot, form.RiskScore, form.RiskFlags,
		form.RequiresControl, form.ExpiresAt).
		Scan(&form.ID, &form.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert form: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit sale: %w", err)
	}
	return nil
}

// CountRecentFormsByPassport counts forms created for a passport number in
// the last given number of days. Feeds the frequent-traveler risk flag.
func (r *SaleRepository) CountRecentFormsByPassport(ctx context.Context, passportNumber string, days int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM taxfree_forms f
		JOIN travelers t ON t.id = f.traveler_id
		WHERE t.passport_number = $1
		AND f.created_at >= NOW() - make_interval(days => $2)`,
		passportNumber, days).Scan(&count)
	return count, err
}
