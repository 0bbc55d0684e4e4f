package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/dto"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/engine"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/model"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/repository"
)

// recentFormWindowDays is the lookback for the frequent-traveler risk flag.
const recentFormWindowDays = 7

// ErrSaleRejected signals that the submission gate blocked the sale. The
// attached quote carries the individual failures.
var ErrSaleRejected = errors.New("sale not eligible for tax free issue")

// ErrNoActiveRuleSet blocks form issue entirely: without rules there is
// nothing to validate fees or eligibility against, and the degenerate
// computation would hand the traveler the full VAT with no operator fee.
var ErrNoActiveRuleSet = errors.New("no active ruleset configured")

type SaleService struct {
	saleRepo     *repository.SaleRepository
	rulesetRepo  *repository.RuleSetRepository
	categoryRepo *repository.CategoryRepository
}

func NewSaleService(saleRepo *repository.SaleRepository, rulesetRepo *repository.RuleSetRepository,
	categoryRepo *repository.CategoryRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo, rulesetRepo: rulesetRepo, categoryRepo: categoryRepo}
}

// CreateSale confirms a sale and issues its tax free form. The computation is
// rerun server side against the active ruleset; the stored form never trusts
// client-supplied amounts. When the gate fails the quote is returned alongside
// ErrSaleRejected so the handler can report both failure channels.
func (s *SaleService) CreateSale(ctx context.Context, req *dto.CreateSaleRequest) (*model.TaxFreeForm, *dto.QuoteResponse, error) {
	row, riskRules, err := s.rulesetRepo.GetActive(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrNoActiveRuleSet
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load active ruleset: %w", err)
	}
	rs := RuleSetFromModel(row, riskRules)

	cats, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load categories: %w", err)
	}
	catalog := CatalogFromModels(cats)

	traveler, err := travelerFromRequest(&req.Traveler)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	items := ItemsFromRequest(req.Items, defaultVATRate(rs))
	result := engine.Compute(engine.Input{
		Items: items,
		Traveler: engine.Traveler{
			FirstName:        traveler.FirstName,
			LastName:         traveler.LastName,
			Nationality:      traveler.Nationality,
			ResidenceCountry: traveler.ResidenceCountry,
			DateOfBirth:      traveler.DateOfBirth,
		},
		RuleSet: rs,
		Catalog: catalog,
		Now:     now,
	})

	quote := QuoteResponseFromResult(result)
	if rs != nil {
		quote.RulesetVersion = rs.Version
	}
	if !result.Submittable() || result.RefundAmount <= 0 {
		return nil, quote, ErrSaleRejected
	}

	recentForms, err := s.saleRepo.CountRecentFormsByPassport(ctx, traveler.PassportNumber, recentFormWindowDays)
	if err != nil {
		return nil, nil, fmt.Errorf("count recent forms: %w", err)
	}

	score, flags, requiresControl := engine.ScoreRisk(rs, engine.RiskInput{
		InvoiceTotal:    result.TotalTTC,
		EligibleAmount:  result.EligibleHT,
		RecentFormCount: recentForms,
		Context: map[string]any{
			"invoice_total":     result.TotalTTC,
			"eligible_amount":   result.EligibleHT,
			"refund_amount":     result.RefundAmount,
			"nationality":       traveler.Nationality,
			"residence_country": traveler.ResidenceCountry,
			"item_count":        len(items),
		},
	})
	if flags == nil {
		flags = []string{}
	}

	invoiceDate, _ := time.Parse("2006-01-02", req.InvoiceDate)
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "CDF"
	}

	invoice := &model.SaleInvoice{
		MerchantID:    req.MerchantID,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   invoiceDate,
		Currency:      currency,
		Subtotal:      result.TotalHT,
		TotalVAT:      result.TotalVAT,
		TotalAmount:   result.TotalTTC,
	}

	form := &model.TaxFreeForm{
		FormNumber:      formNumber(now, req.MerchantID, req.InvoiceNumber, traveler.PassportNumber),
		Currency:        currency,
		EligibleAmount:  result.EligibleHT,
		VATAmount:       result.EligibleVAT,
		OperatorFee:     result.OperatorFee,
		RefundAmount:    result.RefundAmount,
		Status:          model.FormStatusCreated,
		RuleSnapshot:    ruleSnapshot(rs),
		RiskScore:       score,
		RiskFlags:       flags,
		RequiresControl: requiresControl,
		ExpiresAt:       now.AddDate(0, 0, exitDeadlineDays(rs)),
	}

	if err := s.saleRepo.CreateSale(ctx, traveler, invoice, saleItems(items, result), form); err != nil {
		return nil, nil, err
	}
	return form, quote, nil
}

// formNumber derives a stable reference like TF-2026-9F3A21C4 from the sale
// identifiers and the issue instant.
func formNumber(now time.Time, parts ...string) string {
	h := sha256.New()
	fmt.Fprint(h, now.UnixNano())
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return fmt.Sprintf("TF-%d-%X", now.Year(), h.Sum(nil)[:4])
}

// exitDeadlineDays converts the ruleset deadline to days, 30 per month.
func exitDeadlineDays(rs *engine.RuleSet) int {
	months := engine.DefaultExitDeadlineMonths
	if rs != nil && rs.ExitDeadlineMonths > 0 {
		months = rs.ExitDeadlineMonths
	}
	return months * 30
}

// ruleSnapshot freezes the rules the form was computed under, so later
// audits do not depend on the ruleset still existing unchanged.
func ruleSnapshot(rs *engine.RuleSet) map[string]any {
	if rs == nil {
		return nil
	}
	return map[string]any{
		"ruleset_id":                   rs.ID,
		"version":                      rs.Version,
		"min_purchase_amount":          rs.MinPurchaseAmount,
		"min_age":                      rs.MinAge,
		"default_vat_rate":             rs.DefaultVATRate,
		"operator_fee_percentage":      rs.OperatorFeePercentage,
		"operator_fee_fixed":           rs.OperatorFeeFixed,
		"min_operator_fee":             rs.MinOperatorFee,
		"exit_deadline_months":         rs.ExitDeadlineMonths,
		"excluded_categories":          rs.ExcludedCategories,
		"excluded_residence_countries": rs.ExcludedResidenceCountries,
	}
}

func travelerFromRequest(req *dto.TravelerRequest) (*model.Traveler, error) {
	expiry, err := time.Parse("2006-01-02", req.PassportExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("parse passport_expiry_date: %w", err)
	}
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("parse date_of_birth: %w", err)
	}

	t := &model.Traveler{
		PassportNumber:     strings.ToUpper(strings.TrimSpace(req.PassportNumber)),
		PassportCountry:    strings.ToUpper(req.PassportCountry),
		PassportExpiryDate: expiry,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		DateOfBirth:        dob,
		Nationality:        strings.ToUpper(req.Nationality),
		ResidenceCountry:   strings.ToUpper(req.ResidenceCountry),
		Email:              req.Email,
		Phone:              req.Phone,
	}
	if req.PassportIssueDate != "" {
		if issued, err := time.Parse("2006-01-02", req.PassportIssueDate); err == nil {
			t.PassportIssueDate = &issued
		}
	}
	return t, nil
}

// saleItems flattens the engine breakdown back into storable invoice lines,
// in the original request order.
func saleItems(items []engine.LineItem, result engine.Result) []model.SaleItem {
	reasons := make(map[int]string, len(result.Excluded))
	excluded := make(map[int]bool, len(result.Excluded))
	for _, e := range result.Excluded {
		excluded[e.Index] = true
		reasons[e.Index] = e.Reason
	}

	out := make([]model.SaleItem, len(items))
	for i, it := range items {
		category := it.Category
		if category == "" {
			category = "GENERAL"
		}
		out[i] = model.SaleItem{
			ProductName:         it.ProductName,
			Barcode:             it.Barcode,
			ProductCategory:     strings.ToUpper(category),
			Quantity:            it.Quantity,
			UnitPrice:           it.UnitPrice,
			VATRate:             it.VATRate,
			LineTotal:           it.LineTotal(),
			VATAmount:           it.VATAmount(),
			IsEligible:          !excluded[i],
			IneligibilityReason: reasons[i],
		}
	}
	return out
}
