package dto

import (
	"time"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/model"
)

// ItemBreakdownResponse is one classified line of a quote.
type ItemBreakdownResponse struct {
	ProductName     string  `json:"product_name"`
	Barcode         string  `json:"barcode,omitempty"`
	ProductCategory string  `json:"product_category"`
	CategoryLabel   string  `json:"category_label"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	VATRate         float64 `json:"vat_rate"`
	LineTotal       float64 `json:"line_total"`
	HTAmount        float64 `json:"ht_amount"`
	VATAmount       float64 `json:"vat_amount"`
	Reason          string  `json:"reason,omitempty"`
}

// FeasibilityResponse mirrors the refund feasibility gate, reported
// separately from eligibility validation.
type FeasibilityResponse struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message,omitempty"`
}

// QuoteResponse is the full computation result for a sale draft.
type QuoteResponse struct {
	Eligible []ItemBreakdownResponse `json:"eligible"`
	Excluded []ItemBreakdownResponse `json:"excluded"`

	TotalHT  float64 `json:"total_ht"`
	TotalVAT float64 `json:"total_vat"`
	TotalTTC float64 `json:"total_ttc"`

	EligibleHT  float64 `json:"eligible_ht"`
	EligibleVAT float64 `json:"eligible_vat"`
	ExcludedVAT float64 `json:"excluded_vat"`

	OperatorFee    float64 `json:"operator_fee"`
	RefundAmount   float64 `json:"refund_amount"`
	FeePercentage  float64 `json:"fee_percentage"`
	MinOperatorFee float64 `json:"min_operator_fee"`

	ValidationErrors []string            `json:"validation_errors"`
	RefundValidation FeasibilityResponse `json:"refund_validation"`
	Submittable      bool                `json:"submittable"`

	RulesetVersion string `json:"ruleset_version,omitempty"`
}

// SaleRejectedResponse is returned when the submission gate blocks a sale.
// The two failure channels stay separate so the UI can render them apart.
type SaleRejectedResponse struct {
	Error            string              `json:"error"`
	ValidationErrors []string            `json:"validation_errors"`
	RefundValidation FeasibilityResponse `json:"refund_validation"`
}

type FormResponse struct {
	ID              string         `json:"id"`
	FormNumber      string         `json:"form_number"`
	Status          string         `json:"status"`
	Currency        string         `json:"currency"`
	EligibleAmount  float64        `json:"eligible_amount"`
	VATAmount       float64        `json:"vat_amount"`
	OperatorFee     float64        `json:"operator_fee"`
	RefundAmount    float64        `json:"refund_amount"`
	RiskScore       int            `json:"risk_score"`
	RiskFlags       []string       `json:"risk_flags"`
	RequiresControl bool           `json:"requires_control"`
	RuleSnapshot    map[string]any `json:"rule_snapshot,omitempty"`
	ExpiresAt       time.Time      `json:"expires_at"`
	CreatedAt       time.Time      `json:"created_at"`
}

func NewFormResponse(f *model.TaxFreeForm) FormResponse {
	return FormResponse{
		ID:              f.ID,
		FormNumber:      f.FormNumber,
		Status:          f.Status,
		Currency:        f.Currency,
		EligibleAmount:  f.EligibleAmount,
		VATAmount:       f.VATAmount,
		OperatorFee:     f.OperatorFee,
		RefundAmount:    f.RefundAmount,
		RiskScore:       f.RiskScore,
		RiskFlags:       f.RiskFlags,
		RequiresControl: f.RequiresControl,
		RuleSnapshot:    f.RuleSnapshot,
		ExpiresAt:       f.ExpiresAt,
		CreatedAt:       f.CreatedAt,
	}
}

type PayoutQuoteResponse struct {
	FormNumber      string  `json:"form_number"`
	RefundAmountCDF float64 `json:"refund_amount_cdf"`
	PayoutCurrency  string  `json:"payout_currency"`
	ExchangeRate    float64 `json:"exchange_rate"`
	PayoutAmount    float64 `json:"payout_amount"`
}

type CategoryResponse struct {
	Code                string `json:"code"`
	Name                string `json:"name"`
	Icon                string `json:"icon"`
	IsEligibleByDefault bool   `json:"is_eligible_by_default"`
}

type ErrorListResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
