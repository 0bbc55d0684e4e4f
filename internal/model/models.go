package model

import (
	"time"
)

type RuleSet struct {
	ID                         string    `json:"id"`
	Version                    string    `json:"version"`
	Name                       string    `json:"name"`
	MinPurchaseAmount          float64   `json:"min_purchase_amount"`
	MinAge                     int       `json:"min_age"`
	ExitDeadlineMonths         int       `json:"exit_deadline_months"`
	ExcludedResidenceCountries []string  `json:"excluded_residence_countries"`
	ExcludedCategories         []string  `json:"excluded_categories"`
	DefaultVATRate             float64   `json:"default_vat_rate"`
	OperatorFeePercentage      float64   `json:"operator_fee_percentage"`
	OperatorFeeFixed           float64   `json:"operator_fee_fixed"`
	MinOperatorFee             float64   `json:"min_operator_fee"`
	RiskScoreThreshold         int       `json:"risk_score_threshold"`
	HighValueThreshold         float64   `json:"high_value_threshold"`
	IsActive                   bool      `json:"is_active"`
	CreatedAt                  time.Time `json:"created_at"`
}

type RiskRule struct {
	ID          string `json:"id"`
	RuleSetID   string `json:"ruleset_id"`
	Name        string `json:"name"`
	Field       string `json:"field"`
	Operator    string `json:"operator"`
	Value       any    `json:"value"`
	ScoreImpact int    `json:"score_impact"`
	IsActive    bool   `json:"is_active"`
}

type ProductCategory struct {
	ID                  string    `json:"id"`
	Code                string    `json:"code"`
	Name                string    `json:"name"`
	Icon                string    `json:"icon"`
	DefaultVATRate      float64   `json:"default_vat_rate"`
	IsEligibleByDefault bool      `json:"is_eligible_by_default"`
	IsActive            bool      `json:"is_active"`
	DisplayOrder        int       `json:"display_order"`
	CreatedAt           time.Time `json:"created_at"`
}

type Currency struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
	ExchangeRate   float64 `json:"exchange_rate"`
	IsBaseCurrency bool    `json:"is_base_currency"`
	IsActive       bool    `json:"is_active"`
}

type Traveler struct {
	ID                 string     `json:"id"`
	PassportNumber     string     `json:"passport_number"`
	PassportCountry    string     `json:"passport_country"`
	PassportIssueDate  *time.Time `json:"passport_issue_date,omitempty"`
	PassportExpiryDate time.Time  `json:"passport_expiry_date"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	DateOfBirth        time.Time  `json:"date_of_birth"`
	Nationality        string     `json:"nationality"`
	ResidenceCountry   string     `json:"residence_country"`
	Email              string     `json:"email,omitempty"`
	Phone              string     `json:"phone,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type SaleInvoice struct {
	ID            string    `json:"id"`
	MerchantID    string    `json:"merchant_id"`
	InvoiceNumber string    `json:"invoice_number"`
	InvoiceDate   time.Time `json:"invoice_date"`
	Currency      string    `json:"currency"`
	Subtotal      float64   `json:"subtotal"`
	TotalVAT      float64   `json:"total_vat"`
	TotalAmount   float64   `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

type SaleItem struct {
	ID                  string  `json:"id"`
	InvoiceID           string  `json:"invoice_id"`
	ProductName         string  `json:"product_name"`
	Barcode             string  `json:"barcode,omitempty"`
	ProductCategory     string  `json:"product_category"`
	Quantity            int     `json:"quantity"`
	UnitPrice           float64 `json:"unit_price"`
	VATRate             float64 `json:"vat_rate"`
	LineTotal           float64 `json:"line_total"`
	VATAmount           float64 `json:"vat_amount"`
	IsEligible          bool    `json:"is_eligible"`
	IneligibilityReason string  `json:"ineligibility_reason,omitempty"`
}

// Tax free form statuses. Only CREATED is assigned by this service; the rest
// belong to the customs and refund workflows downstream.
const (
	FormStatusCreated   = "CREATED"
	FormStatusIssued    = "ISSUED"
	FormStatusValidated = "VALIDATED"
	FormStatusRefunded  = "REFUNDED"
	FormStatusRefused   = "REFUSED"
	FormStatusExpired   = "EXPIRED"
	FormStatusCancelled = "CANCELLED"
)

type TaxFreeForm struct {
	ID              string         `json:"id"`
	FormNumber      string         `json:"form_number"`
	InvoiceID       string         `json:"invoice_id"`
	TravelerID      string         `json:"traveler_id"`
	Currency        string         `json:"currency"`
	EligibleAmount  float64        `json:"eligible_amount"`
	VATAmount       float64        `json:"vat_amount"`
	OperatorFee     float64        `json:"operator_fee"`
	RefundAmount    float64        `json:"refund_amount"`
	Status          string         `json:"status"`
	RuleSnapshot    map[string]any `json:"rule_snapshot"`
	RiskScore       int            `json:"risk_score"`
	RiskFlags       []string       `json:"risk_flags"`
	RequiresControl bool           `json:"requires_control"`
	ExpiresAt       time.Time      `json:"expires_at"`
	CreatedAt       time.Time      `json:"created_at"`
}
