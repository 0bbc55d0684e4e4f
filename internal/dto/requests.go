package dto

import (
	"encoding/json"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/model"
)

type LineItemRequest struct {
	ProductName     string   `json:"product_name" binding:"required"`
	Barcode         string   `json:"barcode"`
	ProductCategory string   `json:"product_category"`
	Quantity        int      `json:"quantity" binding:"omitempty,gte=0"`
	UnitPrice       float64  `json:"unit_price" binding:"omitempty,gte=0"`
	VATRate         *float64 `json:"vat_rate" binding:"omitempty,gte=0"`
}

// QuoteTravelerRequest carries whatever traveler fields are already captured.
// Everything is optional at quote time; checks on absent fields are skipped.
type QuoteTravelerRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	DateOfBirth      string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Nationality      string `json:"nationality"`
	ResidenceCountry string `json:"residence_country"`
}

// RuleSetOverride lets an operator simulate a quote against ad hoc rules.
// Numeric fields are parsed leniently (number or string); anything missing or
// unparseable takes the rule default.
type RuleSetOverride struct {
	MinPurchaseAmount          model.Amount `json:"min_purchase_amount"`
	MinAge                     *int         `json:"min_age"`
	ExcludedResidenceCountries []string     `json:"excluded_residence_countries"`
	ExcludedCategories         []string     `json:"excluded_categories"`
	DefaultVATRate             model.Amount `json:"default_vat_rate"`
	OperatorFeePercentage      model.Amount `json:"operator_fee_percentage"`
	OperatorFeeFixed           model.Amount `json:"operator_fee_fixed"`
	MinOperatorFee             model.Amount `json:"min_operator_fee"`
}

type CreateQuoteRequest struct {
	Items    []LineItemRequest     `json:"items" binding:"required,min=1,max=100,dive"`
	Traveler *QuoteTravelerRequest `json:"traveler"`

	// Optional overrides; when absent the active ruleset and catalog are used.
	RuleSet *RuleSetOverride `json:"ruleset"`
	Catalog json.RawMessage  `json:"catalog"`
}

// TravelerRequest is the full identity block required at submission time.
// Email and phone stay optional.
type TravelerRequest struct {
	PassportNumber     string `json:"passport_number" binding:"required"`
	PassportCountry    string `json:"passport_country" binding:"required,len=2"`
	PassportIssueDate  string `json:"passport_issue_date" binding:"omitempty,datetime=2006-01-02"`
	PassportExpiryDate string `json:"passport_expiry_date" binding:"required,datetime=2006-01-02"`
	FirstName          string `json:"first_name" binding:"required"`
	LastName           string `json:"last_name" binding:"required"`
	DateOfBirth        string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Nationality        string `json:"nationality" binding:"required,len=2"`
	ResidenceCountry   string `json:"residence_country" binding:"required,len=2"`
	Email              string `json:"email" binding:"omitempty,email"`
	Phone              string `json:"phone"`
}

type CreateSaleRequest struct {
	MerchantID    string            `json:"merchant_id" binding:"required"`
	InvoiceNumber string            `json:"invoice_number" binding:"required"`
	InvoiceDate   string            `json:"invoice_date" binding:"required,datetime=2006-01-02"`
	Currency      string            `json:"currency"`
	Items         []LineItemRequest `json:"items" binding:"required,min=1,max=100,dive"`
	Traveler      TravelerRequest   `json:"traveler" binding:"required"`
}
