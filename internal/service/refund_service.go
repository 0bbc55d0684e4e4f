package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/dto"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/repository"
)

type RefundService struct {
	formRepo     *repository.FormRepository
	currencyRepo *repository.CurrencyRepository
}

func NewRefundService(formRepo *repository.FormRepository, currencyRepo *repository.CurrencyRepository) *RefundService {
	return &RefundService{formRepo: formRepo, currencyRepo: currencyRepo}
}

// PayoutQuote converts a form's refund into the requested payout currency at
// the stored exchange rate. Refunds are computed and stored in CDF; the base
// currency converts at 1.
func (s *RefundService) PayoutQuote(ctx context.Context, formID, currencyCode string) (*dto.PayoutQuoteResponse, error) {
	form, err := s.formRepo.FindByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(currencyCode)
	if code == "" {
		code = "CDF"
	}

	currency, err := s.currencyRepo.FindActive(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("currency %s: %w", code, err)
	}

	rate := currency.ExchangeRate
	if currency.IsBaseCurrency {
		rate = 1
	}

	return &dto.PayoutQuoteResponse{
		FormNumber:      form.FormNumber,
		RefundAmountCDF: form.RefundAmount,
		PayoutCurrency:  currency.Code,
		ExchangeRate:    rate,
		PayoutAmount:    math.Round(form.RefundAmount*rate*100) / 100,
	}, nil
}
