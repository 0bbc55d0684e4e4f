package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/dto"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/engine"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/model"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/repository"
)

type QuoteService struct {
	rulesetRepo  *repository.RuleSetRepository
	categoryRepo *repository.CategoryRepository
}

func NewQuoteService(rulesetRepo *repository.RuleSetRepository, categoryRepo *repository.CategoryRepository) *QuoteService {
	return &QuoteService{rulesetRepo: rulesetRepo, categoryRepo: categoryRepo}
}

// Quote runs one full computation for a sale draft. The active ruleset and
// the category catalog load concurrently; request-level overrides replace
// either load. A missing active ruleset is not an error - the engine
// produces its degenerate pre-load result instead.
func (s *QuoteService) Quote(ctx context.Context, req *dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	var (
		rs      *engine.RuleSet
		catalog []engine.Category
	)

	if req.RuleSet != nil {
		rs = OverrideToRuleSet(req.RuleSet)
	}
	if len(req.Catalog) > 0 {
		catalog = dto.NormalizeCatalog(req.Catalog)
	}

	g, gctx := errgroup.WithContext(ctx)

	if req.RuleSet == nil {
		g.Go(func() error {
			row, riskRules, err := s.rulesetRepo.GetActive(gctx)
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			if err != nil {
				return err
			}
			rs = RuleSetFromModel(row, riskRules)
			return nil
		})
	}

	if len(req.Catalog) == 0 {
		g.Go(func() error {
			cats, err := s.categoryRepo.ListActive(gctx)
			if err != nil {
				return err
			}
			catalog = CatalogFromModels(cats)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := engine.Compute(engine.Input{
		Items:    ItemsFromRequest(req.Items, defaultVATRate(rs)),
		Traveler: travelerFromQuoteRequest(req.Traveler),
		RuleSet:  rs,
		Catalog:  catalog,
	})

	resp := QuoteResponseFromResult(result)
	if rs != nil {
		resp.RulesetVersion = rs.Version
	}
	return resp, nil
}

func defaultVATRate(rs *engine.RuleSet) float64 {
	if rs == nil {
		return engine.DefaultVATRate
	}
	return rs.DefaultVATRate
}

func travelerFromQuoteRequest(t *dto.QuoteTravelerRequest) engine.Traveler {
	if t == nil {
		return engine.Traveler{}
	}
	out := engine.Traveler{
		FirstName:        t.FirstName,
		LastName:         t.LastName,
		Nationality:      t.Nationality,
		ResidenceCountry: t.ResidenceCountry,
	}
	if t.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", t.DateOfBirth); err == nil {
			out.DateOfBirth = dob
		}
	}
	return out
}

// ItemsFromRequest maps request lines to engine lines, applying the ruleset
// default VAT rate to lines that omit theirs.
func ItemsFromRequest(items []dto.LineItemRequest, vatDefault float64) []engine.LineItem {
	out := make([]engine.LineItem, len(items))
	for i, it := range items {
		rate := vatDefault
		if it.VATRate != nil {
			rate = *it.VATRate
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		out[i] = engine.LineItem{
			ProductName: it.ProductName,
			Barcode:     it.Barcode,
			Category:    it.ProductCategory,
			Quantity:    qty,
			UnitPrice:   it.UnitPrice,
			VATRate:     rate,
		}
	}
	return out
}

// OverrideToRuleSet normalizes a request-level ruleset override, defaulting
// every absent or unparseable field.
func OverrideToRuleSet(o *dto.RuleSetOverride) *engine.RuleSet {
	rs := &engine.RuleSet{
		Version:                    "override",
		MinPurchaseAmount:          o.MinPurchaseAmount.Or(engine.DefaultMinPurchaseAmount),
		MinAge:                     engine.DefaultMinAge,
		ExcludedResidenceCountries: o.ExcludedResidenceCountries,
		ExcludedCategories:         o.ExcludedCategories,
		DefaultVATRate:             o.DefaultVATRate.Or(engine.DefaultVATRate),
		OperatorFeePercentage:      o.OperatorFeePercentage.Or(engine.DefaultFeePercentage),
		OperatorFeeFixed:           o.OperatorFeeFixed.Or(engine.DefaultFeeFixed),
		MinOperatorFee:             o.MinOperatorFee.Or(engine.DefaultMinOperatorFee),
		ExitDeadlineMonths:         engine.DefaultExitDeadlineMonths,
		RiskScoreThreshold:         engine.DefaultRiskScoreThreshold,
		HighValueThreshold:         engine.DefaultHighValueThreshold,
	}
	if o.MinAge != nil && *o.MinAge >= 0 {
		rs.MinAge = *o.MinAge
	}
	return rs
}

// RuleSetFromModel converts a stored ruleset row into the engine snapshot.
func RuleSetFromModel(row *model.RuleSet, riskRules []model.RiskRule) *engine.RuleSet {
	rs := &engine.RuleSet{
		ID:                         row.ID,
		Version:                    row.Version,
		MinPurchaseAmount:          row.MinPurchaseAmount,
		MinAge:                     row.MinAge,
		ExcludedResidenceCountries: row.ExcludedResidenceCountries,
		ExcludedCategories:         row.ExcludedCategories,
		DefaultVATRate:             row.DefaultVATRate,
		OperatorFeePercentage:      row.OperatorFeePercentage,
		OperatorFeeFixed:           row.OperatorFeeFixed,
		MinOperatorFee:             row.MinOperatorFee,
		ExitDeadlineMonths:         row.ExitDeadlineMonths,
		RiskScoreThreshold:         row.RiskScoreThreshold,
		HighValueThreshold:         row.HighValueThreshold,
	}
	for _, rr := range riskRules {
		rs.RiskRules = append(rs.RiskRules, engine.RiskRule{
			Name:        rr.Name,
			Field:       rr.Field,
			Operator:    rr.Operator,
			Value:       rr.Value,
			ScoreImpact: rr.ScoreImpact,
			Active:      rr.IsActive,
		})
	}
	return rs
}

func CatalogFromModels(cats []model.ProductCategory) []engine.Category {
	out := make([]engine.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, engine.Category{
			Code:     c.Code,
			Label:    c.Name,
			Icon:     c.Icon,
			Eligible: c.IsEligibleByDefault,
		})
	}
	return out
}

// QuoteResponseFromResult flattens an engine result into the wire shape.
func QuoteResponseFromResult(res engine.Result) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		Eligible:         breakdownResponses(res.Eligible),
		Excluded:         breakdownResponses(res.Excluded),
		TotalHT:          res.TotalHT,
		TotalVAT:         res.TotalVAT,
		TotalTTC:         res.TotalTTC,
		EligibleHT:       res.EligibleHT,
		EligibleVAT:      res.EligibleVAT,
		ExcludedVAT:      res.ExcludedVAT,
		OperatorFee:      res.OperatorFee,
		RefundAmount:     res.RefundAmount,
		FeePercentage:    res.FeePercentage,
		MinOperatorFee:   res.MinFee,
		ValidationErrors: res.ValidationErrors,
		RefundValidation: dto.FeasibilityResponse{
			IsValid: res.Feasibility.Valid,
			Message: res.Feasibility.Message,
		},
		Submittable: res.Submittable(),
	}
	if resp.ValidationErrors == nil {
		resp.ValidationErrors = []string{}
	}
	return resp
}

func breakdownResponses(entries []engine.ItemBreakdown) []dto.ItemBreakdownResponse {
	out := make([]dto.ItemBreakdownResponse, len(entries))
	for i, e := range entries {
		category := e.Item.Category
		if category == "" {
			category = "GENERAL"
		}
		out[i] = dto.ItemBreakdownResponse{
			ProductName:     e.Item.ProductName,
			Barcode:         e.Item.Barcode,
			ProductCategory: category,
			CategoryLabel:   e.CategoryLabel,
			Quantity:        e.Item.Quantity,
			UnitPrice:       e.Item.UnitPrice,
			VATRate:         e.Item.VATRate,
			LineTotal:       e.LineTotal,
			HTAmount:        e.HT,
			VATAmount:       e.VAT,
			Reason:          e.Reason,
		}
	}
	return out
}
