package dto

import (
	"encoding/json"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/engine"
)

// CatalogCategory is one entry of an externally supplied category catalog.
// IsEligibleByDefault is a pointer so an omitted flag reads as eligible.
type CatalogCategory struct {
	Code                string `json:"code"`
	Name                string `json:"name"`
	Icon                string `json:"icon"`
	IsEligibleByDefault *bool  `json:"is_eligible_by_default"`
}

// NormalizeCatalog resolves the two wire shapes a catalog may arrive in - a
// bare array, or an object with a results field - into engine categories.
// Anything else normalizes to nil, which means "no dynamic catalog".
func NormalizeCatalog(raw json.RawMessage) []engine.Category {
	if len(raw) == 0 {
		return nil
	}

	var list []CatalogCategory
	if err := json.Unmarshal(raw, &list); err == nil {
		return toEngineCategories(list)
	}

	var wrapped struct {
		Results []CatalogCategory `json:"results"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return toEngineCategories(wrapped.Results)
	}

	return nil
}

func toEngineCategories(list []CatalogCategory) []engine.Category {
	if len(list) == 0 {
		return nil
	}
	out := make([]engine.Category, 0, len(list))
	for _, c := range list {
		if c.Code == "" {
			continue
		}
		eligible := true
		if c.IsEligibleByDefault != nil {
			eligible = *c.IsEligibleByDefault
		}
		out = append(out, engine.Category{
			Code:     c.Code,
			Label:    c.Name,
			Icon:     c.Icon,
			Eligible: eligible,
		})
	}
	return out
}
