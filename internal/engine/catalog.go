package engine

import "strings"

// Category is one entry of the product category catalog, either loaded
// dynamically from the rule service or taken from the static fallback table.
type Category struct {
	Code     string
	Label    string
	Icon     string
	Eligible bool
}

// staticCategories is the built-in catalog used when no dynamic catalog is
// available. Content is fixed; FOOD is the only statically listed category
// that is not refund-eligible (TOBACCO and SERVICES are handled by the
// default exclusion set).
var staticCategories = []Category{
	{Code: "GENERAL", Label: "Marchandises générales", Icon: "📦", Eligible: true},
	{Code: "ELECTRONICS", Label: "Électronique", Icon: "📱", Eligible: true},
	{Code: "CLOTHING", Label: "Vêtements & Accessoires", Icon: "👕", Eligible: true},
	{Code: "JEWELRY", Label: "Bijoux & Montres", Icon: "💎", Eligible: true},
	{Code: "COSMETICS", Label: "Cosmétiques & Parfums", Icon: "💄", Eligible: true},
	{Code: "FOOD", Label: "Alimentation & Boissons", Icon: "🍎", Eligible: false},
	{Code: "OTHER", Label: "Autre", Icon: "🛍️", Eligible: true},
}

// defaultExcludedCategories is the last resort when neither the catalog nor
// the ruleset declares exclusions.
var defaultExcludedCategories = []string{"SERVICES", "FOOD", "TOBACCO"}

// StaticCategories returns a copy of the fallback catalog.
func StaticCategories() []Category {
	out := make([]Category, len(staticCategories))
	copy(out, staticCategories)
	return out
}

// ResolveCatalog picks the catalog all lookups run against: the dynamic one
// when it has entries, the static table otherwise.
func ResolveCatalog(dynamic []Category) []Category {
	if len(dynamic) > 0 {
		return dynamic
	}
	return StaticCategories()
}

// isCategoryEligible reports whether a category code is refund-eligible in
// the resolved catalog. Unknown codes are not pre-excluded here; the
// ruleset-level exclusion set still applies to them. Classification runs
// through ExcludedCategorySet; this is a per-code spot check.
func isCategoryEligible(catalog []Category, code string) bool {
	for _, c := range catalog {
		if strings.EqualFold(c.Code, code) {
			return c.Eligible
		}
	}
	return true
}

// LabelFor returns the display label for a code, falling back to the code
// itself for categories the catalog does not know.
func LabelFor(catalog []Category, code string) string {
	for _, c := range catalog {
		if strings.EqualFold(c.Code, code) {
			return c.Label
		}
	}
	return code
}

// excludedSetProvider yields one candidate exclusion set, or nil when its
// source has nothing to say.
type excludedSetProvider func() []string

// ExcludedCategorySet resolves which category codes are excluded from refund.
// Providers are consulted in order and the first non-empty answer wins; the
// sources never merge. Only the dynamic catalog participates, so an absent
// catalog falls through to the ruleset list and then the built-in set rather
// than being shadowed by the static fallback table.
func ExcludedCategorySet(dynamic []Category, rs *RuleSet) map[string]struct{} {
	providers := []excludedSetProvider{
		func() []string {
			var codes []string
			for _, c := range dynamic {
				if !c.Eligible {
					codes = append(codes, c.Code)
				}
			}
			return codes
		},
		func() []string {
			if rs == nil {
				return nil
			}
			return rs.ExcludedCategories
		},
		func() []string {
			return defaultExcludedCategories
		},
	}

	for _, provide := range providers {
		if codes := provide(); len(codes) > 0 {
			set := make(map[string]struct{}, len(codes))
			for _, code := range codes {
				set[strings.ToUpper(code)] = struct{}{}
			}
			return set
		}
	}
	return map[string]struct{}{}
}
