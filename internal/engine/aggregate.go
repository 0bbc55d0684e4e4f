package engine

import (
	"fmt"
	"strings"
)

// LineItem is one purchased line as entered at the point of sale. Unit prices
// are VAT-inclusive, as printed on the receipt; the VAT share is extracted
// from the rate rather than added on top.
type LineItem struct {
	ProductName string
	Barcode     string
	Category    string
	Quantity    int
	UnitPrice   float64
	VATRate     float64
}

// LineTotal is quantity times unit price. Quantity is floored at 1 and a
// negative price counts as zero, so a half-filled row still aggregates
// instead of poisoning the totals.
func (it LineItem) LineTotal() float64 {
	qty := it.Quantity
	if qty < 1 {
		qty = 1
	}
	price := it.UnitPrice
	if price < 0 {
		price = 0
	}
	return round2(float64(qty) * price)
}

// VATAmount extracts the VAT share contained in the line total at this
// line's own rate: total × rate / (100 + rate).
func (it LineItem) VATAmount() float64 {
	rate := it.VATRate
	if rate <= 0 {
		return 0
	}
	return round2(it.LineTotal() * rate / (100 + rate))
}

// ItemBreakdown is one classified line with its derived amounts. Index is the
// line's position in the input slice; Reason is set only on excluded entries.
type ItemBreakdown struct {
	Index         int
	Item          LineItem
	CategoryLabel string
	LineTotal     float64
	HT            float64
	VAT           float64
	Reason        string
}

// Aggregation partitions the sale into eligible and excluded lines and
// carries every total the rest of the computation needs.
type Aggregation struct {
	Eligible []ItemBreakdown
	Excluded []ItemBreakdown

	TotalHT  float64
	TotalVAT float64
	TotalTTC float64

	EligibleHT  float64
	EligibleVAT float64
	ExcludedVAT float64
}

// Aggregate classifies items against the excluded-category set in a single
// pass. Order within each bucket matches input order.
func Aggregate(items []LineItem, excluded map[string]struct{}, catalog []Category) Aggregation {
	var agg Aggregation

	for i, it := range items {
		code := it.Category
		if code == "" {
			code = "GENERAL"
		}

		lineTotal := it.LineTotal()
		vat := it.VATAmount()
		label := LabelFor(catalog, code)

		entry := ItemBreakdown{
			Index:         i,
			Item:          it,
			CategoryLabel: label,
			LineTotal:     lineTotal,
			HT:            round2(lineTotal - vat),
			VAT:           vat,
		}

		agg.TotalTTC = round2(agg.TotalTTC + lineTotal)
		agg.TotalVAT = round2(agg.TotalVAT + vat)
		agg.TotalHT = round2(agg.TotalHT + entry.HT)

		if _, isExcluded := excluded[strings.ToUpper(code)]; isExcluded {
			entry.Reason = fmt.Sprintf("Category %q not eligible for refund", label)
			agg.ExcludedVAT = round2(agg.ExcludedVAT + vat)
			agg.Excluded = append(agg.Excluded, entry)
			continue
		}

		agg.EligibleHT = round2(agg.EligibleHT + entry.HT)
		agg.EligibleVAT = round2(agg.EligibleVAT + vat)
		agg.Eligible = append(agg.Eligible, entry)
	}

	return agg
}
