package extraction

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// LargestAmountRule is the provenance label of the total fallback tier
const LargestAmountRule = "LARGEST AMOUNT"

var anyAmountPattern = regexp.MustCompile(amountCapture)

// TotalRules returns the labeled total rules in priority order
func TotalRules() []AmountRule {
	return []AmountRule{
		labeledAmount("TOTAL"),
		labeledAmount("AMOUNT"),
		labeledAmount("GRAND TOTAL"),
		{
			Label:   "TRAILING CURRENCY",
			Pattern: regexp.MustCompile(`(?m)\$` + amountCapture + `\s*$`),
		},
	}
}

// TotalAmountExtractor finds the receipt total. Labeled rules are tried
// first; when none matches, the largest amount anywhere in the text is used.
type TotalAmountExtractor struct {
	rules []AmountRule
}

// NewTotalAmountExtractor creates a TotalAmountExtractor with TotalRules
func NewTotalAmountExtractor() *TotalAmountExtractor {
	return &TotalAmountExtractor{rules: TotalRules()}
}

// Extract returns the total, or zero when the text holds no amount at all
func (e *TotalAmountExtractor) Extract(text string) (decimal.Decimal, Provenance) {
	if amount, label, ok := firstRuleMatch(e.rules, text); ok {
		return amount, matched(label)
	}

	largest := decimal.Zero
	found := false
	for _, token := range anyAmountPattern.FindAllString(text, -1) {
		amount, ok := parseAmount(token)
		if !ok {
			continue
		}
		// strictly greater keeps the first occurrence on ties
		if !found || amount.GreaterThan(largest) {
			largest = amount
			found = true
		}
	}
	if !found {
		return decimal.Zero, defaulted()
	}
	return largest, inferred(LargestAmountRule)
}
