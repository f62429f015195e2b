package extraction

import "github.com/shopspring/decimal"

// TaxRules returns the labeled tax rules in priority order
func TaxRules() []AmountRule {
	return []AmountRule{
		labeledAmount("TAX"),
		labeledAmount("SALES TAX"),
		labeledAmount("VAT"),
	}
}

// TaxAmountExtractor finds the tax amount. Unlike the total there is no
// fallback: an unlabeled number cannot be told apart from any other.
type TaxAmountExtractor struct {
	rules []AmountRule
}

// NewTaxAmountExtractor creates a TaxAmountExtractor with TaxRules
func NewTaxAmountExtractor() *TaxAmountExtractor {
	return &TaxAmountExtractor{rules: TaxRules()}
}

// Extract returns the labeled tax amount, or zero
func (e *TaxAmountExtractor) Extract(text string) (decimal.Decimal, Provenance) {
	if amount, label, ok := firstRuleMatch(e.rules, text); ok {
		return amount, matched(label)
	}
	return decimal.Zero, defaulted()
}
