package extraction

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountRule pairs a label with a pattern whose first group captures an amount
type AmountRule struct {
	Label   string
	Pattern *regexp.Regexp
}

// amountCapture is the shared "digits with grouping commas and two decimals" group.
const amountCapture = `([\d,]+\.\d{2})`

func labeledAmount(label string) AmountRule {
	return AmountRule{
		Label:   label,
		Pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(label) + `\s*\$?` + amountCapture),
	}
}

// parseAmount strips grouping separators and parses the rest exactly.
func parseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// firstRuleMatch tries rules in order against the whole text. Only the first
// match of each rule counts; a capture that does not parse moves on to the
// next rule.
func firstRuleMatch(rules []AmountRule, text string) (decimal.Decimal, string, bool) {
	for _, rule := range rules {
		m := rule.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if amount, ok := parseAmount(m[1]); ok {
			return amount, rule.Label, true
		}
	}
	return decimal.Zero, "", false
}
