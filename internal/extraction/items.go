package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// itemPattern reads "NAME PRICE [x QTY]".
var itemPattern = regexp.MustCompile(`(.+?)\s+` + amountCapture + `\s*x?\s*(\d+)?`)

// LineItemExtractor reads one purchased item per line
type LineItemExtractor struct {
	minNameLength int
	excluded      []string // upper-cased
}

// NewLineItemExtractor creates a LineItemExtractor from cfg
func NewLineItemExtractor(cfg Config) *LineItemExtractor {
	excluded := make([]string, 0, len(cfg.ItemExcludedKeywords))
	for _, kw := range cfg.ItemExcludedKeywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			excluded = append(excluded, strings.ToUpper(kw))
		}
	}
	return &LineItemExtractor{
		minNameLength: cfg.ItemMinNameLength,
		excluded:      excluded,
	}
}

// Extract returns the items in line order. Lines that do not look like an
// item are skipped.
func (e *LineItemExtractor) Extract(text string) []ReceiptItem {
	items := make([]ReceiptItem, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if item, ok := e.parseLine(line); ok {
			items = append(items, item)
		}
	}
	return items
}

func (e *LineItemExtractor) parseLine(line string) (ReceiptItem, bool) {
	m := itemPattern.FindStringSubmatch(line)
	if m == nil {
		return ReceiptItem{}, false
	}

	name := strings.TrimSpace(m[1])
	if utf8.RuneCountInString(name) <= e.minNameLength || e.isSummaryLine(name) {
		return ReceiptItem{}, false
	}

	price, ok := parseAmount(m[2])
	if !ok {
		return ReceiptItem{}, false
	}

	quantity := 1
	if m[3] != "" {
		q, err := strconv.Atoi(m[3])
		if err != nil {
			return ReceiptItem{}, false
		}
		if q > 0 {
			quantity = q
		}
	}

	return ReceiptItem{Name: name, UnitPrice: price, Quantity: quantity}, true
}

func (e *LineItemExtractor) isSummaryLine(name string) bool {
	upper := strings.ToUpper(name)
	for _, kw := range e.excluded {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}
