package extraction

import (
	"fmt"
	"log/slog"
)

// confidence weight of each field; they sum to 1
const (
	merchantWeight = 0.20
	totalWeight    = 0.35
	taxWeight      = 0.10
	dateWeight     = 0.20
	itemsWeight    = 0.15
)

// Parser runs the five extractors over a receipt's text. It is safe for
// concurrent use.
type Parser struct {
	config   Config
	merchant *MerchantNameExtractor
	total    *TotalAmountExtractor
	tax      *TaxAmountExtractor
	date     *DateExtractor
	items    *LineItemExtractor
}

// NewParser creates a Parser using the system clock for the date fallback
func NewParser(cfg Config) (*Parser, error) {
	return NewParserWithClock(cfg, defaultTimeSource{})
}

// NewParserWithClock creates a Parser with a custom time source for testing
func NewParserWithClock(cfg Config, clock TimeSource) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.clone()
	return &Parser{
		config:   cfg,
		merchant: NewMerchantNameExtractor(cfg),
		total:    NewTotalAmountExtractor(),
		tax:      NewTaxAmountExtractor(),
		date:     NewDateExtractor(clock),
		items:    NewLineItemExtractor(cfg),
	}, nil
}

// Config returns a copy of the parser's configuration
func (p *Parser) Config() Config {
	return p.config.clone()
}

// Parse extracts a ReceiptData from text. It always returns a complete
// record; fields nothing matched carry their defaults and say so in
// Provenance.
func (p *Parser) Parse(text string) *ReceiptData {
	data := &ReceiptData{RawText: text}

	data.MerchantName, data.Provenance.MerchantName = p.merchant.Extract(text)
	data.TotalAmount, data.Provenance.TotalAmount = p.total.Extract(text)
	data.TaxAmount, data.Provenance.TaxAmount = p.tax.Extract(text)
	data.Date, data.Provenance.Date = p.date.Extract(text)

	data.Items = p.items.Extract(text)
	data.Provenance.Items = defaulted()
	if len(data.Items) > 0 {
		data.Provenance.Items = matched("NAME PRICE QTY")
	}

	data.Confidence = confidence(data.Provenance)

	slog.Debug("Parsed receipt text",
		"merchant", data.Provenance.MerchantName.Source,
		"total", data.Provenance.TotalAmount.Source,
		"tax", data.Provenance.TaxAmount.Source,
		"date", data.Provenance.Date.Source,
		"items", len(data.Items),
		"confidence", data.Confidence,
	)
	return data
}

// confidence scores how much of the record came from direct matches.
func confidence(p FieldProvenance) float64 {
	score := 0.0
	score += merchantWeight * sourceScore(p.MerchantName.Source)
	score += totalWeight * sourceScore(p.TotalAmount.Source)
	score += taxWeight * sourceScore(p.TaxAmount.Source)
	score += dateWeight * sourceScore(p.Date.Source)
	score += itemsWeight * sourceScore(p.Items.Source)

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func sourceScore(s Source) float64 {
	switch s {
	case SourceMatched:
		return 1
	case SourceInferred:
		return 0.5
	default:
		return 0
	}
}
