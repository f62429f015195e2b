// Package extraction turns recognized receipt text into a structured record.
//
// Each field is produced by an independent extractor that walks an ordered
// list of rules. Extraction never fails: when no rule fires the field gets a
// default value and its Provenance says so.
package extraction

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// UnknownMerchant is the merchant name used when no line qualifies.
const UnknownMerchant = "Unknown Merchant"

// DateLayout is the JSON form of ReceiptData.Date
const DateLayout = "2006-01-02"

// Source describes how a field value was obtained
type Source string

const (
	// SourceMatched means a rule matched the text directly
	SourceMatched Source = "matched"
	// SourceInferred means a fallback heuristic produced the value
	SourceInferred Source = "inferred"
	// SourceDefault means nothing matched and the default was used
	SourceDefault Source = "default"
)

// Provenance records where a single field came from
type Provenance struct {
	Source Source `json:"source"`
	Rule   string `json:"rule,omitempty"` // label of the rule that fired, if any
}

func matched(rule string) Provenance { return Provenance{Source: SourceMatched, Rule: rule} }
func inferred(rule string) Provenance { return Provenance{Source: SourceInferred, Rule: rule} }
func defaulted() Provenance { return Provenance{Source: SourceDefault} }

// FieldProvenance holds the provenance of every extracted field
type FieldProvenance struct {
	MerchantName Provenance `json:"merchant_name"`
	TotalAmount  Provenance `json:"total_amount"`
	TaxAmount    Provenance `json:"tax_amount"`
	Date         Provenance `json:"date"`
	Items        Provenance `json:"items"`
}

// ReceiptItem is one purchased line
type ReceiptItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// ReceiptData is the result of parsing one receipt
type ReceiptData struct {
	MerchantName string          `json:"merchant_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Date         time.Time       `json:"date"` // calendar date at midnight UTC, encoded as DateLayout
	Items        []ReceiptItem   `json:"items"`
	RawText      string          `json:"raw_text"`
	Confidence   float64         `json:"confidence"`
	Provenance   FieldProvenance `json:"provenance"`
}

// DateWasInferred reports whether Date is the current-date fallback rather
// than a date read from the text.
func (r *ReceiptData) DateWasInferred() bool {
	return r.Provenance.Date.Source != SourceMatched
}

// receiptJSON has ReceiptData's fields without its methods
type receiptJSON ReceiptData

// MarshalJSON encodes Date as a calendar date rather than a timestamp.
func (r ReceiptData) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		receiptJSON
		Date string `json:"date"`
	}{receiptJSON(r), r.Date.Format(DateLayout)})
}

// UnmarshalJSON reads the form written by MarshalJSON
func (r *ReceiptData) UnmarshalJSON(b []byte) error {
	var aux struct {
		receiptJSON
		Date string `json:"date"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = ReceiptData(aux.receiptJSON)
	if aux.Date == "" {
		return nil
	}
	date, err := time.Parse(DateLayout, aux.Date)
	if err != nil {
		return fmt.Errorf("parsing receipt date: %w", err)
	}
	r.Date = date
	return nil
}
