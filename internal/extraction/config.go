package extraction

import (
	"fmt"
	"time"
)

// Config holds the tunable thresholds of the extractors. It is copied into
// the Parser at construction and never modified afterwards.
type Config struct {
	// MerchantMinLength is the length a merchant line must exceed
	MerchantMinLength int
	// MerchantRejectDigits skips lines containing a digit (addresses, phones, prices)
	MerchantRejectDigits bool
	// ItemMinNameLength is the length an item name must exceed
	ItemMinNameLength int
	// ItemExcludedKeywords disqualify an item name when found anywhere in it, ignoring case
	ItemExcludedKeywords []string
}

// DefaultConfig returns the thresholds used when nothing is configured
func DefaultConfig() Config {
	return Config{
		MerchantMinLength:    3,
		MerchantRejectDigits: true,
		ItemMinNameLength:    2,
		ItemExcludedKeywords: []string{"TOTAL", "TAX", "SUBTOTAL"},
	}
}

// Validate checks the thresholds for nonsensical values
func (c Config) Validate() error {
	if c.MerchantMinLength < 0 {
		return fmt.Errorf("merchant min length must not be negative: %d", c.MerchantMinLength)
	}
	if c.ItemMinNameLength < 0 {
		return fmt.Errorf("item min name length must not be negative: %d", c.ItemMinNameLength)
	}
	return nil
}

func (c Config) clone() Config {
	c.ItemExcludedKeywords = append([]string(nil), c.ItemExcludedKeywords...)
	return c
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type defaultTimeSource struct{}

func (defaultTimeSource) Now() time.Time {
	return time.Now()
}
