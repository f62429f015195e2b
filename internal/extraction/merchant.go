package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var digitPattern = regexp.MustCompile(`\d`)

// MerchantNameExtractor picks the merchant from the top of the receipt: the
// first line without digits that is long enough to be a name.
type MerchantNameExtractor struct {
	minLength    int
	rejectDigits bool
}

// NewMerchantNameExtractor creates a MerchantNameExtractor from cfg
func NewMerchantNameExtractor(cfg Config) *MerchantNameExtractor {
	return &MerchantNameExtractor{
		minLength:    cfg.MerchantMinLength,
		rejectDigits: cfg.MerchantRejectDigits,
	}
}

// Extract returns the merchant name, or UnknownMerchant
func (e *MerchantNameExtractor) Extract(text string) (string, Provenance) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if e.rejectDigits && digitPattern.MatchString(line) {
			continue
		}
		if utf8.RuneCountInString(line) <= e.minLength {
			continue
		}
		return line, matched("FIRST TEXT LINE")
	}
	return UnknownMerchant, defaulted()
}
