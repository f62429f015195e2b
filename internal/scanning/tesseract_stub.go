//go:build !ocr

package scanning

import (
	"context"
	"errors"
)

// ErrOCRNotEnabled is returned when Tesseract support was not compiled in.
// Rebuild with -tags ocr (requires libtesseract) to enable it.
var ErrOCRNotEnabled = errors.New("tesseract support not enabled; rebuild with -tags ocr")

// Tesseract is unavailable in this build
type Tesseract struct{}

// NewTesseract always fails without the ocr build tag
func NewTesseract(language string) (*Tesseract, error) {
	return nil, ErrOCRNotEnabled
}

// RecognizeText always fails without the ocr build tag
func (t *Tesseract) RecognizeText(ctx context.Context, imageData []byte, contentType string) (string, error) {
	return "", ErrOCRNotEnabled
}

// Close is a no-op
func (t *Tesseract) Close() error {
	return nil
}
