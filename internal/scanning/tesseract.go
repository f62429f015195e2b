//go:build ocr

package scanning

import (
	"context"
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract implements the Recognizer interface with a local Tesseract
// engine. It needs the tesseract libraries at build and run time.
type Tesseract struct {
	mu     sync.Mutex // gosseract clients are not safe for concurrent use
	client *gosseract.Client
}

// NewTesseract creates a Tesseract recognizer for the given language(s),
// e.g. "eng" or "eng+fra".
func NewTesseract(language string) (*Tesseract, error) {
	if language == "" {
		language = "eng"
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting tesseract language: %w", err)
	}
	// receipts are a single column of text
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_COLUMN); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting page segmentation mode: %w", err)
	}
	return &Tesseract{client: client}, nil
}

// RecognizeText runs OCR over the receipt image
func (t *Tesseract) RecognizeText(ctx context.Context, imageData []byte, contentType string) (string, error) {
	pngData, err := toPNG(imageData, contentType)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.client.SetImageFromBytes(pngData); err != nil {
		return "", fmt.Errorf("setting tesseract image: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("running tesseract: %w", err)
	}

	transcript, err := cleanTranscript(text)
	if err != nil {
		return "", fmt.Errorf("reading tesseract output: %w", err)
	}
	return transcript, nil
}

// Close releases the Tesseract engine
func (t *Tesseract) Close() error {
	return t.client.Close()
}
