package scanning

import (
	"context"
	"errors"
)

// ErrEmptyTranscript is returned when a recognizer produced no text
var ErrEmptyTranscript = errors.New("recognizer returned no text")

// Recognizer turns a receipt image into its text
type Recognizer interface {
	// RecognizeText reads all text from an image or PDF
	RecognizeText(ctx context.Context, imageData []byte, contentType string) (string, error)
	// Close releases resources held by the recognizer
	Close() error
}
