package receipt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zombor/receipt-parser/internal/extraction"
	"github.com/zombor/receipt-parser/internal/scanning"
)

// ErrEmptyImage is returned when a scan is requested without image data
var ErrEmptyImage = errors.New("image data is empty")

// Service recognizes receipt images and parses their text
type Service struct {
	recognizer scanning.Recognizer
	parser     *extraction.Parser
	cache      TextCache
}

// NewService creates a new Service. recognizer and cache may be nil: without a
// recognizer only text can be parsed, without a cache every scan hits the
// recognizer.
func NewService(recognizer scanning.Recognizer, parser *extraction.Parser, cache TextCache) *Service {
	if cache == nil {
		cache = noCache{}
	}
	return &Service{
		recognizer: recognizer,
		parser:     parser,
		cache:      cache,
	}
}

// ParseText parses already recognized receipt text
func (s *Service) ParseText(text string) *extraction.ReceiptData {
	return s.parser.Parse(text)
}

// ScanReceipt recognizes the text of a receipt image and parses it. The
// transcript is cached by image content so rescanning the same file does not
// call the recognizer again.
func (s *Service) ScanReceipt(ctx context.Context, data []byte, contentType string) (*extraction.ReceiptData, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if s.recognizer == nil {
		return nil, fmt.Errorf("no recognizer configured")
	}

	key := ImageKey(data)
	text, found, err := s.cache.Get(key)
	if err != nil {
		slog.Warn("Failed to read transcript cache", "key", key, "error", err)
	}

	if !found {
		text, err = s.recognizer.RecognizeText(ctx, data, contentType)
		if err != nil {
			slog.Error("Failed to recognize receipt",
				"content_type", contentType,
				"file_size", len(data),
				"error", err,
			)
			return nil, fmt.Errorf("recognizing receipt: %w", err)
		}
		if err := s.cache.Put(key, text); err != nil {
			slog.Warn("Failed to cache transcript", "key", key, "error", err)
		}
	} else {
		slog.Debug("Transcript cache hit", "key", key)
	}

	return s.parser.Parse(text), nil
}
