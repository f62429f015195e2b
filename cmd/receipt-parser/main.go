package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/receipt-parser/internal/extraction"
	"github.com/zombor/receipt-parser/internal/receipt"
	"github.com/zombor/receipt-parser/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	defaults := extraction.DefaultConfig()

	fs := ff.NewFlagSet("receipt-parser")
	var (
		port              = fs.IntLong("port", 8080, "HTTP server port")
		cachePath         = fs.StringLong("cache", "receipt-parser.db", "Transcript cache file path (empty disables the cache)")
		recognizerType    = fs.StringLong("recognizer", "gemini", "Recognizer: 'gemini', 'ollama' or 'tesseract'")
		geminiKey         = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel       = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL         = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel       = fs.StringLong("ollama-model", "llava", "Ollama model name (e.g., llava, qwen2-vl)")
		tesseractLang     = fs.StringLong("tesseract-lang", "eng", "Tesseract language(s), e.g. eng or eng+fra")
		merchantMinLength = fs.IntLong("merchant-min-length", defaults.MerchantMinLength, "Merchant line must be longer than this")
		allowDigits       = fs.BoolLong("merchant-allow-digits", "Accept merchant lines containing digits")
		itemMinNameLength = fs.IntLong("item-min-name-length", defaults.ItemMinNameLength, "Item name must be longer than this")
		parseFile         = fs.StringLong("parse", "", "Parse a text file ('-' for stdin), print JSON and exit")
		showVersion       = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_PARSER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	cfg := defaults
	cfg.MerchantMinLength = *merchantMinLength
	cfg.MerchantRejectDigits = !*allowDigits
	cfg.ItemMinNameLength = *itemMinNameLength

	parser, err := extraction.NewParser(cfg)
	if err != nil {
		slog.Error("Failed to initialize parser", "error", err)
		os.Exit(1)
	}

	if *parseFile != "" {
		if err := parseOnce(parser, *parseFile, os.Stdout); err != nil {
			slog.Error("Failed to parse receipt text", "file", *parseFile, "error", err)
			os.Exit(1)
		}
		return
	}

	var cache receipt.TextCache
	if *cachePath != "" {
		slog.Info("Initializing transcript cache...", "path", *cachePath)
		boltCache, err := receipt.NewBoltCache(*cachePath)
		if err != nil {
			slog.Error("Failed to initialize cache", "error", err)
			os.Exit(1)
		}
		defer boltCache.Close()
		cache = boltCache
	}

	recognizer, err := newRecognizer(*recognizerType, *geminiKey, *geminiModel, *ollamaURL, *ollamaModel, *tesseractLang)
	if err != nil {
		slog.Error("Failed to initialize recognizer", "type", *recognizerType, "error", err)
		os.Exit(1)
	}
	defer recognizer.Close()

	server := receipt.NewServer(receipt.NewService(recognizer, parser, cache))

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "recognizer", *recognizerType)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}

func newRecognizer(kind, geminiKey, geminiModel, ollamaURL, ollamaModel, tesseractLang string) (scanning.Recognizer, error) {
	switch kind {
	case "gemini":
		if geminiKey == "" {
			geminiKey = os.Getenv("GEMINI_API_KEY")
		}
		if geminiKey == "" {
			return nil, fmt.Errorf("gemini API key is required: set --gemini-key or GEMINI_API_KEY")
		}
		slog.Info("Initializing Gemini recognizer...", "model", geminiModel)
		return scanning.NewGemini(geminiKey, geminiModel)
	case "ollama":
		slog.Info("Initializing Ollama recognizer...", "url", ollamaURL, "model", ollamaModel)
		return scanning.NewOllama(ollamaURL, ollamaModel)
	case "tesseract":
		slog.Info("Initializing Tesseract recognizer...", "language", tesseractLang)
		return scanning.NewTesseract(tesseractLang)
	default:
		return nil, fmt.Errorf("invalid recognizer type %q (valid: gemini, ollama, tesseract)", kind)
	}
}

// parseOnce parses the text in path ("-" for stdin) and writes the record as JSON
func parseOnce(parser *extraction.Parser, path string, out io.Writer) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(parser.Parse(string(data))); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}
