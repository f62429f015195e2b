package receipt

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	maxTextSize   = 1 << 20  // 1MB of text is far more than any receipt
	maxUploadSize = 50 << 20 // high-resolution phone photos
)

// dataURIPrefix matches the "data:image/png;base64," header browsers put on encoded images
var dataURIPrefix = regexp.MustCompile(`^data:(image/[^;]*);base64,`)

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeError writes a JSON error body
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// handleParseText parses text sent as JSON {"text": ...} or as a plain body
func (s *Server) handleParseText(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxTextSize)

	var text string
	if mediaType(r) == "application/json" {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		text = req.Text
	} else {
		data, err := io.ReadAll(body)
		if err != nil {
			slog.Error("Error reading request body", "error", err)
			writeError(w, http.StatusBadRequest, "Error reading request body")
			return
		}
		text = string(data)
	}

	writeJSON(w, http.StatusOK, s.service.ParseText(text))
}

// handleScanReceipt recognizes and parses an uploaded receipt image. The
// image comes either as a multipart "file" field or as base64 JSON.
func (s *Server) handleScanReceipt(w http.ResponseWriter, r *http.Request) {
	var (
		data        []byte
		contentType string
		ok          bool
	)
	if mediaType(r) == "application/json" {
		data, contentType, ok = readBase64Image(w, r)
	} else {
		data, contentType, ok = readUploadedFile(w, r)
	}
	if !ok {
		return
	}

	result, err := s.service.ScanReceipt(r.Context(), data, contentType)
	if err != nil {
		slog.Error("Error scanning receipt", "content_type", contentType, "error", err)
		if errors.Is(err, ErrEmptyImage) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// readUploadedFile reads the multipart "file" field. It writes the error
// response itself and returns false on failure.
func readUploadedFile(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File is too large. Maximum size is 50MB. Please compress or resize your image.")
			return nil, "", false
		}
		writeError(w, http.StatusBadRequest, "Error parsing form")
		return nil, "", false
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		writeError(w, http.StatusBadRequest, "No file was selected. Please choose a file to upload.")
		return nil, "", false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeError(w, http.StatusInternalServerError, "Error reading file. Please try again.")
		return nil, "", false
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFromExt(header.Filename)
	}
	return data, strings.ToLower(strings.TrimSpace(contentType)), true
}

// readBase64Image reads {"image_base64": ..., "image_format": ...}. A data URI
// header on the image takes precedence over image_format.
func readBase64Image(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	var req struct {
		ImageBase64 string `json:"image_base64"`
		ImageFormat string `json:"image_format"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadSize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, "", false
	}

	encoded := strings.TrimSpace(req.ImageBase64)
	contentType := ""
	if m := dataURIPrefix.FindStringSubmatch(encoded); m != nil {
		contentType = m[1]
		encoded = encoded[len(m[0]):]
	}
	if contentType == "" && req.ImageFormat != "" {
		contentType = contentTypeFromExt("." + strings.TrimPrefix(req.ImageFormat, "."))
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		writeError(w, http.StatusBadRequest, "image_base64 is not valid base64")
		return nil, "", false
	}
	return data, contentType, true
}

func contentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}
