package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// TextExtractorService turns an uploaded document into best-effort plain
// text. Unsupported or image-only formats yield an empty string, not an
// error; only unreadable files fail.
type TextExtractorService interface {
	ExtractText(filePath string, mimeType string) (string, error)
}

type textExtractorService struct{}

func NewTextExtractorService() TextExtractorService {
	return &textExtractorService{}
}

// ExtractText implements TextExtractorService.
func (e *textExtractorService) ExtractText(filePath string, mimeType string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is missing")
	}

	ext := strings.ToLower(filepath.Ext(filePath))

	if ext == ".pdf" || mimeType == "application/pdf" {
		text, err := extractPDFText(filePath)
		if err != nil {
			return "", err
		}
		return NormalizeBlocks(text), nil
	}

	// Fallback: treat the file as UTF-8 text. Binary content that is not
	// valid UTF-8 yields an empty result.
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	if !utf8.Valid(data) {
		return "", nil
	}

	return NormalizeBlocks(string(data)), nil
}

func extractPDFText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}
