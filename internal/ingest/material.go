// Package ingest loads raw course material from disk: plain-text files and
// PDFs. Parsing is the pdf library's job; this package only pulls the text
// out and cleans it up enough to prompt with.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoExtractableText is returned when a file opens fine but yields no
// usable text (scanned PDFs, empty files).
var ErrNoExtractableText = errors.New("no extractable text in file")

// ReadMaterial loads course material from path. PDF files go through text
// extraction; anything else is read as plain text. The result is sanitized.
func ReadMaterial(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ExtractPDF(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading material file: %w", err)
	}
	text := Sanitize(string(data))
	if text == "" {
		return "", fmt.Errorf("%s: %w", path, ErrNoExtractableText)
	}
	return text, nil
}

// ExtractPDF pulls the plain text out of a PDF file.
func ExtractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, reader); err != nil {
		return "", fmt.Errorf("reading extracted text: %w", err)
	}

	text := Sanitize(b.String())
	if text == "" {
		return "", fmt.Errorf("%s: %w", path, ErrNoExtractableText)
	}
	return text, nil
}

// Sanitize strips NUL bytes and non-printing control characters that PDF
// extractors leave behind, keeping ordinary whitespace.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\x00", "")

	out := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			out = append(out, ch)
			continue
		}
		if ch < 0x20 {
			continue
		}
		out = append(out, ch)
	}
	return strings.TrimSpace(string(out))
}
