package service

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText pulls plain text out of an uploaded PDF, pages in
// document order, surrounding whitespace trimmed.
//
// Unlike search this path hard-fails: the user explicitly attached the
// file and expects its content used, so a broken document aborts the
// request instead of silently answering without it.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	text, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return strings.TrimSpace(string(text)), nil
}

// IsPDFFilename reports whether an uploaded filename indicates a PDF.
func IsPDFFilename(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
