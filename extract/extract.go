// Package extract pulls plain text out of uploaded documents. File type is
// determined by sniffing magic bytes rather than trusting the client's
// filename or MIME type.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ErrUnsupported is wrapped into errors for files that are neither PDF nor
// plain text.
var ErrUnsupported = fmt.Errorf("unsupported file type")

// Text extracts plain text from the given file contents.
// Supported: PDF (by %PDF- magic) and plain text.
func Text(name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file: %s", name)
	}
	if isPDF(data) {
		return pdfText(data)
	}
	if isProbablyText(data) {
		return collapseWhitespace(string(data)), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, name)
}

func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

// isProbablyText reports whether the sample looks like printable text with
// no NUL bytes.
func isProbablyText(b []byte) bool {
	sample := b
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	good := 0
	for _, c := range sample {
		if c == 0x00 {
			return false
		}
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80 {
			good++
		}
	}
	return float64(good)/float64(len(sample)) > 0.9
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return collapseWhitespace(string(b)), nil
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
