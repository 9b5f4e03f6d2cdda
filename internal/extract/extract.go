package extract

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// Text pulls plain text from an in-memory PDF. It is best-effort; the
// pipeline treats a failure here as "no text available", not an error.
func Text(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty document")
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return buf.String(), nil
}
