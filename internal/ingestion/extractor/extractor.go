package extractor

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/hrdesk/assistant-backend/internal/pkg/apperr"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
)

const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTXT  = "text/plain"
)

// IsSupported reports whether the declared media type has an extraction path.
func IsSupported(mimeType string) bool {
	switch mimeType {
	case MimePDF, MimeDOC, MimeDOCX, MimeTXT:
		return true
	}
	return false
}

type Extractor struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Extractor {
	return &Extractor{log: log.With("component", "Extractor")}
}

// Extract reads the file at path and returns its plain text, dispatching on
// the declared media type.
func (e *Extractor) Extract(path, mimeType string) (string, error) {
	switch mimeType {
	case MimePDF:
		return e.extractPDF(path)
	case MimeDOCX:
		return e.extractDOCX(path)
	case MimeDOC:
		return e.extractDOC(path)
	case MimeTXT:
		return e.extractText(path)
	default:
		return "", fmt.Errorf("%w: %s", apperr.ErrUnsupportedFileType, mimeType)
	}
}

func (e *Extractor) extractPDF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	text, err := pdfPlainText(data)
	if err != nil || len(bytes.TrimSpace(text)) == 0 {
		// Damaged or image-only PDFs still often carry recoverable text runs.
		salvaged := printableText(data)
		if len(bytes.TrimSpace(salvaged)) == 0 {
			if err != nil {
				return "", fmt.Errorf("extract pdf text: %w", err)
			}
			return "", nil
		}
		text = salvaged
	}

	e.log.Debug("Extracted PDF text", "path", path, "chars", len(text))
	return string(text), nil
}

func pdfPlainText(data []byte) ([]byte, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	reader, err := r.GetPlainText()
	if err != nil {
		return nil, err
	}
	return io.ReadAll(reader)
}

func (e *Extractor) extractDOCX(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	text := docxText(data)
	if len(bytes.TrimSpace(text)) == 0 {
		text = printableText(data)
	}
	e.log.Debug("Extracted DOCX text", "path", path, "chars", len(text))
	return string(text), nil
}

// extractDOC handles the legacy binary Word format. There is no pure Go
// parser for it; salvage the printable runs instead.
func (e *Extractor) extractDOC(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read doc: %w", err)
	}
	text := printableText(data)
	e.log.Debug("Extracted DOC text", "path", path, "chars", len(text))
	return string(text), nil
}

func (e *Extractor) extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(data), nil
}
