// Package docext extracts text from uploaded travel documents.
//
// Extraction is best-effort by contract: unsupported types, oversized files
// and unreadable content all yield empty text, never an error that reaches
// the planning pipeline.
package docext

import (
	"bytes"
	"io"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/onetrip/travel-planner/pkg/logger"
	"github.com/onetrip/travel-planner/pkg/metrics"
)

// minTextLength discards extraction results too short to carry meaning.
const minTextLength = 10

// Extractor pulls text out of a single uploaded file.
type Extractor interface {
	// ExtractText returns the text content of the file, or empty when the
	// type is unsupported or the content is unreadable.
	ExtractText(data []byte, contentType string) string
}

// Service extracts text from batches of uploaded files.
type Service struct {
	maxBytes int64
	logger   *logger.Logger
}

// NewService creates a document extraction service with a per-file size cap.
func NewService(maxBytes int64, log *logger.Logger) *Service {
	return &Service{maxBytes: maxBytes, logger: log}
}

// ProcessFiles extracts text from every readable uploaded file and joins the
// results under per-file headers. Files that cannot be processed are skipped.
func (s *Service) ProcessFiles(files []*multipart.FileHeader) string {
	var parts []string

	for _, fh := range files {
		if fh.Size > s.maxBytes {
			s.logger.Warn("uploaded file exceeds size limit",
				zap.String("filename", fh.Filename), zap.Int64("size", fh.Size))
			continue
		}

		data, err := readFile(fh)
		if err != nil {
			s.logger.Warn("failed to read uploaded file",
				zap.String("filename", fh.Filename), zap.Error(err))
			continue
		}

		contentType := fh.Header.Get("Content-Type")
		text := s.ExtractText(data, contentType)
		if text == "" {
			continue
		}

		parts = append(parts, "["+fh.Filename+"]\n"+text)
		s.logger.Info("text extracted from upload",
			zap.String("filename", fh.Filename),
			zap.String("content_type", contentType),
			zap.Int("length", len(text)))
	}

	return strings.Join(parts, "\n\n")
}

// ExtractText dispatches on the declared content type. PDFs get real text
// extraction; images would need an OCR engine, which is not wired in, so
// they yield empty text. Unsupported types are skipped.
func (s *Service) ExtractText(data []byte, contentType string) string {
	switch {
	case contentType == "application/pdf":
		text := cleanText(s.extractPDF(data))
		metrics.DocumentBytesExtracted.WithLabelValues("pdf").Add(float64(len(text)))
		return text
	case strings.HasPrefix(contentType, "image/"):
		s.logger.Debug("image upload skipped, no OCR engine available")
		return ""
	default:
		s.logger.Warn("unsupported upload content type", zap.String("content_type", contentType))
		return ""
	}
}

func (s *Service) extractPDF(data []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		s.logger.Warn("failed to open PDF", zap.Error(err))
		return ""
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		s.logger.Warn("failed to extract PDF text", zap.Error(err))
		return ""
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		s.logger.Warn("failed to read PDF text", zap.Error(err))
		return ""
	}
	return buf.String()
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

var blankLines = regexp.MustCompile(`\n\s*\n`)

// cleanText collapses repeated blank lines and drops results too short to
// be useful.
func cleanText(text string) string {
	text = blankLines.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)
	if len(text) < minTextLength {
		return ""
	}
	return text
}
