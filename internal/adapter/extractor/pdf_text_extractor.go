package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"istqb-quiz/internal/domain"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

const pageSeparator = "\n\n"

// PDFTextExtractor reads text page by page. When the in-process parser fails and
// pdftotext (poppler) is on PATH, it is tried before giving up.
type PDFTextExtractor struct {
	logger         *zap.Logger
	useCommandLine bool
	commandTimeout time.Duration
}

type Option func(*PDFTextExtractor)

// WithPdftotextFallback toggles the poppler fallback. It is enabled by default.
func WithPdftotextFallback(enabled bool) Option {
	return func(e *PDFTextExtractor) { e.useCommandLine = enabled }
}

func NewPDFTextExtractor(logger *zap.Logger, opts ...Option) *PDFTextExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &PDFTextExtractor{logger: logger, useCommandLine: true, commandTimeout: 2 * time.Minute}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract implements domain.TextExtractor.
func (e *PDFTextExtractor) Extract(ctx context.Context, raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", domain.NewExtractionError("document is empty", nil)
	}

	text, err := readPages(raw)
	if err == nil {
		return text, nil
	}
	if !e.useCommandLine {
		return "", domain.NewExtractionError("failed to parse PDF", err)
	}

	e.logger.Warn("PDF parser failed, trying pdftotext", zap.Error(err))
	fallback, fbErr := e.pdftotext(ctx, raw)
	if fbErr != nil {
		return "", domain.NewExtractionError("failed to parse PDF", fmt.Errorf("%w; pdftotext: %v", err, fbErr))
	}
	return fallback, nil
}

func readPages(raw []byte) (text string, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", err
	}
	numPages := reader.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("document has no pages")
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, pageSeparator), nil
}

func (e *PDFTextExtractor) pdftotext(ctx context.Context, raw []byte) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not found in PATH: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.commandTimeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "istqb_pdftotext_*")
	if err != nil {
		return "", fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	inPath := filepath.Join(tmpDir, "in.pdf")
	if err := os.WriteFile(inPath, raw, 0o600); err != nil {
		return "", fmt.Errorf("write temp pdf: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(callCtx, "pdftotext", "-enc", "UTF-8", "-q", inPath, "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if s := strings.TrimSpace(stderr.String()); s != "" {
			return "", fmt.Errorf("%w: %s", err, s)
		}
		return "", err
	}
	// pdftotext separates pages with form feeds.
	return strings.ReplaceAll(stdout.String(), "\f", pageSeparator), nil
}

var _ domain.TextExtractor = (*PDFTextExtractor)(nil)
