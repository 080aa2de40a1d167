package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/util"
)

const (
	// DefaultMaxUploadBytes is the upload size limit when none is configured.
	DefaultMaxUploadBytes = 50 << 20

	DefaultListLimit = 100
	MaxListLimit     = 1000
)

var (
	validULID     = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	unsafeNameRun = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

	pdfContentTypes = map[string]bool{
		"application/pdf":          true,
		"application/x-pdf":        true,
		"application/octet-stream": true,
	}
)

// Validator provides request validation functionality
type Validator struct {
	maxUploadBytes int64
}

// NewValidator creates a validator. A non-positive maxUploadBytes uses the default.
func NewValidator(maxUploadBytes int64) *Validator {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Validator{maxUploadBytes: maxUploadBytes}
}

// MaxUploadBytes returns the configured upload size limit.
func (v *Validator) MaxUploadBytes() int64 {
	return v.maxUploadBytes
}

// ValidateUpload checks that an uploaded file looks like a PDF within the size limit.
func (v *Validator) ValidateUpload(filename, contentType string, size int64) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(filename) == "" {
		errors = append(errors, domain.NewMissingFieldError("file"))
		return errors
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		errors = append(errors, domain.ValidationError{Field: "file", Message: "only PDF files are accepted", Value: filename})
	}
	if ct := mediaType(contentType); ct != "" && !pdfContentTypes[ct] {
		errors = append(errors, domain.ValidationError{Field: "file", Message: "only PDF files are accepted", Value: contentType})
	}
	if size <= 0 {
		errors = append(errors, domain.ValidationError{Field: "file", Message: "file is empty"})
	} else if size > v.maxUploadBytes {
		errors = append(errors, domain.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("file exceeds %d MB", v.maxUploadBytes>>20),
			Value:   size,
		})
	}

	return errors
}

// ValidateQuestionQuery parses the question listing filters.
func (v *Validator) ValidateQuestionQuery(difficulty string, limit int) (domain.Difficulty, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	var d domain.Difficulty
	if difficulty != "" {
		parsed, ok := domain.ParseDifficulty(difficulty)
		if !ok {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", difficulty))
		}
		d = parsed
	}
	if limit < 1 || limit > MaxListLimit {
		errors = append(errors, domain.NewOutOfRangeError("limit", limit, 1, MaxListLimit))
	}

	return d, errors
}

// ValidateExamID validates an exam session id path parameter.
func (v *Validator) ValidateExamID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}

	return errors
}

// ValidateSubmitAnswer checks the answer payload. Pointers distinguish absent fields
// from zero values.
func (v *Validator) ValidateSubmitAnswer(questionIndex, answer *int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if questionIndex == nil {
		errors = append(errors, domain.NewMissingFieldError("question_index"))
	} else if *questionIndex < 0 {
		errors = append(errors, domain.NewInvalidFormatError("question_index", *questionIndex))
	}
	if answer == nil {
		errors = append(errors, domain.NewMissingFieldError("answer"))
	} else if *answer < domain.UnansweredAnswer || *answer >= domain.OptionCount {
		errors = append(errors, domain.NewOutOfRangeError("answer", *answer, domain.UnansweredAnswer, domain.OptionCount-1))
	}

	return errors
}

// StoredDocumentName builds the storage id for an upload: the upload time in unix
// milliseconds followed by the file name reduced to a safe character set.
func StoredDocumentName(at time.Time, filename string) string {
	return fmt.Sprintf("%d_%s", at.UnixMilli(), SanitizeFileName(filename))
}

// SanitizeFileName keeps the base name and replaces unsafe runs with an underscore.
func SanitizeFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.Trim(unsafeNameRun.ReplaceAllString(base, "_"), "._")
	if base == "" || strings.EqualFold(base, "pdf") {
		return "document.pdf"
	}
	if !strings.EqualFold(filepath.Ext(base), ".pdf") {
		base += ".pdf"
	}
	return base
}

func mediaType(contentType string) string {
	ct, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(contentType)), ";")
	return strings.TrimSpace(ct)
}

// isValidULID checks if the string is a valid ULID format. Ids are upper case as
// util.NewULID produces them.
func isValidULID(s string) bool {
	return validULID.MatchString(s) && util.IsULID(s)
}
