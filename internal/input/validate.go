// Package input gates user submissions before anything is sent to a model.
package input

import (
	"strings"
	"unicode/utf8"

	"github.com/vbonduro/menupick/internal/domain"
)

const (
	// MaxImageBytes is the largest accepted upload, inclusive.
	MaxImageBytes = 10 * 1024 * 1024
	// MaxTextChars is the longest accepted menu text after trimming, inclusive.
	MaxTextChars = 2000
)

const (
	ReasonMissing      = "Please upload a menu photo or enter menu items."
	ReasonFileTooLarge = "File size too large. Please upload a file smaller than 10MB."
	ReasonTextTooLong  = "Menu text too long. Please keep it under 2000 characters."
)

// Validate applies the presence, size and length rules in order and returns
// the first failure. Text is trimmed for both the presence and the length
// check; length is counted in runes.
func Validate(image *domain.Image, text string) domain.ValidationResult {
	trimmed := strings.TrimSpace(text)

	if image == nil && trimmed == "" {
		return reject(ReasonMissing)
	}
	if image != nil && image.Size() > MaxImageBytes {
		return reject(ReasonFileTooLarge)
	}
	if utf8.RuneCountInString(trimmed) > MaxTextChars {
		return reject(ReasonTextTooLong)
	}
	return domain.ValidationResult{Accepted: true}
}

// ValidateSubmission is Validate over a domain.Submission.
func ValidateSubmission(s domain.Submission) domain.ValidationResult {
	return Validate(s.Image, s.MenuText)
}

func reject(reason string) domain.ValidationResult {
	return domain.ValidationResult{Accepted: false, Reason: reason}
}
