package recommend

import (
	"strings"
)

// Kind classifies why a submission produced no recommendation.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindEmptyResponse     Kind = "empty_response"
	KindQuotaExceeded     Kind = "quota_exceeded"
	KindInvalidCredential Kind = "invalid_credential"
	KindRateLimited       Kind = "rate_limited"
	KindServiceError      Kind = "service_error"
)

// Error is a classified, user-presentable failure.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Keyword lists are matched against lower-cased provider error text. Quota is
// checked before rate limiting because providers report exhausted quota with
// a 429 status as well.
var (
	quotaKeywords = []string{
		"quota",
		"billing",
		"credit balance",
	}
	credentialKeywords = []string{
		"api key",
		"api_key",
		"apikey",
		"authentication",
		"unauthorized",
		"permission",
		"status 401",
		"status 403",
	}
	rateLimitKeywords = []string{
		"rate limit",
		"rate_limit",
		"ratelimit",
		"too many requests",
		"status 429",
	}
)

// Classify maps a provider error to a Kind by substring match on its text.
// It is best effort; anything unrecognised is KindServiceError.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, quotaKeywords):
		return KindQuotaExceeded
	case containsAny(msg, credentialKeywords):
		return KindInvalidCredential
	case containsAny(msg, rateLimitKeywords):
		return KindRateLimited
	default:
		return KindServiceError
	}
}

// userMessage is what the end user sees for each provider-side kind.
func userMessage(kind Kind, err error) string {
	switch kind {
	case KindQuotaExceeded:
		return "The AI service quota has been exceeded. Please check the account's plan and billing details."
	case KindInvalidCredential:
		return "The AI service rejected the API key. Please check the configured credential."
	case KindRateLimited:
		return "Too many requests to the AI service. Please wait a moment and try again."
	case KindEmptyResponse:
		return "The AI service returned an empty response. Please try again."
	default:
		return "Error: " + err.Error()
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
