package rag

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyQuestion indicates a blank or whitespace-only question.
	ErrEmptyQuestion = errors.New("question is required")

	// ErrNotConfigured indicates no Gemini API key is available, so the
	// question-answering pipeline cannot run.
	ErrNotConfigured = errors.New("question answering is not configured")

	// ErrQuotaExhausted indicates the upstream API rejected the request
	// because of rate or quota limits.
	ErrQuotaExhausted = errors.New("model quota exceeded")
)

// isQuotaError reports whether err looks like an upstream quota rejection.
// The API surfaces these as mixed strings rather than a typed error, so
// detection is substring based.
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(msg), "quota")
}
