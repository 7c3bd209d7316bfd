package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JoeBee/resumesite/internal/log"
	"github.com/JoeBee/resumesite/internal/rag"
)

// maxAskBodyBytes caps the ask request body. Questions are short; anything
// bigger is abuse.
const maxAskBodyBytes = 64 * 1024

// Answerer answers a free-form question about the resume.
// *rag.Engine implements it.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// AskRequest is the POST /api/ask request body.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the POST /api/ask response body.
type AskResponse struct {
	Answer string `json:"answer"`
}

// askHandler answers questions about the resume. A nil answerer means no API
// key was configured at startup; the endpoint then reports 503 while the
// rest of the site keeps working.
type askHandler struct {
	answerer Answerer
	logger   log.Logger
}

// ask handles POST /api/ask.
func (h *askHandler) ask(w http.ResponseWriter, r *http.Request) {
	if h.answerer == nil {
		writeError(w, http.StatusServiceUnavailable, "not_configured", rag.ErrNotConfigured.Error())
		return
	}

	var req AskRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxAskBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	answer, err := h.answerer.Answer(r.Context(), req.Question)
	if err != nil {
		h.writeAskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AskResponse{Answer: answer})
}

// writeAskError maps engine errors to HTTP statuses. Upstream failure detail
// is logged but never leaked to the client.
func (h *askHandler) writeAskError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, rag.ErrEmptyQuestion):
		writeError(w, http.StatusBadRequest, "empty_question", rag.ErrEmptyQuestion.Error())
	case errors.Is(err, rag.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "not_configured", rag.ErrNotConfigured.Error())
	case errors.Is(err, rag.ErrQuotaExhausted):
		h.logger.Warn("model quota exhausted",
			"error", err,
			"request_id", requestIDFromContext(r.Context()),
		)
		writeError(w, http.StatusTooManyRequests, "quota_exhausted", "the assistant is receiving too many requests, try again later")
	default:
		h.logger.Error("answering question",
			"error", err,
			"request_id", requestIDFromContext(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to answer the question")
	}
}
