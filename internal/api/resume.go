package api

import (
	"net/http"
	"strconv"

	"github.com/JoeBee/resumesite/internal/log"
	"github.com/JoeBee/resumesite/internal/resume"
)

// resumeHandler serves the abbreviated resume document the page renders.
type resumeHandler struct {
	loader *resume.Loader
	logger log.Logger
}

// get handles GET /api/resume. The document is passed through as stored;
// the loader has already validated it is well-formed JSON.
func (h *resumeHandler) get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.loader.Abbrev()
	if err != nil {
		h.logger.Error("loading resume document",
			"error", err,
			"request_id", requestIDFromContext(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, "resume_unavailable", "resume data is unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.Header().Set("Cache-Control", "public, max-age=300")
	if _, err := w.Write(doc); err != nil {
		h.logger.Debug("writing resume response", "error", err)
	}
}
