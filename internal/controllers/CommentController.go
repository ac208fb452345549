package controllers

import (
	"net/http"

	"csd/internal/providers"
	"csd/internal/services"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// CommentController serves the public comment widget.
type CommentController struct {
	logger  providers.Logger
	service services.CommentServiceInterface
}

func NewCommentController(logger providers.Logger, service services.CommentServiceInterface) *CommentController {
	return &CommentController{
		logger:  logger,
		service: service,
	}
}

// GetComments returns the live show's comments, or null while comments are
// closed.
func (cc *CommentController) GetComments(w http.ResponseWriter, r *http.Request) {
	body, err := cc.service.CurrentComments(r.Context())
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	writeRawJSON(w, http.StatusOK, body)
}

// NewComment takes a form with name and comment fields and answers with one
// of the fixed outcome messages.
func (cc *CommentController) NewComment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := r.ParseForm(); err != nil {
		cc.logger.Infof(providers.TypePost, "Unreadable comment form: %s", err)
		writeOutcome(w, services.OutcomeInvalid)
		return
	}

	sub := services.Submission{
		Name:    r.PostForm.Get("name"),
		Comment: r.PostForm.Get("comment"),
	}
	for _, field := range []string{"name", "comment"} {
		if _, ok := r.PostForm[field]; !ok {
			sub.Missing = append(sub.Missing, field)
		}
	}

	writeOutcome(w, cc.service.Submit(r.Context(), sub))
}

func outcomeStatus(o services.Outcome) int {
	switch o {
	case services.OutcomeAdded:
		return http.StatusCreated
	case services.OutcomeDisabled:
		return http.StatusForbidden
	case services.OutcomeFull:
		return http.StatusConflict
	case services.OutcomeInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeOutcome(w http.ResponseWriter, o services.Outcome) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(outcomeStatus(o))
	_, _ = w.Write([]byte(o.Message()))
}

func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeRawJSON(w, status, gson)
}
