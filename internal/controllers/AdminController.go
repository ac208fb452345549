package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"csd/internal/models"
	"csd/internal/providers"
	"csd/internal/services"
)

// AdminController backs the admin console. Routes are mounted behind basic
// auth.
type AdminController struct {
	logger  providers.Logger
	service services.CommentServiceInterface
}

type liveCommentsResponse struct {
	Show     string             `json:"show"`
	Comments models.CommentFile `json:"comments"`
}

type deleteResponse struct {
	Show    string `json:"show"`
	Deleted []int  `json:"deleted"`
}

func NewAdminController(logger providers.Logger, service services.CommentServiceInterface) *AdminController {
	return &AdminController{
		logger:  logger,
		service: service,
	}
}

func (ac *AdminController) Shows(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.service.ListShows())
}

func (ac *AdminController) GetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := ac.service.GetCommentSetting(r.URL.Query().Get("show"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

// SetSetting expects form fields show and comments=enabled|disabled.
func (ac *AdminController) SetSetting(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	show := r.PostForm.Get("show")
	var enabled bool
	switch r.PostForm.Get("comments") {
	case "enabled":
		enabled = true
	case "disabled":
	default:
		http.Error(w, "comments must be enabled or disabled", http.StatusBadRequest)
		return
	}

	if err := ac.service.SetCommentSetting(show, enabled); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ShowSetting{Show: show, Comments: enabled})
}

// Comments returns the live show with its comments, or null while comments
// are closed.
func (ac *AdminController) Comments(w http.ResponseWriter, r *http.Request) {
	show, file, err := ac.service.LiveComments(r.Context())
	if errors.Is(err, models.ErrCommentsDisabled) {
		writeRawJSON(w, http.StatusOK, []byte("null"))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, liveCommentsResponse{Show: show, Comments: file})
}

// DeleteComments removes every posted id from the given show, or from the live
// show when none is given.
func (ac *AdminController) DeleteComments(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	values := r.PostForm["id"]
	ids := make([]int, 0, len(values))
	for _, v := range values {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			http.Error(w, "invalid id "+strconv.Quote(v), http.StatusBadRequest)
			return
		}
		ids = append(ids, id)
	}

	show, err := ac.service.DeleteComments(r.Context(), r.PostForm.Get("show"), ids)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Show: show, Deleted: ids})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnknownShow):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidShowName):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrCommentsDisabled):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
