package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/middleware"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/response"
)

// FeedbackHandler receives the toast script's dismiss, pause and resume calls.
type FeedbackHandler struct {
	*Base
}

func NewFeedbackHandler(base *Base) *FeedbackHandler {
	return &FeedbackHandler{Base: base}
}

func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	s := middleware.GetSession(r.Context())

	var ok bool
	switch vars["action"] {
	case "dismiss":
		ok = s.Toasts.Dismiss(id)
	case "pause":
		ok = s.Toasts.Pause(id, h.now())
	case "resume":
		ok = s.Toasts.Resume(id, h.now())
	default:
		response.Error(w, http.StatusBadRequest, "Unknown feedback action", nil)
		return
	}
	if !ok {
		response.NotFound(w, "Notification not found")
		return
	}
	s.Touch()
	response.Success(w, http.StatusOK, "Notification updated", map[string]int{"pending": s.Toasts.Len()})
}
