package web

import (
	"net/http"

	"rope-coach/internal/models"
)

func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.sessionService.GetClasses(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if classes == nil {
		classes = []models.ClassEntity{}
	}
	h.writeJSON(w, http.StatusOK, classes)
}

// ClassSessions отдаёт журнал занятий группы по возрастанию даты
func (h *Handler) ClassSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionService.ListByClass(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if sessions == nil {
		sessions = []models.SessionRecord{}
	}
	h.writeJSON(w, http.StatusOK, sessions)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, session)
}
