package web

import (
	"net/http"

	"rope-coach/internal/models"
)

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateService.GetAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if templates == nil {
		templates = []models.TrainingTemplate{}
	}
	h.writeJSON(w, http.StatusOK, templates)
}

func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := h.templateService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, t)
}

func (h *Handler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	var t models.TrainingTemplate
	if !h.decode(w, r, &t) {
		return
	}
	t.ID = r.PathValue("id")

	if err := h.templateService.Save(r.Context(), &t); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.templateService.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
