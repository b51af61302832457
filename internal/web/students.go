package web

import (
	"net/http"

	"rope-coach/internal/models"
)

func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentService.GetAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, students)
}

// SaveStudent создаёт или обновляет студента, ID берётся из пути
func (h *Handler) SaveStudent(w http.ResponseWriter, r *http.Request) {
	var student models.Student
	if !h.decode(w, r, &student) {
		return
	}
	student.ID = r.PathValue("id")

	if err := h.studentService.Save(r.Context(), &student); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, student)
}

func (h *Handler) StudentWallet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.studentService.GetByID(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	wallet, err := h.billingService.GetWallet(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, wallet)
}

func (h *Handler) StudentReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.GetStudentReport(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}
