package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"rope-coach/internal/models"
	"rope-coach/internal/service"
)

type Handler struct {
	studentService  service.StudentService
	billingService  service.BillingService
	sessionService  service.SessionService
	reportService   service.ReportService
	templateService service.TemplateService
	log             *zap.Logger
}

func NewHandler(
	studentService service.StudentService,
	billingService service.BillingService,
	sessionService service.SessionService,
	reportService service.ReportService,
	templateService service.TemplateService,
	log *zap.Logger,
) *Handler {
	return &Handler{
		studentService:  studentService,
		billingService:  billingService,
		sessionService:  sessionService,
		reportService:   reportService,
		templateService: templateService,
		log:             log.Named("web"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("ошибка кодирования JSON", zap.Error(err))
	}
}

// writeError переводит доменные ошибки в HTTP-статусы
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("ошибка обработки запроса",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrStudentNotFound),
		errors.Is(err, models.ErrClassNotFound),
		errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrTemplateNotFound),
		errors.Is(err, models.ErrTestItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrEmptyName),
		errors.Is(err, models.ErrInvalidPeriod),
		errors.Is(err, models.ErrUnknownQuality),
		errors.Is(err, models.ErrUnknownJumpMode),
		errors.Is(err, models.ErrUnknownWindow),
		errors.Is(err, models.ErrUnknownPaymentMethod),
		errors.Is(err, models.ErrInvalidLessons),
		errors.Is(err, models.ErrInvalidConsume),
		errors.Is(err, models.ErrInvalidReps):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrSessionClosed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "некорректный JSON: " + err.Error()})
		return false
	}
	return true
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
