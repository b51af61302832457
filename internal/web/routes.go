package web

import (
	"net/http"

	"rope-coach/pkg/monitoring"
)

// Routes собирает мультиплексор; каждый маршрут считается в метриках по своему шаблону
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, monitoring.MetricsMiddleware(pattern, fn))
	}

	handle("GET /health", h.Health)

	handle("GET /api/students", h.ListStudents)
	handle("PUT /api/students/{id}", h.SaveStudent)
	handle("GET /api/students/{id}/wallet", h.StudentWallet)
	handle("GET /api/students/{id}/report", h.StudentReport)
	handle("POST /api/students/{id}/packages", h.BuyPackage)

	handle("GET /api/finance", h.Finance)
	handle("GET /api/renewals", h.Renewals)

	handle("GET /api/classes", h.ListClasses)
	handle("GET /api/classes/{id}/sessions", h.ClassSessions)
	handle("GET /api/sessions/{id}", h.GetSession)

	handle("GET /api/templates", h.ListTemplates)
	handle("GET /api/templates/{id}", h.GetTemplate)
	handle("PUT /api/templates/{id}", h.SaveTemplate)
	handle("DELETE /api/templates/{id}", h.DeleteTemplate)

	mux.Handle("GET /metrics", monitoring.PrometheusHandler())

	return mux
}
