package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rope-coach/internal/engine/ledger"
	"rope-coach/internal/events"
	"rope-coach/internal/models"
	"rope-coach/internal/models/config"
	"rope-coach/internal/repository/memory"
	billing_service "rope-coach/internal/service/billing"
	report_service "rope-coach/internal/service/report"
	session_service "rope-coach/internal/service/session"
	student_service "rope-coach/internal/service/student"
	template_service "rope-coach/internal/service/template"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := zap.NewNop()
	cfg := &config.Config{Billing: config.BillingConfig{RenewalThreshold: 3}}

	students := memory.NewStudents(models.Student{ID: "lin", Name: "Lin"})
	classes := memory.NewClasses(models.ClassEntity{ID: "juniors", Name: "Juniors", StudentIDs: models.Tags{"lin"}})
	templates := memory.NewTemplates()
	sessions := memory.NewSessions()
	billingRepo := memory.NewBilling(models.LessonPackage{ID: "p1", StudentID: "lin", PurchasedLessons: 10})
	reference := &memory.Reference{}
	assessments := &memory.Assessments{}

	billing := billing_service.NewBillingService(billingRepo, sessions, students, cfg, log)
	h := NewHandler(
		student_service.NewStudentService(students, log),
		billing,
		session_service.NewSessionService(sessions, classes, students, reference, billing, events.NoopPublisher{}, cfg, log),
		report_service.NewReportService(students, sessions, reference, assessments, billing, log),
		template_service.NewTemplateService(templates, log),
		log,
	)

	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestStudentWallet(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/api/students/lin/wallet", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var wallet models.LessonWallet
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&wallet))
	assert.Equal(t, "lin", wallet.StudentID)
	assert.InDelta(t, 10, wallet.Remaining, 1e-9)
}

func TestStudentWallet_UnknownStudent(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/api/students/ghost/wallet", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBuyPackage_UpdatesWallet(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/api/students/lin/packages", `{"lessons":5,"price":500,"method":"cash"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var bought buyPackageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bought))
	require.NotNil(t, bought.Package)
	require.NotNil(t, bought.Payment)
	assert.Equal(t, models.PaymentCash, bought.Payment.Method)

	resp = do(t, srv, http.MethodGet, "/api/students/lin/wallet", "")
	var wallet models.LessonWallet
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&wallet))
	assert.InDelta(t, 15, wallet.Remaining, 1e-9)
}

func TestBuyPackage_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"zero lessons", `{"lessons":0,"price":100}`},
		{"unknown method", `{"lessons":5,"price":100,"method":"barter"}`},
		{"broken json", `{"lessons":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, http.MethodPost, "/api/students/lin/packages", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestFinance(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/api/finance", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary ledger.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.InDelta(t, 10, summary.Totals.Remaining, 1e-9)
}

func TestClassSessions(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/api/classes/juniors/sessions", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sessions []models.SessionRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sessions))
	assert.Empty(t, sessions)

	resp = do(t, srv, http.MethodGet, "/api/classes/seniors/sessions", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTemplates_SaveGetDelete(t *testing.T) {
	srv := newTestServer(t)

	body := `{"name":"Base","period":"PREP","blocks":[{"title":"Warmup","period":"ALL","qualities":["speed"]}]}`
	resp := do(t, srv, http.MethodPut, "/api/templates/base", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/templates/base", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tpl models.TrainingTemplate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tpl))
	assert.Equal(t, "Base", tpl.Name)
	require.Len(t, tpl.Blocks, 1)
	assert.NotEmpty(t, tpl.Blocks[0].ID)

	resp = do(t, srv, http.MethodDelete, "/api/templates/base", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodDelete, "/api/templates/base", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveTemplate_InvalidPeriod(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPut, "/api/templates/x", `{"name":"Bad","period":"ALL"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaveStudent(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPut, "/api/students/max", `{"name":"  Max  "}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/students", "")
	var students []models.Student
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&students))
	names := make([]string, 0, len(students))
	for _, s := range students {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"Lin", "Max"}, names)

	resp = do(t, srv, http.MethodPut, "/api/students/nobody", `{"name":" "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(models.ErrSessionNotFound))
	assert.Equal(t, http.StatusConflict, statusFor(models.ErrSessionClosed))
	assert.Equal(t, http.StatusBadRequest, statusFor(models.ErrInvalidGender))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
