package v1_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go-website-backend/config"
	v1 "go-website-backend/internal/delivery/http/v1"
	"go-website-backend/internal/domain"
	"go-website-backend/internal/usecase"
	"go-website-backend/pkg/email"
	"go-website-backend/pkg/logger"
	"go-website-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init()
}

func testConfig() *config.Config {
	return &config.Config{
		Port:    "8080",
		BaseURL: "https://himmagroup.com",
		// SMTP left unconfigured: dispatch logs and succeeds
		SMTPHost:                 "",
		ContactRateLimit:         5,
		ContactRateWindowSeconds: 3600,
		GlobalHourlyThreshold:    50,
		GlobalDailyThreshold:     200,
		Site: config.SiteInfo{
			Name:  "Himma Group",
			Email: "info@himmagroup.com",
			Phone: "+251 93 598 8288",
		},
	}
}

// newTestRouter wires the real pipeline: unconfigured mail transport and an
// in-memory contact limiter.
func newTestRouter(cfg *config.Config) *gin.Engine {
	mailSvc := email.NewService(cfg)
	limiter := ratelimit.New(nil, cfg.ContactRateLimit, time.Duration(cfg.ContactRateWindowSeconds)*time.Second, "rl:contact:")
	contactUC := usecase.NewContactUsecase(mailSvc, limiter)

	return v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		Config:    cfg,
	})
}

type apiResponse struct {
	Status     string            `json:"status"`
	Message    string            `json:"message"`
	Errors     map[string]string `json:"errors"`
	RetryAfter int               `json:"retry_after"`
}

func postContactJSON(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSubmitContactSuccess(t *testing.T) {
	r := newTestRouter(testConfig())

	w := postContactJSON(r, `{"name":"Ana","email":"ana@example.com","subject":"","message":"Hello there, interested in your machines."}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Thank you for your message. We will get back to you shortly!", resp.Message)
}

func TestSubmitContactFormEncoded(t *testing.T) {
	r := newTestRouter(testConfig())

	form := url.Values{
		"name":    {"Ana"},
		"email":   {"ana@example.com"},
		"message": {"Hello there, interested in your machines."},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", decode(t, w).Status)
}

func TestSubmitContactValidationErrors(t *testing.T) {
	r := newTestRouter(testConfig())

	w := postContactJSON(r, `{"name":"A","email":"not-an-email","message":"hi"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Please fix the following errors:", resp.Message)
	assert.Len(t, resp.Errors, 3)
	assert.Contains(t, resp.Errors, "name")
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "message")
}

func TestSubmitContactMalformedBody(t *testing.T) {
	r := newTestRouter(testConfig())

	// A broken body degrades to empty fields and per-field errors, not a 500
	w := postContactJSON(r, `{"name": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "error", resp.Status)
	assert.NotEmpty(t, resp.Errors)
}

func TestSubmitContactRateLimited(t *testing.T) {
	r := newTestRouter(testConfig())
	body := `{"name":"Ana","email":"ana@example.com","message":"Hello there, interested in your machines."}`

	for i := 0; i < 5; i++ {
		w := postContactJSON(r, body)
		assert.Equal(t, http.StatusOK, w.Code, "submission %d should be accepted", i+1)
	}

	w := postContactJSON(r, body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	resp := decode(t, w)
	assert.Equal(t, "error", resp.Status)
	assert.Greater(t, resp.RetryAfter, 0)
}

// brokenTransport composes real messages but always fails delivery.
type brokenTransport struct {
	real *email.Service
}

func (b *brokenTransport) Compose(sub domain.ContactSubmission, at time.Time) (email.Message, email.Message) {
	return b.real.Compose(sub, at)
}

func (b *brokenTransport) Dispatch(operator, ack email.Message) error {
	return errors.New("smtp connection refused")
}

func TestSubmitContactDeliveryFailed(t *testing.T) {
	cfg := testConfig()
	limiter := ratelimit.New(nil, cfg.ContactRateLimit, time.Hour, "rl:contact:")
	contactUC := usecase.NewContactUsecase(&brokenTransport{email.NewService(cfg)}, limiter)
	r := v1.NewRouter(v1.RouterDeps{ContactUC: contactUC, Config: cfg})

	w := postContactJSON(r, `{"name":"Ana","email":"ana@example.com","message":"Hello there, interested in your machines."}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Failed to send email. Please try again or contact us directly.", resp.Message)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
