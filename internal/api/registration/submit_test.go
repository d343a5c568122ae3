package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/event-registration/registration-backend/internal/config"
	"github.com/event-registration/registration-backend/internal/db/models"
	"github.com/event-registration/registration-backend/internal/db/repositories"
	"github.com/event-registration/registration-backend/internal/services"
	"github.com/event-registration/registration-backend/internal/sms"
)

type stubStore struct {
	insertErr error
}

func (s *stubStore) Insert(ctx context.Context, reg *models.Registration) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	reg.ID = "reg-test-1"
	return nil
}

func (s *stubStore) MarkNotified(ctx context.Context, id string) error { return nil }

type stubNotifier struct {
	result sms.Result
}

func (n *stubNotifier) Send(ctx context.Context, destination, message string) sms.Result {
	return n.result
}

func newSubmitRouter(store *stubStore, notifier *stubNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewSubmissionService(store, notifier, &config.EventConfig{
		Name:      "Youth Conference 2026",
		DateLine:  "Dec 27-31, 2026",
		TimeLine:  "9:00 AM daily",
		VenueLine: "Main Auditorium, Accra",
		Organizer: "The Planning Team",
	})
	router := gin.New()
	router.POST("/api/v1/register", NewHandler(svc).Submit)
	return router
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"full_name":               "Abena Mensah",
		"phone_number":            "0241234567",
		"age_range":               "18-25",
		"gender":                  "Female",
		"area_residence":          "Adenta",
		"student_or_worker":       "Student",
		"will_sleep":              true,
		"days_attending":          []string{"day1", "day3"},
		"emergency_contact_name":  "Kofi Mensah",
		"emergency_contact_phone": "0209876543",
		"consent":                 true,
	}
}

func postRegister(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return resp
}

func TestSubmit_OK(t *testing.T) {
	router := newSubmitRouter(&stubStore{}, &stubNotifier{result: sms.Result{Delivered: true}})

	w := postRegister(t, router, validBody())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	resp := decodeBody(t, w)
	if resp["success"] != true {
		t.Error("success = false, want true")
	}
	if resp["registration_number"] == "" || resp["registration_number"] == nil {
		t.Error("missing registration_number")
	}
	if resp["sms_sent"] != true {
		t.Error("sms_sent = false, want true")
	}
}

func TestSubmit_SMSFailureStillOK(t *testing.T) {
	router := newSubmitRouter(&stubStore{}, &stubNotifier{result: sms.Result{ErrorReason: "gateway timeout"}})

	w := postRegister(t, router, validBody())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["sms_sent"] != false {
		t.Error("sms_sent = true after failed send")
	}
}

func TestSubmit_ValidationFailure(t *testing.T) {
	router := newSubmitRouter(&stubStore{}, &stubNotifier{})

	body := validBody()
	body["consent"] = false
	body["phone_number"] = "12345"

	w := postRegister(t, router, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	resp := decodeBody(t, w)
	if resp["success"] != false {
		t.Error("success = true, want false")
	}
	errs, ok := resp["errors"].([]interface{})
	if !ok || len(errs) == 0 {
		t.Errorf("expected field errors, got %v", resp["errors"])
	}
}

func TestSubmit_DuplicatePhone(t *testing.T) {
	router := newSubmitRouter(&stubStore{insertErr: repositories.ErrDuplicateContact}, &stubNotifier{})

	w := postRegister(t, router, validBody())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["success"] != false {
		t.Error("success = true, want false")
	}
	if _, hasErrors := resp["errors"]; hasErrors {
		t.Error("duplicate response should not carry field errors")
	}
}

func TestSubmit_StoreFailure(t *testing.T) {
	router := newSubmitRouter(&stubStore{insertErr: errors.New("connection refused")}, &stubNotifier{})

	w := postRegister(t, router, validBody())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestSubmit_MalformedJSON(t *testing.T) {
	router := newSubmitRouter(&stubStore{}, &stubNotifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
