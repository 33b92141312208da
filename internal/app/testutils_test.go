package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/HarishKumarG/BMS-project/api"
	"github.com/HarishKumarG/BMS-project/internal/auth"
	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/HarishKumarG/BMS-project/internal/mocks"
	"github.com/HarishKumarG/BMS-project/internal/validator"
)

const testSecret = "test-secret"

var (
	customer      = domain.Principal{UserID: 7, Email: "jane@example.com", Role: domain.RoleCustomer}
	otherCustomer = domain.Principal{UserID: 8, Email: "john@example.com", Role: domain.RoleCustomer}
	manager       = domain.Principal{UserID: 1, Email: "ops@example.com", Role: domain.RoleManager}
)

func newTestApplication(t *testing.T, opts ...func(*Application)) *Application {
	t.Helper()

	openapiRouter, err := newOpenAPIRouter()
	if err != nil {
		t.Fatalf("Failed to load openapi document: %v", err)
	}

	app := &Application{
		config:        Config{Env: "test"},
		validator:     validator.NewValidator(),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		openapiRouter: openapiRouter,
		tokens:        auth.NewTokenVerifier(testSecret),
		bookings:      &mocks.MockBookingService{},
		catalogRepo:   &mocks.MockCatalogRepo{},
		seatRepo:      &mocks.MockSeatRepo{},
		paymentRepo:   &mocks.MockPaymentRepo{},
		publisher:     &mocks.MockPublisher{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// serve runs r through the full router and waits for background work it started.
func serve(app *Application, w *httptest.ResponseRecorder, r *http.Request) {
	app.Routes().ServeHTTP(w, r)
	app.wg.Wait()
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func authorize(t *testing.T, r *http.Request, p domain.Principal) {
	t.Helper()

	token, err := auth.NewTokenVerifier(testSecret).Issue(p, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	r.Header.Set("Authorization", "Bearer "+token)
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	t.Helper()

	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
