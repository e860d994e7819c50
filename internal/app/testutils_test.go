package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GitJaack/MoviieBooker/api"
	"github.com/GitJaack/MoviieBooker/internal/mailer"
	"github.com/GitJaack/MoviieBooker/internal/mocks"
	"github.com/GitJaack/MoviieBooker/internal/validator"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

func newTestApplication(opts ...func(*Application)) *Application {
	redisClient := &mocks.MockRedisClient{}
	redisClient.On("Get", mock.Anything, mock.Anything).
		Return(redis.NewStringResult("", redis.Nil))
	redisClient.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(redis.NewStatusResult("OK", nil))

	app := &Application{
		validator:       validator.NewValidator(),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager:  scs.New(),
		redis:           redisClient,
		now:             time.Now,
		userRepo:        &mocks.MockUserRepo{},
		reservationRepo: &mocks.MockReservationRepo{},
		movieCatalog:    &mocks.MockMovieCatalog{},
		mailer:          mailer.NewMockMailer(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// setupTestSession loads a fresh session, stores the user id in it, and puts
// the id into the request context the way requireAuthentication does.
func setupTestSession(t *testing.T, app *Application, r *http.Request, userId int) *http.Request {
	ctx, err := app.sessionManager.Load(r.Context(), "session")
	if err != nil {
		t.Errorf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, SessionKeyUserId.String(), userId)

	ctx = context.WithValue(ctx, SessionKeyUserId, userId)

	return r.WithContext(ctx)
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func withUrlParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
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
