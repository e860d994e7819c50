package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func truncateUsers(t testing.TB, app *TestApp) {
	_, err := app.DB.Exec(context.Background(), "TRUNCATE users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func truncateReservations(t testing.TB, app *TestApp) {
	_, err := app.DB.Exec(context.Background(), "TRUNCATE reservations RESTART IDENTITY")
	require.NoError(t, err)
}

func loginBody(email, password string) io.Reader {
	return strings.NewReader(fmt.Sprintf(`{"email": %q, "password": %q}`, email, password))
}

// registerAndLogin creates a fresh account through the public API and returns
// the session cookies of a logged-in user.
func registerAndLogin(t testing.TB, app *TestApp, email, password string) []*http.Cookie {
	registerBody := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)

	req, err := prepareRequest("POST", "/auth/register", strings.NewReader(registerBody), nil, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "registration failed: %s", rec.Body.String())

	loginBody := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)

	req, err = prepareRequest("POST", "/auth/login", strings.NewReader(loginBody), nil, nil)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code, "login failed: %s", rec.Body.String())

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "no session cookie returned by login")

	return cookies
}
