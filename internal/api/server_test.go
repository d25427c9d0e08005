// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/fitlog/internal/api"
	"github.com/taibuivan/fitlog/internal/platform/config"
	"github.com/taibuivan/fitlog/internal/platform/sec"
	"github.com/taibuivan/fitlog/internal/tracking/goal"
	"github.com/taibuivan/fitlog/internal/tracking/session"
	"github.com/taibuivan/fitlog/internal/users/account"
	"github.com/taibuivan/fitlog/internal/users/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// newApp wires the whole API over in-memory stores, the way cmd/api does
// with STORAGE_DRIVER=memory.
func newApp(t *testing.T, health api.HealthDependencies) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{ServerPort: "0", Environment: "test"}

	hasher, err := sec.NewPasswordHasher(bcrypt.MinCost, 2)
	require.NoError(t, err)
	tokens, err := sec.NewTokenService([]byte(testSecret), "fitlog.test", 0)
	require.NoError(t, err)

	users := auth.NewMemoryUserRepository()
	sessions := session.NewMemoryRepository()
	goals := goal.NewMemoryRepository()

	authService := auth.NewService(users, hasher, tokens, logger)
	progress := account.NewProgressService(sessions, users, nil, logger)
	accountService := account.NewService(users, hasher, nil, logger, sessions, goals)
	sessionService := session.NewService(sessions, logger, session.WithProgressNotifier(progress))
	goalService := goal.NewService(goals, logger)

	liveness, readiness := api.NewHealthHandlers(health, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, cfg, logger,
		api.Guard{Verifier: tokens, Resolver: authService},
		api.Handlers{
			Liveness:  liveness,
			Readiness: readiness,
			Auth:      auth.NewHandler(authService),
			Account:   account.NewHandler(accountService),
			Session:   session.NewHandler(sessionService),
			Goal:      goal.NewHandler(goalService),
		})
	return server.Handler()
}

// call performs a request outside apitest when the test needs the decoded body.
func call(t *testing.T, handler http.Handler, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return recorder.Code, envelope
}

func register(t *testing.T, handler http.Handler, name, email string) string {
	t.Helper()
	status, envelope := call(t, handler, http.MethodPost, "/auth/register", "",
		fmt.Sprintf(`{"name":%q,"email":%q,"password":"secret123"}`, name, email))
	require.Equal(t, http.StatusCreated, status)
	return envelope["data"].(map[string]any)["token"].(string)
}

func createSession(t *testing.T, handler http.Handler, token, body string) string {
	t.Helper()
	status, envelope := call(t, handler, http.MethodPost, "/sessions", token, body)
	require.Equal(t, http.StatusCreated, status)
	return envelope["data"].(map[string]any)["id"].(string)
}

func TestHealth(t *testing.T) {
	handler := newApp(t, api.HealthDependencies{})

	apitest.New().
		Handler(handler).
		Get("/health").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.data.status", "ok")).
		End()
}

func TestReady(t *testing.T) {
	healthy := newApp(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
	})
	apitest.New().
		Handler(healthy).
		Get("/ready").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.data.status", "ready")).
		Assert(jsonpath.Len("$.data.checks", 1)).
		End()

	degraded := newApp(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("connection refused") },
	})
	apitest.New().
		Handler(degraded).
		Get("/ready").
		Expect(t).
		Status(http.StatusServiceUnavailable).
		Assert(jsonpath.Equal("$.success", false)).
		Assert(jsonpath.Equal("$.data.status", "degraded")).
		Assert(jsonpath.Equal("$.data.checks[1].ok", false)).
		End()
}

func TestAuthFlow(t *testing.T) {
	handler := newApp(t, api.HealthDependencies{})

	apitest.New().
		Handler(handler).
		Post("/auth/register").
		JSON(`{"name":"Ann","email":"Ann@Example.com","password":"secret123"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.data.email", "ann@example.com")).
		Assert(jsonpath.Present("$.data.token")).
		Assert(jsonpath.NotPresent("$.data.passwordHash")).
		End()

	apitest.New().
		Handler(handler).
		Post("/auth/register").
		JSON(`{"name":"Imposter","email":"ann@example.com","password":"secret123"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.code", "DUPLICATE_IDENTITY")).
		End()

	apitest.New().
		Handler(handler).
		Post("/auth/login").
		JSON(`{"email":"ann@example.com","password":"secret123"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.data.name", "Ann")).
		Assert(jsonpath.Present("$.data.token")).
		End()

	for _, body := range []string{
		`{"email":"ann@example.com","password":"wrong-password"}`,
		`{"email":"nobody@example.com","password":"secret123"}`,
	} {
		apitest.New().
			Handler(handler).
			Post("/auth/login").
			JSON(body).
			Expect(t).
			Status(http.StatusUnauthorized).
			Assert(jsonpath.Equal("$.code", "INVALID_CREDENTIALS")).
			Assert(jsonpath.Equal("$.message", "Invalid credentials")).
			End()
	}

	apitest.New().
		Handler(handler).
		Post("/auth/register").
		Body(`{"name":`).
		Header("Content-Type", "application/json").
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.code", "VALIDATION_ERROR")).
		End()
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	handler := newApp(t, api.HealthDependencies{})

	for _, path := range []string{"/sessions", "/goals", "/account/me", "/sessions/stats"} {
		apitest.New().
			Handler(handler).
			Get(path).
			Expect(t).
			Status(http.StatusUnauthorized).
			Assert(jsonpath.Equal("$.code", "UNAUTHORIZED")).
			Assert(jsonpath.Equal("$.message", "Authentication required")).
			End()
	}

	apitest.New().
		Handler(handler).
		Get("/sessions").
		Header("Authorization", "Bearer not.a.token").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

/*
TestSessionOwnership walks two users through the session log: each sees only
their own records, and foreign IDs look exactly like missing ones.
*/
func TestSessionOwnership(t *testing.T) {
	handler := newApp(t, api.HealthDependencies{})
	annToken := register(t, handler, "Ann", "ann@example.com")
	bobToken := register(t, handler, "Bob", "bob@example.com")

	id := createSession(t, handler, annToken,
		`{"date":"2026-06-01","activity":"Running","duration":30,"intensity":"Medium","burned":250,"userId":"someone-else"}`)

	apitest.New().
		Handler(handler).
		Get("/sessions").
		Header("Authorization", "Bearer "+annToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.count", float64(1))).
		Assert(jsonpath.Equal("$.data[0].activity", "Running")).
		Assert(jsonpath.NotEqual("$.data[0].userId", "someone-else")).
		End()

	apitest.New().
		Handler(handler).
		Get("/sessions").
		Header("Authorization", "Bearer "+bobToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.count", float64(0))).
		Assert(jsonpath.Len("$.data", 0)).
		End()

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		apitest.New().
			Handler(handler).
			Method(method).
			URL("/sessions/"+id).
			Header("Authorization", "Bearer "+bobToken).
			JSON(`{"duration":90}`).
			Expect(t).
			Status(http.StatusNotFound).
			Assert(jsonpath.Equal("$.code", "NOT_FOUND")).
			End()
	}

	apitest.New().
		Handler(handler).
		Put("/sessions/"+id).
		Header("Authorization", "Bearer "+annToken).
		JSON(`{"duration":0}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.details[0].field", "duration")).
		End()

	apitest.New().
		Handler(handler).
		Get("/sessions/"+id).
		Header("Authorization", "Bearer "+annToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.data.duration", float64(30))).
		End()

	apitest.New().
		Handler(handler).
		Get("/sessions/not-a-uuid").
		Header("Authorization", "Bearer "+annToken).
		Expect(t).
		Status(http.StatusNotFound).
		End()

	apitest.New().
		Handler(handler).
		Delete("/sessions/"+id).
		Header("Authorization", "Bearer "+annToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.message", "Session deleted")).
		End()
}

func TestSessionFiltersAndStats(t *testing.T) {
	handler := newApp(t, api.HealthDependencies{})
	token := register(t, handler, "Ann", "ann@example.com")

	createSession(t, handler, token, `{"date":"2026-06-01","activity":"Running","duration":30,"intensity":"Low","burned":200}`)
	createSession(t, handler, token, `{"date":"2026-06-03","activity":"Yoga","duration":60,"intensity":"Low","burned":150}`)
	createSession(t, handler, token, `{"date":"2026-06-05","activity":"Running","duration":45,"intensity":"High","burned":500}`)

	apitest.New().
		Handler(handler).
		Get("/sessions").
		Query("from", "2026-06-02").
		Query("to", "2026-06-05").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.count", float64(2))).
		Assert(jsonpath.Equal("$.data[0].date", "2026-06-05T00:00:00Z")).
		End()

	apitest.New().
		Handler(handler).
		Get("/sessions").
		Query("from", "yesterday").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.details[0].field", "from")).
		End()

	apitest.New().
		Handler(handler).
		Get("/sessions/stats").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.data.count", float64(3))).
		Assert(jsonpath.Equal("$.data.totalDuration", float64(135))).
		Assert(jsonpath.Equal("$.data.totalBurned", float64(850))).
		Assert(jsonpath.Equal("$.data.byIntensity.Low", float64(2))).
		Assert(jsonpath.Equal("$.data.byIntensity.Medium", float64(0))).
		Assert(jsonpath.Equal("$.data.favoriteActivity", "Running")).
		End()

	apitest.New().
		Handler(handler).
		Get("/account/me").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.data.totalWorkouts", float64(3))).
		Assert(jsonpath.Equal("$.data.level", "Beginner")).
		End()
}

func TestGoals(t *testing.T) {
	handler := newApp(t, api.HealthDependencies{})
	annToken := register(t, handler, "Ann", "ann@example.com")
	bobToken := register(t, handler, "Bob", "bob@example.com")

	status, envelope := call(t, handler, http.MethodPost, "/goals", annToken,
		`{"name":"Run 100 km","target":100,"metric":"km","deadline":"2026-12-31"}`)
	require.Equal(t, http.StatusCreated, status)
	id := envelope["data"].(map[string]any)["id"].(string)

	apitest.New().
		Handler(handler).
		Patch("/goals/"+id).
		Header("Authorization", "Bearer "+annToken).
		JSON(`{"current":42.5}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.data.current", 42.5)).
		Assert(jsonpath.Equal("$.data.target", float64(100))).
		End()

	apitest.New().
		Handler(handler).
		Get("/goals").
		Header("Authorization", "Bearer "+bobToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.count", float64(0))).
		End()

	apitest.New().
		Handler(handler).
		Delete("/goals/"+id).
		Header("Authorization", "Bearer "+bobToken).
		Expect(t).
		Status(http.StatusNotFound).
		End()

	apitest.New().
		Handler(handler).
		Post("/goals").
		Header("Authorization", "Bearer "+annToken).
		JSON(`{"name":"","target":0,"metric":"km","deadline":"2026-12-31"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Len("$.details", 2)).
		End()
}

func TestDeletedAccountTokenIsRejected(t *testing.T) {
	handler := newApp(t, api.HealthDependencies{})
	token := register(t, handler, "Ann", "ann@example.com")
	createSession(t, handler, token, `{"activity":"Running","duration":30,"intensity":"Medium","burned":250}`)

	apitest.New().
		Handler(handler).
		Delete("/account/me").
		Header("Authorization", "Bearer "+token).
		JSON(`{"password":"secret123"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.message", "Account deleted")).
		End()

	apitest.New().
		Handler(handler).
		Get("/sessions").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.code", "UNAUTHORIZED")).
		End()

	// The address is free again.
	register(t, handler, "Ann", "ann@example.com")
}

func TestUnknownRoute(t *testing.T) {
	handler := newApp(t, api.HealthDependencies{})

	apitest.New().
		Handler(handler).
		Get("/comics").
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.code", "NOT_FOUND")).
		End()
}
