package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/auth"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	handler http.Handler
	rm      *repomanager.InMemoryRepositoryManager
	codec   *auth.TokenCodec
	logs    *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logs := &bytes.Buffer{}
	logger := logging.NewZerologLogger(logs, logging.LevelDebug, false)

	rm := repomanager.NewInMemoryRepositoryManager()
	codec, err := auth.NewTokenCodec("test-secret", auth.DefaultTokenValidity)
	require.NoError(t, err)

	jobs, err := services.NewJobService(rm, logger)
	require.NoError(t, err)

	h := NewHandler(
		services.NewUserService(rm, auth.NewPasswordHasher(), codec, logger),
		jobs,
		services.NewAvatarService(rm, nil, logger),
		logger,
	)
	gate := auth.NewGate(codec, rm.Users(), logger)

	return &testEnv{handler: NewRouter(h, gate, logger), rm: rm, codec: codec, logs: logs}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rdr *bytes.Reader
	switch b := body.(type) {
	case nil:
		rdr = bytes.NewReader(nil)
	case string:
		rdr = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func signupBody(username string) map[string]string {
	return map[string]string{
		"name":              "Alice",
		"username":          username,
		"password":          "pw",
		"phone_number":      "555-0100",
		"gender":            "female",
		"date_of_birth":     "1990-01-01",
		"membership_status": "active",
		"address":           "1 Main St",
	}
}

func (e *testEnv) signup(t *testing.T, username string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/users/signup", "", signupBody(username))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[services.AuthResult](t, rec).Token
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestSignupScenario(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/users/signup", "", signupBody("alice"))
	require.Equal(t, http.StatusCreated, rec.Code)

	res := decode[map[string]string](t, rec)
	assert.Equal(t, "alice", res["username"])
	assert.NotEmpty(t, res["token"])
	assert.Len(t, res, 2)

	rec = env.do(t, http.MethodPost, "/api/users/signup", "", signupBody("alice"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "username already exists", decode[map[string]string](t, rec)["error"])
}

func TestSignup_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	body := signupBody("bob")
	delete(body, "address")
	rec := env.do(t, http.MethodPost, "/api/users/signup", "", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing required fields: address", decode[map[string]string](t, rec)["error"])
}

func TestSignup_MalformedJSON(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/users/signup", "", `{"username":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decode[map[string]string](t, rec)["error"])
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice")

	ok := env.do(t, http.MethodPost, "/api/users/login", "", map[string]string{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusOK, ok.Code)
	token := decode[services.AuthResult](t, ok).Token

	stored, err := env.rm.Users().GetUserByLogin(context.Background(), "alice")
	require.NoError(t, err)
	sub, err := env.codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, sub)

	wrong := env.do(t, http.MethodPost, "/api/users/login", "", map[string]string{"username": "alice", "password": "x"})
	unknown := env.do(t, http.MethodPost, "/api/users/login", "", map[string]string{"username": "nobody", "password": "pw"})

	assert.Equal(t, http.StatusBadRequest, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.JSONEq(t, wrong.Body.String(), unknown.Body.String())
	assert.JSONEq(t, `{"error":"invalid credentials"}`, wrong.Body.String())
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice")

	rec := env.do(t, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authorization required", decode[map[string]string](t, rec)["error"])

	rec = env.do(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "alice", me["username"])
	assert.Equal(t, "555-0100", me["phone_number"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestMe_DeletedUser(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice")

	sub, err := env.codec.Verify(token)
	require.NoError(t, err)
	env.rm.Users().(interface {
		Delete(context.Context, string)
	}).Delete(context.Background(), sub)

	rec := env.do(t, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "request is not authorized", decode[map[string]string](t, rec)["error"])
}

func TestAvatar_NotConfigured(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice")

	rec := env.do(t, http.MethodPost, "/api/users/me/avatar", token, nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestJobs_WriteRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice")
	job := map[string]any{
		"title":       "Go dev",
		"type":        "Full-time",
		"description": "Write Go",
		"company":     map[string]any{"name": "Acme"},
	}

	rec := env.do(t, http.MethodPost, "/api/jobs", "", job)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/jobs", "garbage", job)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "request is not authorized", decode[map[string]string](t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/api/jobs", token, job)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	assert.NotEmpty(t, created["id"])
	assert.NotEmpty(t, created["owner_id"])
}

func TestJobs_CRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice")

	rec := env.do(t, http.MethodPost, "/api/jobs", token, map[string]any{
		"title":        "Go dev",
		"type":         "Full-time",
		"description":  "Write Go",
		"company":      map[string]any{"name": "Acme", "size": 10},
		"requirements": []string{"go", "sql"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode[map[string]any](t, rec)["id"].(string)

	rec = env.do(t, http.MethodGet, "/api/jobs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = env.do(t, http.MethodGet, "/api/jobs/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Go dev", decode[map[string]any](t, rec)["title"])

	rec = env.do(t, http.MethodPut, "/api/jobs/"+id, token, map[string]any{"salary": 5000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[map[string]any](t, rec)
	assert.Equal(t, float64(5000), updated["salary"])
	assert.Equal(t, "Go dev", updated["title"])

	rec = env.do(t, http.MethodPut, "/api/jobs/"+id, "", map[string]any{"salary": 1})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/jobs/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.do(t, http.MethodDelete, "/api/jobs/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "job not found", decode[map[string]string](t, rec)["error"])
}

func TestJobs_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/jobs/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid job id", decode[map[string]string](t, rec)["error"])
}

func TestJobs_CreateInvalid(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "alice")

	rec := env.do(t, http.MethodPost, "/api/jobs", token, map[string]any{"title": "no company"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(decode[map[string]string](t, rec)["error"], "invalid job"))
}

func TestIngestLog(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/logs", "", map[string]any{
		"level":   "warn",
		"message": "button exploded",
		"meta":    map[string]any{"page": "/jobs"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(env.logs.String()), "\n") {
		var ev map[string]any
		if json.Unmarshal([]byte(line), &ev) != nil {
			continue
		}
		if ev["message"] == "button exploded" {
			found = true
			assert.Equal(t, "warn", ev["level"])
			assert.Equal(t, "client", ev["source"])
			assert.Equal(t, "/jobs", ev["meta.page"])
		}
	}
	assert.True(t, found, "client log line not written")
}

func TestIngestLog_Rejects(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/logs", "", map[string]any{"level": "info"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing required fields: message", decode[map[string]string](t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/api/logs", "", map[string]any{"level": "shout", "message": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown log level", decode[map[string]string](t, rec)["error"])
}

func TestUnknownEndpoint(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/nope"},
		{http.MethodPatch, "/api/jobs"},
	} {
		rec := env.do(t, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"unknown endpoint"}`, rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRequestID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Contains(t, env.logs.String(), `"request_id":"abc-123"`)
}

func TestRecoverer(t *testing.T) {
	logs := &bytes.Buffer{}
	h := recoverer(logging.NewZerologLogger(logs, logging.LevelDebug, false))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("nil map write") }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
	assert.Contains(t, logs.String(), "handler panic")
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	srv := NewServer("127.0.0.1:0", http.NotFoundHandler(), logging.Nop(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_ListenError(t *testing.T) {
	srv := NewServer("256.0.0.1:bad", http.NotFoundHandler(), logging.Nop(), 0)
	assert.Error(t, srv.Run(context.Background()))
}
