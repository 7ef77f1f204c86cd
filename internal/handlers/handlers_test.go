package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/perfdash/dashboard-backend/internal/config"
	"github.com/perfdash/dashboard-backend/internal/handlers"
	"github.com/perfdash/dashboard-backend/internal/routes"
	"github.com/perfdash/dashboard-backend/internal/supabase"
)

// recordedCall captures one request the handlers sent upstream.
type recordedCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
	Header http.Header
}

// fakeSupabase stands in for the external platform. Each test wires an
// answer func keyed off the recorded call.
type fakeSupabase struct {
	srv    *httptest.Server
	calls  []recordedCall
	answer func(w http.ResponseWriter, call recordedCall)
}

func newFakeSupabase(answer func(w http.ResponseWriter, call recordedCall)) *fakeSupabase {
	f := &fakeSupabase{answer: answer}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		call := recordedCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   body,
			Header: r.Header.Clone(),
		}
		f.calls = append(f.calls, call)
		if f.answer != nil {
			f.answer(w, call)
		}
	}))
	return f
}

func (f *fakeSupabase) Close() { f.srv.Close() }

// newApp builds the full application router against the fake platform.
func newApp(f *fakeSupabase) *fiber.App {
	cfg := &config.Config{
		SupabaseURL:        f.srv.URL,
		SupabaseAnonKey:    "anon-key",
		SupabaseServiceKey: "service-key",
		HTTPTimeout:        5 * time.Second,
	}
	sb := supabase.New(cfg)

	app := fiber.New(fiber.Config{BodyLimit: 12 * 1024 * 1024})
	routes.Setup(app,
		handlers.NewAuthHandler(sb),
		handlers.NewMetricsHandler(sb),
		handlers.NewDocumentsHandler(sb),
		handlers.NewTeamsHandler(sb),
		handlers.NewProfilesHandler(sb),
		handlers.NewActivityHandler(sb),
		handlers.NewHealthHandler(),
	)
	return app
}

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Error   json.RawMessage     `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, envelope) {
	t.Helper()
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return resp, env
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}
