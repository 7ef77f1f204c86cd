package supabase_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	"github.com/perfdash/dashboard-backend/internal/config"
	"github.com/perfdash/dashboard-backend/internal/supabase"
)

// recordedCall captures one request seen by the fake Supabase server.
type recordedCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
	Header http.Header
}

// fakeSupabase is an httptest server that records every request and
// answers with a per-test handler.
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
		f.answer(w, call)
	}))
	return f
}

func (f *fakeSupabase) Close() { f.srv.Close() }

func (f *fakeSupabase) client() *supabase.Client {
	return supabase.New(&config.Config{
		SupabaseURL:        f.srv.URL,
		SupabaseAnonKey:    "anon-key",
		SupabaseServiceKey: "service-key",
		HTTPTimeout:        5 * time.Second,
	})
}

func okJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
