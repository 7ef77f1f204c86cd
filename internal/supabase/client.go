// Package supabase contains thin gateways over the three Supabase sub-APIs:
// PostgREST tables, GoTrue auth, and object storage. Each call is a single
// HTTP attempt with no retries; the caller decides what a failure means.
package supabase

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/perfdash/dashboard-backend/internal/config"
)

// Failure describes an unsuccessful gateway call: either a non-2xx response
// from Supabase (StatusCode set, Body holding the raw upstream body) or a
// transport error (StatusCode 0, Body holding a JSON-encoded message).
type Failure struct {
	StatusCode int
	Body       json.RawMessage
}

func (f *Failure) Error() string {
	if f.StatusCode == 0 {
		return fmt.Sprintf("supabase: request failed: %s", f.Body)
	}
	return fmt.Sprintf("supabase: status %d: %s", f.StatusCode, f.Body)
}

// JSON decodes the upstream body for inclusion in a response envelope.
// Bodies that are not valid JSON are returned as a plain string.
func (f *Failure) JSON() any {
	var v any
	if err := json.Unmarshal(f.Body, &v); err != nil {
		return string(f.Body)
	}
	return v
}

func transportFailure(err error) *Failure {
	msg, _ := json.Marshal(err.Error())
	return &Failure{StatusCode: 0, Body: msg}
}

// Client is the shared transport for all gateways. It holds both credential
// tiers; which one a call attaches depends on the sub-API (storage uses the
// service-role key, everything else the anon key).
type Client struct {
	restURL    string
	authURL    string
	storageURL string
	anonKey    string
	serviceKey string
	http       *http.Client
}

// New builds a Client from the loaded configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		restURL:    cfg.RestURL(),
		authURL:    cfg.AuthURL(),
		storageURL: cfg.StorageURL(),
		anonKey:    cfg.SupabaseAnonKey,
		serviceKey: cfg.SupabaseServiceKey,
		http:       &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// do issues one request and discriminates success from failure by HTTP
// status alone. Successful bodies are passed through as opaque JSON.
func (c *Client) do(req *http.Request) (json.RawMessage, *Failure) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportFailure(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportFailure(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Failure{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

func (c *Client) anonHeaders(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
}

func (c *Client) serviceHeaders(req *http.Request) {
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
}
