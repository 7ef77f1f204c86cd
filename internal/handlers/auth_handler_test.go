package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_SignsUpWithProfileMetadata(t *testing.T) {
	fake := newFakeSupabase(func(w http.ResponseWriter, call recordedCall) {
		w.Write([]byte(`{"id":"u1","email":"ada@example.com"}`))
	})
	defer fake.Close()
	app := newApp(fake)

	resp, env := doRequest(t, app, jsonRequest(t, http.MethodPost, "/auth/register", map[string]any{
		"email":     "ada@example.com",
		"password":  "secret123",
		"full_name": "Ada Lovelace",
	}))

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "User registered successfully", env.Message)

	call := fake.calls[0]
	assert.Equal(t, "/auth/v1/signup", call.Path)

	var payload struct {
		Email string         `json:"email"`
		Data  map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(call.Body, &payload))
	assert.Equal(t, "ada@example.com", payload.Email)
	assert.Equal(t, "Ada Lovelace", payload.Data["full_name"])
	// Role defaults to employee when not submitted.
	assert.Equal(t, "employee", payload.Data["role"])
}

func TestRegister_ValidationFailures(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]any
		field   string
	}{
		{"missing email", map[string]any{"password": "secret123", "full_name": "Ada"}, "email"},
		{"bad email", map[string]any{"email": "nope", "password": "secret123", "full_name": "Ada"}, "email"},
		{"short password", map[string]any{"email": "a@b.co", "password": "short", "full_name": "Ada"}, "password"},
		{"missing full_name", map[string]any{"email": "a@b.co", "password": "secret123"}, "full_name"},
		{"bad role", map[string]any{"email": "a@b.co", "password": "secret123", "full_name": "Ada", "role": "ceo"}, "role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := newFakeSupabase(nil)
			defer fake.Close()
			app := newApp(fake)

			resp, env := doRequest(t, app, jsonRequest(t, http.MethodPost, "/auth/register", tc.payload))

			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			assert.Contains(t, env.Errors, tc.field)
			assert.Empty(t, fake.calls)
		})
	}
}

func TestRegister_UpstreamFailure(t *testing.T) {
	fake := newFakeSupabase(func(w http.ResponseWriter, call recordedCall) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"msg":"User already registered"}`))
	})
	defer fake.Close()
	app := newApp(fake)

	resp, env := doRequest(t, app, jsonRequest(t, http.MethodPost, "/auth/register", map[string]any{
		"email":     "ada@example.com",
		"password":  "secret123",
		"full_name": "Ada Lovelace",
	}))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Registration failed", env.Message)
	assert.JSONEq(t, `{"msg":"User already registered"}`, string(env.Error))
}

func TestLogin_ReshapesSession(t *testing.T) {
	fake := newFakeSupabase(func(w http.ResponseWriter, call recordedCall) {
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":3600,"user":{"id":"u1"},"token_type":"bearer"}`))
	})
	defer fake.Close()
	app := newApp(fake)

	resp, env := doRequest(t, app, jsonRequest(t, http.MethodPost, "/auth/login", map[string]any{
		"email":    "ada@example.com",
		"password": "secret123",
	}))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Login successful", env.Message)

	var data struct {
		AccessToken  string          `json:"access_token"`
		RefreshToken string          `json:"refresh_token"`
		ExpiresIn    int             `json:"expires_in"`
		User         json.RawMessage `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "at", data.AccessToken)
	assert.Equal(t, "rt", data.RefreshToken)
	assert.Equal(t, 3600, data.ExpiresIn)
	assert.JSONEq(t, `{"id":"u1"}`, string(data.User))
}

func TestLogin_BadCredentials(t *testing.T) {
	fake := newFakeSupabase(func(w http.ResponseWriter, call recordedCall) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	})
	defer fake.Close()
	app := newApp(fake)

	resp, env := doRequest(t, app, jsonRequest(t, http.MethodPost, "/auth/login", map[string]any{
		"email":    "ada@example.com",
		"password": "wrong",
	}))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", env.Message)
}

func TestMe_RequiresToken(t *testing.T) {
	fake := newFakeSupabase(nil)
	defer fake.Close()
	app := newApp(fake)

	resp, env := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "No token provided", env.Message)
	assert.Empty(t, fake.calls)
}

func TestMe_PassesIdentityThrough(t *testing.T) {
	fake := newFakeSupabase(func(w http.ResponseWriter, call recordedCall) {
		w.Write([]byte(`{"id":"u1","email":"ada@example.com","user_metadata":{"role":"manager"}}`))
	})
	defer fake.Close()
	app := newApp(fake)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	resp, env := doRequest(t, app, req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), "user_metadata")
	assert.Equal(t, "Bearer user-token", fake.calls[0].Header.Get("Authorization"))
}

func TestLogout_StaticAcknowledgment(t *testing.T) {
	fake := newFakeSupabase(nil)
	defer fake.Close()
	app := newApp(fake)

	resp, env := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "Logged out successfully. Clear tokens on client side.", env.Message)
	// Token invalidation is the client's job; nothing goes upstream.
	assert.Empty(t, fake.calls)
}
