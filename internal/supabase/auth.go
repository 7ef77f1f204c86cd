package supabase

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// AuthUser is the identity behind a bearer token. Raw carries the full
// upstream user object for pass-through responses.
type AuthUser struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Raw   json.RawMessage `json:"-"`
}

type signUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) postAuth(path string, body any) (json.RawMessage, *Failure) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, transportFailure(err)
	}

	req, err := http.NewRequest(http.MethodPost, c.authURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, transportFailure(err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// SignUp registers a new user with the identity provider. Profile fields
// travel in the metadata payload.
func (c *Client) SignUp(email, password string, metadata map[string]any) (json.RawMessage, *Failure) {
	return c.postAuth("/signup", signUpRequest{Email: email, Password: password, Data: metadata})
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(email, password string) (json.RawMessage, *Failure) {
	return c.postAuth("/token?grant_type=password", signInRequest{Email: email, Password: password})
}

// ResolveUser exchanges a bearer token for the identity it represents.
// Tokens are not validated locally; whatever the provider returns is
// trusted as-is.
func (c *Client) ResolveUser(token string) (*AuthUser, *Failure) {
	req, err := http.NewRequest(http.MethodGet, c.authURL+"/user", nil)
	if err != nil {
		return nil, transportFailure(err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	body, failure := c.do(req)
	if failure != nil {
		return nil, failure
	}

	var user AuthUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, transportFailure(err)
	}
	user.Raw = body
	return &user, nil
}
