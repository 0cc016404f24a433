package api

import (
	"fmt"
	"net/url"
)

// Register creates a new account and returns the user plus a fresh token.
func (c *Client) Register(email, password string) (*AuthResponse, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var resp AuthResponse
	if err := c.post(c.authBaseURL+"/auth/register", body, &resp); err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	return &resp, nil
}

// Login authenticates with email and password. The endpoint is
// form-encoded, unlike the rest of the auth API.
func (c *Client) Login(email, password string) (*AuthResponse, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	var resp AuthResponse
	if err := c.postForm(c.authBaseURL+"/auth/login", form, &resp); err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	return &resp, nil
}

// Logout invalidates the server-side session for the current token.
func (c *Client) Logout() error {
	if err := c.post(c.authBaseURL+"/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	return nil
}

// Session returns the identity behind the current bearer token, if the
// server still considers it live.
func (c *Client) Session() (*User, error) {
	var user User
	if err := c.get(c.authBaseURL+"/auth/session", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &user, nil
}

// VerifySession checks an explicit token against the session endpoint
// without touching the client's installed token. Used by the session
// restoration fallback, where the candidate token comes from durable
// storage rather than from a fresh sign-in.
func (c *Client) VerifySession(token string) (*User, error) {
	var user User
	if err := c.do("GET", c.authBaseURL+"/auth/session", token, nil, &user); err != nil {
		return nil, fmt.Errorf("failed to verify session: %w", err)
	}
	return &user, nil
}
