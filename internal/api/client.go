package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultAuthBaseURL is the default base URL of the auth service.
	DefaultAuthBaseURL = "http://localhost:8001"

	// DefaultTaskBaseURL is the default base URL of the task service.
	DefaultTaskBaseURL = "http://localhost:8000"

	// DefaultChatBaseURL is the default base URL of the chat service.
	DefaultChatBaseURL = "http://localhost:8000"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Client talks to the auth, task and chat services. The bearer token is
// mutable: it is installed after sign-in and cleared on sign-out, and
// every request issued afterwards picks up the current value.
type Client struct {
	httpClient  *http.Client
	authBaseURL string
	taskBaseURL string
	chatBaseURL string

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for the given service base URLs. Empty URLs
// fall back to the localhost defaults.
func NewClient(authBaseURL, taskBaseURL, chatBaseURL string) *Client {
	if authBaseURL == "" {
		authBaseURL = DefaultAuthBaseURL
	}
	if taskBaseURL == "" {
		taskBaseURL = DefaultTaskBaseURL
	}
	if chatBaseURL == "" {
		chatBaseURL = DefaultChatBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		authBaseURL: strings.TrimSuffix(authBaseURL, "/"),
		taskBaseURL: strings.TrimSuffix(taskBaseURL, "/"),
		chatBaseURL: strings.TrimSuffix(chatBaseURL, "/"),
	}
}

// SetHTTPClient allows overriding the default HTTP client (useful for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetToken installs the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the installed bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently installed bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do performs an HTTP request and decodes the JSON response.
// Non-2xx responses come back as *APIError with the message extracted
// from the body. Transport failures and a 2xx body that cannot be
// decoded as the expected structure are reported as *APIError with
// status 0.
func (c *Client) do(method, reqURL, bearer string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	return c.decodeResponse(resp, result)
}

// postForm performs a form-encoded POST. The login endpoint is the only
// consumer; the response is decoded like do.
func (c *Client) postForm(reqURL string, form url.Values, result interface{}) error {
	req, err := http.NewRequest(http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	return c.decodeResponse(resp, result)
}

func (c *Client) decodeResponse(resp *http.Response, result interface{}) error {
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody, resp.StatusCode),
		}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &APIError{
				StatusCode: 0,
				Message:    "invalid response from server",
			}
		}
	}

	return nil
}

// errorMessage extracts a human-readable message from an error body.
// The backends put it under "detail" or "message"; anything else is
// passed through verbatim.
func errorMessage(body []byte, status int) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if len(body) > 0 {
		return string(body)
	}
	return fmt.Sprintf("HTTP error %d", status)
}

// get performs a GET request with the current bearer token.
func (c *Client) get(reqURL string, query url.Values, result interface{}) error {
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}
	return c.do(http.MethodGet, reqURL, c.Token(), nil, result)
}

// post performs a POST request with the current bearer token.
func (c *Client) post(reqURL string, body interface{}, result interface{}) error {
	return c.do(http.MethodPost, reqURL, c.Token(), body, result)
}

// put performs a PUT request with the current bearer token.
func (c *Client) put(reqURL string, body interface{}, result interface{}) error {
	return c.do(http.MethodPut, reqURL, c.Token(), body, result)
}

// patch performs a PATCH request with the current bearer token.
func (c *Client) patch(reqURL string, body interface{}, result interface{}) error {
	return c.do(http.MethodPatch, reqURL, c.Token(), body, result)
}

// del performs a DELETE request with the current bearer token.
func (c *Client) del(reqURL string) error {
	return c.do(http.MethodDelete, reqURL, c.Token(), nil, nil)
}
