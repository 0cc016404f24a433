package api

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAPIErrorClassification(t *testing.T) {
	tests := []struct {
		status      int
		wantAuth    bool
		wantNotFnd  bool
		wantServer  bool
		wantNetwork bool
	}{
		{status: 0, wantNetwork: true},
		{status: 401, wantAuth: true},
		{status: 403, wantAuth: true},
		{status: 404, wantNotFnd: true},
		{status: 422},
		{status: 500, wantServer: true},
		{status: 503, wantServer: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			e := &APIError{StatusCode: tt.status}
			if e.IsAuthError() != tt.wantAuth {
				t.Errorf("IsAuthError() = %v", e.IsAuthError())
			}
			if e.IsNotFound() != tt.wantNotFnd {
				t.Errorf("IsNotFound() = %v", e.IsNotFound())
			}
			if e.IsServerError() != tt.wantServer {
				t.Errorf("IsServerError() = %v", e.IsServerError())
			}
			if e.IsNetworkError() != tt.wantNetwork {
				t.Errorf("IsNetworkError() = %v", e.IsNetworkError())
			}
		})
	}
}

func TestAsAPIErrorUnwrapsWrappedErrors(t *testing.T) {
	inner := &APIError{StatusCode: 404, Message: "Task not found"}
	wrapped := fmt.Errorf("failed to get task: %w", inner)

	apiErr, ok := AsAPIError(wrapped)
	if !ok {
		t.Fatal("expected wrapped APIError to be found")
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("expected status 404, got %d", apiErr.StatusCode)
	}

	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Error("expected plain error not to match")
	}
}

func TestTransportFailureMapsToNetworkError(t *testing.T) {
	// A server that is already gone leaves nothing listening on the port.
	server := httptest.NewServer(nil)
	baseURL := server.URL
	server.Close()

	client := NewClient(baseURL, baseURL, baseURL)

	_, err := client.ListTasks(testUserID, TaskFilter{})
	if err == nil {
		t.Fatal("expected an error from an unreachable server")
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected an APIError, got %T: %v", err, err)
	}
	if !apiErr.IsNetworkError() {
		t.Errorf("expected a network error, got status %d", apiErr.StatusCode)
	}
	if apiErr.Err == nil {
		t.Error("expected the transport error to be preserved")
	}
	if got := UserMessage(err); got != "could not reach the server, check your connection" {
		t.Errorf("UserMessage() = %q", got)
	}

	// Form-encoded login takes a separate path to the transport.
	_, err = client.Login("a@b.c", "pw")
	if apiErr, ok := AsAPIError(err); !ok || !apiErr.IsNetworkError() {
		t.Errorf("expected a network error from login, got %v", err)
	}
}

func TestAPIErrorMessageIncludesTransportCause(t *testing.T) {
	e := networkError(errors.New("dial tcp: connection refused"))
	if !strings.Contains(e.Error(), "connection refused") {
		t.Errorf("expected cause in %q", e.Error())
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", &APIError{StatusCode: 401, Message: "nope"}, "invalid credentials or session expired"},
		{"not found", &APIError{StatusCode: 404}, "not found"},
		{"server", &APIError{StatusCode: 502}, "the server encountered an error, please try again"},
		{"network", &APIError{StatusCode: 0}, "could not reach the server, check your connection"},
		{"other status passes message through", &APIError{StatusCode: 422, Message: "title too long"}, "title too long"},
		{"non-API error passes through", errors.New("title cannot be empty"), "title cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
