package api

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       any
		wantErr    bool
		wantMsg    string
	}{
		{
			name:       "successful login",
			statusCode: http.StatusOK,
			body: AuthResponse{
				User:  User{ID: testUserID, Email: "a@b.com"},
				Token: "tok-1",
			},
		},
		{
			name:       "invalid credentials",
			statusCode: http.StatusUnauthorized,
			body:       map[string]string{"detail": "Incorrect email or password"},
			wantErr:    true,
			wantMsg:    "Incorrect email or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockServer(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST request, got %s", r.Method)
				}
				if r.URL.Path != "/auth/login" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
					t.Errorf("expected form-encoded request, got %q", ct)
				}
				if err := r.ParseForm(); err != nil {
					t.Fatalf("failed to parse form: %v", err)
				}
				if r.PostForm.Get("email") != "a@b.com" {
					t.Errorf("expected email field, got %q", r.PostForm.Get("email"))
				}

				w.WriteHeader(tt.statusCode)
				json.NewEncoder(w).Encode(tt.body)
			})
			defer server.Close()

			client := NewClient(server.URL, server.URL, server.URL)
			resp, err := client.Login("a@b.com", "secret1")

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				apiErr, ok := AsAPIError(err)
				if !ok {
					t.Fatalf("expected APIError, got %T", err)
				}
				if apiErr.Message != tt.wantMsg {
					t.Errorf("expected upstream message %q, got %q", tt.wantMsg, apiErr.Message)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Token != "tok-1" {
				t.Errorf("expected token %q, got %q", "tok-1", resp.Token)
			}
			if resp.User.ID != testUserID {
				t.Errorf("expected user id %q, got %q", testUserID, resp.User.ID)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON request, got %q", ct)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body["email"] != "new@b.com" || body["password"] != "secret1" {
			t.Errorf("unexpected register payload: %v", body)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(AuthResponse{
			User:  User{ID: testUserID, Email: "new@b.com"},
			Token: "tok-2",
		})
	})
	defer server.Close()

	client := NewClient(server.URL, server.URL, server.URL)
	resp, err := client.Register("new@b.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token != "tok-2" {
		t.Errorf("expected token %q, got %q", "tok-2", resp.Token)
	}
}

func TestSession(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/session" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
			return
		}
		json.NewEncoder(w).Encode(User{ID: testUserID, Email: "a@b.com"})
	})
	defer server.Close()

	client := testClient(server)
	user, err := client.Session()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != testUserID {
		t.Errorf("expected id %q, got %q", testUserID, user.ID)
	}

	client.ClearToken()
	if _, err := client.Session(); err == nil {
		t.Error("expected error without token, got nil")
	}
}

func TestVerifySessionDoesNotUseInstalledToken(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer stored-token" {
			t.Errorf("expected stored token, got %q", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(User{ID: testUserID, Email: "a@b.com"})
	})
	defer server.Close()

	client := testClient(server) // installed token is "test-token"
	user, err := client.VerifySession("stored-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "a@b.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestLogout(t *testing.T) {
	calls := 0
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/auth/logout" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte("{}"))
	})
	defer server.Close()

	if err := testClient(server).Logout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 logout call, got %d", calls)
	}
}
