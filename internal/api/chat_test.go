package api

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSendChatMessage(t *testing.T) {
	tests := []struct {
		name           string
		conversationID string
		statusCode     int
		wantErr        bool
	}{
		{
			name:       "new conversation",
			statusCode: http.StatusOK,
		},
		{
			name:           "existing conversation",
			conversationID: "conv-7",
			statusCode:     http.StatusOK,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockServer(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/v1/"+testUserID+"/chat" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}

				var req ChatRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("failed to decode request body: %v", err)
				}
				if req.ConversationID != tt.conversationID {
					t.Errorf("expected conversation_id %q, got %q", tt.conversationID, req.ConversationID)
				}

				w.WriteHeader(tt.statusCode)
				if tt.statusCode == http.StatusOK {
					json.NewEncoder(w).Encode(ChatResponse{
						ConversationID: "conv-7",
						Response:       "Done, I added the task.",
						ToolCalls:      []ToolCall{{Name: "create_task"}},
						Status:         "success",
					})
				}
			})
			defer server.Close()

			resp, err := testClient(server).SendChatMessage(testUserID, "add a task to buy milk", tt.conversationID)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.ConversationID != "conv-7" {
				t.Errorf("expected conversation id %q, got %q", "conv-7", resp.ConversationID)
			}
			if len(resp.ToolCalls) != 1 {
				t.Errorf("expected 1 tool call, got %d", len(resp.ToolCalls))
			}
		})
	}
}

func TestConversationHistory(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/"+testUserID+"/chat/conv-7/history" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string][]ChatMessage{
			"messages": {
				{Role: "user", Content: "add a task"},
				{Role: "assistant", Content: "done"},
			},
		})
	})
	defer server.Close()

	messages, err := testClient(server).ConversationHistory(testUserID, "conv-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[1].Role != "assistant" {
		t.Errorf("unexpected role: %s", messages[1].Role)
	}
}
