package api

import "fmt"

// SendChatMessage forwards a free-text message to the agent backend.
// An empty conversationID starts a new conversation.
func (c *Client) SendChatMessage(userID, message, conversationID string) (*ChatResponse, error) {
	req := ChatRequest{
		Message:        message,
		ConversationID: conversationID,
	}
	var resp ChatResponse
	if err := c.post(c.chatBaseURL+"/api/v1/"+userID+"/chat", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to send chat message: %w", err)
	}
	return &resp, nil
}

// ConversationHistory returns the messages of an existing conversation.
func (c *Client) ConversationHistory(userID, conversationID string) ([]ChatMessage, error) {
	var resp struct {
		Messages []ChatMessage `json:"messages"`
	}
	url := c.chatBaseURL + "/api/v1/" + userID + "/chat/" + conversationID + "/history"
	if err := c.get(url, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch conversation history: %w", err)
	}
	return resp.Messages, nil
}
