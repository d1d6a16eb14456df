package static

import (
	"context"

	"github.com/bkyoung/smart-code-reviewer/internal/usecase/review"
)

const modelName = "static-v1"

// canned is the fixed reply returned for every request.
const canned = `{
  "language": "Go",
  "categories": [
    {"category": "Readability", "score": 9, "summary": "Clear naming and formatting throughout.", "suggestions": []},
    {"category": "Structure", "score": 8, "summary": "Functions are small and focused.", "suggestions": ["Group related helpers into a single file."]},
    {"category": "Maintainability", "score": 8, "summary": "Easy to test and extend.", "suggestions": ["Add a table-driven test for the edge cases."]}
  ],
  "overall_score": 8.3,
  "tldr": "Well organised code with minor room for consolidation."
}`

// Client implements review.ChatClient with a static reply.
type Client struct {
	reply string
}

// NewClient constructs a static client returning the default canned review.
func NewClient() *Client {
	return &Client{reply: canned}
}

// NewClientWithReply constructs a static client returning the given text.
func NewClientWithReply(reply string) *Client {
	return &Client{reply: reply}
}

// Complete returns the canned reply without any network access.
func (c *Client) Complete(ctx context.Context, req review.ChatRequest) (review.ChatResponse, error) {
	return review.ChatResponse{
		Text:         c.reply,
		Model:        modelName,
		FinishReason: "stop",
	}, nil
}
