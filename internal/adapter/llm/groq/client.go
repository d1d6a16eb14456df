// Package groq provides an HTTP client for the Groq chat completions API.
// Groq exposes an OpenAI-compatible surface, so the wire types mirror the
// chat completions schema.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	llmhttp "github.com/bkyoung/smart-code-reviewer/internal/adapter/llm/http"
	"github.com/bkyoung/smart-code-reviewer/internal/usecase/review"
)

const (
	defaultBaseURL = "https://api.groq.com/openai"
	defaultTimeout = 60 * time.Second

	providerName = "groq"
)

// HTTPClient is an HTTP client for the Groq API.
type HTTPClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  llmhttp.Logger
}

// NewHTTPClient creates a new Groq HTTP client.
func NewHTTPClient(apiKey, model string) *HTTPClient {
	return &HTTPClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// SetBaseURL sets a custom base URL (for testing).
func (c *HTTPClient) SetBaseURL(url string) {
	c.baseURL = url
}

// SetTimeout sets the HTTP timeout.
func (c *HTTPClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetLogger installs a structured logger for request/response logging.
func (c *HTTPClient) SetLogger(logger llmhttp.Logger) {
	c.logger = logger
}

// Complete issues one synchronous chat completion request and returns the
// single textual reply. It implements review.ChatClient.
func (c *HTTPClient) Complete(ctx context.Context, chatReq review.ChatRequest) (review.ChatResponse, error) {
	model := c.model
	if chatReq.Model != "" {
		model = chatReq.Model
	}

	reqBody := ChatCompletionRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: chatReq.System},
			{Role: "user", Content: chatReq.User},
		},
		Temperature: chatReq.Temperature,
		MaxTokens:   chatReq.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return review.ChatResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return review.ChatResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	if c.logger != nil {
		c.logger.LogRequest(ctx, llmhttp.RequestLog{
			Provider:    providerName,
			Model:       model,
			Timestamp:   start,
			PromptChars: len(chatReq.System) + len(chatReq.User),
			APIKey:      c.apiKey,
		})
	}

	resp, err := c.client.Do(req)
	if err != nil {
		var transportErr *llmhttp.Error
		if ctx.Err() == context.DeadlineExceeded {
			transportErr = llmhttp.NewTimeoutError(providerName, "request timed out")
		} else {
			transportErr = llmhttp.NewTimeoutError(providerName, err.Error())
		}
		c.logError(ctx, model, start, transportErr)
		return review.ChatResponse{}, transportErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return review.ChatResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		transportErr := c.handleErrorResponse(resp.StatusCode, body)
		c.logError(ctx, model, start, transportErr)
		return review.ChatResponse{}, transportErr
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return review.ChatResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return review.ChatResponse{}, llmhttp.NewServiceUnavailableError(providerName, "no choices in response")
	}

	if c.logger != nil {
		c.logger.LogResponse(ctx, llmhttp.ResponseLog{
			Provider:     providerName,
			Model:        chatResp.Model,
			Timestamp:    time.Now(),
			Duration:     time.Since(start),
			TokensIn:     chatResp.Usage.PromptTokens,
			TokensOut:    chatResp.Usage.CompletionTokens,
			StatusCode:   resp.StatusCode,
			FinishReason: chatResp.Choices[0].FinishReason,
		})
	}

	return review.ChatResponse{
		Text:         chatResp.Choices[0].Message.Content,
		Model:        chatResp.Model,
		FinishReason: chatResp.Choices[0].FinishReason,
		TokensIn:     chatResp.Usage.PromptTokens,
		TokensOut:    chatResp.Usage.CompletionTokens,
	}, nil
}

func (c *HTTPClient) logError(ctx context.Context, model string, start time.Time, err *llmhttp.Error) {
	if c.logger == nil {
		return
	}
	c.logger.LogError(ctx, llmhttp.ErrorLog{
		Provider:   providerName,
		Model:      model,
		Timestamp:  time.Now(),
		Duration:   time.Since(start),
		Error:      err,
		ErrorType:  err.Type,
		StatusCode: err.StatusCode,
	})
}

// handleErrorResponse converts HTTP error responses to typed errors.
func (c *HTTPClient) handleErrorResponse(statusCode int, body []byte) *llmhttp.Error {
	defaultMessage := fmt.Sprintf("HTTP %d", statusCode)

	// Try to parse the API error format for a better message
	var errResp ErrorResponse
	message := defaultMessage
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	} else if len(body) > 0 && len(body) < 200 {
		message = string(body)
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return llmhttp.NewAuthenticationError(providerName, message)
	case http.StatusTooManyRequests:
		return llmhttp.NewRateLimitError(providerName, message)
	case http.StatusBadRequest:
		return llmhttp.NewInvalidRequestError(providerName, message)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return llmhttp.NewServiceUnavailableError(providerName, message)
	default:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeUnknown,
			Message:    message,
			StatusCode: statusCode,
			Provider:   providerName,
		}
	}
}
