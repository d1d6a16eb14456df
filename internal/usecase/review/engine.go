// Package review implements the review request/response pipeline: prompt
// construction, the single round trip to the inference service, and the
// defensive parsing of the reply into a validated domain.ReviewResult.
package review

import (
	"context"
	"errors"
	"strings"

	llmhttp "github.com/bkyoung/smart-code-reviewer/internal/adapter/llm/http"
	"github.com/bkyoung/smart-code-reviewer/internal/domain"
)

const (
	// defaultTemperature favours determinism over creativity.
	defaultTemperature = 0.3

	// defaultMaxTokens is generous enough for three detailed categories
	// plus suggestions.
	defaultMaxTokens = 4096
)

var (
	// ErrNotConfigured indicates no inference client was supplied, typically
	// because no API key is configured. Surfaced before any request.
	ErrNotConfigured = errors.New("review engine not configured: no inference client")

	// ErrEmptyInput indicates the submitted code is empty or whitespace-only.
	// Rejected locally, never billed to the remote service.
	ErrEmptyInput = errors.New("nothing to review: code is empty")
)

// ChatRequest is one chat-style completion request to the inference service.
type ChatRequest struct {
	System      string
	User        string
	Model       string
	Temperature float64
	MaxTokens   int
}

// ChatResponse is the single textual completion returned by the service.
type ChatResponse struct {
	Text         string
	Model        string
	FinishReason string
	TokensIn     int
	TokensOut    int
}

// ChatClient is the transport port to the inference service. Implementations
// must be safe for concurrent read-only use once constructed.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// Engine owns the connection to the inference service and turns raw model
// replies into validated review results. The client is set once at
// construction and read thereafter.
type Engine struct {
	client ChatClient
	logger llmhttp.Logger
}

// NewEngine constructs an Engine over the supplied client. A nil client is
// allowed; Review then fails with ErrNotConfigured.
func NewEngine(client ChatClient) *Engine {
	return &Engine{client: client}
}

// SetLogger installs a logger for validation warnings. Optional.
func (e *Engine) SetLogger(logger llmhttp.Logger) {
	e.logger = logger
}

// Review sends code to the inference service and returns the validated
// result. One request, one parse, one result or one failure: no retries, no
// caching, no streaming.
//
// Failure modes: ErrNotConfigured when no client is set, ErrEmptyInput for
// blank input, *llmhttp.Error when the remote call fails, and *ParseError
// when the reply cannot be parsed into a valid result.
func (e *Engine) Review(ctx context.Context, code string) (domain.ReviewResult, error) {
	if e.client == nil {
		return domain.ReviewResult{}, ErrNotConfigured
	}
	if strings.TrimSpace(code) == "" {
		return domain.ReviewResult{}, ErrEmptyInput
	}

	resp, err := e.client.Complete(ctx, ChatRequest{
		System:      SystemPrompt(),
		User:        UserPrompt(code),
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return domain.ReviewResult{}, err
	}

	result, err := ParseResult(resp.Text)
	if err != nil {
		if e.logger != nil {
			e.logger.LogWarning(ctx, "discarding unparseable reply", map[string]interface{}{
				"error": err.Error(),
				"reply": llmhttp.TruncateForLogging(resp.Text),
			})
		}
		return domain.ReviewResult{}, err
	}

	e.warnOnInconsistencies(ctx, result)

	return result, nil
}

// warnOnInconsistencies logs validation warnings for replies that are
// accepted but arithmetically suspect: out-of-range category scores, or an
// overall score that disagrees with the mean of the category scores. Neither
// condition fails the review.
func (e *Engine) warnOnInconsistencies(ctx context.Context, result domain.ReviewResult) {
	if e.logger == nil {
		return
	}

	for _, cat := range result.Categories {
		if cat.Score < 1 || cat.Score > 10 {
			e.logger.LogWarning(ctx, "category score outside 1-10 range", map[string]interface{}{
				"category": cat.Category,
				"score":    cat.Score,
			})
		}
	}

	mean := result.MeanScore()
	diff := result.OverallScore - mean
	if diff < 0 {
		diff = -diff
	}
	if diff > 0.05 {
		e.logger.LogWarning(ctx, "overall score disagrees with category mean", map[string]interface{}{
			"overall_score": result.OverallScore,
			"computed_mean": mean,
		})
	}
}
