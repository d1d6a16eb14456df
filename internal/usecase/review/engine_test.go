package review_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmhttp "github.com/bkyoung/smart-code-reviewer/internal/adapter/llm/http"
	"github.com/bkyoung/smart-code-reviewer/internal/usecase/gate"
	"github.com/bkyoung/smart-code-reviewer/internal/usecase/review"
)

// fakeClient implements review.ChatClient with a fixed reply or error.
type fakeClient struct {
	reply    string
	err      error
	requests []review.ChatRequest
}

func (f *fakeClient) Complete(ctx context.Context, req review.ChatRequest) (review.ChatResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return review.ChatResponse{}, f.err
	}
	return review.ChatResponse{Text: f.reply, Model: "fake", FinishReason: "stop"}, nil
}

// recordingLogger captures validation warnings.
type recordingLogger struct {
	llmhttp.Logger
	warnings []string
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{Logger: llmhttp.NewDefaultLogger(llmhttp.LogLevelError, llmhttp.LogFormatHuman, true)}
}

func (l *recordingLogger) LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
	l.warnings = append(l.warnings, message)
}

func TestEngine_Review_Success(t *testing.T) {
	client := &fakeClient{reply: validReply}
	engine := review.NewEngine(client)

	result, err := engine.Review(context.Background(), "def f():\n    return 1\n")
	require.NoError(t, err)

	assert.Equal(t, 7.0, result.OverallScore)
	assert.Len(t, result.Categories, 3)
	assert.Equal(t, validReply, result.RawResponse)

	outcome := gate.Evaluate(result, 6.0, "", true)
	assert.True(t, outcome.Passed)
}

func TestEngine_Review_RequestShape(t *testing.T) {
	client := &fakeClient{reply: validReply}
	engine := review.NewEngine(client)

	code := "package main\n\nfunc main() {}\n"
	_, err := engine.Review(context.Background(), code)
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, review.SystemPrompt(), req.System)
	assert.Contains(t, req.User, code)
	assert.Equal(t, 0.3, req.Temperature)
	assert.Equal(t, 4096, req.MaxTokens)
}

func TestEngine_Review_NotConfigured(t *testing.T) {
	engine := review.NewEngine(nil)

	_, err := engine.Review(context.Background(), "some code")
	assert.ErrorIs(t, err, review.ErrNotConfigured)
}

func TestEngine_Review_EmptyInput(t *testing.T) {
	client := &fakeClient{reply: validReply}
	engine := review.NewEngine(client)

	for _, code := range []string{"", "   ", "\n\t\n"} {
		_, err := engine.Review(context.Background(), code)
		assert.ErrorIs(t, err, review.ErrEmptyInput)
	}

	// Blank input must never reach the remote service.
	assert.Empty(t, client.requests)
}

func TestEngine_Review_TransportErrorPropagates(t *testing.T) {
	transportErr := llmhttp.NewRateLimitError("groq", "quota exhausted")
	client := &fakeClient{err: transportErr}
	engine := review.NewEngine(client)

	_, err := engine.Review(context.Background(), "some code")
	var llmErr *llmhttp.Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, llmhttp.ErrTypeRateLimit, llmErr.Type)
}

func TestEngine_Review_MalformedReply(t *testing.T) {
	client := &fakeClient{reply: "not json"}
	engine := review.NewEngine(client)

	_, err := engine.Review(context.Background(), "some code")
	var parseErr *review.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestEngine_Review_MalformedReplyIsLogged(t *testing.T) {
	client := &fakeClient{reply: "not json"}
	logger := newRecordingLogger()

	engine := review.NewEngine(client)
	engine.SetLogger(logger)

	_, err := engine.Review(context.Background(), "some code")
	require.Error(t, err)

	require.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], "unparseable")
}

func TestEngine_Review_WarnsOnScoreMismatch(t *testing.T) {
	// Categories average 7.0 but the model claims 9.0 overall.
	reply := strings.Replace(validReply, `"overall_score": 7.0`, `"overall_score": 9.0`, 1)
	client := &fakeClient{reply: reply}
	logger := newRecordingLogger()

	engine := review.NewEngine(client)
	engine.SetLogger(logger)

	result, err := engine.Review(context.Background(), "some code")
	require.NoError(t, err)

	// The reported score is kept as-is; the disagreement is only logged.
	assert.Equal(t, 9.0, result.OverallScore)
	require.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], "disagrees")
}

func TestEngine_Review_WarnsOnOutOfRangeScore(t *testing.T) {
	reply := `{
	  "language": "go",
	  "categories": [
	    {"category": "Readability", "score": 11, "summary": "ok"},
	    {"category": "Structure", "score": 6, "summary": "ok"},
	    {"category": "Maintainability", "score": 7, "summary": "ok"}
	  ],
	  "overall_score": 8.0,
	  "tldr": "ok"
	}`
	client := &fakeClient{reply: reply}
	logger := newRecordingLogger()

	engine := review.NewEngine(client)
	engine.SetLogger(logger)

	_, err := engine.Review(context.Background(), "some code")
	require.NoError(t, err)

	require.NotEmpty(t, logger.warnings)
	assert.Contains(t, logger.warnings[0], "outside 1-10 range")
}
