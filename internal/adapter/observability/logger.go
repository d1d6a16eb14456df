// Package observability builds the structured logger from configuration.
package observability

import (
	"strings"

	llmhttp "github.com/bkyoung/smart-code-reviewer/internal/adapter/llm/http"
	"github.com/bkyoung/smart-code-reviewer/internal/config"
)

// BuildLogger creates the structured logger based on configuration.
// Returns nil when logging is disabled.
func BuildLogger(cfg config.LoggingConfig) llmhttp.Logger {
	if !cfg.Enabled {
		return nil
	}
	return llmhttp.NewDefaultLogger(parseLevel(cfg.Level), parseFormat(cfg.Format), cfg.RedactAPIKeys)
}

func parseLevel(level string) llmhttp.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return llmhttp.LogLevelDebug
	case "error":
		return llmhttp.LogLevelError
	default:
		return llmhttp.LogLevelInfo
	}
}

func parseFormat(format string) llmhttp.LogFormat {
	if strings.EqualFold(format, "json") {
		return llmhttp.LogFormatJSON
	}
	return llmhttp.LogFormatHuman
}
