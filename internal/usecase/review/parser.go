package review

import (
	"encoding/json"
	"fmt"
	"math"

	llmhttp "github.com/bkyoung/smart-code-reviewer/internal/adapter/llm/http"
	"github.com/bkyoung/smart-code-reviewer/internal/domain"
)

const (
	// placeholderLanguage marks a reply that omitted the language field.
	placeholderLanguage = "Unknown"

	// placeholderTLDR marks a reply that omitted the tldr field.
	placeholderTLDR = "(no summary provided)"
)

// ParseError indicates a model reply that could not be parsed or validated
// into a review result.
type ParseError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed review reply: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed review reply: %s", e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// rawResult is the loosely-typed intermediate form of a model reply.
// Pointer fields distinguish absent from zero-valued.
type rawResult struct {
	Language     *string       `json:"language"`
	Categories   []rawCategory `json:"categories"`
	OverallScore *float64      `json:"overall_score"`
	TLDR         *string       `json:"tldr"`
}

type rawCategory struct {
	Category    *string      `json:"category"`
	Score       *json.Number `json:"score"`
	Summary     *string      `json:"summary"`
	Suggestions []string     `json:"suggestions"`
}

// ParseResult turns a raw model reply into a validated ReviewResult.
//
// Decoding is two-phase: a generic structured decode into rawResult, then
// strict field-by-field validation. A reply either produces a fully valid
// result or a *ParseError; the result is never partially populated.
//
// The reply may arrive wrapped in a markdown fence despite the prompt
// forbidding it, so fences are stripped first. Missing language or tldr
// degrade to placeholders; a missing overall_score or any malformed
// category fails the parse, since those carry the entire value of the
// result.
func ParseResult(reply string) (domain.ReviewResult, error) {
	cleaned := llmhttp.ExtractJSONFromMarkdown(reply)

	var raw rawResult
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return domain.ReviewResult{}, &ParseError{Reason: "reply is not a JSON object", Err: err}
	}

	if raw.OverallScore == nil {
		return domain.ReviewResult{}, &ParseError{Reason: "missing overall_score"}
	}

	if len(raw.Categories) != len(domain.Categories) {
		return domain.ReviewResult{}, &ParseError{
			Reason: fmt.Sprintf("expected %d categories, got %d", len(domain.Categories), len(raw.Categories)),
		}
	}

	seen := make(map[string]bool, len(domain.Categories))
	categories := make([]domain.CategoryFeedback, 0, len(raw.Categories))
	for i, rc := range raw.Categories {
		cat, err := validateCategory(i, rc)
		if err != nil {
			return domain.ReviewResult{}, err
		}
		if seen[cat.Category] {
			return domain.ReviewResult{}, &ParseError{
				Reason: fmt.Sprintf("duplicate category %q", cat.Category),
			}
		}
		seen[cat.Category] = true
		categories = append(categories, cat)
	}

	language := placeholderLanguage
	if raw.Language != nil && *raw.Language != "" {
		language = *raw.Language
	}

	tldr := placeholderTLDR
	if raw.TLDR != nil && *raw.TLDR != "" {
		tldr = *raw.TLDR
	}

	return domain.ReviewResult{
		Language:     language,
		Categories:   categories,
		OverallScore: *raw.OverallScore,
		TLDR:         tldr,
		RawResponse:  reply,
	}, nil
}

// validateCategory promotes one loosely-typed category into a
// CategoryFeedback, or explains why it cannot.
func validateCategory(index int, rc rawCategory) (domain.CategoryFeedback, error) {
	if rc.Category == nil || *rc.Category == "" {
		return domain.CategoryFeedback{}, &ParseError{
			Reason: fmt.Sprintf("category %d has no name", index),
		}
	}
	if !domain.KnownCategory(*rc.Category) {
		return domain.CategoryFeedback{}, &ParseError{
			Reason: fmt.Sprintf("unknown category %q", *rc.Category),
		}
	}
	if rc.Score == nil {
		return domain.CategoryFeedback{}, &ParseError{
			Reason: fmt.Sprintf("category %q has no score", *rc.Category),
		}
	}

	score, err := integralScore(*rc.Score)
	if err != nil {
		return domain.CategoryFeedback{}, &ParseError{
			Reason: fmt.Sprintf("category %q score is not an integer", *rc.Category),
			Err:    err,
		}
	}

	summary := ""
	if rc.Summary != nil {
		summary = *rc.Summary
	}

	suggestions := rc.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}

	return domain.CategoryFeedback{
		Category:    *rc.Category,
		Score:       score,
		Summary:     summary,
		Suggestions: suggestions,
	}, nil
}

// integralScore converts a JSON number to an int, accepting floats only when
// they carry no fractional part (models frequently emit 8.0 for 8).
func integralScore(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v has a fractional part", f)
	}
	return int(f), nil
}
