// Package gate decides whether a review result clears a numeric threshold
// and renders the plain-text report used for automated gating. It does no
// I/O and makes no remote calls.
package gate

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bkyoung/smart-code-reviewer/internal/domain"
)

// DefaultThreshold is the pass mark on the 0-10 scale.
const DefaultThreshold = 6.0

// Outcome is the gate decision for a single reviewed input.
type Outcome struct {
	Passed bool
	Report string
}

// Evaluate compares a review result against threshold. The comparison is
// inclusive: a score exactly equal to the threshold passes.
//
// The report always carries the identifier (may be empty for single-input
// use), overall score, detected language, and TL;DR. On failure every
// category is expanded with its score, summary, and numbered suggestions;
// verbose=false suppresses that expansion but the score and TL;DR remain.
func Evaluate(result domain.ReviewResult, threshold float64, identifier string, verbose bool) Outcome {
	passed := result.OverallScore >= threshold

	var b strings.Builder
	writeHeader(&b, result, identifier)

	if !passed && verbose {
		writeCategories(&b, result)
	}

	return Outcome{Passed: passed, Report: b.String()}
}

// Describe renders the full review breakdown regardless of any threshold.
// Used for demo output where there is no gating decision to make.
func Describe(result domain.ReviewResult, identifier string) string {
	var b strings.Builder
	writeHeader(&b, result, identifier)
	writeCategories(&b, result)
	return b.String()
}

func writeHeader(b *strings.Builder, result domain.ReviewResult, identifier string) {
	label := identifier
	if label != "" {
		label += ": "
	}
	fmt.Fprintf(b, "%s%.1f/10 [%s]\n", label, result.OverallScore, languageLabel(result.Language))
	fmt.Fprintf(b, "%s\n", result.TLDR)
}

func writeCategories(b *strings.Builder, result domain.ReviewResult) {
	for _, cat := range result.Categories {
		fmt.Fprintf(b, "\n%s: %d/10\n", cat.Category, cat.Score)
		fmt.Fprintf(b, "  %s\n", cat.Summary)
		for i, s := range cat.Suggestions {
			fmt.Fprintf(b, "  %d. %s\n", i+1, s)
		}
	}
}

// languageLabel normalizes the model-supplied language name for display
// ("python" and "Python" render the same way).
func languageLabel(lang string) string {
	return cases.Title(language.Und).String(lang)
}

// FileOutcome records the gate decision for one input of a batch.
type FileOutcome struct {
	Path    string
	Passed  bool
	Skipped bool
	Score   float64
	Err     error
}

// BatchResult aggregates per-input outcomes. The aggregate decision is
// fail-if-any: a single failing input fails the whole batch.
type BatchResult struct {
	Outcomes []FileOutcome
}

// Add appends one input's outcome.
func (b *BatchResult) Add(o FileOutcome) {
	b.Outcomes = append(b.Outcomes, o)
}

// Failed returns the outcomes that failed, in input order. Skipped inputs
// never count as failures; errored inputs always do.
func (b *BatchResult) Failed() []FileOutcome {
	var failed []FileOutcome
	for _, o := range b.Outcomes {
		if o.Skipped {
			continue
		}
		if !o.Passed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Passed reports whether every non-skipped input passed.
func (b *BatchResult) Passed() bool {
	return len(b.Failed()) == 0
}

// Report lists every failing input with its score, or a pass confirmation.
func (b *BatchResult) Report() string {
	failed := b.Failed()
	if len(failed) == 0 {
		return "All files passed review"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d file(s) failed review:\n", len(failed))
	for _, o := range failed {
		if o.Err != nil {
			fmt.Fprintf(&sb, "  %s: error: %v\n", o.Path, o.Err)
			continue
		}
		fmt.Fprintf(&sb, "  %s: %.1f/10\n", o.Path, o.Score)
	}
	return sb.String()
}
