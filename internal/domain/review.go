package domain

import "fmt"

const (
	CategoryReadability     = "Readability"
	CategoryStructure       = "Structure"
	CategoryMaintainability = "Maintainability"
)

// Categories lists the three review dimensions in their conventional order.
var Categories = []string{
	CategoryReadability,
	CategoryStructure,
	CategoryMaintainability,
}

// KnownCategory reports whether name is one of the fixed review categories.
func KnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// CategoryFeedback is the model's verdict for a single review dimension.
type CategoryFeedback struct {
	Category    string   `json:"category"`
	Score       int      `json:"score"` // 1-10
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
}

// ReviewResult is the validated outcome of one review call. It is
// constructed once by the review engine and never mutated afterwards.
type ReviewResult struct {
	Language     string             `json:"language"`
	Categories   []CategoryFeedback `json:"categories"`
	OverallScore float64            `json:"overall_score"`
	TLDR         string             `json:"tldr"`

	// RawResponse is the unparsed model reply, kept for diagnostics only.
	RawResponse string `json:"-"`
}

// Category returns the feedback for the named category.
func (r ReviewResult) Category(name string) (CategoryFeedback, bool) {
	for _, c := range r.Categories {
		if c.Category == name {
			return c, true
		}
	}
	return CategoryFeedback{}, false
}

// MeanScore is the arithmetic mean of the category scores, rounded to one
// decimal place the way the model is instructed to round overall_score.
func (r ReviewResult) MeanScore() float64 {
	if len(r.Categories) == 0 {
		return 0
	}
	sum := 0
	for _, c := range r.Categories {
		sum += c.Score
	}
	mean := float64(sum) / float64(len(r.Categories))
	return float64(int(mean*10+0.5)) / 10
}

// String renders a compact one-line description for logs.
func (r ReviewResult) String() string {
	return fmt.Sprintf("%s review: %.1f/10", r.Language, r.OverallScore)
}
