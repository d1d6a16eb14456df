package http

import (
	"regexp"
	"strings"
)

var (
	// Compile regex once and reuse (thread-safe)
	// Matches from ```json (or ```) at the start to the LAST ``` in the
	// text (greedy), not the first.
	jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*([\\s\\S]*)```")
)

// ExtractJSONFromMarkdown strips markdown code fences from a model reply.
//
// Models are instructed to return a bare JSON object, but some wrap it in
// ```json fences anyway. Supports both ```json and ``` blocks. Uses greedy
// matching from the first opening backticks to the LAST closing backticks so
// that nested fenced code inside JSON string values (e.g. a suggestion that
// quotes example code) does not terminate the match early.
//
// Returns extracted content, or the trimmed original text if no fence is
// found. Calling it on already-unfenced text is a no-op beyond trimming, so
// the operation is idempotent.
func ExtractJSONFromMarkdown(text string) string {
	matches := jsonBlockRegex.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	// No code block found, might already be raw JSON
	return strings.TrimSpace(text)
}
