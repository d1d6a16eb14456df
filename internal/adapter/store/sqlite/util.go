package sqlite

import "encoding/json"

// Suggestions are stored as a JSON array in a single column; they are
// free-form model text and may contain any delimiter.

func joinSuggestions(suggestions []string) string {
	if suggestions == nil {
		suggestions = []string{}
	}
	data, err := json.Marshal(suggestions)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func splitSuggestions(encoded string) []string {
	var suggestions []string
	if err := json.Unmarshal([]byte(encoded), &suggestions); err != nil || suggestions == nil {
		return []string{}
	}
	return suggestions
}
