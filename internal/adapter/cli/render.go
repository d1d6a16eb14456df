package cli

import "strings"

// indentContinuation keeps a multi-line report aligned under its status
// mark: the first line stays in place, every following line is indented
// two spaces.
func indentContinuation(report string) string {
	report = strings.TrimRight(report, "\n")
	lines := strings.Split(report, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = "  " + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
