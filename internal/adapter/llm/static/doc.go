// Package static provides a mock inference client that returns a canned,
// pre-determined review reply. This is useful for testing the review engine
// and the CLI without making live API calls.
package static
