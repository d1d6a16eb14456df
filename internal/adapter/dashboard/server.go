// Package dashboard serves a small local web view over review history.
// It is a presentation wrapper only: all review semantics live in the
// review and gate packages.
package dashboard

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/bkyoung/smart-code-reviewer/internal/adapter/store/sqlite"
)

// HistorySource provides persisted reviews for display.
type HistorySource interface {
	ListReviews(ctx context.Context, limit int) ([]sqlite.Record, error)
}

// Handler serves the dashboard pages and JSON API.
type Handler struct {
	mux     *http.ServeMux
	history HistorySource
	tmpl    *template.Template
}

// NewHandler creates a handler with all routes registered.
func NewHandler(history HistorySource) *Handler {
	h := &Handler{
		mux:     http.NewServeMux(),
		history: history,
		tmpl:    template.Must(template.New("index").Parse(indexTemplate)),
	}
	h.mux.HandleFunc("/", h.handleIndex)
	h.mux.HandleFunc("/api/reviews", h.handleReviews)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	records, err := h.history.ListReviews(r.Context(), 50)
	if err != nil {
		http.Error(w, "failed to load review history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, records); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func (h *Handler) handleReviews(w http.ResponseWriter, r *http.Request) {
	records, err := h.history.ListReviews(r.Context(), 50)
	if err != nil {
		http.Error(w, "failed to load review history", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []sqlite.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		http.Error(w, "failed to encode reviews", http.StatusInternalServerError)
	}
}

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Smart Code Reviewer</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2rem auto; color: #1e293b; }
h1 { font-size: 1.6rem; }
.review { border: 1px solid #e2e8f0; border-radius: 8px; padding: 1rem; margin-bottom: 1rem; }
.score { font-weight: bold; }
.pass { color: #16a34a; }
.fail { color: #dc2626; }
.meta { color: #64748b; font-size: 0.85rem; }
.category { margin: 0.5rem 0 0 1rem; }
</style>
</head>
<body>
<h1>Smart Code Reviewer</h1>
{{if not .}}<p>No reviews recorded yet.</p>{{end}}
{{range .}}
<div class="review">
  <div>
    <span class="score {{if .Passed}}pass{{else}}fail{{end}}">{{printf "%.1f" .OverallScore}}/10</span>
    <strong>{{.Path}}</strong>
    <span class="meta">{{.Language}} &middot; {{.CreatedAt.Format "2006-01-02 15:04"}}</span>
  </div>
  <p>{{.TLDR}}</p>
  {{range .Categories}}
  <div class="category">
    <strong>{{.Category}}</strong>: {{.Score}}/10 &mdash; {{.Summary}}
    {{if .Suggestions}}<ol>{{range .Suggestions}}<li>{{.}}</li>{{end}}</ol>{{end}}
  </div>
  {{end}}
</div>
{{end}}
</body>
</html>
`
