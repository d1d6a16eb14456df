// Package sqlite persists completed reviews so the dashboard can show
// history across runs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bkyoung/smart-code-reviewer/internal/domain"
	_ "github.com/mattn/go-sqlite3"
)

// Record is one persisted review.
type Record struct {
	ID           int64
	CreatedAt    time.Time
	Path         string
	Language     string
	OverallScore float64
	TLDR         string
	Passed       bool
	Categories   []domain.CategoryFeedback
	RawResponse  string
}

// Store implements review history persistence using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite store at the given path.
// Use ":memory:" for an in-memory database (useful for testing).
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}

	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// createSchema creates all tables and indexes if they don't exist.
func (s *Store) createSchema() error {
	schema := `
	-- One row per completed review
	CREATE TABLE IF NOT EXISTS reviews (
		review_id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at INTEGER NOT NULL,
		path TEXT NOT NULL,
		language TEXT NOT NULL,
		overall_score REAL NOT NULL,
		tldr TEXT NOT NULL,
		passed INTEGER NOT NULL,
		raw_response TEXT
	);

	-- Per-category feedback for each review
	CREATE TABLE IF NOT EXISTS categories (
		category_id INTEGER PRIMARY KEY AUTOINCREMENT,
		review_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		score INTEGER NOT NULL,
		summary TEXT NOT NULL,
		suggestions TEXT NOT NULL,
		FOREIGN KEY (review_id) REFERENCES reviews(review_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_reviews_created_at ON reviews(created_at);
	CREATE INDEX IF NOT EXISTS idx_categories_review_id ON categories(review_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}
	return nil
}

// SaveReview persists a completed review together with its categories.
func (s *Store) SaveReview(ctx context.Context, path string, result domain.ReviewResult, passed bool) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO reviews (created_at, path, language, overall_score, tldr, passed, raw_response)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Unix(), path, result.Language, result.OverallScore, result.TLDR, boolToInt(passed), result.RawResponse,
	)
	if err != nil {
		return 0, fmt.Errorf("insert review: %w", err)
	}

	reviewID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	for _, cat := range result.Categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (review_id, name, score, summary, suggestions)
			 VALUES (?, ?, ?, ?, ?)`,
			reviewID, cat.Category, cat.Score, cat.Summary, joinSuggestions(cat.Suggestions),
		); err != nil {
			return 0, fmt.Errorf("insert category %s: %w", cat.Category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return reviewID, nil
}

// ListReviews returns the most recent reviews, newest first.
func (s *Store) ListReviews(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT review_id, created_at, path, language, overall_score, tldr, passed, raw_response
		 FROM reviews ORDER BY created_at DESC, review_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var createdAt int64
		var passed int
		var raw sql.NullString
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Path, &rec.Language, &rec.OverallScore, &rec.TLDR, &passed, &raw); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0)
		rec.Passed = passed != 0
		rec.RawResponse = raw.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	for i := range records {
		cats, err := s.loadCategories(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Categories = cats
	}

	return records, nil
}

func (s *Store) loadCategories(ctx context.Context, reviewID int64) ([]domain.CategoryFeedback, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, score, summary, suggestions FROM categories
		 WHERE review_id = ? ORDER BY category_id`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var cats []domain.CategoryFeedback
	for rows.Next() {
		var cat domain.CategoryFeedback
		var suggestions string
		if err := rows.Scan(&cat.Category, &cat.Score, &cat.Summary, &suggestions); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cat.Suggestions = splitSuggestions(suggestions)
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
