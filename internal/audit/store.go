// Package audit keeps a log of finished evaluations. Only scores and
// metadata are stored, never the article text.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/db"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/evaluation"
)

type Record struct {
	ID           string         `json:"id"`
	CreatedAt    int64          `json:"createdAt"`
	Model        string         `json:"model"`
	Source       string         `json:"source"`
	TextLength   int            `json:"textLength"`
	OverallScore int            `json:"overallScore"`
	Label        string         `json:"label"`
	Title        string         `json:"title"`
	Outlet       string         `json:"outlet"`
	Repaired     bool           `json:"repaired"`
	Scores       map[string]int `json:"scores"`
}

// FromResult builds a record for a completed evaluation.
func FromResult(res *evaluation.Result, model, source string, textLength int) Record {
	return Record{
		Model:        model,
		Source:       source,
		TextLength:   textLength,
		OverallScore: res.OverallScore,
		Label:        res.Label,
		Title:        res.Metadata.Title,
		Outlet:       res.Metadata.Outlet,
		Repaired:     res.Repaired,
		Scores:       res.Scores,
	}
}

type Store struct {
	db     *sql.DB
	driver db.Driver
	now    func() time.Time
}

func NewStore(h *sql.DB, driver db.Driver) *Store {
	return &Store{db: h, driver: driver, now: time.Now}
}

// Append stores rec, assigning ID and CreatedAt when unset, and returns the
// stored record.
func (s *Store) Append(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = s.now().Unix()
	}
	scores, err := json.Marshal(rec.Scores)
	if err != nil {
		return rec, fmt.Errorf("marshal scores: %w", err)
	}
	_, err = s.db.ExecContext(ctx, db.Rebind(s.driver,
		`INSERT INTO evaluations (id, created_at, model, source, text_length, overall_score, label, title, outlet, repaired, scores_json)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`),
		rec.ID, rec.CreatedAt, rec.Model, rec.Source, rec.TextLength, rec.OverallScore,
		rec.Label, rec.Title, rec.Outlet, rec.Repaired, string(scores))
	if err != nil {
		return rec, fmt.Errorf("insert evaluation: %w", err)
	}
	return rec, nil
}

const (
	defaultRecent = 50
	maxRecent     = 500
)

// Recent lists up to limit records, newest first. A non-positive limit means
// the default page size; larger limits are capped.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	switch {
	case limit <= 0:
		limit = defaultRecent
	case limit > maxRecent:
		limit = maxRecent
	}
	rows, err := s.db.QueryContext(ctx, db.Rebind(s.driver,
		`SELECT id, created_at, model, source, text_length, overall_score, label, title, outlet, repaired, scores_json
		 FROM evaluations ORDER BY created_at DESC, id DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var (
			rec    Record
			scores string
		)
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.Model, &rec.Source, &rec.TextLength,
			&rec.OverallScore, &rec.Label, &rec.Title, &rec.Outlet, &rec.Repaired, &scores); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(scores), &rec.Scores); err != nil {
			return nil, fmt.Errorf("evaluation %s: scores: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
