package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/vbonduro/menupick/internal/domain"
)

type RecommendationStore struct {
	db *sql.DB
}

func NewRecommendationStore(db *sql.DB) *RecommendationStore {
	return &RecommendationStore{db: db}
}

// Create inserts rec with a fresh id and returns the stored row. rec.ID and
// rec.CreatedAt are ignored.
func (s *RecommendationStore) Create(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recommendations (id, menu_text, image_mime, image_bytes, backend, model, text)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, rec.MenuText, rec.ImageMIME, rec.ImageBytes, rec.Backend, rec.Model, rec.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommendation: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *RecommendationStore) GetByID(ctx context.Context, id string) (*domain.Recommendation, error) {
	rec := &domain.Recommendation{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, menu_text, image_mime, image_bytes, backend, model, text, created_at
		FROM recommendations WHERE id = ?
	`, id).Scan(&rec.ID, &rec.MenuText, &rec.ImageMIME, &rec.ImageBytes, &rec.Backend, &rec.Model, &rec.Text, &rec.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}

	return rec, nil
}

// ListRecent returns up to limit entries, newest first.
func (s *RecommendationStore) ListRecent(ctx context.Context, limit int) ([]*domain.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, menu_text, image_mime, image_bytes, backend, model, text, created_at
		FROM recommendations ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	recs := make([]*domain.Recommendation, 0)
	for rows.Next() {
		rec := &domain.Recommendation{}
		if err := rows.Scan(&rec.ID, &rec.MenuText, &rec.ImageMIME, &rec.ImageBytes, &rec.Backend, &rec.Model, &rec.Text, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendations: %w", err)
	}

	return recs, nil
}

func (s *RecommendationStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM recommendations WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recommendation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("recommendation not found")
	}

	return nil
}
