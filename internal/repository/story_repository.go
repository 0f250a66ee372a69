package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lshepard/theaiwhotaughtme/internal/models"
)

// StoryRepository persists story submissions. Stories are append-only; there
// is deliberately no update or delete.
type StoryRepository struct {
	db *sqlx.DB
}

// NewStoryRepository constructs the repository.
func NewStoryRepository(db *sqlx.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

// Insert stores a new story and returns the assigned id.
func (r *StoryRepository) Insert(ctx context.Context, story *models.Story) (int64, error) {
	const query = `INSERT INTO stories (story, name, email, phone, school, grades, role)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at`
	row := r.db.QueryRowxContext(ctx, query,
		story.Story, story.Name, story.Email, story.Phone, story.School, story.Grades, story.Role)
	if err := row.Scan(&story.ID, &story.CreatedAt); err != nil {
		return 0, fmt.Errorf("insert story: %w", err)
	}
	return story.ID, nil
}

// ListAll returns every story, newest first.
func (r *StoryRepository) ListAll(ctx context.Context) ([]models.Story, error) {
	const query = `SELECT id, story, name, email, phone, school, grades, role, created_at
FROM stories ORDER BY created_at DESC`
	var stories []models.Story
	if err := r.db.SelectContext(ctx, &stories, query); err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return stories, nil
}

// GetByID fetches a single story. Callers treat sql.ErrNoRows as not-found.
func (r *StoryRepository) GetByID(ctx context.Context, id int64) (*models.Story, error) {
	const query = `SELECT id, story, name, email, phone, school, grades, role, created_at
FROM stories WHERE id = $1`
	var story models.Story
	if err := r.db.GetContext(ctx, &story, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get story %d: %w", id, err)
	}
	return &story, nil
}
