package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lshepard/theaiwhotaughtme/internal/models"
)

func newStoryRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func strPtr(value string) *string {
	return &value
}

func TestStoryRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newStoryRepoMock(t)
	defer cleanup()

	repo := NewStoryRepository(db)
	createdAt := time.Now()
	mock.ExpectQuery("INSERT INTO stories").
		WithArgs("Uses AI for lesson planning", "Jane Doe", "jane@school.edu", nil, "Lincoln HS", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), createdAt))

	story := &models.Story{
		Story:  "Uses AI for lesson planning",
		Name:   "Jane Doe",
		Email:  strPtr("jane@school.edu"),
		School: strPtr("Lincoln HS"),
	}
	id, err := repo.Insert(context.Background(), story)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, int64(42), story.ID)
	assert.Equal(t, createdAt, story.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoryRepositoryListAllOrdersByRecency(t *testing.T) {
	db, mock, cleanup := newStoryRepoMock(t)
	defer cleanup()

	repo := NewStoryRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "story", "name", "email", "phone", "school", "grades", "role", "created_at"}).
		AddRow(int64(2), "second", "B", nil, "555-0102", nil, nil, nil, now).
		AddRow(int64(1), "first", "A", "a@example.com", nil, nil, nil, nil, now.Add(-time.Hour))
	mock.ExpectQuery("SELECT id, story, name, email, phone, school, grades, role, created_at\nFROM stories ORDER BY created_at DESC").
		WillReturnRows(rows)

	stories, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, int64(2), stories[0].ID)
	assert.True(t, stories[0].CreatedAt.After(stories[1].CreatedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoryRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newStoryRepoMock(t)
	defer cleanup()

	repo := NewStoryRepository(db)
	mock.ExpectQuery("SELECT id, story, name").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStoryRepositoryGetByIDRoundTrip(t *testing.T) {
	db, mock, cleanup := newStoryRepoMock(t)
	defer cleanup()

	repo := NewStoryRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "story", "name", "email", "phone", "school", "grades", "role", "created_at"}).
		AddRow(int64(7), "Uses AI for lesson planning", "Jane Doe", "jane@school.edu", nil, "Lincoln HS", nil, nil, now)
	mock.ExpectQuery("SELECT id, story, name").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	story, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", story.Name)
	assert.Equal(t, "Uses AI for lesson planning", story.Story)
	require.NotNil(t, story.Email)
	assert.Equal(t, "jane@school.edu", *story.Email)
}
