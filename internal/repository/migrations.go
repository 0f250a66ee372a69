package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS stories (
	id BIGSERIAL PRIMARY KEY,
	story TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	school TEXT,
	grades TEXT,
	role TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_stories_created_at ON stories(created_at DESC);
`

// Migrate applies the schema. Idempotent; runs on every startup.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	return err
}
