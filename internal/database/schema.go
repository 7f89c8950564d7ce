package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pagesmith/internal/repository/postgres"
)

// EnsureSchema creates the prefixed tables if they do not exist. Table names
// carry the environment prefix, so each environment gets its own set inside
// one database.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				credits INTEGER NOT NULL DEFAULT 0 CHECK (credits >= 0),
				total_creations INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL REFERENCES %s(id),
				name TEXT NOT NULL,
				initial_prompt TEXT NOT NULL,
				current_code TEXT,
				current_version_id TEXT,
				is_published BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Projects, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				project_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				code TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Versions, tables.Projects),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				project_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				role TEXT NOT NULL CHECK (role IN ('user', 'assistant')),
				content TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Conversations, tables.Projects),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_project_created_idx
			ON %s (project_id, created_at)
		`, tables.Versions, tables.Versions),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_project_created_idx
			ON %s (project_id, created_at)
		`, tables.Conversations, tables.Conversations),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
