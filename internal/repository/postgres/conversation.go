package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pagesmith/internal/domain"
	"pagesmith/internal/domain/models"
	"pagesmith/internal/domain/repositories"
)

// PostgresConversationRepository implements the ConversationRepository
// interface. The log is append-only.
type PostgresConversationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewConversationRepository creates a new conversation repository.
func NewConversationRepository(config *RepositoryConfig) repositories.ConversationRepository {
	return &PostgresConversationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Append adds an entry to a project's conversation log.
func (r *PostgresConversationRepository) Append(ctx context.Context, entry *models.ConversationEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, project_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, r.tables.Conversations)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		entry.ID,
		entry.ProjectID,
		entry.Role,
		entry.Content,
		entry.CreatedAt,
	).Scan(&entry.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", entry.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("append conversation entry: %w", err)
	}

	return nil
}

// ListByProject retrieves a project's conversation log, oldest first.
func (r *PostgresConversationRepository) ListByProject(ctx context.Context, projectID string) ([]models.ConversationEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, role, content, created_at
		FROM %s
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, r.tables.Conversations)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	defer rows.Close()

	var entries []models.ConversationEntry
	for rows.Next() {
		var entry models.ConversationEntry
		err := rows.Scan(
			&entry.ID,
			&entry.ProjectID,
			&entry.Role,
			&entry.Content,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan conversation entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversation: %w", err)
	}

	if entries == nil {
		entries = []models.ConversationEntry{}
	}

	return entries, nil
}
