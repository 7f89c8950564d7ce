package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pagesmith/internal/domain"
	"pagesmith/internal/domain/models"
	"pagesmith/internal/domain/repositories"
)

// PostgresVersionRepository implements the VersionRepository interface.
// Versions are append-only: there is intentionally no Update or Delete.
type PostgresVersionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewVersionRepository creates a new version repository.
func NewVersionRepository(config *RepositoryConfig) repositories.VersionRepository {
	return &PostgresVersionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create appends a new version snapshot.
func (r *PostgresVersionRepository) Create(ctx context.Context, version *models.Version) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, project_id, code, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, r.tables.Versions)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		version.ID,
		version.ProjectID,
		version.Code,
		version.Description,
		version.CreatedAt,
	).Scan(&version.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", version.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create version: %w", err)
	}

	return nil
}

// GetByID retrieves a version that belongs to the given project.
func (r *PostgresVersionRepository) GetByID(ctx context.Context, id, projectID string) (*models.Version, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, code, description, created_at
		FROM %s
		WHERE id = $1 AND project_id = $2
	`, r.tables.Versions)

	var version models.Version
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, projectID).Scan(
		&version.ID,
		&version.ProjectID,
		&version.Code,
		&version.Description,
		&version.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("version %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get version: %w", err)
	}

	return &version, nil
}

// ListByProject retrieves all versions for a project, oldest first.
func (r *PostgresVersionRepository) ListByProject(ctx context.Context, projectID string) ([]models.Version, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, code, description, created_at
		FROM %s
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, r.tables.Versions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var versions []models.Version
	for rows.Next() {
		var version models.Version
		err := rows.Scan(
			&version.ID,
			&version.ProjectID,
			&version.Code,
			&version.Description,
			&version.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, version)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}

	if versions == nil {
		versions = []models.Version{}
	}

	return versions, nil
}

// CountByProject returns the number of versions in a project's ledger.
func (r *PostgresVersionRepository) CountByProject(ctx context.Context, projectID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE project_id = $1
	`, r.tables.Versions)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, projectID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count versions: %w", err)
	}

	return count, nil
}
