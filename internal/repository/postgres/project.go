package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagesmith/internal/domain"
	"pagesmith/internal/domain/models"
	"pagesmith/internal/domain/repositories"
)

const projectColumns = `id, user_id, name, initial_prompt, current_code, current_version_id, is_published, created_at, updated_at`

// PostgresProjectRepository implements the ProjectRepository interface.
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new project.
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, name, initial_prompt, current_code, current_version_id, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.ID,
		project.UserID,
		project.Name,
		project.InitialPrompt,
		project.CurrentCode,
		project.CurrentVersionID,
		project.IsPublished,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID, scoped to its owner.
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	return r.scanOne(executor.QueryRow(ctx, query, id, userID), id)
}

// GetPublishedByID retrieves a project by ID regardless of owner.
func (r *PostgresProjectRepository) GetPublishedByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	return r.scanOne(executor.QueryRow(ctx, query, id), id)
}

// List retrieves all projects for a user, most recently updated first.
func (r *PostgresProjectRepository) List(ctx context.Context, userID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// ListPublished retrieves all published projects.
func (r *PostgresProjectRepository) ListPublished(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE is_published = TRUE
		ORDER BY updated_at DESC
	`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list published projects: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// SetCurrent updates the cached document and version pointer. A nil versionID
// clears the pointer (unversioned save).
func (r *PostgresProjectRepository) SetCurrent(ctx context.Context, id string, code string, versionID *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET current_code = $2, current_version_id = $3, updated_at = NOW()
		WHERE id = $1
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, code, versionID)
	if err != nil {
		return fmt.Errorf("set current code: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SetPublished flips the publication flag.
func (r *PostgresProjectRepository) SetPublished(ctx context.Context, id string, published bool) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_published = $2, updated_at = NOW()
		WHERE id = $1
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, published)
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the project. Versions and conversation entries go with it
// via ON DELETE CASCADE.
func (r *PostgresProjectRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresProjectRepository) scanOne(row pgx.Row, id string) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Name,
		&project.InitialPrompt,
		&project.CurrentCode,
		&project.CurrentVersionID,
		&project.IsPublished,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

func (r *PostgresProjectRepository) scanAll(rows pgx.Rows) ([]models.Project, error) {
	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID,
			&project.UserID,
			&project.Name,
			&project.InitialPrompt,
			&project.CurrentCode,
			&project.CurrentVersionID,
			&project.IsPublished,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	if projects == nil {
		projects = []models.Project{}
	}

	return projects, nil
}
