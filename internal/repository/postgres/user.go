package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pagesmith/internal/domain"
	"pagesmith/internal/domain/models"
	"pagesmith/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface.
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository.
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// GetByID retrieves a user by ID.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, credits, total_creations, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Users)

	var user models.User
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Credits,
		&user.TotalCreations,
		&user.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// Ensure creates the user row with starter credits if it does not exist and
// returns the current row either way.
func (r *PostgresUserRepository) Ensure(ctx context.Context, id string, starterCredits int) (*models.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, credits, total_creations, created_at)
		VALUES ($1, $2, 0, NOW())
		ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		RETURNING id, credits, total_creations, created_at
	`, r.tables.Users)

	var user models.User
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, starterCredits).Scan(
		&user.ID,
		&user.Credits,
		&user.TotalCreations,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	return &user, nil
}

// DebitCredits atomically subtracts amount from the balance. The WHERE clause
// is the invariant: the balance never goes negative, even under concurrent
// debits.
func (r *PostgresUserRepository) DebitCredits(ctx context.Context, id string, amount int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET credits = credits - $2
		WHERE id = $1 AND credits >= $2
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("debit credits: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Either the user vanished or the balance is short; distinguish.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("debit %d credits from user %s: %w", amount, id, domain.ErrInsufficientCredits)
	}

	return nil
}

// AddCredits grants credits to the user.
func (r *PostgresUserRepository) AddCredits(ctx context.Context, id string, amount int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET credits = credits + $2
		WHERE id = $1
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("add credits: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// IncrementCreations bumps the lifetime project-creation counter.
func (r *PostgresUserRepository) IncrementCreations(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET total_creations = total_creations + 1
		WHERE id = $1
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment creations: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
