package repositories

import (
	"context"

	"pagesmith/internal/domain/models"
)

// VersionRepository is the append-only version ledger. No update or delete:
// versions are immutable once created and only removed by project cascade.
type VersionRepository interface {
	Create(ctx context.Context, version *models.Version) error

	// GetByID returns the version only if it belongs to projectID, otherwise
	// domain.ErrNotFound.
	GetByID(ctx context.Context, id, projectID string) (*models.Version, error)

	// ListByProject returns all versions ordered by created_at ascending.
	ListByProject(ctx context.Context, projectID string) ([]models.Version, error)

	CountByProject(ctx context.Context, projectID string) (int, error)
}
