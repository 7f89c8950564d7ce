package repositories

import (
	"context"

	"pagesmith/internal/domain/models"
)

// ProjectRepository persists website projects. Reads scoped by userID return
// domain.ErrNotFound for projects the caller does not own.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error

	// GetByID returns the project owned by userID, or domain.ErrNotFound.
	GetByID(ctx context.Context, id, userID string) (*models.Project, error)

	// GetPublishedByID returns the project regardless of owner. Callers must
	// check IsPublished before exposing anything.
	GetPublishedByID(ctx context.Context, id string) (*models.Project, error)

	// List returns the user's projects, most recently updated first.
	List(ctx context.Context, userID string) ([]models.Project, error)

	// ListPublished returns all published projects.
	ListPublished(ctx context.Context) ([]models.Project, error)

	// SetCurrent updates the cached document and version pointer. versionID
	// may be nil to leave the document ahead of the ledger (unversioned save).
	SetCurrent(ctx context.Context, id string, code string, versionID *string) error

	// SetPublished flips the publication flag.
	SetPublished(ctx context.Context, id string, published bool) error

	// Delete removes the project; versions and conversation entries cascade.
	Delete(ctx context.Context, id, userID string) error
}
