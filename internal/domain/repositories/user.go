package repositories

import (
	"context"

	"pagesmith/internal/domain/models"
)

// UserRepository manages user rows and their credit balance.
type UserRepository interface {
	// GetByID returns the user or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Ensure returns the user, creating the row with starterCredits on first
	// sight of an authenticated subject.
	Ensure(ctx context.Context, id string, starterCredits int) (*models.User, error)

	// DebitCredits atomically subtracts amount from the balance. Returns
	// domain.ErrInsufficientCredits when the balance would go negative.
	DebitCredits(ctx context.Context, id string, amount int) error

	// AddCredits grants credits (purchases).
	AddCredits(ctx context.Context, id string, amount int) error

	// IncrementCreations bumps the lifetime project-creation counter.
	IncrementCreations(ctx context.Context, id string) error
}
