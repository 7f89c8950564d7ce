package services

import (
	"context"

	"pagesmith/internal/domain/models"
)

// UserService exposes the credit balance and purchases. User identity itself
// comes from the external identity provider; rows are created lazily.
type UserService interface {
	// GetUser returns the user, creating the row with starter credits the
	// first time an authenticated subject shows up.
	GetUser(ctx context.Context, id string) (*models.User, error)

	// PurchaseCredits grants the credits of the named pack and returns the
	// new balance.
	PurchaseCredits(ctx context.Context, id, pack string) (int, error)
}
