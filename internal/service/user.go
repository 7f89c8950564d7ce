package service

import (
	"context"
	"fmt"
	"log/slog"

	"pagesmith/internal/config"
	"pagesmith/internal/domain"
	"pagesmith/internal/domain/models"
	"pagesmith/internal/domain/repositories"
	"pagesmith/internal/domain/services"
)

// userService implements the UserService interface.
type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) services.UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetUser returns the user, creating the row with starter credits the first
// time an authenticated subject shows up. Identity comes from the verified
// token; this service only owns the credit ledger side of the user.
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.Ensure(ctx, id, config.StarterCredits)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// PurchaseCredits grants the credits of the named pack.
func (s *userService) PurchaseCredits(ctx context.Context, id, pack string) (int, error) {
	amount, ok := config.CreditPacks[pack]
	if !ok {
		return 0, fmt.Errorf("unknown credit pack %q: %w", pack, domain.ErrValidation)
	}

	if err := s.userRepo.AddCredits(ctx, id, amount); err != nil {
		return 0, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	s.logger.Info("credits purchased", "user_id", id, "pack", pack, "amount", amount)
	return user.Credits, nil
}
