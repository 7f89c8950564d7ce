package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"pagesmith/internal/domain"
	"pagesmith/internal/domain/models"
	"pagesmith/internal/domain/repositories"
	"pagesmith/internal/domain/services"
)

// rollbackService implements the RollbackService interface.
type rollbackService struct {
	projectRepo repositories.ProjectRepository
	versionRepo repositories.VersionRepository
	convRepo    repositories.ConversationRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewRollbackService creates a new rollback service.
func NewRollbackService(
	projectRepo repositories.ProjectRepository,
	versionRepo repositories.VersionRepository,
	convRepo repositories.ConversationRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.RollbackService {
	return &rollbackService{
		projectRepo: projectRepo,
		versionRepo: versionRepo,
		convRepo:    convRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Rollback repoints the project at the target version. It is a pointer move,
// not a history edit: no version is created, no credits are charged. Rolling
// back to the already-current version succeeds and still logs an entry.
func (s *rollbackService) Rollback(ctx context.Context, projectID, userID, versionID string) error {
	if err := (validation.Errors{
		"project_id": validation.Validate(projectID, validation.Required),
		"version_id": validation.Validate(versionID, validation.Required),
	}).Filter(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.projectRepo.GetByID(ctx, projectID, userID); err != nil {
		return err
	}

	// Scoped lookup: a version id belonging to another project is NotFound.
	version, err := s.versionRepo.GetByID(ctx, versionID, projectID)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.projectRepo.SetCurrent(txCtx, projectID, version.Code, &version.ID); err != nil {
			return err
		}
		return s.convRepo.Append(txCtx, &models.ConversationEntry{
			ID:        uuid.NewString(),
			ProjectID: projectID,
			Role:      models.RoleAssistant,
			Content:   msgRolledBack,
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info("rollback applied",
		"project_id", projectID,
		"version_id", versionID,
		"user_id", userID,
	)

	return nil
}
