package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"pagesmith/internal/config"
	"pagesmith/internal/domain"
	"pagesmith/internal/domain/models"
	"pagesmith/internal/domain/repositories"
	"pagesmith/internal/domain/services"
)

// revisionService implements the RevisionService interface.
type revisionService struct {
	userRepo    repositories.UserRepository
	projectRepo repositories.ProjectRepository
	versionRepo repositories.VersionRepository
	convRepo    repositories.ConversationRepository
	txManager   repositories.TransactionManager
	gateway     services.Gateway
	model       string
	locks       *keyedMutex
	logger      *slog.Logger
}

// NewRevisionService creates a new revision service. model is the generation
// model id already resolved against the capability registry; an empty value
// means the deployment is not configured for generation.
func NewRevisionService(
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	versionRepo repositories.VersionRepository,
	convRepo repositories.ConversationRepository,
	txManager repositories.TransactionManager,
	gateway services.Gateway,
	model string,
	logger *slog.Logger,
) services.RevisionService {
	return &revisionService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		versionRepo: versionRepo,
		convRepo:    convRepo,
		txManager:   txManager,
		gateway:     gateway,
		model:       model,
		locks:       newKeyedMutex(),
		logger:      logger,
	}
}

// RequestRevision runs one revision end-to-end. Preconditions are checked
// before any side effect; the credit debit, version insert and pointer update
// commit together. The gateway is never retried here: a transient upstream
// failure aborts the whole revision and no credits are taken.
func (s *revisionService) RequestRevision(ctx context.Context, projectID, userID, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)

	if err := (validation.Errors{
		"project_id": validation.Validate(projectID, validation.Required),
		"prompt":     validation.Validate(prompt, validation.Required, validation.Length(1, config.MaxPromptLength)),
	}).Filter(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if s.model == "" {
		return "", fmt.Errorf("generation model not configured: %w", domain.ErrConfig)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.Credits < config.RevisionCost {
		return "", fmt.Errorf("revision costs %d credits: %w", config.RevisionCost, domain.ErrInsufficientCredits)
	}

	// Serialize revisions per project. Without this, two concurrent requests
	// read the same current document and the later commit silently supersedes
	// the earlier one.
	s.locks.Lock(projectID)
	defer s.locks.Unlock(projectID)

	project, err := s.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		return "", err
	}

	if err := s.appendEntry(ctx, projectID, models.RoleUser, prompt); err != nil {
		return "", err
	}

	enhanced, err := s.gateway.Complete(ctx, s.model, enhanceRevisionMessages(prompt))
	if err != nil {
		return "", err
	}

	if err := s.appendEntry(ctx, projectID, models.RoleAssistant, fmt.Sprintf(msgEnhancedPrompt, enhanced)); err != nil {
		return "", err
	}
	if err := s.appendEntry(ctx, projectID, models.RoleAssistant, msgRevisionStarted); err != nil {
		return "", err
	}

	var currentCode string
	if project.CurrentCode != nil {
		currentCode = *project.CurrentCode
	}

	raw, err := s.gateway.Complete(ctx, s.model, applyRevisionMessages(currentCode, enhanced))
	if err != nil {
		return "", err
	}

	clean := SanitizeGenerated(raw)
	if clean == "" {
		// A blank page must never become a version.
		return "", fmt.Errorf("gateway returned an empty document: %w", domain.ErrGeneration)
	}

	version := &models.Version{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Code:        clean,
		Description: "changes made",
		CreatedAt:   time.Now(),
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.DebitCredits(txCtx, userID, config.RevisionCost); err != nil {
			return err
		}
		if err := s.versionRepo.Create(txCtx, version); err != nil {
			return err
		}
		return s.projectRepo.SetCurrent(txCtx, projectID, clean, &version.ID)
	})
	if err != nil {
		return "", err
	}

	if err := s.appendEntry(ctx, projectID, models.RoleAssistant, msgRevisionDone); err != nil {
		return "", err
	}

	s.logger.Info("revision committed",
		"project_id", projectID,
		"version_id", version.ID,
		"user_id", userID,
	)

	return version.ID, nil
}

func (s *revisionService) appendEntry(ctx context.Context, projectID, role, content string) error {
	return s.convRepo.Append(ctx, &models.ConversationEntry{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}
