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

// projectService implements the ProjectService interface.
type projectService struct {
	userRepo    repositories.UserRepository
	projectRepo repositories.ProjectRepository
	versionRepo repositories.VersionRepository
	convRepo    repositories.ConversationRepository
	txManager   repositories.TransactionManager
	gateway     services.Gateway
	model       string
	logger      *slog.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	versionRepo repositories.VersionRepository,
	convRepo repositories.ConversationRepository,
	txManager repositories.TransactionManager,
	gateway services.Gateway,
	model string,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		versionRepo: versionRepo,
		convRepo:    convRepo,
		txManager:   txManager,
		gateway:     gateway,
		model:       model,
		logger:      logger,
	}
}

// CreateProject creates the project row, generates the first document and
// commits it as version 1. The creation charge, creation counter, version and
// pointer land in one transaction after both gateway calls succeed, so a
// failed generation leaves an empty project but never a charge. Callers
// polling the project must treat a missing document as still-generating.
func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	prompt := strings.TrimSpace(req.InitialPrompt)

	if err := (validation.Errors{
		"initial_prompt": validation.Validate(prompt, validation.Required, validation.Length(1, config.MaxPromptLength)),
	}).Filter(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if s.model == "" {
		return nil, fmt.Errorf("generation model not configured: %w", domain.ErrConfig)
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user.Credits < config.CreationCost {
		return nil, fmt.Errorf("creating a project costs %d credits: %w", config.CreationCost, domain.ErrInsufficientCredits)
	}

	now := time.Now()
	project := &models.Project{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		Name:          deriveProjectName(prompt),
		InitialPrompt: prompt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	if err := s.appendEntry(ctx, project.ID, models.RoleUser, prompt); err != nil {
		return nil, err
	}

	enhanced, err := s.gateway.Complete(ctx, s.model, enhanceCreationMessages(prompt))
	if err != nil {
		return nil, err
	}

	if err := s.appendEntry(ctx, project.ID, models.RoleAssistant, fmt.Sprintf(msgEnhancedPrompt, enhanced)); err != nil {
		return nil, err
	}
	if err := s.appendEntry(ctx, project.ID, models.RoleAssistant, msgCreationStarted); err != nil {
		return nil, err
	}

	raw, err := s.gateway.Complete(ctx, s.model, generateCreationMessages(enhanced))
	if err != nil {
		return nil, err
	}

	clean := SanitizeGenerated(raw)
	if clean == "" {
		return nil, fmt.Errorf("gateway returned an empty document: %w", domain.ErrGeneration)
	}

	version := &models.Version{
		ID:          uuid.NewString(),
		ProjectID:   project.ID,
		Code:        clean,
		Description: "Initial version",
		CreatedAt:   time.Now(),
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.DebitCredits(txCtx, req.UserID, config.CreationCost); err != nil {
			return err
		}
		if err := s.userRepo.IncrementCreations(txCtx, req.UserID); err != nil {
			return err
		}
		if err := s.versionRepo.Create(txCtx, version); err != nil {
			return err
		}
		return s.projectRepo.SetCurrent(txCtx, project.ID, clean, &version.ID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.appendEntry(ctx, project.ID, models.RoleAssistant, msgCreationDone); err != nil {
		return nil, err
	}

	project.CurrentCode = &clean
	project.CurrentVersionID = &version.ID

	s.logger.Info("project created",
		"project_id", project.ID,
		"version_id", version.ID,
		"user_id", req.UserID,
	)

	return project, nil
}

// GetProject retrieves a project owned by the user.
func (s *projectService) GetProject(ctx context.Context, id, userID string) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id, userID)
}

// ListProjects retrieves all projects for a user.
func (s *projectService) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	return s.projectRepo.List(ctx, userID)
}

// GetPreview bundles the project with its version ledger and conversation log.
func (s *projectService) GetPreview(ctx context.Context, id, userID string) (*services.ProjectPreview, error) {
	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	versions, err := s.versionRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	conversation, err := s.convRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	return &services.ProjectPreview{
		Project:      project,
		Versions:     versions,
		Conversation: conversation,
	}, nil
}

// DeleteProject removes a project and everything it owns.
func (s *projectService) DeleteProject(ctx context.Context, id, userID string) error {
	if err := s.projectRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("project deleted", "project_id", id, "user_id", userID)
	return nil
}

// SaveCode overwrites the current document and clears the version pointer.
// The document is now ahead of the ledger; it only becomes a version if a
// revision follows, and is lost if the project is restored from a version.
func (s *projectService) SaveCode(ctx context.Context, id string, req *services.SaveCodeRequest) error {
	if err := (validation.Errors{
		"code": validation.Validate(req.Code, validation.Required, validation.Length(1, config.MaxDocumentBytes)),
	}).Filter(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.projectRepo.GetByID(ctx, id, req.UserID); err != nil {
		return err
	}

	if err := s.projectRepo.SetCurrent(ctx, id, req.Code, nil); err != nil {
		return err
	}

	s.logger.Info("project code saved without version", "project_id", id, "user_id", req.UserID)
	return nil
}

// TogglePublish flips the publication flag and returns the new state.
func (s *projectService) TogglePublish(ctx context.Context, id, userID string) (bool, error) {
	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		return false, err
	}

	published := !project.IsPublished
	if err := s.projectRepo.SetPublished(ctx, id, published); err != nil {
		return false, err
	}

	s.logger.Info("project publish toggled", "project_id", id, "published", published)
	return published, nil
}

// ListPublished retrieves all published projects.
func (s *projectService) ListPublished(ctx context.Context) ([]models.Project, error) {
	return s.projectRepo.ListPublished(ctx)
}

// GetPublishedCode returns the rendered document of a published project.
func (s *projectService) GetPublishedCode(ctx context.Context, id string) (string, error) {
	project, err := s.projectRepo.GetPublishedByID(ctx, id)
	if err != nil {
		return "", err
	}

	if !project.IsPublished || project.CurrentCode == nil || *project.CurrentCode == "" {
		return "", fmt.Errorf("project unavailable: %w", domain.ErrValidation)
	}

	return *project.CurrentCode, nil
}

func (s *projectService) appendEntry(ctx context.Context, projectID, role, content string) error {
	return s.convRepo.Append(ctx, &models.ConversationEntry{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

// deriveProjectName turns the initial prompt into a short display name.
func deriveProjectName(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= config.MaxProjectNameLength {
		return prompt
	}
	return string(runes[:config.MaxProjectNameLength-3]) + "..."
}
