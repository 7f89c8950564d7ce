package services

import (
	"context"

	"pagesmith/internal/domain/models"
)

// CreateProjectRequest starts a new website project from an initial prompt.
type CreateProjectRequest struct {
	UserID        string `json:"-"`
	InitialPrompt string `json:"initial_prompt"`
}

// SaveCodeRequest overwrites the current document without creating a version.
type SaveCodeRequest struct {
	UserID string `json:"-"`
	Code   string `json:"code"`
}

// ProjectPreview bundles everything the workspace view needs in one read.
type ProjectPreview struct {
	Project      *models.Project            `json:"project"`
	Versions     []models.Version           `json:"versions"`
	Conversation []models.ConversationEntry `json:"conversation"`
}

// ProjectService manages website projects and their unversioned saves.
type ProjectService interface {
	// CreateProject charges the creation cost, generates the first document
	// and commits it as version 1.
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)

	GetProject(ctx context.Context, id, userID string) (*models.Project, error)
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)
	GetPreview(ctx context.Context, id, userID string) (*ProjectPreview, error)
	DeleteProject(ctx context.Context, id, userID string) error

	// SaveCode overwrites the current document and clears the version pointer.
	SaveCode(ctx context.Context, id string, req *SaveCodeRequest) error

	// TogglePublish flips the publication flag and returns the new state.
	TogglePublish(ctx context.Context, id, userID string) (bool, error)

	ListPublished(ctx context.Context) ([]models.Project, error)

	// GetPublishedCode returns the rendered document of a published project.
	GetPublishedCode(ctx context.Context, id string) (string, error)
}
