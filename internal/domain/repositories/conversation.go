package repositories

import (
	"context"

	"pagesmith/internal/domain/models"
)

// ConversationRepository is the append-only project chat/audit log.
type ConversationRepository interface {
	Append(ctx context.Context, entry *models.ConversationEntry) error

	// ListByProject returns entries ordered by created_at ascending.
	ListByProject(ctx context.Context, projectID string) ([]models.ConversationEntry, error)
}
