package services

import "context"

// RevisionService runs one revision request end-to-end: validate, debit,
// enhance, generate, sanitize, commit.
type RevisionService interface {
	// RequestRevision applies a natural-language change to the project's
	// current document and returns the id of the new version.
	RequestRevision(ctx context.Context, projectID, userID, prompt string) (string, error)
}

// RollbackService repoints a project at a prior version.
type RollbackService interface {
	// Rollback sets the project's current document and version pointer to the
	// target version. No credits are charged and no version is created.
	Rollback(ctx context.Context, projectID, userID, versionID string) error
}
