package models

import "time"

// Project is a user's website workspace. CurrentCode is a cached copy of the
// snapshot that CurrentVersionID points at; only the revision and rollback
// services reconcile the two. An unversioned save clears CurrentVersionID,
// leaving the document ahead of the version ledger.
type Project struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	Name             string    `json:"name" db:"name"`
	InitialPrompt    string    `json:"initial_prompt" db:"initial_prompt"`
	CurrentCode      *string   `json:"current_code,omitempty" db:"current_code"`
	CurrentVersionID *string   `json:"current_version_id,omitempty" db:"current_version_id"`
	IsPublished      bool      `json:"is_published" db:"is_published"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
