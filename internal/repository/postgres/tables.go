package postgres

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds shared dependencies for repository implementations.
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds environment-prefixed table names.
type TableNames struct {
	Users         string
	Projects      string
	Versions      string
	Conversations string
}

// NewTableNames creates table names with the given prefix.
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:         fmt.Sprintf("%susers", prefix),
		Projects:      fmt.Sprintf("%sprojects", prefix),
		Versions:      fmt.Sprintf("%sversions", prefix),
		Conversations: fmt.Sprintf("%sconversations", prefix),
	}
}
