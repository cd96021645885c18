package repository

import (
	"context"

	"github.com/querytube/insight-services/internal/database"
	"github.com/querytube/insight-services/internal/models"
)

// QueryRepository runs read-only SQL produced by the model
type QueryRepository interface {
	// Query executes query on a dedicated connection and materialises every row
	Query(ctx context.Context, query string) ([]models.Row, error)
	// Ping reports whether the database is reachable
	Ping(ctx context.Context) error
	// Driver returns the configured database driver name
	Driver() string
}

// Repositories holds all repository interfaces
type Repositories struct {
	Query QueryRepository
}

// New creates all repositories with the given database handle
func New(db *database.DB) *Repositories {
	return &Repositories{
		Query: NewQueryRepo(db),
	}
}
