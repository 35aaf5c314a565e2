package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/getblogd/blogd-services/pkg/ajan/connfx"
	"github.com/getblogd/blogd-services/pkg/ajan/logfx"
)

var ErrDatasourceNotFound = errors.New("datasource not found")

type Repository struct {
	queries *Queries
	logger  *logfx.Logger
}

func NewRepositoryFromDefault(
	logger *logfx.Logger,
	registry *connfx.Registry,
) (*Repository, error) {
	return NewRepositoryFromNamed(logger, registry, connfx.DefaultConnection)
}

func NewRepositoryFromNamed(
	logger *logfx.Logger,
	registry *connfx.Registry,
	name string,
) (*Repository, error) {
	sqlDB, err := connfx.GetTypedConnection[*sql.DB](registry, name)
	if err != nil {
		return nil, fmt.Errorf("%w (name=%q): %w", ErrDatasourceNotFound, name, err)
	}

	repository := &Repository{
		queries: &Queries{db: sqlDB},
		logger:  logger,
	}

	return repository, nil
}

// Queries bundles the raw SQL access over one database handle.
type Queries struct {
	db *sql.DB
}
