// Package dao provides data access objects for use in the zlangd server.
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("the requested resource could not be found")
	ErrAlreadyExists = errors.New("resource with same identifying information already exists")
)

// Store holds all the repositories backing the zlangd server.
type Store interface {
	Runs() RunRepository
	Close() error
}

// Run is the persisted record of one analysis.Run, along with the outcome
// recorded against it once analysis completes.
type Run struct {
	ID          uuid.UUID
	TokenPath   string
	StartedAt   time.Time
	EndedAt     time.Time
	ExitCode    int
	Diagnostics []string // one OUTPUT line per diagnostic, in report order
}

type RunRepository interface {
	Create(ctx context.Context, run Run) (Run, error)
	GetByID(ctx context.Context, id uuid.UUID) (Run, error)
	GetAll(ctx context.Context) ([]Run, error)
	Close() error
}
