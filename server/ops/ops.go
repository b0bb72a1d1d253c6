// Package ops is a service for interacting with the zlangd backend, decoupled
// from the HTTP API that exposes it.
package ops

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zlang-project/zsema"
	"github.com/zlang-project/zsema/internal/analysis"
	"github.com/zlang-project/zsema/server/dao"
	"github.com/zlang-project/zsema/server/serr"
)

// Service performs the actions a zlangd request asks for and persists the
// resulting state to its DB. The zero-value is not ready to use; build one
// with New.
type Service struct {
	DB     dao.Store
	Engine *zsema.Engine

	// operatorUsername and operatorPasswordHash describe the single account
	// that may authenticate against this server. zlangd has no concept of
	// multiple users: it fronts one analyzer for whoever holds the secret.
	operatorUsername     string
	operatorPasswordHash []byte
}

// New builds a Service around db and engine. operatorPasswordHash is a bcrypt
// hash, as produced by HashPassword.
func New(db dao.Store, engine *zsema.Engine, operatorUsername string, operatorPasswordHash []byte) Service {
	return Service{
		DB:                   db,
		Engine:               engine,
		operatorUsername:     operatorUsername,
		operatorPasswordHash: operatorPasswordHash,
	}
}

// HashPassword bcrypt-hashes password for storage as an operatorPasswordHash.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// Login verifies username and password against the configured operator
// account. Returns serr.ErrBadCredentials if either does not match.
func (svc Service) Login(ctx context.Context, username, password string) error {
	if username != svc.operatorUsername {
		return serr.ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(svc.operatorPasswordHash, []byte(password)); err != nil {
		return serr.ErrBadCredentials
	}
	return nil
}

// Analyze runs the engine against r and persists the outcome as a dao.Run.
// tokenPath is recorded for provenance only; r is what is actually read.
func (svc Service) Analyze(ctx context.Context, tokenPath string, r io.Reader) (dao.Run, *analysis.Result, error) {
	run, result, err := svc.Engine.Analyze(tokenPath, r, nil)
	if err != nil {
		return dao.Run{}, nil, serr.New("analysis failed", err)
	}

	var lines []string
	exitCode := analysis.ExitIOFault
	if result != nil {
		for _, d := range result.Diagnostics {
			lines = append(lines, d.Line())
		}
		exitCode = result.ExitCode()
	}

	persisted := dao.Run{
		ID:          run.ID,
		TokenPath:   run.TokenPath,
		StartedAt:   run.StartedAt,
		EndedAt:     time.Now(),
		ExitCode:    exitCode,
		Diagnostics: lines,
	}

	saved, err := svc.DB.Runs().Create(ctx, persisted)
	if err != nil {
		return dao.Run{}, result, serr.WrapDB("could not persist run", err)
	}

	return saved, result, nil
}

// GetRun retrieves a previously persisted run by ID.
func (svc Service) GetRun(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	return svc.DB.Runs().GetByID(ctx, id)
}

// ListRuns retrieves every previously persisted run.
func (svc Service) ListRuns(ctx context.Context) ([]dao.Run, error) {
	return svc.DB.Runs().GetAll(ctx)
}
