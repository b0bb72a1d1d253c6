// Package sqlite is a modernc.org/sqlite-backed implementation of
// github.com/zlang-project/zsema/server/dao.Store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"

	"github.com/zlang-project/zsema/server/dao"
)

type store struct {
	db   *sql.DB
	runs *RunsDB
}

// Open creates (or reuses) a sqlite database at file and returns a dao.Store
// backed by it.
func Open(file string) (dao.Store, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	runs := &RunsDB{db: db}
	if err := runs.init(); err != nil {
		return nil, err
	}

	return &store{db: db, runs: runs}, nil
}

func (s *store) Runs() dao.RunRepository {
	return s.runs
}

func (s *store) Close() error {
	return s.db.Close()
}

type RunsDB struct {
	db *sql.DB
}

func (repo *RunsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT NOT NULL PRIMARY KEY,
		token_path TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		ended_at INTEGER NOT NULL,
		exit_code INTEGER NOT NULL,
		diagnostics TEXT NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *RunsDB) Create(ctx context.Context, run dao.Run) (dao.Run, error) {
	if run.ID == uuid.Nil {
		newID, err := uuid.NewRandom()
		if err != nil {
			return dao.Run{}, fmt.Errorf("could not generate ID: %w", err)
		}
		run.ID = newID
	}

	stmt, err := repo.db.Prepare(`INSERT INTO runs (id, token_path, started_at, ended_at, exit_code, diagnostics) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Run{}, wrapDBError(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		run.ID.String(),
		run.TokenPath,
		run.StartedAt.Unix(),
		run.EndedAt.Unix(),
		run.ExitCode,
		encodeDiagnostics(run.Diagnostics),
	)
	if err != nil {
		return dao.Run{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, run.ID)
}

func (repo *RunsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, token_path, started_at, ended_at, exit_code, diagnostics FROM runs WHERE id = ?`, id.String())

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dao.Run{}, dao.ErrNotFound
		}
		return dao.Run{}, wrapDBError(err)
	}
	return run, nil
}

func (repo *RunsDB) GetAll(ctx context.Context) ([]dao.Run, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, token_path, started_at, ended_at, exit_code, diagnostics FROM runs ORDER BY started_at`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, wrapDBError(err)
		}
		all = append(all, run)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}
	return all, nil
}

func (repo *RunsDB) Close() error {
	return nil
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scannable) (dao.Run, error) {
	var run dao.Run
	var id string
	var started, ended int64
	var diagnostics string

	err := row.Scan(&id, &run.TokenPath, &started, &ended, &run.ExitCode, &diagnostics)
	if err != nil {
		return dao.Run{}, err
	}

	run.ID, err = uuid.Parse(id)
	if err != nil {
		return dao.Run{}, fmt.Errorf("stored UUID %q is invalid", id)
	}
	run.StartedAt = time.Unix(started, 0)
	run.EndedAt = time.Unix(ended, 0)
	run.Diagnostics = decodeDiagnostics(diagnostics)

	return run, nil
}

// encodeDiagnostics joins OUTPUT lines with a separator that zlang's
// reporting grammar never produces, since each OUTPUT line is itself
// newline-free.
func encodeDiagnostics(lines []string) string {
	return strings.Join(lines, "\n")
}

func decodeDiagnostics(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return dao.ErrAlreadyExists
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
