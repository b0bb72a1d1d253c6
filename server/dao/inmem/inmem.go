// Package inmem is an in-memory implementation of
// github.com/zlang-project/zsema/server/dao.Store, used for tests and for
// running zlangd without a sqlite file.
package inmem

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/zlang-project/zsema/server/dao"
)

// NewDatastore returns a dao.Store backed entirely by in-memory maps. State
// does not survive process restart.
func NewDatastore() dao.Store {
	return &store{runs: &runsRepo{byID: make(map[uuid.UUID]dao.Run)}}
}

type store struct {
	runs *runsRepo
}

func (s *store) Runs() dao.RunRepository {
	return s.runs
}

func (s *store) Close() error {
	return nil
}

type runsRepo struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]dao.Run
	order []uuid.UUID
}

func (r *runsRepo) Create(ctx context.Context, run dao.Run) (dao.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ID == uuid.Nil {
		newID, err := uuid.NewRandom()
		if err != nil {
			return dao.Run{}, err
		}
		run.ID = newID
	}
	if _, exists := r.byID[run.ID]; exists {
		return dao.Run{}, dao.ErrAlreadyExists
	}

	r.byID[run.ID] = run
	r.order = append(r.order, run.ID)
	return run, nil
}

func (r *runsRepo) GetByID(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.byID[id]
	if !ok {
		return dao.Run{}, dao.ErrNotFound
	}
	return run, nil
}

func (r *runsRepo) GetAll(ctx context.Context) ([]dao.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]dao.Run, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.byID[id])
	}
	return all, nil
}

func (r *runsRepo) Close() error {
	return nil
}
