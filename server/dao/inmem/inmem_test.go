package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zlang-project/zsema/server/dao"
)

func Test_Runs_CreateAssignsIDAndIsRetrievable(t *testing.T) {
	store := NewDatastore()
	run := dao.Run{TokenPath: "input.tok", StartedAt: time.Now(), ExitCode: 0}

	created, err := store.Runs().Create(context.Background(), run)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := store.Runs().GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func Test_Runs_GetByIDMissingReturnsErrNotFound(t *testing.T) {
	store := NewDatastore()
	_, err := store.Runs().GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func Test_Runs_CreateWithDuplicateIDReturnsErrAlreadyExists(t *testing.T) {
	store := NewDatastore()
	id := uuid.New()

	_, err := store.Runs().Create(context.Background(), dao.Run{ID: id})
	require.NoError(t, err)

	_, err = store.Runs().Create(context.Background(), dao.Run{ID: id})
	assert.ErrorIs(t, err, dao.ErrAlreadyExists)
}

func Test_Runs_GetAllReturnsInCreationOrder(t *testing.T) {
	store := NewDatastore()
	ctx := context.Background()

	first, err := store.Runs().Create(ctx, dao.Run{TokenPath: "a.tok"})
	require.NoError(t, err)
	second, err := store.Runs().Create(ctx, dao.Run{TokenPath: "b.tok"})
	require.NoError(t, err)

	all, err := store.Runs().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}
