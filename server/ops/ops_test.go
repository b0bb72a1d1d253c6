package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zlang-project/zsema/server/dao/inmem"
	"github.com/zlang-project/zsema/server/serr"
)

func Test_Login_CorrectCredentialsSucceeds(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	svc := New(inmem.NewDatastore(), nil, "operator", hash)
	err = svc.Login(context.Background(), "operator", "hunter2")
	assert.NoError(t, err)
}

func Test_Login_WrongPasswordFails(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	svc := New(inmem.NewDatastore(), nil, "operator", hash)
	err = svc.Login(context.Background(), "operator", "wrong")
	assert.ErrorIs(t, err, serr.ErrBadCredentials)
}

func Test_Login_WrongUsernameFails(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	svc := New(inmem.NewDatastore(), nil, "operator", hash)
	err = svc.Login(context.Background(), "someone-else", "hunter2")
	assert.ErrorIs(t, err, serr.ErrBadCredentials)
}

func Test_ListRuns_EmptyStoreReturnsNoRuns(t *testing.T) {
	svc := New(inmem.NewDatastore(), nil, "operator", nil)
	runs, err := svc.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}
