package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDBConnString_InMemory(t *testing.T) {
	db, err := ParseDBConnString("inmem")
	require.NoError(t, err)
	assert.Equal(t, DatabaseInMemory, db.Type)
	assert.NoError(t, db.Validate())
}

func Test_ParseDBConnString_InMemoryRejectsParams(t *testing.T) {
	_, err := ParseDBConnString("inmem:bogus")
	assert.Error(t, err)
}

func Test_ParseDBConnString_SQLiteRequiresFile(t *testing.T) {
	_, err := ParseDBConnString("sqlite")
	assert.Error(t, err)

	db, err := ParseDBConnString("sqlite:zlangd.db")
	require.NoError(t, err)
	assert.Equal(t, DatabaseSQLite, db.Type)
	assert.Equal(t, "zlangd.db", db.File)
	assert.NoError(t, db.Validate())
}

func Test_ParseDBConnString_UnknownEngine(t *testing.T) {
	_, err := ParseDBConnString("postgres:whatever")
	assert.Error(t, err)
}

func Test_Database_ValidateRejectsNone(t *testing.T) {
	db := Database{Type: DatabaseNone}
	assert.Error(t, db.Validate())
}
