package database_test

import (
	"testing"

	"cafes/internal/database"
	"cafes/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMemory(t *testing.T) {
	db, err := database.Open(database.Config{
		Driver:       database.DriverSQLite,
		DSN:          "file:database_test?mode=memory&cache=shared",
		LogLevel:     "silent",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	defer database.Close(db)

	assert.True(t, db.Migrator().HasTable(&models.Cafe{}))
	assert.True(t, db.Migrator().HasIndex(&models.Cafe{}, "Name"))
	assert.True(t, db.Migrator().HasIndex(&models.Cafe{}, "MapURL"))
	assert.NoError(t, database.Ping(db))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := database.Open(database.Config{Driver: "oracle", DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestClose(t *testing.T) {
	db, err := database.Open(database.Config{
		DSN:      "file:database_close_test?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)

	require.NoError(t, database.Close(db))
	assert.Error(t, database.Ping(db))
}
