package database_test

import (
	"path/filepath"
	"testing"

	"chatroom/internal/config"
	"chatroom/internal/database"
	"chatroom/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open("mysql", "whatever")
	assert.Error(t, err)
}

func TestOpenMemoryIsIsolatedAndMigrated(t *testing.T) {
	first, err := database.OpenMemory(uuid.NewString())
	require.NoError(t, err)
	second, err := database.OpenMemory(uuid.NewString())
	require.NoError(t, err)

	for _, m := range models.All() {
		assert.True(t, first.Migrator().HasTable(m))
	}
	require.NoError(t, database.Ping(first))

	email := "alice@example.com"
	require.NoError(t, first.Create(&models.Member{Username: "alice", Email: &email, PasswordHash: "x"}).Error)

	var count int64
	require.NoError(t, second.Model(&models.Member{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSQLiteDSN(t *testing.T) {
	tests := map[string]string{
		"chatroom.db":                       "chatroom.db?_foreign_keys=1",
		"file:x?mode=memory":                "file:x?mode=memory&_foreign_keys=1",
		"chatroom.db?_foreign_keys=0":       "chatroom.db?_foreign_keys=0",
		"chatroom.db?cache=shared&_fk=true": "chatroom.db?cache=shared&_fk=true",
	}
	for in, want := range tests {
		assert.Equal(t, want, database.SQLiteDSN(in), in)
	}
}

func TestFileDatabaseCascadesMemberDeletes(t *testing.T) {
	db, err := database.Open(config.DriverSQLite, filepath.Join(t.TempDir(), "chatroom.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, database.Migrate(db))

	email := "alice@example.com"
	member := &models.Member{Username: "alice", Email: &email, PasswordHash: "x"}
	require.NoError(t, db.Create(member).Error)
	require.NoError(t, db.Omit("Member").Create(&models.AuthToken{MemberID: member.ID}).Error)
	require.NoError(t, db.Omit("Author").Create(&models.Message{Text: "hi", AuthorID: member.ID}).Error)

	require.NoError(t, db.Delete(&models.Member{}, member.ID).Error)

	var tokens, messages int64
	require.NoError(t, db.Model(&models.AuthToken{}).Count(&tokens).Error)
	require.NoError(t, db.Model(&models.Message{}).Count(&messages).Error)
	assert.Zero(t, tokens)
	assert.Zero(t, messages)

	// Orphans are rejected outright.
	assert.Error(t, db.Omit("Member").Create(&models.AuthToken{MemberID: 999}).Error)
}
