package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"webresume_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func writeResume(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestImportFile_OnlyWhenEmpty(t *testing.T) {
	db := newTestDB(t)
	path := writeResume(t, `{"name":"Jane Doe","languages":[{"language":"English","level":"C1"}]}`)

	imported, err := importFile(context.Background(), db, path, "")
	require.NoError(t, err)
	assert.True(t, imported)

	imported, err = importFile(context.Background(), db, path, "")
	require.NoError(t, err)
	assert.False(t, imported)

	var resumes []models.Resume
	require.NoError(t, db.Find(&resumes).Error)
	require.Len(t, resumes, 1)
	assert.Equal(t, "Jane Doe", resumes[0].Name)
	require.Len(t, resumes[0].Languages, 1)
	assert.Equal(t, "English", resumes[0].Languages[0].Language)
	assert.NotNil(t, resumes[0].Skills)
}

func TestImportFile_InvalidJSON(t *testing.T) {
	db := newTestDB(t)
	path := writeResume(t, `{"name":`)

	_, err := importFile(context.Background(), db, path, "")
	assert.Error(t, err)
}

func TestImportFile_UnknownOwner(t *testing.T) {
	db := newTestDB(t)
	path := writeResume(t, `{"name":"Jane Doe"}`)

	_, err := importFile(context.Background(), db, path, "nobody")
	assert.Error(t, err)
}
