package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"webresume_backend/internal/cache"
	"webresume_backend/internal/repositories"
	"webresume_backend/pkg/apperrors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestResumeLatest_StoreFailureIs500WithDiagnostic(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT .* FROM "resumes"`).WillReturnError(errors.New("connection reset by peer"))

	svc := NewResumeService(repositories.NewResumeRepository(), cache.Noop{}, 0)
	_, err := svc.Latest(context.Background(), db)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, "connection reset by peer")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageList_StoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT .* FROM "messages"`).WillReturnError(errors.New("too many connections"))

	svc := NewMessageService(repositories.NewMessageRepository(), NopNotifier{})
	_, err := svc.List(context.Background(), db)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeDatabaseError, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
