package repositories

import (
	"sync"
	"testing"
	"time"

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

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
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

func createUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", Role: role}
	require.NoError(t, NewUserRepository().Create(db, user))
	return user
}

func TestResumeRepository_CollectionsNeverNull(t *testing.T) {
	db := newTestDB(t)
	repo := NewResumeRepository()

	resume := &models.Resume{Name: "Jane"}
	require.NoError(t, repo.Create(db, resume))

	var raw struct {
		Languages string
		VideoURLs string `gorm:"column:video_urls"`
	}
	require.NoError(t, db.Table("resumes").Select("languages, video_urls").Where("id = ?", resume.ID).Scan(&raw).Error)
	assert.Equal(t, "[]", raw.Languages)
	assert.Equal(t, "[]", raw.VideoURLs)

	found, err := repo.FindByID(db, resume.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.Skills)
	assert.Len(t, found.Testimonials, 0)
}

func TestResumeRepository_OrderRoundTrips(t *testing.T) {
	db := newTestDB(t)
	repo := NewResumeRepository()

	resume := &models.Resume{
		Name: "Jane",
		Experience: []models.ExperienceEntry{
			{Title: "second", Description: []string{"b", "a"}},
			{Title: "first"},
		},
		VideoURLs: []string{"https://v/2", "https://v/1"},
	}
	require.NoError(t, repo.Create(db, resume))

	found, err := repo.FindByID(db, resume.ID)
	require.NoError(t, err)
	require.Len(t, found.Experience, 2)
	assert.Equal(t, "second", found.Experience[0].Title)
	assert.Equal(t, []string{"b", "a"}, found.Experience[0].Description)
	assert.Equal(t, []string{}, found.Experience[1].Description)
	assert.Equal(t, []string{"https://v/2", "https://v/1"}, []string(found.VideoURLs))
}

func TestResumeRepository_LatestAndNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewResumeRepository()

	_, err := repo.FindLatest(db)
	assert.ErrorIs(t, err, ErrResumeNotFound)

	older := &models.Resume{Name: "older"}
	newer := &models.Resume{Name: "newer"}
	require.NoError(t, repo.Create(db, older))
	require.NoError(t, repo.Create(db, newer))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Resume{}).Where("id = ?", older.ID).UpdateColumn("updated_at", past).Error)

	latest, err := repo.FindLatest(db)
	require.NoError(t, err)
	assert.Equal(t, "newer", latest.Name)

	list, err := repo.List(db)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Name)

	assert.ErrorIs(t, repo.Delete(db, uuid.NewString()), ErrResumeNotFound)
	_, err = repo.FindByID(db, uuid.NewString())
	assert.ErrorIs(t, err, ErrResumeNotFound)
}

func TestResumeRepository_OnePerOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewResumeRepository()
	owner := createUser(t, db, "owner", models.UserRoleAdmin)

	require.NoError(t, repo.Create(db, &models.Resume{UserID: &owner.ID}))
	assert.ErrorIs(t, repo.Create(db, &models.Resume{UserID: &owner.ID}), ErrResumeAlreadyExists)

	// анонимных резюме может быть несколько
	require.NoError(t, repo.Create(db, &models.Resume{}))
	require.NoError(t, repo.Create(db, &models.Resume{}))
}

func TestResumeRepository_ConcurrentCreateSameOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewResumeRepository()
	owner := createUser(t, db, "racer", models.UserRoleAdmin)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(db, &models.Resume{UserID: &owner.ID})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, ErrResumeAlreadyExists)
	}
	assert.Equal(t, 1, created)

	var count int64
	require.NoError(t, db.Model(&models.Resume{}).Where("user_id = ?", owner.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProfileAndUser_DuplicateKeyMapped(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin", models.UserRoleAdmin)

	// вставка в обход репозитория: дубль ловит только индекс
	require.NoError(t, db.Create(&models.Profile{UserID: admin.ID}).Error)
	assert.ErrorIs(t, NewProfileRepository().Create(db, &models.Profile{UserID: admin.ID}), ErrProfileAlreadyExists)

	err := NewUserRepository().Create(db, &models.User{Username: "admin", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestMessageRepository_MarkAsReadIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository()

	msg := &models.Message{SenderName: "A", SenderEmail: "a@x.com", Message: "hi", IsRead: true}
	require.NoError(t, repo.Create(db, msg))

	stored, err := repo.FindByID(db, msg.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsRead)

	unread, err := repo.CountUnread(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, repo.MarkAsRead(db, msg.ID))
	require.NoError(t, repo.MarkAsRead(db, msg.ID))

	stored, err = repo.FindByID(db, msg.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)

	assert.ErrorIs(t, repo.Delete(db, uuid.NewString()), ErrMessageNotFound)
	require.NoError(t, repo.Delete(db, msg.ID))
}

func TestProfileRepository_StaffWithToken(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository()

	admin := createUser(t, db, "admin", models.UserRoleAdmin)
	user := createUser(t, db, "user", models.UserRoleUser)
	adminNoToken := createUser(t, db, "admin2", models.UserRoleAdmin)

	require.NoError(t, repo.Create(db, &models.Profile{UserID: user.ID, TelegramToken: "v1:user"}))
	require.NoError(t, repo.Create(db, &models.Profile{UserID: admin.ID, TelegramToken: "v1:admin"}))
	require.NoError(t, repo.Create(db, &models.Profile{UserID: adminNoToken.ID}))

	assert.ErrorIs(t, repo.Create(db, &models.Profile{UserID: admin.ID}), ErrProfileAlreadyExists)

	staff, err := repo.FindStaffWithToken(db)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, admin.ID, staff[0].UserID)

	byUser, err := repo.FindByUserID(db, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byUser.User)
	assert.Equal(t, "user", byUser.User.Username)
}

func TestUserRepository_UniqueUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository()

	createUser(t, db, "jane", models.UserRoleAdmin)
	assert.ErrorIs(t, repo.Create(db, &models.User{Username: "jane", PasswordHash: "x"}), ErrUserAlreadyExists)

	found, err := repo.FindByUsername(db, "jane")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, found.Role)

	_, err = repo.FindByUsername(db, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	count, err := repo.CountByRole(db, models.UserRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
