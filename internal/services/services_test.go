package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"webresume_backend/internal/auth"
	"webresume_backend/internal/cache"
	"webresume_backend/internal/cryptox"
	"webresume_backend/internal/models"
	"webresume_backend/internal/relay"
	"webresume_backend/internal/repositories"
	"webresume_backend/internal/services/dto"
	"webresume_backend/pkg/apperrors"

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

// recordingCache - memory-кеш со счетчиками вызовов
type recordingCache struct {
	cache.Cache
	mu     sync.Mutex
	gets   int
	sets   int
	clears int
}

func (c *recordingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	c.gets++
	c.mu.Unlock()
	return c.Cache.Get(ctx, key)
}

func (c *recordingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.Cache.Set(ctx, key, value, ttl)
}

func (c *recordingCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.clears++
	c.mu.Unlock()
	return c.Cache.Clear(ctx)
}

// brokenCache - недоступный бэкенд
type brokenCache struct{}

var errCacheDown = errors.New("cache down")

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errCacheDown }
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errCacheDown
}
func (brokenCache) Delete(context.Context, ...string) error { return errCacheDown }
func (brokenCache) Clear(context.Context) error             { return errCacheDown }

func strPtr(s string) *string { return &s }

func newResumeService(c cache.Cache) ResumeService {
	return NewResumeService(repositories.NewResumeRepository(), c, time.Minute)
}

func TestResumeService_LatestEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newResumeService(cache.NewMemory(time.Minute, time.Minute))

	_, err := svc.Latest(context.Background(), db)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
	assert.Equal(t, "No resume found", appErr.Message)
}

func TestResumeService_HitServedVerbatim(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	rc := &recordingCache{Cache: cache.NewMemory(time.Minute, time.Minute)}
	svc := newResumeService(rc)

	_, err := svc.Create(ctx, db, nil, &dto.ResumeRequest{Name: strPtr("Jane")})
	require.NoError(t, err)

	first, err := svc.Latest(ctx, db)
	require.NoError(t, err)

	// меняем БД в обход сервиса: попадание в кеш должно вернуть старый ответ
	require.NoError(t, db.Model(&models.Resume{}).Where("1 = 1").UpdateColumn("name", "Changed").Error)

	second, err := svc.Latest(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, rc.sets)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(second, &body))
	assert.Equal(t, "Jane", body["name"])
	assert.Equal(t, []interface{}{}, body["languages"])
	assert.Nil(t, body["user"])
}

func TestResumeService_WritesClearCache(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	rc := &recordingCache{Cache: cache.NewMemory(time.Minute, time.Minute)}
	svc := newResumeService(rc)

	created, err := svc.Create(ctx, db, nil, &dto.ResumeRequest{Name: strPtr("Jane")})
	require.NoError(t, err)
	assert.Equal(t, 1, rc.clears)

	_, err = svc.Get(ctx, db, created.ID)
	require.NoError(t, err)
	_, err = svc.List(ctx, db)
	require.NoError(t, err)

	langs := []models.LanguageEntry{{Language: "English", Level: "C1"}}
	updated, err := svc.Update(ctx, db, created.ID, &dto.ResumeRequest{Languages: &langs})
	require.NoError(t, err)
	assert.Equal(t, 2, rc.clears)
	assert.Equal(t, "Jane", updated.Name)
	assert.Equal(t, langs, updated.Languages)

	payload, err := svc.Get(ctx, db, created.ID)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "English")

	require.NoError(t, svc.Delete(ctx, db, created.ID))
	assert.Equal(t, 3, rc.clears)

	_, err = svc.Get(ctx, db, created.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestResumeService_CacheErrorsFallBackToStore(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := newResumeService(brokenCache{})

	created, err := svc.Create(ctx, db, nil, &dto.ResumeRequest{Name: strPtr("Jane")})
	require.NoError(t, err)

	payload, err := svc.Get(ctx, db, created.ID)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "Jane")

	err = svc.ClearCache(ctx)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeCacheError, appErr.Code)
}

func TestResumeService_ClearCacheIdempotent(t *testing.T) {
	svc := newResumeService(cache.NewMemory(time.Minute, time.Minute))
	require.NoError(t, svc.ClearCache(context.Background()))
	require.NoError(t, svc.ClearCache(context.Background()))
}

func TestResumeService_SecondResumeForOwner(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := newResumeService(cache.Noop{})

	user := &models.User{Username: "jane", PasswordHash: "x", Role: models.UserRoleAdmin}
	require.NoError(t, db.Create(user).Error)

	created, err := svc.Create(ctx, db, &user.ID, &dto.ResumeRequest{})
	require.NoError(t, err)
	require.NotNil(t, created.User)
	assert.Equal(t, "jane", created.User.Username)

	_, err = svc.Create(ctx, db, &user.ID, &dto.ResumeRequest{})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
}

// fakeSender падает на всех попытках, если fail=true
type fakeSender struct {
	mu    sync.Mutex
	fail  bool
	calls []relay.Outgoing
}

func (s *fakeSender) Send(_ context.Context, out relay.Outgoing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, out)
	if s.fail {
		return errors.New("telegram unavailable")
	}
	return nil
}

func TestMessageService_PersistsWhenRelayFails(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	sender := &fakeSender{fail: true}
	r := relay.New(sender, relay.StaticDestination{BotToken: "t", ChatID: 42, Username: "owner"})
	svc := NewMessageService(repositories.NewMessageRepository(), NewContactNotifier(r, nil, nil, DeliveryModeSync))

	resp, err := svc.Create(ctx, db, &dto.CreateMessageRequest{SenderName: "A", SenderEmail: "a@x.com", Message: "hi"})
	require.NoError(t, err)
	assert.False(t, resp.IsRead)
	assert.Len(t, sender.calls, 3)

	var count int64
	require.NoError(t, db.Model(&models.Message{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMessageService_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewMessageService(repositories.NewMessageRepository(), nil)

	resp, err := svc.Create(ctx, db, &dto.CreateMessageRequest{SenderName: "A", SenderEmail: "a@x.com", Message: "hi"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkAsRead(ctx, db, resp.ID))
	require.NoError(t, svc.MarkAsRead(ctx, db, resp.ID))

	got, err := svc.Get(ctx, db, resp.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)

	err = svc.MarkAsRead(ctx, db, uuid.NewString())
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestContactNotifier_Async(t *testing.T) {
	sender := &fakeSender{}
	r := relay.New(sender, relay.StaticDestination{BotToken: "t", ChatID: 42})
	n := NewContactNotifier(r, nil, nil, DeliveryModeAsync)

	ctx, cancel := context.WithCancel(context.Background())
	n.Notify(ctx, &models.Message{SenderName: "A", SenderEmail: "a@x.com", Message: "hi"})
	cancel()
	n.Wait()

	require.Len(t, sender.calls, 1)
	assert.Equal(t, relay.ParseModeMarkdown, sender.calls[0].ParseMode)
}

func newCipher(t *testing.T) *cryptox.Cipher {
	t.Helper()
	c, err := cryptox.NewCipher("test-secret")
	require.NoError(t, err)
	return c
}

func TestProfileService_TokenEncryptedNeverEchoed(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cipher := newCipher(t)
	svc := NewProfileService(repositories.NewProfileRepository(), cipher, nil, 0)

	user := &models.User{Username: "jane", PasswordHash: "x", Role: models.UserRoleAdmin}
	require.NoError(t, db.Create(user).Error)
	requester := Requester{UserID: user.ID, Username: "jane", IsStaff: true}

	chatID := int64(42)
	resp, err := svc.Create(ctx, db, requester, &dto.ProfileRequest{TelegramToken: strPtr("123:abc"), TelegramChatID: &chatID})
	require.NoError(t, err)
	assert.True(t, resp.HasTelegramToken)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "123:abc")

	var stored models.Profile
	require.NoError(t, db.First(&stored, "id = ?", resp.ID).Error)
	assert.NotEqual(t, "123:abc", stored.TelegramToken)
	assert.NoError(t, cipher.Decrypt(stored.TelegramToken).Err())

	source := NewProfileDestinationSource(db, repositories.NewProfileRepository(), cipher, relay.Destination{Username: "fallback"})
	dest, err := source.Destination(ctx)
	require.NoError(t, err)
	assert.Equal(t, "123:abc", dest.BotToken)
	assert.Equal(t, int64(42), dest.ChatID)
	assert.Equal(t, "fallback", dest.Username)

	_, err = svc.Create(ctx, db, requester, &dto.ProfileRequest{})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestProfileDestinationSource_UndecryptableSkipped(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	user := &models.User{Username: "jane", PasswordHash: "x", Role: models.UserRoleAdmin}
	require.NoError(t, db.Create(user).Error)

	// токен зашифрован другим ключом
	foreign, err := newCipher(t).Encrypt("123:abc")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Profile{UserID: user.ID, TelegramToken: foreign}).Error)

	other, err := cryptox.NewCipher("another-secret")
	require.NoError(t, err)

	source := NewProfileDestinationSource(db, repositories.NewProfileRepository(), other, relay.Destination{})
	_, err = source.Destination(ctx)
	assert.ErrorIs(t, err, ErrNoBotCredentials)

	static := NewProfileDestinationSource(nil, nil, nil, relay.Destination{BotToken: "cfg"})
	dest, err := static.Destination(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cfg", dest.BotToken)
}

func TestProfileService_Visibility(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(repositories.NewProfileRepository(), nil, nil, 0)

	alice := &models.User{Username: "alice", PasswordHash: "x", Role: models.UserRoleUser}
	bob := &models.User{Username: "bob", PasswordHash: "x", Role: models.UserRoleUser}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	aliceProfile, err := svc.Create(ctx, db, Requester{UserID: alice.ID}, &dto.ProfileRequest{})
	require.NoError(t, err)

	_, err = svc.Get(ctx, db, Requester{UserID: bob.ID}, aliceProfile.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)

	list, err := svc.List(ctx, db, Requester{UserID: bob.ID})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = svc.List(ctx, db, Requester{UserID: "staff", IsStaff: true})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// без ключа шифрования токен не записывается
	_, err = svc.Update(ctx, db, Requester{UserID: alice.ID}, aliceProfile.ID, &dto.ProfileRequest{TelegramToken: strPtr("x")})
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.HTTPCode)

	_, err = svc.List(ctx, db, Requester{})
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.HTTPCode)
}

func TestAuthService_EnsureAdminAndLogin(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(), auth.NewTokenManager("secret", time.Hour))

	created, err := svc.EnsureAdmin(ctx, db, "admin", "admin@x.com", "password123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, db, "admin", "admin@x.com", "password123")
	require.NoError(t, err)
	assert.False(t, created)

	resp, err := svc.Login(ctx, db, &dto.LoginRequest{Username: "admin", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "admin", resp.User.Username)

	_, err = svc.Login(ctx, db, &dto.LoginRequest{Username: "admin", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	status := svc.Status(Requester{UserID: "1", Username: "admin", IsStaff: true})
	assert.True(t, status.IsAuthenticated)
	assert.False(t, svc.Status(Requester{}).IsAuthenticated)
}
