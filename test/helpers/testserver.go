package helpers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"webresume_backend/database"
	"webresume_backend/internal/app"
	"webresume_backend/internal/cache"
	"webresume_backend/internal/config"
	"webresume_backend/internal/logger"
	"webresume_backend/internal/relay"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const TestJWTSecret = "integration-test-secret"

// FakeSender записывает исходящие сообщения вместо обращения к Telegram
type FakeSender struct {
	mu   sync.Mutex
	sent []relay.Outgoing
	fail bool
}

func (s *FakeSender) Send(_ context.Context, out relay.Outgoing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, out)
	if s.fail {
		return errors.New("telegram unavailable")
	}
	return nil
}

// FailAll - все попытки доставки будут неуспешными
func (s *FakeSender) FailAll(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

func (s *FakeSender) Sent() []relay.Outgoing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]relay.Outgoing(nil), s.sent...)
}

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	App    *app.Server
	Config *config.Config
	Sender *FakeSender
	Cache  *cache.Memory
}

// NewTestServer поднимает приложение на in-memory SQLite с фейковым Telegram.
// mutate позволяет поправить конфигурацию до сборки.
func NewTestServer(t *testing.T, mutate ...func(cfg *config.Config)) *TestServer {
	t.Helper()
	logger.InitWithWriter(io.Discard, "test", "error")

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	cfg.JWT.Secret = TestJWTSecret
	cfg.Encryption.Key = base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
	cfg.Telegram.BotToken = "test-bot-token"
	cfg.Telegram.ChatID = 42
	cfg.Telegram.Username = "resume_owner"
	cfg.Telegram.SelfCheck = false
	cfg.Storage.BasePath = t.TempDir()
	for _, fn := range mutate {
		fn(cfg)
	}

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("Не удалось открыть тестовую БД: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate: %v", err)
	}

	sender := &FakeSender{}
	memCache := cache.NewMemory(cfg.Cache.TTL, time.Minute)

	server, err := app.SetupRouter(cfg, db, app.Options{
		Cache:  memCache,
		Sender: sender,
	})
	if err != nil {
		t.Fatalf("Не удалось собрать приложение: %v", err)
	}

	ts := &TestServer{
		Server: httptest.NewServer(server.Router),
		DB:     db,
		App:    server,
		Config: cfg,
		Sender: sender,
		Cache:  memCache,
	}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.App.Shutdown()
	if sqlDB, err := ts.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// SendRequest отправляет JSON-запрос; token - Bearer JWT (может быть пустым)
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()
	headers := map[string]string{}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return ts.SendRequestWithHeaders(t, method, path, headers, body)
}

func (ts *TestServer) SendRequestWithHeaders(t *testing.T, method, path string, headers map[string]string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reqBody = bytes.NewBufferString(b)
		default:
			jsonBody, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
			}
			reqBody = bytes.NewBuffer(jsonBody)
		}
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	return res, string(resBodyBytes)
}

// Trusted - заголовок совместимости, разрешающий запись без JWT
func (ts *TestServer) Trusted() map[string]string {
	return map[string]string{ts.Config.Auth.TrustedHeader.Name: ts.Config.Auth.TrustedHeader.Value}
}
