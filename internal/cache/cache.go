// Package cache - короткоживущий key/value слой перед чтением резюме.
package cache

import (
	"context"
	"fmt"
	"time"

	"webresume_backend/internal/logger"
)

// Ключи кеша резюме
const (
	KeyLatestResume = "resume_data"
	KeyAllResumes   = "all_resumes"
)

func ResumeKey(id string) string {
	return "resume_" + id
}

// Cache - внедряемая зависимость вместо глобального кеша.
// Значения - готовые JSON-ответы, отдаются как есть.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Clear очищает всё пространство имен; идемпотентна
	Clear(ctx context.Context) error
}

type Config struct {
	Driver          string // memory, redis, none
	Namespace       string
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
}

// New создает бэкенд по конфигурации.
// Недоступный при старте Redis не валит запуск: кеш уходит в память.
func New(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Driver {
	case "memory", "":
		return NewMemory(cfg.DefaultTTL, cfg.CleanupInterval), nil
	case "redis":
		r, err := NewRedis(ctx, cfg)
		if err != nil {
			logger.Warn("Redis unavailable, falling back to in-memory cache", "addr", cfg.RedisAddr, "error", err)
			return NewMemory(cfg.DefaultTTL, cfg.CleanupInterval), nil
		}
		return r, nil
	case "none":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache driver: %s", cfg.Driver)
	}
}

// Noop - кеш, который всегда промахивается
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
func (Noop) Clear(context.Context) error { return nil }
