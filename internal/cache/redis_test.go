package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	m := miniredis.RunT(t)
	c, err := NewRedis(context.Background(), Config{RedisAddr: m.Addr(), Namespace: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, m
}

func TestRedis_SetGetExpire(t *testing.T) {
	ctx := context.Background()
	c, m := newTestRedis(t)

	require.NoError(t, c.Set(ctx, ResumeKey("1"), []byte(`{"name":"A"}`), time.Second))
	assert.True(t, m.Exists("test:resume_1"))

	v, ok, err := c.Get(ctx, ResumeKey("1"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"name":"A"}`, string(v))

	m.FastForward(2 * time.Second)

	_, ok, err = c.Get(ctx, ResumeKey("1"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_ClearOnlyOwnNamespace(t *testing.T) {
	ctx := context.Background()
	c, m := newTestRedis(t)

	require.NoError(t, m.Set("foreign", "keep"))
	require.NoError(t, c.Set(ctx, KeyAllResumes, []byte(`[]`), time.Minute))
	require.NoError(t, c.Set(ctx, KeyLatestResume, []byte(`{}`), time.Minute))

	require.NoError(t, c.Clear(ctx))
	require.NoError(t, c.Clear(ctx))

	assert.False(t, m.Exists("test:all_resumes"))
	assert.False(t, m.Exists("test:resume_data"))
	assert.True(t, m.Exists("foreign"))
}

func TestRedis_BackendDown(t *testing.T) {
	ctx := context.Background()
	c, m := newTestRedis(t)
	m.Close()

	_, _, err := c.Get(ctx, KeyLatestResume)
	assert.Error(t, err)
}

func TestNew_RedisUnreachableFallsBackToMemory(t *testing.T) {
	m := miniredis.RunT(t)
	addr := m.Addr()
	m.Close()

	c, err := New(context.Background(), Config{Driver: "redis", RedisAddr: addr, DefaultTTL: time.Minute})
	require.NoError(t, err)
	require.IsType(t, &Memory{}, c)

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, KeyLatestResume, []byte(`{}`), 0))
	_, ok, err := c.Get(ctx, KeyLatestResume)
	require.NoError(t, err)
	assert.True(t, ok)
}
