package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetExpire(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Second, time.Minute)

	require.NoError(t, c.Set(ctx, KeyLatestResume, []byte(`{"id":"1"}`), 50*time.Millisecond))

	v, ok, err := c.Get(ctx, KeyLatestResume)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":"1"}`, string(v))

	time.Sleep(80 * time.Millisecond)
	_, ok, err = c.Get(ctx, KeyLatestResume)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Second, time.Minute)

	require.NoError(t, c.Set(ctx, KeyAllResumes, []byte(`[]`), time.Minute))
	require.NoError(t, c.Set(ctx, ResumeKey("abc"), []byte(`{}`), time.Minute))

	require.NoError(t, c.Clear(ctx))
	require.NoError(t, c.Clear(ctx))

	for _, k := range []string{KeyAllResumes, ResumeKey("abc")} {
		_, ok, err := c.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok, k)
	}
}

func TestMemory_ValueIsCopied(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Second, time.Minute)

	buf := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", buf, time.Minute))
	buf[0] = 'x'

	v, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(v))
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Second, time.Minute)
	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, c.Delete(ctx, "a"))

	_, ok, _ := c.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "b")
	assert.True(t, ok)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), Config{Driver: "memcached"})
	assert.Error(t, err)

	c, err := New(context.Background(), Config{Driver: "none"})
	require.NoError(t, err)
	_, ok, err := c.Get(context.Background(), "x")
	assert.NoError(t, err)
	assert.False(t, ok)
}
