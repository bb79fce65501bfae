package render

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrRenderCachesByKey(t *testing.T) {
	c := NewArtifactCache(time.Minute, time.Minute, nil)
	defer c.Close()

	calls := 0
	render := func(context.Context) ([]byte, error) {
		calls++
		return []byte("%PDF-artifact"), nil
	}

	first, err := c.GetOrRender(context.Background(), "k1", render)
	require.NoError(t, err)
	second, err := c.GetOrRender(context.Background(), "k1", render)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "повторный запрос того же ключа не рендерит")
	assert.True(t, c.Peek("k1"))
}

func TestGetOrRenderDistinctKeys(t *testing.T) {
	c := NewArtifactCache(time.Minute, time.Minute, nil)
	defer c.Close()

	calls := 0
	render := func(context.Context) ([]byte, error) {
		calls++
		return []byte{byte(calls)}, nil
	}

	_, err := c.GetOrRender(context.Background(), "a", render)
	require.NoError(t, err)
	_, err = c.GetOrRender(context.Background(), "b", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, c.Len())
}

func TestRenderFailureNotCached(t *testing.T) {
	c := NewArtifactCache(time.Minute, time.Minute, nil)
	defer c.Close()

	boom := errors.New("chrome exploded")
	calls := 0
	_, err := c.GetOrRender(context.Background(), "k", func(context.Context) ([]byte, error) {
		calls++
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, c.Peek("k"), "ошибка рендера в кеш не пишется")

	// следующий идентичный запрос повторяет попытку
	data, err := c.GetOrRender(context.Background(), "k", func(context.Context) ([]byte, error) {
		calls++
		return []byte("ok"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), data)
	assert.Equal(t, 2, calls)
}

func TestExpiredEntryRerenders(t *testing.T) {
	c := NewArtifactCache(10*time.Millisecond, time.Hour, nil)
	defer c.Close()

	calls := 0
	render := func(context.Context) ([]byte, error) {
		calls++
		return []byte("x"), nil
	}

	_, err := c.GetOrRender(context.Background(), "k", render)
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)
	assert.False(t, c.Peek("k"), "TTL истёк")

	_, err = c.GetOrRender(context.Background(), "k", render)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestSweepRemovesExpired(t *testing.T) {
	c := NewArtifactCache(10*time.Millisecond, time.Hour, nil)
	defer c.Close()

	_, err := c.GetOrRender(context.Background(), "k", func(context.Context) ([]byte, error) {
		return []byte("x"), nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	c.sweep(time.Now().Add(time.Second))
	assert.Equal(t, 0, c.Len())
}

func TestCloseClearsEntries(t *testing.T) {
	c := NewArtifactCache(time.Minute, time.Minute, nil)
	_, err := c.GetOrRender(context.Background(), "k", func(context.Context) ([]byte, error) {
		return []byte("x"), nil
	})
	require.NoError(t, err)

	c.Close()
	assert.Equal(t, 0, c.Len())
	// повторный Close безопасен
	c.Close()
}
