package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisClient "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisClient.NewClient(&redisClient.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, "iwfm:"), mr
}

func TestCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t)

	type payload struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}

	require.NoError(t, c.Set("forecast:feed", payload{Name: "Anna Nagar", Value: 850}, time.Minute))

	var got payload
	found, err := c.Get("forecast:feed", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "Anna Nagar", Value: 850}, got)
}

func TestCache_MissIsNotAnError(t *testing.T) {
	c, _ := newTestCache(t)

	var dest map[string]string
	found, err := c.Get("absent", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_KeysArePrefixed(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, c.Set("forecast:feed", "x", time.Minute))
	assert.True(t, mr.Exists("iwfm:forecast:feed"))
	assert.False(t, mr.Exists("forecast:feed"))
}

func TestCache_TTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, c.Set("forecast:feed", "x", time.Minute))
	mr.FastForward(2 * time.Minute)

	var dest string
	found, err := c.Get("forecast:feed", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)

	require.NoError(t, c.Set("forecast:feed", "x", time.Minute))
	require.NoError(t, c.Delete("forecast:feed"))

	var dest string
	found, err := c.Get("forecast:feed", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_HealthCheck(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, c.HealthCheck())
	mr.Close()
	assert.Error(t, c.HealthCheck())
}
