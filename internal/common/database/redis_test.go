package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-dashboard/internal/common/config"
)

func TestNewRedis_EmbeddedWhenNoAddress(t *testing.T) {
	c, err := NewRedis(config.RedisConfig{})
	require.NoError(t, err)
	defer c.Close()

	assert.True(t, c.Embedded())
	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
	n, err := c.Del(ctx, "k")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = c.Del(ctx, "k")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewRedis_External(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer c.Close()

	assert.False(t, c.Embedded())
	require.NoError(t, c.Set(context.Background(), "session", "x", time.Minute))
	assert.True(t, mr.Exists("session"))
	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("session"))
}

func TestPing_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer c.Close()
	mr.Close()

	assert.Error(t, c.Ping(context.Background()))
}
