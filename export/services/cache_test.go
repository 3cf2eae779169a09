package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewPreviewCache(client, time.Minute)

	ctx := context.Background()
	_, found := cache.Get(ctx, "preview:abc")
	assert.False(t, found)

	cache.Set(ctx, "preview:abc", []byte("%PDF-1.7"))
	data, found := cache.Get(ctx, "preview:abc")
	require.True(t, found)
	assert.Equal(t, []byte("%PDF-1.7"), data)
}

func TestPreviewCacheDisabledWithoutClient(t *testing.T) {
	cache := NewPreviewCache(nil, time.Minute)
	assert.False(t, cache.Enabled())

	ctx := context.Background()
	_, found := cache.Get(ctx, "preview:abc")
	assert.False(t, found)
	cache.Set(ctx, "preview:abc", []byte("ignored"))
}
