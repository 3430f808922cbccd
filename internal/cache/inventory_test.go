package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type pricing struct {
	Simple    float64 `json:"simple"`
	WithImage float64 `json:"with_image"`
}

func TestAside_MissFetchesAndPopulates(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	calls := 0
	var got pricing
	fetch := func() error {
		calls++
		got = pricing{Simple: 200, WithImage: 1000}
		return nil
	}

	require.NoError(t, Aside(ctx, SettingsKey, &got, SettingsTTL, fetch))
	assert.Equal(t, 1, calls)
	assert.Equal(t, float64(200), got.Simple)
	assert.True(t, mr.Exists(SettingsKey))

	// Second read is served from cache.
	var again pricing
	require.NoError(t, Aside(ctx, SettingsKey, &again, SettingsTTL, fetch))
	assert.Equal(t, 1, calls)
	assert.Equal(t, got, again)
}

func TestAside_CorruptEntryFallsBack(t *testing.T) {
	mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(SettingsKey, "{not json"))

	var got pricing
	err := Aside(ctx, SettingsKey, &got, SettingsTTL, func() error {
		got = pricing{Simple: 200, WithImage: 1000}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, float64(1000), got.WithImage)
}

func TestAside_NilClientPassesThrough(t *testing.T) {
	SetClient(nil)
	var got pricing
	err := Aside(context.Background(), SettingsKey, &got, time.Minute, func() error {
		got = pricing{Simple: 200}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, float64(200), got.Simple)
}

func TestInvalidateWall(t *testing.T) {
	mr := setupTestRedis(t)
	require.NoError(t, mr.Set(WallFirstPage, `[]`))

	InvalidateWall(context.Background())
	assert.False(t, mr.Exists(WallFirstPage))
}
