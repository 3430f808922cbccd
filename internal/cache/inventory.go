package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Cache keys and TTLs for the entities the API serves repeatedly. The wall's
// first page is the hot path (it is what every visitor loads), so it is the
// only list page we cache.
const (
	SettingsKey   = "settings:pricing"
	WallFirstPage = "wall:page:first"

	SettingsTTL = 10 * time.Minute
	WallTTL     = 30 * time.Second
)

// Aside implements the cache-aside pattern: read from Redis, fall back to
// fetch on a miss, and populate the cache with the result. fetch must fill
// dest. A nil client or a Redis failure degrades to calling fetch directly.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	c := GetClient()
	if c != nil {
		raw, err := c.Get(ctx, key).Result()
		if err == nil {
			if err := json.Unmarshal([]byte(raw), dest); err == nil {
				return nil
			}
			// Corrupt entry: drop it and fall through to fetch.
			c.Del(ctx, key)
		}
	}

	if err := fetch(); err != nil {
		return err
	}

	if c != nil {
		data, err := json.Marshal(dest)
		if err != nil {
			return err
		}
		if err := c.Set(ctx, key, data, ttl).Err(); err != nil {
			slog.Warn("cache set failed", "key", key, "error", err)
		}
	}
	return nil
}

// InvalidateSettings drops the cached pricing settings.
func InvalidateSettings(ctx context.Context) {
	invalidate(ctx, SettingsKey)
}

// InvalidateWall drops the cached first page of the wall. Called whenever a
// graffiti is approved or deleted.
func InvalidateWall(ctx context.Context) {
	invalidate(ctx, WallFirstPage)
}

func invalidate(ctx context.Context, key string) {
	c := GetClient()
	if c == nil {
		return
	}
	if err := c.Del(ctx, key).Err(); err != nil {
		slog.Warn("cache invalidation failed", "key", key, "error", err)
	}
}
