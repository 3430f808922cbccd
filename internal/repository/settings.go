package repository

import (
	"context"

	"muro/internal/cache"
	"muro/internal/models"

	"gorm.io/gorm"
)

// SettingsRepository defines access to the pricing/wallet settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, settings *models.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the settings row, creating it with defaults on first access.
// Reads go through the cache; the row itself always has ID 1.
func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := cache.Aside(ctx, cache.SettingsKey, &settings, cache.SettingsTTL, func() error {
		return r.db.WithContext(ctx).
			Where(models.Settings{ID: models.SettingsID}).
			Attrs(models.DefaultSettings()).
			FirstOrCreate(&settings).Error
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	settings.ID = models.SettingsID
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return err
	}
	cache.InvalidateSettings(ctx)
	return nil
}
