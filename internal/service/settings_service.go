package service

import (
	"context"

	"muro/internal/models"
	"muro/internal/repository"
	"muro/internal/validation"
)

type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

type UpdateSettingsInput struct {
	PriceSimple    *float64
	PriceWithImage *float64
	TRXWallet      *string
	USDTWallet     *string
	BUSDWallet     *string
}

func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the current pricing and wallet configuration.
func (s *SettingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettings applies a partial update to the settings singleton. Only the
// fields present in the input change.
func (s *SettingsService) UpdateSettings(ctx context.Context, in UpdateSettingsInput) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if in.PriceSimple != nil {
		if err := validation.ValidateAmount(*in.PriceSimple); err != nil {
			return nil, models.NewValidationError("price_simple: " + err.Error())
		}
		settings.PriceSimple = *in.PriceSimple
	}
	if in.PriceWithImage != nil {
		if err := validation.ValidateAmount(*in.PriceWithImage); err != nil {
			return nil, models.NewValidationError("price_with_image: " + err.Error())
		}
		settings.PriceWithImage = *in.PriceWithImage
	}
	if in.TRXWallet != nil {
		if err := validation.ValidateWallet("trx", *in.TRXWallet); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		settings.TRXWallet = *in.TRXWallet
	}
	if in.USDTWallet != nil {
		if err := validation.ValidateWallet("usdt", *in.USDTWallet); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		settings.USDTWallet = *in.USDTWallet
	}
	if in.BUSDWallet != nil {
		if err := validation.ValidateWallet("busd", *in.BUSDWallet); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		settings.BUSDWallet = *in.BUSDWallet
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
