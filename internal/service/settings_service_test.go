package service

import (
	"context"
	"strings"
	"testing"

	"muro/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsService(t *testing.T) *SettingsService {
	t.Helper()
	db := setupServiceDB(t)
	return NewSettingsService(repository.NewSettingsRepository(db))
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestUpdateSettings_PartialUpdate(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	wallet := "T" + strings.Repeat("9", 33)
	updated, err := svc.UpdateSettings(ctx, UpdateSettingsInput{
		PriceSimple: floatPtr(300),
		TRXWallet:   strPtr(wallet),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(300), updated.PriceSimple)
	assert.Equal(t, float64(1000), updated.PriceWithImage) // untouched
	assert.Equal(t, wallet, updated.TRXWallet)

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(300), got.PriceSimple)
}

func TestUpdateSettings_RejectsInvalidValues(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	_, err := svc.UpdateSettings(ctx, UpdateSettingsInput{PriceSimple: floatPtr(-1)})
	assertValidationError(t, err)

	_, err = svc.UpdateSettings(ctx, UpdateSettingsInput{TRXWallet: strPtr("0xdeadbeef")})
	assertValidationError(t, err)

	// Clearing a wallet is allowed.
	updated, err := svc.UpdateSettings(ctx, UpdateSettingsInput{USDTWallet: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, updated.USDTWallet)
}
