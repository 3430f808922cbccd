package models

import "time"

// SettingsID is the fixed primary key of the singleton settings row.
const SettingsID uint = 1

// Settings is the singleton pricing and wallet configuration. It is read on
// every submission to compute the charge and mutated only by administrators.
type Settings struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PriceSimple    float64   `gorm:"not null;default:200" json:"price_simple"`
	PriceWithImage float64   `gorm:"not null;default:1000" json:"price_with_image"`
	TRXWallet      string    `json:"trx_wallet"`
	USDTWallet     string    `json:"usdt_wallet"`
	BUSDWallet     string    `json:"busd_wallet"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultSettings returns the values used to seed the settings row on first
// access.
func DefaultSettings() Settings {
	return Settings{
		ID:             SettingsID,
		PriceSimple:    200,
		PriceWithImage: 1000,
	}
}

// PriceFor returns the charge for a submission with or without an image.
func (s *Settings) PriceFor(withImage bool) float64 {
	if withImage {
		return s.PriceWithImage
	}
	return s.PriceSimple
}

// Wallets returns the named crypto wallet addresses for manual transfers.
// Empty addresses are omitted.
func (s *Settings) Wallets() map[string]string {
	wallets := make(map[string]string, 3)
	if s.TRXWallet != "" {
		wallets["trx"] = s.TRXWallet
	}
	if s.USDTWallet != "" {
		wallets["usdt"] = s.USDTWallet
	}
	if s.BUSDWallet != "" {
		wallets["busd"] = s.BUSDWallet
	}
	return wallets
}
