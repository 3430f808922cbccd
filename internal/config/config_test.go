package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:      "4000",
		Env:       "development",
		JWTSecret: "secure-secret-at-least-32-chars-long",
		MPBaseURL: "https://api.mercadopago.com",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"missing gateway base url", func(c *Config) { c.MPBaseURL = "" }, true},
		{"short jwt secret in development is tolerated", func(c *Config) { c.JWTSecret = "short" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"default jwt secret rejected", func(c *Config) {
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"short jwt secret rejected", func(c *Config) { c.JWTSecret = "short" }, true},
		{"default db password rejected", func(c *Config) { c.DBPassword = "password" }, true},
		{"missing gateway token rejected", func(c *Config) { c.MPAccessToken = "" }, true},
		{"strong config accepted", func(c *Config) {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = "production"
			c.DBPassword = "a-strong-production-password"
			c.MPAccessToken = "APP_USR-test-token"
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	os.Setenv("APP_ENV", "test")
	os.Setenv("PORT", "9999")
	os.Setenv("MERCADOPAGO_ACCESS_TOKEN", "TEST-token")
	t.Cleanup(func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("PORT")
		os.Unsetenv("MERCADOPAGO_ACCESS_TOKEN")
	})

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "TEST-token", cfg.MPAccessToken)
	assert.Equal(t, "https://api.mercadopago.com", cfg.MPBaseURL)
}
