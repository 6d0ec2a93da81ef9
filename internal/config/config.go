// Package config loads Umbrella API settings from the environment.
package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/umbrella-tools/umbrella-reports/internal/umbrella/auth"
)

// Config holds everything needed to construct an authenticated client.
// Credentials may be empty here; auth.New rejects them at construction time.
type Config struct {
	Credentials auth.Credentials
	TokenURL    string
	BaseURL     string
}

// Load reads settings from the environment, honouring a local .env file.
// DNS_API_KEY and DNS_API_SECRET carry the key/secret pair generated in the
// Umbrella dashboard.
func Load() (*Config, error) {
	godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.BindEnv("api_key", "DNS_API_KEY")
	v.BindEnv("api_secret", "DNS_API_SECRET")
	v.BindEnv("token_url", "DNS_TOKEN_URL")
	v.BindEnv("report_url", "DNS_REPORT_URL")

	v.SetDefault("token_url", "https://api.umbrella.com/auth/v2/token")
	v.SetDefault("report_url", "https://api.umbrella.com/reports/v2")

	cfg := &Config{
		Credentials: auth.Credentials{
			Key:    v.GetString("api_key"),
			Secret: v.GetString("api_secret"),
		},
		TokenURL: v.GetString("token_url"),
		BaseURL:  v.GetString("report_url"),
	}

	return cfg, nil
}
