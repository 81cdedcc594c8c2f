package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/optisale/optisale/pkg/zoho"
)

// Config holds all dashboard configuration. Missing CRM credentials do
// not fail Load: the server boots degraded and the facade reports the
// missing fields on first use, so the UI can show a status banner
// instead of refusing to start.
type Config struct {
	HTTPAddress string

	ZohoClientID     string
	ZohoClientSecret string
	ZohoRefreshToken string
	ZohoAccessToken  string
	ZohoAPIBaseURL   string
	ZohoAccountsURL  string

	GroqAPIKey string
	GroqModel  string
}

// Load reads configuration from an optional config file and environment
// variables.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"HTTPAddress":      "HTTP_ADDRESS",
		"ZohoClientID":     "ZOHO_CLIENT_ID",
		"ZohoClientSecret": "ZOHO_CLIENT_SECRET",
		"ZohoRefreshToken": "ZOHO_REFRESH_TOKEN",
		"ZohoAccessToken":  "ZOHO_ACCESS_TOKEN",
		"ZohoAPIBaseURL":   "ZOHO_API_BASE_URL",
		"ZohoAccountsURL":  "ZOHO_ACCOUNTS_URL",
		"GroqAPIKey":       "GROQ_API_KEY",
		"GroqModel":        "GROQ_MODEL",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	v.SetConfigName("optisale_config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.optisale")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTPAddress", ":8080")
	v.SetDefault("ZohoAPIBaseURL", zoho.DefaultBaseURL)
	v.SetDefault("ZohoAccountsURL", zoho.DefaultAccountsURL)
}

// ZohoCredentials maps the configuration into the CRM credential set.
func (c *Config) ZohoCredentials() zoho.Credentials {
	return zoho.Credentials{
		ClientID:     c.ZohoClientID,
		ClientSecret: c.ZohoClientSecret,
		RefreshToken: c.ZohoRefreshToken,
		AccessToken:  c.ZohoAccessToken,
	}
}
