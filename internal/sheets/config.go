// Package sheets exports monthly summaries to Google Sheets.
package sheets

import (
	"fmt"
	"os"
	"time"

	"github.com/envelope-budget/envelope/internal/common"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TimeZone:      "America/New_York",
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// LoadFromEnv fills unset fields from ENVELOPE_SHEETS_* environment
// variables. Values already present, from the config file or flags, win.
// Viper's AutomaticEnv does not map nested keys like sheets.client_id,
// so the env fallback lives here.
func (c *Config) LoadFromEnv() {
	fromEnv := func(dst *string, key string) {
		if *dst == "" {
			*dst = os.Getenv(key)
		}
	}

	fromEnv(&c.ClientID, "ENVELOPE_SHEETS_CLIENT_ID")
	fromEnv(&c.ClientSecret, "ENVELOPE_SHEETS_CLIENT_SECRET")
	fromEnv(&c.RefreshToken, "ENVELOPE_SHEETS_REFRESH_TOKEN")
	fromEnv(&c.ServiceAccountPath, "ENVELOPE_SHEETS_SERVICE_ACCOUNT_PATH")
	fromEnv(&c.SpreadsheetID, "ENVELOPE_SHEETS_SPREADSHEET_ID")
	fromEnv(&c.SpreadsheetName, "ENVELOPE_SHEETS_SPREADSHEET_NAME")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("%w: no authentication method configured", common.ErrMissingConfig)
	}

	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or service account", common.ErrInvalidConfig)
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}
