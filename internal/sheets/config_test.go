package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/envelope-budget/envelope/internal/common"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		wantIs  error
		config  Config
		wantErr bool
	}{
		{
			name: "partial oauth credentials",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "", // Missing secret
				RefreshToken:  "test-token",
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: true,
			errMsg:  "no authentication method configured",
			wantIs:  common.ErrMissingConfig,
		},
		{
			name: "complete oauth credentials",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				RefreshToken:  "test-token",
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: false,
		},
		{
			name: "both auth methods configured",
			config: Config{
				ClientID:           "test-client",
				ClientSecret:       "test-secret",
				RefreshToken:       "test-token",
				ServiceAccountPath: "/path/to/key.json",
			},
			wantErr: true,
			errMsg:  "multiple authentication methods",
			wantIs:  common.ErrInvalidConfig,
		},
		{
			name: "zero retry delay is valid",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				RetryAttempts:      0, // No retries
				RetryDelay:         0, // No delay
			},
			wantErr: false,
		},
		{
			name: "negative retry delay",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				RetryAttempts:      3,
				RetryDelay:         -1 * time.Second,
			},
			wantErr: true,
			errMsg:  "retry delay cannot be negative",
			wantIs:  common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
				if tt.wantIs != nil {
					assert.ErrorIs(t, err, tt.wantIs)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENVELOPE_SHEETS_CLIENT_ID", "env-client")
	t.Setenv("ENVELOPE_SHEETS_CLIENT_SECRET", "env-secret")
	t.Setenv("ENVELOPE_SHEETS_REFRESH_TOKEN", "env-token")
	t.Setenv("ENVELOPE_SHEETS_SPREADSHEET_ID", "env-sheet-id")

	cfg := DefaultConfig()
	cfg.ClientID = "config-client" // config file value wins over env
	cfg.LoadFromEnv()

	assert.Equal(t, "config-client", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
	assert.Equal(t, "env-token", cfg.RefreshToken)
	assert.Equal(t, "env-sheet-id", cfg.SpreadsheetID)
	assert.NoError(t, cfg.Validate())
}
