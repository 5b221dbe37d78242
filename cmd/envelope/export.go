package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/envelope-budget/envelope/internal/cli"
	"github.com/envelope-budget/envelope/internal/report"
	"github.com/envelope-budget/envelope/internal/sheets"
)

func exportCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a monthly summary to Google Sheets",
		Long: `Builds the summary for a month and publishes it to a Google Sheets
spreadsheet. Run 'envelope auth sheets' once first to set up
credentials.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			monthKey, err := resolveMonth(month)
			if err != nil {
				return err
			}

			sheetsConfig := sheets.DefaultConfig()
			sheetsConfig.ClientID = viper.GetString("sheets.client_id")
			sheetsConfig.ClientSecret = viper.GetString("sheets.client_secret")
			sheetsConfig.RefreshToken = viper.GetString("sheets.refresh_token")
			sheetsConfig.ServiceAccountPath = viper.GetString("sheets.service_account_path")
			sheetsConfig.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
			if name := viper.GetString("sheets.spreadsheet_name"); name != "" {
				sheetsConfig.SpreadsheetName = name
			}
			sheetsConfig.LoadFromEnv()
			if sheetsConfig.SpreadsheetName == "" {
				sheetsConfig.SpreadsheetName = "Envelope Budget"
			}
			if retries := viper.GetInt("sheets.retry_attempts"); retries > 0 {
				sheetsConfig.RetryAttempts = retries
			}
			if delay := viper.GetDuration("sheets.retry_delay"); delay > 0 {
				sheetsConfig.RetryDelay = delay
			}

			if err := sheetsConfig.Validate(); err != nil {
				return fmt.Errorf("sheets not configured: %w (run 'envelope auth sheets' first)", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summary, err := report.NewBuilder(store, nil).Build(ctx, monthKey)
			if err != nil {
				return fmt.Errorf("failed to build summary: %w", err)
			}

			writer, err := sheets.NewWriter(ctx, sheetsConfig, slog.Default())
			if err != nil {
				return fmt.Errorf("failed to create sheets writer: %w", err)
			}

			start := time.Now()
			if err := writer.Write(ctx, summary); err != nil {
				return fmt.Errorf("failed to export summary: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %s in %s",
				monthKey, time.Since(start).Round(time.Millisecond))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month (YYYY-MM, default: current)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Migrations also run automatically before every command; this just runs them and exits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Println(cli.FormatSuccess("Database is up to date"))
			return nil
		},
	}
}
