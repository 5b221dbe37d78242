package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/envelope-budget/envelope/internal/common"
	"github.com/envelope-budget/envelope/internal/format"
	"github.com/envelope-budget/envelope/internal/report"
)

// Writer publishes monthly summaries to a Google Sheets spreadsheet.
type Writer struct {
	service *sheetsapi.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Write publishes the summary, replacing any previous content.
func (w *Writer) Write(ctx context.Context, summary *report.MonthlySummary) error {
	w.logger.Info("starting summary export",
		"month", summary.Month,
		"budgets", len(summary.Budgets))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if clearErr := w.clearSheet(ctx, spreadsheetID); clearErr != nil {
		return fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	values := prepareSummaryData(summary)

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, values)
	}, retryOpts)

	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	w.logger.Info("summary export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheetsapi.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheetsapi.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheetsapi.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = client.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheetsapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheetsapi.Spreadsheet{
		Properties: &sheetsapi.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheetsapi.Sheet{
			{
				Properties: &sheetsapi.SheetProperties{
					Title: "Summary",
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// clearSheet clears all data from the sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheetsapi.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// writeData writes the prepared values starting at A1.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	valueRange := &sheetsapi.ValueRange{Values: values}
	_, err := w.service.Spreadsheets.Values.
		Update(spreadsheetID, "A1", valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}

// prepareSummaryData flattens a monthly summary into sheet rows.
func prepareSummaryData(summary *report.MonthlySummary) [][]any {
	estimatedRows := 12 + len(summary.Budgets) + len(summary.SpentByCategory) + len(summary.SavingsBalances)
	values := make([][]any, 0, estimatedRows)

	values = append(values,
		[]any{"Envelope Budget", format.MonthLabel(summary.Month)},
		[]any{},
		[]any{"Summary"},
		[]any{"Money to Assign", summary.MoneyToAssign},
		[]any{"Actual in Bank", summary.ActualInBank},
		[]any{"Total Savings", summary.TotalSavings},
		[]any{},
		[]any{"Budgets"},
		[]any{"Category", "Allocated", "Spent", "Remaining"},
	)

	for _, line := range summary.Budgets {
		values = append(values, []any{line.Category, line.Allocated, line.Spent, line.Allocated - line.Spent})
	}

	values = append(values,
		[]any{},
		[]any{"Spending by Category"},
		[]any{"Category", "Amount"},
	)

	// Largest spend first.
	spendCats := make([]string, 0, len(summary.SpentByCategory))
	for category := range summary.SpentByCategory {
		spendCats = append(spendCats, category)
	}
	sort.Slice(spendCats, func(i, j int) bool {
		return summary.SpentByCategory[spendCats[i]] > summary.SpentByCategory[spendCats[j]]
	})
	for _, category := range spendCats {
		values = append(values, []any{category, summary.SpentByCategory[category]})
	}

	values = append(values,
		[]any{},
		[]any{"Savings Balances"},
		[]any{"Category", "Balance"},
	)

	savingsCats := make([]string, 0, len(summary.SavingsBalances))
	for category := range summary.SavingsBalances {
		savingsCats = append(savingsCats, category)
	}
	sort.Strings(savingsCats)
	for _, category := range savingsCats {
		values = append(values, []any{category, summary.SavingsBalances[category]})
	}

	return values
}
