package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"flowcash/internal/core"
	applog "flowcash/internal/log"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Mirror is the secondary copy of the ledger. It is eventually consistent
// with the primary store; there is no read-back or reconciliation path.
type Mirror interface {
	Upsert(ctx context.Context, userID string, tx core.Transaction) error
	Delete(ctx context.Context, userID, txID string) error
}

// GoogleSheetsMirror appends transaction rows to a spreadsheet. Column A
// holds the transaction ID, which makes upserts and deletes row-addressable.
type GoogleSheetsMirror struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ Mirror = (*GoogleSheetsMirror)(nil)

// NewGoogleSheetsMirror creates a mirror using service account credentials
// from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewGoogleSheetsMirror(ctx context.Context, spreadsheetID, sheetName string) (*GoogleSheetsMirror, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if strings.TrimSpace(sheetName) == "" {
		return nil, errors.New("missing sheet name")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &GoogleSheetsMirror{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// Upsert writes the transaction row, replacing an existing row with the
// same ID or appending a new one.
func (m *GoogleSheetsMirror) Upsert(ctx context.Context, userID string, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	row := []any{
		tx.ID,
		userID,
		tx.Date.Format("2006-01-02"),
		tx.Description,
		string(tx.Type),
		float64(tx.Amount.Cents) / 100.0,
	}

	rowIndex, err := m.findRow(ctx, tx.ID)
	if err != nil {
		return err
	}

	if rowIndex > 0 {
		rng := fmt.Sprintf("%s!A%d:F%d", m.sheetName, rowIndex, rowIndex)
		vr := &gsheet.ValueRange{Values: [][]any{row}}
		_, err = m.svc.Spreadsheets.Values.Update(m.spreadsheetID, rng, vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("update row in sheet %s: %w", m.sheetName, err)
		}
	} else {
		rng := fmt.Sprintf("%s!A:F", m.sheetName)
		vr := &gsheet.ValueRange{Values: [][]any{row}}
		_, err = m.svc.Spreadsheets.Values.Append(m.spreadsheetID, rng, vr).
			ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("append row to sheet %s: %w", m.sheetName, err)
		}
	}

	slog.InfoContext(ctx, "Transaction mirrored to Google Sheets",
		applog.FieldTxID, tx.ID,
		applog.FieldUserID, userID)

	return nil
}

// Delete clears the row holding the transaction. Unknown IDs are a no-op so
// replayed deletes stay idempotent.
func (m *GoogleSheetsMirror) Delete(ctx context.Context, userID, txID string) error {
	rowIndex, err := m.findRow(ctx, txID)
	if err != nil {
		return err
	}
	if rowIndex == 0 {
		return nil
	}

	rng := fmt.Sprintf("%s!A%d:F%d", m.sheetName, rowIndex, rowIndex)
	_, err = m.svc.Spreadsheets.Values.Clear(m.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear row in sheet %s: %w", m.sheetName, err)
	}

	slog.InfoContext(ctx, "Transaction removed from Google Sheets mirror",
		applog.FieldTxID, txID,
		applog.FieldUserID, userID)

	return nil
}

// findRow returns the 1-based row whose first column equals txID, or 0.
func (m *GoogleSheetsMirror) findRow(ctx context.Context, txID string) (int, error) {
	rng := fmt.Sprintf("%s!A:A", m.sheetName)
	resp, err := m.svc.Spreadsheets.Values.Get(m.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read sheet %s: %w", m.sheetName, err)
	}

	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if v, ok := row[0].(string); ok && strings.TrimSpace(v) == txID {
			return i + 1, nil
		}
	}
	return 0, nil
}
