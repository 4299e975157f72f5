// Package google implements the table store ports against a Google Sheets
// spreadsheet, one worksheet per table.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"financas/internal/core"
	ports "financas/internal/sheets"

	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

// Ensure interface conformance
var _ ports.TableStore = (*Client)(nil)

// New wraps an existing Sheets service. Used by tests and by callers that
// manage credentials themselves.
func New(svc *gsheet.Service, spreadsheetID string) *Client {
	return &Client{svc: svc, spreadsheetID: spreadsheetID}
}

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Credentials: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return New(svc, spreadsheetID), nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
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

// LoadTable reads the whole worksheet and keys every data row by the header
// row. Short rows are padded with empty strings. A worksheet that does not
// exist reads as an empty table.
func (c *Client) LoadTable(ctx context.Context, name string) ([]core.Row, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:Z", quoteSheet(name))
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		if isMissingSheet(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	if len(resp.Values) < 2 {
		return nil, nil
	}
	header := toStrings(resp.Values[0])
	rows := make([]core.Row, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		cols := toStrings(raw)
		row := make(core.Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(cols) {
				row[col] = cols[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow appends one row ordered by the worksheet's current header.
func (c *Client) AppendRow(ctx context.Context, name string, row core.Row) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	header, err := c.readHeader(ctx, name)
	if err != nil {
		return err
	}
	if len(header) == 0 {
		return fmt.Errorf("append %q: %w", name, ports.ErrTableNotFound)
	}
	values := make([]any, len(header))
	for i, col := range header {
		values[i] = row[col]
	}
	vr := &gsheet.ValueRange{Values: [][]any{values}}
	_, err = c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rangeAll(name), vr).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", name, err)
	}
	return nil
}

// OverwriteTable clears the worksheet and rewrites the canonical header plus
// the given rows. Deletions go through here; there is no row update.
func (c *Client) OverwriteTable(ctx context.Context, name string, rows []core.Row) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rangeAll(name), &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", name, err)
	}
	header := ports.HeaderFor(name)
	values := make([][]any, 0, len(rows)+1)
	values = append(values, toAnys(header))
	for _, row := range rows {
		line := make([]any, len(header))
		for i, col := range header {
			line[i] = row[col]
		}
		values = append(values, line)
	}
	vr := &gsheet.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, fmt.Sprintf("%s!A1", quoteSheet(name)), vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", name, err)
	}
	return nil
}

// EnsureTable creates the worksheet with the given header when absent.
// A concurrent create losing the race reports success: the sheet exists,
// which is all the caller needs.
func (c *Client) EnsureTable(ctx context.Context, name string, header []string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	existing, err := c.readHeader(ctx, name)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: name},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		if !isAlreadyExists(err) {
			return fmt.Errorf("add sheet %q: %w", name, err)
		}
		slog.DebugContext(ctx, "Sheet already exists, treating create as success", "table", name)
	}

	// The sheet may have been created empty by us or by a racing writer
	// that has not written its header yet; only write the header when the
	// first row is still blank.
	existing, err = c.readHeader(ctx, name)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	vr := &gsheet.ValueRange{Values: [][]any{toAnys(header)}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, fmt.Sprintf("%s!A1", quoteSheet(name)), vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header for %q: %w", name, err)
	}
	return nil
}

// EnsureHeaders guarantees every required table exists and carries its
// canonical header. A table with a different header is cleared and rebuilt;
// that only happens on first runs against a hand-made spreadsheet.
func (c *Client) EnsureHeaders(ctx context.Context) error {
	for _, name := range ports.RequiredTables() {
		header := ports.HeaderFor(name)
		existing, err := c.readHeader(ctx, name)
		if err != nil {
			return fmt.Errorf("inspect %q: %w", name, err)
		}
		switch {
		case len(existing) == 0:
			if err := c.EnsureTable(ctx, name, header); err != nil {
				return err
			}
		case !equalHeader(existing, header):
			slog.WarnContext(ctx, "Table header mismatch, rebuilding",
				"table", name, "found", existing, "want", header)
			if err := c.OverwriteTable(ctx, name, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Client) readHeader(ctx context.Context, name string) ([]string, error) {
	rng := fmt.Sprintf("%s!1:1", quoteSheet(name))
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		if isMissingSheet(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	header := toStrings(resp.Values[0])
	for len(header) > 0 && header[len(header)-1] == "" {
		header = header[:len(header)-1]
	}
	return header, nil
}

func rangeAll(name string) string {
	return fmt.Sprintf("%s!A:Z", quoteSheet(name))
}

// quoteSheet quotes a worksheet title for A1 notation. Archive titles carry
// spaces ("MARÇO - 2024") and need the quotes.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// isMissingSheet matches the API error for a range that names an absent
// worksheet.
func isMissingSheet(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == 400 && strings.Contains(gerr.Message, "Unable to parse range")
}

func isAlreadyExists(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == 400 && strings.Contains(gerr.Message, "already exists")
}

func equalHeader(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(strings.TrimSpace(a[i]), b[i]) {
			return false
		}
	}
	return true
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func toAnys(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
