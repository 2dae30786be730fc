package sheetdb

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"sweetshop/config"
)

// sheetsAPI is the Google Sheets implementation of rowAPI. The service
// client is built once per process; sheet metadata is re-fetched on use so a
// tab added by another writer is picked up.
type sheetsAPI struct {
	cfg config.SheetsConfig

	once    sync.Once
	svc     *sheets.Service
	initErr error
}

func newSheetsAPI(cfg config.SheetsConfig) *sheetsAPI {
	return &sheetsAPI{cfg: cfg}
}

func (a *sheetsAPI) service(ctx context.Context) (*sheets.Service, error) {
	a.once.Do(func() {
		auth := &jwt.Config{
			Email:      a.cfg.ServiceAccountEmail,
			PrivateKey: []byte(a.cfg.PrivateKey),
			Scopes:     []string{sheets.SpreadsheetsScope},
			TokenURL:   google.JWTTokenURL,
		}
		a.svc, a.initErr = sheets.NewService(ctx, option.WithHTTPClient(auth.Client(ctx)))
		if a.initErr != nil {
			a.initErr = fmt.Errorf("init sheets client: %w", a.initErr)
		}
	})
	return a.svc, a.initErr
}

// sheetID returns the numeric id of the named tab, or found=false if the
// spreadsheet has no such tab.
func (a *sheetsAPI) sheetID(ctx context.Context, title string) (int64, bool, error) {
	svc, err := a.service(ctx)
	if err != nil {
		return 0, false, err
	}

	var meta *sheets.Spreadsheet
	err = withRetry("loadInfo", func() error {
		var err error
		meta, err = svc.Spreadsheets.Get(a.cfg.SpreadsheetID).Fields("sheets.properties").Context(ctx).Do()
		return err
	})
	if err != nil {
		return 0, false, err
	}

	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return sheet.Properties.SheetId, true, nil
		}
	}
	return 0, false, nil
}

func (a *sheetsAPI) readHeaders(ctx context.Context, title string) ([]string, error) {
	svc, err := a.service(ctx)
	if err != nil {
		return nil, err
	}

	var resp *sheets.ValueRange
	err = withRetry("readHeaders "+title, func() error {
		var err error
		resp, err = svc.Spreadsheets.Values.Get(a.cfg.SpreadsheetID, title+"!1:1").Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	var headers []string
	if len(resp.Values) > 0 {
		for _, cell := range resp.Values[0] {
			headers = append(headers, fmt.Sprint(cell))
		}
	}
	return headers, nil
}

func (a *sheetsAPI) writeHeaders(ctx context.Context, title string, headers []string) error {
	svc, err := a.service(ctx)
	if err != nil {
		return err
	}

	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{cells}}

	return withRetry("writeHeaders "+title, func() error {
		_, err := svc.Spreadsheets.Values.Update(a.cfg.SpreadsheetID, title+"!A1", vr).
			ValueInputOption("RAW").Context(ctx).Do()
		return err
	})
}

func (a *sheetsAPI) ensureSheet(ctx context.Context, title string, headers []string) error {
	svc, err := a.service(ctx)
	if err != nil {
		return err
	}

	_, found, err := a.sheetID(ctx, title)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}
	err = withRetry("addSheet "+title, func() error {
		_, err := svc.Spreadsheets.BatchUpdate(a.cfg.SpreadsheetID, req).Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("create sheet %s: %w", title, err)
	}

	return a.writeHeaders(ctx, title, headers)
}

// ensureHeaders appends any missing required columns to the sheet's header
// row. Existing columns are never reordered or removed.
func (a *sheetsAPI) ensureHeaders(ctx context.Context, title string, required []string) error {
	headers, err := a.readHeaders(ctx, title)
	if err != nil {
		return err
	}

	existing := make(map[string]bool, len(headers))
	for _, h := range headers {
		existing[h] = true
	}

	changed := false
	for _, h := range required {
		if !existing[h] {
			headers = append(headers, h)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return a.writeHeaders(ctx, title, headers)
}

func (a *sheetsAPI) readSheet(ctx context.Context, title string) ([]row, error) {
	svc, err := a.service(ctx)
	if err != nil {
		return nil, err
	}

	var resp *sheets.ValueRange
	err = withRetry("readSheet "+title, func() error {
		var err error
		resp, err = svc.Spreadsheets.Values.Get(a.cfg.SpreadsheetID, title).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Values) == 0 {
		return nil, nil
	}

	headers := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		headers[i] = fmt.Sprint(cell)
	}

	var rows []row
	for i, cells := range resp.Values[1:] {
		values := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(cells) {
				values[h] = fmt.Sprint(cells[j])
			} else {
				values[h] = ""
			}
		}
		rows = append(rows, row{index: i + 2, values: values})
	}
	return rows, nil
}

func (a *sheetsAPI) appendRow(ctx context.Context, title string, values map[string]string) error {
	svc, err := a.service(ctx)
	if err != nil {
		return err
	}

	headers, err := a.readHeaders(ctx, title)
	if err != nil {
		return err
	}

	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = values[h]
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{cells}}

	return withRetry("appendRow "+title, func() error {
		_, err := svc.Spreadsheets.Values.Append(a.cfg.SpreadsheetID, title, vr).
			ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
		return err
	})
}

func (a *sheetsAPI) updateRow(ctx context.Context, title string, r row) error {
	svc, err := a.service(ctx)
	if err != nil {
		return err
	}

	headers, err := a.readHeaders(ctx, title)
	if err != nil {
		return err
	}

	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = r.values[h]
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{cells}}
	rng := fmt.Sprintf("%s!A%d", title, r.index)

	return withRetry("updateRow "+title, func() error {
		_, err := svc.Spreadsheets.Values.Update(a.cfg.SpreadsheetID, rng, vr).
			ValueInputOption("RAW").Context(ctx).Do()
		return err
	})
}

func (a *sheetsAPI) deleteRow(ctx context.Context, title string, index int) error {
	svc, err := a.service(ctx)
	if err != nil {
		return err
	}

	id, found, err := a.sheetID(ctx, title)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("sheet %s: %w", title, ErrNotFound)
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    id,
					Dimension:  "ROWS",
					StartIndex: int64(index - 1),
					EndIndex:   int64(index),
				},
			},
		}},
	}
	return withRetry("deleteRow "+title, func() error {
		_, err := svc.Spreadsheets.BatchUpdate(a.cfg.SpreadsheetID, req).Context(ctx).Do()
		return err
	})
}
