package sheetdb

import (
	"context"
	"fmt"
)

// fakeAPI is an in-memory rowAPI standing in for the remote spreadsheet.
type fakeAPI struct {
	sheets map[string]*fakeSheet
	fail   map[string]int // op name -> remaining forced failures
}

type fakeSheet struct {
	headers []string
	rows    []map[string]string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{sheets: map[string]*fakeSheet{}, fail: map[string]int{}}
}

func (f *fakeAPI) addSheet(title string, headers []string, rows ...map[string]string) {
	f.sheets[title] = &fakeSheet{headers: headers, rows: rows}
}

func (f *fakeAPI) maybeFail(op string) error {
	if f.fail[op] > 0 {
		f.fail[op]--
		return fmt.Errorf("forced %s failure", op)
	}
	return nil
}

func (f *fakeAPI) ensureSheet(_ context.Context, title string, headers []string) error {
	if err := f.maybeFail("ensureSheet"); err != nil {
		return err
	}
	if _, ok := f.sheets[title]; !ok {
		f.addSheet(title, append([]string(nil), headers...))
	}
	return nil
}

func (f *fakeAPI) ensureHeaders(_ context.Context, title string, required []string) error {
	if err := f.maybeFail("ensureHeaders"); err != nil {
		return err
	}
	sheet, ok := f.sheets[title]
	if !ok {
		return fmt.Errorf("sheet %s not found", title)
	}
	existing := map[string]bool{}
	for _, h := range sheet.headers {
		existing[h] = true
	}
	for _, h := range required {
		if !existing[h] {
			sheet.headers = append(sheet.headers, h)
		}
	}
	return nil
}

func (f *fakeAPI) readSheet(_ context.Context, title string) ([]row, error) {
	if err := f.maybeFail("readSheet"); err != nil {
		return nil, err
	}
	sheet, ok := f.sheets[title]
	if !ok {
		return nil, fmt.Errorf("sheet %s not found", title)
	}
	var rows []row
	for i, values := range sheet.rows {
		copied := make(map[string]string, len(values))
		for _, h := range sheet.headers {
			copied[h] = values[h]
		}
		rows = append(rows, row{index: i + 2, values: copied})
	}
	return rows, nil
}

func (f *fakeAPI) appendRow(_ context.Context, title string, values map[string]string) error {
	if err := f.maybeFail("appendRow"); err != nil {
		return err
	}
	sheet, ok := f.sheets[title]
	if !ok {
		return fmt.Errorf("sheet %s not found", title)
	}
	stored := make(map[string]string, len(sheet.headers))
	for _, h := range sheet.headers {
		stored[h] = values[h]
	}
	sheet.rows = append(sheet.rows, stored)
	return nil
}

func (f *fakeAPI) updateRow(_ context.Context, title string, r row) error {
	if err := f.maybeFail("updateRow"); err != nil {
		return err
	}
	sheet, ok := f.sheets[title]
	if !ok {
		return fmt.Errorf("sheet %s not found", title)
	}
	i := r.index - 2
	if i < 0 || i >= len(sheet.rows) {
		return fmt.Errorf("row %d out of range", r.index)
	}
	stored := make(map[string]string, len(sheet.headers))
	for _, h := range sheet.headers {
		stored[h] = r.values[h]
	}
	sheet.rows[i] = stored
	return nil
}

func (f *fakeAPI) deleteRow(_ context.Context, title string, index int) error {
	if err := f.maybeFail("deleteRow"); err != nil {
		return err
	}
	sheet, ok := f.sheets[title]
	if !ok {
		return fmt.Errorf("sheet %s not found", title)
	}
	i := index - 2
	if i < 0 || i >= len(sheet.rows) {
		return fmt.Errorf("row %d out of range", index)
	}
	sheet.rows = append(sheet.rows[:i], sheet.rows[i+1:]...)
	return nil
}
