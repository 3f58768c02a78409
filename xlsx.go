package sheetprobe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thedatashed/xlsxreader"
	"github.com/xuri/excelize/v2"
)

// XLSXOpener reads zip-based workbooks. excelize provides the workbook
// structure and xlsxreader streams rows without loading whole sheets.
type XLSXOpener struct{}

func (XLSXOpener) OpenWorkbook(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}

	xl, err := xlsxreader.OpenFile(path)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}

	return &xlsxWorkbook{file: f, xl: xl}, nil
}

type xlsxWorkbook struct {
	file    *excelize.File
	xl      *xlsxreader.XlsxFileCloser
	// Row channels abandoned before they were exhausted.
	pending []chan xlsxreader.Row
}

func (w *xlsxWorkbook) SheetNames() []string {
	return w.file.GetSheetList()
}

func (w *xlsxWorkbook) SheetVisible(sheet string) (bool, error) {
	return w.file.GetSheetVisible(sheet)
}

func (w *xlsxWorkbook) Properties() ([]Property, error) {
	dp, err := w.file.GetDocProps()
	if err != nil {
		return nil, err
	}
	var props []Property
	add := func(name, value string) {
		if v := strings.TrimSpace(value); v != "" {
			props = append(props, Property{Name: name, Value: v})
		}
	}
	add("Title", dp.Title)
	add("Subject", dp.Subject)
	add("Creator", dp.Creator)
	add("Keywords", dp.Keywords)
	add("Description", dp.Description)
	add("LastModifiedBy", dp.LastModifiedBy)
	add("Category", dp.Category)
	add("Created", dp.Created)
	add("Modified", dp.Modified)
	add("Revision", dp.Revision)
	return props, nil
}

func (w *xlsxWorkbook) ReadRows(sheet string, limit int) ([]Row, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows := w.xl.ReadRows(sheet)
	out := make([]Row, 0, limit)
	for row := range rows {
		if row.Error != nil {
			w.pending = append(w.pending, rows)
			return out, row.Error
		}
		number := row.Index
		if number <= 0 {
			// Rows may omit r; they then follow the previous row.
			number = 1
			if len(out) > 0 {
				number = out[len(out)-1].Number + 1
			}
		}
		out = append(out, Row{Number: number, Values: xlsxValues(row.Cells)})
		if len(out) >= limit {
			w.pending = append(w.pending, rows)
			break
		}
	}
	return out, nil
}

// Close closes both readers, then drains abandoned row channels. With the
// archive closed the reader goroutines fail fast and exit.
func (w *xlsxWorkbook) Close() error {
	var firstErr error
	if err := w.xl.Close(); err != nil {
		firstErr = err
	}
	if err := w.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	for _, ch := range w.pending {
		for range ch {
		}
	}
	w.pending = nil
	return firstErr
}

// xlsxValues places cells by column. Cells without an r reference report
// ColumnIndex -1 and take the position after the previous cell.
func xlsxValues(cells []xlsxreader.Cell) []interface{} {
	positions := make([]int, len(cells))
	width, prev := 0, -1
	for i, c := range cells {
		idx := c.ColumnIndex()
		if idx < 0 {
			idx = prev + 1
		}
		positions[i], prev = idx, idx
		width = max(width, idx+1)
	}
	values := make([]interface{}, width)
	for i, c := range cells {
		values[positions[i]] = xlsxValue(c)
	}
	return values
}

func xlsxValue(c xlsxreader.Cell) interface{} {
	if c.Value == "" {
		return nil
	}
	switch c.Type {
	case xlsxreader.TypeNumerical:
		if f, err := strconv.ParseFloat(c.Value, 64); err == nil {
			return f
		}
	case xlsxreader.TypeBoolean:
		if b, err := strconv.ParseBool(c.Value); err == nil {
			return b
		}
	}
	return c.Value
}
