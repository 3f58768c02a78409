package sheetprobe

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a workbook whose sheets are filled by fill, keyed by
// sheet name in creation order. The first sheet reuses excelize's Sheet1.
func writeWorkbook(t *testing.T, name string, sheets []string, fill func(f *excelize.File)) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if s != "Sheet1" {
				require.NoError(t, f.SetSheetName("Sheet1", s))
			}
			continue
		}
		_, err := f.NewSheet(s)
		require.NoError(t, err)
	}
	if fill != nil {
		fill(f)
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeRows(t *testing.T, f *excelize.File, sheet string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		row := []interface{}{fmt.Sprintf("item-%d", i), i}
		require.NoError(t, f.SetSheetRow(sheet, fmt.Sprintf("A%d", i), &row))
	}
}

func writeBytes(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// fakeWorkbook serves canned rows and failures per sheet.
type fakeWorkbook struct {
	names  []string
	rows   map[string][]Row
	errs   map[string]error
	panics map[string]bool
	closed *bool
}

func (w *fakeWorkbook) SheetNames() []string { return w.names }

func (w *fakeWorkbook) ReadRows(sheet string, limit int) ([]Row, error) {
	if w.panics[sheet] {
		panic("malformed record")
	}
	if err := w.errs[sheet]; err != nil {
		return nil, err
	}
	rows := w.rows[sheet]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (w *fakeWorkbook) Close() error {
	if w.closed != nil {
		*w.closed = true
	}
	return nil
}

func fakeOpener(wb *fakeWorkbook) WorkbookOpener {
	return OpenerFunc(func(string) (Workbook, error) { return wb, nil })
}
