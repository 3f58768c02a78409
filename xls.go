package sheetprobe

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/extrame/xls"
)

// XLSOpener reads legacy BIFF workbooks stored in compound files.
type XLSOpener struct {
	// Charset used for pre-BIFF8 strings. Defaults to utf-8.
	Charset string
}

func (o XLSOpener) OpenWorkbook(path string) (wb Workbook, err error) {
	charset := o.Charset
	if charset == "" {
		charset = "utf-8"
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xls file: %w", err)
	}
	// The BIFF parser panics on some malformed input.
	defer func() {
		if r := recover(); r != nil {
			wb, err = nil, fmt.Errorf("failed to open xls file: %v", r)
		}
		if err != nil {
			f.Close()
		}
	}()

	book, err := xls.OpenReader(f, charset)
	if err != nil {
		return nil, fmt.Errorf("failed to open xls file: %w", err)
	}
	if book == nil {
		// No Workbook or Book stream: a .doc, .ppt or other OLE document.
		return nil, &UnsupportedFormatError{Kind: FormatCompound}
	}
	w := &xlsWorkbook{book: book, file: f}
	w.loadSheets()
	return w, nil
}

type xlsSheet struct {
	name  string
	sheet *xls.WorkSheet
	err   error
}

type xlsWorkbook struct {
	book   *xls.WorkBook
	file   *os.File
	sheets []xlsSheet
}

// loadSheets parses every sheet up front. A sheet whose parse panics keeps
// a positional name and carries the failure to ReadRows.
func (w *xlsWorkbook) loadSheets() {
	n := w.book.NumSheets()
	w.sheets = make([]xlsSheet, 0, n)
	for i := 0; i < n; i++ {
		w.sheets = append(w.sheets, w.loadSheet(i))
	}
}

func (w *xlsWorkbook) loadSheet(i int) (s xlsSheet) {
	s.name = "Sheet" + strconv.Itoa(i+1)
	defer func() {
		if r := recover(); r != nil {
			s.sheet, s.err = nil, fmt.Errorf("parse sheet %d: %v", i+1, r)
		}
	}()
	ws := w.book.GetSheet(i)
	if ws == nil {
		s.err = fmt.Errorf("sheet %d not found", i+1)
		return s
	}
	if ws.Name != "" {
		s.name = ws.Name
	}
	s.sheet = ws
	return s
}

func (w *xlsWorkbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.name
	}
	return names
}

func (w *xlsWorkbook) Properties() ([]Property, error) {
	if a := strings.TrimSpace(w.book.Author); a != "" {
		return []Property{{Name: "Author", Value: a}}, nil
	}
	return nil, nil
}

// ReadRows reads the first sheet called sheet. Positional fallback names
// may repeat a real name, so the prober reads through ReadRowsAt instead.
func (w *xlsWorkbook) ReadRows(sheet string, limit int) ([]Row, error) {
	for i := range w.sheets {
		if w.sheets[i].name == sheet {
			return w.ReadRowsAt(i, limit)
		}
	}
	return nil, fmt.Errorf("sheet %q does not exist", sheet)
}

func (w *xlsWorkbook) ReadRowsAt(index, limit int) (rows []Row, err error) {
	if index < 0 || index >= len(w.sheets) {
		return nil, fmt.Errorf("sheet %d does not exist", index+1)
	}
	s := w.sheets[index]
	if s.err != nil {
		return nil, s.err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read rows: %v", r)
		}
	}()

	ws := s.sheet
	for i := 0; i <= int(ws.MaxRow) && len(rows) < limit; i++ {
		row := xlsRow(ws, i)
		if row == nil {
			continue
		}
		values := make([]interface{}, row.LastCol())
		nonEmpty := false
		for c := 0; c < row.LastCol(); c++ {
			if v := row.Col(c); v != "" {
				values[c] = v
				nonEmpty = true
			}
		}
		if !nonEmpty {
			continue
		}
		rows = append(rows, Row{Number: i + 1, Values: values})
	}
	return rows, nil
}

// xlsRow returns nil for rows the sheet does not store. WorkSheet.Row
// dereferences the missing row instead of returning nil.
func xlsRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if r := recover(); r != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

func (w *xlsWorkbook) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
