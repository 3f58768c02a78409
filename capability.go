package sheetprobe

// WorkbookOpener is the parsing capability for one FormatKind.
type WorkbookOpener interface {
	OpenWorkbook(path string) (Workbook, error)
}

// Workbook is an open spreadsheet. Implementations must release every
// underlying resource in Close.
type Workbook interface {
	// SheetNames returns sheet names in workbook order.
	SheetNames() []string
	// ReadRows returns at most limit leading rows of sheet.
	ReadRows(sheet string, limit int) ([]Row, error)
	Close() error
}

// SheetVisibility is implemented by workbooks that know about hidden sheets.
type SheetVisibility interface {
	SheetVisible(sheet string) (bool, error)
}

// IndexedReader is implemented by workbooks that can read a sheet by its
// position, for formats where sheet names are not guaranteed unique.
type IndexedReader interface {
	ReadRowsAt(index, limit int) ([]Row, error)
}

// PropertiesReader is implemented by workbooks exposing document metadata.
type PropertiesReader interface {
	Properties() ([]Property, error)
}

// OpenerFunc adapts a plain function to WorkbookOpener.
type OpenerFunc func(path string) (Workbook, error)

func (f OpenerFunc) OpenWorkbook(path string) (Workbook, error) { return f(path) }

// DefaultOpeners returns the stock parser for each spreadsheet container.
func DefaultOpeners(charset string) map[FormatKind]WorkbookOpener {
	return map[FormatKind]WorkbookOpener{
		FormatZip:      XLSXOpener{},
		FormatCompound: XLSOpener{Charset: charset},
	}
}
