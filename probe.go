// Package sheetprobe identifies spreadsheet files by their magic bytes and
// previews the leading rows of every sheet they contain.
package sheetprobe

import (
	"errors"
	"fmt"
	"log/slog"
)

// Prober runs the locate, classify, list and preview pipeline. A Prober
// holds no per-call state and is safe for concurrent use once built.
type Prober struct {
	openers          map[FormatKind]WorkbookOpener
	rowLimit         int
	entryLimit       int
	logger           *slog.Logger
	progressCallback func(ProgressInfo)
	progressChan     chan<- ProgressInfo
}

type Option func(*Prober)

type ProgressInfo struct {
	Phase   string  `json:"phase"`
	Sheet   string  `json:"sheet,omitempty"`
	Current int     `json:"current"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// WithRowLimit sets how many leading rows are kept per sheet.
func WithRowLimit(rows int) Option {
	return func(p *Prober) {
		if rows > 0 {
			p.rowLimit = rows
		}
	}
}

// WithEntryLimit caps the number of archive entry names reported.
func WithEntryLimit(entries int) Option {
	return func(p *Prober) {
		if entries > 0 {
			p.entryLimit = entries
		}
	}
}

// WithOpener registers the workbook parser used for kind.
func WithOpener(kind FormatKind, opener WorkbookOpener) Option {
	return func(p *Prober) {
		p.openers[kind] = opener
	}
}

// WithoutOpener removes the parser for kind; previews of that kind then
// report an *UnsupportedFormatError.
func WithoutOpener(kind FormatKind) Option {
	return func(p *Prober) {
		delete(p.openers, kind)
	}
}

// WithCharset sets the legacy workbook string charset.
func WithCharset(charset string) Option {
	return func(p *Prober) {
		if _, ok := p.openers[FormatCompound].(XLSOpener); ok {
			p.openers[FormatCompound] = XLSOpener{Charset: charset}
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Prober) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithProgressCallback(fn func(ProgressInfo)) Option {
	return func(p *Prober) {
		p.progressCallback = fn
	}
}

func WithProgressChannel(ch chan<- ProgressInfo) Option {
	return func(p *Prober) {
		p.progressChan = ch
	}
}

// New returns a Prober using the default parsers, adjusted by opts.
func New(opts ...Option) *Prober {
	p := &Prober{
		openers:    DefaultOpeners(""),
		rowLimit:   DefaultRowLimit,
		entryLimit: DefaultEntryLimit,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RowLimit returns the configured per-sheet row limit.
func (p *Prober) RowLimit() int { return p.rowLimit }

// Probe inspects path. The returned error is non-nil only for a missing or
// non-regular file (*NotFoundError), an unconfigured Prober, or an I/O
// failure reading the signature; every other condition is recorded in the
// result.
func (p *Prober) Probe(path string) (*ProbeResult, error) {
	if p == nil || p.openers == nil {
		return nil, ErrNotConfigured
	}

	h, err := Locate(path)
	if err != nil {
		p.logger.Debug("locate failed", slog.String("path", path), slog.Any("error", err))
		return nil, err
	}

	p.emitProgress("classify", "", 0, 1)
	sig, kind, err := Classify(h)
	if err != nil {
		return nil, err
	}
	p.emitProgress("classify", "", 1, 1)
	p.logger.Debug("classified file",
		slog.String("path", path),
		slog.Int64("size", h.Size),
		slog.String("magic", sig.Hex()),
		slog.String("kind", kind.String()))

	res := &ProbeResult{File: h, Signature: sig, Kind: kind}

	switch kind {
	case FormatZip:
		p.listZip(res)
	case FormatCompound:
		p.listCompound(res)
	}

	if kind.IsSpreadsheetCandidate() {
		res.Sheets, res.PreviewErr = p.previewSheets(h, kind, res)
		if res.PreviewErr != nil {
			p.logger.Warn("preview unavailable",
				slog.String("path", path),
				slog.Any("error", res.PreviewErr))
		}
	}
	return res, nil
}

func (p *Prober) listZip(res *ProbeResult) {
	p.emitProgress("list_entries", "", 0, 1)
	defer p.emitProgress("list_entries", "", 1, 1)
	listing, err := ListZipEntries(res.File, p.entryLimit)
	if err != nil {
		res.EntriesErr = err
		p.logger.Warn("cannot list archive entries", slog.String("path", res.File.Path), slog.Any("error", err))
		return
	}
	res.Entries = &listing
}

func (p *Prober) listCompound(res *ProbeResult) {
	p.emitProgress("list_entries", "", 0, 1)
	defer p.emitProgress("list_entries", "", 1, 1)
	listing, props, propErr, err := ListCompoundEntries(res.File, p.entryLimit)
	if err != nil {
		res.EntriesErr = err
		p.logger.Warn("cannot list compound streams", slog.String("path", res.File.Path), slog.Any("error", err))
		return
	}
	res.Entries = &listing
	res.Properties = props
	res.PropertiesErr = propErr
}

// PreviewSheets opens h with the parser registered for kind and returns a
// preview of every sheet in workbook order. A failing sheet carries a
// *PerSheetReadError and does not stop the others.
func (p *Prober) PreviewSheets(h FileHandle, kind FormatKind) ([]SheetPreview, error) {
	if p == nil || p.openers == nil {
		return nil, ErrNotConfigured
	}
	return p.previewSheets(h, kind, nil)
}

func (p *Prober) previewSheets(h FileHandle, kind FormatKind, res *ProbeResult) ([]SheetPreview, error) {
	opener, ok := p.openers[kind]
	if !ok || opener == nil {
		return nil, &UnsupportedFormatError{Kind: kind}
	}

	wb, err := opener.OpenWorkbook(h.Path)
	if err != nil {
		var unsupported *UnsupportedFormatError
		if errors.As(err, &unsupported) {
			return nil, unsupported
		}
		return nil, &CorruptArchiveError{Path: h.Path, Kind: kind, Op: "open workbook", Err: err}
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil {
			p.logger.Debug("close workbook", slog.String("path", h.Path), slog.Any("error", cerr))
		}
	}()

	if res != nil && len(res.Properties) == 0 {
		if pr, ok := wb.(PropertiesReader); ok {
			props, perr := pr.Properties()
			if perr != nil && res.PropertiesErr == nil {
				res.PropertiesErr = fmt.Errorf("read document properties: %w", perr)
			}
			res.Properties = props
		}
	}

	names := wb.SheetNames()
	previews := make([]SheetPreview, 0, len(names))
	total := len(names)
	p.emitProgress("preview_sheets", "", 0, total)
	for idx, name := range names {
		sp := p.previewSheet(wb, idx, name)
		if sp.Err != nil {
			p.logger.Warn("sheet preview failed",
				slog.String("path", h.Path),
				slog.String("sheet", name),
				slog.Any("error", sp.Err))
		}
		previews = append(previews, sp)
		p.emitProgress("preview_sheets", name, idx+1, total)
	}
	return previews, nil
}

func (p *Prober) previewSheet(wb Workbook, idx int, name string) (sp SheetPreview) {
	sp = SheetPreview{Name: name, Index: idx, Rows: []Row{}}

	defer func() {
		if r := recover(); r != nil {
			sp.Rows = []Row{}
			sp.Empty, sp.Truncated = false, false
			sp.Err = &PerSheetReadError{Sheet: name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if sv, ok := wb.(SheetVisibility); ok {
		if visible, err := sv.SheetVisible(name); err == nil {
			sp.Hidden = !visible
		}
	}

	// One extra row tells whether the preview was cut short.
	var (
		rows []Row
		err  error
	)
	if ir, ok := wb.(IndexedReader); ok {
		rows, err = ir.ReadRowsAt(idx, p.rowLimit+1)
	} else {
		rows, err = wb.ReadRows(name, p.rowLimit+1)
	}
	if err != nil {
		sp.Err = &PerSheetReadError{Sheet: name, Err: err}
	}
	if len(rows) > p.rowLimit {
		rows = rows[:p.rowLimit]
		sp.Truncated = true
	}
	if rows != nil {
		sp.Rows = rows
	}
	sp.Empty = len(sp.Rows) == 0 && sp.Err == nil
	return sp
}

func (p *Prober) emitProgress(phase, sheet string, current, total int) {
	if p.progressCallback == nil && p.progressChan == nil {
		return
	}
	pct := 0.0
	if total > 0 {
		pct = (float64(current) / float64(total)) * 100.0
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
	}
	info := ProgressInfo{
		Phase:   phase,
		Sheet:   sheet,
		Current: current,
		Total:   total,
		Percent: pct,
	}
	if p.progressCallback != nil {
		p.progressCallback(info)
	}
	if p.progressChan != nil {
		select {
		case p.progressChan <- info:
		default:
		}
	}
}

// IsPreviewUnsupported reports whether err means no parser was available.
func IsPreviewUnsupported(err error) bool {
	var u *UnsupportedFormatError
	return errors.As(err, &u)
}
