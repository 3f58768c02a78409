package sheetprobe

import "encoding/hex"

// SignatureLen is the number of leading bytes read by Classify. It is at
// least as long as the longest magic pattern in signatures.
const SignatureLen = 16

const (
	DefaultRowLimit   = 10
	DefaultEntryLimit = 20
)

// FileHandle describes the probed path as seen at probe time.
type FileHandle struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Size   int64  `json:"size"`
}

// Signature holds the leading bytes of a file.
type Signature []byte

// Hex returns the signature as lowercase hex, the way `xxd -p` prints it.
func (s Signature) Hex() string {
	return hex.EncodeToString(s)
}

// Magic returns the first four bytes, or fewer for very short files.
func (s Signature) Magic() []byte {
	if len(s) < 4 {
		return s
	}
	return s[:4]
}

// FormatKind is the container format guessed from magic bytes.
type FormatKind string

const (
	FormatUnknown  FormatKind = "unknown"
	FormatZip      FormatKind = "zip"
	FormatZipEmpty FormatKind = "zip-empty"
	FormatCompound FormatKind = "compound"
	FormatPDF      FormatKind = "pdf"
)

func (k FormatKind) String() string { return string(k) }

// Description is the human label used in reports.
func (k FormatKind) Description() string {
	switch k {
	case FormatZip:
		return "ZIP (possibly xlsx)"
	case FormatZipEmpty:
		return "ZIP empty archive"
	case FormatCompound:
		return "OLE Compound File (old .doc/.xls/.ppt)"
	case FormatPDF:
		return "PDF"
	default:
		return "unknown"
	}
}

// IsSpreadsheetCandidate reports whether a workbook parser may understand k.
func (k FormatKind) IsSpreadsheetCandidate() bool {
	return k == FormatZip || k == FormatCompound
}

// EntryListing is a bounded view of an archive directory.
type EntryListing struct {
	Names   []string `json:"names"`
	// Total counts every entry, including those past the listing limit.
	Total   int      `json:"total"`
	// Package is a best-effort hint such as "xlsx" or "docx".
	Package string   `json:"package,omitempty"`
}

// Truncated reports whether Names omits entries.
func (l EntryListing) Truncated() bool {
	return l.Total > len(l.Names)
}

// Property is a single document metadata field.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Row is one previewed row. Values are nil, string, float64 or bool and
// keep their column position: missing cells are padded with nil.
type Row struct {
	Number int           `json:"number"`
	Values []interface{} `json:"values"`
}

// SheetPreview is the bounded leading-rows snapshot of one sheet.
type SheetPreview struct {
	Name      string `json:"name"`
	Index     int    `json:"index"`
	Hidden    bool   `json:"hidden,omitempty"`
	Empty     bool   `json:"empty"`
	Truncated bool   `json:"truncated"`
	Rows      []Row  `json:"rows"`
	Err       error  `json:"-"`
}

// ProbeResult is everything learned about one file. It is built once per
// Probe call and not modified afterwards.
type ProbeResult struct {
	File      FileHandle `json:"file"`
	Signature Signature  `json:"-"`
	Kind      FormatKind `json:"kind"`

	Entries    *EntryListing `json:"entries,omitempty"`
	EntriesErr error         `json:"-"`

	Properties    []Property `json:"properties,omitempty"`
	PropertiesErr error      `json:"-"`

	Sheets     []SheetPreview `json:"sheets,omitempty"`
	PreviewErr error          `json:"-"`
}

// SheetNames returns the previewed sheet names in workbook order.
func (r *ProbeResult) SheetNames() []string {
	names := make([]string, len(r.Sheets))
	for i, s := range r.Sheets {
		names[i] = s.Name
	}
	return names
}

// Errors collects every reported, non-fatal failure in pipeline order.
func (r *ProbeResult) Errors() []error {
	var errs []error
	for _, err := range []error{r.EntriesErr, r.PropertiesErr, r.PreviewErr} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	for _, s := range r.Sheets {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errs
}
