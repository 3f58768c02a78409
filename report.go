package sheetprobe

import (
	"encoding/json"
	"fmt"

	toon "github.com/mateuszkardas/toon-go"
)

// Report is the serializable view of a ProbeResult: errors become messages
// and cell values become strings.
type Report struct {
	Path          string        `json:"path"`
	Exists        bool          `json:"exists"`
	Size          int64         `json:"size"`
	Magic         string        `json:"magic"`
	Kind          string        `json:"kind"`
	Guess         string        `json:"guess"`
	Package       string        `json:"package,omitempty"`
	EntryTotal    int           `json:"entry_total,omitempty"`
	Entries       []string      `json:"entries,omitempty"`
	EntriesError  string        `json:"entries_error,omitempty"`
	Properties    []Property    `json:"properties,omitempty"`
	PropertyError string        `json:"properties_error,omitempty"`
	PreviewError  string        `json:"preview_error,omitempty"`
	Sheets        []SheetReport `json:"sheets,omitempty"`
}

type SheetReport struct {
	Name      string     `json:"name"`
	Hidden    bool       `json:"hidden,omitempty"`
	Empty     bool       `json:"empty"`
	Truncated bool       `json:"truncated"`
	Error     string     `json:"error,omitempty"`
	Rows      [][]string `json:"rows"`
}

// NewReport flattens r for TOON or JSON output.
func NewReport(r *ProbeResult) Report {
	rep := Report{
		Path:          r.File.Path,
		Exists:        r.File.Exists,
		Size:          r.File.Size,
		Magic:         r.Signature.Hex(),
		Kind:          r.Kind.String(),
		Guess:         r.Kind.Description(),
		Properties:    r.Properties,
		EntriesError:  errString(r.EntriesErr),
		PropertyError: errString(r.PropertiesErr),
		PreviewError:  errString(r.PreviewErr),
	}
	if r.Entries != nil {
		rep.Package = r.Entries.Package
		rep.EntryTotal = r.Entries.Total
		rep.Entries = r.Entries.Names
	}
	for _, s := range r.Sheets {
		sr := SheetReport{
			Name:      s.Name,
			Hidden:    s.Hidden,
			Empty:     s.Empty,
			Truncated: s.Truncated,
			Error:     errString(s.Err),
			Rows:      make([][]string, 0, len(s.Rows)),
		}
		for _, row := range s.Rows {
			sr.Rows = append(sr.Rows, rowStrings(row))
		}
		rep.Sheets = append(rep.Sheets, sr)
	}
	return rep
}

// RenderJSON returns the indented JSON report.
func RenderJSON(r *ProbeResult) ([]byte, error) {
	return json.MarshalIndent(NewReport(r), "", "  ")
}

// RenderTOON returns the report in TOON notation.
func RenderTOON(r *ProbeResult) (string, error) {
	return toon.Marshal(NewReport(r), nil)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func rowStrings(row Row) []string {
	out := make([]string, len(row.Values))
	for i, v := range row.Values {
		out[i] = cellString(v)
	}
	return out
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", t)
	}
}
