package sheetprobe

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *ProbeResult {
	return &ProbeResult{
		File:      FileHandle{Path: "grapheal.xlsx", Exists: true, Size: 2048},
		Signature: Signature{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00},
		Kind:      FormatZip,
		Entries: &EntryListing{
			Names:   []string{"[Content_Types].xml", "xl/workbook.xml"},
			Total:   9,
			Package: "xlsx",
		},
		Properties: []Property{{Name: "Title", Value: "Monitoring | 2025"}},
		Sheets: []SheetPreview{
			{
				Name:      "Brevets",
				Index:     0,
				Truncated: true,
				Rows: []Row{
					{Number: 1, Values: []interface{}{"Ref", "Pays", nil, "Actif"}},
					{Number: 2, Values: []interface{}{"FR|01", float64(33), nil, true}},
				},
			},
			{Name: "Vide", Index: 1, Empty: true, Rows: []Row{}},
			{Name: "Cassée", Index: 2, Rows: []Row{}, Err: &PerSheetReadError{Sheet: "Cassée", Err: errors.New("bad record")}},
		},
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	md := RenderMarkdown(sampleResult())

	assert.True(t, strings.HasPrefix(md, "# Spreadsheet Probe Report\n"))
	assert.Contains(t, md, "- Size: 2.0 kB (2,048 bytes)")
	assert.Contains(t, md, "- First 6 bytes: `504b03041400`")
	assert.Contains(t, md, "- Guessed type: ZIP (possibly xlsx)")
	assert.Contains(t, md, "- Package: xlsx")
	assert.Contains(t, md, "- `xl/workbook.xml`")
	assert.Contains(t, md, "_Showing 2 of 9 entries._")
	assert.Contains(t, md, "| Title | Monitoring \\| 2025 |")
	assert.Contains(t, md, "| Row | A | B | C | D |")
	assert.Contains(t, md, "| 2 | FR\\|01 | 33 |  | TRUE |")
	assert.Contains(t, md, "_First 2 rows shown._")
	assert.Contains(t, md, "### Vide\n\n_(empty sheet)_")
	assert.Contains(t, md, `_Error: failed to read sheet "Cassée": bad record_`)
	assert.Contains(t, md, "| 1 | Brevets | 2 | truncated |")
}

func TestRenderMarkdown_PreviewUnavailable(t *testing.T) {
	t.Parallel()

	res := sampleResult()
	res.Sheets = nil
	res.PreviewErr = &UnsupportedFormatError{Kind: FormatZip}

	md := RenderMarkdown(res)
	assert.Contains(t, md, "_Preview unavailable: no workbook parser available for zip format_")
	assert.NotContains(t, md, "| # | Name |")
}

func TestRenderMarkdown_NotSpreadsheet(t *testing.T) {
	t.Parallel()

	res := &ProbeResult{
		File:      FileHandle{Path: "scan.pdf", Exists: true, Size: 12},
		Signature: Signature("%PDF-1.4"),
		Kind:      FormatPDF,
	}
	md := RenderMarkdown(res)
	assert.Contains(t, md, "- Guessed type: PDF")
	assert.NotContains(t, md, "## Sheets")
	assert.NotContains(t, md, "## Entries")
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	out, err := RenderJSON(sampleResult())
	require.NoError(t, err)

	var rep Report
	require.NoError(t, json.Unmarshal(out, &rep))
	assert.Equal(t, "504b03041400", rep.Magic)
	assert.Equal(t, "zip", rep.Kind)
	assert.Equal(t, 9, rep.EntryTotal)
	require.Len(t, rep.Sheets, 3)
	assert.Equal(t, []string{"FR|01", "33", "", "TRUE"}, rep.Sheets[0].Rows[1])
	assert.True(t, rep.Sheets[1].Empty)
	assert.NotNil(t, rep.Sheets[1].Rows)
	assert.Contains(t, rep.Sheets[2].Error, "bad record")
}

func TestRenderTOON(t *testing.T) {
	t.Parallel()

	out, err := RenderTOON(sampleResult())
	require.NoError(t, err)
	assert.Contains(t, out, "grapheal.xlsx")
	assert.Contains(t, out, "Brevets")
}

func TestCellString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   interface{}
		want string
	}{
		{in: nil, want: ""},
		{in: "x", want: "x"},
		{in: float64(1.5), want: "1.5"},
		{in: float64(1e21), want: "1e+21"},
		{in: false, want: "FALSE"},
		{in: 7, want: "7"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cellString(tt.in))
	}
}

func TestColumnLetter(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "A", columnLetter(0))
	assert.Equal(t, "Z", columnLetter(25))
	assert.Equal(t, "AA", columnLetter(26))
	assert.Equal(t, "BA", columnLetter(52))
}
